package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	// ErrMissingCode indicates a feature without the configured code property.
	ErrMissingCode = errors.New("source: feature has no code")

	// ErrNotAreal indicates a feature whose geometry is not a polygon.
	ErrNotAreal = errors.New("source: feature geometry is not a polygon")

	// ErrDuplicateCode indicates that the same code appears twice.
	ErrDuplicateCode = errors.New("source: duplicate code")
)

// MetroCode is the class of metropolitan statistical areas.
const MetroCode = "M1"

// Unit is one statistical area: a code, a display name, a class and its
// boundary in (longitude, latitude) degrees.
type Unit struct {
	Code     string
	Name     string
	Class    string
	Geometry orb.Geometry
}

// UnitFields names the feature properties a Unit is read from.
type UnitFields struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
}

// DefaultUnitFields are the census CBSA property names.
func DefaultUnitFields() UnitFields {
	return UnitFields{Code: "CBSAFP", Name: "NAME", Class: "LSAD"}
}

func (f UnitFields) withDefaults() UnitFields {
	d := DefaultUnitFields()
	if f.Code == "" {
		f.Code = d.Code
	}
	if f.Name == "" {
		f.Name = d.Name
	}
	if f.Class == "" {
		f.Class = d.Class
	}

	return f
}

// MetroClass reports whether class marks a metropolitan area.
func MetroClass(class string) bool { return class == MetroCode }

// IsMetro reports whether u is a metropolitan area.
func IsMetro(u Unit) bool { return MetroClass(u.Class) }

// ReadUnits decodes a GeoJSON FeatureCollection into units, in file order.
// Empty fields fall back to DefaultUnitFields.
//
// Errors:
//   - ErrMissingCode   : a feature lacks the code property.
//   - ErrNotAreal      : a feature is not a Polygon or MultiPolygon.
//   - ErrDuplicateCode : two features share a code.
func ReadUnits(r io.Reader, fields UnitFields) ([]Unit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: read units: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("source: decode units: %w", err)
	}

	fields = fields.withDefaults()
	units := make([]Unit, 0, len(fc.Features))
	seen := make(map[string]struct{}, len(fc.Features))
	for i, f := range fc.Features {
		code, ok := property(f.Properties, fields.Code)
		if !ok || code == "" {
			return nil, fmt.Errorf("feature %d: %w (%s)", i, ErrMissingCode, fields.Code)
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, fmt.Errorf("feature %s: %w: %T", code, ErrNotAreal, f.Geometry)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("feature %s: %w", code, ErrDuplicateCode)
		}
		seen[code] = struct{}{}

		name, _ := property(f.Properties, fields.Name)
		class, _ := property(f.Properties, fields.Class)
		units = append(units, Unit{Code: code, Name: name, Class: class, Geometry: f.Geometry})
	}

	return units, nil
}

// property returns a property as a string. Numeric codes are common in
// census files, so whole numbers are formatted without a fraction.
func property(p geojson.Properties, key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprint(t), true
	}
}
