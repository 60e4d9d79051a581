package geometry

import "errors"

var (
	// ErrDegeneratePolygon indicates a polygon whose enclosed area is zero,
	// so its centroid is undefined.
	ErrDegeneratePolygon = errors.New("geometry: degenerate polygon")

	// ErrEmptyGeometry indicates a nil geometry or one without any ring.
	ErrEmptyGeometry = errors.New("geometry: empty geometry")

	// ErrUnsupportedGeometry indicates a geometry type without an area
	// (points, lines, collections).
	ErrUnsupportedGeometry = errors.New("geometry: unsupported geometry type")

	// ErrProjection wraps failures of the forward or inverse projection.
	ErrProjection = errors.New("geometry: projection failed")
)
