// Package source adapts the external inputs of a run: a GeoJSON
// FeatureCollection of statistical-area polygons and a CSV table of
// populations keyed by the same geographic code.
//
// Both readers take an io.Reader and return plain values; they do not open
// files, so callers decide where the data comes from.
package source
