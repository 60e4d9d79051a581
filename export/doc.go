// Package export writes the nodes and networks of a run in formats map
// renderers read: GeoJSON, KML and a CSV score table.
//
// Every network edge is drawn as a great-circle arc sampled at a fixed
// number of points, so long segments follow the curvature of the Earth
// instead of a straight line in longitude/latitude.
package export
