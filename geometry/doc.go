// Package geometry turns metropolitan-area polygons into node locations.
//
// The Geometry Extractor works the way a cartographer would on a paper map:
// every boundary vertex is projected into a planar frame (Projection.Forward),
// the area-weighted centroid is computed there with the shoelace formula, and
// the planar centroid is mapped back to longitude/latitude (Projection.Inverse).
//
// Shoelace, for one ring P_0..P_{n-1} (wrapping at n):
//
//	A  = ½ Σ (x_i·y_{i+1} − x_{i+1}·y_i)
//	Cx = 1/(6A) Σ (x_i + x_{i+1})(x_i·y_{i+1} − x_{i+1}·y_i)
//	Cy = 1/(6A) Σ (y_i + y_{i+1})(x_i·y_{i+1} − x_{i+1}·y_i)
//
// Two modes are offered for multi-part shapes:
//
//   - AreaWeighted (default): each outer ring is its own ring, holes subtract,
//     and ring centroids are averaged by area. Geometrically correct.
//   - ConcatenatedRing: every boundary point of every part is chained into one
//     ring. This reproduces the historical railnet numbers for CBSAs that
//     consist of several islands; it is deterministic but not a true centroid.
//
// A shape with zero enclosed area has no centroid and yields
// ErrDegeneratePolygon; NaN never leaves this package.
//
// Window and Visibility express the "only what fits on the map" rule as a
// swappable predicate instead of hard-coded bounds.
package geometry
