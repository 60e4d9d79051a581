// Package geodist is the Distance Engine: great-circle distances between
// node locations on a spherical Earth.
//
// The distance between two points (λ = longitude, φ = latitude, degrees) uses
// the spherical law of cosines:
//
//	d = R · acos( sin φa · sin φb + cos φa · cos φb · cos(λa − λb) )
//
// with R = 6371 km. The acos argument is clamped to [−1, 1] so that rounding
// on identical or antipodal points cannot produce NaN; any NaN that still
// appears is replaced by 0.
//
// Matrix evaluates each unordered pair once and mirrors it, so the result is
// exactly symmetric with an exactly zero diagonal. Intermediate samples points
// along the great circle, which is how network edges are drawn.
package geodist
