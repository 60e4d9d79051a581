// Package pipeline composes one railnet run by explicit function calls:
//
//	units + populations → nodes → distance → ridership, revenue
//	                    → four networks → score table
//
// Every stage takes the complete output of the previous one. Nothing is
// kept between runs. A geometry or join error aborts the run before any
// matrix is built, so a half-joined node set is never scored.
package pipeline
