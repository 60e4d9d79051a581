// Package railnet computes and compares candidate designs for a national
// rail network between metropolitan areas.
//
// From area polygons and a population table a run builds one node per
// metropolitan area (its centroid), a great-circle distance matrix and
// gravity-model ridership and revenue matrices, then four candidate
// networks:
//
//	Maximum Ridership         spanning tree maximizing Σ ridership
//	Maximum Revenue           spanning tree maximizing Σ revenue
//	Minimum Track Length      spanning tree minimizing Σ km
//	Minimum Track Length Loop closed tour minimizing Σ km
//
// Every network is then scored on all three metrics and the scores are
// compared, optionally normalized by the mean of each metric.
//
// Packages, leaves first:
//
//	matrix/       dense float64 matrices, validators and element-wise ops
//	geometry/     shoelace centroids, projections, visibility window
//	geodist/      great-circle distances and arcs
//	gravity/      ridership and revenue matrices
//	prim_kruskal/ minimum spanning trees (Kruskal, Prim)
//	tsp/          tour construction (Christofides, nearest neighbour) and 2-opt
//	network/      the four objectives
//	score/        per-network totals and the comparison table
//	pipeline/     one run, end to end
//	source/       GeoJSON units and CSV populations
//	export/       GeoJSON, KML and CSV outputs
//	store/        SQLite run store
//	api/          read-only HTTP API over stored runs
//	config/       YAML, .env and environment configuration
//	cmd/railnet/  the command line
package railnet
