// Package matrix provides the dense, square float64 matrices that carry every
// pairwise metric of a rail network design: great-circle distance, gravity-model
// ridership and revenue, and the cost matrices handed to the MST and tour solvers.
//
// What the package offers:
//
//   - Matrix: the minimal read/write interface (Rows, Cols, At, Set, Clone).
//   - Dense: a row-major implementation backed by one flat slice.
//   - Element-wise kernels used by the weight model: ReplaceInfNaN (the
//     zero-fill policy for undefined divisions), Negate (turning maximization
//     into minimization for MST), Hadamard (ridership·distance).
//   - Validators: ValidateSquare, ValidateSymmetric, ValidateZeroDiagonal.
//   - Flatten: prefetch into a flat buffer for hot loops in the solvers.
//
// Errors are package sentinels (errors.go); indexers never panic on user input.
//
// Complexity: At/Set are O(1); every kernel is O(r·c) time and allocates one
// output Dense.
package matrix
