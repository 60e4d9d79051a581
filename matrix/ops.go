// SPDX-License-Identifier: MIT
// Package: matrix
//
// Element-wise kernels used by the weight model and the network builder.
// Each kernel validates its input, allocates exactly one output Dense and
// walks the flat buffer when the input is *Dense (generic At/Set otherwise).

package matrix

import "math"

// ReplaceInfNaN copies X replacing any {±Inf, NaN} by val.
// val itself must be finite (ErrNaNInf otherwise).
// Time: O(r*c). Space: O(r*c).
func ReplaceInfNaN(X Matrix, val float64) (*Dense, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return nil, matrixErrorf("ReplaceInfNaN", ErrNaNInf)
	}

	return Apply(X, func(_, _ int, v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return val
		}

		return v
	})
}

// Negate returns -X.
// The MST solvers minimize, so maximization objectives are fed negated.
func Negate(X Matrix) (*Dense, error) {
	return Apply(X, func(_, _ int, v float64) float64 {
		return -v
	})
}

// Hadamard returns the element-wise product a∘b.
// Returns ErrDimensionMismatch when shapes differ.
func Hadamard(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf("Hadamard", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf("Hadamard", err)
	}
	bd, err := Flatten(b)
	if err != nil {
		return nil, matrixErrorf("Hadamard", err)
	}
	c := b.Cols()

	return Apply(a, func(i, j int, v float64) float64 {
		return v * bd[i*c+j]
	})
}

// Apply returns a new Dense with out[i,j] = fn(i, j, X[i,j]).
// Loop order is fixed (i→j), so results are deterministic.
func Apply(X Matrix, fn func(i, j int, v float64) float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("Apply", err)
	}
	r, c := X.Rows(), X.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("Apply", err)
	}

	// Dense fast-path: direct flat slice iteration.
	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				idx := i*c + j
				out.data[idx] = fn(i, j, d.data[idx])
			}
		}

		return out, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf("Apply", e)
			}
			out.data[i*c+j] = fn(i, j, v)
		}
	}

	return out, nil
}

// Flatten prefetches X into a fresh row-major buffer w[i*c+j].
// Hot loops (MST, 2-opt) read from the buffer to avoid interface indirection.
// Time: O(r*c). Space: O(r*c).
func Flatten(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, err
	}
	r, c := X.Rows(), X.Cols()
	w := make([]float64, r*c)
	if d, ok := X.(*Dense); ok {
		copy(w, d.data)

		return w, nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return nil, err
			}
			w[i*c+j] = v
		}
	}

	return w, nil
}
