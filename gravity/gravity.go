// Package gravity is the Weight Model: demand between node pairs under the
// gravity model.
//
// Ridership between i and j is pop_i·pop_j / d_ij² and revenue is
// ridership_ij·d_ij (passengers times distance travelled). Entries where the
// division is undefined (the diagonal, coincident nodes) or not finite are
// zero-filled, so both matrices are finite, non-negative and have a zero
// diagonal.
package gravity

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/railnet/matrix"
)

// ErrNegativePopulation indicates a population below zero.
var ErrNegativePopulation = errors.New("gravity: negative population")

// Model bundles the two weight matrices built from one distance matrix.
type Model struct {
	Ridership *matrix.Dense
	Revenue   *matrix.Dense
}

// Build computes ridership and then revenue from pop and dist.
func Build(pop []int64, dist matrix.Matrix) (Model, error) {
	r, err := Ridership(pop, dist)
	if err != nil {
		return Model{}, err
	}
	v, err := Revenue(r, dist)
	if err != nil {
		return Model{}, err
	}

	return Model{Ridership: r, Revenue: v}, nil
}

// Ridership returns R with R[i][j] = pop[i]·pop[j] / dist[i][j]².
//
// Errors:
//   - ErrNegativePopulation if any pop[i] < 0.
//   - matrix.ErrNonSquare / matrix.ErrDimensionMismatch on shape problems.
//
// Complexity: O(n²).
func Ridership(pop []int64, dist matrix.Matrix) (*matrix.Dense, error) {
	if err := checkShape(len(pop), dist); err != nil {
		return nil, err
	}
	for i, p := range pop {
		if p < 0 {
			return nil, fmt.Errorf("gravity: population[%d]=%d: %w", i, p, ErrNegativePopulation)
		}
	}

	raw, err := matrix.Apply(dist, func(i, j int, d float64) float64 {
		return float64(pop[i]) * float64(pop[j]) / (d * d)
	})
	if err != nil {
		return nil, err
	}

	return zeroFilled(raw, dist)
}

// Revenue returns V with V[i][j] = ridership[i][j]·dist[i][j].
func Revenue(ridership, dist matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(ridership); err != nil {
		return nil, err
	}
	if err := checkShape(ridership.Rows(), dist); err != nil {
		return nil, err
	}
	raw, err := matrix.Hadamard(ridership, dist)
	if err != nil {
		return nil, err
	}

	return zeroFilled(raw, dist)
}

// checkShape verifies that dist is n×n.
func checkShape(n int, dist matrix.Matrix) error {
	if err := matrix.ValidateSquare(dist); err != nil {
		return err
	}
	if dist.Rows() != n {
		return fmt.Errorf("gravity: %d weights vs %d×%d distances: %w",
			n, dist.Rows(), dist.Cols(), matrix.ErrDimensionMismatch)
	}

	return nil
}

// zeroFilled replaces the undefined entries of raw by 0: non-finite values,
// negative values, the diagonal and every cell where dist is not positive.
func zeroFilled(raw *matrix.Dense, dist matrix.Matrix) (*matrix.Dense, error) {
	finite, err := matrix.ReplaceInfNaN(raw, 0)
	if err != nil {
		return nil, err
	}
	d, err := matrix.Flatten(dist)
	if err != nil {
		return nil, err
	}
	c := dist.Cols()

	return matrix.Apply(finite, func(i, j int, v float64) float64 {
		if i == j || !(d[i*c+j] > 0) || v < 0 {
			return 0
		}
		return v
	})
}
