// Package tsp - tour utilities shared by the constructions and the local search.
//
// A tour over n vertices is a closed index sequence of length n+1 whose first
// and last entries are the start vertex. The helpers here operate purely on
// that structure, without distances.
package tsp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateTour enforces Hamiltonian-cycle invariants:
//
//	len(tour) == n+1, tour[0]==tour[n]==start,
//	each vertex v∈[0..n-1] appears exactly once in positions [0..n-1].
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int, start int) error {
	if n <= 0 || len(tour) != n+1 {
		return fmt.Errorf("tour of length %d for %d vertices: %w", len(tour), n, ErrDimensionMismatch)
	}
	if err := validateStartVertex(n, start); err != nil {
		return err
	}
	if tour[0] != start || tour[n] != start {
		return fmt.Errorf("tour %s does not close at %d: %w", DebugString(tour), start, ErrDimensionMismatch)
	}

	seen := make([]bool, n)
	var i, v int
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n || seen[v] {
			return fmt.Errorf("tour position %d holds %d: %w", i, v, ErrDimensionMismatch)
		}
		seen[v] = true
	}

	return nil
}

// RotateTourToStart returns a fresh closed copy of tour shifted so that
// out[0] == out[n] == start. The input may be closed (len n+1) or an open
// path (len n).
//
// Complexity: O(n) time, O(n) space.
func RotateTourToStart(tour []int, start int) ([]int, error) {
	if len(tour) == 0 {
		return nil, ErrDimensionMismatch
	}
	n := len(tour)
	if n > 1 && tour[0] == tour[n-1] {
		n--
	}

	pivot := IndexOfStart(tour[:n], start)
	if pivot < 0 {
		return nil, fmt.Errorf("vertex %d not in tour: %w", start, ErrStartOutOfRange)
	}

	out := make([]int, n+1)
	for i := 0; i < n; i++ {
		out[i] = tour[(pivot+i)%n]
	}
	out[n] = start

	return out, nil
}

// IndexOfStart returns the first index of start in path, or -1.
func IndexOfStart(path []int, start int) int {
	for i, v := range path {
		if v == start {
			return i
		}
	}

	return -1
}

// CanonicalizeOrientationInPlace fixes the direction of a closed tour: if
// tour[1] > tour[n-1] the interior [1..n-1] is reversed, so both directions
// of the same cycle map to one sequence.
//
// Complexity: O(n) time, O(1) space.
func CanonicalizeOrientationInPlace(tour []int) error {
	if len(tour) < 3 {
		return ErrDimensionMismatch
	}
	n := len(tour) - 1
	if tour[0] != tour[n] {
		return ErrDimensionMismatch
	}
	if n >= 3 && tour[1] > tour[n-1] {
		return reverseArcInPlace(tour, 1, n-1)
	}

	return nil
}

// reverseArcInPlace reverses the inclusive segment tour[i..k] in place,
// keeping the closing vertex intact. This is the primitive used by 2-opt.
//
// Contracts: tour is closed and 1 ≤ i < k ≤ n-1.
//
// Complexity: O(k-i) time, O(1) space.
func reverseArcInPlace(tour []int, i, k int) error {
	n := len(tour) - 1
	if n < 2 || tour[0] != tour[n] || i < 1 || k > n-1 || i >= k {
		return ErrDimensionMismatch
	}
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}

	return nil
}

// EqualToursModuloRotation reports whether a and b describe the same cycle
// in the same direction, whatever vertex each starts at.
//
// Complexity: O(n) time.
func EqualToursModuloRotation(a, b []int) bool {
	if len(a) != len(b) || len(a) < 2 {
		return false
	}
	n := len(a) - 1
	if a[n] != a[0] || b[n] != b[0] {
		return false
	}
	p := IndexOfStart(b[:n], a[0])
	if p < 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if a[i] != b[(p+i)%n] {
			return false
		}
	}

	return true
}

// ShortcutEulerianToHamiltonian converts an Eulerian vertex sequence (with
// revisits) into a Hamiltonian cycle by keeping only first occurrences, then
// rotating to start and closing.
//
// Errors:
//   - ErrDimensionMismatch if euler misses a vertex or holds one out of range.
//   - ErrStartOutOfRange if start ∉ [0, n).
//
// Complexity: O(len(euler) + n) time, O(n) space.
func ShortcutEulerianToHamiltonian(euler []int, n int, start int) ([]int, error) {
	if n <= 0 {
		return nil, ErrDimensionMismatch
	}
	if err := validateStartVertex(n, start); err != nil {
		return nil, err
	}

	visited := make([]bool, n)
	cycle := make([]int, 0, n)
	for _, v := range euler {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("euler vertex %d: %w", v, ErrDimensionMismatch)
		}
		if !visited[v] {
			visited[v] = true
			cycle = append(cycle, v)
		}
	}
	if len(cycle) != n {
		return nil, fmt.Errorf("euler walk covers %d of %d vertices: %w", len(cycle), n, ErrDimensionMismatch)
	}

	return RotateTourToStart(cycle, start)
}

// DebugString returns a compact printable form such as "[0 3 1 2 | 0]" where
// the bar marks the closure.
func DebugString(tour []int) string {
	if len(tour) == 0 {
		return "[]"
	}
	n := len(tour) - 1
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.Itoa(tour[i])
	}

	return "[" + strings.Join(parts, " ") + " | " + strconv.Itoa(tour[n]) + "]"
}
