package tsp

import "math/rand"

// defaultRNGSeed is the fixed "zero" seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
// math/rand.Rand is not goroutine-safe; every Solve call owns its stream.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// restartStarts returns up to k distinct start vertices other than skip,
// drawn in a seed-determined order.
//
// Complexity: O(n) time and space.
func restartStarts(n, k, skip int, seed int64) []int {
	if k <= 0 {
		return nil
	}
	perm := rngFromSeed(seed).Perm(n)
	out := make([]int, 0, k)
	for _, v := range perm {
		if v == skip {
			continue
		}
		out = append(out, v)
		if len(out) == k {
			break
		}
	}

	return out
}
