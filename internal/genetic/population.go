package genetic

import "math/rand"

// Route is an ordering of city indices; it closes back to its first element.
type Route []int

// Population is a fixed-size set of routes of equal length
type Population []Route

// NewRand returns the generator threaded through a run and the seed it was built from.
// A zero seed is replaced by the current time so unseeded runs still vary.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = timeSeed()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Clone returns an independent copy of the route
func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}

// IsPermutation reports whether r contains every index in [0, len(r)) exactly once
func (r Route) IsPermutation() bool {
	seen := make([]bool, len(r))
	for _, v := range r {
		if v < 0 || v >= len(r) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// RandomRoute returns a uniformly random permutation of 0..n-1 (Fisher–Yates)
func RandomRoute(rng *rand.Rand, n int) Route {
	route := make(Route, n)
	for i := range route {
		route[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// InitializePopulation builds size independent random routes over n cities.
// Routes are not required to be distinct.
func InitializePopulation(rng *rand.Rand, n, size int) Population {
	pop := make(Population, size)
	for i := range pop {
		pop[i] = RandomRoute(rng, n)
	}
	return pop
}
