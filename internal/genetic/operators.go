package genetic

import (
	"math"
	"math/rand"
)

// TournamentSelect draws size routes from pop uniformly with replacement and
// returns the fittest of them. The returned route is the population member
// itself and must not be modified.
func TournamentSelect(rng *rand.Rand, pop Population, matrix [][]float64, size int) Route {
	var best Route
	bestFitness := math.Inf(1)
	for i := 0; i < size; i++ {
		candidate := pop[rng.Intn(len(pop))]
		if f := Evaluate(candidate, matrix); best == nil || f < bestFitness {
			best = candidate
			bestFitness = f
		}
	}
	return best
}

// Crossover recombines two parents with probability rate; otherwise the child
// is a copy of parent1. The child never shares memory with either parent.
func Crossover(rng *rand.Rand, parent1, parent2 Route, rate float64) Route {
	if rng.Float64() < rate {
		n := len(parent1)
		return OrderCrossover(parent1, parent2, rng.Intn(n), rng.Intn(n))
	}
	return parent1.Clone()
}

// OrderCrossover copies parent1[lo:hi] into the child at the same positions,
// where lo and hi are start and end in ascending order, then fills the
// remaining slots left to right with the values of parent2 in their parent2
// order. When start == end the child is parent2's order verbatim.
func OrderCrossover(parent1, parent2 Route, start, end int) Route {
	n := len(parent1)
	lo, hi := min(start, end), max(start, end)

	child := make(Route, n)
	placed := make([]bool, n) // by value
	filled := make([]bool, n) // by position

	for i := lo; i < hi; i++ {
		child[i] = parent1[i]
		placed[parent1[i]] = true
		filled[i] = true
	}

	pos := 0
	for _, v := range parent2 {
		if placed[v] {
			continue
		}
		for filled[pos] {
			pos++
		}
		child[pos] = v
		placed[v] = true
		filled[pos] = true
	}

	return child
}

// Mutate swaps two independently chosen positions of route with probability
// rate. The positions may coincide. Reports whether a swap was made.
func Mutate(rng *rand.Rand, route Route, rate float64) bool {
	if rng.Float64() >= rate {
		return false
	}
	i := rng.Intn(len(route))
	j := rng.Intn(len(route))
	route[i], route[j] = route[j], route[i]
	return true
}
