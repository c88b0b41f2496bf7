package genetic

import "math"

// Evaluate returns the total length of the closed tour described by route.
// Lower is better.
func Evaluate(route Route, matrix [][]float64) float64 {
	n := len(route)
	if n == 0 {
		return 0
	}

	total := 0.0
	for i := 0; i < n-1; i++ {
		total += matrix[route[i]][route[i+1]]
	}
	total += matrix[route[n-1]][route[0]]
	return total
}

// EvaluateAll scores every member of pop, index-aligned with pop
func EvaluateAll(pop Population, matrix [][]float64) []float64 {
	scores := make([]float64, len(pop))
	for i, route := range pop {
		scores[i] = Evaluate(route, matrix)
	}
	return scores
}

// Fittest returns the shortest route in pop and its fitness. On ties the
// earliest member wins. An empty pop yields a nil route and +Inf.
func Fittest(pop Population, matrix [][]float64) (Route, float64) {
	if len(pop) == 0 {
		return nil, math.Inf(1)
	}
	scores := EvaluateAll(pop, matrix)
	idx := argmin(scores)
	return pop[idx], scores[idx]
}

func argmin(values []float64) int {
	idx := 0
	for i, v := range values {
		if v < values[idx] {
			idx = i
		}
	}
	return idx
}
