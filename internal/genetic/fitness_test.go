package genetic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitSquare is the distance matrix of the corners of a unit square,
// visited in order 0-1-2-3 around the perimeter.
func unitSquare() [][]float64 {
	d := math.Sqrt2
	return [][]float64{
		{0, 1, d, 1},
		{1, 0, 1, d},
		{d, 1, 0, 1},
		{1, d, 1, 0},
	}
}

func TestEvaluate_ClosesCycle(t *testing.T) {
	m := unitSquare()

	assert.InDelta(t, 4.0, Evaluate(Route{0, 1, 2, 3}, m), 1e-9)
	assert.InDelta(t, 4.0, Evaluate(Route{2, 1, 0, 3}, m), 1e-9)
	assert.InDelta(t, 2+2*math.Sqrt2, Evaluate(Route{0, 2, 1, 3}, m), 1e-9)
}

func TestEvaluate_TwoCities(t *testing.T) {
	m := [][]float64{
		{0, 343.56},
		{343.56, 0},
	}

	assert.InDelta(t, 687.12, Evaluate(Route{0, 1}, m), 1e-9)
	assert.InDelta(t, 687.12, Evaluate(Route{1, 0}, m), 1e-9)
}

func TestEvaluate_NonNegative(t *testing.T) {
	rng, _ := NewRand(5)
	m := unitSquare()

	for i := 0; i < 50; i++ {
		assert.Greater(t, Evaluate(RandomRoute(rng, 4), m), 0.0)
	}
}

func TestEvaluate_EmptyRoute(t *testing.T) {
	assert.Equal(t, 0.0, Evaluate(Route{}, unitSquare()))
}

func TestFittest(t *testing.T) {
	m := unitSquare()
	pop := Population{
		{0, 2, 1, 3},
		{0, 1, 2, 3},
		{1, 2, 3, 0},
	}

	best, fitness := Fittest(pop, m)

	require.NotNil(t, best)
	assert.Equal(t, Route{0, 1, 2, 3}, best, "ties keep the first member")
	assert.InDelta(t, 4.0, fitness, 1e-9)
}

func TestFittest_EmptyPopulation(t *testing.T) {
	best, fitness := Fittest(Population{}, unitSquare())

	assert.Nil(t, best)
	assert.True(t, math.IsInf(fitness, 1))
}

func TestEvaluateAll(t *testing.T) {
	m := unitSquare()
	pop := Population{{0, 1, 2, 3}, {0, 2, 1, 3}}

	scores := EvaluateAll(pop, m)

	require.Len(t, scores, 2)
	assert.InDelta(t, 4.0, scores[0], 1e-9)
	assert.InDelta(t, 2+2*math.Sqrt2, scores[1], 1e-9)
}
