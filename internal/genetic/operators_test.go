package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCrossover_Segment(t *testing.T) {
	p1 := Route{0, 1, 2, 3, 4}
	p2 := Route{4, 3, 2, 1, 0}

	child := OrderCrossover(p1, p2, 1, 3)

	assert.Equal(t, Route{4, 1, 2, 3, 0}, child)
}

func TestOrderCrossover_ReversedIndices(t *testing.T) {
	p1 := Route{0, 1, 2, 3, 4}
	p2 := Route{4, 3, 2, 1, 0}

	assert.Equal(t, OrderCrossover(p1, p2, 1, 3), OrderCrossover(p1, p2, 3, 1))
}

func TestOrderCrossover_EqualIndicesCopiesParent2(t *testing.T) {
	p1 := Route{0, 1, 2, 3, 4, 5}
	p2 := Route{3, 5, 0, 4, 1, 2}

	for i := 0; i < len(p1); i++ {
		child := OrderCrossover(p1, p2, i, i)
		assert.Equal(t, p2, child, "start=end=%d", i)
	}
}

func TestOrderCrossover_AlwaysPermutation(t *testing.T) {
	rng, _ := NewRand(11)

	for n := 2; n <= 9; n++ {
		p1 := RandomRoute(rng, n)
		p2 := RandomRoute(rng, n)
		for start := 0; start < n; start++ {
			for end := 0; end < n; end++ {
				child := OrderCrossover(p1, p2, start, end)
				require.Len(t, child, n)
				require.True(t, child.IsPermutation(),
					"n=%d start=%d end=%d p1=%v p2=%v child=%v", n, start, end, p1, p2, child)
			}
		}
	}
}

func TestOrderCrossover_DoesNotAliasParents(t *testing.T) {
	p1 := Route{0, 1, 2, 3}
	p2 := Route{3, 2, 1, 0}

	child := OrderCrossover(p1, p2, 0, 4)
	child[0] = 3

	assert.Equal(t, Route{0, 1, 2, 3}, p1)
	assert.Equal(t, Route{3, 2, 1, 0}, p2)
}

func TestCrossover_ZeroRateCopiesParent1(t *testing.T) {
	rng, _ := NewRand(2)
	p1 := Route{2, 0, 1}
	p2 := Route{1, 2, 0}

	child := Crossover(rng, p1, p2, 0)
	assert.Equal(t, p1, child)

	child[0] = 9
	assert.Equal(t, Route{2, 0, 1}, p1)
}

func TestCrossover_FullRateProducesPermutations(t *testing.T) {
	rng, _ := NewRand(8)

	for i := 0; i < 200; i++ {
		child := Crossover(rng, RandomRoute(rng, 7), RandomRoute(rng, 7), 1)
		require.True(t, child.IsPermutation(), "child %v", child)
	}
}

func TestMutate_ZeroRateIsNoop(t *testing.T) {
	rng, _ := NewRand(4)
	route := Route{0, 1, 2, 3, 4}

	for i := 0; i < 100; i++ {
		assert.False(t, Mutate(rng, route, 0))
	}
	assert.Equal(t, Route{0, 1, 2, 3, 4}, route)
}

func TestMutate_PreservesPermutation(t *testing.T) {
	rng, _ := NewRand(6)
	route := RandomRoute(rng, 12)

	for i := 0; i < 500; i++ {
		assert.True(t, Mutate(rng, route, 1))
		require.True(t, route.IsPermutation(), "route %v", route)
	}
}

func TestMutate_SwapsAtMostTwoPositions(t *testing.T) {
	rng, _ := NewRand(10)

	for i := 0; i < 100; i++ {
		route := Route{0, 1, 2, 3, 4, 5}
		Mutate(rng, route, 1)

		changed := 0
		for pos, v := range route {
			if v != pos {
				changed++
			}
		}
		assert.Contains(t, []int{0, 2}, changed)
	}
}

func TestTournamentSelect_ReturnsMember(t *testing.T) {
	rng, _ := NewRand(12)
	m := unitSquare()
	pop := InitializePopulation(rng, 4, 10)

	for i := 0; i < 50; i++ {
		selected := TournamentSelect(rng, pop, m, DefaultTournamentSize)
		assert.Contains(t, pop, selected)
	}
}

func TestTournamentSelect_PrefersFitter(t *testing.T) {
	rng, _ := NewRand(13)
	m := unitSquare()
	pop := Population{
		{0, 2, 1, 3},
		{0, 1, 2, 3},
	}

	// with 64 draws the perimeter tour is missed with probability 2^-64
	selected := TournamentSelect(rng, pop, m, 64)
	assert.Equal(t, Route{0, 1, 2, 3}, selected)
}

func TestTournamentSelect_SingleDrawIsUniform(t *testing.T) {
	rng, _ := NewRand(14)
	m := unitSquare()
	pop := Population{
		{0, 2, 1, 3},
		{0, 1, 2, 3},
	}

	counts := map[int]int{}
	for i := 0; i < 2000; i++ {
		selected := TournamentSelect(rng, pop, m, 1)
		counts[selected[1]]++
	}

	assert.InDelta(t, 1000, counts[2], 150)
	assert.InDelta(t, 1000, counts[1], 150)
}
