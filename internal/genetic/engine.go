package genetic

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/montanaflynn/stats"
)

// GenerationStats describes one completed generation.
// BestEver never increases from one generation to the next.
type GenerationStats struct {
	Generation     int
	BestEver       float64
	GenerationBest float64
	Mean           float64
	Median         float64
	StdDev         float64
}

// Observer receives progress after every generation. It cannot influence the run.
type Observer func(GenerationStats)

// Result is the outcome of a full run
type Result struct {
	BestRoute   Route
	BestFitness float64
	Generations int
	Seed        int64
	Elapsed     time.Duration
}

// ErrInvalidMatrix is returned when the distance matrix cannot describe a tour
type ErrInvalidMatrix struct {
	Reason string
}

func (e *ErrInvalidMatrix) Error() string {
	return fmt.Sprintf("invalid distance matrix: %s", e.Reason)
}

// Engine runs the generational loop. An Engine owns its random source and is
// not safe for concurrent use.
type Engine struct {
	params Params
	rng    *rand.Rand
	seed   int64
}

// NewEngine validates params and seeds the engine's generator
func NewEngine(params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	rng, seed := NewRand(params.Seed)
	return &Engine{
		params: params,
		rng:    rng,
		seed:   seed,
	}, nil
}

// Seed returns the seed the engine's generator was built from
func (e *Engine) Seed() int64 {
	return e.seed
}

// Run evolves a random initial population for MaxGenerations generations and
// returns the best route seen in any generation.
func (e *Engine) Run(matrix [][]float64, observer Observer) (*Result, error) {
	n := len(matrix)
	if n < 2 {
		return nil, &ErrInvalidMatrix{Reason: fmt.Sprintf("need at least 2 cities, got %d", n)}
	}
	for i, row := range matrix {
		if len(row) != n {
			return nil, &ErrInvalidMatrix{Reason: fmt.Sprintf("row %d has %d entries, want %d", i, len(row), n)}
		}
		for j, d := range row {
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return nil, &ErrInvalidMatrix{Reason: fmt.Sprintf("entry (%d, %d) is %v", i, j, d)}
			}
		}
	}

	start := time.Now()
	log.Printf("[GA] Starting run: cities=%d population=%d generations=%d seed=%d",
		n, e.params.PopulationSize, e.params.MaxGenerations, e.seed)

	pop := InitializePopulation(e.rng, n, e.params.PopulationSize)

	var bestRoute Route
	bestFitness := math.Inf(1)

	for gen := 0; gen < e.params.MaxGenerations; gen++ {
		pop = e.evolve(pop, matrix)

		genBest, genFitness := Fittest(pop, matrix)
		if genFitness < bestFitness {
			bestFitness = genFitness
			bestRoute = genBest.Clone()
		}

		if observer != nil {
			observer(summarize(gen, bestFitness, genFitness, EvaluateAll(pop, matrix)))
		}
	}

	elapsed := time.Since(start)
	log.Printf("[GA] Finished: best=%.2f elapsed=%v", bestFitness, elapsed)

	return &Result{
		BestRoute:   bestRoute,
		BestFitness: bestFitness,
		Generations: e.params.MaxGenerations,
		Seed:        e.seed,
		Elapsed:     elapsed,
	}, nil
}

// evolve builds the next generation into a fresh population so that selection
// always reads a stable pop.
func (e *Engine) evolve(pop Population, matrix [][]float64) Population {
	next := make(Population, 0, e.params.PopulationSize)
	for len(next) < e.params.PopulationSize {
		parent1 := TournamentSelect(e.rng, pop, matrix, e.params.TournamentSize)
		parent2 := TournamentSelect(e.rng, pop, matrix, e.params.TournamentSize)

		child := Crossover(e.rng, parent1, parent2, e.params.CrossoverRate)
		Mutate(e.rng, child, e.params.MutationRate)

		next = append(next, child)
	}
	return next
}

func summarize(gen int, bestEver, genBest float64, scores []float64) GenerationStats {
	data := stats.Float64Data(scores)
	mean, _ := data.Mean()
	median, _ := data.Median()
	stddev, _ := data.StandardDeviation()

	return GenerationStats{
		Generation:     gen,
		BestEver:       bestEver,
		GenerationBest: genBest,
		Mean:           mean,
		Median:         median,
		StdDev:         stddev,
	}
}

func timeSeed() int64 {
	return time.Now().UnixNano()
}
