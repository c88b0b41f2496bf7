package genetic

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPopulationSize = 100
	DefaultMaxGenerations = 500
	DefaultMutationRate   = 0.1
	DefaultCrossoverRate  = 0.8
	DefaultTournamentSize = 5
)

var validate = validator.New()

// Params holds the tuning knobs of a GA run.
// Seed 0 means the engine seeds itself from the clock.
type Params struct {
	PopulationSize int     `yaml:"population_size" validate:"gte=1"`
	MaxGenerations int     `yaml:"max_generations" validate:"gte=1"`
	MutationRate   float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	CrossoverRate  float64 `yaml:"crossover_rate" validate:"gte=0,lte=1"`
	TournamentSize int     `yaml:"tournament_size" validate:"gte=1"`
	Seed           int64   `yaml:"seed"`
}

// DefaultParams returns the standard configuration: 100 routes, 500 generations,
// mutation 0.1, crossover 0.8, tournaments of 5.
func DefaultParams() Params {
	return Params{
		PopulationSize: DefaultPopulationSize,
		MaxGenerations: DefaultMaxGenerations,
		MutationRate:   DefaultMutationRate,
		CrossoverRate:  DefaultCrossoverRate,
		TournamentSize: DefaultTournamentSize,
	}
}

// Validate checks that every parameter is within its allowed range
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid genetic parameters: %w", err)
	}
	return nil
}
