package routing

import (
	"context"
	"log"
	"time"

	"tsp-genetic/internal/distance"
	"tsp-genetic/internal/genetic"
	"tsp-genetic/internal/models"
)

// geneticPlanner builds a haversine matrix and evolves a tour over it
type geneticPlanner struct {
	distanceCalc distance.DistanceCalculator
	params       genetic.Params
}

// NewGeneticPlanner creates a planner backed by the genetic engine. Every
// call to CalculateRoute runs a fresh engine seeded from params.Seed.
func NewGeneticPlanner(distanceCalc distance.DistanceCalculator, params genetic.Params) Planner {
	return &geneticPlanner{
		distanceCalc: distanceCalc,
		params:       params,
	}
}

func (p *geneticPlanner) CalculateRoute(ctx context.Context, req *RoutingRequest) (*models.RoutingResult, error) {
	totalStart := time.Now()
	log.Printf("[ROUTING] Starting calculation: points=%d generations=%d population=%d",
		len(req.Points), p.params.MaxGenerations, p.params.PopulationSize)

	matrix, err := distance.Build(ctx, p.distanceCalc, req.Points)
	if err != nil {
		return nil, err
	}

	engine, err := genetic.NewEngine(p.params)
	if err != nil {
		return nil, err
	}

	gaStart := time.Now()
	res, err := engine.Run(matrix, req.Observer)
	if err != nil {
		return nil, err
	}
	log.Printf("[TIMING] Evolution: %v", time.Since(gaStart))

	if !res.BestRoute.IsPermutation() || len(res.BestRoute) != len(req.Points) {
		return nil, &ErrRoutingFailed{Reason: "solver returned an incomplete tour"}
	}

	result := buildResult(req.Points, matrix, res)

	log.Printf("[ROUTING] Complete: stops=%d total_distance=%.2fkm seed=%d",
		len(result.Stops), result.TotalDistanceKm, result.Seed)
	log.Printf("[TIMING] TOTAL: %v", time.Since(totalStart))

	return result, nil
}

// buildResult maps the winning index permutation back to named stops
func buildResult(points []models.Point, matrix distance.Matrix, res *genetic.Result) *models.RoutingResult {
	stops := make([]models.RouteStop, len(res.BestRoute))
	cumulative := 0.0
	for k, idx := range res.BestRoute {
		leg := 0.0
		if k > 0 {
			leg = matrix[res.BestRoute[k-1]][idx]
		}
		cumulative += leg
		stops[k] = models.RouteStop{
			Order:                k,
			Index:                idx,
			Point:                points[idx],
			DistanceFromPrevKm:   leg,
			CumulativeDistanceKm: models.RoundDistance(cumulative),
		}
	}

	return &models.RoutingResult{
		Stops:           stops,
		Route:           []int(res.BestRoute.Clone()),
		TotalDistanceKm: models.RoundDistance(res.BestFitness),
		Generations:     res.Generations,
		Seed:            res.Seed,
		Elapsed:         res.Elapsed,
	}
}
