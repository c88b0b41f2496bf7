package routing

import (
	"tsp-genetic/internal/genetic"
	"tsp-genetic/internal/models"
)

// NewRunRecord converts a planner result into the rows persisted as run history
func NewRunRecord(result *models.RoutingResult, params genetic.Params) (*models.RunRecord, []models.RunStop) {
	run := &models.RunRecord{
		CityCount:       len(result.Stops),
		TotalDistanceKm: result.TotalDistanceKm,
		Generations:     result.Generations,
		PopulationSize:  params.PopulationSize,
		MutationRate:    params.MutationRate,
		CrossoverRate:   params.CrossoverRate,
		Seed:            result.Seed,
		ElapsedMs:       result.Elapsed.Milliseconds(),
	}

	stops := make([]models.RunStop, len(result.Stops))
	for i, s := range result.Stops {
		stops[i] = models.RunStop{
			StopOrder:          s.Order,
			PointName:          s.Point.Name,
			Lat:                s.Point.Lat,
			Lng:                s.Point.Lng,
			DistanceFromPrevKm: s.DistanceFromPrevKm,
		}
	}
	return run, stops
}
