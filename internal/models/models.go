package models

import (
	"math"
	"time"
)

// Coordinates represents a geographic point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point represents a named location in degrees
type Point struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// GetCoords returns the coordinates of the point
func (p *Point) GetCoords() Coordinates {
	return Coordinates{Lat: p.Lat, Lng: p.Lng}
}

// RoundCoordinate rounds a coordinate to 5 decimal places (~1m precision).
// Cache keys are built from rounded coordinates.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*100000) / 100000
}

// RoundDistance rounds a distance in kilometers to 2 decimal places
func RoundDistance(km float64) float64 {
	return math.Round(km*100) / 100
}

// RouteStop represents a single stop in a calculated tour
type RouteStop struct {
	Order                int     `json:"order"`
	Index                int     `json:"index"`
	Point                Point   `json:"point"`
	DistanceFromPrevKm   float64 `json:"distance_from_prev_km"`
	CumulativeDistanceKm float64 `json:"cumulative_distance_km"`
}

// RoutingResult contains the full result of a tour calculation.
// Stops are in visiting order; the tour closes back to Stops[0].
type RoutingResult struct {
	Stops           []RouteStop   `json:"stops"`
	Route           []int         `json:"route"`
	TotalDistanceKm float64       `json:"total_distance_km"`
	Generations     int           `json:"generations"`
	Seed            int64         `json:"seed"`
	Elapsed         time.Duration `json:"elapsed"`
}

// RunRecord is a persisted summary of a completed solver run
type RunRecord struct {
	ID              int64     `json:"id"`
	CityCount       int       `json:"city_count"`
	TotalDistanceKm float64   `json:"total_distance_km"`
	Generations     int       `json:"generations"`
	PopulationSize  int       `json:"population_size"`
	MutationRate    float64   `json:"mutation_rate"`
	CrossoverRate   float64   `json:"crossover_rate"`
	Seed            int64     `json:"seed"`
	ElapsedMs       int64     `json:"elapsed_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

// RunStop is one visited point of a persisted run, in tour order
type RunStop struct {
	RunID              int64   `json:"run_id"`
	StopOrder          int     `json:"stop_order"`
	PointName          string  `json:"point_name"`
	Lat                float64 `json:"lat"`
	Lng                float64 `json:"lng"`
	DistanceFromPrevKm float64 `json:"distance_from_prev_km"`
}

// DistanceCacheEntry represents a cached distance lookup
type DistanceCacheEntry struct {
	Origin      Coordinates `json:"origin"`
	Destination Coordinates `json:"destination"`
	DistanceKm  float64     `json:"distance_km"`
}
