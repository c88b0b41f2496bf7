// Package app wires the distance cache, run history and planner together
// according to the loaded configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tsp-genetic/internal/database"
	"tsp-genetic/internal/distance"
	"tsp-genetic/internal/genetic"
	"tsp-genetic/internal/models"
	"tsp-genetic/internal/routing"
	"tsp-genetic/internal/sqlite"
)

// ErrNoHistory is returned by history operations when the configured backend
// does not keep run history
var ErrNoHistory = errors.New("run history is not kept by the memory backend")

// ErrNoCache is returned by cache maintenance when distances are not persisted
var ErrNoCache = errors.New("distances are not persisted by the memory backend")

// App holds the solver and all of its dependencies
type App struct {
	store        database.DataStore // nil for the memory backend
	cache        database.DistanceCacheRepository
	distanceCalc distance.DistanceCalculator
	planner      routing.Planner
	params       genetic.Params
}

// New opens the configured backend and builds the planner
func New(cfg *database.AppConfig) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var store database.DataStore
	var cache database.DistanceCacheRepository

	switch cfg.CacheBackend {
	case database.CacheBackendSQLite:
		log.Printf("Initializing data store...")
		s, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize data store: %w", err)
		}
		store = s
		cache = s.DistanceCache()
	case database.CacheBackendFile:
		log.Printf("Initializing distance cache...")
		fc, err := database.NewFileDistanceCache(cfg.CacheFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize distance cache: %w", err)
		}
		log.Printf("Initializing data store...")
		js, err := database.NewJSONStore(cfg.RunsFilePath, fc)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize data store: %w", err)
		}
		store = js
		cache = js.DistanceCache()
	case database.CacheBackendMemory:
		log.Printf("Using in-memory distances only")
	}

	if store != nil {
		if err := store.HealthCheck(context.Background()); err != nil {
			store.Close()
			return nil, fmt.Errorf("data store health check failed: %w", err)
		}
	}

	distanceCalc, err := distance.NewHaversineCalculator(cache)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	return &App{
		store:        store,
		cache:        cache,
		distanceCalc: distanceCalc,
		planner:      routing.NewGeneticPlanner(distanceCalc, cfg.Genetic),
		params:       cfg.Genetic,
	}, nil
}

// Plan solves a tour over points and records it in the run history when
// the backend keeps one.
func (a *App) Plan(ctx context.Context, points []models.Point, observer genetic.Observer) (*models.RoutingResult, error) {
	result, err := a.planner.CalculateRoute(ctx, &routing.RoutingRequest{
		Points:   points,
		Observer: observer,
	})
	if err != nil {
		return nil, err
	}

	if a.store == nil {
		return result, nil
	}

	run, stops := routing.NewRunRecord(result, a.params)
	saved, err := a.store.Runs().Create(ctx, run, stops)
	if err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	log.Printf("Run saved: id=%d", saved.ID)

	return result, nil
}

// History lists recorded runs, newest first
func (a *App) History(ctx context.Context, limit, offset int) ([]models.RunRecord, int, error) {
	if a.store == nil {
		return nil, 0, ErrNoHistory
	}
	return a.store.Runs().List(ctx, limit, offset)
}

// Run returns a recorded run with its stops
func (a *App) Run(ctx context.Context, id int64) (*models.RunRecord, []models.RunStop, error) {
	if a.store == nil {
		return nil, nil, ErrNoHistory
	}
	return a.store.Runs().GetByID(ctx, id)
}

// DeleteRun removes a recorded run and its stops
func (a *App) DeleteRun(ctx context.Context, id int64) error {
	if a.store == nil {
		return ErrNoHistory
	}
	return a.store.Runs().Delete(ctx, id)
}

// Prewarm stores the distance of every pair among points
func (a *App) Prewarm(ctx context.Context, points []models.Point) error {
	coords := make([]models.Coordinates, len(points))
	for i := range points {
		coords[i] = points[i].GetCoords()
	}
	if err := a.distanceCalc.PrewarmCache(ctx, coords); err != nil {
		return fmt.Errorf("failed to prewarm distance cache: %w", err)
	}
	return nil
}

// ClearCache drops every persisted distance
func (a *App) ClearCache(ctx context.Context) error {
	if a.cache == nil {
		return ErrNoCache
	}
	return a.cache.Clear(ctx)
}

// Close releases the backend
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
