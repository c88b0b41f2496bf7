package database

import (
	"context"

	"tsp-genetic/internal/models"
)

// DataStore is the interface for data persistence
type DataStore interface {
	Close() error
	HealthCheck(ctx context.Context) error
	Runs() RunRepository
	DistanceCache() DistanceCacheRepository
}

// RunRepository handles solver run history persistence
type RunRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.RunRecord, int, error)
	GetByID(ctx context.Context, id int64) (*models.RunRecord, []models.RunStop, error)
	Create(ctx context.Context, run *models.RunRecord, stops []models.RunStop) (*models.RunRecord, error)
	Delete(ctx context.Context, id int64) error
}

// DistanceCacheRepository handles distance cache persistence
type DistanceCacheRepository interface {
	Get(ctx context.Context, origin, dest models.Coordinates) (*models.DistanceCacheEntry, error)
	GetBatch(ctx context.Context, pairs []struct{ Origin, Dest models.Coordinates }) (map[string]*models.DistanceCacheEntry, error)
	Set(ctx context.Context, entry *models.DistanceCacheEntry) error
	SetBatch(ctx context.Context, entries []models.DistanceCacheEntry) error
	Clear(ctx context.Context) error
}
