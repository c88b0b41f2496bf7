package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tsp-genetic/internal/database"
	"tsp-genetic/internal/models"
)

type distanceCacheRepository struct {
	store *Store
}

const selectDistanceQuery = `SELECT origin_lat, origin_lng, dest_lat, dest_lng, distance_km
	FROM distance_cache
	WHERE origin_lat = ? AND origin_lng = ? AND dest_lat = ? AND dest_lng = ?`

const upsertDistanceQuery = `INSERT OR REPLACE INTO distance_cache
	(origin_lat, origin_lng, dest_lat, dest_lng, distance_km)
	VALUES (?, ?, ?, ?, ?)`

// roundedArgs returns the key columns for a coordinate pair
func roundedArgs(origin, dest models.Coordinates) []any {
	return []any{
		models.RoundCoordinate(origin.Lat),
		models.RoundCoordinate(origin.Lng),
		models.RoundCoordinate(dest.Lat),
		models.RoundCoordinate(dest.Lng),
	}
}

func scanEntry(row *sql.Row) (*models.DistanceCacheEntry, error) {
	var entry models.DistanceCacheEntry
	err := row.Scan(
		&entry.Origin.Lat, &entry.Origin.Lng,
		&entry.Destination.Lat, &entry.Destination.Lng,
		&entry.DistanceKm,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *distanceCacheRepository) Get(ctx context.Context, origin, dest models.Coordinates) (*models.DistanceCacheEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entry, err := scanEntry(r.store.db.QueryRowContext(ctx, selectDistanceQuery, roundedArgs(origin, dest)...))
	if err != nil {
		return nil, fmt.Errorf("failed to get distance cache entry: %w", err)
	}
	return entry, nil
}

func (r *distanceCacheRepository) GetBatch(ctx context.Context, pairs []struct{ Origin, Dest models.Coordinates }) (map[string]*models.DistanceCacheEntry, error) {
	result := make(map[string]*models.DistanceCacheEntry)
	if len(pairs) == 0 {
		return result, nil
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// SQLite doesn't support tuple comparisons well, so we query each pair
	stmt, err := r.store.db.PrepareContext(ctx, selectDistanceQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare batch query: %w", err)
	}
	defer stmt.Close()

	for _, pair := range pairs {
		entry, err := scanEntry(stmt.QueryRowContext(ctx, roundedArgs(pair.Origin, pair.Dest)...))
		if err != nil {
			return nil, fmt.Errorf("failed to query batch entry: %w", err)
		}
		if entry != nil {
			result[database.MakeCacheKey(pair.Origin, pair.Dest)] = entry
		}
	}

	return result, nil
}

func (r *distanceCacheRepository) Set(ctx context.Context, entry *models.DistanceCacheEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	args := append(roundedArgs(entry.Origin, entry.Destination), entry.DistanceKm)
	if _, err := r.store.db.ExecContext(ctx, upsertDistanceQuery, args...); err != nil {
		return fmt.Errorf("failed to set distance cache entry: %w", err)
	}

	return nil
}

func (r *distanceCacheRepository) SetBatch(ctx context.Context, entries []models.DistanceCacheEntry) error {
	if len(entries) == 0 {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertDistanceQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		args := append(roundedArgs(entry.Origin, entry.Destination), entry.DistanceKm)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert batch entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *distanceCacheRepository) Clear(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM distance_cache"); err != nil {
		return fmt.Errorf("failed to clear distance cache: %w", err)
	}

	return nil
}
