package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tsp-genetic/internal/database"
	"tsp-genetic/internal/models"
)

type runRepository struct {
	store *Store
}

const runColumns = `id, city_count, total_distance_km, generations, population_size,
	mutation_rate, crossover_rate, seed, elapsed_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.RunRecord, error) {
	var run models.RunRecord
	err := row.Scan(
		&run.ID, &run.CityCount, &run.TotalDistanceKm, &run.Generations, &run.PopulationSize,
		&run.MutationRate, &run.CrossoverRate, &run.Seed, &run.ElapsedMs, &run.CreatedAt,
	)
	return run, err
}

// List returns runs newest first, along with the total number of runs
func (r *runRepository) List(ctx context.Context, limit, offset int) ([]models.RunRecord, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var total int
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	// sqlite treats a negative LIMIT as unbounded
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + runColumns + `
	          FROM runs
	          ORDER BY id DESC
	          LIMIT ? OFFSET ?`

	rows, err := r.store.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, total, nil
}

func (r *runRepository) GetByID(ctx context.Context, id int64) (*models.RunRecord, []models.RunStop, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	run, err := scanRun(r.store.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil, database.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get run: %w", err)
	}

	stopQuery := `SELECT run_id, stop_order, point_name, lat, lng, distance_from_prev_km
	              FROM run_stops
	              WHERE run_id = ?
	              ORDER BY stop_order`

	rows, err := r.store.db.QueryContext(ctx, stopQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run stops: %w", err)
	}
	defer rows.Close()

	var stops []models.RunStop
	for rows.Next() {
		var s models.RunStop
		if err := rows.Scan(&s.RunID, &s.StopOrder, &s.PointName, &s.Lat, &s.Lng, &s.DistanceFromPrevKm); err != nil {
			return nil, nil, fmt.Errorf("failed to scan run stop: %w", err)
		}
		stops = append(stops, s)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating run stops: %w", err)
	}

	return &run, stops, nil
}

func (r *runRepository) Create(ctx context.Context, run *models.RunRecord, stops []models.RunStop) (*models.RunRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	run.CreatedAt = time.Now().UTC()
	runQuery := `INSERT INTO runs
	             (city_count, total_distance_km, generations, population_size,
	              mutation_rate, crossover_rate, seed, elapsed_ms, created_at)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, runQuery,
		run.CityCount, run.TotalDistanceKm, run.Generations, run.PopulationSize,
		run.MutationRate, run.CrossoverRate, run.Seed, run.ElapsedMs, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = runID

	stopQuery := `INSERT INTO run_stops
	              (run_id, stop_order, point_name, lat, lng, distance_from_prev_km)
	              VALUES (?, ?, ?, ?, ?, ?)`

	for i := range stops {
		stops[i].RunID = runID
		s := stops[i]
		if _, err := tx.ExecContext(ctx, stopQuery,
			s.RunID, s.StopOrder, s.PointName, s.Lat, s.Lng, s.DistanceFromPrevKm,
		); err != nil {
			return nil, fmt.Errorf("failed to create run stop: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return run, nil
}

func (r *runRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Foreign key cascade deletes the stops
	result, err := r.store.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrNotFound
	}

	return nil
}
