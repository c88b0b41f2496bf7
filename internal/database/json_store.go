package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tsp-genetic/internal/models"
)

// JSONData represents the structure of the JSON file
type JSONData struct {
	Runs      []JSONRun `json:"runs"`
	NextRunID int64     `json:"next_run_id"`
}

// JSONRun stores a run together with its stops
type JSONRun struct {
	models.RunRecord
	Stops []models.RunStop `json:"stops"`
}

// JSONStore is a JSON file-based data store
type JSONStore struct {
	filePath string
	data     *JSONData
	mu       sync.RWMutex

	runRepository           RunRepository
	distanceCacheRepository DistanceCacheRepository
}

func (s *JSONStore) Runs() RunRepository                     { return s.runRepository }
func (s *JSONStore) DistanceCache() DistanceCacheRepository { return s.distanceCacheRepository }

// NewJSONStore opens the run history file at filePath, or at
// ~/.tsp-genetic/runs.json when filePath is empty. Distances go to distanceCache.
func NewJSONStore(filePath string, distanceCache DistanceCacheRepository) (*JSONStore, error) {
	if filePath == "" {
		var err error
		filePath, err = GetRunsFilePath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	log.Printf("Using JSON data file: %s", filePath)

	store := &JSONStore{
		filePath: filePath,
		data:     &JSONData{},
	}

	if err := store.load(); err != nil {
		return nil, err
	}

	store.runRepository = &jsonRunRepository{store: store}
	store.distanceCacheRepository = distanceCache

	return store, nil
}

func (s *JSONStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		s.data = &JSONData{Runs: []JSONRun{}, NextRunID: 1}
		return s.saveUnlocked()
	}
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}

	if err := json.Unmarshal(data, s.data); err != nil {
		return fmt.Errorf("failed to parse data file: %w", err)
	}

	if s.data.Runs == nil {
		s.data.Runs = []JSONRun{}
	}
	if s.data.NextRunID < 1 {
		s.data.NextRunID = 1
	}

	log.Printf("Loaded data: %d runs", len(s.data.Runs))
	return nil
}

func (s *JSONStore) saveUnlocked() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Write to temp file first, then rename (atomic)
	tmpFile := s.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Close is a no-op for JSON store (data is saved after each operation)
func (s *JSONStore) Close() error {
	return nil
}

// HealthCheck always returns nil for JSON store
func (s *JSONStore) HealthCheck(ctx context.Context) error {
	return nil
}

type jsonRunRepository struct {
	store *JSONStore
}

// List returns runs newest first. Runs are appended in id order, so the
// newest are at the end of the slice.
func (r *jsonRunRepository) List(ctx context.Context, limit, offset int) ([]models.RunRecord, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	runs := r.store.data.Runs
	total := len(runs)

	// limit <= 0 means no limit, matching the sqlite store
	if limit <= 0 {
		limit = total
	}
	if offset < 0 {
		offset = 0
	}

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	var result []models.RunRecord
	for i := start; i < end; i++ {
		result = append(result, runs[total-1-i].RunRecord)
	}

	return result, total, nil
}

func (r *jsonRunRepository) GetByID(ctx context.Context, id int64) (*models.RunRecord, []models.RunStop, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, run := range r.store.data.Runs {
		if run.ID == id {
			record := run.RunRecord
			stops := append([]models.RunStop(nil), run.Stops...)
			return &record, stops, nil
		}
	}
	return nil, nil, ErrNotFound
}

func (r *jsonRunRepository) Create(ctx context.Context, run *models.RunRecord, stops []models.RunStop) (*models.RunRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	run.ID = r.store.data.NextRunID
	r.store.data.NextRunID++
	run.CreatedAt = time.Now().UTC()

	for i := range stops {
		stops[i].RunID = run.ID
	}

	r.store.data.Runs = append(r.store.data.Runs, JSONRun{
		RunRecord: *run,
		Stops:     append([]models.RunStop(nil), stops...),
	})

	if err := r.store.saveUnlocked(); err != nil {
		return nil, err
	}

	log.Printf("[JSON] Created run: id=%d cities=%d", run.ID, run.CityCount)
	return run, nil
}

func (r *jsonRunRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, run := range r.store.data.Runs {
		if run.ID == id {
			r.store.data.Runs = append(r.store.data.Runs[:i], r.store.data.Runs[i+1:]...)

			if err := r.store.saveUnlocked(); err != nil {
				return err
			}

			log.Printf("[JSON] Deleted run: id=%d", id)
			return nil
		}
	}

	return ErrNotFound
}
