package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"tsp-genetic/internal/database"

	_ "modernc.org/sqlite"
)

const (
	DefaultDBFileName = "data.db"
	schemaVersion     = 1
)

// Store is a SQLite-based data store implementing database.DataStore
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex

	runRepo           database.RunRepository
	distanceCacheRepo database.DistanceCacheRepository
}

// New creates a new SQLite store at the specified path
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log.Printf("[SQLITE] Opening database at: %s", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// pragmas below are per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store.runRepo = &runRepository{store: store}
	store.distanceCacheRepo = &distanceCacheRepository{store: store}

	return store, nil
}

// GetDBPath returns the current database file path
func (s *Store) GetDBPath() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist, create everything
		return s.createSchema()
	}

	if version < schemaVersion {
		if err := s.runMigrations(version); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (1);

	-- Completed solver runs
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		city_count INTEGER NOT NULL,
		total_distance_km REAL NOT NULL,
		generations INTEGER NOT NULL,
		population_size INTEGER NOT NULL,
		mutation_rate REAL NOT NULL,
		crossover_rate REAL NOT NULL,
		seed INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Tour order of each run
	CREATE TABLE IF NOT EXISTS run_stops (
		run_id INTEGER NOT NULL,
		stop_order INTEGER NOT NULL,
		point_name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		distance_from_prev_km REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, stop_order),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	-- Distance cache, one row per unordered coordinate pair
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin_lat REAL NOT NULL,
		origin_lng REAL NOT NULL,
		dest_lat REAL NOT NULL,
		dest_lng REAL NOT NULL,
		distance_km REAL NOT NULL,
		PRIMARY KEY (origin_lat, origin_lng, dest_lat, dest_lng)
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("[SQLITE] Schema initialized (version %d)", schemaVersion)
	return nil
}

func (s *Store) runMigrations(fromVersion int) error {
	log.Printf("[SQLITE] Migrating schema from version %d to %d", fromVersion, schemaVersion)
	_, err := s.db.Exec("UPDATE schema_version SET version = ?", schemaVersion)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		// Checkpoint WAL before closing
		s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		return s.db.Close()
	}
	return nil
}

// HealthCheck verifies the database connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Repository accessors
func (s *Store) Runs() database.RunRepository                    { return s.runRepo }
func (s *Store) DistanceCache() database.DistanceCacheRepository { return s.distanceCacheRepo }
