package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"tsp-genetic/internal/genetic"
)

const (
	AppDirName        = ".tsp-genetic"
	CacheDirName      = "cache"
	DistanceCacheFile = "distances.json"
	SQLiteDBFileName  = "data.db"
	RunsFileName      = "runs.json"
	ConfigFileName    = "config.yaml"
)

// Cache backends accepted in AppConfig.CacheBackend
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
)

var validate = validator.New()

// GetAppDir returns ~/.tsp-genetic, creating it if needed
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, AppDirName)
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}

	return appDir, nil
}

// GetCacheDir returns ~/.tsp-genetic/cache, creating it if needed
func GetCacheDir() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}

	cacheDir := filepath.Join(appDir, CacheDirName)
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	return cacheDir, nil
}

// GetDistanceCachePath returns ~/.tsp-genetic/cache/distances.json
func GetDistanceCachePath() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, DistanceCacheFile), nil
}

// GetDefaultDBPath returns the default SQLite database path: ~/.tsp-genetic/data.db
func GetDefaultDBPath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, SQLiteDBFileName), nil
}

// GetRunsFilePath returns ~/.tsp-genetic/runs.json
func GetRunsFilePath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, RunsFileName), nil
}

// GetConfigFilePath returns ~/.tsp-genetic/config.yaml
func GetConfigFilePath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFileName), nil
}

// AppConfig stores application configuration
type AppConfig struct {
	DatabasePath  string         `yaml:"database_path"`
	CacheBackend  string         `yaml:"cache_backend" validate:"oneof=sqlite file memory"`
	CacheFilePath string         `yaml:"cache_file_path,omitempty"` // file backend only; default path when empty
	RunsFilePath  string         `yaml:"runs_file_path,omitempty"`  // file backend only; default path when empty
	Genetic       genetic.Params `yaml:"genetic"`
}

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() (*AppConfig, error) {
	dbPath, err := GetDefaultDBPath()
	if err != nil {
		return nil, err
	}
	return &AppConfig{
		DatabasePath: dbPath,
		CacheBackend: CacheBackendSQLite,
		Genetic:      genetic.DefaultParams(),
	}, nil
}

// Validate checks the backend name and the genetic parameters
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig loads the application config from configPath (the default path
// when empty). Fields missing from the file keep their defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	if configPath == "" {
		var err error
		configPath, err = GetConfigFilePath()
		if err != nil {
			return nil, err
		}
	}

	config, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.DatabasePath == "" {
		config.DatabasePath, err = GetDefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	if config.CacheBackend == "" {
		config.CacheBackend = CacheBackendSQLite
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes config to configPath (the default path when empty)
func SaveConfig(configPath string, config *AppConfig) error {
	if configPath == "" {
		var err error
		configPath, err = GetConfigFilePath()
		if err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Atomic write
	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	log.Printf("Config saved: path=%s database_path=%s", configPath, config.DatabasePath)
	return nil
}
