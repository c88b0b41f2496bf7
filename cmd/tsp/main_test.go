package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsp-genetic/internal/database"
)

func setupEnv(t *testing.T, backend string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TSP_CONFIG", filepath.Join(home, "config.yaml"))
	t.Setenv("TSP_CACHE", backend)
	t.Setenv("TSP_DB_PATH", filepath.Join(home, "runs.db"))
	t.Setenv("TSP_SEED", "")
	t.Setenv("TSP_QUIET", "")
	return home
}

func TestRun_CitiesFlag(t *testing.T) {
	setupEnv(t, database.CacheBackendMemory)

	var out bytes.Buffer
	err := run([]string{"-cities", "New York,London", "-generations", "3", "-seed", "5"}, strings.NewReader(""), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Generation 0: Best Distance = 11140.44\n")
	assert.Contains(t, text, "Generation 2: Best Distance = 11140.44\n")
	assert.NotContains(t, text, "Generation 3:")
	assert.Contains(t, text, "Execution Time: ")
	assert.Contains(t, text, "Best Route Found:\n")
	assert.Contains(t, text, "Distance: 11,140 km\n")
}

func TestRun_InteractiveQuiet(t *testing.T) {
	setupEnv(t, database.CacheBackendMemory)
	t.Setenv("TSP_QUIET", "true")

	var out bytes.Buffer
	input := "3\nKoper\nNowhere\npiran\nIzola\n"
	err := run([]string{"-generations", "20", "-seed", "1"}, strings.NewReader(input), &out)
	require.NoError(t, err)

	text := out.String()
	assert.NotContains(t, text, "Generation ")
	assert.Contains(t, text, "Invalid city name entered. Please choose from the available cities.")
	assert.Contains(t, text, "Best Route Found:")
	for _, name := range []string{"Koper", "Piran", "Izola"} {
		assert.Contains(t, text, name)
	}
}

func TestRun_InvalidCount(t *testing.T) {
	setupEnv(t, database.CacheBackendMemory)

	err := run(nil, strings.NewReader("1\n"), &bytes.Buffer{})
	assert.EqualError(t, err, "Invalid number of cities. Please enter between 2 and 26")

	err = run([]string{"-cities", "Rome"}, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)

	err = run([]string{"-cities", "Rome,Gotham"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "Gotham")
}

func TestRun_HistoryWithSQLite(t *testing.T) {
	setupEnv(t, database.CacheBackendSQLite)

	err := run([]string{"-cities", "Vienna,Prague,Berlin", "-generations", "10", "-quiet", "-seed", "77"}, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-history"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Showing 1 of 1 runs:")
	assert.Contains(t, out.String(), "seed=77")

	out.Reset()
	require.NoError(t, run([]string{"-run", "1"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Run #1: 3 cities")
}

func TestRun_HistoryUnavailableInMemory(t *testing.T) {
	setupEnv(t, database.CacheBackendMemory)

	err := run([]string{"-history"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "memory backend")
}

func TestRun_SaveConfig(t *testing.T) {
	home := setupEnv(t, database.CacheBackendFile)

	require.NoError(t, run([]string{"-save-config", "-generations", "250"}, strings.NewReader(""), &bytes.Buffer{}))

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cache_backend: file")
	assert.Contains(t, string(data), "max_generations: 250")

	cfg, err := database.LoadConfig(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Genetic.MaxGenerations)
}

func TestRun_DeleteRun(t *testing.T) {
	setupEnv(t, database.CacheBackendSQLite)

	err := run([]string{"-cities", "Rome,Paris", "-generations", "5", "-quiet"}, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-delete-run", "1"}, strings.NewReader(""), &out))
	assert.Equal(t, "Deleted run #1\n", out.String())

	err = run([]string{"-run", "1"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, database.ErrNotFound)

	err = run([]string{"-delete-run", "1"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRun_PrewarmAndClearCache(t *testing.T) {
	setupEnv(t, database.CacheBackendSQLite)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-prewarm"}, strings.NewReader(""), &out))
	assert.Equal(t, "Stored distances for 325 city pairs\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"-clear-cache"}, strings.NewReader(""), &out))
	assert.Equal(t, "Distance cache cleared\n", out.String())
}

func TestRun_ClearCacheUnavailableInMemory(t *testing.T) {
	setupEnv(t, database.CacheBackendMemory)

	err := run([]string{"-clear-cache"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "memory backend")
}

func TestApplyOverrides_ExplicitZeroSeed(t *testing.T) {
	home := setupEnv(t, database.CacheBackendMemory)
	t.Setenv("TSP_SEED", "5")

	require.NoError(t, run([]string{"-save-config", "-seed", "0"}, strings.NewReader(""), &bytes.Buffer{}))
	cfg, err := database.LoadConfig(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Genetic.Seed)

	require.NoError(t, run([]string{"-save-config"}, strings.NewReader(""), &bytes.Buffer{}))
	cfg, err = database.LoadConfig(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.Genetic.Seed)
}

func TestApplyOverrides_BadSeed(t *testing.T) {
	setupEnv(t, database.CacheBackendMemory)
	t.Setenv("TSP_SEED", "abc")

	err := run([]string{"-cities", "Rome,Paris"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "TSP_SEED")
}
