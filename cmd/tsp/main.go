package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"tsp-genetic/internal/app"
	"tsp-genetic/internal/catalog"
	"tsp-genetic/internal/database"
	"tsp-genetic/internal/genetic"
	"tsp-genetic/internal/models"
	"tsp-genetic/internal/prompt"
	"tsp-genetic/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

type options struct {
	seed        int64
	generations int
	population  int
	cities      string
	history     bool
	historySize int
	showRun     int64
	deleteRun   int64
	clearCache  bool
	prewarm     bool
	quiet       bool
	detailed    bool
	legs        bool
	saveConfig  bool
	verbose     bool

	set map[string]bool // flags passed explicitly
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("tsp", flag.ContinueOnError)
	opts := &options{}

	fs.Int64Var(&opts.seed, "seed", 0, "random seed (0 seeds from the clock)")
	fs.IntVar(&opts.generations, "generations", 0, "number of generations (overrides config)")
	fs.IntVar(&opts.population, "population", 0, "population size (overrides config)")
	fs.StringVar(&opts.cities, "cities", "", "comma separated city names; prompts when empty")
	fs.BoolVar(&opts.history, "history", false, "list recorded runs and exit")
	fs.IntVar(&opts.historySize, "limit", 20, "number of runs listed by -history")
	fs.Int64Var(&opts.showRun, "run", 0, "show a recorded run by id and exit")
	fs.Int64Var(&opts.deleteRun, "delete-run", 0, "delete a recorded run by id and exit")
	fs.BoolVar(&opts.clearCache, "clear-cache", false, "drop all persisted distances and exit")
	fs.BoolVar(&opts.prewarm, "prewarm", false, "store distances between all catalog cities and exit")
	fs.BoolVar(&opts.quiet, "quiet", false, "suppress per-generation progress")
	fs.BoolVar(&opts.detailed, "stats", false, "include population statistics in progress lines")
	fs.BoolVar(&opts.legs, "legs", false, "print per-leg distances after the route")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "write the effective configuration and exit")
	fs.BoolVar(&opts.verbose, "v", false, "show internal logs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if !opts.verbose && !envBool("TSP_VERBOSE") {
		log.SetOutput(io.Discard)
	}

	configPath := getEnv("TSP_CONFIG", "")
	cfg, err := database.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	if opts.saveConfig {
		if err := cfg.Validate(); err != nil {
			return err
		}
		return database.SaveConfig(configPath, cfg)
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer a.Close()

	ctx := context.Background()

	if opts.history {
		runs, total, err := a.History(ctx, opts.historySize, 0)
		if err != nil {
			return err
		}
		report.History(stdout, runs, total, time.Now())
		return nil
	}
	if opts.set["delete-run"] {
		if err := a.DeleteRun(ctx, opts.deleteRun); err != nil {
			return fmt.Errorf("failed to delete run %d: %w", opts.deleteRun, err)
		}
		fmt.Fprintf(stdout, "Deleted run #%d\n", opts.deleteRun)
		return nil
	}
	if opts.clearCache {
		if err := a.ClearCache(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Distance cache cleared")
		return nil
	}
	if opts.prewarm {
		if err := a.Prewarm(ctx, catalog.All()); err != nil {
			return err
		}
		n := catalog.Size()
		fmt.Fprintf(stdout, "Stored distances for %d city pairs\n", n*(n-1)/2)
		return nil
	}
	if opts.set["run"] {
		runRecord, stops, err := a.Run(ctx, opts.showRun)
		if err != nil {
			return fmt.Errorf("failed to load run %d: %w", opts.showRun, err)
		}
		report.RunDetail(stdout, runRecord, stops)
		return nil
	}

	points, err := collectPoints(opts.cities, stdin, stdout)
	if err != nil {
		return err
	}

	var observer genetic.Observer
	if !opts.quiet && !envBool("TSP_QUIET") {
		observer = report.Progress(stdout, opts.detailed)
	}

	result, err := a.Plan(ctx, points, observer)
	if err != nil {
		return err
	}

	report.Result(stdout, result)
	if opts.legs {
		report.Legs(stdout, result)
	}
	return nil
}

// applyOverrides layers env vars and then flags over the loaded config
func applyOverrides(cfg *database.AppConfig, opts *options) error {
	cfg.DatabasePath = getEnv("TSP_DB_PATH", cfg.DatabasePath)
	cfg.CacheBackend = getEnv("TSP_CACHE", cfg.CacheBackend)

	if v := getEnv("TSP_SEED", ""); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TSP_SEED %q: %w", v, err)
		}
		cfg.Genetic.Seed = seed
	}

	if opts.set["seed"] {
		cfg.Genetic.Seed = opts.seed
	}
	if opts.set["generations"] {
		cfg.Genetic.MaxGenerations = opts.generations
	}
	if opts.set["population"] {
		cfg.Genetic.PopulationSize = opts.population
	}
	return nil
}

func collectPoints(cities string, stdin io.Reader, stdout io.Writer) ([]models.Point, error) {
	if cities == "" {
		return prompt.New(stdin, stdout).Collect()
	}

	points, err := catalog.ParseList(cities)
	if err != nil {
		return nil, err
	}
	if len(points) < 2 || len(points) > catalog.Size() {
		return nil, &prompt.ErrInvalidCount{Input: cities, Max: catalog.Size()}
	}
	return points, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
