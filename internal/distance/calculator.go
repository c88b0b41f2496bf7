package distance

import (
	"context"
	"fmt"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"

	"tsp-genetic/internal/database"
	"tsp-genetic/internal/models"
)

// memoSize bounds the in-process distance memo; 26 cities need 325 pairs
const memoSize = 8192

// DistanceCalculator provides distances in kilometers between coordinates
type DistanceCalculator interface {
	GetDistance(ctx context.Context, origin, dest models.Coordinates) (float64, error)
	GetDistanceMatrix(ctx context.Context, points []models.Coordinates) ([][]float64, error)
	PrewarmCache(ctx context.Context, points []models.Coordinates) error
}

type haversineCalculator struct {
	cache database.DistanceCacheRepository
	memo  *lru.Cache[string, float64]
}

// NewHaversineCalculator creates a great-circle calculator. Distances are
// rounded to 2 decimals, memoized in process and, when cache is non-nil,
// persisted through it.
func NewHaversineCalculator(cache database.DistanceCacheRepository) (DistanceCalculator, error) {
	memo, err := lru.New[string, float64](memoSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create distance memo: %w", err)
	}
	return &haversineCalculator{
		cache: cache,
		memo:  memo,
	}, nil
}

func (c *haversineCalculator) GetDistance(ctx context.Context, origin, dest models.Coordinates) (float64, error) {
	if samePoint(origin, dest) {
		return 0, nil
	}

	origin, dest = canonicalPair(origin, dest)
	key := database.MakeCacheKey(origin, dest)
	if d, ok := c.memo.Get(key); ok {
		return d, nil
	}

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, origin, dest)
		if err != nil {
			return 0, err
		}
		if cached != nil {
			c.memo.Add(key, cached.DistanceKm)
			return cached.DistanceKm, nil
		}
	}

	d := models.RoundDistance(Haversine(origin, dest))
	c.memo.Add(key, d)

	if c.cache != nil {
		if err := c.cache.Set(ctx, &models.DistanceCacheEntry{
			Origin:      origin,
			Destination: dest,
			DistanceKm:  d,
		}); err != nil {
			return 0, err
		}
	}

	return d, nil
}

// GetDistanceMatrix computes the upper triangle once and mirrors it, so the
// result is symmetric with a zero diagonal.
func (c *haversineCalculator) GetDistanceMatrix(ctx context.Context, points []models.Coordinates) ([][]float64, error) {
	n := len(points)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	type cell struct{ i, j int }
	var missing []cell
	var lookups []struct{ Origin, Dest models.Coordinates }
	memoHits := 0

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if samePoint(points[i], points[j]) {
				continue
			}
			a, b := canonicalPair(points[i], points[j])
			if d, ok := c.memo.Get(database.MakeCacheKey(a, b)); ok {
				matrix[i][j], matrix[j][i] = d, d
				memoHits++
				continue
			}
			missing = append(missing, cell{i, j})
			lookups = append(lookups, struct{ Origin, Dest models.Coordinates }{a, b})
		}
	}

	if len(missing) == 0 {
		log.Printf("[DISTANCE] Distance matrix all memoized: points=%d", n)
		return matrix, nil
	}

	var found map[string]*models.DistanceCacheEntry
	if c.cache != nil {
		var err error
		found, err = c.cache.GetBatch(ctx, lookups)
		if err != nil {
			return nil, err
		}
	}

	var entries []models.DistanceCacheEntry
	cacheHits := 0
	for k, pos := range missing {
		a, b := lookups[k].Origin, lookups[k].Dest
		key := database.MakeCacheKey(a, b)

		var d float64
		if entry, ok := found[key]; ok {
			d = entry.DistanceKm
			cacheHits++
		} else {
			d = models.RoundDistance(Haversine(a, b))
			entries = append(entries, models.DistanceCacheEntry{Origin: a, Destination: b, DistanceKm: d})
		}

		c.memo.Add(key, d)
		matrix[pos.i][pos.j], matrix[pos.j][pos.i] = d, d
	}

	if c.cache != nil && len(entries) > 0 {
		if err := c.cache.SetBatch(ctx, entries); err != nil {
			return nil, err
		}
	}

	log.Printf("[DISTANCE] Distance matrix: points=%d memo=%d cached=%d computed=%d",
		n, memoHits, cacheHits, len(entries))
	return matrix, nil
}

// PrewarmCache computes and stores every pairwise distance among points
func (c *haversineCalculator) PrewarmCache(ctx context.Context, points []models.Coordinates) error {
	_, err := c.GetDistanceMatrix(ctx, points)
	return err
}

func samePoint(a, b models.Coordinates) bool {
	return models.RoundCoordinate(a.Lat) == models.RoundCoordinate(b.Lat) &&
		models.RoundCoordinate(a.Lng) == models.RoundCoordinate(b.Lng)
}
