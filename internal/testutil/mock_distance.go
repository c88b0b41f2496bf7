package testutil

import (
	"context"
	"fmt"

	"tsp-genetic/internal/models"
)

// FixedMatrixCalculator returns a preset matrix regardless of the coordinates
// it is asked about. Useful for scenarios with known pairwise distances.
type FixedMatrixCalculator struct {
	Matrix      [][]float64
	MatrixCalls int
	Err         error
}

func NewFixedMatrixCalculator(matrix [][]float64) *FixedMatrixCalculator {
	return &FixedMatrixCalculator{Matrix: matrix}
}

// GetDistance is not supported; points carry no index
func (m *FixedMatrixCalculator) GetDistance(ctx context.Context, origin, dest models.Coordinates) (float64, error) {
	return 0, fmt.Errorf("fixed matrix calculator: single lookups are not supported")
}

// GetDistanceMatrix returns a copy of the preset matrix
func (m *FixedMatrixCalculator) GetDistanceMatrix(ctx context.Context, points []models.Coordinates) ([][]float64, error) {
	m.MatrixCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	if len(points) != len(m.Matrix) {
		return nil, fmt.Errorf("fixed matrix has %d rows, got %d points", len(m.Matrix), len(points))
	}

	out := make([][]float64, len(m.Matrix))
	for i := range m.Matrix {
		out[i] = append([]float64(nil), m.Matrix[i]...)
	}
	return out, nil
}

// PrewarmCache is a no-op for the mock
func (m *FixedMatrixCalculator) PrewarmCache(ctx context.Context, points []models.Coordinates) error {
	return nil
}

// MockDistanceCache is an in-memory DistanceCacheRepository that records traffic
type MockDistanceCache struct {
	entries map[string]*models.DistanceCacheEntry
	Gets    int
	Sets    int
	GetErr  error
	SetErr  error
}

func NewMockDistanceCache() *MockDistanceCache {
	return &MockDistanceCache{
		entries: make(map[string]*models.DistanceCacheEntry),
	}
}

func (c *MockDistanceCache) cacheKey(origin, dest models.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f->%.5f,%.5f",
		models.RoundCoordinate(origin.Lat), models.RoundCoordinate(origin.Lng),
		models.RoundCoordinate(dest.Lat), models.RoundCoordinate(dest.Lng))
}

func (c *MockDistanceCache) Get(ctx context.Context, origin, dest models.Coordinates) (*models.DistanceCacheEntry, error) {
	c.Gets++
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	if entry, ok := c.entries[c.cacheKey(origin, dest)]; ok {
		return entry, nil
	}
	return nil, nil
}

func (c *MockDistanceCache) GetBatch(ctx context.Context, pairs []struct{ Origin, Dest models.Coordinates }) (map[string]*models.DistanceCacheEntry, error) {
	result := make(map[string]*models.DistanceCacheEntry)
	for _, pair := range pairs {
		entry, err := c.Get(ctx, pair.Origin, pair.Dest)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			result[c.cacheKey(pair.Origin, pair.Dest)] = entry
		}
	}
	return result, nil
}

func (c *MockDistanceCache) Set(ctx context.Context, entry *models.DistanceCacheEntry) error {
	c.Sets++
	if c.SetErr != nil {
		return c.SetErr
	}
	e := *entry
	c.entries[c.cacheKey(entry.Origin, entry.Destination)] = &e
	return nil
}

func (c *MockDistanceCache) SetBatch(ctx context.Context, entries []models.DistanceCacheEntry) error {
	for i := range entries {
		if err := c.Set(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *MockDistanceCache) Clear(ctx context.Context) error {
	c.entries = make(map[string]*models.DistanceCacheEntry)
	return nil
}

// Count returns the number of entries in the cache
func (c *MockDistanceCache) Count() int {
	return len(c.entries)
}
