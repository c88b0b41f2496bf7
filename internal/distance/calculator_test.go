package distance

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsp-genetic/internal/models"
	"tsp-genetic/internal/testutil"
)

var (
	newYork   = models.Coordinates{Lat: 40.7128, Lng: -74.0060}
	london    = models.Coordinates{Lat: 51.5074, Lng: -0.1278}
	ljubljana = models.Coordinates{Lat: 46.0569, Lng: 14.5058}
	zagreb    = models.Coordinates{Lat: 45.8150, Lng: 15.9819}
)

func TestHaversine(t *testing.T) {
	d := Haversine(newYork, london)
	assert.InDelta(t, 5570.2, d, 1.0)

	assert.Equal(t, 0.0, Haversine(london, london))
	assert.InDelta(t, Haversine(london, newYork), d, 1e-9)

	// a quarter of the equator
	quarter := Haversine(models.Coordinates{Lat: 0, Lng: 0}, models.Coordinates{Lat: 0, Lng: 90})
	assert.InDelta(t, EarthRadiusKm*math.Pi/2, quarter, 1e-6)
}

func TestHaversine_AntipodalIsFinite(t *testing.T) {
	halfCircumference := EarthRadiusKm * math.Pi
	pairs := [][2]models.Coordinates{
		{{Lat: -85.46, Lng: -179}, {Lat: 85.46, Lng: 1}},
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 180}},
		{{Lat: 90, Lng: 0}, {Lat: -90, Lng: 0}},
	}

	for lat := -89.0; lat <= 89; lat += 0.37 {
		for lng := -180.0; lng < 0; lng += 7.3 {
			pairs = append(pairs, [2]models.Coordinates{{Lat: lat, Lng: lng}, {Lat: -lat, Lng: lng + 180}})
		}
	}

	for _, p := range pairs {
		d := Haversine(p[0], p[1])
		require.False(t, math.IsNaN(d), "NaN for %v -> %v", p[0], p[1])
		assert.InDelta(t, halfCircumference, d, 0.01, "%v -> %v", p[0], p[1])
	}
}

func TestBuild_AntipodalPointsYieldFiniteMatrix(t *testing.T) {
	calc, err := NewHaversineCalculator(nil)
	require.NoError(t, err)

	m, err := Build(context.Background(), calc, []models.Point{
		{Name: "South", Lat: -85.46, Lng: -179},
		{Name: "North", Lat: 85.46, Lng: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoundDistance(EarthRadiusKm*math.Pi), m[0][1])
}

func TestCanonicalPair(t *testing.T) {
	a1, b1 := canonicalPair(newYork, london)
	a2, b2 := canonicalPair(london, newYork)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, newYork, a1)

	// equal latitude falls back to longitude
	west := models.Coordinates{Lat: 10, Lng: -5}
	east := models.Coordinates{Lat: 10, Lng: 5}
	a, b := canonicalPair(east, west)
	assert.Equal(t, west, a)
	assert.Equal(t, east, b)
}

func TestGetDistance_RoundsAndPersists(t *testing.T) {
	cache := testutil.NewMockDistanceCache()
	calc, err := NewHaversineCalculator(cache)
	require.NoError(t, err)
	ctx := context.Background()

	d, err := calc.GetDistance(ctx, newYork, london)
	require.NoError(t, err)
	assert.Equal(t, models.RoundDistance(Haversine(newYork, london)), d)
	assert.Equal(t, 1, cache.Sets)

	// reversed pair hits the memo, no second write
	again, err := calc.GetDistance(ctx, london, newYork)
	require.NoError(t, err)
	assert.Equal(t, d, again)
	assert.Equal(t, 1, cache.Sets)
	assert.Equal(t, 1, cache.Count())
}

func TestGetDistance_SamePointIsZero(t *testing.T) {
	cache := testutil.NewMockDistanceCache()
	calc, err := NewHaversineCalculator(cache)
	require.NoError(t, err)

	d, err := calc.GetDistance(context.Background(), london, models.Coordinates{Lat: 51.507401, Lng: -0.127801})
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
	assert.Zero(t, cache.Gets)
}

func TestGetDistance_ReadsThroughCache(t *testing.T) {
	cache := testutil.NewMockDistanceCache()
	a, b := canonicalPair(ljubljana, zagreb)
	require.NoError(t, cache.Set(context.Background(), &models.DistanceCacheEntry{
		Origin: a, Destination: b, DistanceKm: 111.11,
	}))

	calc, err := NewHaversineCalculator(cache)
	require.NoError(t, err)

	d, err := calc.GetDistance(context.Background(), zagreb, ljubljana)
	require.NoError(t, err)
	assert.Equal(t, 111.11, d)
	assert.Equal(t, 1, cache.Sets, "cached value is not written back")
}

func TestGetDistance_CacheErrorPropagates(t *testing.T) {
	cache := testutil.NewMockDistanceCache()
	cache.GetErr = errors.New("disk on fire")

	calc, err := NewHaversineCalculator(cache)
	require.NoError(t, err)

	_, err = calc.GetDistance(context.Background(), newYork, london)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestGetDistanceMatrix_WithoutCache(t *testing.T) {
	calc, err := NewHaversineCalculator(nil)
	require.NoError(t, err)

	points := []models.Coordinates{newYork, london, ljubljana, zagreb}
	m, err := calc.GetDistanceMatrix(context.Background(), points)
	require.NoError(t, err)
	require.Len(t, m, 4)

	assert.True(t, Matrix(m).IsSymmetric())
	for i := range points {
		for j := range points {
			if i == j {
				continue
			}
			assert.Equal(t, models.RoundDistance(Haversine(points[i], points[j])), m[i][j])
		}
	}
}

func TestGetDistanceMatrix_PartialCache(t *testing.T) {
	cache := testutil.NewMockDistanceCache()
	a, b := canonicalPair(ljubljana, zagreb)
	require.NoError(t, cache.Set(context.Background(), &models.DistanceCacheEntry{
		Origin: a, Destination: b, DistanceKm: 117.0,
	}))
	cache.Sets = 0

	calc, err := NewHaversineCalculator(cache)
	require.NoError(t, err)

	m, err := calc.GetDistanceMatrix(context.Background(), []models.Coordinates{ljubljana, zagreb, london})
	require.NoError(t, err)

	assert.Equal(t, 117.0, m[0][1])
	assert.Equal(t, 117.0, m[1][0])
	// the two pairs involving London were computed and stored
	assert.Equal(t, 2, cache.Sets)
	assert.Equal(t, 3, cache.Count())

	// second call is served from the memo alone
	gets := cache.Gets
	_, err = calc.GetDistanceMatrix(context.Background(), []models.Coordinates{ljubljana, zagreb, london})
	require.NoError(t, err)
	assert.Equal(t, gets, cache.Gets)
}

func TestPrewarmCache(t *testing.T) {
	cache := testutil.NewMockDistanceCache()
	calc, err := NewHaversineCalculator(cache)
	require.NoError(t, err)

	require.NoError(t, calc.PrewarmCache(context.Background(), []models.Coordinates{newYork, london, ljubljana}))
	assert.Equal(t, 3, cache.Count())
}
