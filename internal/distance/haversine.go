package distance

import (
	"math"

	"tsp-genetic/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by Haversine
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// points given in degrees. The result is not rounded.
func Haversine(a, b models.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	// rounding can push h just outside [0, 1] for near-antipodal points
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// canonicalPair orders a coordinate pair so that (a, b) and (b, a) share one
// cache entry. Ordering is by rounded latitude, then rounded longitude.
func canonicalPair(a, b models.Coordinates) (models.Coordinates, models.Coordinates) {
	aLat, bLat := models.RoundCoordinate(a.Lat), models.RoundCoordinate(b.Lat)
	if aLat < bLat || (aLat == bLat && models.RoundCoordinate(a.Lng) <= models.RoundCoordinate(b.Lng)) {
		return a, b
	}
	return b, a
}
