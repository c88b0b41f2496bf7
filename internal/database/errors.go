package database

import (
	"errors"
	"fmt"

	"tsp-genetic/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("entity not found")

// MakeCacheKey creates a unique key for a coordinate pair
func MakeCacheKey(origin, dest models.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f->%.5f,%.5f",
		models.RoundCoordinate(origin.Lat), models.RoundCoordinate(origin.Lng),
		models.RoundCoordinate(dest.Lat), models.RoundCoordinate(dest.Lng))
}
