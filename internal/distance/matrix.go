package distance

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"tsp-genetic/internal/models"
)

var validate = validator.New()

// Matrix is a square table of distances in kilometers indexed by point position.
// It is not modified after Build returns.
type Matrix [][]float64

// Size returns the number of points the matrix covers
func (m Matrix) Size() int {
	return len(m)
}

// IsSymmetric reports whether m[i][j] == m[j][i] for all i, j and the diagonal is zero
func (m Matrix) IsSymmetric() bool {
	for i := range m {
		if len(m[i]) != len(m) || m[i][i] != 0 {
			return false
		}
		for j := i + 1; j < len(m); j++ {
			if m[i][j] != m[j][i] {
				return false
			}
		}
	}
	return true
}

// ErrInvalidInput is returned when points cannot form a tour
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

type coordinateRule struct {
	Lat float64 `validate:"latitude"`
	Lng float64 `validate:"longitude"`
}

// ValidatePoints rejects fewer than 2 points and any coordinate outside
// [-90, 90] x [-180, 180]
func ValidatePoints(points []models.Point) error {
	if len(points) < 2 {
		return &ErrInvalidInput{Reason: fmt.Sprintf("need at least 2 points, got %d", len(points))}
	}
	for i, p := range points {
		if err := validate.Struct(coordinateRule{Lat: p.Lat, Lng: p.Lng}); err != nil {
			return &ErrInvalidInput{
				Reason: fmt.Sprintf("point %d (%q) has invalid coordinates (%v, %v)", i, p.Name, p.Lat, p.Lng),
			}
		}
	}
	return nil
}

// Build produces the distance matrix for points, in the order given.
// Entries are rounded to 2 decimals; the diagonal is exactly 0.
func Build(ctx context.Context, calc DistanceCalculator, points []models.Point) (Matrix, error) {
	if err := ValidatePoints(points); err != nil {
		return nil, err
	}

	start := time.Now()
	coords := make([]models.Coordinates, len(points))
	for i := range points {
		coords[i] = points[i].GetCoords()
	}

	raw, err := calc.GetDistanceMatrix(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("failed to compute distance matrix: %w", err)
	}

	n := len(points)
	if len(raw) != n {
		return nil, fmt.Errorf("distance calculator returned %d rows for %d points", len(raw), n)
	}

	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if len(raw[i]) != n {
			return nil, fmt.Errorf("distance calculator returned %d columns in row %d", len(raw[i]), i)
		}
		for j := i + 1; j < n; j++ {
			d := models.RoundDistance(raw[i][j])
			m[i][j], m[j][i] = d, d
		}
	}

	log.Printf("[TIMING] Distance matrix (%d points): %v", n, time.Since(start))
	return m, nil
}
