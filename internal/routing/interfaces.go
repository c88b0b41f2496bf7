package routing

import (
	"context"
	"fmt"

	"tsp-genetic/internal/genetic"
	"tsp-genetic/internal/models"
)

// RoutingRequest contains the input for a tour calculation
type RoutingRequest struct {
	Points   []models.Point
	Observer genetic.Observer // optional, called once per generation
}

// Planner finds a short closed tour through every requested point
type Planner interface {
	CalculateRoute(ctx context.Context, req *RoutingRequest) (*models.RoutingResult, error)
}

// ErrRoutingFailed is returned when the solver produced no usable tour
type ErrRoutingFailed struct {
	Reason string
}

func (e *ErrRoutingFailed) Error() string {
	return fmt.Sprintf("routing failed: %s", e.Reason)
}
