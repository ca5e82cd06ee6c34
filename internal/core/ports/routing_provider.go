package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// Route is a routing estimate between two points for a given vehicle class.
type Route struct {
	DistanceMeters  float64
	DurationSeconds int
}

// RoutingProvider estimates travel distance and duration via an external
// routing service. Callers bound every call with a context timeout; a slow or
// failing provider must never block the operation that asked.
type RoutingProvider interface {
	// CalculateRoute estimates the trip from origin to destination for the
	// given vehicle class.
	CalculateRoute(ctx context.Context, origin, destination kernel.GeoPoint, vehicle courier.Vehicle) (Route, error)
}
