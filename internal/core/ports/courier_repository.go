// Package ports defines the outbound contracts of the dispatch core:
// repositories for the aggregates, the unit of work, the routing provider,
// and the realtime broadcaster. These interfaces establish contracts between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
// Every read and write is scoped to the owning business.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// UpdateIfStatus persists the courier only if the stored row still has
	// the expected status. Returns errs.ErrPreconditionFailed when another
	// writer got there first; used to serialize assignment races.
	UpdateIfStatus(ctx context.Context, courier *courier.Courier, expected courier.Status) error

	// Get retrieves a courier aggregate by business scope and identifier.
	Get(ctx context.Context, businessID, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves the enabled couriers of a business that are
	// currently in available status. Candidates for auto-assignment.
	GetAllAvailable(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error)

	// GetAllEnabled retrieves every enabled courier of a business regardless
	// of status. Used by the suggestion surface, which scores busy couriers
	// too and lets the penalty ranking speak.
	GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error)

	// GetAllStale retrieves couriers on shift whose last position report is
	// older than the cutoff. Used by the stale-courier job.
	GetAllStale(ctx context.Context, cutoff time.Time) ([]*courier.Courier, error)
}
