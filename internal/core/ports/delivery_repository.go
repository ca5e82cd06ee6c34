package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	// The delivery must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// UpdateIfStatus persists the delivery only if the stored row still has
	// the expected status. Returns errs.ErrPreconditionFailed when another
	// writer got there first; used to serialize assignment races.
	UpdateIfStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error

	// Get retrieves a delivery aggregate by business scope and identifier.
	Get(ctx context.Context, businessID, id kernel.UUID) (*delivery.Delivery, error)

	// GetByTrackingToken retrieves a delivery by its public tracking token.
	// Tokens are globally unique, so no business scope applies.
	GetByTrackingToken(ctx context.Context, token string) (*delivery.Delivery, error)

	// GetAllActive retrieves the deliveries of a business that are in a
	// non-terminal status.
	GetAllActive(ctx context.Context, businessID kernel.UUID) ([]*delivery.Delivery, error)

	// GetAllInStatus retrieves the deliveries of a business in the given
	// status, ordered by acceptance time.
	GetAllInStatus(ctx context.Context, businessID kernel.UUID, status delivery.Status) ([]*delivery.Delivery, error)
}
