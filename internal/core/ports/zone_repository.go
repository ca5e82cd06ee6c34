package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
)

// ZoneRepository defines the persistence contract for service zones.
type ZoneRepository interface {
	// Add persists a new zone aggregate to storage.
	Add(ctx context.Context, aggregate *zone.Zone) error

	// Update persists changes to an existing zone aggregate.
	Update(ctx context.Context, aggregate *zone.Zone) error

	// Get retrieves a zone aggregate by business scope and identifier.
	Get(ctx context.Context, businessID, id kernel.UUID) (*zone.Zone, error)

	// GetAllEnabled retrieves the enabled zones of a business sorted by
	// descending priority. Zone lookup walks this order and takes the first
	// zone containing the point.
	GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*zone.Zone, error)
}
