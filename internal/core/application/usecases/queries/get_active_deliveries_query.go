package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves every non-terminal delivery of a
// business for the dispatcher board.
type GetActiveDeliveriesQuery struct {
	businessID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query scoped to one business.
func NewGetActiveDeliveriesQuery(businessID kernel.UUID) (GetActiveDeliveriesQuery, error) {
	if err := businessID.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}

	return GetActiveDeliveriesQuery{
		businessID: businessID,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// BusinessID returns the business scope of the query.
func (q GetActiveDeliveriesQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// GetActiveDeliveriesQueryResponse is one row of the dispatcher board:
// delivery identity, status, both addresses, the assigned courier when there
// is one, and the money and timing columns the operator watches.
type GetActiveDeliveriesQueryResponse struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	Status           string
	PickupAddress    string
	DropoffAddress   string
	CustomerName     string
	CourierID        *kernel.UUID
	CourierName      *string
	Fee              float64
	Tip              float64
	EstimatedArrival *time.Time
	AcceptedAt       *time.Time
}
