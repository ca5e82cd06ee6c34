// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrTrackDeliveryQueryIsNotConstructed = errors.New(
	"TrackDeliveryQuery must be created via NewTrackDeliveryQuery constructor",
)

// TrackDeliveryQuery retrieves the public tracking view of a delivery by its
// opaque tracking token. This is the only read surface exposed to customers,
// so the token is the sole input and the response deliberately omits internal
// identifiers.
//
// Example:
//
//	query, err := NewTrackDeliveryQuery(token)
//	if err != nil {
//	    return fmt.Errorf("invalid tracking token: %w", err)
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to track delivery: %w", err)
//	}
//	fmt.Printf("Delivery is %s\n", view.Status)
type TrackDeliveryQuery struct {
	trackingToken string

	guard kernel.ConstructorGuard
}

// NewTrackDeliveryQuery creates a tracking query for the given token.
func NewTrackDeliveryQuery(trackingToken string) (TrackDeliveryQuery, error) {
	if trackingToken == "" {
		return TrackDeliveryQuery{}, errs.NewValueIsRequiredError("trackingToken")
	}

	return TrackDeliveryQuery{
		trackingToken: trackingToken,
		guard:         kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrTrackDeliveryQueryIsNotConstructed)
}

// TrackingToken returns the opaque token identifying the delivery.
func (q TrackDeliveryQuery) TrackingToken() string {
	return q.trackingToken
}

// CourierPositionResponse is the courier's last known position in the
// tracking read model.
type CourierPositionResponse struct {
	Lat float64
	Lon float64
	At  time.Time
}

// TrackDeliveryQueryResponse is the customer-facing tracking read model. It
// carries the delivery status, the drop-off address, the assigned courier's
// first name and last position when one is assigned, and the estimated
// arrival when known.
type TrackDeliveryQueryResponse struct {
	Status           string
	DropoffAddress   string
	CourierName      *string
	CourierPosition  *CourierPositionResponse
	EstimatedArrival *time.Time
	PickedUpAt       *time.Time
	DeliveredAt      *time.Time
}
