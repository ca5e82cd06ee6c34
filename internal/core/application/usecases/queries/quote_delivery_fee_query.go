package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrQuoteDeliveryFeeQueryIsNotConstructed = errors.New(
	"QuoteDeliveryFeeQuery must be created via NewQuoteDeliveryFeeQuery constructor",
)

// QuoteDeliveryFeeQuery prices a prospective delivery before the order is
// placed. The drop-off point may still be unresolved; pricing then falls back
// to the pickup point with a zero trip distance.
type QuoteDeliveryFeeQuery struct {
	businessID   kernel.UUID
	pickupPoint  kernel.GeoPoint
	dropoffPoint *kernel.GeoPoint
	orderAmount  float64

	guard kernel.ConstructorGuard
}

// NewQuoteDeliveryFeeQuery creates a fee quote query.
func NewQuoteDeliveryFeeQuery(businessID kernel.UUID, pickupPoint kernel.GeoPoint, dropoffPoint *kernel.GeoPoint, orderAmount float64) (QuoteDeliveryFeeQuery, error) {
	if err := businessID.Validate(); err != nil {
		return QuoteDeliveryFeeQuery{}, err
	}
	if err := pickupPoint.Validate(); err != nil {
		return QuoteDeliveryFeeQuery{}, errs.NewValueIsRequiredErrorWithCause("pickupPoint", err)
	}
	if orderAmount < 0 {
		return QuoteDeliveryFeeQuery{}, errs.NewValueIsInvalidErrorWithCause("orderAmount",
			errors.New("order amount cannot be negative"))
	}

	query := QuoteDeliveryFeeQuery{
		businessID:  businessID,
		pickupPoint: pickupPoint,
		orderAmount: orderAmount,
		guard:       kernel.NewConstructorGuard(),
	}

	if dropoffPoint != nil {
		if err := dropoffPoint.Validate(); err != nil {
			return QuoteDeliveryFeeQuery{}, errs.NewValueIsInvalidErrorWithCause("dropoffPoint", err)
		}
		p := *dropoffPoint
		query.dropoffPoint = &p
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q QuoteDeliveryFeeQuery) Validate() error {
	return q.guard.Validate(ErrQuoteDeliveryFeeQueryIsNotConstructed)
}

// BusinessID returns the business scope of the query.
func (q QuoteDeliveryFeeQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// PickupPoint returns the pickup coordinates.
func (q QuoteDeliveryFeeQuery) PickupPoint() kernel.GeoPoint {
	return q.pickupPoint
}

// DropoffPoint returns the drop-off coordinates, or nil while unresolved.
func (q QuoteDeliveryFeeQuery) DropoffPoint() *kernel.GeoPoint {
	if q.dropoffPoint == nil {
		return nil
	}
	p := *q.dropoffPoint
	return &p
}

// OrderAmount returns the order total used for fee pricing.
func (q QuoteDeliveryFeeQuery) OrderAmount() float64 {
	return q.orderAmount
}

// QuoteDeliveryFeeQueryResponse carries the priced quote: the zone that would
// serve the delivery, its fee, the minimum order it accepts, and the
// advertised delivery-time window.
type QuoteDeliveryFeeQueryResponse struct {
	ZoneID             kernel.UUID
	ZoneName           string
	Fee                float64
	MinOrderAmount     float64
	MeetsMinimum       bool
	MinDeliveryMinutes int
	MaxDeliveryMinutes int
}
