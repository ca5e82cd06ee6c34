package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
)

// ZoneReader supplies the enabled zones of a business, highest priority first.
type ZoneReader interface {
	GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*zone.Zone, error)
}

// QuoteDeliveryFeeQueryHandler resolves the serving zone for a prospective
// delivery and prices its fee. The zone is resolved against the drop-off
// point when known, otherwise against the pickup point, matching how
// delivery creation prices the trip.
type QuoteDeliveryFeeQueryHandler struct {
	zones ZoneReader
}

// NewQuoteDeliveryFeeQueryHandler creates a handler for fee quote queries.
func NewQuoteDeliveryFeeQueryHandler(zones ZoneReader) QuoteDeliveryFeeQueryHandler {
	return QuoteDeliveryFeeQueryHandler{
		zones: zones,
	}
}

// Handle executes the query. Returns zone.ErrOutsideServiceArea when no
// enabled zone contains the pricing point. An order below the zone minimum
// still gets a quote; MeetsMinimum reports the shortfall.
func (h QuoteDeliveryFeeQueryHandler) Handle(ctx context.Context, query QuoteDeliveryFeeQuery) (QuoteDeliveryFeeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteDeliveryFeeQueryResponse{}, err
	}

	zones, err := h.zones.GetAllEnabled(ctx, query.BusinessID())
	if err != nil {
		return QuoteDeliveryFeeQueryResponse{}, err
	}

	pricingPoint := query.PickupPoint()
	if dropoff := query.DropoffPoint(); dropoff != nil {
		pricingPoint = *dropoff
	}

	servingZone, err := zone.FirstContaining(zones, pricingPoint)
	if err != nil {
		return QuoteDeliveryFeeQueryResponse{}, err
	}

	tripKm := 0.0
	if dropoff := query.DropoffPoint(); dropoff != nil {
		meters, distErr := query.PickupPoint().DistanceTo(*dropoff)
		if distErr != nil {
			return QuoteDeliveryFeeQueryResponse{}, distErr
		}
		tripKm = meters / 1000
	}

	return QuoteDeliveryFeeQueryResponse{
		ZoneID:             servingZone.ID(),
		ZoneName:           servingZone.Name(),
		Fee:                servingZone.DeliveryFee(tripKm, query.OrderAmount()),
		MinOrderAmount:     servingZone.Pricing().MinOrderAmount,
		MeetsMinimum:       servingZone.AcceptsOrderAmount(query.OrderAmount()),
		MinDeliveryMinutes: servingZone.MinDeliveryMinutes(),
		MaxDeliveryMinutes: servingZone.MaxDeliveryMinutes(),
	}, nil
}
