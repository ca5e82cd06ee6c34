package queries

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// CourierReader supplies the enabled couriers of a business. Busy couriers
// are part of the candidate set; the concurrent-load penalty ranks them down
// instead of hiding them.
type CourierReader interface {
	GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error)
}

// DeliveryReader supplies a single delivery within the business scope.
type DeliveryReader interface {
	Get(ctx context.Context, businessID, id kernel.UUID) (*delivery.Delivery, error)
}

// GetCourierSuggestionsQueryHandler ranks candidate couriers for a delivery.
// Unlike the raw-SQL read models, this query needs the scoring rules of the
// domain, so it loads aggregates through readers and delegates ranking to
// the candidate scorer.
type GetCourierSuggestionsQueryHandler struct {
	couriers   CourierReader
	deliveries DeliveryReader
	scorer     services.CandidateScorer
}

// NewGetCourierSuggestionsQueryHandler creates a handler for suggestion queries.
func NewGetCourierSuggestionsQueryHandler(
	couriers CourierReader,
	deliveries DeliveryReader,
	scorer services.CandidateScorer,
) GetCourierSuggestionsQueryHandler {
	return GetCourierSuggestionsQueryHandler{
		couriers:   couriers,
		deliveries: deliveries,
		scorer:     scorer,
	}
}

// Handle executes the query. No candidate couriers yields an empty list, not
// an error.
func (h GetCourierSuggestionsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierSuggestionsQuery,
) ([]GetCourierSuggestionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveryEntity, err := h.deliveries.Get(ctx, query.BusinessID(), query.DeliveryID())
	if err != nil {
		return nil, err
	}

	candidates, err := h.couriers.GetAllEnabled(ctx, query.BusinessID())
	if err != nil {
		return nil, err
	}

	tripKm := 0.0
	if dropoff := deliveryEntity.DropoffPoint(); dropoff != nil {
		meters, distErr := deliveryEntity.PickupPoint().DistanceTo(*dropoff)
		if distErr != nil {
			return nil, distErr
		}
		tripKm = meters / 1000
	}

	scored, err := h.scorer.Suggest(candidates, deliveryEntity.PickupPoint(), tripKm, query.Limit())
	if err != nil {
		return nil, err
	}

	suggestions := make([]GetCourierSuggestionsQueryResponse, 0, len(scored))
	for _, candidate := range scored {
		suggestions = append(suggestions, GetCourierSuggestionsQueryResponse{
			CourierID:       candidate.Courier.ID(),
			Name:            candidate.Courier.Name(),
			Vehicle:         candidate.Courier.Vehicle().String(),
			DeliveriesToday: candidate.Courier.DeliveriesToday(),
			Score:           candidate.Score,
			Breakdown: ScoreBreakdownResponse{
				Load:               candidate.Breakdown.Load,
				Proximity:          candidate.Breakdown.Proximity,
				VehicleSuitability: candidate.Breakdown.VehicleSuitability,
				Rating:             candidate.Breakdown.Rating,
				ConcurrentPenalty:  candidate.Breakdown.ConcurrentPenalty,
			},
		})
	}

	return suggestions, nil
}
