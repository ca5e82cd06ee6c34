package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var ErrGetCourierSuggestionsQueryIsNotConstructed = errors.New(
	"GetCourierSuggestionsQuery must be created via NewGetCourierSuggestionsQuery constructor",
)

// GetCourierSuggestionsQuery ranks the business's available couriers for a
// specific delivery. Dispatchers use it to see who the auto-assigner would
// pick and why before assigning manually.
type GetCourierSuggestionsQuery struct {
	businessID kernel.UUID
	deliveryID kernel.UUID
	limit      int

	guard kernel.ConstructorGuard
}

// NewGetCourierSuggestionsQuery creates a suggestion query. A limit <= 0
// means no cap on the number of suggestions.
func NewGetCourierSuggestionsQuery(businessID, deliveryID kernel.UUID, limit int) (GetCourierSuggestionsQuery, error) {
	if err := businessID.Validate(); err != nil {
		return GetCourierSuggestionsQuery{}, err
	}
	if err := deliveryID.Validate(); err != nil {
		return GetCourierSuggestionsQuery{}, errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}

	return GetCourierSuggestionsQuery{
		businessID: businessID,
		deliveryID: deliveryID,
		limit:      limit,
		guard:      kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierSuggestionsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierSuggestionsQueryIsNotConstructed)
}

// BusinessID returns the business scope of the query.
func (q GetCourierSuggestionsQuery) BusinessID() kernel.UUID {
	return q.businessID
}

// DeliveryID returns the delivery to rank couriers for.
func (q GetCourierSuggestionsQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// Limit returns the maximum number of suggestions to return.
func (q GetCourierSuggestionsQuery) Limit() int {
	return q.limit
}

// ScoreBreakdownResponse itemizes the scoring components of one suggestion.
type ScoreBreakdownResponse struct {
	Load               int
	Proximity          int
	VehicleSuitability int
	Rating             int
	ConcurrentPenalty  int
}

// GetCourierSuggestionsQueryResponse is one ranked suggestion: the courier's
// identity, its total score and the per-component breakdown.
type GetCourierSuggestionsQueryResponse struct {
	CourierID       kernel.UUID
	Name            string
	Vehicle         string
	DeliveriesToday int
	Score           int
	Breakdown       ScoreBreakdownResponse
}
