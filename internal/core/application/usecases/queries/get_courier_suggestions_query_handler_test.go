package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCourierReader struct {
	mock.Mock
}

func (m *MockCourierReader) GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockDeliveryReader struct {
	mock.Mock
}

func (m *MockDeliveryReader) Get(ctx context.Context, businessID, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func newShortTripDelivery(t *testing.T, businessID kernel.UUID) *delivery.Delivery {
	t.Helper()
	dropoff := mustGeoPoint(t, 55.76, 37.61)
	d, err := delivery.NewDelivery(delivery.NewDeliveryParams{
		ID:             kernel.NewUUID(),
		BusinessID:     businessID,
		OrderID:        kernel.NewUUID(),
		PickupAddress:  "1 Bakery Lane",
		PickupPoint:    mustGeoPoint(t, 55.75, 37.61),
		DropoffAddress: "9 Elm Street",
		DropoffPoint:   &dropoff,
		CustomerName:   "Alex",
		CustomerPhone:  "+15550100",
		Fee:            4,
	})
	require.NoError(t, err)
	return d
}

func newAvailableCourierAt(t *testing.T, businessID kernel.UUID, name string, vehicle courier.Vehicle, position kernel.GeoPoint) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), businessID, name, vehicle)
	require.NoError(t, err)
	require.NoError(t, c.ChangeStatus(courier.StatusAvailable))
	require.NoError(t, c.UpdatePosition(position, time.Now().UTC()))
	return c
}

func TestGetCourierSuggestionsQueryHandler_Handle(t *testing.T) {
	t.Run("should rank the nearby courier above the distant one", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		businessID := kernel.NewUUID()
		d := newShortTripDelivery(t, businessID)

		near := newAvailableCourierAt(t, businessID, "Near", courier.VehicleBicycle, mustGeoPoint(t, 55.7505, 37.6105))
		far := newAvailableCourierAt(t, businessID, "Far", courier.VehicleBicycle, mustGeoPoint(t, 55.79, 37.70))

		courierReader := new(MockCourierReader)
		deliveryReader := new(MockDeliveryReader)
		deliveryReader.On("Get", ctx, businessID, d.ID()).Return(d, nil)
		courierReader.On("GetAllEnabled", ctx, businessID).Return([]*courier.Courier{far, near}, nil)

		handler := queries.NewGetCourierSuggestionsQueryHandler(courierReader, deliveryReader, services.NewCandidateScorer())
		query, err := queries.NewGetCourierSuggestionsQuery(businessID, d.ID(), 0)
		require.NoError(t, err)

		// Act
		suggestions, err := handler.Handle(ctx, query)

		// Assert
		require.NoError(t, err)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "Near", suggestions[0].Name)
		assert.Equal(t, "Far", suggestions[1].Name)
		assert.Greater(t, suggestions[0].Score, suggestions[1].Score)
		assert.Greater(t, suggestions[0].Breakdown.Proximity, suggestions[1].Breakdown.Proximity)
		assert.Equal(t, "bicycle", suggestions[0].Vehicle)
		courierReader.AssertExpectations(t)
		deliveryReader.AssertExpectations(t)
	})

	t.Run("should cap the list at the query limit", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		businessID := kernel.NewUUID()
		d := newShortTripDelivery(t, businessID)

		candidates := []*courier.Courier{
			newAvailableCourierAt(t, businessID, "One", courier.VehicleBicycle, mustGeoPoint(t, 55.75, 37.61)),
			newAvailableCourierAt(t, businessID, "Two", courier.VehicleBicycle, mustGeoPoint(t, 55.751, 37.611)),
			newAvailableCourierAt(t, businessID, "Three", courier.VehicleBicycle, mustGeoPoint(t, 55.752, 37.612)),
		}

		courierReader := new(MockCourierReader)
		deliveryReader := new(MockDeliveryReader)
		deliveryReader.On("Get", ctx, businessID, d.ID()).Return(d, nil)
		courierReader.On("GetAllEnabled", ctx, businessID).Return(candidates, nil)

		handler := queries.NewGetCourierSuggestionsQueryHandler(courierReader, deliveryReader, services.NewCandidateScorer())
		query, err := queries.NewGetCourierSuggestionsQuery(businessID, d.ID(), 2)
		require.NoError(t, err)

		// Act
		suggestions, err := handler.Handle(ctx, query)

		// Assert
		require.NoError(t, err)
		assert.Len(t, suggestions, 2)
	})

	t.Run("should return empty list when no couriers are available", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		businessID := kernel.NewUUID()
		d := newShortTripDelivery(t, businessID)

		courierReader := new(MockCourierReader)
		deliveryReader := new(MockDeliveryReader)
		deliveryReader.On("Get", ctx, businessID, d.ID()).Return(d, nil)
		courierReader.On("GetAllEnabled", ctx, businessID).Return([]*courier.Courier{}, nil)

		handler := queries.NewGetCourierSuggestionsQueryHandler(courierReader, deliveryReader, services.NewCandidateScorer())
		query, err := queries.NewGetCourierSuggestionsQuery(businessID, d.ID(), 0)
		require.NoError(t, err)

		// Act
		suggestions, err := handler.Handle(ctx, query)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})

	t.Run("should propagate delivery not found", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		businessID := kernel.NewUUID()
		deliveryID := kernel.NewUUID()

		courierReader := new(MockCourierReader)
		deliveryReader := new(MockDeliveryReader)
		deliveryReader.On("Get", ctx, businessID, deliveryID).
			Return(nil, errs.NewObjectNotFoundError("delivery", deliveryID.String()))

		handler := queries.NewGetCourierSuggestionsQueryHandler(courierReader, deliveryReader, services.NewCandidateScorer())
		query, err := queries.NewGetCourierSuggestionsQuery(businessID, deliveryID, 0)
		require.NoError(t, err)

		// Act
		_, err = handler.Handle(ctx, query)

		// Assert
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		courierReader.AssertNotCalled(t, "GetAllEnabled", mock.Anything, mock.Anything)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		// Arrange
		handler := queries.NewGetCourierSuggestionsQueryHandler(new(MockCourierReader), new(MockDeliveryReader), services.NewCandidateScorer())

		// Act
		_, err := handler.Handle(context.Background(), queries.GetCourierSuggestionsQuery{})

		// Assert
		require.ErrorIs(t, err, queries.ErrGetCourierSuggestionsQueryIsNotConstructed)
	})
}
