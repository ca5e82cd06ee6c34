package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// restoreWithCourier rebuilds the delivery so its courier reference matches
// the courier the mocks will return.
func restoreWithCourier(t *testing.T, d *delivery.Delivery, c *courier.Courier) *delivery.Delivery {
	t.Helper()
	courierID := c.ID()
	restored, err := delivery.RestoreDelivery(delivery.RestoreDeliveryParams{
		ID:             d.ID(),
		BusinessID:     d.BusinessID(),
		OrderID:        d.OrderID(),
		Status:         d.Status(),
		PickupAddress:  d.PickupAddress(),
		PickupPoint:    d.PickupPoint(),
		DropoffAddress: d.DropoffAddress(),
		DropoffPoint:   d.DropoffPoint(),
		CustomerName:   d.CustomerName(),
		CustomerPhone:  d.CustomerPhone(),
		CourierID:      &courierID,
		TrackingToken:  d.TrackingToken(),
		Fee:            d.Fee(),
	})
	require.NoError(t, err)
	return restored
}

type locationFixture struct {
	deliveryRepo *MockDeliveryRepository
	courierRepo  *MockCourierRepository
	uow          *MockUoW
	routing      *MockRoutingProvider
	broadcaster  *fakeBroadcaster
	handler      commands.ReportLocationCommandHandler
}

func newLocationFixture(t *testing.T) locationFixture {
	t.Helper()
	f := locationFixture{
		deliveryRepo: new(MockDeliveryRepository),
		courierRepo:  new(MockCourierRepository),
		uow:          new(MockUoW),
		routing:      new(MockRoutingProvider),
		broadcaster:  &fakeBroadcaster{},
	}
	factory := new(MockUoWFactory)
	factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", t.Context()).Return(nil).Once()
	f.uow.On("Rollback", t.Context()).Return(nil).Once()
	f.uow.On("DeliveryRepository").Return(f.deliveryRepo)
	f.uow.On("CourierRepository").Return(f.courierRepo)

	f.handler = commands.NewReportLocationCommandHandler(factory, f.routing, f.broadcaster, discardLogger())
	return f
}

func locationCommand(t *testing.T, businessID, deliveryID kernel.UUID, lat, lon float64) commands.ReportLocationCommand {
	t.Helper()
	cmd, err := commands.NewReportLocationCommand(commands.NewReportLocationCommandParams{
		BusinessID: businessID,
		DeliveryID: deliveryID,
		Position:   mustGeoPoint(t, lat, lon),
	})
	require.NoError(t, err)
	return cmd
}

func TestReportLocationCommandHandler_Handle_IngestsReport(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	courierEntity := newAvailableCourier(t, businessID, "Holder")
	deliveryEntity := newDeliveryInStatus(t, businessID, delivery.StatusOnTheWay)
	deliveryEntity = restoreWithCourier(t, deliveryEntity, courierEntity)
	require.NoError(t, courierEntity.AssignDelivery(deliveryEntity.ID()))

	f := newLocationFixture(t)
	f.deliveryRepo.On("Get", ctx, businessID, deliveryEntity.ID()).Return(deliveryEntity, nil).Once()
	f.courierRepo.On("Get", ctx, businessID, courierEntity.ID()).Return(courierEntity, nil).Once()
	f.courierRepo.On("Update", ctx, courierEntity).Return(nil).Once()
	f.routing.On("CalculateRoute", mock.Anything, mock.Anything, mock.Anything, courier.VehicleBicycle).
		Return(ports.Route{DistanceMeters: 900, DurationSeconds: 300}, nil).Once()
	f.deliveryRepo.On("Update", ctx, deliveryEntity).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	// Report from ~1.1 km south of the drop-off: history + position + ETA,
	// but no proximity transition.
	cmd := locationCommand(t, businessID, deliveryEntity.ID(), 55.75, 37.61)

	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Equal(t, delivery.StatusOnTheWay, deliveryEntity.Status())
	assert.Len(t, deliveryEntity.History(), 1)
	require.NotNil(t, courierEntity.Position())
	assert.InDelta(t, 55.75, courierEntity.Position().Latitude(), 1e-9)
	require.NotNil(t, deliveryEntity.DurationSeconds())
	assert.Equal(t, 300, *deliveryEntity.DurationSeconds())
	require.NotNil(t, deliveryEntity.EstimatedArrival())
	assert.Equal(t, []string{"courier.location"}, f.broadcaster.eventNames())
	f.deliveryRepo.AssertExpectations(t)
	f.courierRepo.AssertExpectations(t)
}

func TestReportLocationCommandHandler_Handle_ProximityFiresNearby(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	courierEntity := newAvailableCourier(t, businessID, "Holder")
	deliveryEntity := newDeliveryInStatus(t, businessID, delivery.StatusOnTheWay)
	deliveryEntity = restoreWithCourier(t, deliveryEntity, courierEntity)
	require.NoError(t, courierEntity.AssignDelivery(deliveryEntity.ID()))

	f := newLocationFixture(t)
	f.deliveryRepo.On("Get", ctx, businessID, deliveryEntity.ID()).Return(deliveryEntity, nil).Once()
	f.courierRepo.On("Get", ctx, businessID, courierEntity.ID()).Return(courierEntity, nil).Once()
	f.courierRepo.On("Update", ctx, courierEntity).Return(nil).Once()
	f.routing.On("CalculateRoute", mock.Anything, mock.Anything, mock.Anything, courier.VehicleBicycle).
		Return(ports.Route{DistanceMeters: 150, DurationSeconds: 60}, nil).Once()
	f.deliveryRepo.On("Update", ctx, deliveryEntity).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	// ~150 m south of the drop-off at (55.76, 37.61).
	cmd := locationCommand(t, businessID, deliveryEntity.ID(), 55.75865, 37.61)

	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Equal(t, delivery.StatusNearby, deliveryEntity.Status())
}

func TestReportLocationCommandHandler_Handle_SecondCloseReportIsNoFire(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	courierEntity := newAvailableCourier(t, businessID, "Holder")
	deliveryEntity := newDeliveryInStatus(t, businessID, delivery.StatusNearby)
	deliveryEntity = restoreWithCourier(t, deliveryEntity, courierEntity)
	require.NoError(t, courierEntity.AssignDelivery(deliveryEntity.ID()))

	f := newLocationFixture(t)
	f.deliveryRepo.On("Get", ctx, businessID, deliveryEntity.ID()).Return(deliveryEntity, nil).Once()
	f.courierRepo.On("Get", ctx, businessID, courierEntity.ID()).Return(courierEntity, nil).Once()
	f.courierRepo.On("Update", ctx, courierEntity).Return(nil).Once()
	f.routing.On("CalculateRoute", mock.Anything, mock.Anything, mock.Anything, courier.VehicleBicycle).
		Return(ports.Route{DistanceMeters: 80, DurationSeconds: 30}, nil).Once()
	f.deliveryRepo.On("Update", ctx, deliveryEntity).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	// Already nearby; an even closer report must not re-fire the transition.
	cmd := locationCommand(t, businessID, deliveryEntity.ID(), 55.7595, 37.61)

	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Equal(t, delivery.StatusNearby, deliveryEntity.Status())
	assert.Len(t, deliveryEntity.History(), 1)
}

func TestReportLocationCommandHandler_Handle_RoutingFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	courierEntity := newAvailableCourier(t, businessID, "Holder")
	deliveryEntity := newDeliveryInStatus(t, businessID, delivery.StatusOnTheWay)
	deliveryEntity = restoreWithCourier(t, deliveryEntity, courierEntity)
	require.NoError(t, courierEntity.AssignDelivery(deliveryEntity.ID()))

	f := newLocationFixture(t)
	f.deliveryRepo.On("Get", ctx, businessID, deliveryEntity.ID()).Return(deliveryEntity, nil).Once()
	f.courierRepo.On("Get", ctx, businessID, courierEntity.ID()).Return(courierEntity, nil).Once()
	f.courierRepo.On("Update", ctx, courierEntity).Return(nil).Once()
	f.routing.On("CalculateRoute", mock.Anything, mock.Anything, mock.Anything, courier.VehicleBicycle).
		Return(ports.Route{}, errors.New("routing provider down")).Once()
	f.deliveryRepo.On("Update", ctx, deliveryEntity).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd := locationCommand(t, businessID, deliveryEntity.ID(), 55.75, 37.61)

	// Ingestion succeeds; only the ETA refresh is lost.
	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Nil(t, deliveryEntity.EstimatedArrival())
	assert.Len(t, deliveryEntity.History(), 1)
	f.routing.AssertExpectations(t)
}

func TestReportLocationCommandHandler_Handle_TerminalDeliveryIsNoOp(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	deliveryEntity := newDeliveryInStatus(t, businessID, delivery.StatusOnTheWay)
	require.NoError(t, deliveryEntity.MarkDelivered(nil))

	f := newLocationFixture(t)
	f.deliveryRepo.On("Get", ctx, businessID, deliveryEntity.ID()).Return(deliveryEntity, nil).Once()

	cmd := locationCommand(t, businessID, deliveryEntity.ID(), 55.75, 37.61)

	require.NoError(t, f.handler.Handle(ctx, cmd))

	assert.Empty(t, deliveryEntity.History())
	assert.Empty(t, f.broadcaster.eventNames())
	f.uow.AssertNotCalled(t, "Commit", ctx)
	f.deliveryRepo.AssertNotCalled(t, "Update", ctx, deliveryEntity)
}
