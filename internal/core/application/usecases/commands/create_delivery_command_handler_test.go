package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateDeliveryCommand(t *testing.T, businessID kernel.UUID) commands.CreateDeliveryCommand {
	t.Helper()
	dropoff := mustGeoPoint(t, 55.76, 37.61)
	cmd, err := commands.NewCreateDeliveryCommand(commands.NewCreateDeliveryCommandParams{
		BusinessID:     businessID,
		OrderID:        kernel.NewUUID(),
		PickupAddress:  "1 Warehouse Way",
		PickupPoint:    mustGeoPoint(t, 55.75, 37.61),
		DropoffAddress: "9 Customer St",
		DropoffPoint:   &dropoff,
		CustomerName:   "Dana",
		CustomerPhone:  "+15550100",
		OrderAmount:    15,
	})
	require.NoError(t, err)
	return cmd
}

func downtownZone(t *testing.T, businessID kernel.UUID, pricing zone.Pricing) *zone.Zone {
	t.Helper()
	z, err := zone.NewRadiusZone(kernel.NewUUID(), businessID, "Downtown",
		mustGeoPoint(t, 55.755, 37.61), 5000, pricing)
	require.NoError(t, err)
	return z
}

type createDeliveryFixture struct {
	deliveryRepo *MockDeliveryRepository
	zoneRepo     *MockZoneRepository
	uow          *MockCreateDeliveryUoW
	broadcaster  *fakeBroadcaster
	handler      commands.CreateDeliveryCommandHandler
}

func newCreateDeliveryFixture(t *testing.T) createDeliveryFixture {
	t.Helper()
	f := createDeliveryFixture{
		deliveryRepo: new(MockDeliveryRepository),
		zoneRepo:     new(MockZoneRepository),
		uow:          new(MockCreateDeliveryUoW),
		broadcaster:  &fakeBroadcaster{},
	}
	factory := new(MockCreateDeliveryUoWFactory)
	factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", t.Context()).Return(nil).Once()
	f.uow.On("Rollback", t.Context()).Return(nil).Once()
	f.uow.On("DeliveryRepository").Return(f.deliveryRepo)
	f.uow.On("ZoneRepository").Return(f.zoneRepo)

	f.handler = commands.NewCreateDeliveryCommandHandler(factory, f.broadcaster)
	return f
}

func TestCreateDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	cmd := validCreateDeliveryCommand(t, businessID)
	servingZone := downtownZone(t, businessID, zone.Pricing{BaseFee: 2, PerKmFee: 0.5})

	var captured *delivery.Delivery
	f := newCreateDeliveryFixture(t)
	f.zoneRepo.On("GetAllEnabled", ctx, businessID).Return([]*zone.Zone{servingZone}, nil).Once()
	f.deliveryRepo.On("Add", ctx, mock.MatchedBy(func(d *delivery.Delivery) bool {
		captured = d
		return true
	})).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.DeliveryID.IsEqual(cmd.DeliveryID()))
	assert.NotEmpty(t, result.TrackingToken)
	assert.True(t, result.ZoneID.IsEqual(servingZone.ID()))
	// Trip is ~1.11 km: 2 + 0.5 * 1.112 ≈ 2.56.
	assert.InDelta(t, 2.556, result.Fee, 0.01)

	require.NotNil(t, captured)
	assert.Equal(t, delivery.StatusAccepted, captured.Status())
	require.NotNil(t, captured.AcceptedAt())
	assert.Equal(t, result.TrackingToken, captured.TrackingToken())
	assert.Equal(t, []string{"delivery.created"}, f.broadcaster.eventNames())
}

func TestCreateDeliveryCommandHandler_Handle_FreeDeliveryThreshold(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	threshold := 10.0
	cmd := validCreateDeliveryCommand(t, businessID) // order amount 15 >= 10
	servingZone := downtownZone(t, businessID, zone.Pricing{BaseFee: 2, PerKmFee: 0.5, FreeDeliveryThreshold: &threshold})

	f := newCreateDeliveryFixture(t)
	f.zoneRepo.On("GetAllEnabled", ctx, businessID).Return([]*zone.Zone{servingZone}, nil).Once()
	f.deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, result.Fee)
}

func TestCreateDeliveryCommandHandler_Handle_OutsideDeliveryArea(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	cmd := validCreateDeliveryCommand(t, businessID)

	// A zone on the other side of the world.
	elsewhere, err := zone.NewRadiusZone(kernel.NewUUID(), businessID, "Elsewhere",
		mustGeoPoint(t, -33.86, 151.2), 5000, zone.Pricing{BaseFee: 2})
	require.NoError(t, err)

	f := newCreateDeliveryFixture(t)
	f.zoneRepo.On("GetAllEnabled", ctx, businessID).Return([]*zone.Zone{elsewhere}, nil).Once()

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, zone.ErrOutsideServiceArea)
	f.uow.AssertNotCalled(t, "Commit", ctx)
	f.deliveryRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
}

func TestCreateDeliveryCommandHandler_Handle_OrderBelowMinimum(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	cmd := validCreateDeliveryCommand(t, businessID) // order amount 15
	servingZone := downtownZone(t, businessID, zone.Pricing{BaseFee: 2, MinOrderAmount: 20})

	f := newCreateDeliveryFixture(t)
	f.zoneRepo.On("GetAllEnabled", ctx, businessID).Return([]*zone.Zone{servingZone}, nil).Once()

	_, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderBelowMinimum)
	f.uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateDeliveryCommandHandler_Handle_HigherPriorityZoneWins(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	cmd := validCreateDeliveryCommand(t, businessID)

	// Both contain the point; the repository returns highest priority first.
	premium := downtownZone(t, businessID, zone.Pricing{BaseFee: 5})
	standard := downtownZone(t, businessID, zone.Pricing{BaseFee: 2})

	f := newCreateDeliveryFixture(t)
	f.zoneRepo.On("GetAllEnabled", ctx, businessID).Return([]*zone.Zone{premium, standard}, nil).Once()
	f.deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.ZoneID.IsEqual(premium.ID()))
}

func TestNewCreateDeliveryCommand(t *testing.T) {
	t.Run("should reject missing pickup coordinates", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(commands.NewCreateDeliveryCommandParams{
			BusinessID:     kernel.NewUUID(),
			OrderID:        kernel.NewUUID(),
			PickupAddress:  "1 Warehouse Way",
			DropoffAddress: "9 Customer St",
			CustomerName:   "Dana",
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative order amount", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(commands.NewCreateDeliveryCommandParams{
			BusinessID:     kernel.NewUUID(),
			OrderID:        kernel.NewUUID(),
			PickupAddress:  "1 Warehouse Way",
			PickupPoint:    mustGeoPoint(t, 55.75, 37.61),
			DropoffAddress: "9 Customer St",
			CustomerName:   "Dana",
			OrderAmount:    -1,
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CreateDeliveryCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateDeliveryCommandIsNotConstructed)
	})
}
