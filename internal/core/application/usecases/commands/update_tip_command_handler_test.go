package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateTipCommand(t *testing.T) {
	t.Run("should accept zero to clear a tip", func(t *testing.T) {
		cmd, err := commands.NewUpdateTipCommand(kernel.NewUUID(), kernel.NewUUID(), 0)

		require.NoError(t, err)
		assert.Zero(t, cmd.Amount())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := commands.NewUpdateTipCommand(kernel.NewUUID(), kernel.NewUUID(), -2.5)

		require.ErrorIs(t, err, delivery.ErrNegativeAmount)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.UpdateTipCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateTipCommandIsNotConstructed)
	})
}

func TestUpdateTipCommandHandler_Handle_Success(t *testing.T) {
	// Arrange: tips stay editable after completion.
	ctx := t.Context()
	businessID := kernel.NewUUID()
	deliveryEntity := newDeliveryInStatus(t, businessID, delivery.StatusNearby)
	require.NoError(t, deliveryEntity.MarkDelivered(nil))

	mockDeliveryRepo := new(MockDeliveryRepository)
	mockUoW := new(MockDeliveryUoW)
	mockFactory := new(MockDeliveryUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("DeliveryRepository").Return(mockDeliveryRepo)
	mockDeliveryRepo.On("Get", ctx, businessID, deliveryEntity.ID()).Return(deliveryEntity, nil).Once()
	mockDeliveryRepo.On("Update", ctx, deliveryEntity).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewUpdateTipCommand(businessID, deliveryEntity.ID(), 5.5)
	require.NoError(t, err)

	handler := commands.NewUpdateTipCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 5.5, deliveryEntity.Tip(), 1e-9)
	mockDeliveryRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestUpdateTipCommandHandler_Handle_AdjustsExistingTip(t *testing.T) {
	ctx := t.Context()
	businessID := kernel.NewUUID()
	deliveryEntity := newDeliveryInStatus(t, businessID, delivery.StatusOnTheWay)
	require.NoError(t, deliveryEntity.SetTip(3))

	mockDeliveryRepo := new(MockDeliveryRepository)
	mockUoW := new(MockDeliveryUoW)
	mockFactory := new(MockDeliveryUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("DeliveryRepository").Return(mockDeliveryRepo)
	mockDeliveryRepo.On("Get", ctx, businessID, deliveryEntity.ID()).Return(deliveryEntity, nil).Once()
	mockDeliveryRepo.On("Update", ctx, deliveryEntity).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewUpdateTipCommand(businessID, deliveryEntity.ID(), 0)
	require.NoError(t, err)

	handler := commands.NewUpdateTipCommandHandler(mockFactory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, deliveryEntity.Tip())
}
