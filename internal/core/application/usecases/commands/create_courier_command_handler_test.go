package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCourierCommand(t *testing.T) {
	t.Run("should create with generated courier ID", func(t *testing.T) {
		cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "John Doe", courier.VehicleBicycle)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.NoError(t, cmd.CourierID().Validate())
		assert.Equal(t, "John Doe", cmd.Name())
		assert.Equal(t, courier.VehicleBicycle, cmd.Vehicle())
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "", courier.VehicleBicycle)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unconstructed business ID", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand(kernel.UUID{}, "John Doe", courier.VehicleBicycle)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown vehicle", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "John Doe", courier.Vehicle("hoverboard"))

		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CreateCourierCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateCourierCommandIsNotConstructed)
	})
}

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	businessID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(businessID, "Jane Smith", courier.VehicleMotorcycle)
	require.NoError(t, err)

	mockCourierRepo := new(MockCourierRepository)
	mockUoW := new(MockCourierUoW)
	mockFactory := new(MockCourierUoWFactory)

	var captured *courier.Courier
	createCall := mockFactory.On("Create").Return(mockUoW).Once()
	beginCall := mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCourierRepo)
	addCall := mockCourierRepo.On("Add", ctx, mock.MatchedBy(func(c *courier.Courier) bool {
		captured = c
		return true
	})).Return(nil).Once()
	commitCall := mockUoW.On("Commit", ctx).Return(nil).Once()
	rollbackCall := mockUoW.On("Rollback", ctx).Return(nil).Once()
	mock.InOrder(createCall, beginCall, addCall, commitCall, rollbackCall)

	handler := commands.NewCreateCourierCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.True(t, captured.ID().IsEqual(cmd.CourierID()))
	assert.True(t, captured.BusinessID().IsEqual(businessID))
	assert.Equal(t, "Jane Smith", captured.Name())
	assert.Equal(t, courier.VehicleMotorcycle, captured.Vehicle())
	assert.Equal(t, courier.StatusOffline, captured.Status())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockCourierRepo.AssertExpectations(t)
}

func TestCreateCourierCommandHandler_Handle_InvalidCommand(t *testing.T) {
	var invalidCmd commands.CreateCourierCommand
	mockFactory := new(MockCourierUoWFactory)

	handler := commands.NewCreateCourierCommandHandler(mockFactory)
	err := handler.Handle(t.Context(), invalidCmd)

	require.ErrorIs(t, err, commands.ErrCreateCourierCommandIsNotConstructed)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestCreateCourierCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "Jane Smith", courier.VehicleCar)
	require.NoError(t, err)

	beginErr := errors.New("connection refused")
	mockUoW := new(MockCourierUoW)
	mockFactory := new(MockCourierUoWFactory)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(beginErr).Once()

	handler := commands.NewCreateCourierCommandHandler(mockFactory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, beginErr)
	mockUoW.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateCourierCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "Jane Smith", courier.VehicleCar)
	require.NoError(t, err)

	addErr := errors.New("duplicate key value violates unique constraint")
	mockCourierRepo := new(MockCourierRepository)
	mockUoW := new(MockCourierUoW)
	mockFactory := new(MockCourierUoWFactory)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCourierRepo)
	mockCourierRepo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(addErr).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateCourierCommandHandler(mockFactory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, addErr)
	mockUoW.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateCourierCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "Jane Smith", courier.VehicleCar)
	require.NoError(t, err)

	commitErr := errors.New("serialization failure")
	mockCourierRepo := new(MockCourierRepository)
	mockUoW := new(MockCourierUoW)
	mockFactory := new(MockCourierUoWFactory)
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CourierRepository").Return(mockCourierRepo)
	mockCourierRepo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(commitErr).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateCourierCommandHandler(mockFactory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commitErr)
	mockUoW.AssertExpectations(t)
}
