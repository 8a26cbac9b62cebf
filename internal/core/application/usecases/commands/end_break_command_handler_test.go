package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEndBreakCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testDriver := newAvailableTestDriver(t, driverID)
	require.NoError(t, testDriver.StartBreak())

	cmd, err := commands.NewEndBreakCommand(driverID)
	require.NoError(t, err)

	driverRepo := new(MockDriverLifecycleRepository)
	uow := new(MockDriverLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, driverID).Return(testDriver, nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewEndBreakCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	driverRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	assert.Equal(t, driver.Available, testDriver.Status())
}

func TestEndBreakCommandHandler_Handle_NotOnBreak(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testDriver := newAvailableTestDriver(t, driverID)

	cmd, err := commands.NewEndBreakCommand(driverID)
	require.NoError(t, err)

	driverRepo := new(MockDriverLifecycleRepository)
	uow := new(MockDriverLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, driverID).Return(testDriver, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewEndBreakCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	driverRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}
