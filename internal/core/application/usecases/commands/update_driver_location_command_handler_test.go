package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDriverLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testDriver := newAvailableTestDriver(t, driverID)

	point, err := kernel.NewGeoPoint(40.7306, -73.9866)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, point, 32.5, 270)
	require.NoError(t, err)

	driverRepo := new(MockDriverLifecycleRepository)
	outboxRepo := new(MockDriverLifecycleOutboxRepository)
	uow := new(MockDriverLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, driverID).Return(testDriver, nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDriverLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	driverRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	require.NotNil(t, testDriver.Location())
	assert.InDelta(t, 40.7306, testDriver.Location().Latitude(), 0.000001)
	assert.InDelta(t, -73.9866, testDriver.Location().Longitude(), 0.000001)

	event := outboxRepo.Calls[0].Arguments[1].(*outbox.Event)
	assert.Equal(t, outbox.DriverLocationUpdated, event.Name())
	assert.True(t, event.AggregateID().IsEqual(driverID))
	assert.Contains(t, string(event.Payload()), `"speed_kmh":32.5`)
}

func TestUpdateDriverLocationCommandHandler_Handle_DriverNotFound(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	point, err := kernel.NewGeoPoint(40.7306, -73.9866)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, point, 0, 0)
	require.NoError(t, err)

	driverRepo := new(MockDriverLifecycleRepository)
	uow := new(MockDriverLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, driverID).
			Return(nil, errs.NewObjectNotFoundError("driver", driverID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDriverLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	driverRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestUpdateDriverLocationCommandHandler_Handle_StaleVersionConflict(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testDriver := newAvailableTestDriver(t, driverID)

	point, err := kernel.NewGeoPoint(40.7306, -73.9866)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, point, 18.0, 90)
	require.NoError(t, err)

	driverRepo := new(MockDriverLifecycleRepository)
	uow := new(MockDriverLifecycleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, driverID).Return(testDriver, nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).
			Return(errs.NewVersionIsInvalidError("driver")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverLifecycleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDriverLocationCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", ctx)
}
