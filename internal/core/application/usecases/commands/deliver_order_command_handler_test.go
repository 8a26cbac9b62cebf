package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliverOrderRepository struct{ mock.Mock }

func (m *MockDeliverOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockDeliverOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockDeliverOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockDeliverOrderRepository) CountActiveForDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID)
	return args.Int(0), args.Error(1)
}

func (m *MockDeliverOrderRepository) CountOfferedForDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID)
	return args.Int(0), args.Error(1)
}

func (m *MockDeliverOrderRepository) GetOfferedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDeliverDriverRepository struct{ mock.Mock }

func (m *MockDeliverDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliverDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliverDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDeliverDriverRepository) FindNearby(
	ctx context.Context, origin kernel.GeoPoint, radiusKm float64, status driver.Status, limit int,
) ([]ports.NearbyDriver, error) {
	args := m.Called(ctx, origin, radiusKm, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.NearbyDriver), args.Error(1)
}

type MockDeliverOutboxRepository struct{ mock.Mock }

func (m *MockDeliverOutboxRepository) Add(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockDeliverOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Event), args.Error(1)
}

func (m *MockDeliverOutboxRepository) MarkPublished(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDeliverUoW struct{ mock.Mock }

func (m *MockDeliverUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliverUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliverUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliverUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDeliverUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockDeliverUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockDeliverUoWFactory struct{ mock.Mock }

func (m *MockDeliverUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func newPickedUpTestOrder(t *testing.T, driverID kernel.UUID) *order.Order {
	t.Helper()
	o := newOfferedTestOrder(t, driverID)
	require.NoError(t, o.Accept(driverID, time.Now()))
	require.NoError(t, o.PickUp(time.Now()))
	return o
}

func newBusyTestDriver(t *testing.T, id kernel.UUID) *driver.Driver {
	t.Helper()
	d := newAvailableTestDriver(t, id)
	require.NoError(t, d.TakeOrder(0))
	return d
}

func TestDeliverOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testDriver := newBusyTestDriver(t, driverID)
	testOrder := newPickedUpTestOrder(t, driverID)

	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockDeliverOrderRepository)
	driverRepo := new(MockDeliverDriverRepository)
	outboxRepo := new(MockDeliverOutboxRepository)
	uow := new(MockDeliverUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, driverID).Return(testDriver, nil).Once(),
		orderRepo.On("CountActiveForDriver", ctx, driverID).Return(0, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	assert.Equal(t, order.Delivered, testOrder.Status())
	require.NotNil(t, testOrder.DriverID())
	assert.NotNil(t, testOrder.DeliveredAt())
	assert.NotNil(t, testOrder.ActualDurationMin())

	// No remaining active orders, so the driver went back to available.
	assert.Equal(t, driver.Available, testDriver.Status())

	event := outboxRepo.Calls[0].Arguments[1].(*outbox.Event)
	assert.Equal(t, outbox.OrderDelivered, event.Name())
}

func TestDeliverOrderCommandHandler_Handle_DriverStaysBusyWithRemainingOrders(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testDriver := newBusyTestDriver(t, driverID)
	testOrder := newPickedUpTestOrder(t, driverID)

	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockDeliverOrderRepository)
	driverRepo := new(MockDeliverDriverRepository)
	outboxRepo := new(MockDeliverOutboxRepository)
	uow := new(MockDeliverUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, driverID).Return(testDriver, nil).Once(),
		orderRepo.On("CountActiveForDriver", ctx, driverID).Return(1, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, driver.Busy, testDriver.Status())
}

func TestDeliverOrderCommandHandler_Handle_NotPickedUp(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testOrder := newOfferedTestOrder(t, driverID)
	require.NoError(t, testOrder.Accept(driverID, time.Now()))

	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockDeliverOrderRepository)
	uow := new(MockDeliverUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestDeliverOrderCommandHandler_Handle_RepeatedDeliverFails(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testOrder := newPickedUpTestOrder(t, driverID)
	require.NoError(t, testOrder.Deliver(time.Now()))

	cmd, err := commands.NewDeliverOrderCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockDeliverOrderRepository)
	uow := new(MockDeliverUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDeliverOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}
