package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRejectOrderRepository struct{ mock.Mock }

func (m *MockRejectOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRejectOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRejectOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRejectOrderRepository) CountActiveForDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID)
	return args.Int(0), args.Error(1)
}

func (m *MockRejectOrderRepository) CountOfferedForDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID)
	return args.Int(0), args.Error(1)
}

func (m *MockRejectOrderRepository) GetOfferedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRejectOutboxRepository struct{ mock.Mock }

func (m *MockRejectOutboxRepository) Add(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRejectOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Event), args.Error(1)
}

func (m *MockRejectOutboxRepository) MarkPublished(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRejectUoW struct{ mock.Mock }

func (m *MockRejectUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRejectUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRejectUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRejectUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockRejectUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockRejectUoWFactory struct{ mock.Mock }

func (m *MockRejectUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func TestRejectOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testOrder := newOfferedTestOrder(t, driverID)

	cmd, err := commands.NewRejectOrderCommand(testOrder.ID(), driverID)
	require.NoError(t, err)

	orderRepo := new(MockRejectOrderRepository)
	outboxRepo := new(MockRejectOutboxRepository)
	uow := new(MockRejectUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("*outbox.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRejectUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRejectOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	// The order went back to the pool with no trace of the offer.
	assert.Equal(t, order.Pending, testOrder.Status())
	assert.Nil(t, testOrder.DriverID())
	assert.Nil(t, testOrder.EstimatedPickupTime())
	assert.Nil(t, testOrder.EstimatedDropoffTime())

	event := outboxRepo.Calls[0].Arguments[1].(*outbox.Event)
	assert.Equal(t, outbox.OrderRejected, event.Name())
}

func TestRejectOrderCommandHandler_Handle_ForbiddenForOtherDriver(t *testing.T) {
	ctx := t.Context()

	offeredTo := kernel.NewUUID()
	intruderID := kernel.NewUUID()
	testOrder := newOfferedTestOrder(t, offeredTo)

	cmd, err := commands.NewRejectOrderCommand(testOrder.ID(), intruderID)
	require.NoError(t, err)

	orderRepo := new(MockRejectOrderRepository)
	uow := new(MockRejectUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRejectUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRejectOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.Offered, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestRejectOrderCommandHandler_Handle_NotOffered(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	testOrder := newPendingTestOrder(t)

	cmd, err := commands.NewRejectOrderCommand(testOrder.ID(), driverID)
	require.NoError(t, err)

	orderRepo := new(MockRejectOrderRepository)
	uow := new(MockRejectUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRejectUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRejectOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}
