package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatchOutboxRepository struct{ mock.Mock }

func (m *MockDispatchOutboxRepository) Add(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockDispatchOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Event), args.Error(1)
}

func (m *MockDispatchOutboxRepository) MarkPublished(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDispatchOutboxUoW struct{ mock.Mock }

func (m *MockDispatchOutboxUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchOutboxUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchOutboxUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchOutboxUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockDispatchOutboxUoWFactory struct{ mock.Mock }

func (m *MockDispatchOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event *outbox.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newUnpublishedTestEvent(t *testing.T, name string) *outbox.Event {
	t.Helper()
	event, err := outbox.NewEvent(name, kernel.NewUUID(), map[string]string{"k": "v"}, time.Now())
	require.NoError(t, err)
	return event
}

func TestDispatchOutboxCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	event1 := newUnpublishedTestEvent(t, outbox.OrderCreated)
	event2 := newUnpublishedTestEvent(t, outbox.OrderOffered)

	cmd, err := commands.NewDispatchOutboxCommand(20)
	require.NoError(t, err)

	outboxRepo := new(MockDispatchOutboxRepository)
	uow := new(MockDispatchOutboxUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("GetUnpublished", ctx, 20).Return([]*outbox.Event{event1, event2}, nil).Once(),
		publisher.On("Publish", ctx, event1).Return(nil).Once(),
		outboxRepo.On("MarkPublished", ctx, event1).Return(nil).Once(),
		publisher.On("Publish", ctx, event2).Return(nil).Once(),
		outboxRepo.On("MarkPublished", ctx, event2).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOutboxCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	outboxRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)

	assert.True(t, event1.IsPublished())
	assert.True(t, event2.IsPublished())
}

func TestDispatchOutboxCommandHandler_Handle_StopsOnPublishFailure(t *testing.T) {
	ctx := t.Context()

	event1 := newUnpublishedTestEvent(t, outbox.OrderCreated)
	event2 := newUnpublishedTestEvent(t, outbox.OrderOffered)
	event3 := newUnpublishedTestEvent(t, outbox.OrderAssigned)

	cmd, err := commands.NewDispatchOutboxCommand(20)
	require.NoError(t, err)

	outboxRepo := new(MockDispatchOutboxRepository)
	uow := new(MockDispatchOutboxUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("GetUnpublished", ctx, 20).
			Return([]*outbox.Event{event1, event2, event3}, nil).
			Once(),
		publisher.On("Publish", ctx, event1).Return(nil).Once(),
		outboxRepo.On("MarkPublished", ctx, event1).Return(nil).Once(),
		publisher.On("Publish", ctx, event2).Return(errors.New("broker unreachable")).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOutboxCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	// The failure is reported, but the mark for the delivered event still
	// commits so it is not republished next run.
	require.Error(t, err)
	require.EqualError(t, err, "broker unreachable")
	outboxRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)

	assert.True(t, event1.IsPublished())
	assert.False(t, event2.IsPublished())
	assert.False(t, event3.IsPublished())
	publisher.AssertNotCalled(t, "Publish", ctx, event3)
	outboxRepo.AssertNotCalled(t, "MarkPublished", ctx, event2)
}

func TestDispatchOutboxCommandHandler_Handle_EmptyOutbox(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewDispatchOutboxCommand(20)
	require.NoError(t, err)

	outboxRepo := new(MockDispatchOutboxRepository)
	uow := new(MockDispatchOutboxUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("GetUnpublished", ctx, 20).Return([]*outbox.Event{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchOutboxUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOutboxCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Publish", ctx, mock.Anything)
}

func TestNewDispatchOutboxCommand_InvalidBatchSize(t *testing.T) {
	_, err := commands.NewDispatchOutboxCommand(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewDispatchOutboxCommand(-5)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
