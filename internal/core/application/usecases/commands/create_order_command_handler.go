package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/domain/services"
)

// CreateOrderCommandHandler creates an order in pending status with its
// estimate computed once, and appends the order.created event.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator services.EstimateCalculator
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewEstimateCalculator(),
	}
}

// Handle processes the order creation command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	estimate, err := h.calculator.Calculate(cmd.Pickup().Point(), cmd.Dropoff().Point())
	if err != nil {
		return err
	}

	now := time.Now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Pickup(), cmd.Dropoff(),
		cmd.Customer(), cmd.Restaurant(),
		cmd.Price(),
		estimate,
		now,
	)
	if err != nil {
		return err
	}

	event, err := newOrderEvent(outbox.OrderCreated, newOrder, now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
