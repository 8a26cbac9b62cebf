package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/outbox"
)

// PickupOrderCommandHandler advances an assigned order to picked up. A
// second pickup attempt fails on the state guard rather than re-stamping
// the timestamp.
type PickupOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPickupOrderCommandHandler creates a handler for order pickup.
func NewPickupOrderCommandHandler(uowFactory OrderUoWFactory) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup command.
func (h PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = o.PickUp(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	event, err := newOrderEvent(outbox.OrderPickedUp, o, now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
