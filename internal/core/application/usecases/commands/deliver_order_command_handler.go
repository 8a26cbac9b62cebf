package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/outbox"
)

// DeliverOrderCommandHandler completes an order: the status advances to
// delivered, the actual duration is recorded, and the driver returns to
// available once no other active orders reference them. The state guard
// makes a repeated deliver fail before any driver release can double-apply.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeliverOrderCommandHandler creates a handler for order delivery.
func NewDeliverOrderCommandHandler(uowFactory UoWFactory) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery command.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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

	driverID := o.DriverID()

	now := time.Now()
	if err = o.Deliver(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if driverID != nil {
		d, getErr := uow.DriverRepository().Get(ctx, *driverID)
		if getErr != nil {
			return getErr
		}

		remaining, countErr := orderRepo.CountActiveForDriver(ctx, *driverID)
		if countErr != nil {
			return countErr
		}

		d.Release(remaining)
		if err = uow.DriverRepository().Update(ctx, d); err != nil {
			return err
		}
	}

	event, err := newOrderEvent(outbox.OrderDelivered, o, now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
