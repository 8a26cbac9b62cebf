package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/outbox"
)

// CancelOrderCommandHandler cancels an order. Cancellation is terminal: a
// cancelled order can never be re-assigned. A driver holding the order as
// an active one is released if nothing else keeps them busy.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	wasActive := o.Status().IsActive()

	if err = o.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if driverID != nil && wasActive {
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

	event, err := newOrderEvent(outbox.OrderCancelled, o, time.Now())
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
