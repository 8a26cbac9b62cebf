package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/outbox"
)

// AcceptOrderCommandHandler confirms an offer. Only the driver the order
// is offered to may accept; capacity is re-checked inside the transaction
// before the driver is marked busy.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for offer acceptance.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acceptance command.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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
	driverRepo := uow.DriverRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = o.Accept(cmd.DriverID(), now); err != nil {
		return err
	}

	activeOrders, err := orderRepo.CountActiveForDriver(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	if err = d.TakeOrder(activeOrders); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	event, err := newOrderEvent(outbox.OrderAssigned, o, now)
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
