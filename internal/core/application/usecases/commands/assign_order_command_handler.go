package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"
)

// AssignOrderCommandHandler runs the manual assignment path. Inside one
// transaction it re-checks the driver's capacity against their current
// active-order count, commits the order to the driver, marks the driver
// busy, and, when the order is taken away from a previous driver, releases
// that driver if nothing else keeps them busy.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignOrderCommandHandler creates a handler for manual assignment.
func NewAssignOrderCommandHandler(uowFactory UoWFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the manual assignment command.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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

	previousDriverID := o.DriverID()
	// A re-assign of an order the target driver already holds must not
	// consume extra capacity or advance the shift counter.
	alreadyHeld := previousDriverID != nil && previousDriverID.IsEqual(cmd.DriverID()) && o.Status().IsActive()
	wasActive := o.Status().IsActive()

	now := time.Now()
	if err = o.Assign(cmd.DriverID(), now, cmd.EstimatedPickupTime(), cmd.EstimatedDropoffTime()); err != nil {
		return err
	}

	if !alreadyHeld {
		activeOrders, countErr := orderRepo.CountActiveForDriver(ctx, cmd.DriverID())
		if countErr != nil {
			return countErr
		}
		if err = d.TakeOrder(activeOrders); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = h.releasePreviousDriver(ctx, uow, previousDriverID, cmd.DriverID(), wasActive); err != nil {
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

// releasePreviousDriver frees the driver an active order was taken away
// from, provided no other active orders still reference them.
func (h AssignOrderCommandHandler) releasePreviousDriver(
	ctx context.Context,
	uow UoW,
	previousDriverID *kernel.UUID,
	newDriverID kernel.UUID,
	wasActive bool,
) error {
	if previousDriverID == nil || previousDriverID.IsEqual(newDriverID) || !wasActive {
		return nil
	}

	previous, err := uow.DriverRepository().Get(ctx, *previousDriverID)
	if err != nil {
		return err
	}

	remaining, err := uow.OrderRepository().CountActiveForDriver(ctx, *previousDriverID)
	if err != nil {
		return err
	}

	previous.Release(remaining)
	return uow.DriverRepository().Update(ctx, previous)
}
