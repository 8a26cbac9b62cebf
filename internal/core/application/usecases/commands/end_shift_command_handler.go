package commands

import (
	"context"
)

// EndShiftCommandHandler takes a driver off duty and offline. A busy
// driver must finish their active orders first.
type EndShiftCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewEndShiftCommandHandler creates a handler for shift ends.
func NewEndShiftCommandHandler(uowFactory DriverUoWFactory) EndShiftCommandHandler {
	return EndShiftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shift end.
func (h EndShiftCommandHandler) Handle(ctx context.Context, cmd EndShiftCommand) error {
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

	driverRepo := uow.DriverRepository()

	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = d.EndShift(); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
