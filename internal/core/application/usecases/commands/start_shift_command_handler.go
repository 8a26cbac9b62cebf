package commands

import (
	"context"
)

// StartShiftCommandHandler puts a driver on duty and available, resetting
// their shift counter.
type StartShiftCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewStartShiftCommandHandler creates a handler for shift starts.
func NewStartShiftCommandHandler(uowFactory DriverUoWFactory) StartShiftCommandHandler {
	return StartShiftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shift start.
func (h StartShiftCommandHandler) Handle(ctx context.Context, cmd StartShiftCommand) error {
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

	if err = d.StartShift(); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
