package commands

import (
	"context"
)

// StartBreakCommandHandler pauses a driver. Only an available driver may
// break, so a busy driver keeps serving their orders.
type StartBreakCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewStartBreakCommandHandler creates a handler for break starts.
func NewStartBreakCommandHandler(uowFactory DriverUoWFactory) StartBreakCommandHandler {
	return StartBreakCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the break start.
func (h StartBreakCommandHandler) Handle(ctx context.Context, cmd StartBreakCommand) error {
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

	if err = d.StartBreak(); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
