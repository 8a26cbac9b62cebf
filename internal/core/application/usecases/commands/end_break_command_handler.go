package commands

import (
	"context"
)

// EndBreakCommandHandler returns a driver from break to the available pool.
type EndBreakCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewEndBreakCommandHandler creates a handler for break ends.
func NewEndBreakCommandHandler(uowFactory DriverUoWFactory) EndBreakCommandHandler {
	return EndBreakCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the break end.
func (h EndBreakCommandHandler) Handle(ctx context.Context, cmd EndBreakCommand) error {
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

	if err = d.EndBreak(); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
