package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrEndBreakCommandIsNotConstructed = errors.New(
	"EndBreakCommand must be created via NewEndBreakCommand constructor",
)

// EndBreakCommand returns a driver from break to the available pool.
type EndBreakCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEndBreakCommand creates a command to end a driver's break.
func NewEndBreakCommand(driverID kernel.UUID) (EndBreakCommand, error) {
	cmd := EndBreakCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDriverID(driverID); err != nil {
		return EndBreakCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EndBreakCommand) Validate() error {
	return c.guard.Validate(ErrEndBreakCommandIsNotConstructed)
}

// DriverID returns the driver ending their break.
func (c EndBreakCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *EndBreakCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
