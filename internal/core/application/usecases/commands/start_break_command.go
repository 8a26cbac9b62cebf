package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartBreakCommandIsNotConstructed = errors.New(
	"StartBreakCommand must be created via NewStartBreakCommand constructor",
)

// StartBreakCommand pauses an available driver.
type StartBreakCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartBreakCommand creates a command to start a driver's break.
func NewStartBreakCommand(driverID kernel.UUID) (StartBreakCommand, error) {
	cmd := StartBreakCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDriverID(driverID); err != nil {
		return StartBreakCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartBreakCommand) Validate() error {
	return c.guard.Validate(ErrStartBreakCommandIsNotConstructed)
}

// DriverID returns the driver going on break.
func (c StartBreakCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *StartBreakCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
