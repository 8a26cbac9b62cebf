package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrEndShiftCommandIsNotConstructed = errors.New(
	"EndShiftCommand must be created via NewEndShiftCommand constructor",
)

// EndShiftCommand takes a driver off duty.
type EndShiftCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEndShiftCommand creates a command to end a driver's shift.
func NewEndShiftCommand(driverID kernel.UUID) (EndShiftCommand, error) {
	cmd := EndShiftCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDriverID(driverID); err != nil {
		return EndShiftCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EndShiftCommand) Validate() error {
	return c.guard.Validate(ErrEndShiftCommandIsNotConstructed)
}

// DriverID returns the driver ending their shift.
func (c EndShiftCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *EndShiftCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
