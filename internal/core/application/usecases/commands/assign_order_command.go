package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand requests the manual assignment path: the order is
// committed to the given driver directly, bypassing the offer handshake.
// The optional projected pickup/dropoff overrides let an operator supply
// their own schedule.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	driverID             kernel.UUID
	estimatedPickupTime  *time.Time
	estimatedDropoffTime *time.Time

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign an order to a driver.
func NewAssignOrderCommand(
	orderID, driverID kernel.UUID,
	estimatedPickupTime, estimatedDropoffTime *time.Time,
) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		estimatedPickupTime:  estimatedPickupTime,
		estimatedDropoffTime: estimatedDropoffTime,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the target driver.
func (c AssignOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

// EstimatedPickupTime returns the optional pickup projection override.
func (c AssignOrderCommand) EstimatedPickupTime() *time.Time {
	return c.estimatedPickupTime
}

// EstimatedDropoffTime returns the optional dropoff projection override.
func (c AssignOrderCommand) EstimatedDropoffTime() *time.Time {
	return c.estimatedDropoffTime
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
