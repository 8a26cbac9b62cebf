package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand requests creation of a new delivery order. The
// estimate is computed by the handler, once, from the pickup and dropoff
// coordinates.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	pickup     order.Waypoint
	dropoff    order.Waypoint
	customer   order.Party
	restaurant order.Party
	price      float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery
// order. The waypoints and parties must come from their constructors and
// the price must be non-negative.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	pickup, dropoff order.Waypoint,
	customer, restaurant order.Party,
	price float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setWaypoints(pickup, dropoff),
		cmd.setParties(customer, restaurant),
		cmd.setPrice(price),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Pickup returns the pickup waypoint.
func (c CreateOrderCommand) Pickup() order.Waypoint {
	return c.pickup
}

// Dropoff returns the dropoff waypoint.
func (c CreateOrderCommand) Dropoff() order.Waypoint {
	return c.dropoff
}

// Customer returns the ordering customer.
func (c CreateOrderCommand) Customer() order.Party {
	return c.customer
}

// Restaurant returns the restaurant party.
func (c CreateOrderCommand) Restaurant() order.Party {
	return c.restaurant
}

// Price returns the order price.
func (c CreateOrderCommand) Price() float64 {
	return c.price
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setWaypoints(pickup, dropoff order.Waypoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := dropoff.Validate(); err != nil {
		return err
	}
	c.pickup = pickup
	c.dropoff = dropoff
	return nil
}

func (c *CreateOrderCommand) setParties(customer, restaurant order.Party) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if err := restaurant.Validate(); err != nil {
		return err
	}
	c.customer = customer
	c.restaurant = restaurant
	return nil
}

func (c *CreateOrderCommand) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("price")
	}
	c.price = price
	return nil
}
