package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand records a driver's position report. Speed
// and heading are telemetry carried into the lifecycle event; they are not
// part of the driver's persistent state.
type UpdateDriverLocationCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	point    kernel.GeoPoint
	speedKmh float64
	heading  float64

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a command to record a position
// report. Heading is in degrees clockwise from north.
func NewUpdateDriverLocationCommand(
	driverID kernel.UUID,
	point kernel.GeoPoint,
	speedKmh, heading float64,
) (UpdateDriverLocationCommand, error) {
	cmd := UpdateDriverLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setPoint(point),
		cmd.setSpeed(speedKmh),
		cmd.setHeading(heading),
	); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c UpdateDriverLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Point returns the reported position.
func (c UpdateDriverLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

// SpeedKmh returns the reported speed.
func (c UpdateDriverLocationCommand) SpeedKmh() float64 {
	return c.speedKmh
}

// Heading returns the reported heading in degrees.
func (c UpdateDriverLocationCommand) Heading() float64 {
	return c.heading
}

func (c *UpdateDriverLocationCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *UpdateDriverLocationCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.point = point
	return nil
}

func (c *UpdateDriverLocationCommand) setSpeed(speedKmh float64) error {
	if speedKmh < 0 {
		return errs.NewValueIsInvalidErrorWithCause("speedKmh", fmt.Errorf("%f is negative", speedKmh))
	}
	c.speedKmh = speedKmh
	return nil
}

func (c *UpdateDriverLocationCommand) setHeading(heading float64) error {
	if heading < 0 || heading >= 360 {
		return errs.NewValueIsOutOfRangeError("heading", heading, 0, 360)
	}
	c.heading = heading
	return nil
}
