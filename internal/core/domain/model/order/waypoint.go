package order

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrWaypointIsNotConstructed is returned when validating a Waypoint that
// was not built via NewWaypoint.
var ErrWaypointIsNotConstructed = errs.NewValueIsRequiredError(
	"waypoint must be created via NewWaypoint constructor")

// Waypoint is an immutable value object pairing a geographic point with its
// human-readable address. Orders carry one for pickup and one for dropoff.
type Waypoint struct {
	point   kernel.GeoPoint
	address string
	guard   guard.ConstructorGuard
}

// NewWaypoint creates a Waypoint. The point must be constructed and the
// address must be non-blank.
func NewWaypoint(point kernel.GeoPoint, address string) (Waypoint, error) {
	if err := point.Validate(); err != nil {
		return Waypoint{}, err
	}
	if strings.TrimSpace(address) == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("address")
	}

	return Waypoint{
		point:   point,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Waypoint was built via NewWaypoint.
func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

// Point returns the geographic coordinate.
func (w Waypoint) Point() kernel.GeoPoint {
	return w.point
}

// Address returns the human-readable address.
func (w Waypoint) Address() string {
	return w.address
}

// IsEqual compares two waypoints by coordinate and address.
func (w Waypoint) IsEqual(other Waypoint) (bool, error) {
	if err := errors.Join(w.Validate(), other.Validate()); err != nil {
		return false, err
	}

	samePoint, err := w.point.IsEqual(other.point)
	if err != nil {
		return false, err
	}
	return samePoint && w.address == other.address, nil
}
