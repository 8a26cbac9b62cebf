package driver

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// MaxActiveOrders is the capacity limit: the number of orders in the
// assigned or picked-up state a single driver may hold at once.
const MaxActiveOrders = 3

// ErrDriverIsNotConstructed is returned when a Driver instance was not
// created through NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is the aggregate root for a courier's availability, position, and
// shift state. The directory owns exactly one record per driver; matching
// reads it, assignment and lifecycle operations mutate it.
//
// Invariants:
//   - a Busy driver holds at least one active order
//   - the active-order count never exceeds MaxActiveOrders; TakeOrder
//     enforces this against the count the caller reads in-transaction
//   - location is nil until the first position report
type Driver struct {
	id             kernel.UUID
	name           string
	status         Status
	dutyStatus     DutyStatus
	location       *kernel.GeoPoint
	ordersReceived int
	version        int

	isConstructed bool
}

// NewDriver registers a new driver, off duty and offline, with no known
// position.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	d := &Driver{
		status:        Offline,
		dutyStatus:    OffDuty,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	name string,
	status Status,
	dutyStatus DutyStatus,
	location *kernel.GeoPoint,
	ordersReceived int,
	version int,
) (*Driver, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := dutyStatus.Validate(); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	d := &Driver{
		status:         status,
		dutyStatus:     dutyStatus,
		location:       location,
		ordersReceived: ordersReceived,
		version:        version,
		isConstructed:  true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Driver was built through a constructor.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// IsEqual compares two drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Status returns the current availability state.
func (d *Driver) Status() Status {
	return d.status
}

// DutyStatus returns the current shift state.
func (d *Driver) DutyStatus() DutyStatus {
	return d.dutyStatus
}

// Location returns the last reported position, or nil if the driver has
// never reported one. The returned pointer is a copy.
func (d *Driver) Location() *kernel.GeoPoint {
	if d.location == nil {
		return nil
	}
	location := *d.location
	return &location
}

// OrdersReceived returns the running counter of orders taken this shift.
func (d *Driver) OrdersReceived() int {
	return d.ordersReceived
}

// Version returns the optimistic-lock counter as loaded from the store.
func (d *Driver) Version() int {
	return d.version
}

// StartShift puts the driver on duty and available, resetting the shift
// counter. A driver already on duty cannot start another shift.
func (d *Driver) StartShift() error {
	if d.dutyStatus == OnDuty {
		return errs.NewInvalidStateTransitionError(entityName, d.status.String(), Available.String())
	}

	d.dutyStatus = OnDuty
	d.status = Available
	d.ordersReceived = 0
	return nil
}

// EndShift takes the driver off duty and offline. A Busy driver must
// finish their active orders first; an off-duty driver has no shift to
// end.
func (d *Driver) EndShift() error {
	if d.dutyStatus != OnDuty || d.status == Busy {
		return errs.NewInvalidStateTransitionError(entityName, d.status.String(), Offline.String())
	}

	d.dutyStatus = OffDuty
	d.status = Offline
	return nil
}

// StartBreak pauses the shift. Only an Available driver may break.
func (d *Driver) StartBreak() error {
	newStatus, err := d.status.StartBreak()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// EndBreak resumes the shift from exactly OnBreak.
func (d *Driver) EndBreak() error {
	newStatus, err := d.status.EndBreak()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// ReportLocation records the driver's current position.
func (d *Driver) ReportLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	d.location = &point
	return nil
}

// TakeOrder commits the driver to one more order. The caller supplies the
// driver's current active-order count as read inside the same transaction;
// the capacity limit is enforced against it. The driver becomes Busy and
// the shift counter advances.
func (d *Driver) TakeOrder(activeOrders int) error {
	if !d.status.CanTakeOrder() {
		return errs.NewInvalidStateTransitionError(entityName, d.status.String(), Busy.String())
	}
	if activeOrders >= MaxActiveOrders {
		return errs.NewCapacityExceededError(d.id.String(), activeOrders, MaxActiveOrders)
	}

	d.status = Busy
	d.ordersReceived++
	return nil
}

// Release returns a Busy driver to Available once their last active order
// completed. remainingActive is the driver's active-order count after the
// completing order, read inside the same transaction; with other orders
// still active the driver stays Busy.
func (d *Driver) Release(remainingActive int) {
	if d.status == Busy && remainingActive == 0 {
		d.status = Available
	}
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}
