package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a single pickup-to-dropoff delivery
// request. It owns the lifecycle state machine: every transition is a
// guarded method, and illegal transitions fail with an
// InvalidStateTransitionError rather than silently succeeding.
//
// Invariants:
//   - driverID is non-nil exactly when status is Offered, Assigned,
//     PickedUp, or Delivered
//   - the estimate is set once at creation and never changes
//   - Delivered and Cancelled are terminal
type Order struct {
	id         kernel.UUID
	pickup     Waypoint
	dropoff    Waypoint
	customer   Party
	restaurant Party
	price      float64

	status   Status
	driverID *kernel.UUID
	estimate Estimate

	estimatedPickupTime  *time.Time
	estimatedDropoffTime *time.Time
	actualDurationMin    *float64

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	version int

	isConstructed bool
}

// NewOrder creates a Pending order with its estimate already computed.
// All value-object parameters must come from their constructors and the
// price must be non-negative.
func NewOrder(
	id kernel.UUID,
	pickup, dropoff Waypoint,
	customer, restaurant Party,
	price float64,
	estimate Estimate,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now.UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setWaypoints(pickup, dropoff),
		o.setParties(customer, restaurant),
		o.setPrice(price),
		o.setEstimate(estimate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It validates the
// status and the driver-reference invariant but trusts stored field values
// otherwise.
func RestoreOrder(
	id kernel.UUID,
	pickup, dropoff Waypoint,
	customer, restaurant Party,
	price float64,
	status Status,
	driverID *kernel.UUID,
	estimate Estimate,
	estimatedPickupTime, estimatedDropoffTime *time.Time,
	actualDurationMin *float64,
	createdAt time.Time,
	assignedAt, pickedUpAt, deliveredAt *time.Time,
	version int,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	o := &Order{
		status:               status,
		driverID:             driverID,
		estimatedPickupTime:  estimatedPickupTime,
		estimatedDropoffTime: estimatedDropoffTime,
		actualDurationMin:    actualDurationMin,
		createdAt:            createdAt,
		assignedAt:           assignedAt,
		pickedUpAt:           pickedUpAt,
		deliveredAt:          deliveredAt,
		version:              version,
		isConstructed:        true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setWaypoints(pickup, dropoff),
		o.setParties(customer, restaurant),
		o.setPrice(price),
		o.setEstimate(estimate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Pickup returns the pickup waypoint.
func (o *Order) Pickup() Waypoint {
	return o.pickup
}

// Dropoff returns the dropoff waypoint.
func (o *Order) Dropoff() Waypoint {
	return o.dropoff
}

// Customer returns the ordering customer.
func (o *Order) Customer() Party {
	return o.customer
}

// Restaurant returns the restaurant party.
func (o *Order) Restaurant() Party {
	return o.restaurant
}

// Price returns the order price.
func (o *Order) Price() float64 {
	return o.price
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// DriverID returns the referenced driver, or nil when the order is
// unassigned. The returned pointer is a copy.
func (o *Order) DriverID() *kernel.UUID {
	if o.driverID == nil {
		return nil
	}
	id := *o.driverID
	return &id
}

// Estimate returns the immutable creation-time estimate.
func (o *Order) Estimate() Estimate {
	return o.estimate
}

// EstimatedPickupTime returns the projected pickup time set at offer or
// assign, or nil.
func (o *Order) EstimatedPickupTime() *time.Time {
	return o.estimatedPickupTime
}

// EstimatedDropoffTime returns the projected dropoff time set at offer or
// assign, or nil.
func (o *Order) EstimatedDropoffTime() *time.Time {
	return o.estimatedDropoffTime
}

// ActualDurationMin returns the measured assignment-to-delivery duration in
// minutes, or nil before delivery.
func (o *Order) ActualDurationMin() *float64 {
	return o.actualDurationMin
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignedAt returns the assignment timestamp, or nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// PickedUpAt returns the pickup timestamp, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns the delivery timestamp, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Version returns the optimistic-lock counter as loaded from the store.
func (o *Order) Version() int {
	return o.version
}

// Offer places a provisional, unconfirmed assignment on a driver: the
// order moves from Pending to Offered and records the projected pickup and
// dropoff times. The driver's own status is not touched at offer time.
func (o *Order) Offer(driverID kernel.UUID, estimatedPickup, estimatedDropoff time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Offer()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	pickup := estimatedPickup.UTC()
	dropoff := estimatedDropoff.UTC()
	o.estimatedPickupTime = &pickup
	o.estimatedDropoffTime = &dropoff
	return nil
}

// Assign commits the order to a driver through the manual path, bypassing
// the offer handshake. Pending and Offered orders can be assigned and an
// Assigned order can be re-assigned. Optional projected pickup/dropoff
// overrides replace whatever the offer set.
func (o *Order) Assign(driverID kernel.UUID, now time.Time, estimatedPickup, estimatedDropoff *time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	assignedAt := now.UTC()
	o.assignedAt = &assignedAt
	if estimatedPickup != nil {
		pickup := estimatedPickup.UTC()
		o.estimatedPickupTime = &pickup
	}
	if estimatedDropoff != nil {
		dropoff := estimatedDropoff.UTC()
		o.estimatedDropoffTime = &dropoff
	}
	return nil
}

// Accept confirms an offer. The caller must be the driver the order is
// offered to; anyone else gets a ForbiddenError. The order must be exactly
// Offered.
func (o *Order) Accept(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := o.validateOfferedTo(driverID); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	assignedAt := now.UTC()
	o.assignedAt = &assignedAt
	return nil
}

// Reject declines an offer and returns the order to Pending, clearing the
// driver reference and the projected times. Only the offered driver may
// reject; their own status is never changed here.
func (o *Order) Reject(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := o.validateOfferedTo(driverID); err != nil {
		return err
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.clearDriver()
	return nil
}

// ExpireOffer returns an Offered order to Pending after its offer timed
// out, exactly as a reject would but without a caller check.
func (o *Order) ExpireOffer() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.clearDriver()
	return nil
}

// PickUp marks the order collected. The order must be exactly Assigned.
func (o *Order) PickUp(now time.Time) error {
	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	pickedUpAt := now.UTC()
	o.pickedUpAt = &pickedUpAt
	return nil
}

// Deliver marks the order delivered and records the actual duration from
// assignment to delivery in minutes. The order must be exactly PickedUp.
func (o *Order) Deliver(now time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	deliveredAt := now.UTC()
	o.deliveredAt = &deliveredAt
	if o.assignedAt != nil {
		duration := math.Round(deliveredAt.Sub(*o.assignedAt).Minutes()*10) / 10
		o.actualDurationMin = &duration
	}
	return nil
}

// Cancel terminates the order from any pre-delivery state. The driver
// reference and projected times are cleared so the driver invariant holds
// for the terminal record.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.clearDriver()
	return nil
}

func (o *Order) validateOfferedTo(driverID kernel.UUID) error {
	if o.status == Offered && o.driverID != nil && !o.driverID.IsEqual(driverID) {
		return errs.NewForbiddenError(o.id.String(), driverID.String())
	}
	return nil
}

func (o *Order) clearDriver() {
	o.driverID = nil
	o.estimatedPickupTime = nil
	o.estimatedDropoffTime = nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setWaypoints(pickup, dropoff Waypoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	if err := dropoff.Validate(); err != nil {
		return err
	}
	o.pickup = pickup
	o.dropoff = dropoff
	return nil
}

func (o *Order) setParties(customer, restaurant Party) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if err := restaurant.Validate(); err != nil {
		return err
	}
	o.customer = customer
	o.restaurant = restaurant
	return nil
}

func (o *Order) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%f is negative", price))
	}
	o.price = price
	return nil
}

func (o *Order) setEstimate(estimate Estimate) error {
	if err := estimate.Validate(); err != nil {
		return err
	}
	o.estimate = estimate
	return nil
}
