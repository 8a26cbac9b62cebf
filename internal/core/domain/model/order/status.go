package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order. It forms a closed state
// machine; every transition method validates the current state and returns
// an InvalidStateTransitionError for anything the machine does not permit.
//
//	Pending ──auto──> Offered ──accept──> Assigned ──> PickedUp ──> Delivered
//	   │                 │ reject/expire      ▲
//	   │                 └───────> Pending    │
//	   └──────────manual assign───────────────┘
//
// Cancelled is reachable from every pre-delivery state and is terminal,
// as is Delivered.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending means the order awaits a driver.
	Pending

	// Offered means a driver holds a provisional, unconfirmed assignment.
	Offered

	// Assigned means a driver has committed to the order.
	Assigned

	// PickedUp means the driver collected the order.
	PickedUp

	// Delivered is the successful terminal state.
	Delivered

	// Cancelled is the unsuccessful terminal state.
	Cancelled
)

const entityName = "order"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Offered:   "offered",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Offered:   "offered",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString restores a Status from its persisted representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and any value outside the defined set.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the persisted snake_case name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further lifecycle transition is allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the order counts against its driver's capacity.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp
}

// ValidateCanHaveDriver enforces the driver-reference invariant: a driver
// is attached exactly when the status is Offered, Assigned, PickedUp, or
// Delivered.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	requiresDriver := s == Offered || s == Assigned || s == PickedUp || s == Delivered

	if hasDriver && !requiresDriver {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must not reference a driver", s),
		)
	}
	if !hasDriver && requiresDriver {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must reference a driver", s),
		)
	}
	return nil
}

// Offer transitions to Offered. Only a Pending order can be offered.
func (s Status) Offer() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateTransitionError(entityName, s.String(), Offered.String())
	}
	return Offered, nil
}

// Assign transitions to Assigned via the manual path, which bypasses the
// handshake. Pending and Offered orders can be assigned; an Assigned order
// can be re-assigned to a different driver.
func (s Status) Assign() (Status, error) {
	if s != Pending && s != Offered && s != Assigned {
		return Unknown, errs.NewInvalidStateTransitionError(entityName, s.String(), Assigned.String())
	}
	return Assigned, nil
}

// Accept transitions to Assigned from exactly Offered.
func (s Status) Accept() (Status, error) {
	if s != Offered {
		return Unknown, errs.NewInvalidStateTransitionError(entityName, s.String(), Assigned.String())
	}
	return Assigned, nil
}

// Reject returns an Offered order to Pending.
func (s Status) Reject() (Status, error) {
	if s != Offered {
		return Unknown, errs.NewInvalidStateTransitionError(entityName, s.String(), Pending.String())
	}
	return Pending, nil
}

// PickUp transitions to PickedUp from exactly Assigned.
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewInvalidStateTransitionError(entityName, s.String(), PickedUp.String())
	}
	return PickedUp, nil
}

// Deliver transitions to Delivered from exactly PickedUp.
func (s Status) Deliver() (Status, error) {
	if s != PickedUp {
		return Unknown, errs.NewInvalidStateTransitionError(entityName, s.String(), Delivered.String())
	}
	return Delivered, nil
}

// Cancel transitions to Cancelled from any pre-delivery state.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return Unknown, errs.NewInvalidStateTransitionError(entityName, s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
