package driver

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is a driver's availability state. Offline and OnBreak drivers are
// never matched; Available drivers can receive offers and assignments; Busy
// drivers hold at least one active order but may still be assigned more up
// to capacity.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota

	// Offline means the driver is off shift and invisible to matching.
	Offline

	// Available means the driver is on shift with no active orders.
	Available

	// Busy means the driver holds at least one assigned or picked-up order.
	Busy

	// OnBreak means the driver paused their shift.
	OnBreak
)

const entityName = "driver"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Offline:       "offline",
		Available:     "available",
		Busy:          "busy",
		OnBreak:       "on_break",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Offline:   "offline",
		Available: "available",
		Busy:      "busy",
		OnBreak:   "on_break",
	}
}

// StatusFromString restores a Status from its persisted representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid driver status", s))
}

// Validate rejects StatusUnknown and any value outside the defined set.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid driver status", s))
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

// CanTakeOrder reports whether the status permits taking another order.
// Capacity is checked separately against the active-order count.
func (s Status) CanTakeOrder() bool {
	return s == Available || s == Busy
}

// StartBreak transitions to OnBreak. Only an Available driver may break;
// a Busy driver has to finish or hand off their orders first.
func (s Status) StartBreak() (Status, error) {
	if s != Available {
		return StatusUnknown, errs.NewInvalidStateTransitionError(entityName, s.String(), OnBreak.String())
	}
	return OnBreak, nil
}

// EndBreak transitions back to Available from exactly OnBreak.
func (s Status) EndBreak() (Status, error) {
	if s != OnBreak {
		return StatusUnknown, errs.NewInvalidStateTransitionError(entityName, s.String(), Available.String())
	}
	return Available, nil
}

// DutyStatus tracks whether a driver is on shift. It changes only through
// the shift operations, independently of the moment-to-moment Status.
type DutyStatus int

const (
	// DutyUnknown catches uninitialized DutyStatus values.
	DutyUnknown DutyStatus = iota

	// OffDuty means the driver is not working a shift.
	OffDuty

	// OnDuty means the driver is working a shift.
	OnDuty
)

func getDutyStatusStrings() map[DutyStatus]string {
	return map[DutyStatus]string{
		DutyUnknown: "unknown",
		OffDuty:     "off_duty",
		OnDuty:      "on_duty",
	}
}

// DutyStatusFromString restores a DutyStatus from its persisted
// representation.
func DutyStatusFromString(s string) (DutyStatus, error) {
	switch s {
	case "off_duty":
		return OffDuty, nil
	case "on_duty":
		return OnDuty, nil
	default:
		return DutyUnknown, errs.NewValueIsInvalidErrorWithCause(
			"dutyStatus", fmt.Errorf("%q is not a valid duty status", s))
	}
}

// Validate rejects DutyUnknown and any value outside the defined set.
func (d DutyStatus) Validate() error {
	if d != OffDuty && d != OnDuty {
		return errs.NewValueIsInvalidErrorWithCause(
			"dutyStatus", fmt.Errorf("%d is not a valid duty status", d))
	}
	return nil
}

// String returns the persisted snake_case name of the duty status.
func (d DutyStatus) String() string {
	if str, ok := getDutyStatusStrings()[d]; ok {
		return str
	}
	return "unknown"
}
