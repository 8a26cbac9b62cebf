package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrEstimateIsNotConstructed is returned when validating an Estimate that
// was not built via NewEstimate.
var ErrEstimateIsNotConstructed = errs.NewValueIsRequiredError(
	"estimate must be created via NewEstimate constructor")

// Estimate holds the distance, duration, and fee computed once when an
// order is created. It never changes afterwards.
type Estimate struct {
	distanceKm  float64
	durationMin float64
	fee         float64
	guard       guard.ConstructorGuard
}

// NewEstimate creates an Estimate. All components must be non-negative.
func NewEstimate(distanceKm, durationMin, fee float64) (Estimate, error) {
	if distanceKm < 0 {
		return Estimate{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm", fmt.Errorf("%f is negative", distanceKm))
	}
	if durationMin < 0 {
		return Estimate{}, errs.NewValueIsInvalidErrorWithCause(
			"durationMin", fmt.Errorf("%f is negative", durationMin))
	}
	if fee < 0 {
		return Estimate{}, errs.NewValueIsInvalidErrorWithCause(
			"fee", fmt.Errorf("%f is negative", fee))
	}

	return Estimate{
		distanceKm:  distanceKm,
		durationMin: durationMin,
		fee:         fee,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Estimate was built via NewEstimate.
func (e Estimate) Validate() error {
	return e.guard.Validate(ErrEstimateIsNotConstructed)
}

// DistanceKm returns the estimated road distance in kilometers.
func (e Estimate) DistanceKm() float64 {
	return e.distanceKm
}

// DurationMin returns the estimated delivery duration in minutes.
func (e Estimate) DurationMin() float64 {
	return e.durationMin
}

// Fee returns the delivery fee.
func (e Estimate) Fee() float64 {
	return e.fee
}
