package services

import (
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

const (
	// DetourFactor approximates road distance from the great-circle
	// distance.
	DetourFactor = 1.3

	// AvgSpeedKmh is the assumed delivery speed used for the duration
	// estimate.
	AvgSpeedKmh = 45.0

	// BaseFee and PerKmRate define the linear fee formula.
	BaseFee   = 7.0
	PerKmRate = 1.2

	// OfferTravelSpeedKmh is the assumed driver travel speed used when
	// projecting a pickup time for an offer.
	OfferTravelSpeedKmh = 50.0

	// FallbackDurationMin is used for the dropoff projection when the
	// order carries no usable duration estimate.
	FallbackDurationMin = 25.0
)

// EstimateCalculator is a pure domain service: it derives the distance,
// duration, and fee estimate for an order at creation time, and projects
// the pickup/dropoff times written into an offer. It is deterministic and
// has no failure modes beyond unconstructed coordinates.
type EstimateCalculator struct{}

// NewEstimateCalculator creates a new EstimateCalculator instance.
func NewEstimateCalculator() EstimateCalculator {
	return EstimateCalculator{}
}

// Calculate computes the creation-time estimate for a pickup/dropoff pair:
// great-circle distance scaled by the detour factor and rounded to 2
// decimals, duration at AvgSpeedKmh rounded to 1 decimal, and the linear
// fee rounded to 2 decimals.
func (c EstimateCalculator) Calculate(pickup, dropoff kernel.GeoPoint) (order.Estimate, error) {
	rawKm, err := pickup.DistanceKm(dropoff)
	if err != nil {
		return order.Estimate{}, err
	}

	distanceKm := round(rawKm*DetourFactor, 2)
	durationMin := round(distanceKm/AvgSpeedKmh*60, 1)
	fee := round(BaseFee+PerKmRate*distanceKm, 2)

	return order.NewEstimate(distanceKm, durationMin, fee)
}

// ProjectOfferTimes computes the projected pickup and dropoff times for an
// offer: pickup is now plus the driver's travel time to the pickup point
// at OfferTravelSpeedKmh, dropoff is pickup plus the order's estimated
// duration (or FallbackDurationMin when the estimate is unusable).
func (c EstimateCalculator) ProjectOfferTimes(
	driverLocation, pickup kernel.GeoPoint,
	estimatedDurationMin float64,
	now time.Time,
) (pickupTime, dropoffTime time.Time, err error) {
	travelKm, err := driverLocation.DistanceKm(pickup)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	travelMin := travelKm / OfferTravelSpeedKmh * 60
	pickupTime = now.UTC().Add(minutes(travelMin))

	durationMin := estimatedDurationMin
	if durationMin <= 0 {
		durationMin = FallbackDurationMin
	}
	dropoffTime = pickupTime.Add(minutes(durationMin))

	return pickupTime, dropoffTime, nil
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

func round(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
