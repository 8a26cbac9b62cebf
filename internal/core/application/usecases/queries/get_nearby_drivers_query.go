// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetNearbyDriversQueryIsNotConstructed = errors.New(
		"GetNearbyDriversQuery must be created via NewGetNearbyDriversQuery constructor",
	)
)

// GetNearbyDriversQuery retrieves drivers within a radius of an origin
// point, filtered by status and ordered by ascending distance. An empty
// result is a valid answer, not an error.
//
//nolint:recvcheck //using for validation
type GetNearbyDriversQuery struct {
	guard guard.ConstructorGuard

	origin   kernel.GeoPoint
	radiusKm float64
	status   driver.Status
	limit    int
}

// NewGetNearbyDriversQuery creates a radius search query. The radius is in
// kilometers and must be positive; limit caps the number of results.
func NewGetNearbyDriversQuery(
	origin kernel.GeoPoint,
	radiusKm float64,
	status driver.Status,
	limit int,
) (GetNearbyDriversQuery, error) {
	var query GetNearbyDriversQuery

	err := errors.Join(
		query.setOrigin(origin),
		query.setRadiusKm(radiusKm),
		query.setStatus(status),
		query.setLimit(limit),
	)
	if err != nil {
		return GetNearbyDriversQuery{}, err
	}

	query.guard = guard.NewConstructorGuard()
	return query, nil
}

// Origin returns the center of the search circle.
func (q GetNearbyDriversQuery) Origin() kernel.GeoPoint {
	return q.origin
}

// RadiusKm returns the search radius in kilometers.
func (q GetNearbyDriversQuery) RadiusKm() float64 {
	return q.radiusKm
}

// Status returns the driver status the search is restricted to.
func (q GetNearbyDriversQuery) Status() driver.Status {
	return q.status
}

// Limit returns the maximum number of drivers to return.
func (q GetNearbyDriversQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetNearbyDriversQueryIsNotConstructed if validation fails.
func (q GetNearbyDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyDriversQueryIsNotConstructed)
}

func (q *GetNearbyDriversQuery) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	q.origin = origin
	return nil
}

func (q *GetNearbyDriversQuery) setRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		return errs.NewValueIsInvalidError("radiusKm")
	}

	q.radiusKm = radiusKm
	return nil
}

func (q *GetNearbyDriversQuery) setStatus(status driver.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	q.status = status
	return nil
}

func (q *GetNearbyDriversQuery) setLimit(limit int) error {
	if limit <= 0 {
		return errs.NewValueIsInvalidError("limit")
	}

	q.limit = limit
	return nil
}

// GetNearbyDriversQueryResponse represents one driver in the radius search
// read model, with the computed distance from the origin.
type GetNearbyDriversQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Status     string
	Location   kernel.GeoPoint
	DistanceKm float64
}
