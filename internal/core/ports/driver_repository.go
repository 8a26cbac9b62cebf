// Package ports defines the repository, unit-of-work, and publisher
// contracts between the domain layer and infrastructure, enabling
// dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// NearbyDriver pairs a driver with their distance from a search origin.
type NearbyDriver struct {
	Driver     *driver.Driver
	DistanceKm float64
}

// DriverRepository defines the persistence contract for driver aggregates.
// Update enforces the same optimistic version check as OrderRepository, so
// two transactions racing on one driver commit at most once.
type DriverRepository interface {
	// Add persists a new driver aggregate.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate under the
	// optimistic version check.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// FindNearby returns drivers with a known position within radiusKm of
	// the origin, filtered by status, ordered by ascending distance, and
	// truncated to limit. An empty result is not an error.
	FindNearby(ctx context.Context, origin kernel.GeoPoint, radiusKm float64, status driver.Status, limit int) ([]NearbyDriver, error)
}
