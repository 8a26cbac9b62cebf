package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Update enforces optimistic concurrency: it writes only when the stored
// version matches the aggregate's loaded version and surfaces a
// VersionIsInvalidError otherwise.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate under the
	// optimistic version check.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveForDriver counts the driver's orders in the assigned or
	// picked-up state. Read inside the assigning transaction to enforce
	// the capacity limit.
	CountActiveForDriver(ctx context.Context, driverID kernel.UUID) (int, error)

	// CountOfferedForDriver counts the driver's outstanding offers. Used
	// by auto-assign to keep at most one active offer per driver.
	CountOfferedForDriver(ctx context.Context, driverID kernel.UUID) (int, error)

	// GetOfferedBefore retrieves orders that have been in the offered
	// state since before the cutoff. Used by the offer-expiry job.
	GetOfferedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
