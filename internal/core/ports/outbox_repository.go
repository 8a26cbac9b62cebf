package ports

import (
	"context"

	"dispatch/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for lifecycle events.
// Events are added inside the same transaction as the state change they
// describe; the dispatcher reads and marks them outside of it.
type OutboxRepository interface {
	// Add persists a new unpublished event.
	Add(ctx context.Context, event *outbox.Event) error

	// GetUnpublished retrieves up to limit undelivered events, oldest
	// first.
	GetUnpublished(ctx context.Context, limit int) ([]*outbox.Event, error)

	// MarkPublished records the event's delivery time.
	MarkPublished(ctx context.Context, event *outbox.Event) error
}
