package ports

import (
	"context"

	"dispatch/internal/core/domain/model/outbox"
)

// EventPublisher delivers lifecycle events to the message broker. Delivery
// is best-effort: a failed publish leaves the event unpublished in the
// outbox for a later retry and never affects lifecycle correctness.
type EventPublisher interface {
	Publish(ctx context.Context, event *outbox.Event) error
}
