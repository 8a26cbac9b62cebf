package outbox

import (
	"encoding/json"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Lifecycle event names. One event is appended per state-changing
// operation, in the same transaction as the state change itself.
const (
	OrderCreated          = "order.created"
	OrderOffered          = "order.offered"
	OrderAssigned         = "order.assigned"
	OrderRejected         = "order.rejected"
	OrderOfferExpired     = "order.offer_expired"
	OrderPickedUp         = "order.picked_up"
	OrderDelivered        = "order.delivered"
	OrderCancelled        = "order.cancelled"
	DriverLocationUpdated = "driver.location_updated"
)

// ErrEventIsNotConstructed is returned when an Event instance was not
// created through NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errs.NewValueIsRequiredError(
	"event must be created via NewEvent constructor")

// Event is a single outbox record: a lifecycle notification waiting to be
// delivered. Records are written inside the core transaction and drained
// by a separate dispatcher, so notification failures never roll back a
// lifecycle change.
type Event struct {
	id          kernel.UUID
	name        string
	aggregateID kernel.UUID
	payload     []byte
	occurredAt  time.Time
	publishedAt *time.Time

	isConstructed bool
}

// NewEvent creates an unpublished event, encoding the payload as JSON.
func NewEvent(name string, aggregateID kernel.UUID, payload any, now time.Time) (*Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := aggregateID.Validate(); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	return &Event{
		id:            kernel.NewUUID(),
		name:          name,
		aggregateID:   aggregateID,
		payload:       encoded,
		occurredAt:    now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id kernel.UUID,
	name string,
	aggregateID kernel.UUID,
	payload []byte,
	occurredAt time.Time,
	publishedAt *time.Time,
) (*Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := aggregateID.Validate(); err != nil {
		return nil, err
	}

	return &Event{
		id:            id,
		name:          name,
		aggregateID:   aggregateID,
		payload:       payload,
		occurredAt:    occurredAt,
		publishedAt:   publishedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Event was built through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// Name returns the lifecycle event name.
func (e *Event) Name() string {
	return e.name
}

// AggregateID returns the identifier of the order or driver the event
// describes.
func (e *Event) AggregateID() kernel.UUID {
	return e.aggregateID
}

// Payload returns the JSON-encoded event body.
func (e *Event) Payload() []byte {
	return e.payload
}

// OccurredAt returns when the state change happened.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

// PublishedAt returns when the dispatcher delivered the event, or nil.
func (e *Event) PublishedAt() *time.Time {
	return e.publishedAt
}

// IsPublished reports whether the event was already delivered.
func (e *Event) IsPublished() bool {
	return e.publishedAt != nil
}

// MarkPublished stamps the delivery time. Publishing twice is harmless;
// the first timestamp wins.
func (e *Event) MarkPublished(now time.Time) {
	if e.publishedAt != nil {
		return
	}
	publishedAt := now.UTC()
	e.publishedAt = &publishedAt
}
