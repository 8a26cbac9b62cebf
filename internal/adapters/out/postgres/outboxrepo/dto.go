// Package outboxrepo persists lifecycle events for the transactional
// outbox. Events are written in the same transaction as the aggregate
// change they describe and drained to the broker by a background job.
package outboxrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// EventDTO is the database row for an outbox event.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID `gorm:"type:uuid;index;not null"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time `gorm:"index;not null"`
	PublishedAt *time.Time
}

// TableName overrides GORM's default naming to use "outbox_events".
func (EventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(event *outbox.Event) EventDTO {
	return EventDTO{
		ID:          event.ID().Bytes(),
		Name:        event.Name(),
		AggregateID: event.AggregateID().Bytes(),
		Payload:     event.Payload(),
		OccurredAt:  event.OccurredAt(),
		PublishedAt: event.PublishedAt(),
	}
}

func toDomain(dto EventDTO) (*outbox.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreEvent(id, dto.Name, aggregateID, dto.Payload, dto.OccurredAt, dto.PublishedAt)
}
