package outboxrepo

import (
	"context"

	"dispatch/internal/core/domain/model/outbox"

	"gorm.io/gorm"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add persists a new unpublished event.
func (r *GormOutboxRepository) Add(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetUnpublished retrieves up to limit undelivered events, oldest first.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*outbox.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, dtoErr := toDomain(dto)
		if dtoErr != nil {
			return nil, dtoErr
		}
		events = append(events, event)
	}

	return events, nil
}

// MarkPublished records the event's delivery time.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ?", event.ID().Bytes()).
		Update("published_at", event.PublishedAt()).Error
}
