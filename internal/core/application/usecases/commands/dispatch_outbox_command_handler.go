package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// DispatchOutboxCommandHandler publishes stored events in occurrence order.
// Publishing stops at the first broker failure so the remaining events stay
// unpublished and get retried on the next run.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

// NewDispatchOutboxCommandHandler creates a handler for outbox draining.
func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory, publisher ports.EventPublisher,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle drains one batch of unpublished events.
func (h DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	events, err := outboxRepo.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}

	var publishErr error
	for _, event := range events {
		if publishErr = h.publisher.Publish(ctx, event); publishErr != nil {
			break
		}

		event.MarkPublished(time.Now())
		if err = outboxRepo.MarkPublished(ctx, event); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return publishErr
}
