package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/outbox"
)

// ExpireOffersCommandHandler sweeps offers that outlived their TTL back to
// pending so the dispatcher can try another driver.
type ExpireOffersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewExpireOffersCommandHandler creates a handler for the expiry sweep.
func NewExpireOffersCommandHandler(uowFactory OrderUoWFactory) ExpireOffersCommandHandler {
	return ExpireOffersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the expiry sweep.
func (h ExpireOffersCommandHandler) Handle(ctx context.Context, cmd ExpireOffersCommand) error {
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

	orderRepo := uow.OrderRepository()
	outboxRepo := uow.OutboxRepository()

	now := time.Now()
	cutoff := now.Add(-cmd.TTL())

	staleOrders, err := orderRepo.GetOfferedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, o := range staleOrders {
		if err = o.ExpireOffer(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}

		event, eventErr := newOrderEvent(outbox.OrderOfferExpired, o, now)
		if eventErr != nil {
			return eventErr
		}
		if err = outboxRepo.Add(ctx, event); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
