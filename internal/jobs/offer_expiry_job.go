package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OfferExpiryJob returns stale offers to the pending pool. Runs every ten
// seconds and reclaims offers older than the configured TTL.
type OfferExpiryJob struct {
	handler commands.ExpireOffersCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOfferExpiryJob creates a job that expires offers older than ttl.
func NewOfferExpiryJob(
	handler commands.ExpireOffersCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *OfferExpiryJob {
	return &OfferExpiryJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "offer_expiry_job"),
	}
}

// Start begins the offer expiry job to run every ten seconds.
func (j *OfferExpiryJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireOffersCommand(j.ttl)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build offer expiry command", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Offer expiry failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiry job started (running every ten seconds)")
	return nil
}

// Stop stops the offer expiry job.
func (j *OfferExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Offer expiry job stopped")
}
