package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxDispatchJob drains unpublished outbox events to the message broker.
// Runs every second so lifecycle notifications reach consumers with at most
// a one-second delay after commit.
type OutboxDispatchJob struct {
	handler   commands.DispatchOutboxCommandHandler
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxDispatchJob creates a job that publishes outbox events in
// batches of batchSize.
func NewOutboxDispatchJob(
	handler commands.DispatchOutboxCommandHandler,
	batchSize int,
	logger *slog.Logger,
) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_dispatch_job"),
	}
}

// Start begins the outbox dispatch job to run every second.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewDispatchOutboxCommand(j.batchSize)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build outbox dispatch command", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// A publish failure leaves events in the outbox; the next run retries.
			j.logger.ErrorContext(ctx, "Outbox dispatch failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every second)")
	return nil
}

// Stop stops the outbox dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}
