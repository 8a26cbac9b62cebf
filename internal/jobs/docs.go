// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order dispatching.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every second to publish committed outbox events to Kafka
// 2. OfferExpiryJob - Runs every ten seconds to return stale offers to the pending pool
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchOutboxHandler, expireOffersHandler, batchSize, offerTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Outbox dispatch failures leave events unpublished; the next run retries them
// - Offer expiry failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
