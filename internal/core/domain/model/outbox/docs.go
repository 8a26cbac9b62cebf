// Package outbox holds the transactional outbox record for lifecycle
// notifications. Core operations append events inside their own
// transaction; a background dispatcher drains unpublished events to the
// message broker.
package outbox
