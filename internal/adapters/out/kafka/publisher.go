// Package kafka publishes outbox events to a Kafka topic. Messages are
// keyed by aggregate id so every event for one order or driver lands on
// the same partition, preserving per-aggregate ordering.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/outbox"

	"github.com/IBM/sarama"
)

// SaramaEventPublisher implements ports.EventPublisher on a synchronous
// Kafka producer.
type SaramaEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// envelope is the wire format of a published lifecycle event.
type envelope struct {
	EventID     string          `json:"event_id"`
	EventName   string          `json:"event_name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewSaramaEventPublisher creates a publisher connected to the given
// brokers. The producer requires acknowledgement from all in-sync replicas
// before reporting success.
func NewSaramaEventPublisher(brokers []string, topic string) (*SaramaEventPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is not configured")
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Net.DialTimeout = 30 * time.Second
	config.Net.ReadTimeout = 30 * time.Second
	config.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &SaramaEventPublisher{producer: producer, topic: topic}, nil
}

// Publish delivers one event to the topic. A non-nil error means the event
// stays unpublished in the outbox and will be retried on a later drain.
func (p *SaramaEventPublisher) Publish(_ context.Context, event *outbox.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	value, err := json.Marshal(envelope{
		EventID:     event.ID().String(),
		EventName:   event.Name(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt(),
		Payload:     event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID(), err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AggregateID().String()),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.ID(), err)
	}

	return nil
}

// Close shuts down the underlying producer.
func (p *SaramaEventPublisher) Close() error {
	return p.producer.Close()
}
