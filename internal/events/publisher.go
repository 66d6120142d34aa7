// Package events publishes budget and report domain events to an AMQP broker.
package events

import (
	"context"

	"spendwise/internal/config"
	"spendwise/internal/logger"
)

// Publisher sends domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }

// NewPublisher connects to the broker configured in cfg. An empty AMQP URL
// disables publishing.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	if cfg.AMQPURL == "" {
		logger.Get().Infow("AMQP_URL not set, domain events disabled")
		return NewNoopPublisher(), nil
	}
	return NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
}

// PublishQuietly publishes event and logs instead of returning a failure.
// Mutations have already committed when events are sent.
func PublishQuietly(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		logger.Get().Errorw("failed to publish domain event",
			"error", err,
			"type", event.Type,
			"owner_id", event.OwnerID,
			"resource_id", event.ResourceID,
		)
	}
}
