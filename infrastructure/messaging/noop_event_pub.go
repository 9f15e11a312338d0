package messaging

import (
	"context"

	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

// NoopEventPublisher stands in when NATS is not configured.
type NoopEventPublisher struct{}

func NewNoopEventPublisher() ports.EventPublisherPort {
	return NoopEventPublisher{}
}

func (NoopEventPublisher) Publish(ctx context.Context, event *ports.DomainEvent) error {
	if event != nil {
		logger.DebugContext(ctx, "Event dropped, no publisher configured", "type", event.Type)
	}
	return nil
}
