package messaging

import (
	"context"
	"fmt"

	"taskboard/domain/ports"
	natspkg "taskboard/infrastructure/nats"
)

// JSONPublisher is satisfied by *nats.Publisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, subject string, payload any) error
}

// NATSEventPublisher implements EventPublisherPort on JetStream.
type NATSEventPublisher struct {
	publisher JSONPublisher
}

func NewNATSEventPublisher(publisher JSONPublisher) ports.EventPublisherPort {
	return &NATSEventPublisher{publisher: publisher}
}

func (p *NATSEventPublisher) Publish(ctx context.Context, event *ports.DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}
	return p.publisher.PublishJSON(ctx, natspkg.EventSubject(event.Type), event)
}
