package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"taskboard/pkg/logger"
)

// Publisher publishes JSON payloads to the event stream.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishJSON waits for the JetStream ack.
func (p *Publisher) PublishJSON(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	ack, err := p.client.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	logger.DebugContext(ctx, "Event published",
		"subject", subject,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}
