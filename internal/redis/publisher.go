package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"agree-disagree/internal/events"

	"github.com/redis/go-redis/v9"
)

// Publisher sends store events over Redis Pub/Sub, one channel per client name.
type Publisher struct {
	client redis.UniversalClient
	prefix string
}

func NewPublisher(client redis.UniversalClient, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix}
}

// Channel returns the channel events for clientName are published on.
func (p *Publisher) Channel(clientName string) string {
	return fmt.Sprintf("%s:%s", p.prefix, clientName)
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, p.Channel(event.ClientName), data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}
