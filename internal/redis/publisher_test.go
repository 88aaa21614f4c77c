package redis

import (
	"context"
	"testing"
	"time"

	"agree-disagree/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	p := NewPublisher(nil, "agreedisagree")

	assert.Equal(t, "agreedisagree:test1", p.Channel("test1"))
}

func TestPublishUnreachableServer(t *testing.T) {
	client := NewClient(Config{Host: "127.0.0.1", Port: "1"})
	defer client.Close()
	p := NewPublisher(client, "agreedisagree")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ev, err := events.NewEvent(events.EventTypeUserCreated, "test3", map[string]string{"uid": "adam"})
	require.NoError(t, err)

	err = p.Publish(ctx, ev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), events.EventTypeUserCreated)
}
