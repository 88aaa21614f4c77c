package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	before := time.Now().UnixMilli()

	ev, err := NewEvent(EventTypeQuestionCreated, "test2", map[string]any{"qid": 1})
	require.NoError(t, err)

	_, err = uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, EventTypeQuestionCreated, ev.Type)
	assert.Equal(t, "test2", ev.ClientName)
	assert.JSONEq(t, `{"qid":1}`, string(ev.Payload))
	assert.GreaterOrEqual(t, ev.Timestamp, before)

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"payload":{"qid":1}`)
}

func TestNewEventRejectsUnencodablePayload(t *testing.T) {
	_, err := NewEvent(EventTypeUserCreated, "x", make(chan int))
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}
