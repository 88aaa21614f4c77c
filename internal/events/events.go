package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types follow the format: entity.action
const (
	EventTypeQuestionCreated = "question.created"
	EventTypeUserCreated     = "user.created"
)

// Event is the envelope published for every store mutation.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	ClientName string          `json:"client_name"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  int64           `json:"timestamp"`
}

// NewEvent stamps payload with a fresh id and the current time in unix milliseconds.
func NewEvent(eventType, clientName string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ClientName: clientName,
		Payload:    raw,
		Timestamp:  time.Now().UnixMilli(),
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
