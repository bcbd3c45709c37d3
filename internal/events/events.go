// Package events publishes domain events to an optional broker.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	BookingRequested   = "booking.requested"
	BookingAccepted    = "booking.accepted"
	BookingRejected    = "booking.rejected"
	ChatMessageCreated = "chat.message.created"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func New(typ, key string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
