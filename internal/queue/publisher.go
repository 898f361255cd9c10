package queue

import (
	"context"
)

const Exchange = "chat.events"

// Routing keys published on Exchange.
const (
	KeyParticipantJoined = "participant.joined"
	KeyParticipantLeft   = "participant.left"
	KeyMessagePosted     = "message.posted"
)

type Publisher interface {
	Publish(ctx context.Context, exchange, key string, event any, reqID string) error
	Close() error
}

type NoopPub struct{}

func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	return nil
}
func (NoopPub) Close() error { return nil }

type ParticipantJoined struct {
	Name string `json:"name"`
	At   string `json:"at"`
}

type ParticipantLeft struct {
	Name string `json:"name"`
	At   string `json:"at"`
}

type MessagePosted struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}
