package rabbitmq

import "context"

type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// Nop drops every event; used when RABBITMQ_URL is empty.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

var (
	_ PublisherInterface = (*Publisher)(nil)
	_ PublisherInterface = Nop{}
)
