package outbox

import "context"

// Event is anything published on the bus, identified by name.
type Event interface {
	EventName() string
}

type Handler func(ctx context.Context, e Event) error

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Subscriber interface {
	Subscribe(eventName string, h Handler)
}

// Bus both publishes and routes events to subscribers.
type Bus interface {
	Publisher
	Subscriber
}
