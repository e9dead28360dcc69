package shared

import "context"

// EventHandler consumes domain events.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types this handler wants. An empty slice
	// subscribes it to everything.
	EventTypes() []string
}

// EventPublisher is the write side of the bus.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber is the read side of the bus.
type EventSubscriber interface {
	// Subscribe registers a handler. Without explicit event types the
	// handler's own EventTypes() applies.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is what application services and the outbox processor publish
// domain events through.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
