package events

// EventPublisher is what services need to announce changes. A nil
// EventPublisher is valid everywhere and publishes nothing.
type EventPublisher interface {
	// Publish queues an event for delivery without blocking
	Publish(event Event) error
}

// EventSubscriber receives published events
type EventSubscriber interface {
	// Subscribe returns a channel of matching events and a function that
	// cancels the subscription and closes the channel
	Subscribe(sub Subscription) (<-chan Event, func())
}

// Compile-time verification that *Bus implements both sides
var (
	_ EventPublisher  = (*Bus)(nil)
	_ EventSubscriber = (*Bus)(nil)
)
