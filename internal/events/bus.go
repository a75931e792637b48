// Package events is an in-process publish/subscribe bus. Services publish a
// change event after each successful write; views and the HTTP layer
// subscribe to refresh what they show.
package events

import (
	"log/slog"
	"sync"
	"time"
)

const (
	defaultQueueSize      = 256
	defaultSubscriberSize = 32
)

type subscriber struct {
	sub Subscription
	ch  chan Event
}

// Bus fans published events out to subscribers from a single goroutine.
// Delivery to each subscriber is non-blocking: a subscriber whose buffer is
// full misses the event.
type Bus struct {
	broadcast chan Event
	done      chan struct{}
	wg        sync.WaitGroup

	mu      sync.RWMutex
	closed  bool
	clients map[*subscriber]struct{}

	sequence int64
	subSize  int
	metrics  *Metrics
	logger   *slog.Logger
}

// Option configures a Bus
type Option func(*Bus)

// WithQueueSize sets the broadcast queue capacity
func WithQueueSize(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.broadcast = make(chan Event, n)
		}
	}
}

// WithSubscriberBuffer sets each subscriber's channel capacity
func WithSubscriberBuffer(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.subSize = n
		}
	}
}

// WithLogger sets the logger used for dropped events
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = l
	}
}

// NewBus starts a bus. Call Close to stop its goroutine.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		broadcast: make(chan Event, defaultQueueSize),
		done:      make(chan struct{}),
		clients:   make(map[*subscriber]struct{}),
		subSize:   defaultSubscriberSize,
		metrics:   NewMetrics(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.wg.Add(1)
	go b.broadcastLoop()
	return b
}

// Metrics returns the bus counters
func (b *Bus) Metrics() *Metrics {
	return b.metrics
}

// Publish queues event. It never blocks: ErrBusFull is returned when the
// queue has no room.
func (b *Bus) Publish(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.broadcast <- event:
		b.metrics.EventsPublished.Add(1)
		return nil
	default:
		b.metrics.EventsDropped.Add(1)
		return ErrBusFull
	}
}

// Subscribe registers a subscriber. On a closed bus the returned channel is
// already closed.
func (b *Bus) Subscribe(sub Subscription) (<-chan Event, func()) {
	c := &subscriber{sub: sub, ch: make(chan Event, b.subSize)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(c.ch)
		return c.ch, func() {}
	}
	b.clients[c] = struct{}{}
	b.metrics.Subscribers.Store(int32(len(b.clients)))
	b.mu.Unlock()

	return c.ch, func() { b.remove(c) }
}

func (b *Bus) remove(c *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; !ok {
		return
	}
	delete(b.clients, c)
	close(c.ch)
	b.metrics.Subscribers.Store(int32(len(b.clients)))
}

// Close stops the bus and closes every subscriber channel. Events still in
// the queue are discarded.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()

	b.wg.Wait()

	b.mu.Lock()
	for c := range b.clients {
		delete(b.clients, c)
		close(c.ch)
	}
	b.metrics.Subscribers.Store(0)
	b.mu.Unlock()
	return nil
}

// broadcastLoop distributes events to matching subscribers
func (b *Bus) broadcastLoop() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return

		case event := <-b.broadcast:
			b.sequence++
			event.SequenceID = b.sequence

			b.mu.RLock()
			for c := range b.clients {
				if !c.sub.Matches(event) {
					continue
				}
				// Non-blocking send - if subscriber is slow, skip
				select {
				case c.ch <- event:
					b.metrics.EventsDelivered.Add(1)
				default:
					b.metrics.EventsDropped.Add(1)
					b.logger.Debug("subscriber queue full, event dropped",
						"event_type", event.Type,
						"sequence_id", event.SequenceID)
				}
			}
			b.mu.RUnlock()
		}
	}
}
