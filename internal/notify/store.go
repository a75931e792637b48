package notify

import (
	"sync"
	"time"
)

// subscriberBuffer is how many states a slow subscriber may fall behind by
// before it starts missing intermediate states
const subscriberBuffer = 8

// Store owns a State and serializes every change through Reduce
type Store struct {
	mu     sync.RWMutex
	state  State
	subs   map[int]chan State
	nextID int
	now    func() time.Time
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		subs: make(map[int]chan State),
		now:  time.Now,
	}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and notifies subscribers. SetNotifications without a
// timestamp is stamped with the current time.
func (s *Store) Dispatch(a Action) State {
	if set, ok := a.(SetNotifications); ok && set.At.IsZero() {
		set.At = s.now()
		a = set
	}

	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	for _, ch := range s.subs {
		// Non-blocking: a full subscriber skips this state but will see
		// the next one
		select {
		case ch <- next:
		default:
		}
	}
	s.mu.Unlock()

	return next
}

// Subscribe returns a channel receiving every state after a dispatch and a
// function that unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan State, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}
