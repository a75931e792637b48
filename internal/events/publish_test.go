package events

import (
	"errors"
	"testing"
	"time"
)

// mockRetryPublisher fails a fixed number of attempts before succeeding
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int // Fail until this attempt number (0-indexed)
	failWith     error
	lastEvent    Event
}

func (m *mockRetryPublisher) Publish(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		if m.failWith != nil {
			return m.failWith
		}
		return ErrBusFull
	}
	return nil
}

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 0}
	event := Event{Type: EventTaskChanged, ProjectID: 1, EntityID: 7}

	err := PublishWithRetry(mock, event, 3)
	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}

	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}

	if mock.lastEvent.EntityID != 7 {
		t.Errorf("Expected entity ID 7, got %d", mock.lastEvent.EntityID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	// Fail first 2 attempts, succeed on 3rd
	mock := &mockRetryPublisher{failUntil: 2}

	err := PublishWithRetry(mock, Event{Type: EventTaskChanged}, 3)
	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}

	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_FailureAfterAllRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	err := PublishWithRetry(mock, Event{Type: EventProjectChanged}, 3)
	if !errors.Is(err, ErrBusFull) {
		t.Errorf("Expected ErrBusFull after all retries, got %v", err)
	}

	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_ClosedBusStopsImmediately(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999, failWith: ErrBusClosed}

	err := PublishWithRetry(mock, Event{Type: EventTaskChanged}, 3)
	if !errors.Is(err, ErrBusClosed) {
		t.Errorf("Expected ErrBusClosed, got %v", err)
	}

	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt against a closed bus, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_NilPublisher(t *testing.T) {
	// Should not panic and return nil
	err := PublishWithRetry(nil, Event{Type: EventTaskChanged}, 3)
	if err != nil {
		t.Errorf("Expected nil error for nil publisher, got: %v", err)
	}
}

func TestPublishWithRetry_ExponentialBackoff(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}

	start := time.Now()
	err := PublishWithRetry(mock, Event{Type: EventTaskChanged}, 3)
	duration := time.Since(start)

	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}

	// 10ms + 20ms
	minDuration := 30 * time.Millisecond
	if duration < minDuration {
		t.Errorf("Expected at least %v delay for retries, got %v", minDuration, duration)
	}
}

func TestPublishWithRetry_ZeroRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	err := PublishWithRetry(mock, Event{Type: EventTaskChanged}, 0)
	if err != nil {
		t.Errorf("Expected nil error with 0 retries (no attempts), got: %v", err)
	}

	if mock.sendAttempts != 0 {
		t.Errorf("Expected 0 attempts with maxRetries=0, got %d", mock.sendAttempts)
	}
}
