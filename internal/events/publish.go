package events

import (
	"errors"
	"log/slog"
	"time"
)

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff.
// Returns the error from the final attempt if all retries fail.
//
// Change events are advisory: callers log the error and carry on.
func PublishWithRetry(publisher EventPublisher, event Event, maxRetries int) error {
	if publisher == nil {
		return nil
	}

	var lastErr error
	baseDelay := 10 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := publisher.Publish(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"entity_id", event.EntityID)
			}
			return nil
		}

		lastErr = err
		if errors.Is(err, ErrBusClosed) {
			break
		}

		// Don't sleep after the last attempt
		if attempt < maxRetries-1 {
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			time.Sleep(delay)
		}
	}

	if lastErr == nil {
		return nil
	}
	slog.Warn("event publish failed",
		"event_type", event.Type,
		"entity_id", event.EntityID,
		"project_id", event.ProjectID,
		"error", lastErr)

	return lastErr
}
