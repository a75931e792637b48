package notify

import "errors"

var (
	// ErrInvalidRecipient is returned by a Sync with no recipient configured
	ErrInvalidRecipient = errors.New("invalid notification recipient")

	// ErrBulkPartial wraps the per-id failures of a bulk operation
	ErrBulkPartial = errors.New("some notifications could not be updated")
)
