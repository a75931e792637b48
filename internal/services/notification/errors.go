package notification

import "errors"

// Domain errors for notification service
var (
	ErrInvalidNotificationID = errors.New("invalid notification ID")
	ErrInvalidRecipientID    = errors.New("invalid recipient ID")
	ErrEmptyMessage          = errors.New("notification message cannot be empty")
	ErrInvalidType           = errors.New("invalid notification type")
	ErrInvalidStatus         = errors.New("invalid notification status")
	ErrInvalidTransition     = errors.New("notification status cannot move backwards")
	ErrInvalidPage           = errors.New("page must be at least 1")
)
