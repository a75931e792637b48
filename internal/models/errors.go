package models

import "errors"

// Parse errors for enumerated fields
var (
	ErrInvalidStatus             = errors.New("invalid status (must be: todo, in-progress, done)")
	ErrInvalidPriority           = errors.New("invalid priority (must be: high, medium, low)")
	ErrInvalidProjectStatus      = errors.New("invalid project status (must be: active, completed, on_hold, cancelled)")
	ErrInvalidNotificationStatus = errors.New("invalid notification status (must be: unread, read, archived)")
	ErrInvalidNotificationType   = errors.New("invalid notification type (must be: email, sms, push)")
)
