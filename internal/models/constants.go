package models

// ============================================================================
// BOARD CONSTANTS
// ============================================================================

// Columns lists the board columns in display order
var Columns = []Status{StatusTodo, StatusInProgress, StatusDone}

// Priorities lists priorities from most to least urgent
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// FirstPosition is the position given to a task entering an empty column
const FirstPosition = 1

// ============================================================================
// DEFAULTS
// ============================================================================

const (
	// DefaultNotificationSubject is used when a notification is created without one
	DefaultNotificationSubject = "Notification"

	// MaxProgress is the upper bound of task and project progress
	MaxProgress = 100
)
