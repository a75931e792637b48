package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrTitleTooLong     = errors.New("task title cannot exceed 255 characters")
	ErrMissingDueDate   = errors.New("task due date is required")
	ErrInvalidProgress  = errors.New("task progress must be between 0 and 100")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrInvalidPosition  = errors.New("invalid position: must be >= 1")
	ErrPositionTaken    = errors.New("position already used by another task in the column")

	// Attachment validation errors
	ErrAttachmentTooLarge    = errors.New("attachment must be smaller than 10MB")
	ErrUnsupportedAttachment = errors.New("attachment type not supported")
	ErrEmptyAttachmentName   = errors.New("attachment name cannot be empty")

	// Business logic errors
	ErrProjectNotFound    = errors.New("project not found")
	ErrAssigneeNotFound   = errors.New("assignee not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
)
