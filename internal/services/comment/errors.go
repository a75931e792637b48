package comment

import "errors"

// Domain errors for comment service
var (
	ErrEmptyContent     = errors.New("comment cannot be empty")
	ErrContentTooLong   = errors.New("comment cannot exceed 1000 characters")
	ErrInvalidCommentID = errors.New("invalid comment ID")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidAuthorID  = errors.New("invalid author ID")
	ErrTaskNotFound     = errors.New("task not found")
)
