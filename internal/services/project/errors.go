package project

import "errors"

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrNameTooLong      = errors.New("project name cannot exceed 100 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidStatus    = errors.New("invalid project status")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrEmptyTeamMember  = errors.New("team member name cannot be empty")
)
