package user

import "errors"

// Domain errors for user service
var (
	ErrEmptyName     = errors.New("user name cannot be empty")
	ErrNameTooLong   = errors.New("user name cannot exceed 100 characters")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidUserID = errors.New("invalid user ID")
)
