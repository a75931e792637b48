package database

import "errors"

var (
	// ErrNotFound is wrapped by every GetByID, Update and Delete whose
	// target row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrUnknownDriver is returned for an unsupported database driver
	ErrUnknownDriver = errors.New("unknown database driver")

	// ErrPositionTaken is returned when a task would share its position
	// with another task of the same column
	ErrPositionTaken = errors.New("position already taken in column")
)
