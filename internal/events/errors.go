package events

import "errors"

var (
	// ErrBusClosed is returned when publishing to a closed bus
	ErrBusClosed = errors.New("event bus is closed")

	// ErrBusFull is returned when the broadcast queue has no room
	ErrBusFull = errors.New("event bus queue is full")
)
