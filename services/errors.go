package services

import "errors"

var (
	// ErrValidation rejects malformed input before any state change
	ErrValidation = errors.New("invalid input")

	// ErrInvalidTransition flags a booking status move the state machine
	// forbids. Usually means the UI is out of sync; log and investigate.
	ErrInvalidTransition = errors.New("invalid status transition")
)
