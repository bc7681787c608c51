package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	// Slot reservation failures, surfaced to the booking requester as
	// "please pick another slot"
	ErrSlotNotFound = errors.New("no slot at that time")
	ErrSlotTaken    = errors.New("slot is no longer available")
)
