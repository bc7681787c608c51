package models

import (
	"time"

	"github.com/google/uuid"
)

// WalkIn is a client served without a prior booking. It lives only in
// memory until the cut completes, at which point it is folded into booking
// history as a Booking of type walk-in.
type WalkIn struct {
	ID          uuid.UUID   `json:"id"`
	BarberID    uuid.UUID   `json:"barberId"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone,omitempty"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	HaircutName string      `json:"haircutName,omitempty"`
	Status      QueueStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// QueueItem is the uniform barber-facing projection of a Booking (type
// app) or a WalkIn (type walk-in). Derived on every read, never persisted.
type QueueItem struct {
	ID          uuid.UUID   `json:"id"`
	Type        BookingType `json:"type"`
	ClientName  string      `json:"clientName"`
	Time        string      `json:"time"`
	Status      QueueStatus `json:"status"`
	HaircutName string      `json:"haircutName,omitempty"`
	BookingID   *uuid.UUID  `json:"bookingId,omitempty"`
}

type QueueStats struct {
	Booked               int `json:"booked"`
	WalkIns              int `json:"walkIns"`
	Completed            int `json:"completed"`
	RunningLate          int `json:"runningLate"`
	EstimatedWaitMinutes int `json:"estimatedWaitMinutes"`
}
