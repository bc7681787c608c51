package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotStatus string

const (
	SlotAvailable  SlotStatus = "available"
	SlotBooked     SlotStatus = "booked"
	SlotInProgress SlotStatus = "in-progress"
	SlotCompleted  SlotStatus = "completed"
	// SlotClosed removes a slot from rotation for the rest of the date,
	// e.g. a barber-side cancellation without reopening.
	SlotClosed SlotStatus = "closed"
)

func ParseSlotStatus(s string) (SlotStatus, bool) {
	switch SlotStatus(s) {
	case SlotAvailable, SlotBooked, SlotInProgress, SlotCompleted, SlotClosed:
		return SlotStatus(s), true
	default:
		return "", false
	}
}

// Slot is one bookable time unit for one barber on one date. The unique
// index on (barber_id, date, time) backs both idempotent grid generation
// and the single-winner reservation update.
type Slot struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BarberID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_barber_date_time,priority:1" json:"barberId"`
	Date     string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_barber_date_time,priority:2" json:"date"`
	Time     string     `gorm:"type:varchar(5);not null;uniqueIndex:idx_barber_date_time,priority:3" json:"time"`
	Status   SlotStatus `gorm:"type:varchar(15);default:'available'" json:"status"`

	OccupantName string     `json:"occupantName,omitempty"`
	BookingID    *uuid.UUID `gorm:"type:uuid;index" json:"bookingId,omitempty"`

	gorm.Model `json:"-"`
}

func (s *Slot) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
