package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus is the single canonical lifecycle state of a booking.
// Client-facing "user status" and barber-facing "queue status" are
// projections of it (ToClientView / ToQueueView), never stored separately.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusOnTheWay   BookingStatus = "on-the-way"
	StatusWillBeLate BookingStatus = "will-be-late"
	StatusArrived    BookingStatus = "arrived"
	StatusCutting    BookingStatus = "cutting"
	StatusPaused     BookingStatus = "paused"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no-show"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusOnTheWay, StatusWillBeLate, StatusArrived,
		StatusCutting, StatusPaused, StatusCompleted, StatusCancelled, StatusNoShow:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// QueueStatus is the barber-facing view of a queue item.
type QueueStatus string

const (
	QueuePending    QueueStatus = "pending"
	QueueInProgress QueueStatus = "in-progress"
	QueuePaused     QueueStatus = "paused"
	QueueCompleted  QueueStatus = "completed"
	QueueNoShow     QueueStatus = "no-show"
)

type BookingType string

const (
	TypeApp    BookingType = "app"
	TypeWalkIn BookingType = "walk-in"
)

type Booking struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;index;not null" json:"barberId"`

	// Denormalized display fields so booking views never join
	BarberName string `json:"barberName"`
	ShopName   string `json:"shopName"`

	ClientName  string `gorm:"not null" json:"clientName"`
	ClientPhone string `gorm:"index;not null" json:"clientPhone"`

	SlotTime    string `gorm:"type:varchar(5);not null" json:"slotTime"`
	BookingDate string `gorm:"type:varchar(10);index;not null" json:"bookingDate"`

	AccessCode string `gorm:"type:varchar(4);index;not null" json:"accessCode"`

	Status BookingStatus `gorm:"type:varchar(15);default:'pending'" json:"-"`
	Type   BookingType   `gorm:"type:varchar(10);default:'app'" json:"type"`

	// Chosen in the chair, not at booking time
	HaircutName string `json:"haircutName,omitempty"`

	CancelledByBarber bool   `gorm:"default:false" json:"cancelledByBarber"`
	CancelReason      string `json:"cancelReason,omitempty"`

	NotifySMS      bool `gorm:"default:true" json:"notifySms"`
	NotifyWhatsapp bool `gorm:"default:false" json:"notifyWhatsapp"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`

	gorm.Model `json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.AccessCode = strings.ToUpper(b.AccessCode)
	return
}

// ToClientView projects the canonical status onto the client-facing
// vocabulary. Mid-cut states read as "arrived" to the client; a no-show is
// just a cancellation from their side.
func (b *Booking) ToClientView() BookingStatus {
	switch b.Status {
	case StatusCutting, StatusPaused:
		return StatusArrived
	case StatusNoShow:
		return StatusCancelled
	default:
		return b.Status
	}
}

// ToQueueView projects the canonical status onto the barber-facing queue
// vocabulary. Everyone not yet in the chair is queue-pending; cancelled
// bookings have no queue view and are filtered out by the projector.
func (b *Booking) ToQueueView() QueueStatus {
	switch b.Status {
	case StatusPending, StatusOnTheWay, StatusWillBeLate, StatusArrived:
		return QueuePending
	case StatusCutting:
		return QueueInProgress
	case StatusPaused:
		return QueuePaused
	case StatusCompleted:
		return QueueCompleted
	case StatusNoShow:
		return QueueNoShow
	default:
		return QueuePending
	}
}

func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// clientTransitions enumerates the self-service moves a client may make.
// Everything else (start/pause/complete/no-show, barber cancellation) goes
// through the barber-side operations. An arrived client can no longer
// cancel; only the barber can resolve that booking.
var clientTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusOnTheWay, StatusWillBeLate, StatusArrived, StatusCancelled},
	StatusOnTheWay:   {StatusWillBeLate, StatusArrived, StatusCancelled},
	StatusWillBeLate: {StatusOnTheWay, StatusArrived, StatusCancelled},
}

func CanClientTransition(from, to BookingStatus) bool {
	for _, allowed := range clientTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
