// Package events carries booking lifecycle events from the core to
// interested listeners (the notification dispatcher, mainly). The bus is
// in-process: the reference deployment is a single server, so a broker
// would only add a network hop. The interface keeps that swappable.
package events

import "sync"

// Booking lifecycle subjects
const (
	BookingCreated           = "booking.created"
	BookingStatusChanged     = "booking.status_changed"
	BookingCancelled         = "booking.cancelled"
	BookingCancelledByBarber = "booking.cancelled_by_barber"
	BookingCompleted         = "booking.completed"
)

// BookingEvent is the payload published on every booking subject.
type BookingEvent struct {
	BookingID      string `json:"bookingId"`
	AccessCode     string `json:"accessCode"`
	ClientName     string `json:"clientName"`
	ClientPhone    string `json:"clientPhone"`
	BarberName     string `json:"barberName"`
	ShopName       string `json:"shopName"`
	SlotTime       string `json:"slotTime"`
	BookingDate    string `json:"bookingDate"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	NotifySMS      bool   `json:"notifySms"`
	NotifyWhatsapp bool   `json:"notifyWhatsapp"`
}

type Handler func(subject string, event BookingEvent)

type Bus interface {
	Publish(subject string, event BookingEvent)
	Subscribe(subject string, h Handler)
}

type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[string][]Handler)}
}

func (b *MemoryBus) Subscribe(subject string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[subject] = append(b.handlers[subject], h)
}

// Publish dispatches synchronously; handlers that must not block the
// triggering operation (message delivery) hand off internally.
func (b *MemoryBus) Publish(subject string, event BookingEvent) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[subject]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(subject, event)
	}
}
