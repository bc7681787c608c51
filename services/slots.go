package services

import (
	"fmt"

	"barberq-backend/config"
	"barberq-backend/models"
	"barberq-backend/repository"

	"github.com/google/uuid"
)

// SlotService owns the grid of bookable slots per (barber, date). It is the
// only writer of slot occupancy.
type SlotService struct {
	slots    repository.SlotRepository
	settings config.Settings
}

func NewSlotService(slots repository.SlotRepository, settings config.Settings) *SlotService {
	return &SlotService{slots: slots, settings: settings}
}

// GridTimes builds the fixed time labels for one day, zero-padded HH:MM
func (s *SlotService) GridTimes() []string {
	var times []string
	for h := s.settings.OpenHour; h < s.settings.CloseHour; h++ {
		for m := 0; m < 60; m += s.settings.SlotMinutes {
			times = append(times, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return times
}

// EnsureSlotsGenerated lazily creates the full grid for (barber, date).
// Idempotent: an existing grid is returned untouched. Two racing creators
// are resolved by the unique (barber_id, date, time) index - the loser's
// insert fails and it reads back the winner's rows.
func (s *SlotService) EnsureSlotsGenerated(barberID uuid.UUID, date string) ([]models.Slot, error) {
	count, err := s.slots.CountForDate(barberID, date)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return s.slots.ListForDate(barberID, date)
	}

	grid := make([]models.Slot, 0, len(s.GridTimes()))
	for _, t := range s.GridTimes() {
		grid = append(grid, models.Slot{
			ID:       uuid.New(),
			BarberID: barberID,
			Date:     date,
			Time:     t,
			Status:   models.SlotAvailable,
		})
	}

	if err := s.slots.CreateBatch(grid); err != nil {
		// Most likely a unique-index violation from a concurrent
		// generator; whatever is there now is the grid.
		existing, listErr := s.slots.ListForDate(barberID, date)
		if listErr == nil && len(existing) > 0 {
			return existing, nil
		}
		return nil, err
	}

	return s.slots.ListForDate(barberID, date)
}

func (s *SlotService) ListSlots(barberID uuid.UUID, date string) ([]models.Slot, error) {
	return s.EnsureSlotsGenerated(barberID, date)
}

// Reserve books exactly one available slot; concurrent requests for the
// same time get one winner. The grid must exist before reserving.
func (s *SlotService) Reserve(barberID uuid.UUID, date, timeOfDay, occupantName string, bookingID uuid.UUID) (*models.Slot, error) {
	return s.slots.Reserve(barberID, date, timeOfDay, occupantName, bookingID)
}

func (s *SlotService) GetSlot(id uuid.UUID) (*models.Slot, error) {
	return s.slots.GetByID(id)
}

func (s *SlotService) FindByBooking(bookingID uuid.UUID) (*models.Slot, error) {
	return s.slots.FindByBooking(bookingID)
}

func (s *SlotService) SetStatus(id uuid.UUID, status models.SlotStatus, occupantName string) error {
	if status == models.SlotAvailable {
		return s.slots.Release(id)
	}
	return s.slots.SetStatus(id, status, occupantName)
}

// Release returns a slot to the bookable pool, clearing its occupant
func (s *SlotService) Release(id uuid.UUID) error {
	return s.slots.Release(id)
}

// CloseSlot pulls a slot out of rotation for the rest of its date
func (s *SlotService) CloseSlot(id uuid.UUID) error {
	return s.slots.SetStatus(id, models.SlotClosed, "")
}
