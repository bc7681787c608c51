package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"barberq-backend/events"
	"barberq-backend/models"
	"barberq-backend/repository"
	"barberq-backend/utils"

	"github.com/google/uuid"
)

// BookingService owns booking records and the canonical status machine.
// Slot occupancy always moves through SlotService in the same operation;
// when the slot update fails after a booking write, the booking write is
// rolled back so the two never disagree.
type BookingService struct {
	bookings repository.BookingRepository
	barbers  repository.BarberRepository
	slots    *SlotService
	bus      events.Bus
	policy   PolicyFunc
}

// PolicyFunc reports whether a no-show reopens its slot for the day
type PolicyFunc func() bool

func NewBookingService(
	bookings repository.BookingRepository,
	barbers repository.BarberRepository,
	slots *SlotService,
	bus events.Bus,
	noShowReopensSlot bool,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		barbers:  barbers,
		slots:    slots,
		bus:      bus,
		policy:   func() bool { return noShowReopensSlot },
	}
}

type CreateBookingInput struct {
	BarberID       uuid.UUID
	BarberName     string
	ClientName     string
	ClientPhone    string
	SlotTime       string
	BookingDate    string
	ShopName       string
	HaircutName    string
	NotifySMS      bool
	NotifyWhatsapp bool
}

// CreateBooking reserves the slot first, then writes the booking; a failed
// booking insert releases the slot again (compensation, no partial state).
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	if in.ClientName == "" || in.SlotTime == "" || in.BookingDate == "" {
		return nil, fmt.Errorf("%w: clientName, slotTime and bookingDate are required", ErrValidation)
	}
	if !utils.ValidatePhone(in.ClientPhone) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}
	if !utils.ValidateTimeOfDay(in.SlotTime) {
		return nil, fmt.Errorf("%w: slotTime must be zero-padded HH:MM", ErrValidation)
	}
	date, err := utils.ResolveDate(in.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	barber, err := s.barbers.GetByID(in.BarberID)
	if err != nil {
		return nil, err
	}
	if in.BarberName == "" {
		in.BarberName = barber.Name
	}
	if in.ShopName == "" {
		in.ShopName = barber.ShopName
	}

	if _, err := s.slots.EnsureSlotsGenerated(in.BarberID, date); err != nil {
		return nil, err
	}

	code, err := GenerateUniqueAccessCode(s.bookings.CodeInUse)
	if err != nil {
		return nil, err
	}

	bookingID := uuid.New()
	slot, err := s.slots.Reserve(in.BarberID, date, in.SlotTime, in.ClientName, bookingID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:             bookingID,
		BarberID:       in.BarberID,
		BarberName:     in.BarberName,
		ShopName:       in.ShopName,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		SlotTime:       in.SlotTime,
		BookingDate:    date,
		AccessCode:     code,
		Status:         models.StatusPending,
		Type:           models.TypeApp,
		HaircutName:    in.HaircutName,
		NotifySMS:      in.NotifySMS,
		NotifyWhatsapp: in.NotifyWhatsapp,
	}

	if err := s.bookings.Create(booking); err != nil {
		if relErr := s.slots.Release(slot.ID); relErr != nil {
			log.Printf("Failed to release slot %s after booking insert failure: %v", slot.ID, relErr)
		}
		return nil, err
	}

	s.publish(events.BookingCreated, booking, "")
	return booking, nil
}

func (s *BookingService) GetBooking(id uuid.UUID) (*models.Booking, error) {
	return s.bookings.GetByID(id)
}

// GetBookingByCode resolves an access code to the newest active booking
// holding it, falling back to the newest match of any state. Codes are
// collision-tolerant, not unique.
func (s *BookingService) GetBookingByCode(code string) (*models.Booking, error) {
	matches, err := s.bookings.ListByCode(code)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, repository.ErrNotFound
	}
	for i := range matches {
		if !matches[i].IsTerminal() {
			return &matches[i], nil
		}
	}
	return &matches[0], nil
}

func (s *BookingService) ListBookings(filter repository.BookingFilter) ([]models.Booking, error) {
	return s.bookings.List(filter)
}

// UpdateClientStatus applies a client self-reported status. Arrival only
// flags readiness; the chair stays untouched until the barber starts the
// cut. A client cancellation routes through CancelByClient so the slot
// reopens.
func (s *BookingService) UpdateClientStatus(id uuid.UUID, newStatus models.BookingStatus) (*models.Booking, error) {
	if newStatus == models.StatusCancelled {
		return s.CancelByClient(id)
	}

	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !models.CanClientTransition(booking.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	booking.Status = newStatus
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}

	s.publish(events.BookingStatusChanged, booking, "")
	return booking, nil
}

// StartCut puts the client in the chair. Valid from any queue-pending
// state; the service name is chosen now, not at booking time.
func (s *BookingService) StartCut(id uuid.UUID, haircutName string) (*models.Booking, error) {
	if haircutName == "" {
		return nil, fmt.Errorf("%w: haircutName is required to start a cut", ErrValidation)
	}

	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.ToQueueView() != models.QueuePending || booking.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot start cut from %s", ErrInvalidTransition, booking.Status)
	}

	prev, prevHaircut := booking.Status, booking.HaircutName
	booking.Status = models.StatusCutting
	booking.HaircutName = haircutName
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}
	if err := s.moveSlot(booking, models.SlotInProgress); err != nil {
		booking.HaircutName = prevHaircut
		s.rollback(booking, prev)
		return nil, err
	}

	s.publish(events.BookingStatusChanged, booking, "")
	return booking, nil
}

// PauseCut parks an in-progress cut so another client can be served; the
// paused client keeps their place and their chosen service.
func (s *BookingService) PauseCut(id uuid.UUID) (*models.Booking, error) {
	return s.toggleCut(id, models.StatusCutting, models.StatusPaused)
}

func (s *BookingService) ResumeCut(id uuid.UUID) (*models.Booking, error) {
	return s.toggleCut(id, models.StatusPaused, models.StatusCutting)
}

func (s *BookingService) toggleCut(id uuid.UUID, from, to models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.Status != from {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}
	booking.Status = to
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CompleteCut finishes the service: booking completed, slot completed,
// rating prompt emitted.
func (s *BookingService) CompleteCut(id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusCutting && booking.Status != models.StatusPaused {
		return nil, fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, booking.Status)
	}

	prev := booking.Status
	now := time.Now()
	booking.Status = models.StatusCompleted
	booking.CompletedAt = &now
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}
	if err := s.moveSlot(booking, models.SlotCompleted); err != nil {
		booking.CompletedAt = nil
		s.rollback(booking, prev)
		return nil, err
	}

	s.publish(events.BookingCompleted, booking, "")
	return booking, nil
}

// MarkNoShow resolves a queue-pending booking whose client never made the
// chair. The slot is held for the rest of the day unless the reopen policy
// says otherwise.
func (s *BookingService) MarkNoShow(id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.ToQueueView() != models.QueuePending || booking.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot mark no-show from %s", ErrInvalidTransition, booking.Status)
	}

	prev := booking.Status
	booking.Status = models.StatusNoShow
	booking.CancelReason = "no-show"
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}

	if s.policy() {
		slot, err := s.slots.FindByBooking(booking.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.rollback(booking, prev)
			return nil, err
		}
		if err == nil {
			if err := s.slots.Release(slot.ID); err != nil {
				log.Printf("Failed to reopen slot for no-show booking %s: %v", booking.ID, err)
			}
		}
	}

	s.publish(events.BookingCancelled, booking, "no-show")
	return booking, nil
}

// CancelByClient releases the slot back to the grid. Only reachable before
// arrival; once the barber knows the client is here, cancellation is the
// barber's call.
func (s *BookingService) CancelByClient(id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !models.CanClientTransition(booking.Status, models.StatusCancelled) {
		return nil, fmt.Errorf("%w: client cannot cancel from %s", ErrInvalidTransition, booking.Status)
	}

	prev := booking.Status
	booking.Status = models.StatusCancelled
	booking.CancelReason = "cancelled-by-client"
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}
	// A missing slot is fine (walk-ins have none); any other lookup
	// failure must undo the cancellation or slot and booking disagree.
	slot, err := s.slots.FindByBooking(booking.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.rollback(booking, prev)
			return nil, err
		}
	} else if err := s.slots.Release(slot.ID); err != nil {
		s.rollback(booking, prev)
		return nil, err
	}

	s.publish(events.BookingCancelled, booking, "cancelled-by-client")
	return booking, nil
}

// CancelByBarber cancels from the barber side. reopenSlot=true puts the
// slot straight back on the grid; false (emergency closure) retires it for
// the date.
func (s *BookingService) CancelByBarber(id uuid.UUID, reopenSlot bool) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, booking.Status)
	}

	prev := booking.Status
	booking.Status = models.StatusCancelled
	booking.CancelledByBarber = true
	booking.CancelReason = "cancelled-by-barber"
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}
	slot, err := s.slots.FindByBooking(booking.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		booking.CancelledByBarber = false
		s.rollback(booking, prev)
		return nil, err
	}
	if err == nil {
		var slotErr error
		if reopenSlot {
			slotErr = s.slots.Release(slot.ID)
		} else {
			slotErr = s.slots.CloseSlot(slot.ID)
		}
		if slotErr != nil {
			booking.CancelledByBarber = false
			s.rollback(booking, prev)
			return nil, slotErr
		}
	}

	s.publish(events.BookingCancelledByBarber, booking, "cancelled-by-barber")
	return booking, nil
}

func (s *BookingService) moveSlot(booking *models.Booking, status models.SlotStatus) error {
	slot, err := s.slots.FindByBooking(booking.ID)
	if err != nil {
		return err
	}
	return s.slots.SetStatus(slot.ID, status, booking.ClientName)
}

// rollback restores the booking's previous status after a slot update
// failed, so slot and booking never disagree
func (s *BookingService) rollback(booking *models.Booking, prev models.BookingStatus) {
	booking.Status = prev
	booking.CancelReason = ""
	if err := s.bookings.Update(booking); err != nil {
		log.Printf("Failed to roll back booking %s to %s: %v", booking.ID, prev, err)
	}
}

func (s *BookingService) publish(subject string, booking *models.Booking, reason string) {
	s.bus.Publish(subject, events.BookingEvent{
		BookingID:      booking.ID.String(),
		AccessCode:     booking.AccessCode,
		ClientName:     booking.ClientName,
		ClientPhone:    booking.ClientPhone,
		BarberName:     booking.BarberName,
		ShopName:       booking.ShopName,
		SlotTime:       booking.SlotTime,
		BookingDate:    booking.BookingDate,
		Status:         string(booking.ToClientView()),
		Reason:         reason,
		NotifySMS:      booking.NotifySMS,
		NotifyWhatsapp: booking.NotifyWhatsapp,
	})
}
