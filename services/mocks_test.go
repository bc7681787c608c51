package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"barberq-backend/models"
	"barberq-backend/repository"

	"github.com/google/uuid"
)

// ---------- In-memory repositories ----------

type memSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*models.Slot

	// Injected failure for FindByBooking, simulating a repository outage
	findByBookingErr error
}

func newMemSlotRepo() *memSlotRepo {
	return &memSlotRepo{slots: make(map[uuid.UUID]*models.Slot)}
}

func (r *memSlotRepo) CreateBatch(slots []models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range slots {
		for _, existing := range r.slots {
			if existing.BarberID == slots[i].BarberID &&
				existing.Date == slots[i].Date && existing.Time == slots[i].Time {
				return repository.ErrSlotTaken
			}
		}
	}
	for i := range slots {
		s := slots[i]
		r.slots[s.ID] = &s
	}
	return nil
}

func (r *memSlotRepo) ListForDate(barberID uuid.UUID, date string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Slot
	for _, s := range r.slots {
		if s.BarberID == barberID && s.Date == date {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Time < result[j].Time })
	return result, nil
}

func (r *memSlotRepo) CountForDate(barberID uuid.UUID, date string) (int64, error) {
	slots, _ := r.ListForDate(barberID, date)
	return int64(len(slots)), nil
}

func (r *memSlotRepo) GetByID(id uuid.UUID) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSlotRepo) failFindByBooking(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByBookingErr = err
}

func (r *memSlotRepo) FindByBooking(bookingID uuid.UUID) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findByBookingErr != nil {
		return nil, r.findByBookingErr
	}
	for _, s := range r.slots {
		if s.BookingID != nil && *s.BookingID == bookingID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memSlotRepo) Reserve(barberID uuid.UUID, date, timeOfDay, occupantName string, bookingID uuid.UUID) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.BarberID == barberID && s.Date == date && s.Time == timeOfDay {
			if s.Status != models.SlotAvailable {
				return nil, repository.ErrSlotTaken
			}
			s.Status = models.SlotBooked
			s.OccupantName = occupantName
			id := bookingID
			s.BookingID = &id
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrSlotNotFound
}

func (r *memSlotRepo) SetStatus(id uuid.UUID, status models.SlotStatus, occupantName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = status
	if occupantName != "" {
		s.OccupantName = occupantName
	}
	return nil
}

func (r *memSlotRepo) Release(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = models.SlotAvailable
	s.OccupantName = ""
	s.BookingID = nil
	return nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
	order    []uuid.UUID
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[uuid.UUID]*models.Booking)}
}

func (r *memBookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.AccessCode = strings.ToUpper(booking.AccessCode)
	booking.CreatedAt = time.Now()
	copied := *booking
	r.bookings[booking.ID] = &copied
	r.order = append(r.order, booking.ID)
	return nil
}

func (r *memBookingRepo) GetByID(id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memBookingRepo) ListByCode(code string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Booking
	// Newest first
	for i := len(r.order) - 1; i >= 0; i-- {
		b := r.bookings[r.order[i]]
		if b.AccessCode == strings.ToUpper(code) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *memBookingRepo) List(filter repository.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Booking
	for _, id := range r.order {
		b := r.bookings[id]
		if filter.BarberID != nil && b.BarberID != *filter.BarberID {
			continue
		}
		if filter.Phone != "" && b.ClientPhone != filter.Phone {
			continue
		}
		if filter.Code != "" && b.AccessCode != strings.ToUpper(filter.Code) {
			continue
		}
		if filter.Date != "" && b.BookingDate != filter.Date {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (r *memBookingRepo) ListForQueue(barberID uuid.UUID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Booking
	for _, id := range r.order {
		b := r.bookings[id]
		if b.BarberID == barberID && b.BookingDate == date &&
			b.Type == models.TypeApp && b.Status != models.StatusCancelled {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotTime < result[j].SlotTime })
	return result, nil
}

func (r *memBookingRepo) ListPendingForDate(date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Booking
	for _, id := range r.order {
		b := r.bookings[id]
		if b.BookingDate == date && b.Status == models.StatusPending {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *memBookingRepo) Update(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *memBookingRepo) CodeInUse(code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.AccessCode == strings.ToUpper(code) && !b.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

type memBarberRepo struct {
	mu      sync.Mutex
	barbers map[uuid.UUID]*models.Barber
}

func newMemBarberRepo() *memBarberRepo {
	return &memBarberRepo{barbers: make(map[uuid.UUID]*models.Barber)}
}

func (r *memBarberRepo) Create(barber *models.Barber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if barber.ID == uuid.Nil {
		barber.ID = uuid.New()
	}
	copied := *barber
	r.barbers[barber.ID] = &copied
	return nil
}

func (r *memBarberRepo) GetByID(id uuid.UUID) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memBarberRepo) GetByEmail(email string) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.barbers {
		if b.Email == email {
			copied := *b
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memBarberRepo) List(shopName string) ([]models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Barber
	for _, b := range r.barbers {
		if shopName == "" || b.ShopName == shopName {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *memBarberRepo) ListAvailable() ([]models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Barber
	for _, b := range r.barbers {
		if b.IsAvailable {
			result = append(result, *b)
		}
	}
	return result, nil
}
