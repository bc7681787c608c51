package controllers_test

import (
	"sort"
	"strings"
	"sync"
	"time"

	"barberq-backend/models"
	"barberq-backend/repository"

	"github.com/google/uuid"
)

// In-memory repositories backing the handler tests. Behavior mirrors the
// gorm implementations closely enough for the HTTP layer: copy-on-read,
// atomic slot reservation, newest-first code lookup.

type fakeShopRepo struct {
	mu    sync.Mutex
	shops map[uuid.UUID]*models.Shop
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: make(map[uuid.UUID]*models.Shop)}
}

func (r *fakeShopRepo) Create(shop *models.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	copied := *shop
	r.shops[shop.ID] = &copied
	return nil
}

func (r *fakeShopRepo) GetByID(id uuid.UUID) (*models.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shops[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeShopRepo) GetByName(name string) (*models.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shops {
		if s.Name == name {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeShopRepo) List() ([]models.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Shop
	for _, s := range r.shops {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeShopRepo) SetOpen(id uuid.UUID, open bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shops[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.IsOpen = open
	return nil
}

type fakeBarberRepo struct {
	mu      sync.Mutex
	barbers map[uuid.UUID]*models.Barber
}

func newFakeBarberRepo() *fakeBarberRepo {
	return &fakeBarberRepo{barbers: make(map[uuid.UUID]*models.Barber)}
}

func (r *fakeBarberRepo) Create(barber *models.Barber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if barber.ID == uuid.Nil {
		barber.ID = uuid.New()
	}
	copied := *barber
	r.barbers[barber.ID] = &copied
	return nil
}

func (r *fakeBarberRepo) GetByID(id uuid.UUID) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBarberRepo) GetByEmail(email string) (*models.Barber, error) {
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

func (r *fakeBarberRepo) List(shopName string) ([]models.Barber, error) {
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

func (r *fakeBarberRepo) ListAvailable() ([]models.Barber, error) {
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

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*models.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[uuid.UUID]*models.Slot)}
}

func (r *fakeSlotRepo) CreateBatch(slots []models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range slots {
		s := slots[i]
		r.slots[s.ID] = &s
	}
	return nil
}

func (r *fakeSlotRepo) ListForDate(barberID uuid.UUID, date string) ([]models.Slot, error) {
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

func (r *fakeSlotRepo) CountForDate(barberID uuid.UUID, date string) (int64, error) {
	slots, _ := r.ListForDate(barberID, date)
	return int64(len(slots)), nil
}

func (r *fakeSlotRepo) GetByID(id uuid.UUID) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) FindByBooking(bookingID uuid.UUID) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.BookingID != nil && *s.BookingID == bookingID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSlotRepo) Reserve(barberID uuid.UUID, date, timeOfDay, occupantName string, bookingID uuid.UUID) (*models.Slot, error) {
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

func (r *fakeSlotRepo) SetStatus(id uuid.UUID, status models.SlotStatus, occupantName string) error {
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

func (r *fakeSlotRepo) Release(id uuid.UUID) error {
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

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
	order    []uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*models.Booking)}
}

func (r *fakeBookingRepo) Create(booking *models.Booking) error {
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

func (r *fakeBookingRepo) GetByID(id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) ListByCode(code string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Booking
	for i := len(r.order) - 1; i >= 0; i-- {
		b := r.bookings[r.order[i]]
		if b.AccessCode == strings.ToUpper(code) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) List(filter repository.BookingFilter) ([]models.Booking, error) {
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

func (r *fakeBookingRepo) ListForQueue(barberID uuid.UUID, date string) ([]models.Booking, error) {
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

func (r *fakeBookingRepo) ListPendingForDate(date string) ([]models.Booking, error) {
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

func (r *fakeBookingRepo) Update(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) CodeInUse(code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.AccessCode == strings.ToUpper(code) && !b.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}
