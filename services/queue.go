package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"barberq-backend/config"
	"barberq-backend/models"
	"barberq-backend/repository"
	"barberq-backend/utils"

	"github.com/google/uuid"
)

// WalkInStore keeps walk-ins in memory until their cut completes. They are
// deliberately not persisted before that; see CompleteWalkIn.
type WalkInStore struct {
	mu      sync.RWMutex
	walkIns map[uuid.UUID]*models.WalkIn
}

func NewWalkInStore() *WalkInStore {
	return &WalkInStore{walkIns: make(map[uuid.UUID]*models.WalkIn)}
}

func (w *WalkInStore) Add(walkIn *models.WalkIn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.walkIns[walkIn.ID] = walkIn
}

func (w *WalkInStore) Get(id uuid.UUID) (*models.WalkIn, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	walkIn, ok := w.walkIns[id]
	if !ok {
		return nil, false
	}
	copied := *walkIn
	return &copied, true
}

func (w *WalkInStore) SetStatus(id uuid.UUID, status models.QueueStatus) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	walkIn, ok := w.walkIns[id]
	if !ok {
		return false
	}
	walkIn.Status = status
	return true
}

func (w *WalkInStore) SetHaircut(id uuid.UUID, haircutName string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	walkIn, ok := w.walkIns[id]
	if !ok {
		return false
	}
	walkIn.HaircutName = haircutName
	return true
}

func (w *WalkInStore) Remove(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.walkIns, id)
}

func (w *WalkInStore) ListForBarber(barberID uuid.UUID, date string) []models.WalkIn {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var result []models.WalkIn
	for _, walkIn := range w.walkIns {
		if walkIn.BarberID == barberID && walkIn.Date == date {
			result = append(result, *walkIn)
		}
	}
	return result
}

// QueueService derives the barber's live queue for a date from persisted
// bookings plus the walk-in store. It holds no state of its own beyond the
// walk-ins; every read is a fresh projection.
type QueueService struct {
	bookings repository.BookingRepository
	barbers  repository.BarberRepository
	walkIns  *WalkInStore
	settings config.Settings
}

func NewQueueService(
	bookings repository.BookingRepository,
	barbers repository.BarberRepository,
	walkIns *WalkInStore,
	settings config.Settings,
) *QueueService {
	return &QueueService{bookings: bookings, barbers: barbers, walkIns: walkIns, settings: settings}
}

// BuildQueue merges app bookings and walk-ins into one view ordered by
// time ascending. Zero-padded HH:MM makes the string sort a time sort.
func (q *QueueService) BuildQueue(barberID uuid.UUID, date string) ([]models.QueueItem, error) {
	items, _, err := q.project(barberID, date)
	return items, err
}

func (q *QueueService) project(barberID uuid.UUID, date string) ([]models.QueueItem, []models.Booking, error) {
	resolved, err := utils.ResolveDate(date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	bookings, err := q.bookings.ListForQueue(barberID, resolved)
	if err != nil {
		return nil, nil, err
	}

	items := make([]models.QueueItem, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		if b.Type != models.TypeApp {
			continue
		}
		id := b.ID
		items = append(items, models.QueueItem{
			ID:          b.ID,
			Type:        models.TypeApp,
			ClientName:  b.ClientName,
			Time:        b.SlotTime,
			Status:      b.ToQueueView(),
			HaircutName: b.HaircutName,
			BookingID:   &id,
		})
	}

	for _, walkIn := range q.walkIns.ListForBarber(barberID, resolved) {
		items = append(items, models.QueueItem{
			ID:          walkIn.ID,
			Type:        models.TypeWalkIn,
			ClientName:  walkIn.Name,
			Time:        walkIn.Time,
			Status:      walkIn.Status,
			HaircutName: walkIn.HaircutName,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time < items[j].Time
	})
	return items, bookings, nil
}

// Stats computes the day's operational counters. The wait estimate is
// pending items times a fixed per-cut duration - a coarse heuristic for
// the lobby display, not a scheduling promise.
func (q *QueueService) Stats(barberID uuid.UUID, date string) (*models.QueueStats, error) {
	items, bookings, err := q.project(barberID, date)
	if err != nil {
		return nil, err
	}

	stats := &models.QueueStats{}
	pending := 0
	for _, item := range items {
		switch item.Type {
		case models.TypeApp:
			stats.Booked++
		case models.TypeWalkIn:
			if item.Status != models.QueueCompleted {
				stats.WalkIns++
			}
		}
		if item.Status == models.QueueCompleted {
			stats.Completed++
		}
		if item.Status == models.QueuePending {
			pending++
		}
	}

	for i := range bookings {
		if bookings[i].Status == models.StatusWillBeLate {
			stats.RunningLate++
		}
	}

	stats.EstimatedWaitMinutes = pending * q.settings.AvgCutMinutes
	return stats, nil
}

type CreateWalkInInput struct {
	BarberID    uuid.UUID
	Name        string
	Phone       string
	Time        string
	HaircutName string
}

// AddWalkIn registers a walk-in on today's queue, in memory only
func (q *QueueService) AddWalkIn(in CreateWalkInInput) (*models.WalkIn, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Time == "" {
		in.Time = time.Now().Format("15:04")
	}
	if !utils.ValidateTimeOfDay(in.Time) {
		return nil, fmt.Errorf("%w: time must be zero-padded HH:MM", ErrValidation)
	}
	if _, err := q.barbers.GetByID(in.BarberID); err != nil {
		return nil, err
	}

	walkIn := &models.WalkIn{
		ID:          uuid.New(),
		BarberID:    in.BarberID,
		Name:        in.Name,
		Phone:       in.Phone,
		Date:        utils.DateKey(time.Now()),
		Time:        in.Time,
		HaircutName: in.HaircutName,
		Status:      models.QueuePending,
		CreatedAt:   time.Now(),
	}
	q.walkIns.Add(walkIn)
	return walkIn, nil
}

func (q *QueueService) StartWalkIn(id uuid.UUID, haircutName string) (*models.WalkIn, error) {
	return q.moveWalkIn(id, models.QueuePending, models.QueueInProgress, haircutName)
}

func (q *QueueService) PauseWalkIn(id uuid.UUID) (*models.WalkIn, error) {
	return q.moveWalkIn(id, models.QueueInProgress, models.QueuePaused, "")
}

func (q *QueueService) ResumeWalkIn(id uuid.UUID) (*models.WalkIn, error) {
	return q.moveWalkIn(id, models.QueuePaused, models.QueueInProgress, "")
}

func (q *QueueService) NoShowWalkIn(id uuid.UUID) (*models.WalkIn, error) {
	return q.moveWalkIn(id, models.QueuePending, models.QueueNoShow, "")
}

func (q *QueueService) moveWalkIn(id uuid.UUID, from, to models.QueueStatus, haircutName string) (*models.WalkIn, error) {
	walkIn, ok := q.walkIns.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if walkIn.Status != from {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, walkIn.Status, to)
	}
	if to == models.QueueInProgress && haircutName != "" {
		q.walkIns.SetHaircut(id, haircutName)
	}
	q.walkIns.SetStatus(id, to)
	updated, _ := q.walkIns.Get(id)
	return updated, nil
}

// CompleteWalkIn finishes a walk-in's cut and, only now, materializes it as
// a persisted Booking so the day's history and analytics include it.
func (q *QueueService) CompleteWalkIn(id uuid.UUID) (*models.Booking, error) {
	walkIn, ok := q.walkIns.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if walkIn.Status != models.QueueInProgress && walkIn.Status != models.QueuePaused {
		return nil, fmt.Errorf("%w: cannot complete walk-in from %s", ErrInvalidTransition, walkIn.Status)
	}

	barber, err := q.barbers.GetByID(walkIn.BarberID)
	if err != nil {
		return nil, err
	}

	code, err := GenerateAccessCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:          walkIn.ID,
		BarberID:    walkIn.BarberID,
		BarberName:  barber.Name,
		ShopName:    barber.ShopName,
		ClientName:  walkIn.Name,
		ClientPhone: walkIn.Phone,
		SlotTime:    walkIn.Time,
		BookingDate: walkIn.Date,
		AccessCode:  code,
		Status:      models.StatusCompleted,
		Type:        models.TypeWalkIn,
		HaircutName: walkIn.HaircutName,
		NotifySMS:   false,
		CompletedAt: &now,
	}
	if err := q.bookings.Create(booking); err != nil {
		return nil, err
	}

	q.walkIns.SetStatus(id, models.QueueCompleted)
	return booking, nil
}
