package repository

import (
	"errors"
	"strings"

	"barberq-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingFilter narrows booking listings; zero values mean "no filter".
type BookingFilter struct {
	BarberID *uuid.UUID
	Phone    string
	Code     string
	Date     string
}

type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id uuid.UUID) (*models.Booking, error)
	// ListByCode returns every booking carrying the code, newest first.
	// Codes are collision-tolerant, so more than one row can match.
	ListByCode(code string) ([]models.Booking, error)
	List(filter BookingFilter) ([]models.Booking, error)
	ListForQueue(barberID uuid.UUID, date string) ([]models.Booking, error)
	ListPendingForDate(date string) ([]models.Booking, error)
	Update(booking *models.Booking) error
	CodeInUse(code string) (bool, error)
}

type bookingRepo struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepo) GetByID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepo) ListByCode(code string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("access_code = ?", strings.ToUpper(code)).
		Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepo) List(filter BookingFilter) ([]models.Booking, error) {
	query := r.db.Order("booking_date, slot_time")
	if filter.BarberID != nil {
		query = query.Where("barber_id = ?", *filter.BarberID)
	}
	if filter.Phone != "" {
		query = query.Where("client_phone = ?", filter.Phone)
	}
	if filter.Code != "" {
		query = query.Where("access_code = ?", strings.ToUpper(filter.Code))
	}
	if filter.Date != "" {
		query = query.Where("booking_date = ?", filter.Date)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListForQueue returns the date's app bookings that still belong on the
// barber's queue (cancellations drop out; completed and no-show stay for
// the day's counts).
func (r *bookingRepo) ListForQueue(barberID uuid.UUID, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("barber_id = ? AND booking_date = ? AND type = ? AND status <> ?",
		barberID, date, models.TypeApp, models.StatusCancelled).
		Order("slot_time").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepo) ListPendingForDate(date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("booking_date = ? AND status = ?", date, models.StatusPending).
		Order("slot_time").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepo) Update(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

// CodeInUse reports whether any non-terminal booking holds the code
func (r *bookingRepo) CodeInUse(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("access_code = ? AND status NOT IN ?", strings.ToUpper(code),
			[]models.BookingStatus{models.StatusCompleted, models.StatusCancelled, models.StatusNoShow}).
		Count(&count).Error
	return count > 0, err
}
