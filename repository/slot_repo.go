package repository

import (
	"errors"

	"barberq-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	CreateBatch(slots []models.Slot) error
	ListForDate(barberID uuid.UUID, date string) ([]models.Slot, error)
	CountForDate(barberID uuid.UUID, date string) (int64, error)
	GetByID(id uuid.UUID) (*models.Slot, error)
	FindByBooking(bookingID uuid.UUID) (*models.Slot, error)

	// Reserve transitions the (barber, date, time) slot from available to
	// booked with a single conditional UPDATE. Exactly one of two
	// concurrent callers wins; the loser gets ErrSlotTaken.
	Reserve(barberID uuid.UUID, date, timeOfDay, occupantName string, bookingID uuid.UUID) (*models.Slot, error)

	SetStatus(id uuid.UUID, status models.SlotStatus, occupantName string) error
	Release(id uuid.UUID) error
}

type slotRepo struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepo{db: db}
}

func (r *slotRepo) CreateBatch(slots []models.Slot) error {
	return r.db.Create(&slots).Error
}

func (r *slotRepo) ListForDate(barberID uuid.UUID, date string) ([]models.Slot, error) {
	var slots []models.Slot
	err := r.db.Where("barber_id = ? AND date = ?", barberID, date).
		Order("time").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepo) CountForDate(barberID uuid.UUID, date string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Slot{}).
		Where("barber_id = ? AND date = ?", barberID, date).Count(&count).Error
	return count, err
}

func (r *slotRepo) GetByID(id uuid.UUID) (*models.Slot, error) {
	var slot models.Slot
	if err := r.db.First(&slot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepo) FindByBooking(bookingID uuid.UUID) (*models.Slot, error) {
	var slot models.Slot
	if err := r.db.First(&slot, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepo) Reserve(barberID uuid.UUID, date, timeOfDay, occupantName string, bookingID uuid.UUID) (*models.Slot, error) {
	result := r.db.Model(&models.Slot{}).
		Where("barber_id = ? AND date = ? AND time = ? AND status = ?",
			barberID, date, timeOfDay, models.SlotAvailable).
		Updates(map[string]interface{}{
			"status":        models.SlotBooked,
			"occupant_name": occupantName,
			"booking_id":    bookingID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing slot from a contested one
		var count int64
		if err := r.db.Model(&models.Slot{}).
			Where("barber_id = ? AND date = ? AND time = ?", barberID, date, timeOfDay).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrSlotNotFound
		}
		return nil, ErrSlotTaken
	}

	var slot models.Slot
	if err := r.db.First(&slot, "barber_id = ? AND date = ? AND time = ?",
		barberID, date, timeOfDay).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepo) SetStatus(id uuid.UUID, status models.SlotStatus, occupantName string) error {
	updates := map[string]interface{}{"status": status}
	if occupantName != "" {
		updates["occupant_name"] = occupantName
	}
	result := r.db.Model(&models.Slot{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *slotRepo) Release(id uuid.UUID) error {
	result := r.db.Model(&models.Slot{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.SlotAvailable,
			"occupant_name": "",
			"booking_id":    nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
