package repository

import (
	"errors"

	"barberq-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BarberRepository interface {
	Create(barber *models.Barber) error
	GetByID(id uuid.UUID) (*models.Barber, error)
	GetByEmail(email string) (*models.Barber, error)
	List(shopName string) ([]models.Barber, error)
	ListAvailable() ([]models.Barber, error)
}

type barberRepo struct {
	db *gorm.DB
}

func NewBarberRepository(db *gorm.DB) BarberRepository {
	return &barberRepo{db: db}
}

func (r *barberRepo) Create(barber *models.Barber) error {
	return r.db.Create(barber).Error
}

func (r *barberRepo) GetByID(id uuid.UUID) (*models.Barber, error) {
	var barber models.Barber
	if err := r.db.First(&barber, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &barber, nil
}

func (r *barberRepo) GetByEmail(email string) (*models.Barber, error) {
	var barber models.Barber
	if err := r.db.First(&barber, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &barber, nil
}

// List returns all barbers, optionally filtered by shop display name
func (r *barberRepo) List(shopName string) ([]models.Barber, error) {
	var barbers []models.Barber
	query := r.db.Order("name")
	if shopName != "" {
		query = query.Where("shop_name = ?", shopName)
	}
	if err := query.Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *barberRepo) ListAvailable() ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.Where("is_available = ?", true).Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}
