package repository

import (
	"errors"

	"barberq-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopRepository interface {
	Create(shop *models.Shop) error
	GetByID(id uuid.UUID) (*models.Shop, error)
	GetByName(name string) (*models.Shop, error)
	List() ([]models.Shop, error)
	SetOpen(id uuid.UUID, open bool) error
}

type shopRepo struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) Create(shop *models.Shop) error {
	return r.db.Create(shop).Error
}

func (r *shopRepo) GetByID(id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) GetByName(name string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.First(&shop, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) List() ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.Order("name").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *shopRepo) SetOpen(id uuid.UUID, open bool) error {
	result := r.db.Model(&models.Shop{}).Where("id = ?", id).Update("is_open", open)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
