package models

import (
	"barberq-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Barber struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	// Shop affiliation is denormalized by name; ShopID is kept for the
	// foreign key but display paths never join through it.
	ShopID   uuid.UUID `gorm:"type:uuid;index" json:"shopId"`
	ShopName string    `json:"shopName"`

	IsAvailable bool `gorm:"default:true" json:"isAvailable"`

	Bookings []Booking `gorm:"foreignKey:BarberID" json:"-"`
	Slots    []Slot    `gorm:"foreignKey:BarberID" json:"-"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash password before creating
func (b *Barber) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(b.Password)
	if err != nil {
		return err
	}
	b.Password = hashed
	return
}
