package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Shop struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Location string    `json:"location"`
	IsOpen   bool      `gorm:"default:true" json:"isOpen"`

	Barbers []Barber `gorm:"foreignKey:ShopID" json:"-"`

	gorm.Model `json:"-"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
