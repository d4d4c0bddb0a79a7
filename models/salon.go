package models

import (
	"github.com/google/uuid"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Address string    `json:"address"`

	Services []Service `gorm:"foreignKey:SalonID"`
}
