package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"service_id"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null" json:"salon_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"` // in minutes
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
