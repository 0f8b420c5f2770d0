package models

import "time"

type Service struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index;not null" json:"salon_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     string  `gorm:"size:255" json:"description"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `json:"price"`
	Active          bool    `gorm:"default:true" json:"active"`
	Category        string  `gorm:"size:50" json:"category"`

	// Dias da semana em que o serviço pode ser agendado ("Segunda-feira", ...).
	// Vazio significa sem restrição.
	AvailableDays []string `gorm:"serializer:json;type:text" json:"available_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
