package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint `gorm:"index;not null" json:"salon_id"`

	CalendarID uint     `gorm:"index;not null" json:"calendar_id"`
	Calendar   Calendar `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"calendar"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes      string     `gorm:"size:255" json:"notes"`
	CanceledAt *time.Time `json:"canceled_at"`

	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE;" json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
