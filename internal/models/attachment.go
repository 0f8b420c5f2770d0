package models

import "time"

type Attachment struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	SalonID       uint `gorm:"index;not null" json:"salon_id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	Name        string `gorm:"size:255" json:"name"`
	ObjectKey   string `gorm:"size:255;uniqueIndex;not null" json:"-"`
	ContentType string `gorm:"size:100" json:"content_type"`
	Size        int64  `json:"size"`

	CreatedAt time.Time `json:"created_at"`
}
