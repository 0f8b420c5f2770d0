package models

import "time"

// Calendar é a agenda de um colaborador (profissional) do salão.
// Conflitos de horário são verificados sempre dentro de uma mesma Calendar.
type Calendar struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name             string `gorm:"size:100;not null" json:"name"`
	CollaboratorName string `gorm:"size:100" json:"collaborator_name"`
	Color            string `gorm:"size:20" json:"color"`
	Active           bool   `gorm:"default:true" json:"active"`

	Services []Service `gorm:"many2many:calendar_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
