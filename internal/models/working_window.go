package models

import "time"

// WorkingWindow es el horario semanal recurrente de un barbero.
// Weekday: 1=lunes ... 7=domingo. Las ventanas de un mismo día no se solapan.
type WorkingWindow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`   // HH:MM
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BarberBlock es una excepción puntual que quita disponibilidad
// en una fecha concreta (permiso, cita médica, etc).
type BarberBlock struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Date      time.Time `gorm:"type:date" json:"date"`
	StartTime string    `gorm:"size:5" json:"start_time"`
	EndTime   string    `gorm:"size:5" json:"end_time"`
	Reason    string    `gorm:"size:255" json:"reason"`
	Active    bool      `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
}
