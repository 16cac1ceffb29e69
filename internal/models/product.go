package models

import "time"

// Product lleva la invariante stock >= 0 (reforzada además con un CHECK
// en la base). Active se apaga al llegar a cero y se reactiva al reponer.
type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
