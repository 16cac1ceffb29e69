package appointment

import "time"

type AvailabilityInput struct {
	Date       time.Time
	StartTime  string // HH:MM
	ServiceIDs []uint
}

type AvailableBarber struct {
	BarberID uint   `json:"barber_id"`
	Name     string `json:"name"`
}
