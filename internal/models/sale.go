package models

import "time"

type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Ticket string `gorm:"size:36;uniqueIndex" json:"ticket"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	CashierID uint `json:"cashier_id"`
	Cashier   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Status string `gorm:"size:20;default:'abierta'" json:"status"`

	// Total es derivado: siempre se recalcula desde las líneas activas,
	// nunca se acepta del cliente.
	Total float64 `json:"total"`

	// Resumen informativo; pasa a "mixto" con el segundo método distinto.
	PaymentMethod string `gorm:"size:20" json:"payment_method"`

	ServiceLines []SaleServiceLine `gorm:"constraint:OnDelete:CASCADE;" json:"service_lines"`
	ProductLines []SaleProductLine `gorm:"constraint:OnDelete:CASCADE;" json:"product_lines"`
	Payments     []Payment         `gorm:"constraint:OnDelete:CASCADE;" json:"payments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SaleServiceLine struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BarberID uint `json:"barber_id"`

	// AppointmentID enlaza la línea con la cita que la originó; es la
	// guardia de idempotencia de la materialización.
	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	DurationMin int     `json:"duration_min"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`

	CommissionPct    float64 `json:"commission_pct"`
	CommissionAmount float64 `json:"commission_amount"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
}

type SaleProductLine struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
}

type Payment struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	Method    string  `gorm:"size:20;not null" json:"method"`
	Amount    float64 `json:"amount"`
	Reference string  `gorm:"size:64" json:"reference"`

	Active bool `gorm:"default:true" json:"active"`

	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}
