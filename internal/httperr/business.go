package httperr

import "errors"

// Códigos de conflicto que los casos de uso devuelven desde dentro de
// la transacción. El handler los traduce a HTTP; el cliente debe
// reconsultar disponibilidad en lugar de reintentar a ciegas.
const (
	CodeTimeConflict         = "time_conflict"
	CodeOutsideWorkingHours  = "outside_working_hours"
	CodeBlockedTime          = "blocked_time"
	CodeBarberMissingService = "barber_missing_services"
	CodeInsufficientStock    = "insufficient_stock"
	CodeSaleVoided           = "sale_voided"
	CodeInvalidState         = "invalid_state"
	CodeInvalidAmount        = "invalid_amount"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrae el código si err es de negocio; "" si no lo es.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
