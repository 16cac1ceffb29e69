package appointment

import "github.com/BarberiaDigital/barberia-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPendiente  Status = "pendiente"
	StatusConfirmada Status = "confirmada"
	StatusCompletada Status = "completada"
	StatusCancelada  Status = "cancelada"
	StatusNoAsistio  Status = "no_asistio"
)

// Tabla explícita de transiciones. Salir de completada está permitido
// solo mientras no exista venta ligada; esa guardia vive en el caso de
// uso porque necesita consultar la base.
var allowedTransitions = map[Status][]Status{
	StatusPendiente:  {StatusConfirmada, StatusCancelada, StatusCompletada, StatusNoAsistio},
	StatusConfirmada: {StatusPendiente, StatusCancelada, StatusCompletada, StatusNoAsistio},
	StatusCancelada:  {StatusPendiente, StatusConfirmada},
	StatusNoAsistio:  {StatusPendiente, StatusConfirmada, StatusCompletada},
	StatusCompletada: {StatusConfirmada, StatusNoAsistio},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPendiente, StatusConfirmada, StatusCompletada, StatusCancelada, StatusNoAsistio:
		return true
	}
	return false
}

func CanTransition(from, to Status) error {
	if from == to {
		return httperr.ErrBusiness("invalid_state")
	}
	for _, t := range allowedTransitions[from] {
		if t == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusPendiente
}
