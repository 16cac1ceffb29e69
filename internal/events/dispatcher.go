package events

import "github.com/rs/zerolog"

// Event es un hecho de dominio ya ocurrido (cita creada, venta anulada).
// El despacho es asíncrono y con pérdida tolerada: un evento de
// observabilidad jamás debe frenar una transacción de caja.
type Event struct {
	Action   string
	Entity   string
	EntityID uint
	ActorID  uint
	Metadata map[string]any
}

type Dispatcher struct {
	log   zerolog.Logger
	queue chan Event
}

func NewDispatcher(log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		e := d.log.Info().
			Str("action", ev.Action).
			Str("entity", ev.Entity).
			Uint("entity_id", ev.EntityID).
			Uint("actor_id", ev.ActorID)
		if ev.Metadata != nil {
			e = e.Interface("meta", ev.Metadata)
		}
		e.Msg("domain event")
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// cola llena: descartamos antes que bloquear la API
		d.log.Warn().Str("action", ev.Action).Msg("event queue full, dropping")
	}
}

func (d *Dispatcher) Close() {
	close(d.queue)
}
