package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BarberiaDigital/barberia-api/internal/cache"
	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	saledomain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
	"github.com/BarberiaDigital/barberia-api/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

// TransitionAppointment aplica la tabla de transiciones del ciclo de
// vida. La transición a completada materializa la venta en la misma
// transacción, con guardia de existencia: a lo sumo una venta por cita.
type TransitionAppointment struct {
	repo   domain.Repository
	cache  *cache.AvailabilityCache
	events *events.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	ev *events.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:   repo,
		cache:  c,
		events: ev,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	to domain.Status,
	actorID uint,
) (*models.Appointment, error) {

	if !to.Valid() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	var updated *models.Appointment

	err := uc.repo.Transact(ctx, func(tr domain.Repository) error {

		ap, err := tr.GetAppointment(ctx, appointmentID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		// completada se congela en cuanto existe venta ligada
		if domain.Status(ap.Status) == domain.StatusCompletada {
			hasSale, err := tr.HasSaleForAppointment(ctx, ap.ID)
			if err != nil {
				return err
			}
			if hasSale {
				return httperr.ErrBusiness(httperr.CodeInvalidState)
			}
		}

		now := timezone.Now()
		if err := domain.Transition(ap, to, now); err != nil {
			return err
		}

		if err := tr.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if to == domain.StatusCompletada {
			if err := materializeSale(ctx, tr, ap, actorID); err != nil {
				return err
			}
		}

		updated = ap
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateDate(ctx, updated.Date)
	uc.events.Dispatch(events.Event{
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: updated.ID,
		ActorID:  actorID,
	})

	return updated, nil
}

// materializeSale convierte la cita completada en una venta pagada.
// La guardia de existencia y el insert comparten transacción con el
// cambio de estado, así que la conversión ocurre a lo sumo una vez.
func materializeSale(
	ctx context.Context,
	tr domain.Repository,
	ap *models.Appointment,
	actorID uint,
) error {

	hasSale, err := tr.HasSaleForAppointment(ctx, ap.ID)
	if err != nil {
		return err
	}
	if hasSale {
		return nil
	}

	apID := ap.ID
	total := 0.0
	lines := make([]models.SaleServiceLine, 0, len(ap.Services))

	for _, svc := range ap.Services {
		price := svc.Service.Price
		if svc.PriceApplied != nil {
			price = *svc.PriceApplied
		}

		duration := svc.Service.DurationMin
		if duration == 0 {
			duration = ap.DurationMin
		}

		lines = append(lines, models.SaleServiceLine{
			ServiceID:     svc.ServiceID,
			BarberID:      ap.BarberID,
			AppointmentID: &apID,
			DurationMin:   duration,
			UnitPrice:     price,
			Subtotal:      price,
			Active:        true,
		})
		total += price
	}

	clientID := ap.ClientID
	sale := &models.Sale{
		Ticket:        uuid.NewString(),
		ClientID:      &clientID,
		CashierID:     actorID,
		Status:        string(saledomain.StatusPagada),
		Total:         total,
		PaymentMethod: saledomain.MethodEfectivo,
		ServiceLines:  lines,
	}

	return tr.CreateSale(ctx, sale)
}
