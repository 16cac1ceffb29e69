package appointment

import (
	"context"
	"time"

	"github.com/BarberiaDigital/barberia-api/internal/cache"
	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
	"github.com/BarberiaDigital/barberia-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	BarberID   uint
	Date       string // YYYY-MM-DD
	Time       string // HH:MM
	ServiceIDs []uint
	Notes      string

	ActorID uint
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment valida la reserva y la confirma en una sola
// transacción: advisory lock por (barbero, fecha), re-chequeo de
// solape, ventana, cobertura y bloqueos, alta del cliente en línea si
// hace falta, e inserción de la cita con sus líneas. La constraint
// EXCLUDE del esquema es el respaldo si dos transacciones pasan el
// chequeo a la vez.
type CreateAppointment struct {
	repo      domain.Repository
	cache     *cache.AvailabilityCache
	events    *events.Dispatcher
	lookahead int
}

func NewCreateAppointment(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	ev *events.Dispatcher,
	lookaheadDays int,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		cache:     c,
		events:    ev,
		lookahead: lookaheadDays,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Validación previa, sin transacción
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("empty_services")
	}

	loc := timezone.Location("")
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	if err := validateBookingDate(date, uc.lookahead); err != nil {
		return nil, err
	}

	serviceIDs := dedupIDs(in.ServiceIDs)

	services, err := uc.repo.GetActiveServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	duration := totalDuration(services)
	if duration == 0 {
		return nil, httperr.ErrBusiness("no_active_services")
	}

	end := start.Add(time.Duration(duration) * time.Minute)
	startMin := domain.MinutesOfDay(start)
	endMin := startMin + duration

	// --------------------------------------------------
	// Transacción de reserva
	// --------------------------------------------------
	var created *models.Appointment

	err = uc.repo.Transact(ctx, func(tr domain.Repository) error {

		if err := tr.LockBarberSchedule(ctx, in.BarberID, date); err != nil {
			return err
		}

		if _, err := tr.GetBarber(ctx, in.BarberID); err != nil {
			return httperr.ErrBusiness("barber_not_found")
		}

		// (a) solape con citas activas
		conflict, err := tr.HasOverlappingAppointment(ctx, in.BarberID, start, end)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		// (b) alguna ventana debe contener el rango
		windows, err := tr.ListWorkingWindows(ctx, in.BarberID, domain.WeekdayISO(date))
		if err != nil {
			return err
		}
		covered := false
		for _, w := range windows {
			if domain.WindowCovers(w, startMin, endMin) {
				covered = true
				break
			}
		}
		if !covered {
			return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
		}

		// (c) el barbero cubre todos los servicios
		matched, err := tr.CountBarberCapabilities(ctx, in.BarberID, serviceIDs)
		if err != nil {
			return err
		}
		if matched != int64(len(serviceIDs)) {
			return httperr.ErrBusiness(httperr.CodeBarberMissingService)
		}

		// (d) ningún bloqueo activo pisa el rango
		blocks, err := tr.ListBlocks(ctx, in.BarberID, date)
		if err != nil {
			return err
		}
		for _, b := range blocks {
			if domain.BlockOverlaps(b, startMin, endMin) {
				return httperr.ErrBusiness(httperr.CodeBlockedTime)
			}
		}

		// cliente: id existente o alta en línea dentro de la misma tx
		var clientID uint
		if in.ClientID != nil {
			client, err := tr.GetClient(ctx, *in.ClientID)
			if err != nil {
				return httperr.ErrBusiness("client_not_found")
			}
			clientID = client.ID
		} else {
			if in.ClientName == "" {
				return httperr.ErrBusiness("client_required")
			}
			client, err := tr.GetOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
			if err != nil {
				return err
			}
			clientID = client.ID
		}

		lines := make([]models.AppointmentService, 0, len(serviceIDs))
		for _, id := range serviceIDs {
			// PriceApplied queda nulo: se resuelve al materializar la venta
			lines = append(lines, models.AppointmentService{ServiceID: id})
		}

		ap := &models.Appointment{
			BarberID:    in.BarberID,
			ClientID:    clientID,
			Date:        date,
			StartTime:   start,
			EndTime:     end,
			DurationMin: duration,
			Status:      string(domain.InitialStatus()),
			Notes:       in.Notes,
			Services:    lines,
			CreatedBy:   in.ActorID,
		}

		if err := tr.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness(httperr.CodeTimeConflict)
			}
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateDate(ctx, date)
	uc.events.Dispatch(events.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: created.ID,
		ActorID:  in.ActorID,
	})

	return created, nil
}
