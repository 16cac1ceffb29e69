package appointment

import (
	"context"
	"time"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
	"github.com/BarberiaDigital/barberia-api/internal/timezone"
)

// dedupIDs conserva el orden de la primera aparición.
func dedupIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func totalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMin
	}
	return total
}

// validateBookingDate aplica la ventana fija de reserva:
// [hoy, hoy+lookahead] inclusive, en fechas civiles.
func validateBookingDate(date time.Time, lookaheadDays int) error {
	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) || day.After(today.AddDate(0, 0, lookaheadDays)) {
		return httperr.ErrBusiness("date_out_of_window")
	}
	return nil
}

// barberIsFree corre los cuatro filtros de disponibilidad contra el
// repositorio, en el mismo orden en que la reserva los re-valida.
func barberIsFree(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	date time.Time,
	startMin, endMin int,
	serviceIDs []uint,
) (bool, error) {

	// citas activas del día
	apps, err := repo.ListDayAppointments(ctx, barberID, date)
	if err != nil {
		return false, err
	}
	for _, ap := range apps {
		if domain.Overlaps(
			startMin, endMin,
			domain.MinutesOfDay(ap.StartTime), domain.MinutesOfDay(ap.EndTime),
		) {
			return false, nil
		}
	}

	// alguna ventana semanal debe contener el rango completo
	windows, err := repo.ListWorkingWindows(ctx, barberID, domain.WeekdayISO(date))
	if err != nil {
		return false, err
	}
	covered := false
	for _, w := range windows {
		if domain.WindowCovers(w, startMin, endMin) {
			covered = true
			break
		}
	}
	if !covered {
		return false, nil
	}

	// cobertura de capacidades
	matched, err := repo.CountBarberCapabilities(ctx, barberID, serviceIDs)
	if err != nil {
		return false, err
	}
	if matched != int64(len(serviceIDs)) {
		return false, nil
	}

	// bloqueos puntuales
	blocks, err := repo.ListBlocks(ctx, barberID, date)
	if err != nil {
		return false, err
	}
	for _, b := range blocks {
		if domain.BlockOverlaps(b, startMin, endMin) {
			return false, nil
		}
	}

	return true, nil
}
