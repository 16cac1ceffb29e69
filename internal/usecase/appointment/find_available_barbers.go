package appointment

import (
	"context"

	"github.com/BarberiaDigital/barberia-api/internal/cache"
	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
)

// ======================================================
// USE CASE
// ======================================================

// FindAvailableBarbers es la consulta de disponibilidad: barberos que
// cubren todos los servicios pedidos, caben en una ventana semanal, no
// tienen cita activa ni bloqueo que pise el rango. Lectura pura; la
// reserva re-valida todo dentro de su transacción porque este
// resultado puede quedar viejo entre consulta y escritura.
type FindAvailableBarbers struct {
	repo      domain.Repository
	cache     *cache.AvailabilityCache
	lookahead int
}

func NewFindAvailableBarbers(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	lookaheadDays int,
) *FindAvailableBarbers {
	return &FindAvailableBarbers{
		repo:      repo,
		cache:     c,
		lookahead: lookaheadDays,
	}
}

func (uc *FindAvailableBarbers) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.AvailableBarber, error) {

	if len(in.ServiceIDs) == 0 {
		return []domain.AvailableBarber{}, nil
	}

	if err := validateBookingDate(in.Date, uc.lookahead); err != nil {
		return nil, err
	}

	serviceIDs := dedupIDs(in.ServiceIDs)

	if cached, ok := uc.cache.Get(ctx, in.Date, in.StartTime, serviceIDs); ok {
		return cached, nil
	}

	services, err := uc.repo.GetActiveServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	duration := totalDuration(services)
	if duration == 0 {
		return []domain.AvailableBarber{}, nil
	}

	startMin, err := domain.ParseHHMM(in.StartTime)
	if err != nil {
		return nil, err
	}
	endMin := startMin + duration

	candidates, err := uc.repo.ListActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}

	// ListActiveBarbers ya ordena por nombre
	available := []domain.AvailableBarber{}
	for _, b := range candidates {
		free, err := barberIsFree(ctx, uc.repo, b.ID, in.Date, startMin, endMin, serviceIDs)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, domain.AvailableBarber{
				BarberID: b.ID,
				Name:     b.Name,
			})
		}
	}

	uc.cache.Set(ctx, in.Date, in.StartTime, serviceIDs, available)

	return available, nil
}
