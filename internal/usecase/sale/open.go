package sale

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

type OpenSale struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewOpenSale(repo domain.Repository, ev *events.Dispatcher) *OpenSale {
	return &OpenSale{repo: repo, events: ev}
}

func (uc *OpenSale) Execute(
	ctx context.Context,
	clientID *uint,
	cashierID uint,
) (*models.Sale, error) {

	s := &models.Sale{
		Ticket:    uuid.NewString(),
		ClientID:  clientID,
		CashierID: cashierID,
		Status:    string(domain.StatusAbierta),
		Total:     0,
	}

	if err := uc.repo.CreateSale(ctx, s); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Action:   "sale_opened",
		Entity:   "sale",
		EntityID: s.ID,
		ActorID:  cashierID,
	})

	return s, nil
}
