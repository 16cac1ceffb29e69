package sale

import (
	"context"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddServiceLineInput struct {
	SaleID        uint
	ServiceID     uint
	BarberID      uint
	DurationMin   int
	UnitPrice     float64
	CommissionPct float64

	ActorID uint
}

// ======================================================
// USE CASE
// ======================================================

// AddServiceLine inserta una línea de servicio. El servicio se cobra
// como unidad plana: subtotal = precio unitario, sin cantidad.
type AddServiceLine struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewAddServiceLine(repo domain.Repository, ev *events.Dispatcher) *AddServiceLine {
	return &AddServiceLine{repo: repo, events: ev}
}

func (uc *AddServiceLine) Execute(
	ctx context.Context,
	in AddServiceLineInput,
) (Summary, error) {

	if in.UnitPrice <= 0 {
		return Summary{}, httperr.ErrBusiness(httperr.CodeInvalidAmount)
	}

	var out Summary

	err := uc.repo.Transact(ctx, func(tr domain.Repository) error {

		s, err := tr.GetSale(ctx, in.SaleID)
		if err != nil {
			return httperr.ErrBusiness("sale_not_found")
		}

		if domain.Status(s.Status) == domain.StatusAnulada {
			return httperr.ErrBusiness(httperr.CodeSaleVoided)
		}

		line := &models.SaleServiceLine{
			SaleID:           s.ID,
			ServiceID:        in.ServiceID,
			BarberID:         in.BarberID,
			DurationMin:      in.DurationMin,
			UnitPrice:        in.UnitPrice,
			Subtotal:         in.UnitPrice,
			CommissionPct:    in.CommissionPct,
			CommissionAmount: in.UnitPrice * in.CommissionPct / 100,
			Active:           true,
		}

		if err := tr.AddServiceLine(ctx, line); err != nil {
			return err
		}

		_, out, err = recomputeAndSave(ctx, tr, s.ID)
		return err
	})

	if err != nil {
		return Summary{}, err
	}

	uc.events.Dispatch(events.Event{
		Action:   "sale_service_added",
		Entity:   "sale",
		EntityID: in.SaleID,
		ActorID:  in.ActorID,
	})

	return out, nil
}
