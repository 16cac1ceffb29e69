package sale

import (
	"context"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
)

const (
	LineKindService = "servicio"
	LineKindProduct = "producto"
)

type RemoveLineInput struct {
	SaleID uint
	LineID uint
	Kind   string // servicio | producto

	ActorID uint
}

// RemoveLine desactiva una línea (borrado suave). Para líneas de
// producto devuelve el stock exacto que se descontó al agregarla, en
// la misma transacción, y el producto se reactiva si vuelve a positivo.
type RemoveLine struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewRemoveLine(repo domain.Repository, ev *events.Dispatcher) *RemoveLine {
	return &RemoveLine{repo: repo, events: ev}
}

func (uc *RemoveLine) Execute(
	ctx context.Context,
	in RemoveLineInput,
) (Summary, error) {

	if in.Kind != LineKindService && in.Kind != LineKindProduct {
		return Summary{}, httperr.ErrBusiness("invalid_line_kind")
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

		switch in.Kind {
		case LineKindService:
			if _, err := tr.DeactivateServiceLine(ctx, s.ID, in.LineID); err != nil {
				return httperr.ErrBusiness("line_not_found")
			}

		case LineKindProduct:
			line, err := tr.DeactivateProductLine(ctx, s.ID, in.LineID)
			if err != nil {
				return httperr.ErrBusiness("line_not_found")
			}
			if err := tr.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		_, out, err = recomputeAndSave(ctx, tr, s.ID)
		return err
	})

	if err != nil {
		return Summary{}, err
	}

	uc.events.Dispatch(events.Event{
		Action:   "sale_line_removed",
		Entity:   "sale",
		EntityID: in.SaleID,
		ActorID:  in.ActorID,
	})

	return out, nil
}
