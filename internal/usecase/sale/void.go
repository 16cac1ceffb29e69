package sale

import (
	"context"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
)

// VoidSale anula la venta como unidad: devuelve el stock de cada línea
// de producto activa, desactiva líneas y pagos, y deja el estado en
// anulada, que es pegajoso. Es la única reversa masiva de stock.
type VoidSale struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewVoidSale(repo domain.Repository, ev *events.Dispatcher) *VoidSale {
	return &VoidSale{repo: repo, events: ev}
}

func (uc *VoidSale) Execute(
	ctx context.Context,
	saleID uint,
	actorID uint,
) (Summary, error) {

	var out Summary

	err := uc.repo.Transact(ctx, func(tr domain.Repository) error {

		s, err := tr.GetSale(ctx, saleID)
		if err != nil {
			return httperr.ErrBusiness("sale_not_found")
		}

		if domain.Status(s.Status) == domain.StatusAnulada {
			return httperr.ErrBusiness(httperr.CodeSaleVoided)
		}

		// reversa simétrica: cada descuento de una línea activa tiene
		// aquí su incremento
		for _, l := range s.ProductLines {
			if !l.Active {
				continue
			}
			if err := tr.AdjustStock(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}
		}

		if err := tr.DeactivateSaleChildren(ctx, s.ID); err != nil {
			return err
		}

		s.Status = string(domain.StatusAnulada)
		if err := tr.SaveSale(ctx, s); err != nil {
			return err
		}

		_, out, err = recomputeAndSave(ctx, tr, s.ID)
		return err
	})

	if err != nil {
		return Summary{}, err
	}

	uc.events.Dispatch(events.Event{
		Action:   "sale_voided",
		Entity:   "sale",
		EntityID: saleID,
		ActorID:  actorID,
	})

	return out, nil
}
