package sale

import (
	"context"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
)

// DeleteSale borra en duro la venta con líneas y pagos, para corregir
// errores de operación. A diferencia de VoidSale NO devuelve stock:
// borrar una venta con líneas de producto deja los descuentos huérfanos.
// La asimetría viene del comportamiento de producción y se mantiene
// hasta que negocio confirme la intención; por eso la ruta exige rol
// admin y el evento queda registrado.
type DeleteSale struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewDeleteSale(repo domain.Repository, ev *events.Dispatcher) *DeleteSale {
	return &DeleteSale{repo: repo, events: ev}
}

func (uc *DeleteSale) Execute(
	ctx context.Context,
	saleID uint,
	actorID uint,
) error {

	err := uc.repo.Transact(ctx, func(tr domain.Repository) error {
		if _, err := tr.GetSale(ctx, saleID); err != nil {
			return httperr.ErrBusiness("sale_not_found")
		}
		return tr.DeleteSale(ctx, saleID)
	})

	if err != nil {
		return err
	}

	uc.events.Dispatch(events.Event{
		Action:   "sale_deleted",
		Entity:   "sale",
		EntityID: saleID,
		ActorID:  actorID,
	})

	return nil
}
