package sale

import (
	"context"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

type AddProductLineInput struct {
	SaleID    uint
	ProductID uint
	Quantity  int
	UnitPrice float64 // 0 = usar precio vigente del producto

	ActorID uint
}

// AddProductLine inserta una línea de producto y descuenta stock en la
// misma transacción. El descuento es condicional: si no alcanza el
// stock no hay fila tocada y la transacción cae entera.
type AddProductLine struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewAddProductLine(repo domain.Repository, ev *events.Dispatcher) *AddProductLine {
	return &AddProductLine{repo: repo, events: ev}
}

func (uc *AddProductLine) Execute(
	ctx context.Context,
	in AddProductLineInput,
) (Summary, error) {

	if in.Quantity <= 0 {
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

		product, err := tr.GetProduct(ctx, in.ProductID)
		if err != nil {
			return httperr.ErrBusiness("product_not_found")
		}

		unitPrice := in.UnitPrice
		if unitPrice <= 0 {
			unitPrice = product.Price
		}

		// check-then-decrement atómico; el flag active cae a false si
		// el stock resultante es exactamente cero
		if err := tr.AdjustStock(ctx, product.ID, -in.Quantity); err != nil {
			return err
		}

		line := &models.SaleProductLine{
			SaleID:    s.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  unitPrice * float64(in.Quantity),
			Active:    true,
		}

		if err := tr.AddProductLine(ctx, line); err != nil {
			return err
		}

		_, out, err = recomputeAndSave(ctx, tr, s.ID)
		return err
	})

	if err != nil {
		return Summary{}, err
	}

	uc.events.Dispatch(events.Event{
		Action:   "sale_product_added",
		Entity:   "sale",
		EntityID: in.SaleID,
		ActorID:  in.ActorID,
	})

	return out, nil
}
