package sale

import (
	"context"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

// Summary son los derivados de la venta que toda mutación devuelve.
type Summary struct {
	SaleID uint    `json:"sale_id"`
	Total  float64 `json:"total"`
	Paid   float64 `json:"paid"`
	Status string  `json:"status"`
}

// recomputeAndSave relee la venta dentro de la transacción en curso,
// deriva total/pagado/estado desde las filas hijas y persiste. Es el
// último paso de toda mutación; llamarlo de más nunca cambia nada.
func recomputeAndSave(
	ctx context.Context,
	tr domain.Repository,
	saleID uint,
) (*models.Sale, Summary, error) {

	s, err := tr.GetSale(ctx, saleID)
	if err != nil {
		return nil, Summary{}, err
	}

	total, paid, status := domain.Recompute(s)

	if err := tr.SaveSale(ctx, s); err != nil {
		return nil, Summary{}, err
	}

	return s, Summary{
		SaleID: s.ID,
		Total:  total,
		Paid:   paid,
		Status: string(status),
	}, nil
}
