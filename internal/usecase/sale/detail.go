package sale

import (
	"context"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

type GetSaleDetail struct {
	repo domain.Repository
}

func NewGetSaleDetail(repo domain.Repository) *GetSaleDetail {
	return &GetSaleDetail{repo: repo}
}

func (uc *GetSaleDetail) Execute(
	ctx context.Context,
	saleID uint,
) (*models.Sale, Summary, error) {

	s, err := uc.repo.GetSale(ctx, saleID)
	if err != nil {
		return nil, Summary{}, httperr.ErrBusiness("sale_not_found")
	}

	// derivados en memoria, sin persistir: lectura pura
	total, paid := domain.Totals(s)

	return s, Summary{
		SaleID: s.ID,
		Total:  total,
		Paid:   paid,
		Status: s.Status,
	}, nil
}
