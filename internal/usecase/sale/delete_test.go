package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaDigital/barberia-api/internal/httperr"
)

func TestDeleteSaleHardDeletes(t *testing.T) {
	repo := newMockSaleRepository()
	s := seedOpenSale(repo)

	uc := NewDeleteSale(repo, noopEvents())
	err := uc.Execute(context.Background(), s.ID, 5)

	require.NoError(t, err)
	_, ok := repo.sales[s.ID]
	assert.False(t, ok)
}

func TestDeleteSaleDoesNotRestoreStock(t *testing.T) {
	repo := newMockSaleRepository()
	s := seedOpenSale(repo)
	p := seedProduct(repo, 1, 5, 18000)

	addProduct := NewAddProductLine(repo, noopEvents())
	_, err := addProduct.Execute(context.Background(), AddProductLineInput{
		SaleID: s.ID, ProductID: p.ID, Quantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 2, p.Stock)

	// el borrado duro no toca inventario; la reversa es vía anulación
	uc := NewDeleteSale(repo, noopEvents())
	require.NoError(t, uc.Execute(context.Background(), s.ID, 5))

	assert.Equal(t, 2, p.Stock)
}

func TestDeleteSaleNotFound(t *testing.T) {
	repo := newMockSaleRepository()
	uc := NewDeleteSale(repo, noopEvents())

	err := uc.Execute(context.Background(), 999, 5)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "sale_not_found"))
}
