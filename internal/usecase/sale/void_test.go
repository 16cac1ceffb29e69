package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

func TestVoidSaleRestoresStock(t *testing.T) {
	repo := newMockSaleRepository()
	s := seedOpenSale(repo)
	p := seedProduct(repo, 1, 5, 18000)

	addProduct := NewAddProductLine(repo, noopEvents())
	_, err := addProduct.Execute(context.Background(), AddProductLineInput{
		SaleID: s.ID, ProductID: p.ID, Quantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 2, p.Stock)

	payment := NewRegisterPayment(repo, nil, noopEvents())
	_, err = payment.Execute(context.Background(), RegisterPaymentInput{
		SaleID: s.ID, Method: "efectivo", Amount: 54000,
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusPagada), s.Status)

	uc := NewVoidSale(repo, noopEvents())
	summary, err := uc.Execute(context.Background(), s.ID, 5)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAnulada), summary.Status)
	assert.Equal(t, 0.0, summary.Total)
	assert.Equal(t, 0.0, summary.Paid)

	// el stock vuelve exactamente a donde estaba
	assert.Equal(t, 5, p.Stock)
	assert.True(t, p.Active)

	// líneas y pagos quedan desactivados, no borrados
	for _, l := range s.ProductLines {
		assert.False(t, l.Active)
	}
	for _, pay := range s.Payments {
		assert.False(t, pay.Active)
	}
}

func TestVoidSaleSkipsInactiveLines(t *testing.T) {
	repo := newMockSaleRepository()
	s := seedOpenSale(repo)
	p := seedProduct(repo, 1, 5, 18000)

	// una línea ya removida: su stock ya fue devuelto antes
	s.ProductLines = append(s.ProductLines, models.SaleProductLine{
		ID: 20, SaleID: s.ID, ProductID: p.ID, Quantity: 2, Active: false,
	})

	uc := NewVoidSale(repo, noopEvents())
	_, err := uc.Execute(context.Background(), s.ID, 5)

	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock) // sin doble reversa
}

func TestVoidSaleTwice(t *testing.T) {
	repo := newMockSaleRepository()
	s := seedOpenSale(repo)

	uc := NewVoidSale(repo, noopEvents())
	_, err := uc.Execute(context.Background(), s.ID, 5)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), s.ID, 5)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSaleVoided))
}

func TestVoidSaleIsSticky(t *testing.T) {
	repo := newMockSaleRepository()
	s := seedOpenSale(repo)

	uc := NewVoidSale(repo, noopEvents())
	_, err := uc.Execute(context.Background(), s.ID, 5)
	require.NoError(t, err)

	// el recálculo posterior jamás la reabre
	total, paid, status := domain.Recompute(s)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 0.0, paid)
	assert.Equal(t, domain.StatusAnulada, status)
}
