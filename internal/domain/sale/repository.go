package sale

import (
	"context"

	"github.com/BarberiaDigital/barberia-api/internal/models"
)

type Repository interface {
	Transact(ctx context.Context, fn func(Repository) error) error

	// -------- Venta --------
	CreateSale(ctx context.Context, s *models.Sale) error
	// GetSale carga la venta con todas sus líneas y pagos (activos e
	// inactivos) y bloquea la fila de la venta dentro de transacción.
	GetSale(ctx context.Context, id uint) (*models.Sale, error)
	SaveSale(ctx context.Context, s *models.Sale) error
	DeleteSale(ctx context.Context, id uint) error

	// -------- Líneas --------
	AddServiceLine(ctx context.Context, l *models.SaleServiceLine) error
	AddProductLine(ctx context.Context, l *models.SaleProductLine) error
	DeactivateServiceLine(ctx context.Context, saleID, lineID uint) (*models.SaleServiceLine, error)
	DeactivateProductLine(ctx context.Context, saleID, lineID uint) (*models.SaleProductLine, error)
	DeactivateSaleChildren(ctx context.Context, saleID uint) error

	// -------- Pagos --------
	CreatePayment(ctx context.Context, p *models.Payment) error

	// -------- Stock --------
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	// AdjustStock aplica el delta de forma condicional (nunca deja el
	// stock negativo) y sincroniza el flag active en la misma sentencia
	// de transacción. delta < 0 descuenta, delta > 0 repone.
	AdjustStock(ctx context.Context, productID uint, delta int) error
}
