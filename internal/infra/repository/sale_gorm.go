package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

func (r *SaleGormRepository) Transact(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSaleGormRepository(tx))
	})
}

// --------------------------------------------------
// Venta
// --------------------------------------------------

func (r *SaleGormRepository) CreateSale(
	ctx context.Context,
	s *models.Sale,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// GetSale bloquea la fila de la venta y carga todas las líneas y pagos,
// activos e inactivos. Dentro de Transact esto serializa las
// mutaciones concurrentes sobre la misma venta.
func (r *SaleGormRepository) GetSale(
	ctx context.Context,
	id uint,
) (*models.Sale, error) {

	var s models.Sale
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("ServiceLines").
		Preload("ProductLines").
		Preload("Payments").
		Preload("Client").
		First(&s, id).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

// SaveSale persiste exclusivamente los campos derivados.
func (r *SaleGormRepository) SaveSale(
	ctx context.Context,
	s *models.Sale,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"total":          s.Total,
			"status":         s.Status,
			"payment_method": s.PaymentMethod,
		}).Error
}

// DeleteSale borra en duro; las líneas y pagos caen por cascada.
func (r *SaleGormRepository) DeleteSale(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Sale{}, id).Error
}

// --------------------------------------------------
// Líneas
// --------------------------------------------------

func (r *SaleGormRepository) AddServiceLine(
	ctx context.Context,
	l *models.SaleServiceLine,
) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *SaleGormRepository) AddProductLine(
	ctx context.Context,
	l *models.SaleProductLine,
) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *SaleGormRepository) DeactivateServiceLine(
	ctx context.Context,
	saleID uint,
	lineID uint,
) (*models.SaleServiceLine, error) {

	var line models.SaleServiceLine
	if err := r.db.WithContext(ctx).
		Where("id = ? AND sale_id = ? AND active = true", lineID, saleID).
		First(&line).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&line).
		Update("active", false).Error; err != nil {
		return nil, err
	}

	line.Active = false
	return &line, nil
}

func (r *SaleGormRepository) DeactivateProductLine(
	ctx context.Context,
	saleID uint,
	lineID uint,
) (*models.SaleProductLine, error) {

	var line models.SaleProductLine
	if err := r.db.WithContext(ctx).
		Where("id = ? AND sale_id = ? AND active = true", lineID, saleID).
		First(&line).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&line).
		Update("active", false).Error; err != nil {
		return nil, err
	}

	line.Active = false
	return &line, nil
}

func (r *SaleGormRepository) DeactivateSaleChildren(
	ctx context.Context,
	saleID uint,
) error {

	if err := r.db.WithContext(ctx).
		Model(&models.SaleServiceLine{}).
		Where("sale_id = ? AND active = true", saleID).
		Update("active", false).Error; err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.SaleProductLine{}).
		Where("sale_id = ? AND active = true", saleID).
		Update("active", false).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("sale_id = ? AND active = true", saleID).
		Update("active", false).Error
}

// --------------------------------------------------
// Pagos
// --------------------------------------------------

func (r *SaleGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// --------------------------------------------------
// Stock
// --------------------------------------------------

func (r *SaleGormRepository) GetProduct(
	ctx context.Context,
	id uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// AdjustStock hace el check-then-decrement en una sola sentencia: la
// condición stock + delta >= 0 viaja en el WHERE, así dos cajas
// concurrentes nunca pueden dejar el stock negativo. El flag active se
// sincroniza en la misma transacción.
func (r *SaleGormRepository) AdjustStock(
	ctx context.Context,
	productID uint,
	delta int,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", productID, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))

	if res.Error != nil {
		if httperr.IsCheckViolation(res.Error) {
			return httperr.ErrBusiness(httperr.CodeInsufficientStock)
		}
		return res.Error
	}

	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeInsufficientStock)
	}

	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("active", gorm.Expr("stock > 0")).Error
}

// Compile-time check
var _ domain.Repository = (*SaleGormRepository)(nil)
