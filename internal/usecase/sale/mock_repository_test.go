package sale

import (
	"context"
	"errors"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

// mockSaleRepository implementa domain.Repository en memoria y replica
// la semántica de AdjustStock de la implementación gorm: el descuento
// es condicional y el flag active sigue al stock.
type mockSaleRepository struct {
	sales    map[uint]*models.Sale
	products map[uint]*models.Product
	nextID   uint
}

func newMockSaleRepository() *mockSaleRepository {
	return &mockSaleRepository{
		sales:    make(map[uint]*models.Sale),
		products: make(map[uint]*models.Product),
		nextID:   100,
	}
}

var _ domain.Repository = (*mockSaleRepository)(nil)

func (m *mockSaleRepository) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func (m *mockSaleRepository) CreateSale(ctx context.Context, s *models.Sale) error {
	m.nextID++
	s.ID = m.nextID
	m.sales[s.ID] = s
	return nil
}

func (m *mockSaleRepository) GetSale(ctx context.Context, id uint) (*models.Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (m *mockSaleRepository) SaveSale(ctx context.Context, s *models.Sale) error {
	stored, ok := m.sales[s.ID]
	if !ok {
		return errors.New("record not found")
	}
	stored.Total = s.Total
	stored.Status = s.Status
	stored.PaymentMethod = s.PaymentMethod
	return nil
}

func (m *mockSaleRepository) DeleteSale(ctx context.Context, id uint) error {
	if _, ok := m.sales[id]; !ok {
		return errors.New("record not found")
	}
	delete(m.sales, id)
	return nil
}

func (m *mockSaleRepository) AddServiceLine(ctx context.Context, l *models.SaleServiceLine) error {
	s, ok := m.sales[l.SaleID]
	if !ok {
		return errors.New("record not found")
	}
	m.nextID++
	l.ID = m.nextID
	s.ServiceLines = append(s.ServiceLines, *l)
	return nil
}

func (m *mockSaleRepository) AddProductLine(ctx context.Context, l *models.SaleProductLine) error {
	s, ok := m.sales[l.SaleID]
	if !ok {
		return errors.New("record not found")
	}
	m.nextID++
	l.ID = m.nextID
	s.ProductLines = append(s.ProductLines, *l)
	return nil
}

func (m *mockSaleRepository) DeactivateServiceLine(ctx context.Context, saleID, lineID uint) (*models.SaleServiceLine, error) {
	s, ok := m.sales[saleID]
	if !ok {
		return nil, errors.New("record not found")
	}
	for i := range s.ServiceLines {
		if s.ServiceLines[i].ID == lineID && s.ServiceLines[i].Active {
			s.ServiceLines[i].Active = false
			line := s.ServiceLines[i]
			return &line, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockSaleRepository) DeactivateProductLine(ctx context.Context, saleID, lineID uint) (*models.SaleProductLine, error) {
	s, ok := m.sales[saleID]
	if !ok {
		return nil, errors.New("record not found")
	}
	for i := range s.ProductLines {
		if s.ProductLines[i].ID == lineID && s.ProductLines[i].Active {
			s.ProductLines[i].Active = false
			line := s.ProductLines[i]
			return &line, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockSaleRepository) DeactivateSaleChildren(ctx context.Context, saleID uint) error {
	s, ok := m.sales[saleID]
	if !ok {
		return errors.New("record not found")
	}
	for i := range s.ServiceLines {
		s.ServiceLines[i].Active = false
	}
	for i := range s.ProductLines {
		s.ProductLines[i].Active = false
	}
	for i := range s.Payments {
		s.Payments[i].Active = false
	}
	return nil
}

func (m *mockSaleRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	s, ok := m.sales[p.SaleID]
	if !ok {
		return errors.New("record not found")
	}
	m.nextID++
	p.ID = m.nextID
	s.Payments = append(s.Payments, *p)
	return nil
}

func (m *mockSaleRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (m *mockSaleRepository) AdjustStock(ctx context.Context, productID uint, delta int) error {
	p, ok := m.products[productID]
	if !ok {
		return errors.New("record not found")
	}
	if p.Stock+delta < 0 {
		return httperr.ErrBusiness(httperr.CodeInsufficientStock)
	}
	p.Stock += delta
	p.Active = p.Stock > 0
	return nil
}
