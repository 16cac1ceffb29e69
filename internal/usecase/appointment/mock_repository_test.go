package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

// mockRepository implementa domain.Repository en memoria, con la misma
// semántica de filtrado que la implementación gorm: estados activos
// para solapes, ventanas por día, bloqueos activos por fecha.
type mockRepository struct {
	barbers      map[uint]*models.User
	services     map[uint]models.Service
	clients      map[uint]*models.Client
	windows      map[uint][]models.WorkingWindow
	blocks       map[uint][]models.BarberBlock
	capabilities map[uint]map[uint]bool

	appointments []*models.Appointment
	sales        []*models.Sale

	nextID    uint
	lockCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		barbers:      make(map[uint]*models.User),
		services:     make(map[uint]models.Service),
		clients:      make(map[uint]*models.Client),
		windows:      make(map[uint][]models.WorkingWindow),
		blocks:       make(map[uint][]models.BarberBlock),
		capabilities: make(map[uint]map[uint]bool),
		nextID:       100,
	}
}

var _ domain.Repository = (*mockRepository)(nil)

func sameCivilDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func activeStatus(status string) bool {
	return status == string(domain.StatusPendiente) || status == string(domain.StatusConfirmada)
}

func (m *mockRepository) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) LockBarberSchedule(ctx context.Context, barberID uint, date time.Time) error {
	m.lockCalls++
	return nil
}

func (m *mockRepository) GetActiveServices(ctx context.Context, ids []uint) ([]models.Service, error) {
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.services[id]; ok && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepository) ListActiveBarbers(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.barbers))
	for _, b := range m.barbers {
		if b.Active {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockRepository) GetBarber(ctx context.Context, id uint) (*models.User, error) {
	b, ok := m.barbers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return b, nil
}

func (m *mockRepository) CountBarberCapabilities(ctx context.Context, barberID uint, serviceIDs []uint) (int64, error) {
	var n int64
	for _, id := range serviceIDs {
		if m.capabilities[barberID][id] {
			n++
		}
	}
	return n, nil
}

func (m *mockRepository) ListDayAppointments(ctx context.Context, barberID uint, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.BarberID == barberID && sameCivilDate(ap.Date, date) && activeStatus(ap.Status) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (m *mockRepository) ListAppointmentsByDate(ctx context.Context, barberID uint, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.BarberID == barberID && sameCivilDate(ap.Date, date) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (m *mockRepository) HasOverlappingAppointment(ctx context.Context, barberID uint, start, end time.Time) (bool, error) {
	for _, ap := range m.appointments {
		if ap.BarberID == barberID && activeStatus(ap.Status) &&
			ap.StartTime.Before(end) && start.Before(ap.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) ListWorkingWindows(ctx context.Context, barberID uint, weekday int) ([]models.WorkingWindow, error) {
	var out []models.WorkingWindow
	for _, w := range m.windows[barberID] {
		if w.Weekday == weekday && w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockRepository) ListBlocks(ctx context.Context, barberID uint, date time.Time) ([]models.BarberBlock, error) {
	var out []models.BarberBlock
	for _, b := range m.blocks[barberID] {
		if sameCivilDate(b.Date, date) && b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (m *mockRepository) GetOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error) {
	for _, c := range m.clients {
		if phone != "" && c.Phone == phone {
			return c, nil
		}
	}
	m.nextID++
	c := &models.Client{ID: m.nextID, Name: name, Phone: phone, Email: email}
	m.clients[c.ID] = c
	return c, nil
}

func (m *mockRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	m.nextID++
	ap.ID = m.nextID
	m.appointments = append(m.appointments, ap)
	return nil
}

func (m *mockRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range m.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	for i, existing := range m.appointments {
		if existing.ID == ap.ID {
			m.appointments[i] = ap
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *mockRepository) HasSaleForAppointment(ctx context.Context, appointmentID uint) (bool, error) {
	for _, s := range m.sales {
		for _, l := range s.ServiceLines {
			if l.AppointmentID != nil && *l.AppointmentID == appointmentID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *mockRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	m.nextID++
	sale.ID = m.nextID
	m.sales = append(m.sales, sale)
	return nil
}
