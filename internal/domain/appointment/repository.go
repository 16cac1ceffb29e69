package appointment

import (
	"context"
	"time"

	"github.com/BarberiaDigital/barberia-api/internal/models"
)

type Repository interface {
	// Transact ejecuta fn dentro de una transacción; el Repository que
	// recibe fn está ligado a esa transacción.
	Transact(ctx context.Context, fn func(Repository) error) error

	// Advisory lock por (barbero, fecha); primera sentencia de la
	// transacción de reserva.
	LockBarberSchedule(ctx context.Context, barberID uint, date time.Time) error

	// -------- Catálogo --------
	GetActiveServices(ctx context.Context, ids []uint) ([]models.Service, error)

	// -------- Barberos --------
	ListActiveBarbers(ctx context.Context) ([]models.User, error)
	GetBarber(ctx context.Context, id uint) (*models.User, error)
	CountBarberCapabilities(ctx context.Context, barberID uint, serviceIDs []uint) (int64, error)

	// -------- Agenda --------
	ListDayAppointments(ctx context.Context, barberID uint, date time.Time) ([]models.Appointment, error)
	ListAppointmentsByDate(ctx context.Context, barberID uint, date time.Time) ([]models.Appointment, error)
	HasOverlappingAppointment(ctx context.Context, barberID uint, start, end time.Time) (bool, error)
	ListWorkingWindows(ctx context.Context, barberID uint, weekday int) ([]models.WorkingWindow, error)
	ListBlocks(ctx context.Context, barberID uint, date time.Time) ([]models.BarberBlock, error)

	// -------- Cliente --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error)

	// -------- Cita --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Materialización --------
	HasSaleForAppointment(ctx context.Context, appointmentID uint) (bool, error)
	CreateSale(ctx context.Context, sale *models.Sale) error
}
