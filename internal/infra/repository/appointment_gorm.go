package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transact(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewAppointmentGormRepository(tx))
	})
}

// --------------------------------------------------
// Advisory lock
// --------------------------------------------------

// LockBarberSchedule serializa todas las reservas de un barbero en una
// fecha. Se libera solo al terminar la transacción.
func (r *AppointmentGormRepository) LockBarberSchedule(
	ctx context.Context,
	barberID uint,
	date time.Time,
) error {
	dateKey := date.Year()*10000 + int(date.Month())*100 + date.Day()

	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?::int, ?::int)", barberID, dateKey).
		Error
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND active = true", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Barberos
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveBarbers(
	ctx context.Context,
) ([]models.User, error) {

	var barbers []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND active = true", models.RoleBarber).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND active = true", id, models.RoleBarber).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) CountBarberCapabilities(
	ctx context.Context,
	barberID uint,
	serviceIDs []uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BarberService{}).
		Where("barber_id = ? AND service_id IN ? AND active = true", barberID, serviceIDs).
		Distinct("service_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Agenda
// --------------------------------------------------

func activeAppointmentStates() []string {
	return []string{
		string(domain.StatusPendiente),
		string(domain.StatusConfirmada),
	}
}

func (r *AppointmentGormRepository) ListDayAppointments(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND date = ? AND status IN ?",
			barberID, date.Format("2006-01-02"), activeAppointmentStates(),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListAppointmentsByDate trae la agenda completa del día, en cualquier
// estado, con cliente y servicios cargados.
func (r *AppointmentGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Preload("Services.Service").
		Where("barber_id = ? AND date = ?", barberID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) HasOverlappingAppointment(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	// Postgres no permite FOR UPDATE sobre agregados; se traen las
	// filas en conflicto bajo lock y se cuentan en memoria.
	var conflicts []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, activeAppointmentStates(), end, start,
		).
		Find(&conflicts).Error; err != nil {
		return false, err
	}

	return len(conflicts) > 0, nil
}

func (r *AppointmentGormRepository) ListWorkingWindows(
	ctx context.Context,
	barberID uint,
	weekday int,
) ([]models.WorkingWindow, error) {

	var windows []models.WorkingWindow
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ? AND active = true", barberID, weekday).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *AppointmentGormRepository) ListBlocks(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.BarberBlock, error) {

	var blocks []models.BarberBlock
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ? AND active = true", barberID, date.Format("2006-01-02")).
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Cliente
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ? AND phone <> ''", phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Cita
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Services.Service").
		Preload("Client").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// UpdateAppointment persiste solo los campos mutables; nunca toca las
// líneas de servicio de la cita.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"status": ap.Status,
			"notes":  ap.Notes,
		}).Error
}

// --------------------------------------------------
// Materialización
// --------------------------------------------------

func (r *AppointmentGormRepository) HasSaleForAppointment(
	ctx context.Context,
	appointmentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleServiceLine{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateSale(
	ctx context.Context,
	s *models.Sale,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
