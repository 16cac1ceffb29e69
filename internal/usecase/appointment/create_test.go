package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
	"github.com/BarberiaDigital/barberia-api/internal/timezone"
)

func setupCreate(date time.Time) (*CreateAppointment, *mockRepository) {
	repo := newMockRepository()
	weekday := domain.WeekdayISO(date)

	addService(repo, 1, 30, 25000)
	addService(repo, 2, 30, 15000)

	addBarber(repo, 1, "Carlos")
	addWindow(repo, 1, weekday, "09:00", "18:00")
	addCapabilities(repo, 1, 1, 2)

	uc := NewCreateAppointment(repo, noopCache(), noopEvents(), lookaheadDays)
	return uc, repo
}

func TestCreateAppointmentSuccess(t *testing.T) {
	date := bookingDate(2)
	uc, repo := setupCreate(date)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName:  "Pedro Gómez",
		ClientPhone: "3001234567",
		BarberID:    1,
		Date:        date.Format("2006-01-02"),
		Time:        "10:00",
		ServiceIDs:  []uint{1, 2},
		ActorID:     7,
	})

	require.NoError(t, err)
	require.NotNil(t, ap)

	assert.Equal(t, string(domain.StatusPendiente), ap.Status)
	assert.Equal(t, 60, ap.DurationMin)
	assert.Equal(t, ap.StartTime.Add(60*time.Minute), ap.EndTime)
	assert.Equal(t, uint(7), ap.CreatedBy)
	assert.Equal(t, 1, repo.lockCalls)

	// el precio queda abierto hasta materializar la venta
	require.Len(t, ap.Services, 2)
	for _, line := range ap.Services {
		assert.Nil(t, line.PriceApplied)
	}

	// el cliente se dio de alta en línea dentro de la transacción
	client, ok := repo.clients[ap.ClientID]
	require.True(t, ok)
	assert.Equal(t, "Pedro Gómez", client.Name)
}

func TestCreateAppointmentReusesClientByPhone(t *testing.T) {
	date := bookingDate(2)
	uc, repo := setupCreate(date)

	existing := &models.Client{ID: 9, Name: "Pedro", Phone: "3001234567"}
	repo.clients[existing.ID] = existing

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName:  "Pedro Gómez",
		ClientPhone: "3001234567",
		BarberID:    1,
		Date:        date.Format("2006-01-02"),
		Time:        "10:00",
		ServiceIDs:  []uint{1},
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, ap.ClientID)
}

func TestCreateAppointmentTimeConflict(t *testing.T) {
	date := bookingDate(2)
	uc, repo := setupCreate(date)

	loc := timezone.Location("")
	busyStart := time.Date(date.Year(), date.Month(), date.Day(), 10, 30, 0, 0, loc)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, BarberID: 1, Date: date,
		StartTime: busyStart, EndTime: busyStart.Add(30 * time.Minute),
		Status: string(domain.StatusPendiente),
	})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName: "Pedro",
		BarberID:   1,
		Date:       date.Format("2006-01-02"),
		Time:       "10:00",
		ServiceIDs: []uint{1, 2}, // 60 min, pisa la cita de 10:30
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))
	assert.Len(t, repo.appointments, 1)
}

func TestCreateAppointmentBackToBackAllowed(t *testing.T) {
	date := bookingDate(2)
	uc, repo := setupCreate(date)

	loc := timezone.Location("")
	busyStart := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, loc)
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 50, BarberID: 1, Date: date,
		StartTime: busyStart, EndTime: busyStart.Add(time.Hour),
		Status: string(domain.StatusConfirmada),
	})

	// arranca exactamente donde termina la anterior
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName: "Pedro",
		BarberID:   1,
		Date:       date.Format("2006-01-02"),
		Time:       "10:00",
		ServiceIDs: []uint{1},
	})

	require.NoError(t, err)
	assert.Len(t, repo.appointments, 2)
}

func TestCreateAppointmentOutsideWorkingHours(t *testing.T) {
	date := bookingDate(2)
	uc, _ := setupCreate(date)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName: "Pedro",
		BarberID:   1,
		Date:       date.Format("2006-01-02"),
		Time:       "17:45", // 60 min desborda el cierre de 18:00
		ServiceIDs: []uint{1, 2},
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideWorkingHours))
}

func TestCreateAppointmentBlockedTime(t *testing.T) {
	date := bookingDate(2)
	uc, repo := setupCreate(date)

	repo.blocks[1] = append(repo.blocks[1], models.BarberBlock{
		BarberID: 1, Date: date,
		StartTime: "10:00", EndTime: "11:00",
		Reason: "diligencia", Active: true,
	})

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName: "Pedro",
		BarberID:   1,
		Date:       date.Format("2006-01-02"),
		Time:       "10:30",
		ServiceIDs: []uint{1},
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBlockedTime))
}

func TestCreateAppointmentBarberMissingService(t *testing.T) {
	date := bookingDate(2)
	uc, repo := setupCreate(date)

	addService(repo, 3, 20, 10000) // Carlos no lo presta

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName: "Pedro",
		BarberID:   1,
		Date:       date.Format("2006-01-02"),
		Time:       "10:00",
		ServiceIDs: []uint{1, 3},
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberMissingService))
}

func TestCreateAppointmentInactiveServices(t *testing.T) {
	date := bookingDate(2)
	uc, repo := setupCreate(date)

	svc := repo.services[1]
	svc.Active = false
	repo.services[1] = svc

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName: "Pedro",
		BarberID:   1,
		Date:       date.Format("2006-01-02"),
		Time:       "10:00",
		ServiceIDs: []uint{1},
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "no_active_services"))
}

func TestCreateAppointmentClientRequired(t *testing.T) {
	date := bookingDate(2)
	uc, _ := setupCreate(date)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		BarberID:   1,
		Date:       date.Format("2006-01-02"),
		Time:       "10:00",
		ServiceIDs: []uint{1},
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "client_required"))
}

func TestCreateAppointmentRejectsPastDate(t *testing.T) {
	date := bookingDate(2)
	uc, _ := setupCreate(date)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ClientName: "Pedro",
		BarberID:   1,
		Date:       bookingDate(-1).Format("2006-01-02"),
		Time:       "10:00",
		ServiceIDs: []uint{1},
	})

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "date_out_of_window"))
}
