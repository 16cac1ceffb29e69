package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaDigital/barberia-api/internal/models"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPendiente, StatusConfirmada, StatusCompletada, StatusCancelada, StatusNoAsistio} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, Status("").Valid())
	assert.False(t, Status("pagada").Valid())
	assert.False(t, Status("PENDIENTE").Valid())
}

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusPendiente, StatusConfirmada},
		{StatusPendiente, StatusCancelada},
		{StatusPendiente, StatusCompletada},
		{StatusPendiente, StatusNoAsistio},
		{StatusConfirmada, StatusPendiente},
		{StatusConfirmada, StatusCompletada},
		{StatusCancelada, StatusPendiente},
		{StatusCancelada, StatusConfirmada},
		{StatusNoAsistio, StatusCompletada},
		{StatusCompletada, StatusConfirmada},
		{StatusCompletada, StatusNoAsistio},
	}
	for _, tc := range allowed {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct {
		from, to Status
	}{
		{StatusCancelada, StatusCompletada},
		{StatusCancelada, StatusNoAsistio},
		{StatusNoAsistio, StatusCancelada},
		{StatusCompletada, StatusPendiente},
		{StatusCompletada, StatusCancelada},
	}
	for _, tc := range denied {
		assert.Error(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	// misma transición no es transición
	assert.Error(t, CanTransition(StatusPendiente, StatusPendiente))
}

func TestTransitionMutatesAppointment(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPendiente)}

	require.NoError(t, Transition(ap, StatusConfirmada, now))
	assert.Equal(t, string(StatusConfirmada), ap.Status)
	assert.Equal(t, now, ap.UpdatedAt)

	// rechazada: la cita queda intacta
	err := Transition(ap, StatusConfirmada, now.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, string(StatusConfirmada), ap.Status)
	assert.Equal(t, now, ap.UpdatedAt)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPendiente, InitialStatus())
}
