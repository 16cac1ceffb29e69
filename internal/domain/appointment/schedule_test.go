package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaDigital/barberia-api/internal/models"
)

func TestParseHHMM(t *testing.T) {
	min, err := ParseHHMM("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, min)

	min, err = ParseHHMM("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	min, err = ParseHHMM("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, min)

	for _, bad := range []string{"", "9:30am", "25:00", "10:61", "1030"} {
		_, err := ParseHHMM(bad)
		assert.Error(t, err, bad)
	}
}

func TestOverlaps(t *testing.T) {
	// intervalos semiabiertos: compartir el borde no es solape
	assert.False(t, Overlaps(540, 600, 600, 660))
	assert.False(t, Overlaps(600, 660, 540, 600))

	assert.True(t, Overlaps(540, 600, 570, 630))
	assert.True(t, Overlaps(570, 630, 540, 600))
	assert.True(t, Overlaps(540, 660, 570, 600)) // contenido
	assert.True(t, Overlaps(570, 600, 540, 660)) // contenedor
	assert.True(t, Overlaps(540, 600, 540, 600)) // idéntico

	assert.False(t, Overlaps(540, 600, 720, 780))
}

func TestWeekdayISO(t *testing.T) {
	// 2026-03-09 es lunes
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	for i, want := range []int{1, 2, 3, 4, 5, 6, 7} {
		got := WeekdayISO(monday.AddDate(0, 0, i))
		assert.Equal(t, want, got)
	}
}

func TestWindowCovers(t *testing.T) {
	w := models.WorkingWindow{StartTime: "09:00", EndTime: "13:00", Active: true}

	assert.True(t, WindowCovers(w, 540, 780))  // exacta
	assert.True(t, WindowCovers(w, 600, 660))  // interior
	assert.False(t, WindowCovers(w, 530, 600)) // empieza antes
	assert.False(t, WindowCovers(w, 700, 790)) // termina después

	// una cita que arranca dentro pero desborda el cierre no cabe
	short := models.WorkingWindow{StartTime: "09:00", EndTime: "12:30", Active: true}
	assert.False(t, WindowCovers(short, 705, 765)) // 11:45 + 60min contra cierre 12:30

	inactive := models.WorkingWindow{StartTime: "09:00", EndTime: "13:00", Active: false}
	assert.False(t, WindowCovers(inactive, 600, 660))

	broken := models.WorkingWindow{StartTime: "", EndTime: "13:00", Active: true}
	assert.False(t, WindowCovers(broken, 600, 660))
}

func TestBlockOverlaps(t *testing.T) {
	b := models.BarberBlock{StartTime: "12:00", EndTime: "13:00", Active: true}

	assert.True(t, BlockOverlaps(b, 705, 765))  // 11:45-12:45 pisa el bloqueo
	assert.False(t, BlockOverlaps(b, 660, 720)) // 11:00-12:00 termina justo al inicio
	assert.False(t, BlockOverlaps(b, 780, 840)) // 13:00-14:00 arranca justo al final

	inactive := models.BarberBlock{StartTime: "12:00", EndTime: "13:00", Active: false}
	assert.False(t, BlockOverlaps(inactive, 705, 765))
}
