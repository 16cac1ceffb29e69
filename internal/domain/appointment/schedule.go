package appointment

import (
	"fmt"
	"time"

	"github.com/BarberiaDigital/barberia-api/internal/models"
)

// Minutos desde medianoche; todas las comparaciones de agenda se hacen
// sobre enteros para evitar aritmética de zonas horarias.

func ParseHHMM(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("hora inválida %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Overlaps aplica el test de intervalos semiabiertos [a,b) y [c,d):
// se solapan sii a < d && c < b.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// WeekdayISO devuelve 1=lunes ... 7=domingo.
func WeekdayISO(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WindowCovers indica si [startMin, endMin) cabe entero en la ventana.
func WindowCovers(w models.WorkingWindow, startMin, endMin int) bool {
	if !w.Active || w.StartTime == "" || w.EndTime == "" {
		return false
	}

	ws, err := ParseHHMM(w.StartTime)
	if err != nil {
		return false
	}
	we, err := ParseHHMM(w.EndTime)
	if err != nil {
		return false
	}

	return ws <= startMin && endMin <= we
}

// BlockOverlaps indica si un bloqueo activo pisa [startMin, endMin).
func BlockOverlaps(b models.BarberBlock, startMin, endMin int) bool {
	if !b.Active {
		return false
	}

	bs, err := ParseHHMM(b.StartTime)
	if err != nil {
		return false
	}
	be, err := ParseHHMM(b.EndTime)
	if err != nil {
		return false
	}

	return Overlaps(startMin, endMin, bs, be)
}
