package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BarberiaDigital/barberia-api/internal/domain/appointment"
)

const availabilityTTL = 60 * time.Second

// AvailabilityCache guarda respuestas de disponibilidad en redis.
// Cada fecha lleva un contador de versión: crear o transicionar una
// cita lo incrementa y las entradas viejas dejan de resolverse sin
// necesidad de borrarlas. Sin redis configurado todo degrada a
// calcular directo.
type AvailabilityCache struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewAvailabilityCache(redisURL string, log zerolog.Logger) *AvailabilityCache {
	if redisURL == "" {
		return &AvailabilityCache{log: log}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis url inválida, cache deshabilitada")
		return &AvailabilityCache{log: log}
	}

	return &AvailabilityCache{rdb: redis.NewClient(opts), log: log}
}

func (c *AvailabilityCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func dateKey(date time.Time) string {
	return "avail:ver:" + date.Format("2006-01-02")
}

func (c *AvailabilityCache) entryKey(ctx context.Context, date time.Time, startTime string, serviceIDs []uint) string {
	ver, err := c.rdb.Get(ctx, dateKey(date)).Int64()
	if err != nil && err != redis.Nil {
		return ""
	}

	ids := make([]string, len(serviceIDs))
	sorted := append([]uint(nil), serviceIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, id := range sorted {
		ids[i] = fmt.Sprint(id)
	}

	return fmt.Sprintf("avail:%s:v%d:%s:%s",
		date.Format("2006-01-02"), ver, startTime, strings.Join(ids, ","))
}

func (c *AvailabilityCache) Get(ctx context.Context, date time.Time, startTime string, serviceIDs []uint) ([]appointment.AvailableBarber, bool) {
	if !c.Enabled() {
		return nil, false
	}

	key := c.entryKey(ctx, date, startTime, serviceIDs)
	if key == "" {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var barbers []appointment.AvailableBarber
	if err := json.Unmarshal(raw, &barbers); err != nil {
		return nil, false
	}
	return barbers, true
}

func (c *AvailabilityCache) Set(ctx context.Context, date time.Time, startTime string, serviceIDs []uint, barbers []appointment.AvailableBarber) {
	if !c.Enabled() {
		return
	}

	key := c.entryKey(ctx, date, startTime, serviceIDs)
	if key == "" {
		return
	}

	raw, err := json.Marshal(barbers)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, raw, availabilityTTL).Err(); err != nil {
		c.log.Debug().Err(err).Msg("no se pudo cachear disponibilidad")
	}
}

// InvalidateDate sube la versión de la fecha; las entradas previas
// quedan huérfanas y expiran por TTL.
func (c *AvailabilityCache) InvalidateDate(ctx context.Context, date time.Time) {
	if !c.Enabled() {
		return
	}

	key := dateKey(date)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		c.log.Debug().Err(err).Msg("no se pudo invalidar cache de disponibilidad")
		return
	}
	c.rdb.Expire(ctx, key, 48*time.Hour)
}
