package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/BarberiaDigital/barberia-api/internal/cache"
	"github.com/BarberiaDigital/barberia-api/internal/config"
	dbpkg "github.com/BarberiaDigital/barberia-api/internal/db"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/gateway"
	"github.com/BarberiaDigital/barberia-api/internal/logger"
	"github.com/BarberiaDigital/barberia-api/internal/middleware"
	"github.com/BarberiaDigital/barberia-api/internal/routes"
	"github.com/BarberiaDigital/barberia-api/internal/validators"
)

func main() {

	cfg := config.Load()
	log := logger.New(os.Getenv("GIN_MODE"))

	db := dbpkg.NewDB(cfg)

	availCache := cache.NewAvailabilityCache(cfg.RedisURL, log)
	dispatcher := events.NewDispatcher(log)
	defer dispatcher.Close()

	mp, err := gateway.NewMercadoPago(cfg.MPAccessToken)
	if err != nil {
		log.Fatal().Err(err).Msg("mercadopago init failed")
	}

	validators.Register()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Cfg:     cfg,
		Cache:   availCache,
		Events:  dispatcher,
		Gateway: mp,
	})

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
