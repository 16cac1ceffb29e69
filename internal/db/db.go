package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BarberiaDigital/barberia-api/internal/config"
	"github.com/BarberiaDigital/barberia-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.BarberService{},
		&models.WorkingWindow{},
		&models.BarberBlock{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Product{},
		&models.Sale{},
		&models.SaleServiceLine{},
		&models.SaleProductLine{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Últimas líneas de defensa a nivel de esquema: la EXCLUDE impide
	// que dos citas activas del mismo barbero compartan rango aunque dos
	// transacciones pasen la validación a la vez, y el CHECK hace
	// imposible el stock negativo.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            tsrange(start_time, end_time) WITH &&
        )
        WHERE (status IN ('pendiente', 'confirmada'))
    `)

	db.Exec(`
        ALTER TABLE products
        ADD CONSTRAINT products_stock_non_negative
        CHECK (stock >= 0)
    `)

	return db
}
