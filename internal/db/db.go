package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stylesync-app/booking-api/internal/config"
	"github.com/stylesync-app/booking-api/internal/models"
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

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate runs the schema migration plus the Postgres overlap guard.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.FinancialRecord{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	applyOverlapGuard(db)
	return nil
}

// applyOverlapGuard installs the atomic no-overlap constraint: two
// concurrent inserts for the same barber and an overlapping slot cannot
// both commit; the loser hits the exclusion constraint and surfaces a
// conflict. Postgres only; the repository transaction still re-validates
// on other dialects.
func applyOverlapGuard(db *gorm.DB) {
	if db.Dialector.Name() != "postgres" {
		return
	}

	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`)
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            tstzrange(slot_start, slot_end) WITH &&
        )
        WHERE (status IN ('confirmed', 'completed'))
    `)
}
