package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nmalik/gobilling/internal/config"
	"github.com/nmalik/gobilling/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured store: postgres when a DSN is set, otherwise
// the embedded sqlite file. TranslateError is enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey on both drivers.
func Connect(cfg config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel), TranslateError: true}

	if cfg.DatabaseDSN == "" {
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return db, nil
	}

	dsn := NormalizeDSN(cfg.DatabaseDSN)
	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			break
		}
		log.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return db, nil
}

// EnsureSchema creates the billing tables if they are missing. AutoMigrate is
// idempotent and safe under concurrent callers; it never drops or narrows
// existing tables.
func EnsureSchema(db *gorm.DB) error {
	for _, m := range []interface{}{
		&models.Invoice{}, &models.InvoiceItem{}, &models.Product{}, &models.ProfitSummary{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// ConnectAndMigrate opens the store and sets up the schema. When MIGRATIONS=1
// and postgres is configured, versioned SQL migrations run instead of
// AutoMigrate. Schema failures are logged and deferred to first use; only a
// failed connection is fatal to the caller.
func ConnectAndMigrate(cfg config.Config) (*gorm.DB, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); cfg.DatabaseDSN != "" && (v == "1" || v == "true" || v == "yes") {
		if err := runSQLMigrations(NormalizeDSN(cfg.DatabaseDSN)); err != nil {
			log.Printf("sql migrations failed (schema deferred to first use): %v", err)
		}
		return db, nil
	}
	if err := EnsureSchema(db); err != nil {
		log.Printf("schema setup failed (deferred to first use): %v", err)
	}
	return db, nil
}
