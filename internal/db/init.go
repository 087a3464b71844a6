package db

import (
	"fmt"

	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/config"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormWriter logs gorm's preformatted lines at warn level; zerolog's own
// Printf would emit them at debug.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Msgf(format, args...)
}

// NewLogger routes gorm's logging through zerolog. Only slow queries and
// errors are reported; missing records are an expected outcome.
func NewLogger(log zerolog.Logger, cfg config.LoggingConfig) gormlogger.Interface {
	l := log.With().Str("component", "gorm").Logger()
	return gormlogger.New(gormWriter{log: l}, gormlogger.Config{
		SlowThreshold:             cfg.SlowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Init opens the Postgres connection pool and migrates the schema.
func Init(dbCfg config.DatabaseConfig, logCfg config.LoggingConfig, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dbCfg.DSN), &gorm.Config{
		Logger: NewLogger(log, logCfg),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the customers, customer_accounts, products,
// orders and order_products tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Customer{},
		&models.CustomerAccount{},
		&models.Product{},
		&models.Order{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
