package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gradebook/internal/config"
	"gradebook/internal/model"
)

// Open returns a connected GORM DB instance for the configured driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return NewMySQL(cfg.DatabaseDSN, cfg.Debug)
	case config.DriverSQLite:
		return NewSQLite(cfg.DatabaseDSN, cfg.Debug)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// NewSQLite opens a SQLite database file, or an in-memory one for ":memory:".
func NewSQLite(dsn string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Student{}, &model.Score{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func gormConfig(debug bool) *gorm.Config {
	gormLogger := logger.Discard
	if debug {
		gormLogger = logger.Default
	}
	return &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}
}
