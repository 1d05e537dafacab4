package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type Config struct {
	Driver     string
	Postgres   PostgresConfig
	SQLitePath string
}

// Service is the minimal surface the app needs from a store bootstrapper.
type Service interface {
	DB() *gorm.DB
	AutoMigrateAll() error
}

// Open connects to the configured driver ("postgres" or "sqlite").
func Open(cfg Config, log *logger.Logger) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "postgres", "postgresql":
		return NewPostgresService(cfg.Postgres, log)
	case "sqlite", "sqlite3":
		return NewSQLiteService(cfg.SQLitePath, log)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
