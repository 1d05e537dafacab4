package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

// sqliteParams make every transaction take the write lock at BEGIN, so two
// settlements on one file serialize instead of failing on lock upgrade.
const sqliteParams = "_busy_timeout=5000&_txlock=immediate&_journal_mode=WAL&_foreign_keys=on"

type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(path string, logg *logger.Logger) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")
	db, err := openSQLite(path, serviceLog)
	if err != nil {
		return nil, err
	}
	serviceLog.Info("Opened SQLite store", "path", path)
	return &SQLiteService{db: db, log: serviceLog}, nil
}

// OpenSQLite opens a file-backed SQLite database with gorm's logging silenced.
func OpenSQLite(path string) (*gorm.DB, error) {
	return openSQLite(path, nil)
}

func openSQLite(path string, log *logger.Logger) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := "file:" + path + "?" + sqliteParams
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLog(log)})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	return db, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) AutoMigrateAll() error { return AutoMigrateAll(s.db) }
