package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

// AutoMigrateAll creates or widens the ledger tables. It never drops columns.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&ledger.Profile{},
		&ledger.Contract{},
		&ledger.Job{},
	); err != nil {
		return fmt.Errorf("automigrate ledger tables: %w", err)
	}
	return nil
}
