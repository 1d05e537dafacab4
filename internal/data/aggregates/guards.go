package aggregates

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
)

// CASGuard applies status transitions that only land when the row is still
// in an expected status.
type CASGuard struct {
	db *gorm.DB
}

func NewCASGuard(db *gorm.DB) CASGuard {
	return CASGuard{db: db}
}

func (g CASGuard) scope(dbc dbctx.Context) (*gorm.DB, error) {
	switch {
	case dbc.Tx != nil:
		return dbc.Tx.WithContext(dbc.Ctx), nil
	case g.db != nil:
		return g.db.WithContext(dbc.Ctx), nil
	}
	return nil, ValidationError("missing db transaction context")
}

// Transition sets status to next on the row when its status is one of from.
// It reports whether a row moved.
func (g CASGuard) Transition(dbc dbctx.Context, table string, id uuid.UUID, next string, from ...string) (bool, error) {
	db, err := g.scope(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	if table == "" || id == uuid.Nil || next == "" {
		return false, ValidationError("table, id and next status are required")
	}
	if len(from) == 0 {
		return false, ValidationError("at least one source status is required")
	}
	res := db.Table(table).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]any{"status": next, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// TerminateContract closes an in-progress contract.
func (g CASGuard) TerminateContract(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	return g.Transition(dbc, ledger.Contract{}.TableName(), id,
		string(ledger.ContractStatusTerminated), string(ledger.ContractStatusInProgress))
}

// mustLand turns a guarded write that matched no row into a conflict.
func mustLand(ok bool, what string) error {
	if ok {
		return nil
	}
	return ConflictError(what)
}
