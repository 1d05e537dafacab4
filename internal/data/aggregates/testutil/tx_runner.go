package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
)

// FaultRunner runs ledger writes in a real transaction on DB and can fail
// them at fixed points. Without DB the body runs with a nil Tx.
type FaultRunner struct {
	DB *gorm.DB

	// FailBegin is returned before the body runs.
	FailBegin error
	// FailCommit is returned after a successful body, rolling back its writes.
	FailCommit error

	mu        sync.Mutex
	commits   int
	rollbacks int
}

var _ aggregates.TxRunner = (*FaultRunner)(nil)

func (r *FaultRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if r.FailBegin != nil {
		return r.FailBegin
	}
	body := func(tx *gorm.DB) error {
		if err := fn(dbctx.Context{Ctx: ctx, Tx: tx}); err != nil {
			return err
		}
		return r.FailCommit
	}

	var err error
	if r.DB != nil {
		err = r.DB.WithContext(ctx).Transaction(body)
	} else {
		err = body(nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.rollbacks++
	} else {
		r.commits++
	}
	return err
}

// Counts returns how many transactions committed and rolled back.
func (r *FaultRunner) Counts() (commits, rollbacks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commits, r.rollbacks
}
