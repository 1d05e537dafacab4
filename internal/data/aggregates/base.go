package aggregates

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type BaseDeps struct {
	DB       *gorm.DB
	Log      *logger.Logger
	Runner   TxRunner
	Hooks    Hooks
	CASGuard CASGuard
	// Now stamps write times; defaults to time.Now in UTC.
	Now func() time.Time
	// TxTimeout bounds the default runner's transactions; zero means no bound.
	TxTimeout time.Duration
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB, d.TxTimeout)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.CASGuard.db == nil {
		d.CASGuard = NewCASGuard(d.DB)
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	out := Outcome{Op: op, Err: mapped}
	if mapped != nil {
		switch classify(err) {
		case failureConflict:
			out.Conflict = true
		case failureRetryable:
			out.Retry = true
		}
	}
	out.Duration = time.Since(start)
	deps.Hooks.Observe(out)
	return mapped
}
