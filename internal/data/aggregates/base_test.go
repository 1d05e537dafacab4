package aggregates

import (
	"context"
	"errors"
	"testing"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
)

func TestExecuteWriteObservesSuccessStatus(t *testing.T) {
	hooks := &spyHooks{}
	err := executeWrite(context.Background(), BaseDeps{
		Runner: spyTxRunner{},
		Hooks:  hooks,
	}, "aggregate.test.success", func(_ dbctx.Context) error { return nil })
	if err != nil {
		t.Fatalf("executeWrite success: %v", err)
	}
	if len(hooks.Operations) != 1 {
		t.Fatalf("operations count: want=1 got=%d", len(hooks.Operations))
	}
	if hooks.Operations[0].Status != "success" {
		t.Fatalf("operation status: want=success got=%s", hooks.Operations[0].Status)
	}
}

func TestExecuteWritePassesLedgerCodesThrough(t *testing.T) {
	hooks := &spyHooks{}
	err := executeWrite(context.Background(), BaseDeps{
		Runner: spyTxRunner{},
		Hooks:  hooks,
	}, "aggregate.test.settled", func(_ dbctx.Context) error {
		return domainagg.NewError(domainagg.CodeAlreadySettled, "op", "paid", ConflictError("cas miss"))
	})
	if !domainagg.IsCode(err, domainagg.CodeAlreadySettled) {
		t.Fatalf("expected already_settled, got=%v", err)
	}
	if len(hooks.Conflicts) != 1 {
		t.Fatalf("conflict hooks: %+v", hooks.Conflicts)
	}
	if hooks.Operations[0].Status != string(domainagg.CodeAlreadySettled) {
		t.Fatalf("operation status: got=%s", hooks.Operations[0].Status)
	}
}

func TestExecuteWriteTracksConflictAndRetryCounters(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		hooks := &spyHooks{}
		err := executeWrite(context.Background(), BaseDeps{
			Runner: spyTxRunner{},
			Hooks:  hooks,
		}, "aggregate.test.conflict", func(_ dbctx.Context) error {
			return ConflictError("balance changed")
		})
		if !domainagg.IsCode(err, domainagg.CodeSettlementFailed) {
			t.Fatalf("expected settlement_failed code, got=%v", err)
		}
		if len(hooks.Conflicts) != 1 || hooks.Conflicts[0] != "aggregate.test.conflict" {
			t.Fatalf("conflict hooks: %+v", hooks.Conflicts)
		}
		if len(hooks.Retries) != 0 {
			t.Fatalf("retry hooks should be empty, got=%+v", hooks.Retries)
		}
	})

	t.Run("retryable", func(t *testing.T) {
		hooks := &spyHooks{}
		err := executeWrite(context.Background(), BaseDeps{
			Runner: spyTxRunner{},
			Hooks:  hooks,
		}, "aggregate.test.retry", func(_ dbctx.Context) error {
			return errors.New("database is locked")
		})
		if !domainagg.IsCode(err, domainagg.CodeSettlementFailed) {
			t.Fatalf("expected settlement_failed code, got=%v", err)
		}
		if len(hooks.Retries) != 1 || hooks.Retries[0] != "aggregate.test.retry" {
			t.Fatalf("retry hooks: %+v", hooks.Retries)
		}
		if len(hooks.Conflicts) != 0 {
			t.Fatalf("conflict hooks should be empty, got=%+v", hooks.Conflicts)
		}
		if len(hooks.Operations) != 1 || hooks.Operations[0].Status != string(domainagg.CodeSettlementFailed) {
			t.Fatalf("unexpected op status: %+v", hooks.Operations)
		}
	})
}

func TestOutcomeStatus(t *testing.T) {
	if got := (Outcome{}).Status(); got != "success" {
		t.Fatalf("nil status: want=success got=%s", got)
	}
	if got := (Outcome{Err: errors.New("plain")}).Status(); got != "failure" {
		t.Fatalf("plain status: got=%s", got)
	}
	if got := (Outcome{Err: MapError("op", ValidationError("x"))}).Status(); got != string(domainagg.CodeInvalidArgument) {
		t.Fatalf("validation status: got=%s", got)
	}
}

type spyTxRunner struct{}

func (spyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(dbctx.Context{Ctx: ctx})
}

type spyHooks struct {
	Operations []spyOperation
	Conflicts  []string
	Retries    []string
}

type spyOperation struct {
	Name   string
	Status string
}

func (h *spyHooks) Observe(o Outcome) {
	h.Operations = append(h.Operations, spyOperation{Name: o.Op, Status: o.Status()})
	if o.Conflict {
		h.Conflicts = append(h.Conflicts, o.Op)
	}
	if o.Retry {
		h.Retries = append(h.Retries, o.Op)
	}
}
