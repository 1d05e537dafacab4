package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(CodeNotFound, "ledger.pay_job", "job not found", nil)
	if got := err.Error(); got != "ledger.pay_job: job not found (not_found)" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := NewError(CodeStoreFailure, "", "", nil).Error(); got != "store_failure" {
		t.Fatalf("unexpected bare message: %q", got)
	}
}

func TestCodeOfThroughWrapping(t *testing.T) {
	base := NewError(CodeDepositCapExceeded, "ledger.deposit", "over cap", nil)
	wrapped := fmt.Errorf("handler: %w", base)
	if !IsCode(wrapped, CodeDepositCapExceeded) {
		t.Fatalf("expected cap code through fmt wrapping")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("plain errors carry no code")
	}
	if Wrap(CodeSettlementFailed, "op", nil) != nil {
		t.Fatalf("wrapping nil must stay nil")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeSettlementFailed, "ledger.settle", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost")
	}
}

func TestContractShape(t *testing.T) {
	if !SettlementAggregateContract.Atomic() {
		t.Fatalf("settlement must be atomic")
	}
	if DepositAggregateContract.Atomic() {
		t.Fatalf("deposit is a single write")
	}
	got := SettlementAggregateContract.Tables()
	want := []string{"job", "profile", "contract"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("tables: want=%v got=%v", want, got)
	}
}

func TestSentinelMatching(t *testing.T) {
	err := fmt.Errorf("pay: %w", NewError(CodeAlreadySettled, "ledger.settle", "job already paid", nil))
	if !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("expected sentinel match by code")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("different codes must not match")
	}
}

func TestRejectionCodes(t *testing.T) {
	for _, c := range []ErrorCode{CodeNotFound, CodeAlreadySettled, CodeInsufficientFunds, CodeMissingAmount, CodeNoOutstandingDebt, CodeDepositCapExceeded, CodeInvalidArgument} {
		if !c.IsRejection() {
			t.Fatalf("%s should be a rejection", c)
		}
	}
	for _, c := range []ErrorCode{CodeSettlementFailed, CodeStoreFailure, ""} {
		if c.IsRejection() {
			t.Fatalf("%q should not be a rejection", c)
		}
	}
}
