package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
)

func TestFromMapsLedgerCodes(t *testing.T) {
	cases := map[domainagg.ErrorCode]int{
		domainagg.CodeNotFound:           http.StatusNotFound,
		domainagg.CodeAlreadySettled:     http.StatusConflict,
		domainagg.CodeInsufficientFunds:  http.StatusPaymentRequired,
		domainagg.CodeMissingAmount:      http.StatusBadRequest,
		domainagg.CodeNoOutstandingDebt:  http.StatusUnprocessableEntity,
		domainagg.CodeDepositCapExceeded: http.StatusUnprocessableEntity,
		domainagg.CodeInvalidArgument:    http.StatusBadRequest,
		domainagg.CodeSettlementFailed:   http.StatusInternalServerError,
		domainagg.CodeStoreFailure:       http.StatusServiceUnavailable,
	}
	for code, want := range cases {
		err := fmt.Errorf("handler: %w", domainagg.NewError(code, "op", "msg", nil))
		got := From(err)
		if got.Status != want || got.Code != string(code) {
			t.Fatalf("%s: want=%d got=%d/%s", code, want, got.Status, got.Code)
		}
	}
}

func TestFromUnknownAndExisting(t *testing.T) {
	if From(nil) != nil {
		t.Fatalf("nil error should map to nil")
	}
	if got := From(errors.New("boom")); got.Status != http.StatusInternalServerError || got.Code != "internal" {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	existing := New(http.StatusUnauthorized, "unauthorized", nil)
	if got := From(existing); got != existing {
		t.Fatalf("existing api error should pass through")
	}
}
