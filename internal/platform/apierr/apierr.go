package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

var statusByCode = map[domainagg.ErrorCode]int{
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

// StatusFor returns the HTTP status for a ledger error code; unknown codes are 500.
func StatusFor(code domainagg.ErrorCode) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// From converts err into an API error, keeping an existing *Error as is.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	code := domainagg.CodeOf(err)
	if code == "" {
		return New(http.StatusInternalServerError, "internal", err)
	}
	return New(StatusFor(code), string(code), err)
}
