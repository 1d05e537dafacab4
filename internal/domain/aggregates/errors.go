package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode names why a ledger operation did not happen.
type ErrorCode string

// Rejections: the request was understood and refused by a ledger rule.
const (
	CodeNotFound           ErrorCode = "not_found"
	CodeAlreadySettled     ErrorCode = "already_settled"
	CodeInsufficientFunds  ErrorCode = "insufficient_funds"
	CodeMissingAmount      ErrorCode = "missing_amount"
	CodeNoOutstandingDebt  ErrorCode = "no_outstanding_debt"
	CodeDepositCapExceeded ErrorCode = "deposit_cap_exceeded"
	CodeInvalidArgument    ErrorCode = "invalid_argument"
)

// Failures: the ledger could not complete the request.
const (
	CodeSettlementFailed ErrorCode = "settlement_failed"
	CodeStoreFailure     ErrorCode = "store_failure"
)

// IsRejection reports whether the code is a business refusal whose message is
// safe to show to the caller.
func (c ErrorCode) IsRejection() bool {
	switch c {
	case CodeSettlementFailed, CodeStoreFailure, "":
		return false
	}
	return true
}

// Sentinels for errors.Is; an *Error matches when the codes are equal.
var (
	ErrNotFound           = &Error{Code: CodeNotFound}
	ErrAlreadySettled     = &Error{Code: CodeAlreadySettled}
	ErrInsufficientFunds  = &Error{Code: CodeInsufficientFunds}
	ErrMissingAmount      = &Error{Code: CodeMissingAmount}
	ErrNoOutstandingDebt  = &Error{Code: CodeNoOutstandingDebt}
	ErrDepositCapExceeded = &Error{Code: CodeDepositCapExceeded}
	ErrSettlementFailed   = &Error{Code: CodeSettlementFailed}
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if len(parts) == 0 {
		return string(e.Code)
	}
	return fmt.Sprintf("%s (%s)", strings.Join(parts, ": "), e.Code)
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t.Code == e.Code
}

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap tags err with code, reusing its text as the message. Wrap(nil) is nil.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
