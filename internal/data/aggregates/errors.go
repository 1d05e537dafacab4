package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrConflict indicates a compare-and-set miss or other concurrent modification.
	ErrConflict = errors.New("aggregate conflict")
	// ErrRetryable indicates a transient store failure.
	ErrRetryable = errors.New("aggregate retryable")
)

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// RetryableError tags an error as retryable failure.
func RetryableError(msg string) error {
	return errors.Join(ErrRetryable, errors.New(strings.TrimSpace(msg)))
}

// MapError maps failures of an atomic write into ledger error codes.
// Anything that is not already a ledger error becomes CodeSettlementFailed.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return err
	}
	if errors.Is(err, ErrValidation) {
		return domainagg.Wrap(domainagg.CodeInvalidArgument, op, err)
	}
	return domainagg.Wrap(domainagg.CodeSettlementFailed, op, err)
}

// MapReadError maps failures of read-only store access into ledger error codes.
func MapReadError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	}
	return domainagg.Wrap(domainagg.CodeStoreFailure, op, err)
}

type failureClass int

const (
	failureOther failureClass = iota
	failureConflict
	failureRetryable
)

// classify inspects the underlying cause for hook accounting only; it never changes the returned code.
func classify(err error) failureClass {
	if err == nil {
		return failureOther
	}
	switch {
	case errors.Is(err, ErrConflict):
		return failureConflict
	case errors.Is(err, ErrRetryable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return failureRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505", "23514":
			return failureConflict // unique_violation, check_violation
		case "40001", "40P01", "55P03":
			return failureRetryable // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "constraint failed"):
		return failureConflict
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "timeout"):
		return failureRetryable
	default:
		return failureOther
	}
}
