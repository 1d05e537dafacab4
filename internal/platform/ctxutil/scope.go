package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

type scopeKey struct{}

// Scope is the per-request state middleware fills in as a request moves
// through the chain. Trace fields are set first, the caller profile after
// authentication.
type Scope struct {
	TraceID   string
	RequestID string

	ProfileID uuid.UUID
	Profile   *ledger.Profile
}

// Authenticated reports whether a caller profile has been resolved.
func (s *Scope) Authenticated() bool {
	return s != nil && s.ProfileID != uuid.Nil
}

func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

func ScopeFrom(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	if s, ok := ctx.Value(scopeKey{}).(*Scope); ok {
		return s
	}
	return nil
}

// EnsureScope returns the scope already on ctx, or attaches a new one.
func EnsureScope(ctx context.Context) (context.Context, *Scope) {
	if s := ScopeFrom(ctx); s != nil {
		return ctx, s
	}
	s := &Scope{}
	return WithScope(ctx, s), s
}
