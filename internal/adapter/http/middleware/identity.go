package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/iho/gowager/internal/usecase"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// AccountContextKey is the context key for the caller's account ID
	AccountContextKey ContextKey = "account_id"

	// AccountIDHeader carries the caller's identity. Identity verification
	// happens upstream at the gateway; this service trusts the header.
	AccountIDHeader = "X-Account-ID"
)

// IdentityMiddleware resolves the calling account and ensures it exists,
// seeding the starting balance on first contact.
type IdentityMiddleware struct {
	accountUC *usecase.AccountUseCase
}

// NewIdentityMiddleware creates a new IdentityMiddleware.
func NewIdentityMiddleware(accountUC *usecase.AccountUseCase) *IdentityMiddleware {
	return &IdentityMiddleware{accountUC: accountUC}
}

// Require rejects requests without an account header and puts the account
// ID on the context.
func (m *IdentityMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(AccountIDHeader))
		if id == "" {
			http.Error(w, "missing account header", http.StatusUnauthorized)
			return
		}

		if _, err := m.accountUC.Ensure(r.Context(), id); err != nil {
			http.Error(w, "failed to resolve account", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), AccountContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional puts the account ID on the context when the header is present
// but lets anonymous requests through.
func (m *IdentityMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(AccountIDHeader))
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), AccountContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccountFromContext extracts the calling account ID from context.
func AccountFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AccountContextKey).(string)
	return id, ok
}
