package middleware

import (
	"context"

	"github.com/sparrowapp-dev/openfeedback-sub000/internal/application/tenant"
)

type contextKey string

const resolvedContextKey contextKey = "resolved"

// WithResolved injects the resolved request context.
func WithResolved(ctx context.Context, rc *tenant.Context) context.Context {
	return context.WithValue(ctx, resolvedContextKey, rc)
}

// ResolvedFromContext returns the resolved request context, or nil.
func ResolvedFromContext(ctx context.Context) *tenant.Context {
	v := ctx.Value(resolvedContextKey)
	if v == nil {
		return nil
	}
	rc, _ := v.(*tenant.Context)
	return rc
}
