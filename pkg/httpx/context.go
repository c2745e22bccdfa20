package httpx

import (
	"context"

	"github.com/aussiebroadwan/authgate/pkg/jwtx"
)

type ctxKey string

const ctxKeyClaims ctxKey = "claims"

// ContextWithClaims attaches a verified identity to ctx.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, c)
}

// ClaimsFromContext returns the identity attached by AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(jwtx.Claims)
	return c, ok
}
