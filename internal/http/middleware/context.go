package middlewarex

import "context"

type ctxKey string

const (
	ctxPrincipal ctxKey = "principal"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	TenantID int64
	UserID   int64
	Role     string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok
}

func TenantID(ctx context.Context) (int64, bool) {
	p, ok := PrincipalFrom(ctx)
	return p.TenantID, ok && p.TenantID > 0
}
