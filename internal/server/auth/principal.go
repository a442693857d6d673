package auth

import "context"

// Principal is the identity a request has proven control of. It lives only
// in the request context and is never persisted.
type Principal struct {
	Identity string
}

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the Principal attached by the authorization gate.
// ok is false on allow-listed routes.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
