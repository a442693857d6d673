package rest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/logging"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
)

// TokenVerifier is the part of auth.Verifier the gate depends on.
type TokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// Endpoint names a method and an exact path.
type Endpoint struct {
	Method string
	Path   string
}

// Gate decides, per request, whether it may reach the router. It holds no
// per-request state and is safe for concurrent use.
type Gate struct {
	verifier TokenVerifier
	logger   logging.Logger
	metrics  *Metrics
	public   map[Endpoint]struct{}
}

// NewGate builds a gate whose allow-list is public. The list is fixed for
// the lifetime of the gate.
func NewGate(v TokenVerifier, l logging.Logger, m *Metrics, public []Endpoint) *Gate {
	allow := make(map[Endpoint]struct{}, len(public))
	for _, e := range public {
		allow[e] = struct{}{}
	}
	return &Gate{verifier: v, logger: l, metrics: m, public: allow}
}

// IsPublic reports whether the request targets an allow-listed endpoint.
func (g *Gate) IsPublic(r *http.Request) bool {
	_, ok := g.public[Endpoint{Method: r.Method, Path: r.URL.Path}]
	return ok
}

// Middleware passes allow-listed requests through untouched. Any other
// request needs a bearer token that verifies; the resulting Principal is put
// in the request context. Every failure is the same 401.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.IsPublic(r) {
			g.count("public")
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			g.count("missing")
			g.reject(w)
			return
		}

		p, err := g.verifier.Verify(token)
		if err != nil {
			kind := auth.Kind(err)
			g.count(kind)
			g.logger.Warn(r.Context(), "token rejected",
				"kind", kind,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestIDFrom(r.Context()),
			)
			g.reject(w)
			return
		}

		g.count("authenticated")
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	})
}

func (g *Gate) count(outcome string) {
	if g.metrics != nil {
		g.metrics.GateDecisionsTotal.WithLabelValues(outcome).Inc()
	}
}

func (g *Gate) reject(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, msgUnauthorized)
}

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(common.AuthorizationHeader)
	if len(h) < len(common.BearerPrefix) || !strings.EqualFold(h[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(common.BearerPrefix):])
	return token, token != ""
}
