package rest

import (
	"net/http"

	"github.com/dmitrijs2005/rentals/internal/logging"
	"github.com/gorilla/mux"
)

type route struct {
	method  string
	path    string
	public  bool
	handler func(*Handlers, http.ResponseWriter, *http.Request)
}

// routes returns the full HTTP surface. Entries marked public form the
// gate's allow-list.
func routes() []route {
	return []route{
		{http.MethodPost, "/api/auth/register", true, (*Handlers).register},
		{http.MethodPost, "/api/auth/login", true, (*Handlers).login},
		{http.MethodGet, "/api/auth/me", false, (*Handlers).me},
		{http.MethodGet, "/api/user/{id}", false, (*Handlers).getUser},
		{http.MethodGet, "/api/rentals", false, (*Handlers).listRentals},
		{http.MethodGet, "/api/rentals/{id}", false, (*Handlers).getRental},
		{http.MethodPost, "/api/rentals", false, (*Handlers).createRental},
		{http.MethodPut, "/api/rentals/{id}", false, (*Handlers).updateRental},
		{http.MethodPost, "/api/messages", false, (*Handlers).sendMessage},
		{http.MethodGet, "/healthz", true, (*Handlers).healthz},
		{http.MethodGet, "/metrics", true, (*Handlers).metrics},
		{http.MethodGet, "/api/docs", true, (*Handlers).docs},
	}
}

// PublicEndpoints returns the allow-list derived from the route table.
func PublicEndpoints() []Endpoint {
	var out []Endpoint
	for _, rt := range routes() {
		if rt.public {
			out = append(out, Endpoint{Method: rt.method, Path: rt.path})
		}
	}
	return out
}

func (h *Handlers) docs(w http.ResponseWriter, _ *http.Request) {
	table := routes()
	out := make([]routeDoc, 0, len(table))
	for _, rt := range table {
		out = append(out, routeDoc{Method: rt.method, Path: rt.path, Public: rt.public})
	}
	writeJSON(w, http.StatusOK, map[string]any{"routes": out})
}

// NewRouter assembles the full handler: request id, access log and panic
// recovery around the authorization gate, which in turn fronts the mux
// router.
func NewRouter(h *Handlers, verifier TokenVerifier, metrics *Metrics, logger logging.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	h.metricsHandler = metrics.Handler()
	for _, rt := range routes() {
		r.HandleFunc(rt.path, bind(h, rt.handler)).Methods(rt.method)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	gate := NewGate(verifier, logger, metrics, PublicEndpoints())

	return Chain(
		RequestIDMiddleware,
		LoggingMiddleware(logger),
		RecoveryMiddleware(logger),
		gate.Middleware,
	)(r)
}

func bind(h *Handlers, fn func(*Handlers, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { fn(h, w, r) }
}
