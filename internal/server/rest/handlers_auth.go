package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/rentals/internal/server/auth"
)

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, err := h.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "register failed", err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.Logger.Info(r.Context(), "login rejected", "request_id", RequestIDFrom(r.Context()))
		}
		h.fail(w, r, "login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	user, err := h.Auth.CurrentIdentity(r.Context(), p)
	if err != nil {
		h.fail(w, r, "me failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// fail writes the mapped error response and logs anything that became a 500.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := writeServiceError(w, err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error(r.Context(), msg, "error", err, "request_id", RequestIDFrom(r.Context()))
	}
}
