package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/rentals/internal/common"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
)

var errTrailingData = errors.New("unexpected data after JSON body")

const (
	msgUnauthorized       = "unauthorized"
	msgInvalidCredentials = "invalid credentials"
	msgIdentityExists     = "identity already exists"
	msgInternal           = "internal server error"
	msgInvalidBody        = "invalid request body"
)

// writeServiceError maps a service error to a status and a terse message.
// Anything unrecognised is a 500 and is logged by the caller.
func writeServiceError(w http.ResponseWriter, err error) (status int) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		writeError(w, status, msgInvalidCredentials)
	case errors.Is(err, auth.ErrIdentityNotFound):
		status = http.StatusUnauthorized
		writeError(w, status, msgUnauthorized)
	case errors.Is(err, auth.ErrIdentityAlreadyExists):
		status = http.StatusBadRequest
		writeError(w, status, msgIdentityExists)
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusBadRequest
		writeError(w, status, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
		writeError(w, status, "not found")
	case errors.Is(err, common.ErrorForbidden):
		status = http.StatusForbidden
		writeError(w, status, "forbidden")
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads this
		status = 499
		w.WriteHeader(status)
	default:
		status = http.StatusInternalServerError
		writeError(w, status, msgInternal)
	}
	return status
}
