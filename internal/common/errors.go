// Package common defines sentinel errors and constants shared by the
// repositories, services and transports. Callers match errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorForbidden  = errors.New("forbidden")
	ErrorValidation = errors.New("validation error")

	// Object storage errors.
	ErrorUploadFailed = errors.New("upload failed")
)
