package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown identity and a wrong
	// password at login; callers must not be able to tell them apart.
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrIdentityAlreadyExists = errors.New("identity already exists")
	ErrIdentityNotFound      = errors.New("identity not found")

	// Token verification failures. They are collapsed to a single 401 at the
	// HTTP boundary and only kept apart for logging.
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	ErrMissingSigningKey = errors.New("signing key is not configured")
)

// Kind names a token verification error for log lines.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	default:
		return "unknown"
	}
}
