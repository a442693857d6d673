package common

const (
	// AuthorizationHeader carries "Bearer <token>" on every gated request.
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"

	// TokenEnvVar lets the CLI client pick up a token without a flag.
	TokenEnvVar = "RENTALS_TOKEN"
)
