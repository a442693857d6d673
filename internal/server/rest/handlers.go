package rest

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/rentals/internal/logging"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
	"github.com/dmitrijs2005/rentals/internal/server/models"
	"github.com/dmitrijs2005/rentals/internal/server/services"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentIdentity(ctx context.Context, p auth.Principal) (*models.User, error)
}

type UserService interface {
	Get(ctx context.Context, id int64) (*models.User, error)
}

type RentalService interface {
	List(ctx context.Context) ([]*models.Rental, error)
	Get(ctx context.Context, id int64) (*models.Rental, error)
	Create(ctx context.Context, p auth.Principal, in services.RentalInput, pic services.Picture) (*models.Rental, error)
	Update(ctx context.Context, p auth.Principal, id int64, in services.RentalInput) (*models.Rental, error)
}

type MessageService interface {
	Send(ctx context.Context, in services.MessageInput) (*models.Message, error)
}

// Pinger reports whether a backing dependency is reachable; *sql.DB
// satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups the HTTP handlers and what they call into.
type Handlers struct {
	Auth     AuthService
	Users    UserService
	Rentals  RentalService
	Messages MessageService
	Health   Pinger
	Logger   logging.Logger

	// MaxUploadBytes caps the size of a multipart rental form.
	MaxUploadBytes int64

	metricsHandler http.Handler
}

// principal returns the caller resolved by the gate. Handlers behind the gate
// always have one.
func principal(ctx context.Context) (auth.Principal, bool) {
	return auth.PrincipalFrom(ctx)
}
