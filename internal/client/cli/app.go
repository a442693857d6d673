package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/rentals/internal/client/api"
	"github.com/dmitrijs2005/rentals/internal/client/config"
)

// ErrUsage is returned for an unknown or missing sub-command.
var ErrUsage = errors.New("usage: client [-s url] [-t token] register|login|me")

// API is the part of api.Client the commands use.
type API interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*api.User, error)
}

type App struct {
	config *config.Config
	api    API
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, a API, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: a, reader: bufio.NewReader(in), out: out}
}

// Run executes the sub-command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "me":
		return a.Me(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. Token:")
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login successful. Token:")
	fmt.Fprintln(a.out, token)
	return nil
}

// Me prints the profile of the configured token.
func (a *App) Me(ctx context.Context) error {
	if a.config.Token == "" {
		return errors.New("no token: pass -t or set RENTALS_TOKEN")
	}

	u, err := a.api.Me(ctx, a.config.Token)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:      %d\nname:    %s\nemail:   %s\ncreated: %s\n",
		u.ID, u.Name, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
