package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/rentals/internal/server"
	"github.com/dmitrijs2005/rentals/internal/server/auth"
	"github.com/dmitrijs2005/rentals/internal/server/config"
)

// configErrorMessage is the fatal line printed when the config cannot be
// loaded.
func configErrorMessage(err error) string {
	if errors.Is(err, auth.ErrMissingSigningKey) {
		return fmt.Sprintf("refusing to start: %v (set RENTALS_SECRET_KEY or -s)", err)
	}
	return fmt.Sprintf("config: %v", err)
}

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(configErrorMessage(err))
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
