package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/rentals/internal/client/api"
	"github.com/dmitrijs2005/rentals/internal/client/cli"
	"github.com/dmitrijs2005/rentals/internal/client/config"
)

func main() {

	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(cfg, api.NewClient(cfg.ServerURL, cfg.Timeout), os.Stdin, os.Stdout)
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}

}
