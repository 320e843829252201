package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/toptracks/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Warn("log in first: run `toptracks auth url --open` and pass the redirect URL with --url")
		}
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "toptracks",
		Usage:   "Log in to Spotify and browse your top tracks",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default: $XDG_CONFIG_HOME/toptracks/config.toml)",
			},
		},
		Before:   r.Setup,
		Commands: r.register(),
	}
}
