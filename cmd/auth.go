package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/toptracks/internal/viewer"
	"github.com/urfave/cli/v3"
)

// AuthURL prints the authorization URL, or sends the browser there with --open.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	authURL := r.service.AuthURL()

	if !cmd.Bool("open") {
		return r.writePlain("%s\n", authURL)
	}

	if err := viewer.New(r.service, r.logger).Login(r.navigator); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return r.writePlain("✓ Opened %s\n", authURL)
}
