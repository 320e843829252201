package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/toptracks/internal/formatter"
	"github.com/desertthunder/toptracks/internal/shared"
	"github.com/desertthunder/toptracks/internal/viewer"
	"github.com/urfave/cli/v3"
)

// Tracks reads a token from --url or --token, fetches the top tracks once and prints them.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.String("url")
	token := cmd.String("token")

	if rawURL == "" && token == "" {
		return fmt.Errorf("%w: one of --url or --token is required", shared.ErrMissingArgument)
	}
	if rawURL != "" && token != "" {
		return fmt.Errorf("%w: --url and --token are mutually exclusive", shared.ErrInvalidArgument)
	}

	v := viewer.New(r.service, r.logger)
	if rawURL != "" {
		v.ExtractToken(rawURL)
	} else {
		v.SetToken(token)
	}

	if !v.Snapshot().HasToken() {
		return fmt.Errorf("%w: no access_token found", shared.ErrNotAuthenticated)
	}

	v.FetchTopTracks(ctx)
	tracks := v.Snapshot().Tracks
	r.logger.Debug("tracks ready", "count", len(tracks))

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(cmd.String("format"), tracks, path); err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %d tracks to %s\n", len(tracks), path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(v.View().Cards, cmd.Bool("pretty"))
	}

	data, err := formatter.Export(cmd.String("format"), tracks)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}
