package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/toptracks/internal/server"
	"github.com/desertthunder/toptracks/internal/shared"
	"github.com/desertthunder/toptracks/internal/ui"
	"github.com/desertthunder/toptracks/internal/viewer"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal viewer.
//
// Logging in opens the browser and captures the redirect on the redirect_uri address.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	addr, callbackPath, err := r.config.Credentials.Spotify.RedirectTarget()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.ApplyLogLevel(fileLogger, r.config.Log.Level)
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, ui.Options{
		Viewer:     viewer.New(r.service, r.logger),
		Navigator:  r.navigator,
		Capture:    r.capture(addr, callbackPath),
		Logger:     r.logger,
		InitialURL: cmd.String("url"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// capture adapts [server.CaptureFragment] to the TUI's login hook.
func (r *Runner) capture(addr, callbackPath string) ui.CaptureFunc {
	return func(ctx context.Context, ready func() error) (string, error) {
		return server.CaptureFragment(ctx, addr, callbackPath, r.logger, func(string) error {
			return ready()
		})
	}
}
