package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/toptracks/internal/server"
	"github.com/desertthunder/toptracks/internal/shared"
	"github.com/desertthunder/toptracks/internal/viewer"
	"github.com/desertthunder/toptracks/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web viewer until interrupted.
//
// Spotify redirects to redirect_uri, so the server should listen where that URI points.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	redirectAddr, callbackPath, err := r.config.Credentials.Spotify.RedirectTarget()
	if err != nil {
		return err
	}

	addr := r.config.Server.Addr()
	if addr != redirectAddr {
		r.logger.Warn("server address differs from redirect_uri", "addr", addr, "redirect_uri", r.config.Credentials.Spotify.RedirectURI)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: cannot listen on %s: %v", shared.ErrServiceUnavailable, addr, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.serve(ctx, ln, callbackPath)
}

func (r *Runner) serve(ctx context.Context, ln net.Listener, callbackPath string) error {
	app := web.New(viewer.New(r.service, r.logger), r.logger, callbackPath)
	srv := server.New(ln.Addr().String(), app.Handler())

	r.logger.Info("serving top tracks", "url", "http://"+ln.Addr().String()+callbackPath)
	if err := server.Serve(ctx, srv, ln); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	r.logger.Info("server stopped")
	return nil
}
