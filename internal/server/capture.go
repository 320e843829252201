package server

import (
	"context"
	"fmt"
	"net"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/toptracks/internal/shared"
)

// CaptureFragment runs a temporary [FragmentHandler] server on addr and waits for one redirect fragment.
//
// ready is called with the bound address once the listener is up; that is where the caller sends the user to the
// provider. The server is shut down before returning.
func CaptureFragment(ctx context.Context, addr, callbackPath string, logger *log.Logger, ready func(addr string) error) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("%w: cannot listen on %s: %v", shared.ErrServiceUnavailable, addr, err)
	}

	logger = shared.WithLogger(logger, "component", "capture")
	handler := NewFragmentHandler(callbackPath)
	router := NewBasicRouter()
	router.Use(RequestLogger(logger))
	router.Handler(handler)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- Serve(ctx, New(ln.Addr().String(), router), ln) }()

	if err := ready(ln.Addr().String()); err != nil {
		cancel()
		<-errCh
		return "", err
	}

	select {
	case fragment := <-handler.Result():
		cancel()
		if err := <-errCh; err != nil {
			logger.Warn("capture server shutdown", "err", err)
		}
		return fragment, nil
	case err := <-errCh:
		if err == nil {
			err = ctx.Err()
		}
		return "", err
	}
}
