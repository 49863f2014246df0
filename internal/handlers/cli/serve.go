package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabapcia/landpay/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 30 * time.Second

// serveCommand returns a CLI command that starts the HTTP payment API.
//
// Usage example:
//
//	landpay serve
//
// The process runs indefinitely until it receives an interrupt (SIGINT or SIGTERM).
func serveCommand(addr string, handler http.Handler) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Starts the HTTP server exposing the payment reconciliation API.",
		Usage:       "Runs the payment API. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			srv := &http.Server{
				Addr:    addr,
				Handler: handler,
			}

			serveErr := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()

			logger.Info(ctx, "http server started", "addr", addr)

			select {
			case err := <-serveErr:
				return err
			case <-quit:
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}
}
