package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/gabapcia/landpay/internal/reconciler"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the landpay CLI application.
//
// It registers all available commands, including:
//
//   - `serve`: Starts the HTTP payment API.
//   - `cancel`: Cancels a pending transaction on the contract.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - addr: Address the HTTP server listens on.
//   - handler: The HTTP handler exposing the payment API.
//   - rec: The reconciler service implementation used by the cancel command.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, addr string, handler http.Handler, rec reconciler.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "landpay",
		Description:           "Command-line interface for running and operating the landpay reconciliation service.",
		Usage:                 "landpay [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(addr, handler),
			cancelTransactionCommand(rec),
		},
	}

	return app.Run(ctx, os.Args)
}
