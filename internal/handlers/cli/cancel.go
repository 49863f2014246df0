package cli

import (
	"context"

	"github.com/gabapcia/landpay/internal/pkg/logger"
	"github.com/gabapcia/landpay/internal/reconciler"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

// cancelTransactionCommand returns a CLI command that cancels a pending
// transaction on the installment contract.
//
// Usage example:
//
//	landpay cancel --transaction-id 7f6b9f2e-...
func cancelTransactionCommand(rec reconciler.Service) *cli.Command {
	return &cli.Command{
		Name:        "cancel",
		Description: "Cancel a pending transaction on the installment contract.",
		Usage:       "Submits the on-chain cancellation and marks the ledger record Cancelled.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "transaction-id",
				Usage:    "Ledger transaction id to cancel",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := uuid.Parse(c.String("transaction-id"))
			if err != nil {
				return err
			}

			cancellation, err := rec.CancelTransaction(ctx, id)
			if err != nil {
				return err
			}

			logger.Info(ctx, "transaction cancelled",
				"transactionId", cancellation.TransactionID,
				"txHash", cancellation.TxHash,
			)
			return nil
		},
	}
}
