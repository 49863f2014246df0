// Package ethereum implements the reconciler.Chain and
// verification.ChainInspector interfaces for Ethereum-compatible nodes.
// It communicates with the node via a JSON-RPC client and owns gas price
// and nonce management for submitted transactions.
package ethereum

import (
	"time"

	"github.com/gabapcia/landpay/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/landpay/internal/reconciler"
	"github.com/gabapcia/landpay/internal/verification"
)

const (
	// defaultReceiptPollInterval defines how often the client polls for a
	// transaction receipt while it is still pending.
	defaultReceiptPollInterval = 2 * time.Second

	// defaultReceiptTimeout defines the maximum time the client waits for a
	// submitted transaction to be mined before giving up.
	defaultReceiptTimeout = 90 * time.Second

	// defaultGasLimit defines the gas limit attached to submitted transactions.
	defaultGasLimit = 2_000_000
)

// client implements the blockchain adapter for Ethereum-based networks.
// It communicates with an Ethereum node via a JSON-RPC client.
type client struct {
	conn jsonrpc.Client // Underlying JSON-RPC client used to interact with the Ethereum node

	account         string // Address the node signs and sends transactions from
	contractAddress string // Address of the installment payment contract

	receiptPollInterval time.Duration // Interval between receipt polling attempts
	receiptTimeout      time.Duration // Maximum time to wait for a receipt
	gasLimit            uint64        // Gas limit attached to submitted transactions
}

// Ensure client implements the consumed interfaces at compile time.
var (
	_ reconciler.Chain            = (*client)(nil)
	_ verification.ChainInspector = (*client)(nil)
)

// Option defines a functional option used to customize the Ethereum client.
type Option func(*client)

// WithReceiptPollInterval configures how often the client polls for a
// transaction receipt while waiting for a submission to be mined.
//
// Default: 2 seconds.
func WithReceiptPollInterval(d time.Duration) Option {
	return func(c *client) {
		c.receiptPollInterval = d
	}
}

// WithReceiptTimeout configures the maximum time the client waits for a
// submitted transaction to be mined before returning ErrReceiptTimeout.
//
// Default: 90 seconds.
func WithReceiptTimeout(d time.Duration) Option {
	return func(c *client) {
		c.receiptTimeout = d
	}
}

// WithGasLimit configures the gas limit attached to submitted transactions.
//
// Default: 2,000,000.
func WithGasLimit(limit uint64) Option {
	return func(c *client) {
		c.gasLimit = limit
	}
}

// NewClient creates a new Ethereum blockchain client using the provided
// JSON-RPC connection. Transactions are sent from the given account to the
// given contract address. Gas price and nonce are fetched from the node on
// every submission.
func NewClient(conn jsonrpc.Client, account, contractAddress string, opts ...Option) *client {
	c := &client{
		conn:                conn,
		account:             account,
		contractAddress:     contractAddress,
		receiptPollInterval: defaultReceiptPollInterval,
		receiptTimeout:      defaultReceiptTimeout,
		gasLimit:            defaultGasLimit,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ContractAddress returns the address of the installment payment contract
// this client submits transactions to.
func (c *client) ContractAddress() string {
	return c.contractAddress
}
