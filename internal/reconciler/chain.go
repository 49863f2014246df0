package reconciler

import (
	"context"
	"errors"
	"math/big"
)

var (
	// ErrChainUnavailable indicates a network or RPC failure while talking to
	// the blockchain node. It is retryable with backoff.
	ErrChainUnavailable = errors.New("chain unavailable")

	// ErrChainProtocol indicates a malformed or un-decodable response from the
	// blockchain node. It is not retryable without investigation.
	ErrChainProtocol = errors.New("chain protocol error")

	// ErrReceiptTimeout indicates that receipt polling exceeded its deadline
	// while the submitted transaction was still unmined.
	ErrReceiptTimeout = errors.New("receipt await timed out")
)

// Receipt is the chain-returned confirmation record for a submitted
// transaction.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	Succeeded   bool // on-chain execution status
}

// Chain is the blockchain adapter contract consumed by the reconciler. The
// adapter owns gas price and nonce management: callers never supply either.
//
// Every submission mutates remote chain state and is irreversible once mined.
type Chain interface {
	// ContractAddress returns the hex address of the installment contract all
	// submissions are sent to.
	ContractAddress() string

	// InstallmentAmount fetches the expected installment value, in the chain's
	// smallest unit, directly from the contract. The value must be read fresh
	// on every call, never cached.
	InstallmentAmount(ctx context.Context) (*big.Int, error)

	// SubmitTransfer submits a value transfer of the given amount (smallest
	// unit) to the installment contract and returns the transaction hash.
	SubmitTransfer(ctx context.Context, value *big.Int) (string, error)

	// SubmitCancellation submits a zero-value cancellation call for the given
	// correlation code and returns the transaction hash.
	SubmitCancellation(ctx context.Context, uniqueCode string) (string, error)

	// AwaitReceipt blocks until a receipt exists for txHash or the adapter's
	// polling deadline elapses, in which case it returns ErrReceiptTimeout.
	AwaitReceipt(ctx context.Context, txHash string) (Receipt, error)
}
