package reconciler

import (
	"context"

	"github.com/gabapcia/landpay/internal/ledger"

	"github.com/google/uuid"
)

// LedgerStorage is the slice of the ledger persistence layer the reconciler
// depends on. All mutations must be conditional and atomic: concurrent
// readers never observe a partially written record.
type LedgerStorage interface {
	// GetTransaction loads a transaction by id. Returns ledger.ErrNotFound
	// when absent.
	GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error)

	// SetTransactionStatus moves a transaction from one status to another. The
	// update applies only while the stored status equals from; otherwise it
	// fails with ledger.ErrInvalidStatusTransition.
	SetTransactionStatus(ctx context.Context, id uuid.UUID, from, to ledger.Status) error

	// SetChainRefs records the contract address and on-chain transaction hash.
	// The hash is write-once: a second call for the same transaction fails
	// with ledger.ErrChainRefsAlreadySet.
	SetChainRefs(ctx context.Context, id uuid.UUID, contractAddress, txHash string) error
}
