package reconciler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrPaymentInProgress indicates that another reconciliation attempt currently
// holds the submission lock for the same transaction.
var ErrPaymentInProgress = errors.New("payment already in progress")

// TxLocker serializes reconciliation attempts per transaction id so that two
// concurrent calls can never both reach chain submission. It is the first line
// of defense; the write-once transaction hash in the ledger is the second.
//
// Implementations are typically backed by shared storage (e.g. Redis) so the
// guarantee holds across replicas. Leases are time-bound to avoid deadlocks
// when a holder crashes.
type TxLocker interface {
	// AcquireTxLock claims the reconciliation lease for the given transaction.
	// Returns ErrPaymentInProgress when the lease is already held.
	AcquireTxLock(ctx context.Context, transactionID uuid.UUID, ttl time.Duration) error

	// ReleaseTxLock releases a previously acquired lease. Releasing an expired
	// or unheld lease is a no-op.
	ReleaseTxLock(ctx context.Context, transactionID uuid.UUID) error
}

// nopTxLocker is a no-op TxLocker that always grants the lease. It is intended
// only for single-instance development setups where the ledger's write-once
// hash guard alone is acceptable.
type nopTxLocker struct{}

// Compile-time check that nopTxLocker satisfies the TxLocker interface.
var _ TxLocker = (*nopTxLocker)(nil)

func (nopTxLocker) AcquireTxLock(ctx context.Context, transactionID uuid.UUID, ttl time.Duration) error {
	return nil
}

func (nopTxLocker) ReleaseTxLock(ctx context.Context, transactionID uuid.UUID) error {
	return nil
}
