package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/gabapcia/landpay/internal/reconciler"

	"github.com/google/uuid"
)

// reconcilerKeyPrefix is the Redis key namespace used for reconciliation
// leases. All keys will be prefixed with this value.
const reconcilerKeyPrefix = "reconciler"

// txLockKey builds the Redis key holding the reconciliation lease for a
// given transaction.
func txLockKey(transactionID uuid.UUID) string {
	return fmt.Sprintf("%s:txlock:%s", reconcilerKeyPrefix, transactionID)
}

// AcquireTxLock claims the reconciliation lease for the given transaction by
// setting the lease key only if it does not exist yet. The lease carries a
// TTL so a crashed holder cannot block the transaction forever.
//
// Returns:
//   - nil if the lease was acquired.
//   - reconciler.ErrPaymentInProgress if another attempt holds the lease.
//   - any other error if the Redis operation fails.
func (s *client) AcquireTxLock(ctx context.Context, transactionID uuid.UUID, ttl time.Duration) error {
	ok, err := s.conn.SetNX(ctx, txLockKey(transactionID), "", ttl).Result()
	if err != nil {
		return err
	}

	if !ok {
		return reconciler.ErrPaymentInProgress
	}

	return nil
}

// ReleaseTxLock releases the reconciliation lease for the given transaction.
// Releasing an expired or unheld lease is a no-op.
func (s *client) ReleaseTxLock(ctx context.Context, transactionID uuid.UUID) error {
	return s.conn.Del(ctx, txLockKey(transactionID)).Err()
}

// Ensure the client satisfies the TxLocker interface at compile time.
var _ reconciler.TxLocker = new(client)
