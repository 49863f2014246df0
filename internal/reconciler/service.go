// Package reconciler orchestrates payment reconciliation between the
// off-chain ledger and the installment smart contract: submit a transfer,
// await its receipt, and update the ledger consistently with on-chain state.
//
// Two properties drive the design. Submissions are idempotent: once a
// transaction hash is recorded, a retried call replays the stored outcome
// instead of paying twice. And submissions are never orphaned: once a
// transfer is on the wire, receipt tracking continues on a detached context
// even if the caller disconnects.
package reconciler

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/pkg/logger"
	"github.com/gabapcia/landpay/internal/pkg/resilience/retry"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAmountMismatch indicates that the offered amount does not equal the
	// installment the contract currently expects. No chain submission happens.
	ErrAmountMismatch = errors.New("amount does not match the expected installment")

	// ErrAlreadyFinalized indicates that the transaction already reached a
	// terminal status and the requested operation is a no-op.
	ErrAlreadyFinalized = errors.New("transaction already finalized")

	// ErrTransferReverted indicates that the submitted transaction was mined
	// but its on-chain execution failed.
	ErrTransferReverted = errors.New("transfer reverted on chain")
)

// Payment is the outcome of a PayInstallment call.
type Payment struct {
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	TxHash        string
	Status        ledger.Status
	Replayed      bool // true when a previously recorded outcome was returned
}

// Cancellation is the outcome of a CancelTransaction call.
type Cancellation struct {
	TransactionID uuid.UUID
	TxHash        string
	Status        ledger.Status
}

// Service defines the payment reconciliation operations.
type Service interface {
	// PayInstallment validates the offered amount against the installment the
	// contract currently expects, submits the transfer, awaits its receipt,
	// and updates the ledger: Approved on success, Rejected on receipt
	// failure or timeout. If the node becomes unreachable while awaiting the
	// receipt, the record keeps its status and the error surfaces; the
	// submission is not lost.
	//
	// The call is idempotent under retry: when the transaction already has a
	// recorded hash, the stored outcome is returned without resubmitting, and
	// a hash whose receipt was never resolved is resolved on replay.
	PayInstallment(ctx context.Context, transactionID uuid.UUID, amount decimal.Decimal) (Payment, error)

	// CancelTransaction submits an on-chain cancellation for a transaction
	// that is still Pending, awaits the receipt, and marks the ledger record
	// Cancelled on success. On any failure the status is left unchanged and
	// the error surfaces; there is no partial cancellation state.
	CancelTransaction(ctx context.Context, transactionID uuid.UUID) (Cancellation, error)
}

// defaultLockTTL bounds how long a reconciliation lease may be held before a
// crashed holder stops blocking retries. It must exceed the adapter's receipt
// polling deadline.
const defaultLockTTL = 5 * time.Minute

// service is the concrete implementation of the Service interface.
type service struct {
	chain         Chain
	ledgerStorage LedgerStorage
	txLocker      TxLocker

	chainRetry retry.Retry   // backoff for retryable chain failures
	lockTTL    time.Duration // reconciliation lease duration
}

// Compile-time check that *service satisfies the Service interface.
var _ Service = (*service)(nil)

// Option customizes the reconciler service.
type Option func(*service)

// WithTxLocker sets the distributed lock used to serialize reconciliation
// attempts per transaction. Default: a no-op locker.
func WithTxLocker(l TxLocker) Option {
	return func(s *service) {
		s.txLocker = l
	}
}

// WithLockTTL sets the reconciliation lease duration. Default: 5 minutes.
func WithLockTTL(ttl time.Duration) Option {
	return func(s *service) {
		s.lockTTL = ttl
	}
}

// WithChainRetry sets the retry policy applied to retryable chain failures.
// Default: 3 attempts with exponential backoff.
func WithChainRetry(r retry.Retry) Option {
	return func(s *service) {
		s.chainRetry = r
	}
}

// New creates a reconciler service from the chain adapter and ledger storage.
func New(chain Chain, ls LedgerStorage, opts ...Option) *service {
	s := &service{
		chain:         chain,
		ledgerStorage: ls,
		txLocker:      nopTxLocker{},
		lockTTL:       defaultLockTTL,
		chainRetry: retry.New(
			retry.WithRetryIf(func(err error) bool {
				return errors.Is(err, ErrChainUnavailable)
			}),
		),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PayInstallment implements the Service interface.
func (s *service) PayInstallment(ctx context.Context, transactionID uuid.UUID, amount decimal.Decimal) (Payment, error) {
	// Zero is only meaningful on the cancellation path.
	if amount.Sign() <= 0 || !amount.IsInteger() {
		return Payment{}, ledger.ErrInvalidAmount
	}

	if err := s.txLocker.AcquireTxLock(ctx, transactionID, s.lockTTL); err != nil {
		return Payment{}, err
	}
	defer s.releaseTxLock(ctx, transactionID)

	tx, err := s.ledgerStorage.GetTransaction(ctx, transactionID)
	if err != nil {
		return Payment{}, err
	}

	// Idempotent replay: a recorded hash means the transfer is already
	// on-chain. Return the stored outcome instead of paying twice. A hash
	// without a terminal status means an earlier attempt lost track of the
	// receipt; resolve it now instead of resubmitting.
	if tx.Submitted() {
		payment := Payment{
			TransactionID: tx.ID,
			Amount:        tx.Amount,
			TxHash:        tx.SmartContractTxHash,
			Status:        tx.Status,
			Replayed:      true,
		}
		if tx.Finalized() {
			return payment, nil
		}

		status, receiptErr := s.resolveReceipt(context.WithoutCancel(ctx), tx.ID, tx.SmartContractTxHash)
		payment.Status = status
		return payment, receiptErr
	}

	if tx.Finalized() {
		return Payment{}, ErrAlreadyFinalized
	}

	expected, err := s.fetchInstallmentAmount(ctx)
	if err != nil {
		return Payment{}, err
	}

	if amount.BigInt().Cmp(expected) != 0 {
		return Payment{}, ErrAmountMismatch
	}

	txHash, err := s.submitTransfer(ctx, amount)
	if err != nil {
		return Payment{}, err
	}

	// From here on the transfer is irrevocably in flight: detach from the
	// caller's cancellation so the outcome is always tracked to resolution.
	ctx = context.WithoutCancel(ctx)

	if err := s.ledgerStorage.SetChainRefs(ctx, tx.ID, s.chain.ContractAddress(), txHash); err != nil {
		// The transfer is already on-chain; losing the ref log line here is
		// recoverable, losing the receipt resolution is not.
		logger.Error(ctx, "error recording chain refs",
			"transaction.id", tx.ID,
			"transaction.hash", txHash,
			"error", err,
		)
	}

	status, receiptErr := s.resolveReceipt(ctx, tx.ID, txHash)

	payment := Payment{
		TransactionID: tx.ID,
		Amount:        amount,
		TxHash:        txHash,
		Status:        status,
	}
	return payment, receiptErr
}

// CancelTransaction implements the Service interface.
func (s *service) CancelTransaction(ctx context.Context, transactionID uuid.UUID) (Cancellation, error) {
	if err := s.txLocker.AcquireTxLock(ctx, transactionID, s.lockTTL); err != nil {
		return Cancellation{}, err
	}
	defer s.releaseTxLock(ctx, transactionID)

	tx, err := s.ledgerStorage.GetTransaction(ctx, transactionID)
	if err != nil {
		return Cancellation{}, err
	}

	// Cancellation only applies before the transaction reaches a terminal
	// status or has a payment in flight.
	if tx.Status != ledger.StatusPending || tx.Submitted() {
		return Cancellation{}, ErrAlreadyFinalized
	}

	var txHash string
	err = s.chainRetry.Execute(ctx, func() error {
		var submitErr error
		txHash, submitErr = s.chain.SubmitCancellation(ctx, tx.UniqueCode)
		return submitErr
	})
	if err != nil {
		return Cancellation{}, err
	}

	ctx = context.WithoutCancel(ctx)

	receipt, err := s.chain.AwaitReceipt(ctx, txHash)
	if err != nil {
		return Cancellation{}, err
	}
	if !receipt.Succeeded {
		return Cancellation{}, ErrTransferReverted
	}

	if err := s.ledgerStorage.SetTransactionStatus(ctx, tx.ID, ledger.StatusPending, ledger.StatusCancelled); err != nil {
		return Cancellation{}, err
	}

	return Cancellation{
		TransactionID: tx.ID,
		TxHash:        txHash,
		Status:        ledger.StatusCancelled,
	}, nil
}

// fetchInstallmentAmount reads the expected installment from the contract,
// retrying transient node failures. The value is never cached.
func (s *service) fetchInstallmentAmount(ctx context.Context) (expected *big.Int, err error) {
	err = s.chainRetry.Execute(ctx, func() error {
		var fetchErr error
		expected, fetchErr = s.chain.InstallmentAmount(ctx)
		return fetchErr
	})
	return expected, err
}

// submitTransfer submits the value transfer, retrying only while the failure
// is a transport-level ErrChainUnavailable (i.e. the node never accepted the
// transaction).
func (s *service) submitTransfer(ctx context.Context, amount decimal.Decimal) (txHash string, err error) {
	err = s.chainRetry.Execute(ctx, func() error {
		var submitErr error
		txHash, submitErr = s.chain.SubmitTransfer(ctx, amount.BigInt())
		return submitErr
	})
	return txHash, err
}

// resolveReceipt awaits the receipt for a submitted payment and finalizes the
// ledger status accordingly: Approved on on-chain success, Rejected on
// execution failure or polling timeout. Any other await failure leaves the
// status untouched and surfaces the error: the transfer may still be mined,
// and a replayed call resolves the recorded hash once the node answers again.
func (s *service) resolveReceipt(ctx context.Context, transactionID uuid.UUID, txHash string) (ledger.Status, error) {
	receipt, err := s.chain.AwaitReceipt(ctx, txHash)
	if err != nil && !errors.Is(err, ErrReceiptTimeout) {
		return ledger.StatusPending, err
	}

	status, failure := ledger.StatusApproved, error(nil)
	switch {
	case err != nil:
		status, failure = ledger.StatusRejected, err
	case !receipt.Succeeded:
		status, failure = ledger.StatusRejected, ErrTransferReverted
	}

	if err := s.ledgerStorage.SetTransactionStatus(ctx, transactionID, ledger.StatusPending, status); err != nil {
		logger.Error(ctx, "error finalizing transaction status",
			"transaction.id", transactionID,
			"transaction.hash", txHash,
			"status", status,
			"error", err,
		)
		if failure == nil {
			failure = err
		}
	}

	return status, failure
}

// releaseTxLock releases the reconciliation lease on a context detached from
// the caller, so a disconnect cannot leak the lock until its TTL.
func (s *service) releaseTxLock(ctx context.Context, transactionID uuid.UUID) {
	ctx = context.WithoutCancel(ctx)
	if err := s.txLocker.ReleaseTxLock(ctx, transactionID); err != nil {
		logger.Warn(ctx, "error releasing transaction lock",
			"transaction.id", transactionID,
			"error", err,
		)
	}
}
