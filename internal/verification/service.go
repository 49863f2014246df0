package verification

import (
	"context"

	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/pkg/logger"

	"github.com/google/uuid"
)

// Service defines the payment verification entrypoint.
type Service interface {
	// VerifyPayment runs the document and on-chain checks for the given
	// transaction. Only when both pass is the ledger record marked verified.
	// A failing check is not an error: the returned Result carries the reason.
	VerifyPayment(ctx context.Context, transactionID uuid.UUID, evidence Evidence) (Result, error)
}

// service is the concrete implementation of the Service interface.
type service struct {
	evidenceComparer EvidenceComparer
	chainInspector   ChainInspector
	ledgerStorage    LedgerStorage
}

// Compile-time check that *service satisfies the Service interface.
var _ Service = (*service)(nil)

// New creates a verification service from its three collaborators.
func New(ec EvidenceComparer, ci ChainInspector, ls LedgerStorage) *service {
	return &service{
		evidenceComparer: ec,
		chainInspector:   ci,
		ledgerStorage:    ls,
	}
}

// confirmedOnChain reports whether the transaction's recorded transfer is
// confirmed on-chain with the exact ledger amount: a receipt exists, its
// execution succeeded, and the transferred value equals the record's amount.
func (s *service) confirmedOnChain(ctx context.Context, tx ledger.Transaction) bool {
	if !tx.Submitted() {
		return false
	}

	transfer, err := s.chainInspector.ConfirmedTransfer(ctx, tx.SmartContractTxHash)
	if err != nil {
		logger.Warn(ctx, "error fetching on-chain confirmation",
			"transaction.id", tx.ID,
			"transaction.hash", tx.SmartContractTxHash,
			"error", err,
		)
		return false
	}

	return transfer.Succeeded && transfer.Value != nil && tx.Amount.BigInt().Cmp(transfer.Value) == 0
}

// VerifyPayment implements the Service interface.
func (s *service) VerifyPayment(ctx context.Context, transactionID uuid.UUID, evidence Evidence) (Result, error) {
	tx, err := s.ledgerStorage.GetTransaction(ctx, transactionID)
	if err != nil {
		return Result{}, err
	}

	// Already verified records replay the positive outcome.
	if tx.IsVerified {
		return Result{Verified: true}, nil
	}

	matches, err := s.evidenceComparer.CompareEvidence(ctx, evidence, tx)
	if err != nil {
		return Result{}, err
	}
	if !matches {
		return Result{Reason: ReasonDocumentFailed}, nil
	}

	if !s.confirmedOnChain(ctx, tx) {
		return Result{Reason: ReasonBlockchainFailed}, nil
	}

	if err := s.ledgerStorage.MarkTransactionVerified(ctx, tx.ID); err != nil {
		return Result{}, err
	}

	return Result{Verified: true}, nil
}
