// Package verification decides whether a payment transaction may be marked as
// verified. Two independent checks must both pass: the supplied payment
// evidence must match the ledger record, and the recorded on-chain transfer
// must be confirmed with the exact transaction amount. A single failing check
// leaves the record untouched and reports which side failed.
package verification

import (
	"context"
	"math/big"

	"github.com/gabapcia/landpay/internal/ledger"

	"github.com/google/uuid"
)

// Reasons reported for a failed verification.
const (
	ReasonDocumentFailed   = "document verification failed"
	ReasonBlockchainFailed = "blockchain verification failed"
)

// Evidence is the externally supplied payment proof (e.g. a scanned receipt
// document) handed to the comparison capability as-is.
type Evidence struct {
	ContentType string
	Data        []byte
}

// Result is the outcome of a verification attempt. Reason is empty when
// Verified is true.
type Result struct {
	Verified bool
	Reason   string
}

// EvidenceComparer is the external document-analysis capability. It compares
// the supplied evidence against the ledger record and reports whether they
// match. Its internals (OCR, vision APIs) are outside this service.
type EvidenceComparer interface {
	CompareEvidence(ctx context.Context, evidence Evidence, tx ledger.Transaction) (bool, error)
}

// ConfirmedTransfer is the on-chain view of a recorded payment: its receipt
// status and the value actually transferred.
type ConfirmedTransfer struct {
	TxHash      string
	BlockNumber uint64
	Succeeded   bool
	Value       *big.Int
}

// ChainInspector looks up the confirmation state of a previously submitted
// transfer on the blockchain.
type ChainInspector interface {
	// ConfirmedTransfer returns the receipt status and transferred value for
	// txHash. An unmined or unknown transaction yields an error.
	ConfirmedTransfer(ctx context.Context, txHash string) (ConfirmedTransfer, error)
}

// LedgerStorage is the slice of the ledger persistence layer the verification
// service depends on.
type LedgerStorage interface {
	// GetTransaction loads a transaction by id. Returns ledger.ErrNotFound
	// when absent.
	GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error)

	// MarkTransactionVerified flips the verified flag for the transaction.
	MarkTransactionVerified(ctx context.Context, id uuid.UUID) error
}
