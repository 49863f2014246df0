// Package ledger maintains the durable record of installment payment
// transactions and the rules governing their lifecycle. A transaction is
// created on the first payment intent, mutated by the reconciliation and
// verification workflows, and retained forever for audit.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates that no transaction exists for the given identity.
	ErrNotFound = errors.New("transaction not found")

	// ErrInvalidAmount indicates a negative or non-integral amount. Amounts are
	// fixed-point values denominated in the chain's smallest unit.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidStatusTransition indicates an attempt to move a transaction out
	// of a terminal status, or along an edge the state machine does not allow.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrChainRefsAlreadySet indicates an attempt to overwrite the on-chain
	// transaction hash. The hash is set at most once per transaction.
	ErrChainRefsAlreadySet = errors.New("chain references already set")
)

// Status represents the lifecycle state of a ledger transaction.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal edge of the
// transaction state machine. The only legal edges are
// Pending -> {Approved, Rejected, Cancelled}.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.Terminal()
}

// Transaction is one durable ledger record. Amount and Date are immutable
// after creation; SmartContractTxHash is write-once; Status only moves along
// the edges allowed by CanTransitionTo.
type Transaction struct {
	ID                   uuid.UUID       // opaque identity
	UniqueCode           string          // external correlation key, unique across the ledger
	Amount               decimal.Decimal // fixed-point value in the chain's smallest unit
	Status               Status
	IsVerified           bool
	SmartContractAddress string // optional 20-byte hex address ("0x" + 40 chars)
	SmartContractTxHash  string // optional 32-byte hex hash ("0x" + 64 chars), write-once
	Date                 time.Time
	Version              int64 // optimistic concurrency token, bumped on every mutation
}

// Finalized reports whether the transaction has reached a terminal status.
func (t Transaction) Finalized() bool {
	return t.Status.Terminal()
}

// Submitted reports whether an on-chain submission has been recorded for this
// transaction.
func (t Transaction) Submitted() bool {
	return t.SmartContractTxHash != ""
}

// validAmount reports whether a is usable as a ledger amount: non-negative and
// integral in the chain's smallest unit.
func validAmount(a decimal.Decimal) bool {
	return a.Sign() >= 0 && a.IsInteger()
}
