package ledger

import (
	"context"
	"time"

	"github.com/gabapcia/landpay/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Storage defines the persistence contract for ledger transactions.
//
// Implementations must guarantee that every mutation is atomic with respect
// to concurrent readers: a reader never observes a partially written record.
type Storage interface {
	// UpsertTransaction inserts a transaction keyed by its UniqueCode, or
	// returns the existing record when the code is already present. The
	// uniqueness constraint lives in the store. It returns the stored
	// transaction and whether a new record was created.
	//
	// An existing record is returned untouched: re-posting a known code must
	// not mutate its amount or status.
	UpsertTransaction(ctx context.Context, t Transaction) (Transaction, bool, error)

	// GetTransaction loads a transaction by id. Returns ErrNotFound when no
	// record exists.
	GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error)
}

// Service exposes the ledger operations used by the inbound API: registering
// payment intents and reading transactions back.
type Service interface {
	// CreateOrUpdate registers a payment intent for the given external
	// correlation code. If no transaction exists for uniqueCode, one is
	// created in Pending status with the given amount; otherwise the existing
	// record is returned unchanged. The second return value reports whether a
	// record was created.
	CreateOrUpdate(ctx context.Context, uniqueCode string, amount decimal.Decimal) (Transaction, bool, error)

	// Get loads a transaction by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (Transaction, error)
}

// paymentIntent carries the validated input for CreateOrUpdate.
type paymentIntent struct {
	UniqueCode string `validate:"required,max=50"`
}

// service is the concrete implementation of the Service interface.
type service struct {
	storage Storage
}

// Compile-time check that *service satisfies the Service interface.
var _ Service = (*service)(nil)

// New creates a ledger service backed by the given Storage implementation.
func New(s Storage) *service {
	return &service{
		storage: s,
	}
}

// CreateOrUpdate validates the intent and delegates to the store. The record
// is keyed by uniqueCode: two unrelated transactions of equal amount never
// collide.
func (s *service) CreateOrUpdate(ctx context.Context, uniqueCode string, amount decimal.Decimal) (Transaction, bool, error) {
	intent := paymentIntent{UniqueCode: uniqueCode}
	if err := validation.Validate(intent); err != nil {
		return Transaction{}, false, err
	}

	if !validAmount(amount) {
		return Transaction{}, false, ErrInvalidAmount
	}

	t := Transaction{
		ID:         uuid.New(),
		UniqueCode: uniqueCode,
		Amount:     amount,
		Status:     StatusPending,
		Date:       time.Now().UTC(),
	}

	return s.storage.UpsertTransaction(ctx, t)
}

// Get loads a transaction by id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (Transaction, error) {
	return s.storage.GetTransaction(ctx, id)
}
