package httpapi

import (
	"context"
	"testing"

	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/reconciler"
	"github.com/gabapcia/landpay/internal/verification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// LedgerServiceMock is a mock implementation of the ledger.Service interface.
type LedgerServiceMock struct {
	mock.Mock
}

var _ ledger.Service = (*LedgerServiceMock)(nil)

// NewLedgerServiceMock creates a LedgerServiceMock bound to the test lifecycle.
func NewLedgerServiceMock(t *testing.T) *LedgerServiceMock {
	m := new(LedgerServiceMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LedgerServiceMock) CreateOrUpdate(ctx context.Context, uniqueCode string, amount decimal.Decimal) (ledger.Transaction, bool, error) {
	args := m.Called(ctx, uniqueCode, amount)
	return args.Get(0).(ledger.Transaction), args.Bool(1), args.Error(2)
}

func (m *LedgerServiceMock) Get(ctx context.Context, id uuid.UUID) (ledger.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

type LedgerServiceMockExpecter struct {
	m *LedgerServiceMock
}

func (m *LedgerServiceMock) EXPECT() *LedgerServiceMockExpecter {
	return &LedgerServiceMockExpecter{m: m}
}

func (e *LedgerServiceMockExpecter) CreateOrUpdate(ctx, uniqueCode, amount any) *mock.Call {
	return e.m.On("CreateOrUpdate", ctx, uniqueCode, amount)
}

func (e *LedgerServiceMockExpecter) Get(ctx, id any) *mock.Call {
	return e.m.On("Get", ctx, id)
}

// ReconcilerServiceMock is a mock implementation of the reconciler.Service interface.
type ReconcilerServiceMock struct {
	mock.Mock
}

var _ reconciler.Service = (*ReconcilerServiceMock)(nil)

// NewReconcilerServiceMock creates a ReconcilerServiceMock bound to the test lifecycle.
func NewReconcilerServiceMock(t *testing.T) *ReconcilerServiceMock {
	m := new(ReconcilerServiceMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReconcilerServiceMock) PayInstallment(ctx context.Context, transactionID uuid.UUID, amount decimal.Decimal) (reconciler.Payment, error) {
	args := m.Called(ctx, transactionID, amount)
	return args.Get(0).(reconciler.Payment), args.Error(1)
}

func (m *ReconcilerServiceMock) CancelTransaction(ctx context.Context, transactionID uuid.UUID) (reconciler.Cancellation, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(reconciler.Cancellation), args.Error(1)
}

type ReconcilerServiceMockExpecter struct {
	m *ReconcilerServiceMock
}

func (m *ReconcilerServiceMock) EXPECT() *ReconcilerServiceMockExpecter {
	return &ReconcilerServiceMockExpecter{m: m}
}

func (e *ReconcilerServiceMockExpecter) PayInstallment(ctx, transactionID, amount any) *mock.Call {
	return e.m.On("PayInstallment", ctx, transactionID, amount)
}

func (e *ReconcilerServiceMockExpecter) CancelTransaction(ctx, transactionID any) *mock.Call {
	return e.m.On("CancelTransaction", ctx, transactionID)
}

// VerificationServiceMock is a mock implementation of the verification.Service interface.
type VerificationServiceMock struct {
	mock.Mock
}

var _ verification.Service = (*VerificationServiceMock)(nil)

// NewVerificationServiceMock creates a VerificationServiceMock bound to the test lifecycle.
func NewVerificationServiceMock(t *testing.T) *VerificationServiceMock {
	m := new(VerificationServiceMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *VerificationServiceMock) VerifyPayment(ctx context.Context, transactionID uuid.UUID, evidence verification.Evidence) (verification.Result, error) {
	args := m.Called(ctx, transactionID, evidence)
	return args.Get(0).(verification.Result), args.Error(1)
}

type VerificationServiceMockExpecter struct {
	m *VerificationServiceMock
}

func (m *VerificationServiceMock) EXPECT() *VerificationServiceMockExpecter {
	return &VerificationServiceMockExpecter{m: m}
}

func (e *VerificationServiceMockExpecter) VerifyPayment(ctx, transactionID, evidence any) *mock.Call {
	return e.m.On("VerifyPayment", ctx, transactionID, evidence)
}
