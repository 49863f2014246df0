package verification

import (
	"context"
	"testing"

	"github.com/gabapcia/landpay/internal/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// EvidenceComparerMock is a mock implementation of the EvidenceComparer interface.
type EvidenceComparerMock struct {
	mock.Mock
}

var _ EvidenceComparer = (*EvidenceComparerMock)(nil)

// NewEvidenceComparerMock creates an EvidenceComparerMock bound to the test lifecycle.
func NewEvidenceComparerMock(t *testing.T) *EvidenceComparerMock {
	m := new(EvidenceComparerMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EvidenceComparerMock) CompareEvidence(ctx context.Context, evidence Evidence, tx ledger.Transaction) (bool, error) {
	args := m.Called(ctx, evidence, tx)
	return args.Bool(0), args.Error(1)
}

type EvidenceComparerMockExpecter struct {
	m *EvidenceComparerMock
}

func (m *EvidenceComparerMock) EXPECT() *EvidenceComparerMockExpecter {
	return &EvidenceComparerMockExpecter{m: m}
}

func (e *EvidenceComparerMockExpecter) CompareEvidence(ctx, evidence, tx any) *mock.Call {
	return e.m.On("CompareEvidence", ctx, evidence, tx)
}

// ChainInspectorMock is a mock implementation of the ChainInspector interface.
type ChainInspectorMock struct {
	mock.Mock
}

var _ ChainInspector = (*ChainInspectorMock)(nil)

// NewChainInspectorMock creates a ChainInspectorMock bound to the test lifecycle.
func NewChainInspectorMock(t *testing.T) *ChainInspectorMock {
	m := new(ChainInspectorMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ChainInspectorMock) ConfirmedTransfer(ctx context.Context, txHash string) (ConfirmedTransfer, error) {
	args := m.Called(ctx, txHash)
	return args.Get(0).(ConfirmedTransfer), args.Error(1)
}

type ChainInspectorMockExpecter struct {
	m *ChainInspectorMock
}

func (m *ChainInspectorMock) EXPECT() *ChainInspectorMockExpecter {
	return &ChainInspectorMockExpecter{m: m}
}

func (e *ChainInspectorMockExpecter) ConfirmedTransfer(ctx, txHash any) *mock.Call {
	return e.m.On("ConfirmedTransfer", ctx, txHash)
}

// LedgerStorageMock is a mock implementation of the LedgerStorage interface.
type LedgerStorageMock struct {
	mock.Mock
}

var _ LedgerStorage = (*LedgerStorageMock)(nil)

// NewLedgerStorageMock creates a LedgerStorageMock bound to the test lifecycle.
func NewLedgerStorageMock(t *testing.T) *LedgerStorageMock {
	m := new(LedgerStorageMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LedgerStorageMock) GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *LedgerStorageMock) MarkTransactionVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type LedgerStorageMockExpecter struct {
	m *LedgerStorageMock
}

func (m *LedgerStorageMock) EXPECT() *LedgerStorageMockExpecter {
	return &LedgerStorageMockExpecter{m: m}
}

func (e *LedgerStorageMockExpecter) GetTransaction(ctx, id any) *mock.Call {
	return e.m.On("GetTransaction", ctx, id)
}

func (e *LedgerStorageMockExpecter) MarkTransactionVerified(ctx, id any) *mock.Call {
	return e.m.On("MarkTransactionVerified", ctx, id)
}
