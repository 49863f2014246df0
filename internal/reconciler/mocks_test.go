package reconciler

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/gabapcia/landpay/internal/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ChainMock is a mock implementation of the Chain interface.
type ChainMock struct {
	mock.Mock
}

var _ Chain = (*ChainMock)(nil)

// NewChainMock creates a ChainMock bound to the test lifecycle.
func NewChainMock(t *testing.T) *ChainMock {
	m := new(ChainMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ChainMock) ContractAddress() string {
	args := m.Called()
	return args.String(0)
}

func (m *ChainMock) InstallmentAmount(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(*big.Int)
	return v, args.Error(1)
}

func (m *ChainMock) SubmitTransfer(ctx context.Context, value *big.Int) (string, error) {
	args := m.Called(ctx, value)
	return args.String(0), args.Error(1)
}

func (m *ChainMock) SubmitCancellation(ctx context.Context, uniqueCode string) (string, error) {
	args := m.Called(ctx, uniqueCode)
	return args.String(0), args.Error(1)
}

func (m *ChainMock) AwaitReceipt(ctx context.Context, txHash string) (Receipt, error) {
	args := m.Called(ctx, txHash)
	return args.Get(0).(Receipt), args.Error(1)
}

type ChainMockExpecter struct {
	m *ChainMock
}

func (m *ChainMock) EXPECT() *ChainMockExpecter {
	return &ChainMockExpecter{m: m}
}

func (e *ChainMockExpecter) ContractAddress() *mock.Call {
	return e.m.On("ContractAddress")
}

func (e *ChainMockExpecter) InstallmentAmount(ctx any) *mock.Call {
	return e.m.On("InstallmentAmount", ctx)
}

func (e *ChainMockExpecter) SubmitTransfer(ctx, value any) *mock.Call {
	return e.m.On("SubmitTransfer", ctx, value)
}

func (e *ChainMockExpecter) SubmitCancellation(ctx, uniqueCode any) *mock.Call {
	return e.m.On("SubmitCancellation", ctx, uniqueCode)
}

func (e *ChainMockExpecter) AwaitReceipt(ctx, txHash any) *mock.Call {
	return e.m.On("AwaitReceipt", ctx, txHash)
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

func (m *LedgerStorageMock) SetTransactionStatus(ctx context.Context, id uuid.UUID, from, to ledger.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *LedgerStorageMock) SetChainRefs(ctx context.Context, id uuid.UUID, contractAddress, txHash string) error {
	args := m.Called(ctx, id, contractAddress, txHash)
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

func (e *LedgerStorageMockExpecter) SetTransactionStatus(ctx, id, from, to any) *mock.Call {
	return e.m.On("SetTransactionStatus", ctx, id, from, to)
}

func (e *LedgerStorageMockExpecter) SetChainRefs(ctx, id, contractAddress, txHash any) *mock.Call {
	return e.m.On("SetChainRefs", ctx, id, contractAddress, txHash)
}

// TxLockerMock is a mock implementation of the TxLocker interface.
type TxLockerMock struct {
	mock.Mock
}

var _ TxLocker = (*TxLockerMock)(nil)

// NewTxLockerMock creates a TxLockerMock bound to the test lifecycle.
func NewTxLockerMock(t *testing.T) *TxLockerMock {
	m := new(TxLockerMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TxLockerMock) AcquireTxLock(ctx context.Context, transactionID uuid.UUID, ttl time.Duration) error {
	args := m.Called(ctx, transactionID, ttl)
	return args.Error(0)
}

func (m *TxLockerMock) ReleaseTxLock(ctx context.Context, transactionID uuid.UUID) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

type TxLockerMockExpecter struct {
	m *TxLockerMock
}

func (m *TxLockerMock) EXPECT() *TxLockerMockExpecter {
	return &TxLockerMockExpecter{m: m}
}

func (e *TxLockerMockExpecter) AcquireTxLock(ctx, transactionID, ttl any) *mock.Call {
	return e.m.On("AcquireTxLock", ctx, transactionID, ttl)
}

func (e *TxLockerMockExpecter) ReleaseTxLock(ctx, transactionID any) *mock.Call {
	return e.m.On("ReleaseTxLock", ctx, transactionID)
}
