package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// StorageMock is a mock implementation of the Storage interface.
type StorageMock struct {
	mock.Mock
}

var _ Storage = (*StorageMock)(nil)

// NewStorageMock creates a StorageMock bound to the test lifecycle. All
// declared expectations are asserted on cleanup.
func NewStorageMock(t *testing.T) *StorageMock {
	m := new(StorageMock)
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *StorageMock) UpsertTransaction(ctx context.Context, tx Transaction) (Transaction, bool, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(Transaction), args.Bool(1), args.Error(2)
}

func (m *StorageMock) GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Transaction), args.Error(1)
}

// StorageMockExpecter provides typed expectation helpers.
type StorageMockExpecter struct {
	m *StorageMock
}

func (m *StorageMock) EXPECT() *StorageMockExpecter {
	return &StorageMockExpecter{m: m}
}

func (e *StorageMockExpecter) UpsertTransaction(ctx, tx any) *mock.Call {
	return e.m.On("UpsertTransaction", ctx, tx)
}

func (e *StorageMockExpecter) GetTransaction(ctx, id any) *mock.Call {
	return e.m.On("GetTransaction", ctx, id)
}
