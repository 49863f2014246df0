package verification

import (
	"errors"
	"math/big"
	"testing"

	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	comparer  *EvidenceComparerMock
	inspector *ChainInspectorMock
	store     *LedgerStorageMock
}

func newTestService(t *testing.T) (*service, testDeps) {
	deps := testDeps{
		comparer:  NewEvidenceComparerMock(t),
		inspector: NewChainInspectorMock(t),
		store:     NewLedgerStorageMock(t),
	}

	s := &service{
		evidenceComparer: deps.comparer,
		chainInspector:   deps.inspector,
		ledgerStorage:    deps.store,
	}

	return s, deps
}

func TestNew(t *testing.T) {
	t.Run("creates service with provided collaborators", func(t *testing.T) {
		comparer := NewEvidenceComparerMock(t)
		inspector := NewChainInspectorMock(t)
		store := NewLedgerStorageMock(t)

		svc := New(comparer, inspector, store)

		require.NotNil(t, svc)
		assert.Equal(t, comparer, svc.evidenceComparer)
		assert.Equal(t, inspector, svc.chainInspector)
		assert.Equal(t, store, svc.ledgerStorage)
	})
}

func TestService_VerifyPayment(t *testing.T) {
	require.NoError(t, logger.Init())

	evidence := Evidence{ContentType: "image/png", Data: []byte("scan")}

	approvedTx := func(id uuid.UUID) ledger.Transaction {
		return ledger.Transaction{
			ID:                  id,
			UniqueCode:          "LND-001",
			Amount:              decimal.NewFromInt(100),
			Status:              ledger.StatusApproved,
			SmartContractTxHash: "0xhash",
		}
	}

	t.Run("should verify when both checks pass", func(t *testing.T) {
		ctx := t.Context()
		s, deps := newTestService(t)
		id := uuid.New()
		tx := approvedTx(id)

		deps.store.EXPECT().GetTransaction(ctx, id).Return(tx, nil).Once()
		deps.comparer.EXPECT().CompareEvidence(ctx, evidence, tx).Return(true, nil).Once()
		deps.inspector.EXPECT().ConfirmedTransfer(ctx, "0xhash").
			Return(ConfirmedTransfer{TxHash: "0xhash", Succeeded: true, Value: big.NewInt(100)}, nil).Once()
		deps.store.EXPECT().MarkTransactionVerified(ctx, id).Return(nil).Once()

		result, err := s.VerifyPayment(ctx, id, evidence)
		require.NoError(t, err)
		assert.True(t, result.Verified)
		assert.Empty(t, result.Reason)
	})

	t.Run("should report document failure without an on-chain lookup", func(t *testing.T) {
		ctx := t.Context()
		s, deps := newTestService(t)
		id := uuid.New()
		tx := approvedTx(id)

		deps.store.EXPECT().GetTransaction(ctx, id).Return(tx, nil).Once()
		deps.comparer.EXPECT().CompareEvidence(ctx, evidence, tx).Return(false, nil).Once()

		result, err := s.VerifyPayment(ctx, id, evidence)
		require.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Equal(t, ReasonDocumentFailed, result.Reason)
	})

	t.Run("should report blockchain failure when the transferred value differs", func(t *testing.T) {
		ctx := t.Context()
		s, deps := newTestService(t)
		id := uuid.New()
		tx := approvedTx(id)

		deps.store.EXPECT().GetTransaction(ctx, id).Return(tx, nil).Once()
		deps.comparer.EXPECT().CompareEvidence(ctx, evidence, tx).Return(true, nil).Once()
		deps.inspector.EXPECT().ConfirmedTransfer(ctx, "0xhash").
			Return(ConfirmedTransfer{TxHash: "0xhash", Succeeded: true, Value: big.NewInt(50)}, nil).Once()

		result, err := s.VerifyPayment(ctx, id, evidence)
		require.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Equal(t, ReasonBlockchainFailed, result.Reason)
	})

	t.Run("should report blockchain failure when the transfer reverted", func(t *testing.T) {
		ctx := t.Context()
		s, deps := newTestService(t)
		id := uuid.New()
		tx := approvedTx(id)

		deps.store.EXPECT().GetTransaction(ctx, id).Return(tx, nil).Once()
		deps.comparer.EXPECT().CompareEvidence(ctx, evidence, tx).Return(true, nil).Once()
		deps.inspector.EXPECT().ConfirmedTransfer(ctx, "0xhash").
			Return(ConfirmedTransfer{TxHash: "0xhash", Succeeded: false, Value: big.NewInt(100)}, nil).Once()

		result, err := s.VerifyPayment(ctx, id, evidence)
		require.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Equal(t, ReasonBlockchainFailed, result.Reason)
	})

	t.Run("should report blockchain failure when no submission was recorded", func(t *testing.T) {
		ctx := t.Context()
		s, deps := newTestService(t)
		id := uuid.New()

		tx := approvedTx(id)
		tx.SmartContractTxHash = ""

		deps.store.EXPECT().GetTransaction(ctx, id).Return(tx, nil).Once()
		deps.comparer.EXPECT().CompareEvidence(ctx, evidence, tx).Return(true, nil).Once()

		result, err := s.VerifyPayment(ctx, id, evidence)
		require.NoError(t, err)
		assert.False(t, result.Verified)
		assert.Equal(t, ReasonBlockchainFailed, result.Reason)
	})

	t.Run("should replay a positive outcome for an already verified record", func(t *testing.T) {
		ctx := t.Context()
		s, deps := newTestService(t)
		id := uuid.New()

		tx := approvedTx(id)
		tx.IsVerified = true

		deps.store.EXPECT().GetTransaction(ctx, id).Return(tx, nil).Once()

		result, err := s.VerifyPayment(ctx, id, evidence)
		require.NoError(t, err)
		assert.True(t, result.Verified)
	})

	t.Run("should fail with ErrNotFound for an unknown transaction", func(t *testing.T) {
		ctx := t.Context()
		s, deps := newTestService(t)
		id := uuid.New()

		deps.store.EXPECT().GetTransaction(ctx, id).Return(ledger.Transaction{}, ledger.ErrNotFound).Once()

		_, err := s.VerifyPayment(ctx, id, evidence)
		require.Error(t, err)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("should surface comparer errors", func(t *testing.T) {
		ctx := t.Context()
		s, deps := newTestService(t)
		id := uuid.New()
		tx := approvedTx(id)

		expectedErr := errors.New("vision backend offline")
		deps.store.EXPECT().GetTransaction(ctx, id).Return(tx, nil).Once()
		deps.comparer.EXPECT().CompareEvidence(ctx, evidence, tx).Return(false, expectedErr).Once()

		_, err := s.VerifyPayment(ctx, id, evidence)
		require.Error(t, err)
		assert.Equal(t, expectedErr, err)
	})
}
