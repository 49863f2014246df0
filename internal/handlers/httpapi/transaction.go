package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/pkg/validation"
	"github.com/gabapcia/landpay/internal/verification"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type (
	// createTransactionRequest registers a payment intent.
	createTransactionRequest struct {
		UniqueCode string          `json:"unique_code" validate:"required,max=50"`
		Amount     decimal.Decimal `json:"amount"`
	}

	// payInstallmentRequest carries the amount offered for the installment.
	payInstallmentRequest struct {
		Amount decimal.Decimal `json:"amount"`
	}

	// verifyPaymentRequest carries the payment evidence document.
	verifyPaymentRequest struct {
		ContentType string `json:"content_type" validate:"required"`
		Evidence    []byte `json:"evidence" validate:"required"`
	}

	// transactionResponse is the HTTP view of a ledger transaction.
	transactionResponse struct {
		ID                   uuid.UUID       `json:"id"`
		UniqueCode           string          `json:"unique_code"`
		Amount               decimal.Decimal `json:"amount"`
		Status               ledger.Status   `json:"status"`
		IsVerified           bool            `json:"is_verified"`
		SmartContractAddress string          `json:"smart_contract_address,omitempty"`
		SmartContractTxHash  string          `json:"smart_contract_tx_hash,omitempty"`
		Date                 time.Time       `json:"date"`
		Version              int64           `json:"version"`
	}

	// paymentResponse is the HTTP view of a reconciliation outcome.
	paymentResponse struct {
		TransactionID uuid.UUID       `json:"transaction_id"`
		Amount        decimal.Decimal `json:"amount"`
		TxHash        string          `json:"tx_hash"`
		Status        ledger.Status   `json:"status"`
		Replayed      bool            `json:"replayed"`
	}

	// cancellationResponse is the HTTP view of a cancellation outcome.
	cancellationResponse struct {
		TransactionID uuid.UUID     `json:"transaction_id"`
		TxHash        string        `json:"tx_hash"`
		Status        ledger.Status `json:"status"`
	}

	// verificationResponse is the HTTP view of a verification outcome.
	verificationResponse struct {
		Verified bool   `json:"verified"`
		Reason   string `json:"reason,omitempty"`
	}
)

func newTransactionResponse(t ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:                   t.ID,
		UniqueCode:           t.UniqueCode,
		Amount:               t.Amount,
		Status:               t.Status,
		IsVerified:           t.IsVerified,
		SmartContractAddress: t.SmartContractAddress,
		SmartContractTxHash:  t.SmartContractTxHash,
		Date:                 t.Date,
		Version:              t.Version,
	}
}

// transactionID extracts and parses the transaction id path variable.
func transactionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["transactionID"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid transaction id", validation.ErrValidation)
	}

	return id, nil
}

// decodeBody parses and validates a JSON request body.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", validation.ErrValidation)
	}

	return validation.Validate(dst)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, created, err := s.ledger.CreateOrUpdate(r.Context(), req.UniqueCode, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	writeJSON(w, status, newTransactionResponse(t))
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := transactionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	t, err := s.ledger.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newTransactionResponse(t))
}

func (s *Server) payInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := transactionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req payInstallmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	payment, err := s.reconciler.PayInstallment(r.Context(), id, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// A fresh submission creates the on-chain transfer; a replay only reads
	// back a recorded outcome.
	status := http.StatusCreated
	if payment.Replayed {
		status = http.StatusOK
	}

	writeJSON(w, status, paymentResponse{
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		TxHash:        payment.TxHash,
		Status:        payment.Status,
		Replayed:      payment.Replayed,
	})
}

func (s *Server) cancelTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := transactionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cancellation, err := s.reconciler.CancelTransaction(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cancellationResponse{
		TransactionID: cancellation.TransactionID,
		TxHash:        cancellation.TxHash,
		Status:        cancellation.Status,
	})
}

func (s *Server) verifyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := transactionID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req verifyPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.verifier.VerifyPayment(r.Context(), id, verification.Evidence{
		ContentType: req.ContentType,
		Data:        req.Evidence,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, verificationResponse{
		Verified: result.Verified,
		Reason:   result.Reason,
	})
}
