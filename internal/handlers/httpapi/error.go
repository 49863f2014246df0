package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/pkg/logger"
	"github.com/gabapcia/landpay/internal/pkg/validation"
	"github.com/gabapcia/landpay/internal/reconciler"
)

// errorResponse is the envelope returned on every failed request.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// statusFromError maps a domain error onto an HTTP status code and a stable
// machine-readable kind.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, validation.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, ledger.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, reconciler.ErrPaymentInProgress):
		return http.StatusConflict, "payment_in_progress"
	case errors.Is(err, reconciler.ErrAlreadyFinalized):
		return http.StatusConflict, "already_finalized"
	case errors.Is(err, reconciler.ErrAmountMismatch):
		return http.StatusUnprocessableEntity, "amount_mismatch"
	case errors.Is(err, reconciler.ErrTransferReverted):
		return http.StatusUnprocessableEntity, "transfer_reverted"
	case errors.Is(err, reconciler.ErrReceiptTimeout):
		return http.StatusGatewayTimeout, "receipt_timeout"
	case errors.Is(err, reconciler.ErrChainUnavailable), errors.Is(err, reconciler.ErrChainProtocol):
		return http.StatusBadGateway, "chain_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError renders the error envelope. Unexpected failures are logged and
// returned without their internal message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), "unhandled request error", "error", err)
		message = "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: errorBody{Kind: kind, Message: message}})
}

// writeJSON renders the payload with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
