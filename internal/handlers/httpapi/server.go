// Package httpapi exposes the payment reconciliation operations over HTTP.
// It routes requests with gorilla/mux and translates domain errors into
// status codes; all business rules live in the consumed services.
package httpapi

import (
	"net/http"

	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/reconciler"
	"github.com/gabapcia/landpay/internal/verification"

	"github.com/gorilla/mux"
)

// Server wires the HTTP routes to the domain services.
type Server struct {
	router *mux.Router

	ledger     ledger.Service
	reconciler reconciler.Service
	verifier   verification.Service
}

// NewServer builds the HTTP handler for the payment API.
func NewServer(l ledger.Service, r reconciler.Service, v verification.Service) *Server {
	s := &Server{
		router:     mux.NewRouter(),
		ledger:     l,
		reconciler: r,
		verifier:   v,
	}

	s.router.HandleFunc("/transactions", s.createTransaction).Methods(http.MethodPost)
	s.router.HandleFunc("/transactions/{transactionID}", s.getTransaction).Methods(http.MethodGet)
	s.router.HandleFunc("/transactions/{transactionID}/pay", s.payInstallment).Methods(http.MethodPost)
	s.router.HandleFunc("/transactions/{transactionID}/cancel", s.cancelTransaction).Methods(http.MethodPost)
	s.router.HandleFunc("/transactions/{transactionID}/verify", s.verifyPayment).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)

	return s
}

// ServeHTTP implements http.Handler by delegating to the underlying router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
