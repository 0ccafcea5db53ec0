package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/autobid/walletd/internal/adapter/http/dto"
	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/infrastructure/metrics"
	"github.com/autobid/walletd/internal/usecase"
)

// LedgerService defines the money movement behavior needed by LedgerHandler.
type LedgerService interface {
	TopUp(ctx context.Context, input usecase.TopUpInput) (*domain.Transaction, error)
	Charge(ctx context.Context, input usecase.ChargeInput) (*domain.Transaction, error)
}

// LedgerHandler handles top-up and charge HTTP requests. A business failure
// (inactive wallet, insufficient funds) is still a recorded transaction: the
// handler answers 201 with the FAILED record, not an error status.
type LedgerHandler struct {
	ledgerUC LedgerService
	metrics  *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, metrics: m}
}

// TopUp credits a wallet from the marketplace operator.
func (h *LedgerHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	var req dto.TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.ledgerUC.TopUp(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to top up wallet", err.Error())
		return
	}

	h.record(txn)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Charge debits a wallet in favor of the marketplace operator.
func (h *LedgerHandler) Charge(w http.ResponseWriter, r *http.Request) {
	var req dto.ChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.ledgerUC.Charge(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to charge wallet", err.Error())
		return
	}

	h.record(txn)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

func (h *LedgerHandler) record(txn *domain.Transaction) {
	if h.metrics == nil {
		return
	}

	h.metrics.TransactionsRecorded.WithLabelValues(string(txn.Type), string(txn.Status)).Inc()
	if txn.Succeeded() {
		amount, _ := txn.Amount.Float64()
		h.metrics.OperationAmount.WithLabelValues(string(txn.Type)).Observe(amount)
	}
}
