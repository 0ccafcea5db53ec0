package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/autobid/walletd/internal/adapter/http/dto"
	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/infrastructure/metrics"
	"github.com/autobid/walletd/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	TransferFunds(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
}

// TransferHandler handles wallet-to-wallet transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, metrics: m}
}

// Create moves funds from the sender's wallet to another user's active
// wallet. A FAILED debit comes back as 201 with the failure reason on the
// record; a debit that committed without its credit is a 500.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transferUC.TransferFunds(r.Context(), req.ToUseCaseInput())
	if err != nil {
		if errors.Is(err, domain.ErrLedgerInconsistent) {
			if h.metrics != nil {
				h.metrics.LedgerInconsistency.Inc()
			}
			writeError(w, http.StatusInternalServerError, "transfer incomplete", err.Error())
			return
		}

		writeError(w, mapDomainError(err), "failed to transfer", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TransactionsRecorded.WithLabelValues(string(txn.Type), string(txn.Status)).Inc()
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}
