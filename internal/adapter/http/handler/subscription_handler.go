package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autobid/walletd/internal/adapter/http/dto"
	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/infrastructure/metrics"
	"github.com/autobid/walletd/internal/usecase"
)

// SubscriptionService defines the behavior needed by SubscriptionHandler.
type SubscriptionService interface {
	Upgrade(ctx context.Context, input usecase.UpgradeInput) (*domain.Transaction, error)
	CurrentTier(ctx context.Context, userID string) (domain.SubscriptionTier, error)
}

// SubscriptionHandler handles subscription tier HTTP requests.
type SubscriptionHandler struct {
	subUC   SubscriptionService
	metrics *metrics.Metrics
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subUC SubscriptionService, m *metrics.Metrics) *SubscriptionHandler {
	return &SubscriptionHandler{subUC: subUC, metrics: m}
}

// Upgrade charges the tier price and moves the user to the paid tier. A
// FAILED charge is 201 with the record; the tier stays unchanged.
func (h *SubscriptionHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	var req dto.UpgradeSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.subUC.Upgrade(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to upgrade subscription", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.SubscriptionUpgrades.WithLabelValues(req.Tier, string(txn.Status)).Inc()
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get returns the user's current tier.
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	tier, err := h.subUC.CurrentTier(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get subscription", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SubscriptionResponse{
		UserID: userID,
		Tier:   string(tier),
	})
}
