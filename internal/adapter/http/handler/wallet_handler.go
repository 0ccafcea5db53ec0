package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autobid/walletd/internal/adapter/http/dto"
	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/infrastructure/metrics"
)

// WalletService defines the wallet lifecycle behavior needed by WalletHandler.
type WalletService interface {
	UnlockNewWallet(ctx context.Context, ownerID string) (*domain.Wallet, error)
	ToggleStatus(ctx context.Context, walletID, ownerID string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, ownerID string) ([]*domain.Wallet, error)
}

// ActivityService serves a wallet's recent activity.
type ActivityService interface {
	RecentActivity(ctx context.Context, walletID string, n int) ([]*domain.Transaction, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC   WalletService
	activityUC ActivityService
	metrics    *metrics.Metrics
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService, activityUC ActivityService, m *metrics.Metrics) *WalletHandler {
	return &WalletHandler{
		walletUC:   walletUC,
		activityUC: activityUC,
		metrics:    m,
	}
}

// Create unlocks an additional wallet for the user, subject to their
// subscription tier quota.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id", "")
		return
	}

	wallet, err := h.walletUC.UnlockNewWallet(r.Context(), req.UserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create wallet", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.WalletsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// Get retrieves a wallet by ID.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// List lists a user's wallets, oldest first.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("user_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id query parameter", "")
		return
	}

	wallets, err := h.walletUC.ListWallets(r.Context(), ownerID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list wallets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletsFromDomain(wallets))
}

// Toggle flips a wallet between ACTIVE and DEACTIVATED.
func (h *WalletHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.ToggleWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.ToggleStatus(r.Context(), id, req.UserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to toggle wallet", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.WalletToggles.Inc()
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Activity returns the wallet's recent SUCCEEDED transactions, newest first.
func (h *WalletHandler) Activity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	n := parseIntQuery(r, "limit", 0)

	txns, err := h.activityUC.RecentActivity(r.Context(), id, n)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get activity", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivityResponse{
		WalletID:     id,
		Transactions: dto.TransactionsFromDomain(txns),
	})
}
