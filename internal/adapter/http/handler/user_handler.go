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

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, *domain.Wallet, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userUC  UserService
	metrics *metrics.Metrics
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{userUC: userUC, metrics: m}
}

// Register registers a user and provisions their first wallet.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, wallet, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register user", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.UsersRegistered.Inc()
		h.metrics.WalletsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.RegisterUserResponse{
		User:   dto.UserFromDomain(user),
		Wallet: dto.WalletFromDomain(wallet),
	})
}

// Get retrieves a user by username.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "missing username", "")
		return
	}

	user, err := h.userUC.GetByUsername(r.Context(), username)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
