package dto

import (
	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/usecase"
)

// RegisterUserRequest represents a request to register a user.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterUserRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
	}
}

// CreateWalletRequest represents a request to unlock an additional wallet.
type CreateWalletRequest struct {
	UserID string `json:"user_id"`
}

// ToggleWalletRequest represents a request to flip a wallet's status.
type ToggleWalletRequest struct {
	UserID string `json:"user_id"`
}

// TopUpRequest represents a request to credit a wallet.
type TopUpRequest struct {
	WalletID string          `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TopUpRequest) ToUseCaseInput() usecase.TopUpInput {
	return usecase.TopUpInput{
		WalletID: r.WalletID,
		Amount:   r.Amount,
	}
}

// ChargeRequest represents a request to debit a wallet in favor of the
// marketplace operator.
type ChargeRequest struct {
	UserID      string          `json:"user_id"`
	WalletID    string          `json:"wallet_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *ChargeRequest) ToUseCaseInput() usecase.ChargeInput {
	return usecase.ChargeInput{
		OwnerID:     r.UserID,
		WalletID:    r.WalletID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// TransferRequest represents a request to move funds to another user.
type TransferRequest struct {
	SenderID     string          `json:"sender_id"`
	FromWalletID string          `json:"from_wallet_id"`
	ToUsername   string          `json:"to_username"`
	Amount       decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SenderID:     r.SenderID,
		FromWalletID: r.FromWalletID,
		ToUsername:   r.ToUsername,
		Amount:       r.Amount,
	}
}

// UpgradeSubscriptionRequest represents a request to move to a paid tier.
type UpgradeSubscriptionRequest struct {
	UserID   string `json:"user_id"`
	WalletID string `json:"wallet_id"`
	Tier     string `json:"tier"`
}

// ToUseCaseInput converts to use case input.
func (r *UpgradeSubscriptionRequest) ToUseCaseInput() usecase.UpgradeInput {
	return usecase.UpgradeInput{
		UserID:   r.UserID,
		WalletID: r.WalletID,
		Tier:     r.Tier,
	}
}
