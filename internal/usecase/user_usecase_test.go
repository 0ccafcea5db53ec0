package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/usecase"
	"github.com/autobid/walletd/internal/usecase/mocks"
)

func newUserFixture() (*usecase.UserUseCase, *mocks.MockUserRepository, *mocks.MockWalletRepository) {
	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	userRepo := mocks.NewMockUserRepository()
	idGen := mocks.NewMockIDGenerator()

	ledger := usecase.NewLedgerUseCase(mocks.NewMockTxManager(), walletRepo, txnRepo, idGen, nil)
	wallets := usecase.NewWalletUseCase(walletRepo, mocks.NewMockSubscriptionRepository(), ledger, idGen, usecase.WalletPolicy{
		DefaultCurrency: "EUR",
		WelcomeCredit:   decimal.RequireFromString("40.00"),
	})

	return usecase.NewUserUseCase(userRepo, wallets, idGen), userRepo, walletRepo
}

func TestUserUseCase_Register(t *testing.T) {
	uc, _, walletRepo := newUserFixture()

	user, wallet, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "car_dealer42",
		Email:    "dealer@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Username != "car_dealer42" {
		t.Errorf("expected username car_dealer42, got %s", user.Username)
	}
	if wallet.OwnerID != user.ID {
		t.Error("first wallet must belong to the new user")
	}
	if !wallet.Balance.Equal(decimal.RequireFromString("40.00")) {
		t.Errorf("expected welcome credit 40.00, got %s", wallet.Balance)
	}

	count, _ := walletRepo.CountByOwner(context.Background(), user.ID)
	if count != 1 {
		t.Errorf("expected 1 wallet, got %d", count)
	}
}

func TestUserUseCase_Register_DuplicateUsername(t *testing.T) {
	uc, userRepo, _ := newUserFixture()
	userRepo.Create(context.Background(), &domain.User{ID: "usr-1", Username: "taken"})

	_, _, err := uc.Register(context.Background(), usecase.RegisterInput{
		Username: "taken",
		Email:    "someone@example.com",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserUseCase_Register_InvalidInput(t *testing.T) {
	uc, _, _ := newUserFixture()

	if _, _, err := uc.Register(context.Background(), usecase.RegisterInput{Username: "ab", Email: "a@b.com"}); !errors.Is(err, domain.ErrInvalidUsername) {
		t.Errorf("expected ErrInvalidUsername, got %v", err)
	}

	if _, _, err := uc.Register(context.Background(), usecase.RegisterInput{Username: "valid_name", Email: "nope"}); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}
}
