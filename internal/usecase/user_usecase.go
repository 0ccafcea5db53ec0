package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/autobid/walletd/internal/domain"
)

// UserUseCase registers marketplace users with the ledger. Registration
// also provisions the user's first wallet.
type UserUseCase struct {
	userRepo UserRepository
	wallets  *WalletUseCase
	idGen    IDGenerator
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, wallets *WalletUseCase, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		wallets:  wallets,
		idGen:    idGen,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Username string
	Email    string
}

// Register creates a user and initializes their first wallet.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Wallet, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, nil, err
	}

	_, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err == nil {
		return nil, nil, domain.ErrUsernameTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, err
	}

	user := &domain.User{
		ID:        uc.idGen.Generate(),
		Username:  input.Username,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	wallet, err := uc.wallets.InitializeFirstWallet(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, wallet, nil
}

// GetByUsername retrieves a user by username.
func (uc *UserUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.userRepo.GetByUsername(ctx, username)
}
