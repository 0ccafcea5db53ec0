package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/domain"
)

// WalletPolicy holds wallet lifecycle knobs that come from configuration.
type WalletPolicy struct {
	DefaultCurrency string
	WelcomeCredit   decimal.Decimal
	// BaseTierWalletLimit caps wallets for users on the base tier.
	// Zero falls back to the tier's own default.
	BaseTierWalletLimit int
}

// WalletUseCase manages wallet creation and lifecycle. Additional wallets
// are gated by the owner's subscription tier quota.
type WalletUseCase struct {
	walletRepo       WalletRepository
	subscriptionRepo SubscriptionRepository
	ledger           *LedgerUseCase
	idGen            IDGenerator
	policy           WalletPolicy
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	walletRepo WalletRepository,
	subscriptionRepo SubscriptionRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	policy WalletPolicy,
) *WalletUseCase {
	return &WalletUseCase{
		walletRepo:       walletRepo,
		subscriptionRepo: subscriptionRepo,
		ledger:           ledger,
		idGen:            idGen,
		policy:           policy,
	}
}

// InitializeFirstWallet creates a user's very first wallet and posts the
// welcome credit through the ledger, so the credit shows up in the
// transaction history like any other deposit.
func (uc *WalletUseCase) InitializeFirstWallet(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	count, err := uc.walletRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, fmt.Errorf("%w: user already has %d wallets", domain.ErrWalletAlreadyOwned, count)
	}

	wallet, err := uc.createWallet(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if uc.policy.WelcomeCredit.IsPositive() {
		txn, err := uc.ledger.TopUp(ctx, TopUpInput{
			WalletID: wallet.ID,
			Amount:   uc.policy.WelcomeCredit,
		})
		if err != nil {
			return nil, err
		}

		wallet.Balance = txn.BalanceLeft
		wallet.Version++
	}

	return wallet, nil
}

// UnlockNewWallet creates an additional wallet with zero balance, subject
// to the owner's subscription tier quota. Paid tiers carry no ceiling.
func (uc *WalletUseCase) UnlockNewWallet(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	tier, err := uc.subscriptionRepo.GetTier(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	count, err := uc.walletRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	limit := tier.MaxWallets()
	if tier.IsDefault() && uc.policy.BaseTierWalletLimit > 0 {
		limit = uc.policy.BaseTierWalletLimit
	}

	if limit > 0 && count >= limit {
		return nil, fmt.Errorf("%w: tier %s allows %d", domain.ErrWalletLimitReached, tier, limit)
	}

	return uc.createWallet(ctx, ownerID)
}

// ToggleStatus flips a wallet between ACTIVE and DEACTIVATED. Only the
// owner may toggle; wallets are never deleted.
func (uc *WalletUseCase) ToggleStatus(ctx context.Context, walletID, ownerID string) (*domain.Wallet, error) {
	wallet, err := uc.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	if wallet.OwnerID != ownerID {
		return nil, domain.ErrWalletOwnershipMismatch
	}

	now := time.Now().UTC()
	wallet.Status = wallet.ToggledStatus()
	wallet.UpdatedAt = now

	if err := uc.walletRepo.UpdateStatus(ctx, wallet.ID, wallet.Status, now); err != nil {
		return nil, err
	}

	return wallet, nil
}

// GetWallet retrieves a wallet by ID.
func (uc *WalletUseCase) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByID(ctx, id)
}

// ListWallets lists an owner's wallets, oldest first.
func (uc *WalletUseCase) ListWallets(ctx context.Context, ownerID string) ([]*domain.Wallet, error) {
	return uc.walletRepo.ListByOwner(ctx, ownerID)
}

func (uc *WalletUseCase) createWallet(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	now := time.Now().UTC()

	wallet := &domain.Wallet{
		ID:        uc.idGen.Generate(),
		OwnerID:   ownerID,
		Status:    domain.WalletStatusActive,
		Balance:   decimal.Zero,
		Currency:  uc.policy.DefaultCurrency,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	return wallet, nil
}
