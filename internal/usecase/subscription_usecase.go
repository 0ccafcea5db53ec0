package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/autobid/walletd/internal/domain"
)

// SubscriptionUseCase handles paid tier upgrades. The tier price is charged
// through the ledger; the tier only changes when the charge SUCCEEDED.
type SubscriptionUseCase struct {
	subscriptionRepo SubscriptionRepository
	ledger           *LedgerUseCase
}

// NewSubscriptionUseCase creates a new SubscriptionUseCase.
func NewSubscriptionUseCase(subscriptionRepo SubscriptionRepository, ledger *LedgerUseCase) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		ledger:           ledger,
	}
}

// UpgradeInput represents a tier upgrade request.
type UpgradeInput struct {
	UserID   string
	WalletID string
	Tier     string
}

// Upgrade charges the tier price against the chosen wallet and persists the
// new tier on success. A FAILED charge is returned as-is and the tier stays
// unchanged; the caller shows the failure reason from the transaction.
func (uc *SubscriptionUseCase) Upgrade(ctx context.Context, input UpgradeInput) (*domain.Transaction, error) {
	tier, err := domain.ParseTier(input.Tier)
	if err != nil {
		return nil, err
	}

	if tier.IsDefault() {
		return nil, fmt.Errorf("%w: cannot upgrade to the base tier", domain.ErrInvalidTier)
	}

	current, err := uc.subscriptionRepo.GetTier(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if !tier.UpgradesFrom(current) {
		return nil, fmt.Errorf("%w: already on %s", domain.ErrInvalidTier, current)
	}

	txn, err := uc.ledger.Charge(ctx, ChargeInput{
		OwnerID:     input.UserID,
		WalletID:    input.WalletID,
		Amount:      tier.Price(),
		Description: fmt.Sprintf("Subscription upgrade to %s", tier),
	})
	if err != nil {
		return nil, err
	}

	if !txn.Succeeded() {
		return txn, nil
	}

	if err := uc.subscriptionRepo.SetTier(ctx, input.UserID, tier, time.Now().UTC()); err != nil {
		// The charge is durable but the tier is not. Surface it loudly; the
		// charge transaction is the reconciliation handle.
		log.Error().
			Err(err).
			Str("user_id", input.UserID).
			Str("transaction_id", txn.ID).
			Msg("tier persist failed after charge committed")

		return nil, fmt.Errorf("charge %s committed but tier update failed: %w", txn.ID, err)
	}

	return txn, nil
}

// CurrentTier returns the user's active tier.
func (uc *SubscriptionUseCase) CurrentTier(ctx context.Context, userID string) (domain.SubscriptionTier, error) {
	return uc.subscriptionRepo.GetTier(ctx, userID)
}
