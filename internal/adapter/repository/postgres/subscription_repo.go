package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autobid/walletd/internal/domain"
)

// SubscriptionRepository implements usecase.SubscriptionRepository.
// Users without a row are on the base tier.
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// GetTier returns the user's current tier, defaulting to the base tier.
func (r *SubscriptionRepository) GetTier(ctx context.Context, userID string) (domain.SubscriptionTier, error) {
	query := `SELECT tier FROM subscriptions WHERE user_id = $1`

	var tier string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TierBasic, nil
	}
	if err != nil {
		return "", err
	}

	return domain.SubscriptionTier(tier), nil
}

// SetTier upserts the user's tier.
func (r *SubscriptionRepository) SetTier(ctx context.Context, userID string, tier domain.SubscriptionTier, updatedAt time.Time) error {
	query := `
		INSERT INTO subscriptions (user_id, tier, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET tier = $2, updated_at = $3
	`

	_, err := r.pool.Exec(ctx, query, userID, string(tier), timeToPgTimestamptz(updatedAt))

	return err
}
