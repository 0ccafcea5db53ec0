package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/autobid/walletd/internal/domain"
)

// TransactionUseCase serves read access to the transaction ledger.
type TransactionUseCase struct {
	txnRepo TransactionRepository
	cache   Cache
}

// NewTransactionUseCase creates a new TransactionUseCase. The cache may be
// nil, in which case recent-activity reads always hit storage.
func NewTransactionUseCase(txnRepo TransactionRepository, cache Cache) *TransactionUseCase {
	return &TransactionUseCase{
		txnRepo: txnRepo,
		cache:   cache,
	}
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListByOwnerInput represents input for listing an owner's transactions.
type ListByOwnerInput struct {
	OwnerID string
	Limit   int
	Offset  int
}

// ListByOwner lists an owner's transactions, newest first.
func (uc *TransactionUseCase) ListByOwner(ctx context.Context, input ListByOwnerInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByOwner(ctx, input.OwnerID, limit, offset)
}

// RecentActivity returns the wallet's last n SUCCEEDED transactions, newest
// first. Results are cached for a short TTL; a little staleness is fine for
// an activity widget.
func (uc *TransactionUseCase) RecentActivity(ctx context.Context, walletID string, n int) ([]*domain.Transaction, error) {
	if n <= 0 {
		n = DefaultRecentActivityLimit
	}

	key := fmt.Sprintf("activity:%s:%d", walletID, n)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil {
			var txns []*domain.Transaction
			if err := json.Unmarshal(data, &txns); err == nil {
				return txns, nil
			}
		}
	}

	txns, err := uc.txnRepo.ListRecentByWallet(ctx, walletID, n)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(txns); err == nil {
			if err := uc.cache.Set(ctx, key, data, RecentActivityCacheTTL); err != nil {
				log.Debug().Err(err).Str("wallet_id", walletID).Msg("activity cache write failed")
			}
		}
	}

	return txns, nil
}
