package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx StoreTx, id string) (*domain.Wallet, error)
	// ListByOwner returns the owner's wallets ordered by creation time ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Wallet, error)
	// GetActiveByOwner returns the owner's oldest ACTIVE wallet.
	GetActiveByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	// UpdateBalance writes a new balance guarded by the version the caller
	// read. A stale version yields domain.ErrWalletConflict.
	UpdateBalance(ctx context.Context, tx StoreTx, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.WalletStatus, updatedAt time.Time) error
}

// TransactionRepository defines data access for the append-only transaction log.
type TransactionRepository interface {
	// Append inserts a transaction record. It never applies business rules;
	// the record may itself describe a FAILED operation.
	Append(ctx context.Context, tx StoreTx, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// ListByOwner returns the owner's transactions, newest first.
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
	// ListRecentByWallet returns the last n SUCCEEDED transactions in which
	// the wallet appears as sender or receiver and its owner is the record
	// owner, newest first.
	ListRecentByWallet(ctx context.Context, walletID string, n int) ([]*domain.Transaction, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SubscriptionRepository defines data access for subscription tiers.
type SubscriptionRepository interface {
	// GetTier returns the user's current tier, defaulting to the base tier
	// when the user never subscribed.
	GetTier(ctx context.Context, userID string) (domain.SubscriptionTier, error)
	SetTier(ctx context.Context, userID string, tier domain.SubscriptionTier, updatedAt time.Time) error
}

// StoreTx represents a storage-level transaction.
type StoreTx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles storage transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (StoreTx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
