package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

const walletColumns = `id, owner_id, status, balance, currency, version, created_at, updated_at`

// Create inserts a new wallet.
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		wallet.ID,
		wallet.OwnerID,
		string(wallet.Status),
		decimalToNumeric(wallet.Balance),
		wallet.Currency,
		wallet.Version,
		timeToPgTimestamptz(wallet.CreatedAt),
		timeToPgTimestamptz(wallet.UpdatedAt),
	)

	return err
}

// GetByID retrieves a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE id = $1
	`

	return scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a wallet by ID with a FOR UPDATE lock, so the
// row stays pinned until the surrounding transaction commits.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.StoreTx, id string) (*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE id = $1
		FOR UPDATE
	`

	return scanWallet(pgxTx.QueryRow(ctx, query, id))
}

// ListByOwner returns the owner's wallets ordered by creation time ascending.
func (r *WalletRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}

	return wallets, rows.Err()
}

// GetActiveByOwner returns the owner's oldest ACTIVE wallet.
func (r *WalletRepository) GetActiveByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE owner_id = $1 AND status = $2
		ORDER BY created_at ASC
		LIMIT 1
	`

	return scanWallet(r.pool.QueryRow(ctx, query, ownerID, string(domain.WalletStatusActive)))
}

// CountByOwner counts the owner's wallets.
func (r *WalletRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `SELECT COUNT(*) FROM wallets WHERE owner_id = $1`

	var count int
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(&count)

	return count, err
}

// UpdateBalance writes a new balance guarded by the version the caller read.
// A stale version affects zero rows and yields domain.ErrWalletConflict.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.StoreTx, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE wallets
		SET balance = $2, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $4
	`

	tag, err := pgxTx.Exec(ctx, query,
		id,
		decimalToNumeric(balance),
		timeToPgTimestamptz(updatedAt),
		version,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWalletConflict
	}

	return nil
}

// UpdateStatus updates a wallet's status.
func (r *WalletRepository) UpdateStatus(ctx context.Context, id string, status domain.WalletStatus, updatedAt time.Time) error {
	query := `
		UPDATE wallets
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, string(status), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var (
		wallet    domain.Wallet
		status    string
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&wallet.ID,
		&wallet.OwnerID,
		&status,
		&balance,
		&wallet.Currency,
		&wallet.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, err
	}

	wallet.Status = domain.WalletStatus(status)
	wallet.Balance = numericToDecimal(balance)
	wallet.CreatedAt = createdAt.Time
	wallet.UpdatedAt = updatedAt.Time

	return &wallet, nil
}
