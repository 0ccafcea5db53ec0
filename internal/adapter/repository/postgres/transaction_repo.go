package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over the
// append-only transaction log. Rows are inserted and read, never updated.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, owner_id, sender, receiver, amount, balance_left, currency, type, status, description, failure_reason, created_at`

// Append inserts a transaction record inside the given storage transaction.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.StoreTx, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.OwnerID,
		txn.Sender.String(),
		txn.Receiver.String(),
		decimalToNumeric(txn.Amount),
		decimalToNumeric(txn.BalanceLeft),
		txn.Currency,
		string(txn.Type),
		string(txn.Status),
		txn.Description,
		txn.FailureReason,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// ListByOwner returns the owner's transactions, newest first.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListRecentByWallet returns the last n SUCCEEDED transactions in which the
// wallet appears as sender or receiver and its owner is the record owner.
func (r *TransactionRepository) ListRecentByWallet(ctx context.Context, walletID string, n int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (sender = $1 OR receiver = $1)
		  AND status = $2
		  AND owner_id = (SELECT owner_id FROM wallets WHERE id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, walletID, string(domain.TransactionStatusSucceeded), n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn         domain.Transaction
		sender      string
		receiver    string
		amount      pgtype.Numeric
		balanceLeft pgtype.Numeric
		txnType     string
		status      string
		createdAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.OwnerID,
		&sender,
		&receiver,
		&amount,
		&balanceLeft,
		&txn.Currency,
		&txnType,
		&status,
		&txn.Description,
		&txn.FailureReason,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Sender = domain.ParseCounterparty(sender)
	txn.Receiver = domain.ParseCounterparty(receiver)
	txn.Amount = numericToDecimal(amount)
	txn.BalanceLeft = numericToDecimal(balanceLeft)
	txn.Type = domain.TransactionType(txnType)
	txn.Status = domain.TransactionStatus(status)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
