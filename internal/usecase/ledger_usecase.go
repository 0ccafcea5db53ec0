package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/domain"
)

// LedgerUseCase is the single choke point through which wallet balances
// change. Every attempt, successful or not, appends exactly one transaction
// record. Precondition failures (inactive wallet, insufficient funds) are
// not errors: they come back as a FAILED transaction the caller inspects.
type LedgerUseCase struct {
	txManager  TxManager
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	idGen      IDGenerator
	retrier    Retrier
}

// NewLedgerUseCase creates a new LedgerUseCase. The retrier may be nil,
// in which case conflicting writes surface directly to the caller.
func NewLedgerUseCase(
	txManager TxManager,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		idGen:      idGen,
		retrier:    retrier,
	}
}

// TopUpInput represents input for crediting a wallet.
type TopUpInput struct {
	WalletID string
	Amount   decimal.Decimal
}

// ChargeInput represents input for debiting a wallet.
type ChargeInput struct {
	// OwnerID, when set, must match the wallet's owner.
	OwnerID     string
	WalletID    string
	Amount      decimal.Decimal
	Description string
	// Receiver is the recorded counter-party of the debit. The zero value
	// is the ledger operator; transfers set the receiving wallet.
	Receiver domain.Counterparty
}

// TopUp credits a wallet. An inactive wallet yields a FAILED transaction
// without touching the balance.
func (uc *LedgerUseCase) TopUp(ctx context.Context, input TopUpInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	err := uc.retry(ctx, func() error {
		var err error
		txn, err = uc.topUpOnce(ctx, input)

		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func (uc *LedgerUseCase) topUpOnce(ctx context.Context, input TopUpInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, input.WalletID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		OwnerID:     wallet.OwnerID,
		Sender:      domain.OperatorCounterparty(),
		Receiver:    domain.WalletCounterparty(wallet.ID),
		Amount:      input.Amount,
		Currency:    wallet.Currency,
		Type:        domain.TransactionTypeDeposit,
		Description: "Top up",
		CreatedAt:   now,
	}

	if err := wallet.ValidateCredit(input.Amount); err != nil {
		txn.Status = domain.TransactionStatusFailed
		txn.FailureReason = domain.ReasonInactiveWallet
		txn.BalanceLeft = wallet.Balance
	} else {
		newBalance := wallet.ApplyCredit(input.Amount)
		if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, wallet.Version, now); err != nil {
			return nil, err
		}

		txn.Status = domain.TransactionStatusSucceeded
		txn.BalanceLeft = newBalance
	}

	if err := uc.txnRepo.Append(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// Charge debits a wallet on behalf of another subsystem. An inactive wallet
// or insufficient funds yields a FAILED transaction without touching the
// balance; the inactive check wins when both apply.
func (uc *LedgerUseCase) Charge(ctx context.Context, input ChargeInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	err := uc.retry(ctx, func() error {
		var err error
		txn, err = uc.chargeOnce(ctx, input)

		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func (uc *LedgerUseCase) chargeOnce(ctx context.Context, input ChargeInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, input.WalletID)
	if err != nil {
		return nil, err
	}

	if input.OwnerID != "" && wallet.OwnerID != input.OwnerID {
		return nil, domain.ErrWalletOwnershipMismatch
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		OwnerID:     wallet.OwnerID,
		Sender:      domain.WalletCounterparty(wallet.ID),
		Receiver:    input.Receiver,
		Amount:      input.Amount,
		Currency:    wallet.Currency,
		Type:        domain.TransactionTypeWithdrawal,
		Description: input.Description,
		CreatedAt:   now,
	}

	if err := wallet.ValidateDebit(input.Amount); err != nil {
		txn.Status = domain.TransactionStatusFailed
		txn.FailureReason = chargeFailureReason(err)
		txn.BalanceLeft = wallet.Balance
	} else {
		newBalance := wallet.ApplyDebit(input.Amount)
		if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, wallet.Version, now); err != nil {
			return nil, err
		}

		txn.Status = domain.TransactionStatusSucceeded
		txn.BalanceLeft = newBalance
	}

	if err := uc.txnRepo.Append(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

func (uc *LedgerUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}

func chargeFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrWalletInactive):
		return domain.ReasonInactiveWalletStatus
	case errors.Is(err, domain.ErrInsufficientBalance):
		return domain.ReasonInsufficientBalance
	default:
		return err.Error()
	}
}
