package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/domain"
)

// TransferUseCase moves funds between two users' wallets as two sequential
// ledger legs: a charge on the sender, then a credit on the receiver. The
// legs are not atomic with each other; a failed sender leg is returned as a
// FAILED transaction, while a receiver leg failing after the debit committed
// is a fatal inconsistency, never silently swallowed.
type TransferUseCase struct {
	ledger     *LedgerUseCase
	txManager  TxManager
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	userRepo   UserRepository
	idGen      IDGenerator
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	ledger *LedgerUseCase,
	txManager TxManager,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	userRepo UserRepository,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		ledger:     ledger,
		txManager:  txManager,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		userRepo:   userRepo,
		idGen:      idGen,
	}
}

// TransferInput represents a peer-to-peer transfer request.
type TransferInput struct {
	SenderID     string
	FromWalletID string
	ToUsername   string
	Amount       decimal.Decimal
}

// TransferFunds executes the transfer and returns the sender-side
// transaction. A receiver with no ACTIVE wallet or a failed sender charge
// comes back as a FAILED transaction; an unknown sender wallet or a
// wallet the sender does not own fails the call itself.
func (uc *TransferUseCase) TransferFunds(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	senderWallet, err := uc.walletRepo.GetByID(ctx, input.FromWalletID)
	if err != nil {
		return nil, err
	}

	if input.SenderID != "" && senderWallet.OwnerID != input.SenderID {
		return nil, domain.ErrWalletOwnershipMismatch
	}

	receiverWallet, err := uc.resolveReceiver(ctx, input.ToUsername)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrWalletNotFound) {
			return uc.recordReceiverUnavailable(ctx, senderWallet, input)
		}

		return nil, err
	}

	if receiverWallet.Currency != senderWallet.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	charged, err := uc.ledger.Charge(ctx, ChargeInput{
		OwnerID:     senderWallet.OwnerID,
		WalletID:    senderWallet.ID,
		Amount:      input.Amount,
		Description: fmt.Sprintf("Transfer to %s", input.ToUsername),
		Receiver:    domain.WalletCounterparty(receiverWallet.ID),
	})
	if err != nil {
		return nil, err
	}

	if !charged.Succeeded() {
		return charged, nil
	}

	if err := uc.creditReceiver(ctx, senderWallet, receiverWallet, input.Amount); err != nil {
		// The debit is durable but the credit is not. This needs manual
		// reconciliation; retrying blindly risks double-crediting.
		log.Error().
			Err(err).
			Str("debit_transaction_id", charged.ID).
			Str("sender_wallet_id", senderWallet.ID).
			Str("receiver_wallet_id", receiverWallet.ID).
			Str("amount", input.Amount.String()).
			Msg("transfer credit failed after debit committed")

		return nil, fmt.Errorf("%w: debit transaction %s", domain.ErrLedgerInconsistent, charged.ID)
	}

	return charged, nil
}

// resolveReceiver finds the receiver's oldest ACTIVE wallet.
func (uc *TransferUseCase) resolveReceiver(ctx context.Context, username string) (*domain.Wallet, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return uc.walletRepo.GetActiveByOwner(ctx, user.ID)
}

// recordReceiverUnavailable appends the sender-side FAILED record for a
// transfer whose receiver has no active wallet. No balance changes.
func (uc *TransferUseCase) recordReceiverUnavailable(ctx context.Context, senderWallet *domain.Wallet, input TransferInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		OwnerID:       senderWallet.OwnerID,
		Sender:        domain.WalletCounterparty(senderWallet.ID),
		Receiver:      domain.OperatorCounterparty(),
		Amount:        input.Amount,
		BalanceLeft:   senderWallet.Balance,
		Currency:      senderWallet.Currency,
		Type:          domain.TransactionTypeWithdrawal,
		Status:        domain.TransactionStatusFailed,
		Description:   fmt.Sprintf("Transfer to %s", input.ToUsername),
		FailureReason: domain.ReasonReceiverInactive,
		CreatedAt:     time.Now().UTC(),
	}

	if err := uc.txnRepo.Append(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// creditReceiver posts the second leg: credit the receiver wallet and
// append the receiver-owned DEPOSIT record, in one storage transaction.
func (uc *TransferUseCase) creditReceiver(ctx context.Context, senderWallet, receiverWallet *domain.Wallet, amount decimal.Decimal) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, receiverWallet.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	newBalance := wallet.ApplyCredit(amount)

	if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, wallet.Version, now); err != nil {
		return err
	}

	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		OwnerID:     wallet.OwnerID,
		Sender:      domain.WalletCounterparty(senderWallet.ID),
		Receiver:    domain.WalletCounterparty(wallet.ID),
		Amount:      amount,
		BalanceLeft: newBalance,
		Currency:    wallet.Currency,
		Type:        domain.TransactionTypeDeposit,
		Status:      domain.TransactionStatusSucceeded,
		Description: fmt.Sprintf("Transfer from wallet %s", senderWallet.ID),
		CreatedAt:   now,
	}

	if err := uc.txnRepo.Append(ctx, tx, txn); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
