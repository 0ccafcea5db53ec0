package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/usecase"
	"github.com/autobid/walletd/internal/usecase/mocks"
)

func newLedgerFixture() (*usecase.LedgerUseCase, *mocks.MockWalletRepository, *mocks.MockTransactionRepository) {
	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewLedgerUseCase(
		mocks.NewMockTxManager(),
		walletRepo,
		txnRepo,
		mocks.NewMockIDGenerator(),
		nil,
	)

	return uc, walletRepo, txnRepo
}

func activeWallet(id, ownerID, balance string) *domain.Wallet {
	return &domain.Wallet{
		ID:       id,
		OwnerID:  ownerID,
		Status:   domain.WalletStatusActive,
		Balance:  decimal.RequireFromString(balance),
		Currency: "EUR",
	}
}

func TestLedgerUseCase_Charge(t *testing.T) {
	tests := []struct {
		name          string
		wallet        *domain.Wallet
		amount        string
		wantStatus    domain.TransactionStatus
		wantReason    string
		wantBalance   string
		wantTxBalance string
	}{
		{
			name:          "successful charge",
			wallet:        activeWallet("wal-1", "usr-1", "100.00"),
			amount:        "30.00",
			wantStatus:    domain.TransactionStatusSucceeded,
			wantBalance:   "70.00",
			wantTxBalance: "70.00",
		},
		{
			name:          "insufficient balance leaves wallet untouched",
			wallet:        activeWallet("wal-1", "usr-1", "20.00"),
			amount:        "50.00",
			wantStatus:    domain.TransactionStatusFailed,
			wantReason:    "Insufficient balance",
			wantBalance:   "20.00",
			wantTxBalance: "20.00",
		},
		{
			name: "inactive wallet reported before insufficient balance",
			wallet: &domain.Wallet{
				ID: "wal-1", OwnerID: "usr-1",
				Status:  domain.WalletStatusDeactivated,
				Balance: decimal.RequireFromString("5.00"), Currency: "EUR",
			},
			amount:        "50.00",
			wantStatus:    domain.TransactionStatusFailed,
			wantReason:    "Inactive wallet status",
			wantBalance:   "5.00",
			wantTxBalance: "5.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, walletRepo, txnRepo := newLedgerFixture()
			walletRepo.Seed(tt.wallet)

			txn, err := uc.Charge(context.Background(), usecase.ChargeInput{
				OwnerID:     "usr-1",
				WalletID:    "wal-1",
				Amount:      decimal.RequireFromString(tt.amount),
				Description: "Subscription upgrade to GOLD",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if txn.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, txn.Status)
			}
			if txn.FailureReason != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, txn.FailureReason)
			}
			if txn.Type != domain.TransactionTypeWithdrawal {
				t.Errorf("expected WITHDRAWAL, got %s", txn.Type)
			}
			if !txn.BalanceLeft.Equal(decimal.RequireFromString(tt.wantTxBalance)) {
				t.Errorf("expected balance snapshot %s, got %s", tt.wantTxBalance, txn.BalanceLeft)
			}
			if !tt.wallet.Balance.Equal(decimal.RequireFromString(tt.wantBalance)) {
				t.Errorf("expected wallet balance %s, got %s", tt.wantBalance, tt.wallet.Balance)
			}

			// Exactly one record per attempt, success or failure.
			if got := len(txnRepo.All()); got != 1 {
				t.Errorf("expected exactly 1 appended transaction, got %d", got)
			}

			sender, _ := txn.Sender.WalletID()
			if sender != "wal-1" {
				t.Errorf("expected sender wal-1, got %q", txn.Sender)
			}
			if !txn.Receiver.IsOperator() {
				t.Errorf("expected operator receiver, got %q", txn.Receiver)
			}
		})
	}
}

func TestLedgerUseCase_Charge_WalletNotFound(t *testing.T) {
	uc, _, txnRepo := newLedgerFixture()

	_, err := uc.Charge(context.Background(), usecase.ChargeInput{
		WalletID: "missing",
		Amount:   decimal.RequireFromString("10.00"),
	})
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}

	if len(txnRepo.All()) != 0 {
		t.Error("no transaction should be recorded for an unknown wallet")
	}
}

func TestLedgerUseCase_Charge_OwnershipMismatch(t *testing.T) {
	uc, walletRepo, _ := newLedgerFixture()
	walletRepo.Seed(activeWallet("wal-1", "usr-1", "100.00"))

	_, err := uc.Charge(context.Background(), usecase.ChargeInput{
		OwnerID:  "usr-2",
		WalletID: "wal-1",
		Amount:   decimal.RequireFromString("10.00"),
	})
	if !errors.Is(err, domain.ErrWalletOwnershipMismatch) {
		t.Fatalf("expected ErrWalletOwnershipMismatch, got %v", err)
	}
}

func TestLedgerUseCase_Charge_InvalidAmount(t *testing.T) {
	uc, walletRepo, _ := newLedgerFixture()
	walletRepo.Seed(activeWallet("wal-1", "usr-1", "100.00"))

	for _, amount := range []string{"0", "-3.00"} {
		_, err := uc.Charge(context.Background(), usecase.ChargeInput{
			WalletID: "wal-1",
			Amount:   decimal.RequireFromString(amount),
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestLedgerUseCase_TopUp(t *testing.T) {
	t.Run("successful top-up", func(t *testing.T) {
		uc, walletRepo, txnRepo := newLedgerFixture()
		wallet := activeWallet("wal-1", "usr-1", "70.00")
		walletRepo.Seed(wallet)

		txn, err := uc.TopUp(context.Background(), usecase.TopUpInput{
			WalletID: "wal-1",
			Amount:   decimal.RequireFromString("25.00"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !txn.Succeeded() {
			t.Fatalf("expected SUCCEEDED, got %s (%s)", txn.Status, txn.FailureReason)
		}
		if txn.Type != domain.TransactionTypeDeposit {
			t.Errorf("expected DEPOSIT, got %s", txn.Type)
		}
		if !wallet.Balance.Equal(decimal.RequireFromString("95.00")) {
			t.Errorf("expected balance 95.00, got %s", wallet.Balance)
		}
		if !txn.BalanceLeft.Equal(decimal.RequireFromString("95.00")) {
			t.Errorf("expected snapshot 95.00, got %s", txn.BalanceLeft)
		}
		if !txn.Sender.IsOperator() {
			t.Errorf("expected operator sender, got %q", txn.Sender)
		}
		if receiver, _ := txn.Receiver.WalletID(); receiver != "wal-1" {
			t.Errorf("expected receiver wal-1, got %q", txn.Receiver)
		}
		if len(txnRepo.All()) != 1 {
			t.Errorf("expected exactly 1 appended transaction, got %d", len(txnRepo.All()))
		}
	})

	t.Run("deactivated wallet fails without mutation", func(t *testing.T) {
		uc, walletRepo, txnRepo := newLedgerFixture()
		wallet := &domain.Wallet{
			ID: "wal-1", OwnerID: "usr-1",
			Status:  domain.WalletStatusDeactivated,
			Balance: decimal.RequireFromString("70.00"), Currency: "EUR",
		}
		walletRepo.Seed(wallet)

		txn, err := uc.TopUp(context.Background(), usecase.TopUpInput{
			WalletID: "wal-1",
			Amount:   decimal.RequireFromString("25.00"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if txn.Status != domain.TransactionStatusFailed {
			t.Fatalf("expected FAILED, got %s", txn.Status)
		}
		if txn.FailureReason != "Inactive Wallet" {
			t.Errorf("expected reason %q, got %q", "Inactive Wallet", txn.FailureReason)
		}
		if !wallet.Balance.Equal(decimal.RequireFromString("70.00")) {
			t.Errorf("balance must stay 70.00, got %s", wallet.Balance)
		}
		if len(txnRepo.All()) != 1 {
			t.Errorf("failed attempt must still append one record, got %d", len(txnRepo.All()))
		}
	})
}

func TestLedgerUseCase_TopUp_RetriesOnConflict(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	wallet := activeWallet("wal-1", "usr-1", "10.00")
	walletRepo.Seed(wallet)

	// First write attempt loses the race, second goes through.
	writes := 0
	walletRepo.UpdateBalanceFunc = func(ctx context.Context, tx usecase.StoreTx, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error {
		writes++
		if writes == 1 {
			return domain.ErrWalletConflict
		}
		wallet.Balance = balance
		wallet.Version++
		return nil
	}

	uc := usecase.NewLedgerUseCase(
		mocks.NewMockTxManager(),
		walletRepo,
		txnRepo,
		mocks.NewMockIDGenerator(),
		retrierFunc(func(ctx context.Context, op func() error) error {
			for {
				err := op()
				if !errors.Is(err, domain.ErrWalletConflict) {
					return err
				}
			}
		}),
	)

	txn, err := uc.TopUp(context.Background(), usecase.TopUpInput{
		WalletID: "wal-1",
		Amount:   decimal.RequireFromString("5.00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if writes != 2 {
		t.Errorf("expected 2 write attempts, got %d", writes)
	}
	if !txn.Succeeded() {
		t.Errorf("expected SUCCEEDED after retry, got %s", txn.Status)
	}
	if !wallet.Balance.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("expected balance 15.00, got %s", wallet.Balance)
	}
	// The losing attempt must not leave a stray record behind.
	if got := len(txnRepo.All()); got != 1 {
		t.Errorf("expected 1 appended transaction, got %d", got)
	}
}

type retrierFunc func(ctx context.Context, op func() error) error

func (f retrierFunc) Retry(ctx context.Context, op func() error) error {
	return f(ctx, op)
}
