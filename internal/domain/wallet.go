package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletStatus is the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletStatusActive      WalletStatus = "ACTIVE"
	WalletStatusDeactivated WalletStatus = "DEACTIVATED"
)

// Wallet is a per-user balance container in a single currency.
// Balance changes only through the ledger use case, never directly.
type Wallet struct {
	ID        string
	OwnerID   string
	Status    WalletStatus
	Balance   decimal.Decimal
	Currency  string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the wallet accepts ledger operations.
func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}

// ValidateDebit checks if the wallet can be debited by amount.
// Status is checked before funds, so an inactive wallet is reported
// as inactive even when it also lacks funds.
func (w *Wallet) ValidateDebit(amount decimal.Decimal) error {
	if !w.IsActive() {
		return ErrWalletInactive
	}

	if w.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	return nil
}

// ValidateCredit checks if the wallet can be credited.
func (w *Wallet) ValidateCredit(amount decimal.Decimal) error {
	if !w.IsActive() {
		return ErrWalletInactive
	}

	return nil
}

// ApplyDebit returns the balance after a debit.
func (w *Wallet) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (w *Wallet) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Add(amount)
}

// ToggledStatus returns the opposite lifecycle state.
func (w *Wallet) ToggledStatus() WalletStatus {
	if w.Status == WalletStatusActive {
		return WalletStatusDeactivated
	}

	return WalletStatusActive
}
