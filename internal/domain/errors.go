package domain

import "errors"

var (
	// Not-found errors
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")

	// Precondition errors turned into FAILED transactions by the ledger,
	// never returned as call errors from a ledger operation.
	ErrWalletInactive      = errors.New("wallet is not active")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Hard precondition errors
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidCurrency         = errors.New("invalid currency code")
	ErrWalletAlreadyOwned      = errors.New("user already has a wallet")
	ErrWalletLimitReached      = errors.New("max wallet count reached")
	ErrWalletOwnershipMismatch = errors.New("wallet does not belong to user")
	ErrUsernameTaken           = errors.New("username already taken")
	ErrCurrencyMismatch        = errors.New("cannot transfer between different currencies")
	ErrInvalidTier             = errors.New("unknown subscription tier")

	// ErrWalletConflict is returned when a balance write lost a race with a
	// concurrent writer. Retryable: re-read the wallet and try again.
	ErrWalletConflict = errors.New("wallet was modified concurrently")

	// ErrLedgerInconsistent flags a transfer whose debit committed but whose
	// credit did not. Not retryable; requires manual reconciliation.
	ErrLedgerInconsistent = errors.New("ledger inconsistency: debit committed without matching credit")
)
