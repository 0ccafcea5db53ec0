package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType describes the direction of a transaction from the
// owner's point of view.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionStatus is the recorded outcome of a ledger operation attempt.
type TransactionStatus string

const (
	TransactionStatusSucceeded TransactionStatus = "SUCCEEDED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Failure reasons recorded on FAILED transactions. These are shown to the
// user verbatim, so the exact wording is part of the contract.
const (
	ReasonInactiveWallet       = "Inactive Wallet"
	ReasonInactiveWalletStatus = "Inactive wallet status"
	ReasonInsufficientBalance  = "Insufficient balance"
	ReasonReceiverInactive     = "Receiver wallet is inactive"
)

// Transaction is an immutable record of a single ledger operation attempt.
// A record is appended whether the operation succeeded or failed; it is
// never updated afterwards.
type Transaction struct {
	ID            string
	OwnerID       string
	Sender        Counterparty
	Receiver      Counterparty
	Amount        decimal.Decimal
	BalanceLeft   decimal.Decimal
	Currency      string
	Type          TransactionType
	Status        TransactionStatus
	Description   string
	FailureReason string
	CreatedAt     time.Time
}

// Succeeded reports whether the recorded operation went through.
// Callers branch on this instead of catching errors for business failures.
func (t *Transaction) Succeeded() bool {
	return t.Status == TransactionStatusSucceeded
}
