package domain

import "encoding/json"

// OperatorSentinel is the identifier persisted for the ledger operator
// when a transaction has no wallet on one side (top-ups and charges).
const OperatorSentinel = "LEDGER_OPERATOR"

// Counterparty identifies one side of a transaction: either a wallet or
// the ledger operator. The zero value is the operator, so a Counterparty
// can never accidentally reference a wallet it was not built for.
type Counterparty struct {
	walletID string
}

// OperatorCounterparty returns the operator side.
func OperatorCounterparty() Counterparty {
	return Counterparty{}
}

// WalletCounterparty returns a counterparty referencing a wallet.
func WalletCounterparty(walletID string) Counterparty {
	return Counterparty{walletID: walletID}
}

// ParseCounterparty rebuilds a counterparty from its persisted form.
func ParseCounterparty(s string) Counterparty {
	if s == OperatorSentinel {
		return Counterparty{}
	}

	return Counterparty{walletID: s}
}

// IsOperator reports whether this side is the ledger operator.
func (c Counterparty) IsOperator() bool {
	return c.walletID == ""
}

// WalletID returns the referenced wallet id, if any.
func (c Counterparty) WalletID() (string, bool) {
	return c.walletID, c.walletID != ""
}

// String returns the persisted form: the wallet id or the operator sentinel.
func (c Counterparty) String() string {
	if c.walletID == "" {
		return OperatorSentinel
	}

	return c.walletID
}

// MarshalJSON encodes the counterparty as its persisted string form.
func (c Counterparty) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a counterparty from its persisted string form.
func (c *Counterparty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*c = ParseCounterparty(s)

	return nil
}
