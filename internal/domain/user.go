package domain

import "time"

// User is a marketplace account that owns wallets. The marketplace keeps
// the full profile; the ledger only needs identity and the username used
// to address peer transfers.
type User struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}
