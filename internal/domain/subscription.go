package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SubscriptionTier is a user's paid plan on the marketplace.
type SubscriptionTier string

const (
	// TierBasic is the default plan every user starts on.
	TierBasic SubscriptionTier = "BASIC"

	TierSilver SubscriptionTier = "SILVER"
	TierGold   SubscriptionTier = "GOLD"
)

var tierPrices = map[SubscriptionTier]string{
	TierSilver: "9.99",
	TierGold:   "24.99",
}

var tierRank = map[SubscriptionTier]int{
	TierBasic:  0,
	TierSilver: 1,
	TierGold:   2,
}

// ParseTier normalizes and validates a tier name.
func ParseTier(s string) (SubscriptionTier, error) {
	tier := SubscriptionTier(strings.ToUpper(strings.TrimSpace(s)))
	switch tier {
	case TierBasic, TierSilver, TierGold:
		return tier, nil
	default:
		return "", ErrInvalidTier
	}
}

// IsDefault reports whether this is the base plan.
func (t SubscriptionTier) IsDefault() bool {
	return t == TierBasic
}

// UpgradesFrom reports whether moving to t from current is a genuine
// upgrade. Downgrades are not offered.
func (t SubscriptionTier) UpgradesFrom(current SubscriptionTier) bool {
	return tierRank[t] > tierRank[current]
}

// Price returns the upgrade price of the tier. The base tier is free.
func (t SubscriptionTier) Price() decimal.Decimal {
	price, ok := tierPrices[t]
	if !ok {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(price)

	return d
}

// MaxWallets returns how many wallets the tier allows, 0 meaning no limit.
// Only the base tier carries a cap; paid tiers are uncapped until product
// says otherwise.
func (t SubscriptionTier) MaxWallets() int {
	if t.IsDefault() {
		return 1
	}

	return 0
}
