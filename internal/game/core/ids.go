package core

import (
	"strings"

	"github.com/google/uuid"
)

// Typed string identifiers keep maps for different entity kinds from being
// confused with one another.
type (
	TribeID       string
	UnitID        string
	SettlementID  string
	TradeRouteID  string
	GreatPersonID string
	PromotionID   string
	UnitType      string
)

// NewUnitID mints a fresh unit identifier.
func NewUnitID() UnitID {
	return UnitID(uuid.NewString())
}

// NewSettlementID mints a fresh settlement identifier.
func NewSettlementID() SettlementID {
	return SettlementID(uuid.NewString())
}

// NewTradeRouteID mints a fresh trade route identifier.
func NewTradeRouteID() TradeRouteID {
	return TradeRouteID(uuid.NewString())
}

// PairKey returns the canonical order-independent key for a tribe pair.
// There is exactly one diplomatic relation per unordered pair.
func PairKey(a, b TribeID) string {
	if strings.Compare(string(a), string(b)) > 0 {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}

// DirKey returns a direction-sensitive key for a tribe pair, used where the
// proposer matters (peace rejection cooldowns).
func DirKey(from, to TribeID) string {
	return string(from) + ">" + string(to)
}
