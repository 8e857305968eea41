package core

// Rarity is a unit's quality tier, rolled at creation.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = [...]string{"common", "uncommon", "rare", "epic", "legendary"}

func (r Rarity) String() string {
	if int(r) < 0 || int(r) >= len(rarityNames) {
		return "unknown"
	}
	return rarityNames[r]
}

// Unit is a single mobile piece on the map.
//
// Invariants: 0 <= Health <= MaxHealth, 0 <= MovementRemaining <= MaxMovement,
// strengths are non-negative.
type Unit struct {
	ID       UnitID   `json:"id"`
	Type     UnitType `json:"type"`
	Owner    TribeID  `json:"owner"`
	Position HexCoord `json:"position"`

	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`

	MovementRemaining int `json:"movement_remaining"`
	MaxMovement       int `json:"max_movement"`

	CombatStrength     int `json:"combat_strength"`
	RangedStrength     int `json:"ranged_strength"`
	SettlementStrength int `json:"settlement_strength"`
	Vision             int `json:"vision"`

	Experience        int           `json:"experience"`
	Level             int           `json:"level"`
	Promotions        []PromotionID `json:"promotions,omitempty"`
	PendingPromotions int           `json:"pending_promotions,omitempty"`

	Rarity   Rarity `json:"rarity"`
	Civilian bool   `json:"civilian,omitempty"`
	Siege    bool   `json:"siege,omitempty"`
	HasActed bool   `json:"has_acted,omitempty"`
}

// IsRanged reports whether the unit attacks at range.
func (u *Unit) IsRanged() bool {
	return u.RangedStrength > 0
}

// HasPromotion reports whether the unit holds the given promotion.
func (u *Unit) HasPromotion(id PromotionID) bool {
	for _, p := range u.Promotions {
		if p == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the unit.
func (u *Unit) Clone() *Unit {
	c := *u
	if u.Promotions != nil {
		c.Promotions = make([]PromotionID, len(u.Promotions))
		copy(c.Promotions, u.Promotions)
	}
	return &c
}
