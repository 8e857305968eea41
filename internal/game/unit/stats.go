// Package unit holds per-type unit stats, rarity rolls and movement rules.
package unit

import (
	"fmt"

	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// BaseStats returns the configured base stats for a unit type.
func BaseStats(t core.UnitType) (config.UnitConfig, bool) {
	stats, ok := config.Get().Game.Units[string(t)]
	return stats, ok
}

// Create builds a new unit of the given type at the given position. When
// rarity is nil it is rolled from the configured weight table through rng.
// Final stats are base stats plus the rarity tier's bonuses; ranged and
// settlement strengths only receive the combat bonus when their base value
// is nonzero.
func Create(t core.UnitType, owner core.TribeID, pos core.HexCoord, rarity *core.Rarity, rng core.Rand) (*core.Unit, error) {
	stats, ok := BaseStats(t)
	if !ok {
		return nil, fmt.Errorf("unknown unit type %q", t)
	}

	tier := core.RarityCommon
	if rarity != nil {
		tier = *rarity
	} else {
		tier = RollRarity(rng)
	}
	bonus := rarityBonus(tier)

	u := &core.Unit{
		ID:                core.NewUnitID(),
		Type:              t,
		Owner:             owner,
		Position:          pos,
		Health:            stats.MaxHealth,
		MaxHealth:         stats.MaxHealth,
		MovementRemaining: stats.MaxMovement + bonus.Movement,
		MaxMovement:       stats.MaxMovement + bonus.Movement,
		CombatStrength:    stats.CombatStrength,
		RangedStrength:    stats.RangedStrength,
		SettlementStrength: stats.SettlementStrength,
		Vision:            stats.Vision + bonus.Vision,
		Rarity:            tier,
		Civilian:          stats.Civilian,
		Siege:             stats.Siege,
	}

	if !u.Civilian {
		u.CombatStrength += bonus.Combat
	}
	if stats.RangedStrength > 0 {
		u.RangedStrength += bonus.Combat
	}
	if stats.SettlementStrength > 0 {
		u.SettlementStrength += bonus.Combat
	}

	return u, nil
}

func rarityBonus(tier core.Rarity) config.RarityBonuses {
	bonuses := config.Get().Game.Rarity.Bonuses
	if int(tier) < 0 || int(tier) >= len(bonuses) {
		return config.RarityBonuses{}
	}
	return bonuses[tier]
}
