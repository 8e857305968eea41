package combat

import (
	"github.com/hexfall/tribesim/internal/common"
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// HealUnit applies end-of-turn healing to one unit. Units that acted this
// turn skip healing unless a regeneration promotion overrides it. The heal
// tier depends on where the unit stands.
func (r *Resolver) HealUnit(s *core.GameState, u *core.Unit) int {
	if u.Health >= u.MaxHealth {
		return 0
	}
	if u.HasActed && !hasRegeneration(u) {
		return 0
	}

	cfg := config.Get().Game.Healing
	amount := cfg.Elsewhere
	if st, ok := s.SettlementAt(u.Position); ok && st.Owner == u.Owner {
		amount = cfg.InSettlement
	} else if tile, ok := s.Tile(u.Position); ok && tile.Owner == u.Owner {
		amount = cfg.FriendlyTerritory
	}

	amount = common.Min(amount, u.MaxHealth-u.Health)
	u.Health += amount
	return amount
}

// HealAll heals every living unit in deterministic order.
func (r *Resolver) HealAll(s *core.GameState) {
	for _, id := range s.SortedUnitIDs() {
		r.HealUnit(s, s.Units[id])
	}
}

func hasRegeneration(u *core.Unit) bool {
	promos := config.Get().Game.Promotions
	for _, id := range u.Promotions {
		if p, ok := promos[string(id)]; ok && p.Regeneration {
			return true
		}
	}
	return false
}
