package combat

import (
	"github.com/hexfall/tribesim/internal/game/core"
)

// InZoneOfControl reports whether a hex sits next to a military unit of a
// tribe at war with the mover's tribe.
func (r *Resolver) InZoneOfControl(s *core.GameState, h core.HexCoord, mover core.TribeID) bool {
	for _, n := range h.Neighbors() {
		for _, u := range s.UnitsAt(n) {
			if u.Civilian {
				continue
			}
			if r.dipl.AtWar(s, mover, u.Owner) {
				return true
			}
		}
	}
	return false
}

// ZoneFunc adapts zone-of-control lookups for movement planning. Entering a
// covered hex drains all remaining movement, on top of terrain cost.
func (r *Resolver) ZoneFunc(s *core.GameState, mover core.TribeID) core.ZoneFunc {
	return func(h core.HexCoord) bool {
		return r.InZoneOfControl(s, h, mover)
	}
}
