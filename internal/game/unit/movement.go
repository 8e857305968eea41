package unit

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// BlockReason distinguishes why a hex cannot be entered. Callers branch on
// it: an enemy-occupied hex means "attack instead", a stack-capped hex means
// "blocked".
type BlockReason int

const (
	BlockNone BlockReason = iota
	BlockTerrain
	BlockEnemyOccupied
	BlockStackLimit
)

// Entry describes the cost of a unit entering a hex.
type Entry struct {
	Cost    int
	Blocked BlockReason
}

// EntryFor computes the movement cost for u entering the hex at h, or the
// reason entry is impossible.
func EntryFor(s *core.GameState, u *core.Unit, h core.HexCoord) Entry {
	tile, ok := s.Tile(h)
	if !ok || tile.Terrain.IsImpassable() {
		return Entry{Cost: core.CostImpassable, Blocked: BlockTerrain}
	}

	mv := config.Get().Game.Movement

	occupants := s.UnitsAt(h)
	sameClass := 0
	for _, o := range occupants {
		if o.Owner != u.Owner {
			return Entry{Cost: core.CostImpassable, Blocked: BlockEnemyOccupied}
		}
		if o.Civilian == u.Civilian {
			sameClass++
		}
	}

	limit := mv.MilitaryStackCap
	if u.Civilian {
		limit = mv.CivilianStackCap
	}
	if sameClass >= limit {
		return Entry{Cost: core.CostImpassable, Blocked: BlockStackLimit}
	}

	cost := mv.OpenCost
	if tile.Terrain.IsRough() {
		cost = mv.RoughCost
	}
	return Entry{Cost: cost}
}

// CostFunc adapts EntryFor into the hex search cost signature for u.
func CostFunc(s *core.GameState, u *core.Unit) core.CostFunc {
	return func(h core.HexCoord) int {
		return EntryFor(s, u, h).Cost
	}
}

// ReachableHexes returns every hex u can reach this turn and the movement
// left when stopping there. The unit's own starting hex is excluded. zoc,
// when non-nil, layers the zone-of-control drain on top of terrain costs.
func ReachableHexes(s *core.GameState, u *core.Unit, zoc core.ZoneFunc) map[core.HexCoord]int {
	reach := core.Reachable(u.Position, u.MovementRemaining, CostFunc(s, u), s.InBounds, zoc)
	delete(reach, u.Position)
	return reach
}
