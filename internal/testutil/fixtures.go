package testutil

import (
	"fmt"

	"github.com/hexfall/tribesim/internal/game/core"
)

// CreateTestMap builds a state whose tiles cover all hexes within the given
// radius of the origin, all plains with no rivers or resources.
func CreateTestMap(radius int) *core.GameState {
	s := core.NewGameState()
	for _, h := range core.Range(core.HexCoord{}, radius) {
		s.Tiles[h] = &core.Tile{Coord: h, Terrain: core.TerrainPlains}
	}
	return s
}

// CreateTestTribes registers the given tribe ids on the state with matching
// names and the balanced personality.
func CreateTestTribes(s *core.GameState, ids ...core.TribeID) {
	for _, id := range ids {
		s.Tribes[id] = &core.Tribe{ID: id, Name: string(id), Personality: "balanced"}
	}
}

// PlaceUnit adds a minimal unit of the given type at a position. Stats are
// deliberately simple; tests that care about exact stats build units via
// the unit package instead.
func PlaceUnit(s *core.GameState, id core.UnitID, owner core.TribeID, t core.UnitType, pos core.HexCoord) *core.Unit {
	u := &core.Unit{
		ID:                id,
		Type:              t,
		Owner:             owner,
		Position:          pos,
		Health:            100,
		MaxHealth:         100,
		MovementRemaining: 2,
		MaxMovement:       2,
		CombatStrength:    20,
		Vision:            2,
	}
	s.Units[id] = u
	return u
}

// PlaceSettlement adds a settlement at a position with full health.
func PlaceSettlement(s *core.GameState, id core.SettlementID, owner core.TribeID, pos core.HexCoord) *core.Settlement {
	st := &core.Settlement{
		ID:         id,
		Name:       fmt.Sprintf("%s-%s", owner, id),
		Owner:      owner,
		Position:   pos,
		Health:     100,
		MaxHealth:  100,
		Population: 1,
	}
	s.Settlements[id] = st
	return st
}
