package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfall/tribesim/internal/game/core"
)

func fixedRand(v float64) core.Rand {
	return func() float64 { return v }
}

func TestRollRarity_CutPoints(t *testing.T) {
	tests := []struct {
		name string
		roll float64 // uniform draw in [0,1); scaled by total weight 100
		want core.Rarity
	}{
		{"Zero", 0.0, core.RarityCommon},
		{"TopOfCommon", 0.499, core.RarityCommon},
		{"BottomOfUncommon", 0.50, core.RarityUncommon},
		{"TopOfUncommon", 0.799, core.RarityUncommon},
		{"Rare", 0.80, core.RarityRare},
		{"Epic", 0.95, core.RarityEpic},
		{"Legendary", 0.99, core.RarityLegendary},
		{"AlmostOne", 0.9999, core.RarityLegendary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RollRarity(fixedRand(tt.roll)))
		})
	}
}

func TestRollRarity_Distribution(t *testing.T) {
	rng := core.SeededRand(42)
	counts := make(map[core.Rarity]int)
	const draws = 200000
	for i := 0; i < draws; i++ {
		counts[RollRarity(rng)]++
	}

	expected := map[core.Rarity]float64{
		core.RarityCommon:    0.50,
		core.RarityUncommon:  0.30,
		core.RarityRare:      0.15,
		core.RarityEpic:      0.04,
		core.RarityLegendary: 0.01,
	}
	for tier, p := range expected {
		got := float64(counts[tier]) / draws
		assert.InDelta(t, p, got, 0.01, "tier %s", tier)
	}
}

func TestCreate_AppliesRarityBonuses(t *testing.T) {
	legendary := core.RarityLegendary
	u, err := Create("warrior", "azure", core.HexCoord{Q: 0, R: 0}, &legendary, nil)
	require.NoError(t, err)

	// warrior base 20 combat, 2 movement; legendary grants +10/+1/+2.
	assert.Equal(t, 30, u.CombatStrength)
	assert.Equal(t, 3, u.MaxMovement)
	assert.Equal(t, 3, u.MovementRemaining)
	assert.Equal(t, 4, u.Vision)
	// Zero base ranged strength stays zero: no rarity bonus leaks in.
	assert.Zero(t, u.RangedStrength)
	// Nonzero base settlement strength does get the combat bonus.
	assert.Equal(t, 20, u.SettlementStrength)
	assert.Equal(t, core.RarityLegendary, u.Rarity)
	assert.NotEmpty(t, u.ID)
}

func TestCreate_RangedUnitGetsRangedBonus(t *testing.T) {
	rare := core.RarityRare
	u, err := Create("archer", "azure", core.HexCoord{Q: 1, R: 1}, &rare, nil)
	require.NoError(t, err)

	assert.Equal(t, 15+4, u.CombatStrength)
	assert.Equal(t, 25+4, u.RangedStrength)
	assert.True(t, u.IsRanged())
}

func TestCreate_UnknownType(t *testing.T) {
	_, err := Create("chariot", "azure", core.HexCoord{Q: 0, R: 0}, nil, fixedRand(0))
	assert.Error(t, err)
}

func TestCreate_CivilianFlags(t *testing.T) {
	common := core.RarityCommon
	u, err := Create("settler", "azure", core.HexCoord{Q: 0, R: 0}, &common, nil)
	require.NoError(t, err)
	assert.True(t, u.Civilian)
	assert.Zero(t, u.CombatStrength)
}

func testState() *core.GameState {
	s := core.NewGameState()
	for _, h := range core.Range(core.HexCoord{Q: 0, R: 0}, 4) {
		s.Tiles[h] = &core.Tile{Coord: h, Terrain: core.TerrainPlains}
	}
	s.Tribes["azure"] = &core.Tribe{ID: "azure", Name: "Azure"}
	s.Tribes["crimson"] = &core.Tribe{ID: "crimson", Name: "Crimson"}
	return s
}

func placeUnit(t *testing.T, s *core.GameState, typ core.UnitType, owner core.TribeID, pos core.HexCoord) *core.Unit {
	t.Helper()
	common := core.RarityCommon
	u, err := Create(typ, owner, pos, &common, nil)
	require.NoError(t, err)
	s.Units[u.ID] = u
	return u
}

func TestEntryFor(t *testing.T) {
	s := testState()
	s.Tiles[core.HexCoord{Q: 1, R: 0}].Terrain = core.TerrainForest
	s.Tiles[core.HexCoord{Q: 2, R: 0}].Terrain = core.TerrainMountain

	mover := placeUnit(t, s, "warrior", "azure", core.HexCoord{Q: 0, R: 0})

	t.Run("OpenTerrain", func(t *testing.T) {
		e := EntryFor(s, mover, core.HexCoord{Q: 0, R: 1})
		assert.Equal(t, 1, e.Cost)
		assert.Equal(t, BlockNone, e.Blocked)
	})

	t.Run("RoughTerrain", func(t *testing.T) {
		e := EntryFor(s, mover, core.HexCoord{Q: 1, R: 0})
		assert.Equal(t, 2, e.Cost)
	})

	t.Run("Mountain", func(t *testing.T) {
		e := EntryFor(s, mover, core.HexCoord{Q: 2, R: 0})
		assert.Equal(t, core.CostImpassable, e.Cost)
		assert.Equal(t, BlockTerrain, e.Blocked)
	})

	t.Run("OffMap", func(t *testing.T) {
		e := EntryFor(s, mover, core.HexCoord{Q: 10, R: 10})
		assert.Equal(t, BlockTerrain, e.Blocked)
	})

	t.Run("EnemyOccupied", func(t *testing.T) {
		placeUnit(t, s, "warrior", "crimson", core.HexCoord{Q: 0, R: 2})
		e := EntryFor(s, mover, core.HexCoord{Q: 0, R: 2})
		assert.Equal(t, core.CostImpassable, e.Cost)
		assert.Equal(t, BlockEnemyOccupied, e.Blocked, "caller must see this as attack-instead")
	})

	t.Run("MilitaryStackCap", func(t *testing.T) {
		placeUnit(t, s, "warrior", "azure", core.HexCoord{Q: -1, R: 0})
		placeUnit(t, s, "spearman", "azure", core.HexCoord{Q: -1, R: 0})
		e := EntryFor(s, mover, core.HexCoord{Q: -1, R: 0})
		assert.Equal(t, BlockStackLimit, e.Blocked, "caller must see this as blocked")
	})

	t.Run("CivilianStackCap", func(t *testing.T) {
		settler := placeUnit(t, s, "settler", "azure", core.HexCoord{Q: 0, R: -1})
		placeUnit(t, s, "builder", "azure", core.HexCoord{Q: 0, R: -2})
		e := EntryFor(s, settler, core.HexCoord{Q: 0, R: -2})
		assert.Equal(t, BlockStackLimit, e.Blocked)
	})

	t.Run("MilitaryMayShareWithCivilian", func(t *testing.T) {
		placeUnit(t, s, "settler", "azure", core.HexCoord{Q: 1, R: -1})
		e := EntryFor(s, mover, core.HexCoord{Q: 1, R: -1})
		assert.Equal(t, BlockNone, e.Blocked)
	})
}

func TestReachableHexes(t *testing.T) {
	s := testState()
	mover := placeUnit(t, s, "warrior", "azure", core.HexCoord{Q: 0, R: 0})

	reach := ReachableHexes(s, mover, nil)
	assert.NotContains(t, reach, mover.Position, "starting hex must be excluded")
	// Movement 2 on open terrain covers the radius-2 disc minus the start.
	assert.Len(t, reach, 18)
	assert.Equal(t, 1, reach[core.HexCoord{Q: 1, R: 0}])
	assert.Equal(t, 0, reach[core.HexCoord{Q: 2, R: 0}])
}

func TestReachableHexes_WithZoC(t *testing.T) {
	s := testState()
	mover := placeUnit(t, s, "horseman", "azure", core.HexCoord{Q: 0, R: 0})

	zoc := func(h core.HexCoord) bool { return h == (core.HexCoord{Q: 1, R: 0}) }
	reach := ReachableHexes(s, mover, zoc)
	assert.Equal(t, 0, reach[core.HexCoord{Q: 1, R: 0}], "ZoC hex must drain all movement")
}
