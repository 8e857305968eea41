package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

func TestGenerate_Deterministic(t *testing.T) {
	opts := DefaultOptions(42)
	a := Generate(opts)
	b := Generate(opts)

	assert.Equal(t, a.Tiles, b.Tiles)
	assert.Equal(t, a.Lootboxes, b.Lootboxes)
	assert.Equal(t, a.Camps, b.Camps)

	c := Generate(DefaultOptions(43))
	assert.NotEqual(t, a.Tiles, c.Tiles, "different seeds should diverge")
}

func TestGenerate_TileBounds(t *testing.T) {
	opts := DefaultOptions(7)
	s := Generate(opts)

	r := opts.Radius
	expected := 3*r*r + 3*r + 1
	assert.Len(t, s.Tiles, expected)
	for h := range s.Tiles {
		assert.LessOrEqual(t, core.Distance(core.HexCoord{}, h), r)
	}
}

func TestGenerate_RiversStayOnLand(t *testing.T) {
	s := Generate(DefaultOptions(42))

	rivers := 0
	for _, tile := range s.Tiles {
		if !tile.HasRiver {
			continue
		}
		rivers++
		assert.False(t, tile.Terrain.IsImpassable(), "river through %v %v", tile.Coord, tile.Terrain)
	}
	assert.Greater(t, rivers, 0, "a default map should carry at least one river")
}

func TestGenerate_ResourcesOnPassableTilesOnly(t *testing.T) {
	s := Generate(DefaultOptions(42))

	found := 0
	for _, tile := range s.Tiles {
		if tile.Resource == core.ResourceNone {
			continue
		}
		found++
		assert.False(t, tile.Terrain.IsImpassable())
		assert.Equal(t, core.ImprovementNone, tile.Improvement)
	}
	assert.Greater(t, found, 0)
}

func TestGenerate_CampsAndLootboxes(t *testing.T) {
	opts := DefaultOptions(42)
	s := Generate(opts)

	require.Len(t, s.Camps, opts.Camps)
	cooldown := config.Get().Game.Camps.SpawnCooldown
	for _, camp := range s.Camps {
		assert.Equal(t, cooldown, camp.SpawnCooldown)
		assert.GreaterOrEqual(t, core.Distance(core.HexCoord{}, camp.Position), opts.Radius/2)
		tile, ok := s.Tile(camp.Position)
		require.True(t, ok)
		assert.False(t, tile.Terrain.IsImpassable())
	}

	require.Len(t, s.Lootboxes, opts.Lootboxes)
	seen := make(map[core.HexCoord]bool)
	for _, lb := range s.Lootboxes {
		assert.False(t, lb.Claimed)
		assert.False(t, seen[lb.Position], "lootboxes should not stack")
		seen[lb.Position] = true
	}
}

func TestStartPositions(t *testing.T) {
	opts := DefaultOptions(42)
	s := Generate(opts)

	positions := StartPositions(s, opts.Radius, 4)
	require.Len(t, positions, 4)
	for i, pos := range positions {
		tile, ok := s.Tile(pos)
		require.True(t, ok)
		assert.False(t, tile.Terrain.IsImpassable())
		for j := i + 1; j < len(positions); j++ {
			assert.GreaterOrEqual(t, core.Distance(pos, positions[j]), 4, "starts %d and %d too close", i, j)
		}
	}
}
