package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformCost(HexCoord) int { return 1 }

func boundsBox(radius int) BoundsFunc {
	return func(h HexCoord) bool {
		return Distance(HexCoord{0, 0}, h) <= radius
	}
}

func TestFindPath_StraightLine(t *testing.T) {
	start := HexCoord{0, 0}
	goal := HexCoord{3, 0}

	path, ok := FindPath(start, goal, uniformCost, NoCostLimit, boundsBox(5))
	require.True(t, ok)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
	// Uniform cost: path length equals grid distance plus the start hex.
	assert.Len(t, path, 4)
	for i := 1; i < len(path); i++ {
		assert.True(t, path[i-1].IsAdjacentTo(path[i]), "step %d not adjacent", i)
	}
}

func TestFindPath_SameStartGoal(t *testing.T) {
	h := HexCoord{2, 2}
	path, ok := FindPath(h, h, uniformCost, NoCostLimit, nil)
	require.True(t, ok)
	assert.Equal(t, []HexCoord{h}, path)
}

func TestFindPath_RoutesAroundWall(t *testing.T) {
	// Wall on every hex with q == 1 except (1, 2).
	cost := func(h HexCoord) int {
		if h.Q == 1 && h.R != 2 {
			return CostImpassable
		}
		return 1
	}
	path, ok := FindPath(HexCoord{0, 0}, HexCoord{2, 0}, cost, NoCostLimit, boundsBox(4))
	require.True(t, ok)
	assert.Contains(t, path, HexCoord{1, 2}, "path must pass through the only gap")
}

func TestFindPath_Unreachable(t *testing.T) {
	cost := func(h HexCoord) int {
		if h.Q == 1 {
			return CostImpassable
		}
		return 1
	}
	// Everything beyond the q==1 wall is cut off inside a bounded box.
	_, ok := FindPath(HexCoord{0, 0}, HexCoord{3, 0}, cost, NoCostLimit, boundsBox(3))
	assert.False(t, ok)
}

func TestFindPath_Optimality(t *testing.T) {
	// Rough band at r == 1 costs 3; going around is cheaper.
	cost := func(h HexCoord) int {
		if h.R == 1 {
			return 3
		}
		return 1
	}
	path, ok := FindPath(HexCoord{0, 0}, HexCoord{0, 2}, cost, NoCostLimit, boundsBox(5))
	require.True(t, ok)

	total := 0
	for _, h := range path[1:] {
		total += cost(h)
	}
	// Direct route (0,1)+(0,2) costs 3+1=4; no cheaper route exists
	// because any path to r=2 crosses the r==1 band exactly once at
	// minimum length.
	assert.Equal(t, 4, total)
}

func TestFindPath_MaxCostCeiling(t *testing.T) {
	start, goal := HexCoord{0, 0}, HexCoord{0, 3}

	path, ok := FindPath(start, goal, uniformCost, 3, boundsBox(5))
	require.True(t, ok)
	assert.Len(t, path, 4)

	_, ok = FindPath(start, goal, uniformCost, 2, boundsBox(5))
	assert.False(t, ok, "maxCost must be a hard ceiling")
}

func TestReachable_UniformBudget(t *testing.T) {
	start := HexCoord{0, 0}
	reach := Reachable(start, 2, uniformCost, boundsBox(5), nil)

	// Budget 2 with unit costs covers the radius-2 disc: 19 hexes.
	assert.Len(t, reach, 19)
	assert.Equal(t, 2, reach[start])
	assert.Equal(t, 1, reach[HexCoord{1, 0}])
	assert.Equal(t, 0, reach[HexCoord{2, 0}])
}

func TestReachable_KeepsBestRemaining(t *testing.T) {
	// Hex (1,0) costs 2 but can also be reached via (1,-1) then (1,0)?
	// Construct instead: rough hex directly east, open detour above.
	cost := func(h HexCoord) int {
		if (h == HexCoord{1, 0}) {
			return 2
		}
		return 1
	}
	reach := Reachable(HexCoord{0, 0}, 3, cost, boundsBox(5), nil)
	// Entering (1,0) directly leaves 1; no route leaves more because every
	// entry into (1,0) pays its cost of 2 and any detour spends at least 1.
	assert.Equal(t, 1, reach[HexCoord{1, 0}])
	// (2,0) is best reached around the rough hex: 0,0 -> 1,-1 -> 2,-1 -> 2,0
	// spends 3, or through (1,0) spends 3. Either way 0 remains.
	assert.Equal(t, 0, reach[HexCoord{2, 0}])
}

func TestReachable_ZoneOfControlDrainsMovement(t *testing.T) {
	zoc := func(h HexCoord) bool {
		return h == HexCoord{1, 0}
	}
	reach := Reachable(HexCoord{0, 0}, 3, uniformCost, boundsBox(5), zoc)

	// The controlled hex is enterable but leaves zero movement,
	// regardless of the remaining budget.
	require.Contains(t, reach, HexCoord{1, 0})
	assert.Equal(t, 0, reach[HexCoord{1, 0}])

	// Hexes beyond it are still reachable by other routes.
	assert.Contains(t, reach, HexCoord{2, 0})
}

func TestReachable_ZoneOfControlStillPaysTerrain(t *testing.T) {
	// Rough controlled hex east of the start. The drain layers on top of
	// the terrain cost: with only 1 movement a cost-2 hex stays out of
	// reach even though entering it would zero the budget anyway.
	cost := func(h HexCoord) int {
		if (h == HexCoord{1, 0}) {
			return 2
		}
		return 1
	}
	zoc := func(h HexCoord) bool {
		return h == HexCoord{1, 0}
	}

	reach := Reachable(HexCoord{0, 0}, 1, cost, boundsBox(5), zoc)
	assert.NotContains(t, reach, HexCoord{1, 0})

	// With the terrain affordable, the drain applies as before.
	reach = Reachable(HexCoord{0, 0}, 3, cost, boundsBox(5), zoc)
	require.Contains(t, reach, HexCoord{1, 0})
	assert.Equal(t, 0, reach[HexCoord{1, 0}])
}

func TestReachable_ZeroBudget(t *testing.T) {
	start := HexCoord{4, -2}
	reach := Reachable(start, 0, uniformCost, nil, nil)
	assert.Equal(t, map[HexCoord]int{start: 0}, reach)
}
