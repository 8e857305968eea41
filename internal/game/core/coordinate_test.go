package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexCoord_S(t *testing.T) {
	tests := []struct {
		name  string
		coord HexCoord
		s     int
	}{
		{"Origin", HexCoord{0, 0}, 0},
		{"East", HexCoord{1, 0}, -1},
		{"Mixed", HexCoord{3, -2}, -1},
		{"Negative", HexCoord{-4, -1}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.s, tt.coord.S())
			// Cube coordinates always sum to zero.
			assert.Zero(t, tt.coord.Q+tt.coord.R+tt.coord.S())
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     HexCoord
		expected int
	}{
		{"Same", HexCoord{2, -1}, HexCoord{2, -1}, 0},
		{"Adjacent", HexCoord{0, 0}, HexCoord{1, 0}, 1},
		{"AdjacentDiag", HexCoord{0, 0}, HexCoord{1, -1}, 1},
		{"TwoOut", HexCoord{0, 0}, HexCoord{2, -1}, 2},
		{"Far", HexCoord{-3, 2}, HexCoord{4, -1}, 7},
		{"StraightLine", HexCoord{0, 0}, HexCoord{0, 5}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a), "distance not symmetric")
		})
	}
}

func TestDistance_MetricAxioms(t *testing.T) {
	coords := []HexCoord{
		{0, 0}, {1, 0}, {0, 1}, {-1, 1}, {3, -2}, {-4, 2}, {5, 5}, {-3, -3},
	}
	for _, a := range coords {
		assert.Zero(t, Distance(a, a))
		for _, b := range coords {
			assert.Equal(t, Distance(a, b), Distance(b, a))
			for _, c := range coords {
				assert.LessOrEqual(t, Distance(a, c), Distance(a, b)+Distance(b, c),
					"triangle inequality violated for %v %v %v", a, b, c)
			}
		}
	}
}

func TestHexCoord_Neighbors(t *testing.T) {
	center := HexCoord{2, -1}
	neighbors := center.Neighbors()

	assert.Len(t, neighbors, 6)
	seen := make(map[HexCoord]bool)
	for _, n := range neighbors {
		assert.Equal(t, 1, Distance(center, n), "neighbor %v not at distance 1", n)
		assert.False(t, seen[n], "duplicate neighbor %v", n)
		seen[n] = true
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name   string
		radius int
		count  int
	}{
		{"Zero", 0, 1},
		{"One", 1, 7},
		{"Two", 2, 19},
		{"Three", 3, 37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center := HexCoord{1, 1}
			hexes := Range(center, tt.radius)
			assert.Len(t, hexes, tt.count)
			for _, h := range hexes {
				assert.LessOrEqual(t, Distance(center, h), tt.radius)
			}
		})
	}
}

func TestRing(t *testing.T) {
	center := HexCoord{-2, 3}
	for radius := 1; radius <= 4; radius++ {
		ring := Ring(center, radius)
		assert.Len(t, ring, 6*radius, "radius %d", radius)
		seen := make(map[HexCoord]bool)
		for _, h := range ring {
			assert.Equal(t, radius, Distance(center, h))
			assert.False(t, seen[h], "duplicate ring hex %v", h)
			seen[h] = true
		}
	}

	assert.Equal(t, []HexCoord{center}, Ring(center, 0))
}

func TestHexCoord_ToPixel(t *testing.T) {
	// Origin maps to origin regardless of size.
	x, y := HexCoord{0, 0}.ToPixel(10)
	assert.Zero(t, x)
	assert.Zero(t, y)

	// Moving one hex along +r advances y by 1.5*size.
	_, y = HexCoord{0, 1}.ToPixel(10)
	assert.InDelta(t, 15.0, y, 1e-9)

	// Pixel distance between adjacent hexes is the same for all directions.
	x0, y0 := HexCoord{0, 0}.ToPixel(1)
	for _, n := range (HexCoord{0, 0}).Neighbors() {
		x1, y1 := n.ToPixel(1)
		dist := (x1-x0)*(x1-x0) + (y1-y0)*(y1-y0)
		assert.InDelta(t, 3.0, dist, 1e-9, "neighbor %v", n)
	}
}

func TestHexCoord_TextRoundTrip(t *testing.T) {
	coords := []HexCoord{{0, 0}, {3, -2}, {-10, 7}}
	for _, c := range coords {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var decoded HexCoord
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, c, decoded)
	}

	var bad HexCoord
	assert.Error(t, bad.UnmarshalText([]byte("nonsense")))
}

func TestHexCoord_JSONMapKey(t *testing.T) {
	// String-keying must be consistent with equality so snapshots with
	// coordinate-keyed maps survive serialization.
	m := map[HexCoord]int{{1, -1}: 7, {0, 2}: 9}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[HexCoord]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}
