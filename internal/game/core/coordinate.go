package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hexfall/tribesim/internal/common"
)

// HexCoord represents a position on the hex grid using axial coordinates
// (pointy-top layout). The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// NewHexCoord creates a new coordinate with the given axial components.
func NewHexCoord(q, r int) HexCoord {
	return HexCoord{Q: q, R: r}
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Add returns the component-wise sum of two coordinates.
func (h HexCoord) Add(other HexCoord) HexCoord {
	return HexCoord{Q: h.Q + other.Q, R: h.R + other.R}
}

// Scale returns the coordinate multiplied by k.
func (h HexCoord) Scale(k int) HexCoord {
	return HexCoord{Q: h.Q * k, R: h.R * k}
}

// HexDirections are the six unit direction vectors, clockwise from east.
var HexDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexDirections {
		result[i] = h.Add(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates: the maximum
// absolute difference of the cube components. Satisfies the metric axioms.
func Distance(a, b HexCoord) int {
	dq := common.Abs(a.Q - b.Q)
	dr := common.Abs(a.R - b.R)
	ds := common.Abs(a.S() - b.S())
	return common.Max(dq, common.Max(dr, ds))
}

// IsAdjacentTo checks whether two hexes share an edge.
func (h HexCoord) IsAdjacentTo(other HexCoord) bool {
	return Distance(h, other) == 1
}

// Range returns every hex within radius of center, center included.
func Range(center HexCoord, radius int) []HexCoord {
	if radius < 0 {
		return nil
	}
	result := make([]HexCoord, 0, 1+3*radius*(radius+1))
	for q := -radius; q <= radius; q++ {
		lo := -radius
		if -q-radius > lo {
			lo = -q - radius
		}
		hi := radius
		if -q+radius < hi {
			hi = -q + radius
		}
		for r := lo; r <= hi; r++ {
			result = append(result, HexCoord{Q: center.Q + q, R: center.R + r})
		}
	}
	return result
}

// Ring returns the hexes at exactly radius from center. Radius 0 yields the
// center itself.
func Ring(center HexCoord, radius int) []HexCoord {
	if radius < 0 {
		return nil
	}
	if radius == 0 {
		return []HexCoord{center}
	}
	result := make([]HexCoord, 0, 6*radius)
	// Walk the ring starting from the SW corner, one edge per direction.
	cur := center.Add(HexDirections[4].Scale(radius))
	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			result = append(result, cur)
			cur = cur.Add(HexDirections[side])
		}
	}
	return result
}

// ToPixel converts the coordinate to pixel space for a pointy-top layout
// with the given hex size.
func (h HexCoord) ToPixel(size float64) (x, y float64) {
	x = size * (math.Sqrt(3)*float64(h.Q) + math.Sqrt(3)/2*float64(h.R))
	y = size * 1.5 * float64(h.R)
	return x, y
}

// String returns a string representation of the coordinate.
func (h HexCoord) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// MarshalText encodes the coordinate as "q,r" so it can key JSON maps.
func (h HexCoord) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(h.Q) + "," + strconv.Itoa(h.R)), nil
}

// UnmarshalText decodes the "q,r" form produced by MarshalText.
func (h *HexCoord) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), ",", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid hex coordinate %q", text)
	}
	q, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid hex coordinate %q: %w", text, err)
	}
	r, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid hex coordinate %q: %w", text, err)
	}
	h.Q, h.R = q, r
	return nil
}
