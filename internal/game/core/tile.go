package core

// Terrain classifies a tile for movement cost and defense bonuses.
type Terrain int

const (
	TerrainPlains Terrain = iota
	TerrainGrassland
	TerrainForest
	TerrainJungle
	TerrainHills
	TerrainDesert
	TerrainMarsh
	TerrainTundra
	TerrainMountain
	TerrainOcean
)

var terrainNames = [...]string{
	"plains", "grassland", "forest", "jungle", "hills",
	"desert", "marsh", "tundra", "mountain", "ocean",
}

func (t Terrain) String() string {
	if int(t) < 0 || int(t) >= len(terrainNames) {
		return "unknown"
	}
	return terrainNames[t]
}

// IsImpassable reports whether no land unit can ever enter this terrain.
func (t Terrain) IsImpassable() bool {
	return t == TerrainMountain || t == TerrainOcean
}

// IsRough reports whether the terrain costs extra movement to enter.
func (t Terrain) IsRough() bool {
	switch t {
	case TerrainForest, TerrainJungle, TerrainHills, TerrainMarsh:
		return true
	}
	return false
}

// Resource is a harvestable tile bonus that improvements exploit.
type Resource int

const (
	ResourceNone Resource = iota
	ResourceWheat
	ResourceHorses
	ResourceIron
	ResourceStone
	ResourceGems
	ResourceFish
)

var resourceNames = [...]string{
	"none", "wheat", "horses", "iron", "stone", "gems", "fish",
}

func (r Resource) String() string {
	if int(r) < 0 || int(r) >= len(resourceNames) {
		return "unknown"
	}
	return resourceNames[r]
}

// Improvement is a builder-constructed tile upgrade.
type Improvement int

const (
	ImprovementNone Improvement = iota
	ImprovementFarm
	ImprovementPasture
	ImprovementMine
	ImprovementQuarry
)

var improvementNames = [...]string{"none", "farm", "pasture", "mine", "quarry"}

func (i Improvement) String() string {
	if int(i) < 0 || int(i) >= len(improvementNames) {
		return "unknown"
	}
	return improvementNames[i]
}

// ImprovementFor maps a resource to the improvement that exploits it.
func ImprovementFor(r Resource) Improvement {
	switch r {
	case ResourceWheat, ResourceFish:
		return ImprovementFarm
	case ResourceHorses:
		return ImprovementPasture
	case ResourceIron, ResourceGems:
		return ImprovementMine
	case ResourceStone:
		return ImprovementQuarry
	}
	return ImprovementNone
}

// Tile is a single hex of the map. Owner is empty for unclaimed tiles.
type Tile struct {
	Coord       HexCoord    `json:"coord"`
	Terrain     Terrain     `json:"terrain"`
	HasRiver    bool        `json:"has_river,omitempty"`
	Resource    Resource    `json:"resource,omitempty"`
	Improvement Improvement `json:"improvement,omitempty"`
	Owner       TribeID     `json:"owner,omitempty"`
}

// Clone returns a copy of the tile.
func (t *Tile) Clone() *Tile {
	c := *t
	return &c
}
