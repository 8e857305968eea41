// Package mapgen produces playable maps for the simulation driver and for
// integration tests. Terrain comes from layered simplex noise over an
// elevation and a moisture field; rivers trace downhill from the highest
// tiles; resources, lootboxes and barbarian camps are scattered with the
// map's own seeded source so the same seed always yields the same map.
package mapgen

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/hexfall/tribesim/internal/common"
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// Options holds map generation parameters.
type Options struct {
	Radius        int
	Seed          int64
	SeaLevel      float64
	MountainLevel float64
	// ResourceChance is the per-tile probability of carrying a resource.
	ResourceChance float64
	Lootboxes      int
	Camps          int
}

// DefaultOptions returns a mid-sized map tuned for four tribes.
func DefaultOptions(seed int64) Options {
	return Options{
		Radius:         12,
		Seed:           seed,
		SeaLevel:       0.28,
		MountainLevel:  0.75,
		ResourceChance: 0.12,
		Lootboxes:      6,
		Camps:          3,
	}
}

// Generate builds a fresh snapshot containing only terrain, rivers,
// resources, lootboxes and camps. Tribes and units are the caller's job.
func Generate(opts Options) *core.GameState {
	elevNoise := opensimplex.NewNormalized(opts.Seed)
	moistNoise := opensimplex.NewNormalized(opts.Seed + 1)
	rng := core.SeededRand(opts.Seed + 2)

	s := core.NewGameState()
	elevations := make(map[core.HexCoord]float64)

	origin := core.HexCoord{Q: 0, R: 0}
	for _, h := range core.Range(origin, opts.Radius) {
		// Axial to cartesian so the noise field is not sheared.
		x := float64(h.Q) + float64(h.R)*0.5
		y := float64(h.R) * math.Sqrt(3) / 2

		elev := octaveNoise(elevNoise, x, y, 4, 0.08)
		moist := octaveNoise(moistNoise, x, y, 3, 0.06)

		// Push the rim underwater so the playable area is an island.
		dist := math.Sqrt(x*x+y*y) / float64(opts.Radius)
		falloff := 1 - math.Pow(dist, 3.5)
		if falloff < 0 {
			falloff = 0
		}
		elev *= falloff

		elevations[h] = elev
		s.Tiles[h] = &core.Tile{
			Coord:   h,
			Terrain: deriveTerrain(elev, moist, opts),
		}
	}

	placeRivers(s, elevations, opts)
	placeResources(s, rng, opts)
	placeLootboxes(s, rng, opts)
	placeCamps(s, rng, opts)
	return s
}

// octaveNoise layers n octaves of noise, halving amplitude and doubling
// frequency each octave, normalized back to [0,1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq float64) float64 {
	total, amp, norm := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return total / norm
}

func deriveTerrain(elev, moist float64, opts Options) core.Terrain {
	switch {
	case elev < opts.SeaLevel:
		return core.TerrainOcean
	case elev > opts.MountainLevel:
		return core.TerrainMountain
	case elev > 0.6:
		return core.TerrainHills
	case moist < 0.25:
		return core.TerrainDesert
	case moist > 0.75 && elev < 0.4:
		return core.TerrainMarsh
	case moist > 0.75:
		return core.TerrainJungle
	case moist > 0.6:
		return core.TerrainForest
	case moist > 0.45:
		return core.TerrainGrassland
	default:
		return core.TerrainPlains
	}
}

// placeRivers walks downhill from the highest land tiles until reaching
// water, marking every tile on the way.
func placeRivers(s *core.GameState, elevations map[core.HexCoord]float64, opts Options) {
	var sources []core.HexCoord
	for _, h := range core.Range(core.HexCoord{}, opts.Radius) {
		tile, ok := s.Tiles[h]
		if !ok {
			continue
		}
		if elevations[h] > 0.65 && !tile.Terrain.IsImpassable() {
			sources = append(sources, h)
		}
	}

	rivers := len(sources) / 6
	if rivers < 2 && len(sources) >= 2 {
		rivers = 2
	}
	for i := 0; i < rivers && i < len(sources); i++ {
		// Sources are spread across the list rather than clustered.
		h := sources[i*len(sources)/common.Max(rivers, 1)]
		for steps := 0; steps < opts.Radius*2; steps++ {
			tile, ok := s.Tiles[h]
			if !ok || tile.Terrain == core.TerrainOcean {
				break
			}
			tile.HasRiver = true

			next, lowest := h, elevations[h]
			for _, n := range h.Neighbors() {
				if _, ok := s.Tiles[n]; !ok {
					continue
				}
				if elevations[n] < lowest {
					next, lowest = n, elevations[n]
				}
			}
			if next == h {
				break
			}
			h = next
		}
	}
}

// placeResources rolls each passable tile once and assigns a resource that
// fits its terrain. Ocean-adjacent tiles may carry fish instead.
func placeResources(s *core.GameState, rng core.Rand, opts Options) {
	for _, h := range core.Range(core.HexCoord{}, opts.Radius) {
		tile, ok := s.Tiles[h]
		if !ok || tile.Terrain.IsImpassable() {
			continue
		}
		if rng() >= opts.ResourceChance {
			continue
		}
		tile.Resource = resourceFor(tile.Terrain, coastal(s, h), rng)
	}
}

func coastal(s *core.GameState, h core.HexCoord) bool {
	for _, n := range h.Neighbors() {
		if t, ok := s.Tiles[n]; ok && t.Terrain == core.TerrainOcean {
			return true
		}
	}
	return false
}

func resourceFor(terrain core.Terrain, coastal bool, rng core.Rand) core.Resource {
	if coastal && rng() < 0.5 {
		return core.ResourceFish
	}
	switch terrain {
	case core.TerrainPlains:
		if rng() < 0.5 {
			return core.ResourceWheat
		}
		return core.ResourceHorses
	case core.TerrainGrassland:
		return core.ResourceWheat
	case core.TerrainHills:
		if rng() < 0.6 {
			return core.ResourceIron
		}
		return core.ResourceStone
	case core.TerrainDesert:
		if rng() < 0.3 {
			return core.ResourceGems
		}
		return core.ResourceStone
	case core.TerrainForest, core.TerrainJungle:
		return core.ResourceHorses
	case core.TerrainMarsh, core.TerrainTundra:
		return core.ResourceFish
	}
	return core.ResourceNone
}

// placeLootboxes scatters rewards over passable tiles away from the center
// so scouts have somewhere to go.
func placeLootboxes(s *core.GameState, rng core.Rand, opts Options) {
	candidates := passableTiles(s, opts.Radius, opts.Radius/3)
	for i := 0; i < opts.Lootboxes && len(candidates) > 0; i++ {
		idx := int(rng() * float64(len(candidates)))
		s.Lootboxes = append(s.Lootboxes, &core.Lootbox{Position: candidates[idx]})
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
}

// placeCamps seeds barbarian camps on the map fringe, armed with the
// configured spawn cooldown.
func placeCamps(s *core.GameState, rng core.Rand, opts Options) {
	cooldown := config.Get().Game.Camps.SpawnCooldown
	candidates := passableTiles(s, opts.Radius, opts.Radius/2)
	for i := 0; i < opts.Camps && len(candidates) > 0; i++ {
		idx := int(rng() * float64(len(candidates)))
		s.Camps = append(s.Camps, &core.Camp{Position: candidates[idx], SpawnCooldown: cooldown})
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
}

// passableTiles lists passable hexes at least minDist from the origin, in
// deterministic range order.
func passableTiles(s *core.GameState, radius, minDist int) []core.HexCoord {
	var result []core.HexCoord
	for _, h := range core.Range(core.HexCoord{}, radius) {
		tile, ok := s.Tiles[h]
		if !ok || tile.Terrain.IsImpassable() {
			continue
		}
		if core.Distance(core.HexCoord{}, h) < minDist {
			continue
		}
		result = append(result, h)
	}
	return result
}

// StartPositions picks spaced, passable starting hexes for count tribes,
// spread around a ring at two-thirds of the map radius.
func StartPositions(s *core.GameState, radius, count int) []core.HexCoord {
	ring := core.Ring(core.HexCoord{}, radius*2/3)
	if len(ring) == 0 {
		return nil
	}

	positions := make([]core.HexCoord, 0, count)
	for i := 0; i < count; i++ {
		anchor := ring[i*len(ring)/count]
		if pos, ok := nearestPassable(s, anchor); ok {
			positions = append(positions, pos)
		}
	}
	return positions
}

// nearestPassable snaps a hex to the closest passable tile within a small
// search radius.
func nearestPassable(s *core.GameState, h core.HexCoord) (core.HexCoord, bool) {
	for r := 0; r <= 3; r++ {
		for _, c := range core.Range(h, r) {
			if tile, ok := s.Tiles[c]; ok && !tile.Terrain.IsImpassable() {
				return c, true
			}
		}
	}
	return core.HexCoord{}, false
}
