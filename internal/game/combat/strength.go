// Package combat computes effective unit strength, resolves unit and
// settlement battles, and supplies the zone-of-control and healing rules.
package combat

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/hexfall/tribesim/internal/common"
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/diplomacy"
)

// Resolver evaluates combat. It consults the diplomacy engine for attack
// legality and mutates the snapshot it is handed, like the other engines.
type Resolver struct {
	logger zerolog.Logger
	dipl   *diplomacy.Engine
}

// NewResolver creates a combat resolver.
func NewResolver(logger zerolog.Logger, dipl *diplomacy.Engine) *Resolver {
	return &Resolver{
		logger: logger.With().Str("component", "combat").Logger(),
		dipl:   dipl,
	}
}

// terrainDefensePct returns the defender's percentage bonus for the terrain
// under it. Negative values are exposed terrain.
func terrainDefensePct(t core.Terrain) int {
	cfg := config.Get().Game.Combat
	switch t {
	case core.TerrainForest:
		return cfg.ForestDefensePct
	case core.TerrainJungle:
		return cfg.JungleDefensePct
	case core.TerrainHills:
		return cfg.HillsDefensePct
	case core.TerrainDesert:
		return cfg.DesertDefensePct
	case core.TerrainMarsh:
		return cfg.MarshDefensePct
	default:
		return 0
	}
}

// Strength computes a unit's effective combat strength. target is the hex
// being struck and is only consulted for the attacker's river-crossing
// penalty; defenders pass nil. The result is never below 1.
func (r *Resolver) Strength(s *core.GameState, u *core.Unit, defending bool, target *core.HexCoord) int {
	cfg := config.Get().Game.Combat

	base := u.CombatStrength
	if !defending && u.IsRanged() {
		base = u.RangedStrength
	}

	pct := 0
	if defending {
		if tile, ok := s.Tile(u.Position); ok {
			pct += terrainDefensePct(tile.Terrain)
		}
		if militaryCountAt(s, u.Position) >= 2 {
			pct += cfg.StackingDefensePct
		}
		if !u.HasActed {
			pct += cfg.FortificationPct
		}
	}

	adjacency := 0
	for _, n := range u.Position.Neighbors() {
		for _, other := range s.UnitsAt(n) {
			if other.Owner == u.Owner && !other.Civilian {
				adjacency += cfg.AdjacencyPct
			}
		}
	}
	pct += common.Min(adjacency, cfg.AdjacencyCapPct)

	total := base + int(math.Floor(float64(base)*float64(pct)/100))

	if u.MaxHealth > 0 {
		missing := 1 - float64(u.Health)/float64(u.MaxHealth)
		total -= int(math.Floor(float64(base) * missing * cfg.HealthPenaltyFactor))
	}

	total += promotionBonus(u, defending)

	if !defending && target != nil {
		total += riverPenalty(s, base, u.Position, *target)
	}

	return common.Max(total, 1)
}

// militaryCountAt counts non-civilian units on a hex.
func militaryCountAt(s *core.GameState, h core.HexCoord) int {
	count := 0
	for _, u := range s.UnitsAt(h) {
		if !u.Civilian {
			count++
		}
	}
	return count
}

// promotionBonus sums the additive bonuses of a unit's promotions for the
// current role.
func promotionBonus(u *core.Unit, defending bool) int {
	promos := config.Get().Game.Promotions
	bonus := 0
	for _, id := range u.Promotions {
		p, ok := promos[string(id)]
		if !ok {
			continue
		}
		if defending {
			bonus += p.DefenseBonus
		} else {
			bonus += p.AttackBonus
		}
	}
	return bonus
}

// riverPenalty applies only when the defender's tile has a river and the
// attacker's does not. The factor is negative, so the floored term is a
// penalty.
func riverPenalty(s *core.GameState, base int, from, to core.HexCoord) int {
	fromTile, okFrom := s.Tile(from)
	toTile, okTo := s.Tile(to)
	if !okFrom || !okTo {
		return 0
	}
	if toTile.HasRiver && !fromTile.HasRiver {
		return int(math.Floor(float64(base) * config.Get().Game.Combat.RiverCrossingFactor))
	}
	return 0
}
