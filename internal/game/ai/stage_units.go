package ai

import (
	"sort"

	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game"
	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/unit"
)

// resourcePriority orders which resources builders chase first.
var resourcePriority = map[core.Resource]int{
	core.ResourceGems:   5,
	core.ResourceIron:   4,
	core.ResourceHorses: 3,
	core.ResourceWheat:  3,
	core.ResourceFish:   3,
	core.ResourceStone:  2,
}

// planUnits orders every unit by priority class: promotions are spent
// first, then settlers, military, scouts and builders.
func (d *Director) planUnits(s *core.GameState, tribe core.TribeID, p Personality) []game.Action {
	var actions []game.Action
	actions = append(actions, d.planPromotions(s, tribe, p)...)
	actions = append(actions, d.planSettlers(s, tribe)...)
	actions = append(actions, d.planMilitary(s, tribe, p)...)
	actions = append(actions, d.planScouts(s, tribe)...)
	actions = append(actions, d.planBuilders(s, tribe)...)
	return actions
}

// planPromotions spends banked promotion picks. Aggressive tribes take
// attack promotions, others defense, falling through the known list.
func (d *Director) planPromotions(s *core.GameState, tribe core.TribeID, p Personality) []game.Action {
	preferred := []core.PromotionID{"bulwark", "assault", "vanguard", "regeneration"}
	if p.Aggression >= 1 {
		preferred = []core.PromotionID{"assault", "vanguard", "bulwark", "regeneration"}
	}

	var actions []game.Action
	for _, u := range d.tribeUnits(s, tribe) {
		if u.PendingPromotions <= 0 {
			continue
		}
		for _, promo := range preferred {
			if !u.HasPromotion(promo) {
				actions = append(actions, game.PromoteUnitAction{TribeID: tribe, UnitID: u.ID, Promotion: promo})
				break
			}
		}
	}
	return actions
}

// planSettlers founds immediately while under the settlement floor,
// otherwise walks each settler toward the best-scoring site in reach.
func (d *Director) planSettlers(s *core.GameState, tribe core.TribeID) []game.Action {
	floor := config.Get().AI.SettlementFloor
	underFloor := len(s.TribeSettlements(tribe)) < floor

	var actions []game.Action
	for _, u := range d.tribeUnits(s, tribe) {
		if u.Type != "settler" {
			continue
		}
		hereScore := d.settleScore(s, tribe, u.Position)
		if underFloor && hereScore >= 0 {
			actions = append(actions, game.FoundSettlementAction{TribeID: tribe, SettlerID: u.ID, Name: string(tribe) + "-settlement"})
			continue
		}

		best, bestScore := u.Position, hereScore
		reach := unit.ReachableHexes(s, u, d.combat.ZoneFunc(s, tribe))
		for _, h := range sortedHexes(reach) {
			if score := d.settleScore(s, tribe, h); score > bestScore {
				best, bestScore = h, score
			}
		}
		if bestScore < 0 {
			continue
		}
		if best == u.Position {
			actions = append(actions, game.FoundSettlementAction{TribeID: tribe, SettlerID: u.ID, Name: string(tribe) + "-settlement"})
		} else {
			actions = append(actions, game.MoveUnitAction{TribeID: tribe, UnitID: u.ID, Target: best})
		}
	}
	return actions
}

// settleScore rates a founding site by terrain, resources and rivers, or
// returns -1 when founding there is illegal.
func (d *Director) settleScore(s *core.GameState, tribe core.TribeID, h core.HexCoord) int {
	tile, ok := s.Tile(h)
	if !ok || tile.Terrain.IsImpassable() {
		return -1
	}
	if tile.Owner != "" && tile.Owner != tribe {
		return -1
	}
	spacing := config.Get().Game.Settlement.MinSpacing
	for _, st := range s.Settlements {
		if core.Distance(st.Position, h) < spacing {
			return -1
		}
	}

	score := 1
	switch tile.Terrain {
	case core.TerrainGrassland:
		score = 3
	case core.TerrainPlains, core.TerrainHills:
		score = 2
	}
	if tile.Resource != core.ResourceNone {
		score += 2
	}
	if tile.HasRiver {
		score++
	}
	for _, n := range h.Neighbors() {
		if nt, ok := s.Tile(n); ok && nt.Resource != core.ResourceNone {
			score++
		}
	}
	return score
}

// planMilitary attacks the best target per the personality's preference,
// otherwise advances toward the nearest enemy when that closes distance.
func (d *Director) planMilitary(s *core.GameState, tribe core.TribeID, p Personality) []game.Action {
	var actions []game.Action
	for _, u := range d.tribeUnits(s, tribe) {
		if u.Civilian || u.Type == "scout" || u.HasActed {
			continue
		}

		if target, ok := d.pickAttackTarget(s, u, p); ok {
			actions = append(actions, game.AttackAction{TribeID: tribe, AttackerID: u.ID, DefenderID: target})
			continue
		}
		if st, ok := d.pickSiegeTarget(s, u); ok {
			actions = append(actions, game.AttackSettlementAction{TribeID: tribe, AttackerID: u.ID, SettlementID: st})
			continue
		}
		if goal, ok := d.nearestEnemyPosition(s, tribe, u.Position); ok {
			if move, ok := d.moveToward(s, u, goal); ok {
				actions = append(actions, move)
			}
		}
	}
	return actions
}

// pickAttackTarget returns the best enemy unit this unit can strike now.
func (d *Director) pickAttackTarget(s *core.GameState, u *core.Unit, p Personality) (core.UnitID, bool) {
	var best *core.Unit
	for _, id := range s.SortedUnitIDs() {
		candidate := s.Units[id]
		if !d.combat.CanAttack(s, u.ID, candidate.ID).Allowed {
			continue
		}
		if best == nil || d.preferTarget(u, candidate, best, p) {
			best = candidate
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

// preferTarget reports whether candidate beats incumbent under the
// personality's target preference.
func (d *Director) preferTarget(attacker, candidate, incumbent *core.Unit, p Personality) bool {
	switch p.TargetPreference {
	case "strongest":
		return candidate.CombatStrength > incumbent.CombatStrength
	case "closest":
		return core.Distance(attacker.Position, candidate.Position) <
			core.Distance(attacker.Position, incumbent.Position)
	default: // weakest
		return candidate.CombatStrength < incumbent.CombatStrength
	}
}

// pickSiegeTarget returns the nearest settlement this unit can strike now.
func (d *Director) pickSiegeTarget(s *core.GameState, u *core.Unit) (core.SettlementID, bool) {
	var best *core.Settlement
	for _, st := range d.sortedSettlements(s) {
		if !d.combat.CanAttackSettlement(s, u.ID, st.ID).Allowed {
			continue
		}
		if best == nil || core.Distance(u.Position, st.Position) < core.Distance(u.Position, best.Position) {
			best = st
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

// nearestEnemyPosition finds the closest unit or settlement of any tribe at
// war with us.
func (d *Director) nearestEnemyPosition(s *core.GameState, tribe core.TribeID, from core.HexCoord) (core.HexCoord, bool) {
	bestDist := -1
	var best core.HexCoord
	consider := func(owner core.TribeID, pos core.HexCoord) {
		if !d.dipl.AtWar(s, tribe, owner) {
			return
		}
		if dist := core.Distance(from, pos); bestDist < 0 || dist < bestDist {
			best, bestDist = pos, dist
		}
	}
	for _, id := range s.SortedUnitIDs() {
		u := s.Units[id]
		consider(u.Owner, u.Position)
	}
	for _, st := range d.sortedSettlements(s) {
		consider(st.Owner, st.Position)
	}
	return best, bestDist >= 0
}

// planScouts chases the nearest unclaimed lootbox, falling back to the
// reachable hex that reveals the most fogged tiles.
func (d *Director) planScouts(s *core.GameState, tribe core.TribeID) []game.Action {
	var actions []game.Action
	for _, u := range d.tribeUnits(s, tribe) {
		if u.Type != "scout" || u.HasActed {
			continue
		}

		if goal, ok := d.nearestLootbox(s, u.Position); ok {
			if move, ok := d.moveToward(s, u, goal); ok {
				actions = append(actions, move)
				continue
			}
		}
		if move, ok := d.bestRevealMove(s, tribe, u); ok {
			actions = append(actions, move)
		}
	}
	return actions
}

func (d *Director) nearestLootbox(s *core.GameState, from core.HexCoord) (core.HexCoord, bool) {
	bestDist := -1
	var best core.HexCoord
	for _, lb := range s.Lootboxes {
		if lb.Claimed {
			continue
		}
		if dist := core.Distance(from, lb.Position); bestDist < 0 || dist < bestDist {
			best, bestDist = lb.Position, dist
		}
	}
	return best, bestDist >= 0
}

// bestRevealMove picks the reachable hex whose vision range holds the most
// unexplored tiles.
func (d *Director) bestRevealMove(s *core.GameState, tribe core.TribeID, u *core.Unit) (game.MoveUnitAction, bool) {
	explored := s.Explored[tribe]
	reveal := func(h core.HexCoord) int {
		count := 0
		for _, v := range core.Range(h, u.Vision) {
			if _, ok := s.Tile(v); !ok {
				continue
			}
			if !explored[v] {
				count++
			}
		}
		return count
	}

	reach := unit.ReachableHexes(s, u, d.combat.ZoneFunc(s, tribe))
	best, bestCount := u.Position, 0
	for _, h := range sortedHexes(reach) {
		if c := reveal(h); c > bestCount {
			best, bestCount = h, c
		}
	}
	if bestCount == 0 || best == u.Position {
		return game.MoveUnitAction{}, false
	}
	return game.MoveUnitAction{TribeID: tribe, UnitID: u.ID, Target: best}, true
}

// planBuilders improves in place when standing on an eligible tile, else
// walks toward the best-scoring improvable tile.
func (d *Director) planBuilders(s *core.GameState, tribe core.TribeID) []game.Action {
	var actions []game.Action
	for _, u := range d.tribeUnits(s, tribe) {
		if u.Type != "builder" || u.HasActed {
			continue
		}

		if d.improvableHere(s, tribe, u.Position) {
			actions = append(actions, game.BuildImprovementAction{TribeID: tribe, BuilderID: u.ID})
			continue
		}
		if goal, ok := d.bestImprovableTile(s, tribe, u.Position); ok {
			if move, ok := d.moveToward(s, u, goal); ok {
				actions = append(actions, move)
			}
		}
	}
	return actions
}

func (d *Director) improvableHere(s *core.GameState, tribe core.TribeID, h core.HexCoord) bool {
	tile, ok := s.Tile(h)
	return ok && tile.Owner == tribe &&
		tile.Resource != core.ResourceNone &&
		tile.Improvement == core.ImprovementNone
}

// bestImprovableTile scores owned unimproved resource tiles by resource
// priority minus travel distance.
func (d *Director) bestImprovableTile(s *core.GameState, tribe core.TribeID, from core.HexCoord) (core.HexCoord, bool) {
	bestScore := 0
	var best core.HexCoord
	found := false
	for _, h := range sortedTileCoords(s) {
		if !d.improvableHere(s, tribe, h) {
			continue
		}
		tile, _ := s.Tile(h)
		score := resourcePriority[tile.Resource] - core.Distance(from, h)
		if !found || score > bestScore {
			best, bestScore, found = h, score, true
		}
	}
	return best, found
}

// moveToward picks the reachable hex closest to goal, preferring leftover
// movement on ties, and moves only when this actually closes distance.
func (d *Director) moveToward(s *core.GameState, u *core.Unit, goal core.HexCoord) (game.MoveUnitAction, bool) {
	reach := unit.ReachableHexes(s, u, d.combat.ZoneFunc(s, u.Owner))
	best := u.Position
	bestDist := core.Distance(u.Position, goal)
	bestRemaining := -1
	for _, h := range sortedHexes(reach) {
		dist := core.Distance(h, goal)
		if dist < bestDist || (dist == bestDist && reach[h] > bestRemaining) {
			best, bestDist, bestRemaining = h, dist, reach[h]
		}
	}
	if best == u.Position {
		return game.MoveUnitAction{}, false
	}
	return game.MoveUnitAction{TribeID: u.Owner, UnitID: u.ID, Target: best}, true
}

func (d *Director) tribeUnits(s *core.GameState, tribe core.TribeID) []*core.Unit {
	return s.TribeUnits(tribe)
}

func (d *Director) sortedSettlements(s *core.GameState) []*core.Settlement {
	ids := s.SortedSettlementIDs()
	result := make([]*core.Settlement, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.Settlements[id])
	}
	return result
}

// sortedHexes returns a reachability map's keys in row-major order so
// planning stays deterministic.
func sortedHexes(m map[core.HexCoord]int) []core.HexCoord {
	hexes := make([]core.HexCoord, 0, len(m))
	for h := range m {
		hexes = append(hexes, h)
	}
	sort.Slice(hexes, func(i, j int) bool {
		if hexes[i].R != hexes[j].R {
			return hexes[i].R < hexes[j].R
		}
		return hexes[i].Q < hexes[j].Q
	})
	return hexes
}

func sortedTileCoords(s *core.GameState) []core.HexCoord {
	coords := make([]core.HexCoord, 0, len(s.Tiles))
	for h := range s.Tiles {
		coords = append(coords, h)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].R != coords[j].R {
			return coords[i].R < coords[j].R
		}
		return coords[i].Q < coords[j].Q
	})
	return coords
}
