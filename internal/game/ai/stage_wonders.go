package ai

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game"
	"github.com/hexfall/tribesim/internal/game/core"
)

// planWonders queues at most one wonder, and only when nothing the tribe
// owns is already building one.
func (d *Director) planWonders(s *core.GameState, tribe core.TribeID, p Personality) []game.Action {
	owned := s.TribeSettlements(tribe)
	if len(owned) == 0 {
		return nil
	}
	for _, st := range owned {
		if st.HasWonderQueued() {
			return nil
		}
	}

	target := d.wonderSite(s, tribe)
	if target == nil {
		return nil
	}

	cfg := config.Get()
	options := d.oracles.Wonder.AvailableWonders(s, tribe)
	maxPrice := 0.0
	for _, opt := range options {
		if opt.FloorPrice > maxPrice {
			maxPrice = opt.FloorPrice
		}
	}
	if maxPrice == 0 {
		return nil
	}

	atWar := len(d.dipl.Enemies(s, tribe)) > 0
	era := currentEra(s, cfg.AI.EraLengthTurns)

	bestID := ""
	bestScore := 0.0
	for _, opt := range options {
		score := (opt.FloorPrice / maxPrice) * p.categoryWeight(opt.Category) * eraCurve(opt.Era, era)
		if opt.Military && atWar {
			score *= 1.5
		}
		if opt.Production && p.categoryWeight("economy") > 1 {
			score *= 1.5
		}
		if d.rivalBuilding(s, tribe, opt.ID) {
			score *= 0.5
		}
		if score > bestScore || (score == bestScore && opt.ID < bestID) {
			bestID, bestScore = opt.ID, score
		}
	}
	if bestID == "" || bestScore < cfg.AI.WonderScoreBar {
		return nil
	}
	return []game.Action{game.QueueWonderAction{TribeID: tribe, SettlementID: target.ID, Wonder: bestID}}
}

// wonderSite picks the most populous settlement with queue room,
// tie-broken by id.
func (d *Director) wonderSite(s *core.GameState, tribe core.TribeID) *core.Settlement {
	capacity := config.Get().Game.Settlement.QueueCapacity
	var best *core.Settlement
	for _, st := range s.TribeSettlements(tribe) {
		if len(st.BuildQueue) >= capacity {
			continue
		}
		if best == nil || st.Population > best.Population {
			best = st
		}
	}
	return best
}

// rivalBuilding reports whether any other tribe already queues the wonder.
func (d *Director) rivalBuilding(s *core.GameState, tribe core.TribeID, wonder string) bool {
	for _, id := range s.SortedTribeIDs() {
		if id == tribe {
			continue
		}
		for _, st := range s.TribeSettlements(id) {
			for _, order := range st.BuildQueue {
				if order.Kind == core.BuildWonder && order.ID == wonder {
					return true
				}
			}
		}
	}
	return false
}
