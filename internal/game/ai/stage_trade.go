package ai

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game"
	"github.com/hexfall/tribesim/internal/game/core"
)

// planTrade proposes at most one route per turn, gated by the tribe's
// trade affinity and its unlocked route capacity.
func (d *Director) planTrade(s *core.GameState, tribe core.TribeID, p Personality) []game.Action {
	cfg := config.Get().AI

	if d.rng() >= p.TradeAffinity {
		return nil
	}

	active := 0
	for _, id := range s.SortedRouteIDs() {
		if r := s.TradeRoutes[id]; r.Active && r.FromTribe == tribe {
			active++
		}
	}
	if active >= len(s.TribeSettlements(tribe)) {
		return nil
	}

	var best *TradeOption
	bestScore := 0.0
	for _, opt := range d.oracles.Trade.AvailableTradeDestinations(s, tribe) {
		opt := opt
		score := d.scoreTradeOption(s, tribe, opt)
		if score > bestScore {
			best, bestScore = &opt, score
		}
	}

	bar := cfg.TradeScoreBar
	if p.TradeAffinity > 0 {
		bar /= p.TradeAffinity
	}
	if best == nil || bestScore < bar {
		return nil
	}
	return []game.Action{game.EstablishTradeRouteAction{TribeID: tribe, From: best.From, To: best.To}}
}

// scoreTradeOption weighs gold yield by route risk: internal routes are
// safe, external ones scale with the diplomatic stance.
func (d *Director) scoreTradeOption(s *core.GameState, tribe core.TribeID, opt TradeOption) float64 {
	score := float64(opt.GoldYield)
	if opt.Internal {
		return score * 1.2
	}
	switch d.dipl.Stance(s, tribe, opt.OtherTribe) {
	case core.StanceAllied:
		return score * 1.5
	case core.StanceFriendly:
		return score * 1.2
	case core.StanceNeutral:
		return score
	default:
		// Hostile or at war: not worth the caravan.
		return 0
	}
}
