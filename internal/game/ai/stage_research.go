package ai

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game"
	"github.com/hexfall/tribesim/internal/game/core"
)

// culturePrereqPenalty is the score multiplier for techs whose culture
// prerequisite the tribe has not met.
const culturePrereqPenalty = 0.3

// planResearch picks a tech only when the tribe researches nothing.
func (d *Director) planResearch(s *core.GameState, tribe core.TribeID, p Personality) []game.Action {
	t, ok := s.Tribe(tribe)
	if !ok || t.CurrentResearch != "" {
		return nil
	}

	era := currentEra(s, config.Get().AI.EraLengthTurns)
	bestID := ""
	bestScore := 0.0
	for _, opt := range d.oracles.Tech.AvailableTechs(s, tribe) {
		score := eraCurve(opt.Era, era) * p.categoryWeight(opt.Category)
		if opt.UnmetCulturePrereq {
			score *= culturePrereqPenalty
		}
		if score > bestScore || (score == bestScore && opt.ID < bestID) {
			bestID, bestScore = opt.ID, score
		}
	}
	if bestID == "" {
		return nil
	}
	return []game.Action{game.SetResearchAction{TribeID: tribe, Tech: bestID}}
}

// planCulture mirrors research scoring against the culture options.
func (d *Director) planCulture(s *core.GameState, tribe core.TribeID, p Personality) []game.Action {
	t, ok := s.Tribe(tribe)
	if !ok || t.CurrentCulture != "" {
		return nil
	}

	era := currentEra(s, config.Get().AI.EraLengthTurns)
	bestID := ""
	bestScore := 0.0
	for _, opt := range d.oracles.Culture.AvailableCultureOptions(s, tribe) {
		score := eraCurve(opt.Era, era) * p.categoryWeight(opt.Category)
		if score > bestScore || (score == bestScore && opt.ID < bestID) {
			bestID, bestScore = opt.ID, score
		}
	}
	if bestID == "" {
		return nil
	}
	return []game.Action{game.SetCultureAction{TribeID: tribe, Culture: bestID}}
}
