package ai

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game"
	"github.com/hexfall/tribesim/internal/game/core"
)

// planDiplomacy walks every rival once: peace evaluation while at war, war
// evaluation otherwise, alliance evaluation while friendly.
func (d *Director) planDiplomacy(s *core.GameState, tribe core.TribeID, p Personality) []game.Action {
	var actions []game.Action
	for _, rival := range d.livingRivals(s, tribe) {
		switch d.dipl.Stance(s, tribe, rival) {
		case core.StanceWar:
			if d.wantsPeace(s, tribe, rival, p) {
				actions = append(actions, game.ProposePeaceAction{TribeID: tribe, Target: rival})
			}
		case core.StanceFriendly:
			if d.wantsAlliance(s, tribe, rival, p) {
				actions = append(actions, game.ProposeAllianceAction{TribeID: tribe, Target: rival})
			} else if d.wantsWar(s, tribe, rival, p) {
				actions = append(actions, game.DeclareWarAction{TribeID: tribe, Target: rival})
			}
		case core.StanceAllied:
			// Allies are never evaluated for war.
		default:
			if d.wantsWar(s, tribe, rival, p) {
				actions = append(actions, game.DeclareWarAction{TribeID: tribe, Target: rival})
			}
		}
	}
	return actions
}

// wantsPeace proposes peace when weariness exceeds a tolerance-scaled
// threshold, when the enemy clearly outmuscles us, when we have no army
// left, or on a personality-weighted marginal roll.
func (d *Director) wantsPeace(s *core.GameState, tribe, enemy core.TribeID, p Personality) bool {
	cfg := config.Get().AI
	t, ok := s.Tribe(tribe)
	if !ok {
		return false
	}

	mine := d.militaryStrength(s, tribe)
	theirs := d.militaryStrength(s, enemy)

	tolerance := p.WearinessTolerance
	if tolerance <= 0 {
		tolerance = 1
	}
	if float64(t.WarWeariness) > cfg.PeaceWearinessBase*tolerance {
		return true
	}
	if mine == 0 {
		return true
	}
	if float64(theirs) > float64(mine)*(cfg.PeaceStrengthRatio+p.PeaceThresholdMod) {
		return true
	}
	return d.rng() < cfg.MarginalPeaceChance*p.Peacefulness
}

// wantsWar requires spare war capacity, a target worth taking, a
// personality-scaled strength advantage, and a final weighted roll. A
// friendly target demands a bigger advantage.
func (d *Director) wantsWar(s *core.GameState, tribe, target core.TribeID, p Personality) bool {
	cfg := config.Get().AI

	if len(d.dipl.Enemies(s, tribe)) >= p.MaxWars {
		return false
	}
	if len(s.TribeSettlements(target)) == 0 {
		return false
	}

	required := cfg.WarStrengthRatio + p.WarThresholdMod
	if d.dipl.Stance(s, tribe, target) == core.StanceFriendly {
		required += cfg.FriendlyWarExtraRatio
	}

	mine := d.militaryStrength(s, tribe)
	theirs := d.militaryStrength(s, target)
	if float64(mine) < float64(theirs)*required {
		return false
	}
	return d.rng() < cfg.WarRollChance*p.Aggression
}

// wantsAlliance prefers partners sharing a common enemy; with no enemies
// at all, it courts the strongest friendly tribe that is not a rival of an
// existing ally.
func (d *Director) wantsAlliance(s *core.GameState, tribe, target core.TribeID, p Personality) bool {
	cfg := config.Get().AI

	if len(d.dipl.Allies(s, tribe)) >= p.MaxAllies {
		return false
	}
	if !d.dipl.CanProposeAlliance(s, tribe, target).Allowed {
		return false
	}

	if d.sharesEnemy(s, tribe, target) {
		return d.rng() < cfg.AllianceRollChance*p.AllianceSeeking
	}
	if len(d.dipl.Enemies(s, tribe)) == 0 && d.isStrongestFriend(s, tribe, target) {
		return d.rng() < cfg.AllianceRollChance*p.AllianceSeeking
	}
	return false
}

func (d *Director) sharesEnemy(s *core.GameState, a, b core.TribeID) bool {
	enemies := make(map[core.TribeID]bool)
	for _, e := range d.dipl.Enemies(s, a) {
		enemies[e] = true
	}
	for _, e := range d.dipl.Enemies(s, b) {
		if enemies[e] {
			return true
		}
	}
	return false
}

func (d *Director) isStrongestFriend(s *core.GameState, tribe, target core.TribeID) bool {
	best := target
	bestStrength := d.militaryStrength(s, target)
	for _, rival := range d.livingRivals(s, tribe) {
		if d.dipl.Stance(s, tribe, rival) != core.StanceFriendly {
			continue
		}
		if st := d.militaryStrength(s, rival); st > bestStrength {
			best, bestStrength = rival, st
		}
	}
	return best == target
}
