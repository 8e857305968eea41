package diplomacy

import (
	"github.com/hexfall/tribesim/internal/common"
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// CanProposePeace checks whether proposer may offer peace to target: the
// pair must be at war, the war must have lasted the configured minimum, and
// the proposer must be outside the cooldown window after a prior rejection
// toward this target.
func (e *Engine) CanProposePeace(s *core.GameState, proposer, target core.TribeID) core.Legality {
	if proposer == target {
		return core.Deny("cannot make peace with self")
	}
	rel := e.Relation(s, proposer, target)
	if rel.Stance != core.StanceWar {
		return core.Deny("not at war")
	}

	dip := config.Get().Game.Diplomacy
	if rel.TurnsAtStance < dip.MinTurnsAtWar {
		return core.Deny("war too recent")
	}
	if rejectedTurn, ok := s.Diplomacy.PeaceRejections[core.DirKey(proposer, target)]; ok {
		if s.Turn-rejectedTurn < dip.PeaceRejectionCooldown {
			return core.Deny("peace recently rejected")
		}
	}
	return core.Allow()
}

// ProposePeace attempts the war-to-hostile transition. A proposal blocked
// by the minimum-war-length guard is recorded as a rejection, starting the
// cooldown window for this proposer/target direction. On success both sides
// shed some war weariness; it is reduced, not reset.
func (e *Engine) ProposePeace(s *core.GameState, proposer, target core.TribeID) core.Legality {
	verdict := e.CanProposePeace(s, proposer, target)
	if !verdict.Allowed {
		if verdict.Reason == "war too recent" {
			s.Diplomacy.PeaceRejections[core.DirKey(proposer, target)] = s.Turn
		}
		return verdict
	}

	dip := config.Get().Game.Diplomacy
	rel := e.Relation(s, proposer, target)
	setStance(rel, core.StanceHostile)

	for _, id := range []core.TribeID{proposer, target} {
		if tribe, ok := s.Tribe(id); ok {
			tribe.WarWeariness = common.Max(tribe.WarWeariness-dip.PeaceWearinessRelief, 0)
		}
	}

	e.logger.Info().
		Str("proposer", string(proposer)).
		Str("target", string(target)).
		Msg("peace made, stance now hostile")

	return core.Allow()
}
