package diplomacy

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// CanProposeAlliance checks alliance eligibility for one side. A full
// alliance requires both sides to pass this check individually.
func (e *Engine) CanProposeAlliance(s *core.GameState, proposer, target core.TribeID) core.Legality {
	if proposer == target {
		return core.Deny("cannot ally with self")
	}
	rel := e.Relation(s, proposer, target)
	if rel.Stance != core.StanceFriendly {
		return core.Deny("stance must be friendly")
	}
	if rel.Reputation < config.Get().Game.Diplomacy.AllianceThreshold {
		return core.Deny("insufficient reputation")
	}
	return core.Allow()
}

// FormAlliance performs the friendly-to-allied transition when both sides
// are individually eligible. Both sides gain reputation and the gain is
// logged for each.
func (e *Engine) FormAlliance(s *core.GameState, a, b core.TribeID) core.Legality {
	if verdict := e.CanProposeAlliance(s, a, b); !verdict.Allowed {
		return verdict
	}
	if verdict := e.CanProposeAlliance(s, b, a); !verdict.Allowed {
		return verdict
	}

	dip := config.Get().Game.Diplomacy
	rel := e.Relation(s, a, b)
	setStance(rel, core.StanceAllied)
	e.applyReputation(s, a, b, dip.AllianceFormedBonus, EventAllianceFormed, true)

	e.logger.Info().
		Str("tribe_a", string(a)).
		Str("tribe_b", string(b)).
		Msg("alliance formed")

	return core.Allow()
}

// CanBreakAlliance checks that the pair is currently allied.
func (e *Engine) CanBreakAlliance(s *core.GameState, breaker, other core.TribeID) core.Legality {
	if breaker == other {
		return core.Deny("cannot break alliance with self")
	}
	if e.Stance(s, breaker, other) != core.StanceAllied {
		return core.Deny("not currently allied")
	}
	return core.Allow()
}

// BreakAlliance performs the allied-to-friendly transition with a betrayal
// penalty logged against the breaker.
func (e *Engine) BreakAlliance(s *core.GameState, breaker, other core.TribeID) core.Legality {
	if verdict := e.CanBreakAlliance(s, breaker, other); !verdict.Allowed {
		return verdict
	}

	dip := config.Get().Game.Diplomacy
	rel := e.Relation(s, breaker, other)
	setStance(rel, core.StanceFriendly)
	e.applyReputation(s, breaker, other, dip.BreakAlliancePenalty, EventAllianceBroken, false)

	e.logger.Info().
		Str("breaker", string(breaker)).
		Str("other", string(other)).
		Msg("alliance broken")

	return core.Allow()
}

// ImproveRelations applies a gift or manual relationship improvement from
// giver toward receiver. When the improved reputation clears the friendly
// threshold a neutral relation becomes friendly.
func (e *Engine) ImproveRelations(s *core.GameState, giver, receiver core.TribeID, amount int) core.Legality {
	if giver == receiver {
		return core.Deny("cannot gift self")
	}
	if amount <= 0 {
		return core.Deny("gift must be positive")
	}

	e.applyReputation(s, giver, receiver, amount, EventGift, false)

	rel := e.Relation(s, giver, receiver)
	if rel.Stance == core.StanceNeutral && rel.Reputation >= config.Get().Game.Diplomacy.FriendlyThreshold {
		setStance(rel, core.StanceFriendly)
		e.logger.Debug().
			Str("giver", string(giver)).
			Str("receiver", string(receiver)).
			Msg("relations warmed to friendly")
	}
	return core.Allow()
}
