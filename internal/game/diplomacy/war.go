package diplomacy

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// Reputation event kinds recorded in the ledger.
const (
	EventWarDeclared     = "war_declared"
	EventWarOnFriend     = "war_on_friend"
	EventBetrayal        = "betrayal"
	EventBetrayalWitness = "betrayal_witnessed"
	EventHonoredAlliance = "honored_alliance"
	EventAllianceFormed  = "alliance_formed"
	EventAllianceBroken  = "alliance_broken"
	EventGift            = "gift"
)

// CanDeclareWar checks war declaration legality. Declaring war is always
// legal except against oneself or an existing enemy.
func (e *Engine) CanDeclareWar(s *core.GameState, aggressor, target core.TribeID) core.Legality {
	if aggressor == target {
		return core.Deny("cannot declare war on self")
	}
	if _, ok := s.Tribe(target); !ok {
		return core.Deny("unknown target tribe")
	}
	if e.Stance(s, aggressor, target) == core.StanceWar {
		return core.Deny("already at war")
	}
	return core.Allow()
}

// DeclareWar transitions the pair to war, applies the stance-scaled
// reputation penalties, pulls the target's allies into the war, and
// deactivates trade routes crossing the new front.
func (e *Engine) DeclareWar(s *core.GameState, aggressor, target core.TribeID) core.Legality {
	if verdict := e.CanDeclareWar(s, aggressor, target); !verdict.Allowed {
		return verdict
	}

	dip := config.Get().Game.Diplomacy
	rel := e.Relation(s, aggressor, target)
	priorStance := rel.Stance

	switch priorStance {
	case core.StanceFriendly:
		// Turning on a friend costs standing with the target and with
		// every other friend of the target.
		e.applyReputation(s, aggressor, target, dip.WarOnFriendlyPenalty, EventWarOnFriend, false)
		for _, friend := range e.friendsOf(s, target, aggressor) {
			e.applyReputation(s, aggressor, friend, dip.WarOnFriendlyPenalty, EventWarOnFriend, false)
		}
	case core.StanceAllied:
		// Betrayal: a heavy penalty with the target and a smaller one
		// with every other living tribe.
		e.applyReputation(s, aggressor, target, dip.BetrayalPenalty, EventBetrayal, false)
		for _, other := range s.SortedTribeIDs() {
			if other == aggressor || other == target {
				continue
			}
			e.applyReputation(s, aggressor, other, dip.BetrayalGlobalPenalty, EventBetrayalWitness, false)
		}
	default:
		e.applyReputation(s, aggressor, target, dip.WarOnNeutralPenalty, EventWarDeclared, false)
	}

	setStance(rel, core.StanceWar)

	// Alliance obligations cascade: every ally of the target not already
	// fighting the aggressor joins the war and is credited for honoring
	// the alliance.
	for _, ally := range e.Allies(s, target) {
		if ally == aggressor {
			continue
		}
		allyRel := e.Relation(s, ally, aggressor)
		if allyRel.Stance != core.StanceWar {
			setStance(allyRel, core.StanceWar)
			e.applyReputation(s, ally, target, dip.HonoredAllianceBonus, EventHonoredAlliance, false)
		}
	}

	e.deactivateWarRoutes(s)

	e.logger.Info().
		Str("aggressor", string(aggressor)).
		Str("target", string(target)).
		Str("prior_stance", priorStance.String()).
		Msg("war declared")

	return core.Allow()
}

// deactivateWarRoutes switches off every trade route whose endpoints now
// belong to tribes at war with each other.
func (e *Engine) deactivateWarRoutes(s *core.GameState) {
	for _, id := range s.SortedRouteIDs() {
		route := s.TradeRoutes[id]
		if route.Active && e.AtWar(s, route.FromTribe, route.ToTribe) {
			route.Active = false
			e.logger.Debug().Str("route", string(id)).Msg("trade route crosses war front, deactivated")
		}
	}
}
