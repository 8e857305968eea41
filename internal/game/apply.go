package game

import (
	"fmt"

	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/events"
	"github.com/hexfall/tribesim/internal/game/unit"
)

// Apply executes one action against a snapshot. On success it returns a
// fresh snapshot; on failure it returns the untouched input and an error
// wrapping core.ErrActionRejected, which the driver loop is expected to
// skip past.
func (e *Engine) Apply(s *core.GameState, a Action) (*core.GameState, error) {
	next := s.Clone()

	var verdict core.Legality
	switch act := a.(type) {
	case MoveUnitAction:
		verdict = e.applyMove(next, act)
	case AttackAction:
		verdict = e.applyAttack(next, act)
	case AttackSettlementAction:
		verdict = e.applyAttackSettlement(next, act)
	case FoundSettlementAction:
		verdict = e.applyFoundSettlement(next, act)
	case BuildImprovementAction:
		verdict = e.applyBuildImprovement(next, act)
	case PromoteUnitAction:
		verdict = e.applyPromoteUnit(next, act)
	case SetResearchAction:
		verdict = e.applySetResearch(next, act)
	case SetCultureAction:
		verdict = e.applySetCulture(next, act)
	case QueueWonderAction:
		verdict = e.applyQueueWonder(next, act)
	case DeclareWarAction:
		verdict = e.applyDeclareWar(next, act)
	case ProposePeaceAction:
		verdict = e.applyProposePeace(next, act)
	case ProposeAllianceAction:
		verdict = e.applyProposeAlliance(next, act)
	case BreakAllianceAction:
		verdict = e.diplomacy.BreakAlliance(next, act.TribeID, act.Target)
	case EstablishTradeRouteAction:
		verdict = e.applyEstablishTradeRoute(next, act)
	case ClaimGreatPersonAction:
		verdict = e.applyClaimGreatPerson(next, act)
	case EndTurnAction:
		verdict = e.applyEndTurn(next, act)
	default:
		verdict = core.Deny(fmt.Sprintf("unknown action type %T", a))
	}

	if !verdict.Allowed {
		e.logger.Debug().
			Str("action", a.Kind()).
			Str("tribe", string(a.Tribe())).
			Str("reason", verdict.Reason).
			Msg("action rejected")
		e.publish(events.NewActionRejectedEvent(e.gameID, a.Tribe(), a.Kind(), verdict.Reason))
		return s, fmt.Errorf("%s: %s: %w", a.Kind(), verdict.Reason, core.ErrActionRejected)
	}
	return next, nil
}

func (e *Engine) ownedUnit(s *core.GameState, tribe core.TribeID, id core.UnitID) (*core.Unit, core.Legality) {
	u, ok := s.Unit(id)
	if !ok {
		return nil, core.Deny("unit not found")
	}
	if u.Owner != tribe {
		return nil, core.Deny("unit not owned by tribe")
	}
	return u, core.Allow()
}

func (e *Engine) applyMove(s *core.GameState, act MoveUnitAction) core.Legality {
	u, verdict := e.ownedUnit(s, act.TribeID, act.UnitID)
	if !verdict.Allowed {
		return verdict
	}
	if act.Target == u.Position {
		return core.Deny("already at destination")
	}

	reach := unit.ReachableHexes(s, u, e.combat.ZoneFunc(s, u.Owner))
	remaining, ok := reach[act.Target]
	if !ok {
		switch unit.EntryFor(s, u, act.Target).Blocked {
		case unit.BlockEnemyOccupied:
			return core.Deny("destination occupied by enemy, attack instead")
		case unit.BlockStackLimit:
			return core.Deny("destination stack is full")
		case unit.BlockTerrain:
			return core.Deny("destination impassable")
		default:
			return core.Deny("destination out of movement range")
		}
	}

	from := u.Position
	u.Position = act.Target
	u.MovementRemaining = remaining
	s.MarkExplored(u.Owner, core.Range(u.Position, u.Vision))

	e.claimLootbox(s, u)
	e.publish(events.NewUnitMovedEvent(e.gameID, u.ID, from, act.Target))
	return core.Allow()
}

// claimLootbox collects an unclaimed lootbox under the unit. The reward is
// experience, enough to matter for a scout roaming early.
func (e *Engine) claimLootbox(s *core.GameState, u *core.Unit) {
	for _, lb := range s.Lootboxes {
		if lb.Claimed || lb.Position != u.Position {
			continue
		}
		lb.Claimed = true
		e.combat.GrantExperience(s, u, config.Get().Game.Combat.KillXP)
		e.logger.Debug().
			Str("unit", string(u.ID)).
			Str("position", u.Position.String()).
			Msg("lootbox claimed")
		e.publish(events.NewLootboxClaimedEvent(e.gameID, u.ID, u.Owner, u.Position))
	}
}

func (e *Engine) applyAttack(s *core.GameState, act AttackAction) core.Legality {
	att, verdict := e.ownedUnit(s, act.TribeID, act.AttackerID)
	if !verdict.Allowed {
		return verdict
	}
	if verdict := e.combat.CanAttack(s, att.ID, act.DefenderID); !verdict.Allowed {
		return verdict
	}

	// Resolve removes dead units, so owners are captured up front.
	def, _ := s.Unit(act.DefenderID)
	defOwner := def.Owner

	out, ok := e.combat.Resolve(s, act.AttackerID, act.DefenderID)
	if !ok {
		return core.Deny("combatant no longer present")
	}
	e.publish(events.NewCombatResolvedEvent(e.gameID, act.AttackerID, act.DefenderID,
		out.AttackerDamage, out.DefenderDamage, out.AttackerKilled, out.DefenderKilled))
	if out.DefenderKilled {
		e.publish(events.NewUnitKilledEvent(e.gameID, act.DefenderID, defOwner, act.AttackerID))
	}
	if out.AttackerKilled {
		e.publish(events.NewUnitKilledEvent(e.gameID, act.AttackerID, act.TribeID, act.DefenderID))
	}
	return core.Allow()
}

func (e *Engine) applyAttackSettlement(s *core.GameState, act AttackSettlementAction) core.Legality {
	att, verdict := e.ownedUnit(s, act.TribeID, act.AttackerID)
	if !verdict.Allowed {
		return verdict
	}
	if verdict := e.combat.CanAttackSettlement(s, att.ID, act.SettlementID); !verdict.Allowed {
		return verdict
	}

	target, _ := s.Settlement(act.SettlementID)
	prevOwner := target.Owner

	out, ok := e.combat.ResolveSiege(s, act.AttackerID, act.SettlementID)
	if !ok {
		return core.Deny("siege target no longer present")
	}
	e.publish(events.NewSettlementAttackedEvent(e.gameID, act.SettlementID, act.AttackerID,
		out.SettlementDamage, out.SettlementFell))
	if out.AttackerKilled {
		e.publish(events.NewUnitKilledEvent(e.gameID, act.AttackerID, act.TribeID, ""))
	}

	// A razed settlement is taken immediately when a conqueror already
	// stands on it; otherwise conquest waits for a unit to step in.
	if out.SettlementFell {
		e.combat.Conquer(s, act.SettlementID, act.TribeID)
		e.publish(events.NewSettlementFellEvent(e.gameID, act.SettlementID, prevOwner, act.TribeID))
	}
	return core.Allow()
}

// CanFoundSettlement checks settler founding legality without mutating
// anything.
func (e *Engine) CanFoundSettlement(s *core.GameState, tribe core.TribeID, settlerID core.UnitID) core.Legality {
	u, verdict := e.ownedUnit(s, tribe, settlerID)
	if !verdict.Allowed {
		return verdict
	}
	if u.Type != "settler" {
		return core.Deny("unit is not a settler")
	}
	tile, ok := s.Tile(u.Position)
	if !ok || tile.Terrain.IsImpassable() {
		return core.Deny("cannot settle here")
	}
	if tile.Owner != "" && tile.Owner != tribe {
		return core.Deny("territory owned by another tribe")
	}

	spacing := config.Get().Game.Settlement.MinSpacing
	for _, st := range s.Settlements {
		if core.Distance(st.Position, u.Position) < spacing {
			return core.Deny("too close to an existing settlement")
		}
	}
	return core.Allow()
}

func (e *Engine) applyFoundSettlement(s *core.GameState, act FoundSettlementAction) core.Legality {
	if verdict := e.CanFoundSettlement(s, act.TribeID, act.SettlerID); !verdict.Allowed {
		return verdict
	}
	u, _ := s.Unit(act.SettlerID)

	cfg := config.Get().Game.Settlement
	st := &core.Settlement{
		ID:         core.NewSettlementID(),
		Name:       act.Name,
		Owner:      act.TribeID,
		Position:   u.Position,
		Health:     cfg.MaxHealth,
		MaxHealth:  cfg.MaxHealth,
		Population: 1,
	}
	s.Settlements[st.ID] = st

	// The settlement claims its own hex and the first ring.
	for _, h := range core.Range(st.Position, 1) {
		if tile, ok := s.Tile(h); ok && tile.Owner == "" {
			tile.Owner = act.TribeID
		}
	}
	s.MarkExplored(act.TribeID, core.Range(st.Position, 2))
	delete(s.Units, u.ID)

	e.logger.Info().
		Str("tribe", string(act.TribeID)).
		Str("settlement", string(st.ID)).
		Str("position", st.Position.String()).
		Msg("settlement founded")
	e.publish(events.NewSettlementFoundedEvent(e.gameID, st.ID, act.TribeID, st.Position))
	return core.Allow()
}

// CanBuildImprovement checks that the builder stands on an owned,
// unimproved, resource-bearing tile.
func (e *Engine) CanBuildImprovement(s *core.GameState, tribe core.TribeID, builderID core.UnitID) core.Legality {
	u, verdict := e.ownedUnit(s, tribe, builderID)
	if !verdict.Allowed {
		return verdict
	}
	if u.Type != "builder" {
		return core.Deny("unit is not a builder")
	}
	tile, ok := s.Tile(u.Position)
	if !ok {
		return core.Deny("no tile under builder")
	}
	if tile.Owner != tribe {
		return core.Deny("tile not owned by tribe")
	}
	if tile.Resource == core.ResourceNone {
		return core.Deny("no resource to improve")
	}
	if tile.Improvement != core.ImprovementNone {
		return core.Deny("tile already improved")
	}
	return core.Allow()
}

func (e *Engine) applyBuildImprovement(s *core.GameState, act BuildImprovementAction) core.Legality {
	if verdict := e.CanBuildImprovement(s, act.TribeID, act.BuilderID); !verdict.Allowed {
		return verdict
	}
	u, _ := s.Unit(act.BuilderID)
	tile, _ := s.Tile(u.Position)

	tile.Improvement = core.ImprovementFor(tile.Resource)
	u.HasActed = true
	u.MovementRemaining = 0

	e.logger.Debug().
		Str("builder", string(u.ID)).
		Str("improvement", tile.Improvement.String()).
		Str("position", u.Position.String()).
		Msg("improvement built")
	return core.Allow()
}

func (e *Engine) applyPromoteUnit(s *core.GameState, act PromoteUnitAction) core.Legality {
	u, verdict := e.ownedUnit(s, act.TribeID, act.UnitID)
	if !verdict.Allowed {
		return verdict
	}
	if u.PendingPromotions <= 0 {
		return core.Deny("no promotion earned")
	}
	if _, ok := config.Get().Game.Promotions[string(act.Promotion)]; !ok {
		return core.Deny("unknown promotion")
	}
	if u.HasPromotion(act.Promotion) {
		return core.Deny("promotion already taken")
	}

	u.Promotions = append(u.Promotions, act.Promotion)
	u.PendingPromotions--
	return core.Allow()
}

func (e *Engine) applySetResearch(s *core.GameState, act SetResearchAction) core.Legality {
	tribe, ok := s.Tribe(act.TribeID)
	if !ok {
		return core.Deny("tribe not found")
	}
	if act.Tech == "" {
		return core.Deny("no tech named")
	}
	tribe.CurrentResearch = act.Tech
	return core.Allow()
}

func (e *Engine) applySetCulture(s *core.GameState, act SetCultureAction) core.Legality {
	tribe, ok := s.Tribe(act.TribeID)
	if !ok {
		return core.Deny("tribe not found")
	}
	if act.Culture == "" {
		return core.Deny("no culture option named")
	}
	tribe.CurrentCulture = act.Culture
	return core.Allow()
}

func (e *Engine) applyQueueWonder(s *core.GameState, act QueueWonderAction) core.Legality {
	st, ok := s.Settlement(act.SettlementID)
	if !ok {
		return core.Deny("settlement not found")
	}
	if st.Owner != act.TribeID {
		return core.Deny("settlement not owned by tribe")
	}
	if len(st.BuildQueue) >= config.Get().Game.Settlement.QueueCapacity {
		return core.Deny("build queue full")
	}
	for _, other := range s.TribeSettlements(act.TribeID) {
		if other.HasWonderQueued() {
			return core.Deny("a wonder is already queued")
		}
	}

	st.BuildQueue = append(st.BuildQueue, core.BuildOrder{Kind: core.BuildWonder, ID: act.Wonder})
	return core.Allow()
}

func (e *Engine) applyDeclareWar(s *core.GameState, act DeclareWarAction) core.Legality {
	verdict := e.diplomacy.DeclareWar(s, act.TribeID, act.Target)
	if verdict.Allowed {
		e.publish(events.NewWarDeclaredEvent(e.gameID, act.TribeID, act.Target))
	}
	return verdict
}

// applyProposePeace treats a proposal blocked only by the minimum war
// length as made-and-rebuffed: the rejection is world state (it starts the
// cooldown window), so the snapshot advances even though no stance changed.
func (e *Engine) applyProposePeace(s *core.GameState, act ProposePeaceAction) core.Legality {
	verdict := e.diplomacy.ProposePeace(s, act.TribeID, act.Target)
	if verdict.Allowed {
		e.publish(events.NewPeaceMadeEvent(e.gameID, act.TribeID, act.Target))
		return verdict
	}
	if verdict.Reason == "war too recent" {
		e.publish(events.NewActionRejectedEvent(e.gameID, act.TribeID, "propose_peace", verdict.Reason))
		return core.Allow()
	}
	return verdict
}

func (e *Engine) applyProposeAlliance(s *core.GameState, act ProposeAllianceAction) core.Legality {
	verdict := e.diplomacy.FormAlliance(s, act.TribeID, act.Target)
	if verdict.Allowed {
		e.publish(events.NewAllianceFormedEvent(e.gameID, act.TribeID, act.Target))
	}
	return verdict
}

func (e *Engine) applyEstablishTradeRoute(s *core.GameState, act EstablishTradeRouteAction) core.Legality {
	from, ok := s.Settlement(act.From)
	if !ok {
		return core.Deny("origin settlement not found")
	}
	if from.Owner != act.TribeID {
		return core.Deny("origin not owned by tribe")
	}
	to, ok := s.Settlement(act.To)
	if !ok {
		return core.Deny("destination settlement not found")
	}
	if act.From == act.To {
		return core.Deny("route must span two settlements")
	}
	if e.diplomacy.AtWar(s, from.Owner, to.Owner) {
		return core.Deny("cannot trade across a war front")
	}
	for _, id := range s.SortedRouteIDs() {
		r := s.TradeRoutes[id]
		if r.Active && r.From == act.From && r.To == act.To {
			return core.Deny("route already exists")
		}
	}
	// Route capacity grows with the tribe's settlements.
	active := 0
	for _, id := range s.SortedRouteIDs() {
		if r := s.TradeRoutes[id]; r.Active && r.FromTribe == act.TribeID {
			active++
		}
	}
	if active >= len(s.TribeSettlements(act.TribeID)) {
		return core.Deny("no trade route capacity")
	}

	route := &core.TradeRoute{
		ID:        core.NewTradeRouteID(),
		From:      act.From,
		To:        act.To,
		FromTribe: from.Owner,
		ToTribe:   to.Owner,
		GoldYield: 2 + to.Population,
		Active:    true,
	}
	s.TradeRoutes[route.ID] = route

	e.logger.Debug().
		Str("route", string(route.ID)).
		Str("from", string(act.From)).
		Str("to", string(act.To)).
		Int("gold", route.GoldYield).
		Msg("trade route established")
	return core.Allow()
}

// CanClaimGreatPerson checks the one-per-game flag.
func (e *Engine) CanClaimGreatPerson(s *core.GameState, tribe core.TribeID, gp core.GreatPersonID) core.Legality {
	if _, ok := s.Tribe(tribe); !ok {
		return core.Deny("tribe not found")
	}
	if claimant, taken := s.GreatPeopleClaimed[gp]; taken {
		return core.Deny(fmt.Sprintf("already claimed by %s", claimant))
	}
	return core.Allow()
}

func (e *Engine) applyClaimGreatPerson(s *core.GameState, act ClaimGreatPersonAction) core.Legality {
	if verdict := e.CanClaimGreatPerson(s, act.TribeID, act.GreatPerson); !verdict.Allowed {
		return verdict
	}
	s.GreatPeopleClaimed[act.GreatPerson] = act.TribeID
	e.publish(events.NewGreatPersonClaimedEvent(e.gameID, act.GreatPerson, act.TribeID))
	return core.Allow()
}
