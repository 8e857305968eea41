package combat

import (
	"math"

	"github.com/hexfall/tribesim/internal/common"
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// SiegeOutcome reports the result of one strike against a settlement.
type SiegeOutcome struct {
	AttackerStrength int
	DefenseStrength  int
	SettlementDamage int
	AttackerDamage   int
	AttackerKilled   bool
	SettlementFell   bool
}

// CanAttackSettlement checks siege legality. The attacker strikes with its
// settlement strength stat, so units with no siege value at all are turned
// away here.
func (r *Resolver) CanAttackSettlement(s *core.GameState, attackerID core.UnitID, targetID core.SettlementID) core.Legality {
	att, ok := s.Unit(attackerID)
	if !ok {
		return core.Deny("attacker not found")
	}
	target, ok := s.Settlement(targetID)
	if !ok {
		return core.Deny("settlement not found")
	}
	if att.Civilian {
		return core.Deny("civilians cannot attack")
	}
	if att.HasActed {
		return core.Deny("unit has already acted")
	}
	if att.SettlementStrength <= 0 {
		return core.Deny("unit cannot damage settlements")
	}
	if att.Owner == target.Owner {
		return core.Deny("cannot attack own settlement")
	}
	if !r.dipl.AtWar(s, att.Owner, target.Owner) {
		return core.Deny("not at war")
	}

	dist := core.Distance(att.Position, target.Position)
	maxRange := 1
	if att.IsRanged() {
		maxRange = config.Get().Game.Combat.RangedAttackRange
	}
	if dist > maxRange {
		return core.Deny("target out of range")
	}
	return core.Allow()
}

// ResolveSiege strikes a settlement once. The settlement defends with the
// fixed base defense constant; melee attackers take return damage. HP can
// reach zero without changing ownership, conquest is a separate step.
func (r *Resolver) ResolveSiege(s *core.GameState, attackerID core.UnitID, targetID core.SettlementID) (*SiegeOutcome, bool) {
	att, ok := s.Unit(attackerID)
	if !ok {
		return nil, false
	}
	target, ok := s.Settlement(targetID)
	if !ok {
		return nil, false
	}

	cfg := config.Get().Game

	out := &SiegeOutcome{
		AttackerStrength: att.SettlementStrength,
		DefenseStrength:  cfg.Settlement.BaseDefense,
	}
	if out.AttackerStrength < 1 {
		out.AttackerStrength = 1
	}

	ratio := float64(out.AttackerStrength) / math.Max(1, float64(out.DefenseStrength))
	out.SettlementDamage = int(math.Floor(float64(cfg.Combat.BaseDamage) * ratio))
	if !att.IsRanged() {
		out.AttackerDamage = int(math.Floor(float64(cfg.Combat.BaseDamage) / ratio))
	}

	att.HasActed = true
	att.MovementRemaining = 0

	target.Health = common.Max(target.Health-out.SettlementDamage, 0)
	att.Health -= out.AttackerDamage
	out.SettlementFell = target.Health == 0
	out.AttackerKilled = att.Health <= 0

	r.GrantExperience(s, att, cfg.Combat.CombatXP)
	if out.AttackerKilled {
		delete(s.Units, att.ID)
	}

	r.logger.Debug().
		Str("attacker", string(attackerID)).
		Str("settlement", string(targetID)).
		Int("settlement_damage", out.SettlementDamage).
		Int("settlement_health", target.Health).
		Msg("siege strike resolved")

	return out, true
}

// CanConquer checks that the settlement is at zero health and that the
// conqueror has a military unit standing on it while at war with the owner.
func (r *Resolver) CanConquer(s *core.GameState, targetID core.SettlementID, conqueror core.TribeID) core.Legality {
	target, ok := s.Settlement(targetID)
	if !ok {
		return core.Deny("settlement not found")
	}
	if target.Owner == conqueror {
		return core.Deny("already owned")
	}
	if !r.dipl.AtWar(s, conqueror, target.Owner) {
		return core.Deny("not at war")
	}
	if target.Health > 0 {
		return core.Deny("settlement still stands")
	}
	for _, u := range s.UnitsAt(target.Position) {
		if u.Owner == conqueror && !u.Civilian {
			return core.Allow()
		}
	}
	return core.Deny("no occupying unit")
}

// Conquer transfers a razed settlement to the conqueror. The build queue is
// lost and the settlement starts its new life badly damaged.
func (r *Resolver) Conquer(s *core.GameState, targetID core.SettlementID, conqueror core.TribeID) core.Legality {
	if verdict := r.CanConquer(s, targetID, conqueror); !verdict.Allowed {
		return verdict
	}

	target, _ := s.Settlement(targetID)
	previous := target.Owner
	target.Owner = conqueror
	target.BuildQueue = nil
	target.Health = target.MaxHealth / 4
	if target.Health < 1 {
		target.Health = 1
	}

	// Trade routes through a conquered settlement no longer flow.
	for _, id := range s.SortedRouteIDs() {
		route := s.TradeRoutes[id]
		if route.Active && (route.From == targetID || route.To == targetID) {
			route.Active = false
		}
	}

	r.logger.Info().
		Str("settlement", string(targetID)).
		Str("from", string(previous)).
		Str("to", string(conqueror)).
		Msg("settlement conquered")

	return core.Allow()
}
