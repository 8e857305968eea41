package combat

import (
	"math"

	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// Outcome reports what a single battle did to each side.
type Outcome struct {
	AttackerStrength int
	DefenderStrength int
	AttackerDamage   int
	DefenderDamage   int
	AttackerKilled   bool
	DefenderKilled   bool
}

// CanAttack checks attack legality: both units must exist, the attacker
// must be a military unit with an action left, the tribes must be at war,
// and the defender must be in range (adjacent, or within ranged reach).
func (r *Resolver) CanAttack(s *core.GameState, attackerID, defenderID core.UnitID) core.Legality {
	att, ok := s.Unit(attackerID)
	if !ok {
		return core.Deny("attacker not found")
	}
	def, ok := s.Unit(defenderID)
	if !ok {
		return core.Deny("defender not found")
	}
	if att.Civilian {
		return core.Deny("civilians cannot attack")
	}
	if att.HasActed {
		return core.Deny("unit has already acted")
	}
	if att.Owner == def.Owner {
		return core.Deny("cannot attack own tribe")
	}
	if !r.dipl.AtWar(s, att.Owner, def.Owner) {
		return core.Deny("not at war")
	}

	dist := core.Distance(att.Position, def.Position)
	maxRange := 1
	if att.IsRanged() {
		maxRange = config.Get().Game.Combat.RangedAttackRange
	}
	if dist > maxRange {
		return core.Deny("target out of range")
	}
	return core.Allow()
}

// Resolve fights one round between two units. The second return is false
// when either unit id no longer resolves, so a scripted turn can skip past
// a stale order without aborting.
func (r *Resolver) Resolve(s *core.GameState, attackerID, defenderID core.UnitID) (*Outcome, bool) {
	att, ok := s.Unit(attackerID)
	if !ok {
		return nil, false
	}
	def, ok := s.Unit(defenderID)
	if !ok {
		return nil, false
	}

	cfg := config.Get().Game.Combat

	out := &Outcome{
		AttackerStrength: r.Strength(s, att, false, &def.Position),
		DefenderStrength: r.Strength(s, def, true, nil),
	}

	ratio := float64(out.AttackerStrength) / math.Max(1, float64(out.DefenderStrength))
	out.DefenderDamage = int(math.Floor(float64(cfg.BaseDamage) * ratio))
	if !att.IsRanged() {
		out.AttackerDamage = int(math.Floor(float64(cfg.BaseDamage) / ratio))
	}

	att.HasActed = true
	att.MovementRemaining = 0

	def.Health -= out.DefenderDamage
	att.Health -= out.AttackerDamage
	out.DefenderKilled = def.Health <= 0
	out.AttackerKilled = att.Health <= 0

	r.GrantExperience(s, att, cfg.CombatXP)
	r.GrantExperience(s, def, cfg.CombatXP)
	if out.DefenderKilled {
		r.GrantExperience(s, att, cfg.KillXP)
		r.creditKill(s, att.Owner)
		delete(s.Units, def.ID)
	}
	if out.AttackerKilled {
		r.GrantExperience(s, def, cfg.KillXP)
		r.creditKill(s, def.Owner)
		delete(s.Units, att.ID)
	}

	r.logger.Debug().
		Str("attacker", string(attackerID)).
		Str("defender", string(defenderID)).
		Int("attacker_strength", out.AttackerStrength).
		Int("defender_strength", out.DefenderStrength).
		Int("defender_damage", out.DefenderDamage).
		Int("attacker_damage", out.AttackerDamage).
		Msg("combat resolved")

	return out, true
}

// GrantExperience adds xp and advances the unit through any level
// thresholds it now clears. Each level earned banks one pending promotion.
func (r *Resolver) GrantExperience(s *core.GameState, u *core.Unit, xp int) {
	if u.Health <= 0 {
		return
	}
	perLevel := config.Get().Game.Combat.XPPerLevel
	u.Experience += xp
	for u.Experience >= (u.Level+1)*perLevel {
		u.Level++
		u.PendingPromotions++
		r.logger.Debug().Str("unit", string(u.ID)).Int("level", u.Level).Msg("unit leveled up")
	}
}

func (r *Resolver) creditKill(s *core.GameState, tribe core.TribeID) {
	if t, ok := s.Tribe(tribe); ok {
		t.Kills++
	}
}
