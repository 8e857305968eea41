package ai

import (
	"github.com/rs/zerolog"

	"github.com/hexfall/tribesim/internal/game"
	"github.com/hexfall/tribesim/internal/game/combat"
	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/diplomacy"
)

// Director plans a full turn for one tribe at a time. Stages run in a fixed
// order and later stages never replan earlier ones; the list always ends
// with the end-turn marker.
type Director struct {
	logger  zerolog.Logger
	rng     core.Rand
	dipl    *diplomacy.Engine
	combat  *combat.Resolver
	oracles Oracles

	cache strengthCache
}

// NewDirector creates a director sharing the engine's rule components and
// random source.
func NewDirector(logger zerolog.Logger, engine *game.Engine, oracles Oracles) *Director {
	return &Director{
		logger:  logger.With().Str("component", "ai_director").Logger(),
		rng:     engine.Rand(),
		dipl:    engine.Diplomacy(),
		combat:  engine.Combat(),
		oracles: oracles,
	}
}

// PlanTurn synthesizes the tribe's ordered action list for the current
// turn. The returned list is applied by an external driver that skips
// failed actions; the director never retries.
func (d *Director) PlanTurn(s *core.GameState, tribe core.TribeID) []game.Action {
	t, ok := s.Tribe(tribe)
	if !ok {
		return []game.Action{game.EndTurnAction{TribeID: tribe}}
	}
	p := personalityFor(t)

	var actions []game.Action
	actions = append(actions, d.planDiplomacy(s, tribe, p)...)
	actions = append(actions, d.planResearch(s, tribe, p)...)
	actions = append(actions, d.planCulture(s, tribe, p)...)
	actions = append(actions, d.planWonders(s, tribe, p)...)
	actions = append(actions, d.planUnits(s, tribe, p)...)
	actions = append(actions, d.planTrade(s, tribe, p)...)
	actions = append(actions, game.EndTurnAction{TribeID: tribe})

	d.logger.Debug().
		Str("tribe", string(tribe)).
		Str("personality", p.Name).
		Int("actions", len(actions)).
		Msg("turn planned")
	return actions
}

// strengthCache memoizes summed military strength per tribe for one turn.
// Scoring consults strength dozens of times per plan; the cache resets when
// the turn counter moves.
type strengthCache struct {
	turn   int
	valid  bool
	values map[core.TribeID]int
}

// militaryStrength returns the tribe's summed non-civilian strength.
func (d *Director) militaryStrength(s *core.GameState, tribe core.TribeID) int {
	if !d.cache.valid || d.cache.turn != s.Turn {
		d.cache = strengthCache{turn: s.Turn, valid: true, values: make(map[core.TribeID]int)}
	}
	if v, ok := d.cache.values[tribe]; ok {
		return v
	}

	total := 0
	for _, u := range s.TribeUnits(tribe) {
		if u.Civilian {
			continue
		}
		total += u.CombatStrength
		if u.RangedStrength > u.CombatStrength {
			total += u.RangedStrength - u.CombatStrength
		}
	}
	d.cache.values[tribe] = total
	return total
}

// livingRivals lists every other tribe in deterministic order, barbarians
// excluded from diplomatic consideration.
func (d *Director) livingRivals(s *core.GameState, tribe core.TribeID) []core.TribeID {
	var rivals []core.TribeID
	for _, id := range s.SortedTribeIDs() {
		if id == tribe || id == game.BarbarianTribe {
			continue
		}
		rivals = append(rivals, id)
	}
	return rivals
}

// currentEra derives a coarse era index from the turn counter.
func currentEra(s *core.GameState, eraLength int) int {
	if eraLength <= 0 {
		return 0
	}
	return s.Turn / eraLength
}

// eraCurve scores how timely an option of a given era is: on-era options
// score 1, each era of distance halves the appeal.
func eraCurve(optionEra, era int) float64 {
	d := optionEra - era
	if d < 0 {
		d = -d
	}
	return 1 / float64(1+d)
}
