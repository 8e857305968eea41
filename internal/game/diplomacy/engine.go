// Package diplomacy implements the pairwise relationship state machine:
// stance transitions, the reputation ledger, war weariness and alliance
// obligations.
package diplomacy

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// Engine applies diplomatic transitions to a snapshot. Methods mutate the
// snapshot they are handed; the game layer clones before calling in.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a diplomacy engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "diplomacy").Logger(),
	}
}

// Relation returns the single relation for the unordered pair (a, b),
// creating it lazily as neutral on first touch. Relations persist for the
// whole game; they are only ever transitioned, never deleted.
func (e *Engine) Relation(s *core.GameState, a, b core.TribeID) *core.DiplomaticRelation {
	key := core.PairKey(a, b)
	rel, ok := s.Diplomacy.Relations[key]
	if !ok {
		rel = &core.DiplomaticRelation{Stance: core.StanceNeutral}
		s.Diplomacy.Relations[key] = rel
	}
	return rel
}

// Stance returns the current stance between two tribes.
func (e *Engine) Stance(s *core.GameState, a, b core.TribeID) core.Stance {
	if a == b {
		return core.StanceAllied
	}
	return e.Relation(s, a, b).Stance
}

// AtWar reports whether two tribes are at war.
func (e *Engine) AtWar(s *core.GameState, a, b core.TribeID) bool {
	return a != b && e.Stance(s, a, b) == core.StanceWar
}

// Enemies returns every tribe currently at war with the given tribe,
// in deterministic order.
func (e *Engine) Enemies(s *core.GameState, tribe core.TribeID) []core.TribeID {
	return e.withStance(s, tribe, core.StanceWar)
}

// Allies returns every tribe currently allied with the given tribe,
// in deterministic order.
func (e *Engine) Allies(s *core.GameState, tribe core.TribeID) []core.TribeID {
	return e.withStance(s, tribe, core.StanceAllied)
}

func (e *Engine) withStance(s *core.GameState, tribe core.TribeID, stance core.Stance) []core.TribeID {
	var result []core.TribeID
	for _, other := range s.SortedTribeIDs() {
		if other == tribe {
			continue
		}
		if e.Stance(s, tribe, other) == stance {
			result = append(result, other)
		}
	}
	return result
}

// friendsOf returns tribes at friendly or allied stance with the given
// tribe, excluding the given other tribe.
func (e *Engine) friendsOf(s *core.GameState, tribe, excluding core.TribeID) []core.TribeID {
	var result []core.TribeID
	for _, other := range s.SortedTribeIDs() {
		if other == tribe || other == excluding {
			continue
		}
		if st := e.Stance(s, tribe, other); st == core.StanceFriendly || st == core.StanceAllied {
			result = append(result, other)
		}
	}
	return result
}

// applyReputation shifts the shared reputation on the (a, b) relation and
// appends a ledger event for a; when both is set, b receives the event too.
// The ledger exists for auditability only.
func (e *Engine) applyReputation(s *core.GameState, a, b core.TribeID, amount int, kind string, both bool) {
	rel := e.Relation(s, a, b)
	rel.Reputation += amount

	ev := core.ReputationEvent{Kind: kind, Turn: s.Turn, Amount: amount}
	s.Diplomacy.Events[a] = append(s.Diplomacy.Events[a], ev)
	if both {
		s.Diplomacy.Events[b] = append(s.Diplomacy.Events[b], ev)
	}
}

func setStance(rel *core.DiplomaticRelation, stance core.Stance) {
	rel.Stance = stance
	rel.TurnsAtStance = 0
}

// EndOfTurn advances all relations by one turn: stance counters tick, the
// automatic hostile-to-neutral cooldown fires, and every tribe at war with
// anyone accrues war weariness.
func (e *Engine) EndOfTurn(s *core.GameState) {
	dip := config.Get().Game.Diplomacy

	keys := make([]string, 0, len(s.Diplomacy.Relations))
	for k := range s.Diplomacy.Relations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		rel := s.Diplomacy.Relations[k]
		rel.TurnsAtStance++
		if rel.Stance == core.StanceHostile && rel.TurnsAtStance >= dip.HostileToNeutralTurns {
			setStance(rel, core.StanceNeutral)
			e.logger.Debug().Str("pair", k).Msg("hostility cooled to neutral")
		}
	}

	for _, id := range s.SortedTribeIDs() {
		if len(e.Enemies(s, id)) > 0 {
			s.Tribes[id].WarWeariness += dip.WearinessPerTurn
		}
	}
}
