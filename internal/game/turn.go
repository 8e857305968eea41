package game

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/events"
	"github.com/hexfall/tribesim/internal/game/unit"
)

// applyEndTurn runs world end-of-turn processing: the diplomacy tick,
// healing, camp spawns, movement and action resets, then the turn counter.
// Healing runs before the reset pass because it reads hasActed.
func (e *Engine) applyEndTurn(s *core.GameState, act EndTurnAction) core.Legality {
	if _, ok := s.Tribe(act.TribeID); !ok {
		return core.Deny("tribe not found")
	}

	e.diplomacy.EndOfTurn(s)
	e.combat.HealAll(s)

	for _, id := range s.SortedUnitIDs() {
		u := s.Units[id]
		u.MovementRemaining = u.MaxMovement
		u.HasActed = false
	}

	e.tickCamps(s)

	s.Turn++
	e.publish(events.NewTurnEndedEvent(e.gameID, s.Turn-1, 0))
	e.logger.Debug().Int("turn", s.Turn).Msg("turn advanced")
	return core.Allow()
}

// tickCamps counts down camp spawn cooldowns and spawns a raider when one
// expires. Raiders belong to the barbarian tribe, which enters the world at
// war with everyone.
func (e *Engine) tickCamps(s *core.GameState) {
	cfg := config.Get().Game.Camps
	for _, camp := range s.Camps {
		camp.SpawnCooldown--
		if camp.SpawnCooldown > 0 {
			continue
		}
		camp.SpawnCooldown = cfg.SpawnCooldown

		e.ensureBarbarians(s)
		raider, err := unit.Create(core.UnitType(cfg.SpawnUnitType), BarbarianTribe, camp.Position, nil, e.rng)
		if err != nil {
			e.logger.Warn().Err(err).Msg("camp spawn failed")
			continue
		}
		if entry := unit.EntryFor(s, raider, camp.Position); entry.Blocked != unit.BlockNone {
			// The camp hex is contested or full; skip this cycle.
			continue
		}
		s.Units[raider.ID] = raider
		e.logger.Debug().
			Str("unit", string(raider.ID)).
			Str("position", camp.Position.String()).
			Msg("camp spawned raider")
	}
}

// ensureBarbarians creates the barbarian tribe on first spawn and puts it
// at war with every settled tribe.
func (e *Engine) ensureBarbarians(s *core.GameState) {
	if _, ok := s.Tribe(BarbarianTribe); ok {
		return
	}
	others := s.SortedTribeIDs()
	s.Tribes[BarbarianTribe] = &core.Tribe{ID: BarbarianTribe, Name: "Barbarians"}
	for _, other := range others {
		e.diplomacy.DeclareWar(s, BarbarianTribe, other)
	}
}
