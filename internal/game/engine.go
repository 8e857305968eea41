package game

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hexfall/tribesim/internal/game/combat"
	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/diplomacy"
	"github.com/hexfall/tribesim/internal/game/events"
	"github.com/hexfall/tribesim/internal/game/unit"
)

// BarbarianTribe owns units spawned from camps. It is created lazily the
// first time a camp spawns and is immediately at war with everyone.
const BarbarianTribe core.TribeID = "barbarians"

// Engine applies actions to snapshots. All randomness flows through the
// injected rng so a full game is replayable from a seed.
type Engine struct {
	logger    zerolog.Logger
	rng       core.Rand
	bus       events.Publisher
	diplomacy *diplomacy.Engine
	combat    *combat.Resolver
	gameID    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithBus attaches an event bus; without one the engine stays silent.
func WithBus(bus events.Publisher) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithGameID overrides the generated game id used in event payloads.
func WithGameID(id string) Option {
	return func(e *Engine) { e.gameID = id }
}

// NewEngine creates an engine around one random source.
func NewEngine(logger zerolog.Logger, rng core.Rand, opts ...Option) *Engine {
	dipl := diplomacy.NewEngine(logger)
	e := &Engine{
		logger:    logger.With().Str("component", "engine").Logger(),
		rng:       rng,
		diplomacy: dipl,
		combat:    combat.NewResolver(logger, dipl),
		gameID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GameID returns the id stamped on published events.
func (e *Engine) GameID() string { return e.gameID }

// Diplomacy exposes the diplomacy engine for read-side queries.
func (e *Engine) Diplomacy() *diplomacy.Engine { return e.diplomacy }

// Combat exposes the combat resolver for read-side queries.
func (e *Engine) Combat() *combat.Resolver { return e.combat }

// Rand returns the engine's random source.
func (e *Engine) Rand() core.Rand { return e.rng }

// SpawnUnit creates a unit of the given type with a rolled rarity and adds
// it to the snapshot in place. This is a setup helper for drivers; in-game
// units arrive through camps and settlement production.
func (e *Engine) SpawnUnit(s *core.GameState, t core.UnitType, owner core.TribeID, pos core.HexCoord) (*core.Unit, error) {
	u, err := unit.Create(t, owner, pos, nil, e.rng)
	if err != nil {
		return nil, err
	}
	s.Units[u.ID] = u
	return u, nil
}

func (e *Engine) publish(ev events.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}
