package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game"
	"github.com/hexfall/tribesim/internal/game/ai"
	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/events"
	"github.com/hexfall/tribesim/internal/game/mapgen"
	"github.com/hexfall/tribesim/internal/persistence"
)

// personalityRotation assigns flavors to tribes in creation order.
var personalityRotation = []string{"aggressive", "defensive", "expansionist", "trader", "balanced"}

var tribeNames = []core.TribeID{"azure", "crimson", "emerald", "ochre", "violet", "indigo"}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "Map and simulation seed (0 = time-based)")
	turns := flag.Int("turns", 100, "Maximum number of turns to simulate")
	tribes := flag.Int("tribes", 4, "Number of tribes")
	radius := flag.Int("radius", 12, "Map radius in hexes")
	dbPath := flag.String("db", "", "SQLite snapshot database path (empty = no persistence)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	saveEvery := flag.Int("save-every", 10, "Save a snapshot every N turns")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Log.Level
	}
	setupLogging(*logLevel, cfg.Log.Format)
	config.WatchConfig(func() {
		log.Info().Msg("config reloaded")
	})

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *tribes < 2 || *tribes > len(tribeNames) {
		log.Fatal().Int("tribes", *tribes).Msgf("tribes must be between 2 and %d", len(tribeNames))
	}
	log.Info().Int64("seed", *seed).Int("turns", *turns).Int("tribes", *tribes).Msg("starting simulation")

	bus := events.NewEventBus()
	var store *persistence.Store
	if *dbPath != "" {
		var err error
		store, err = persistence.Open(*dbPath, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open snapshot store")
		}
		defer store.Close()
		bus.Subscribe(persistence.NewEventSink(store, log.Logger))
	}

	engine := game.NewEngine(log.Logger, core.SeededRand(*seed), game.WithBus(bus))
	director := ai.NewDirector(log.Logger, engine, ai.DefaultOracles())

	state := setupWorld(engine, *seed, *radius, *tribes)
	bus.Publish(events.NewGameStartedEvent(engine.GameID(), *tribes, *radius, *seed))

	state = run(engine, director, bus, store, state, *turns, *saveEvery)
	report(state)
}

// setupWorld generates the map and drops each tribe's starting settler and
// warrior at a spaced position.
func setupWorld(engine *game.Engine, seed int64, radius, tribes int) *core.GameState {
	opts := mapgen.DefaultOptions(seed)
	opts.Radius = radius
	s := mapgen.Generate(opts)

	starts := mapgen.StartPositions(s, radius, tribes)
	if len(starts) < tribes {
		log.Fatal().Int("starts", len(starts)).Msg("not enough start positions on this map")
	}

	for i := 0; i < tribes; i++ {
		id := tribeNames[i]
		s.Tribes[id] = &core.Tribe{
			ID:          id,
			Name:        string(id),
			Personality: personalityRotation[i%len(personalityRotation)],
		}
		spawnStartingUnits(engine, s, id, starts[i])
	}
	return s
}

func spawnStartingUnits(engine *game.Engine, s *core.GameState, tribe core.TribeID, pos core.HexCoord) {
	settler := unitOrDie(engine, s, "settler", tribe, pos)

	warriorPos := pos
	for _, n := range pos.Neighbors() {
		if tile, ok := s.Tile(n); ok && !tile.Terrain.IsImpassable() {
			warriorPos = n
			break
		}
	}
	unitOrDie(engine, s, "warrior", tribe, warriorPos)

	s.MarkExplored(tribe, core.Range(pos, settler.Vision))
}

func unitOrDie(engine *game.Engine, s *core.GameState, t core.UnitType, tribe core.TribeID, pos core.HexCoord) *core.Unit {
	u, err := engine.SpawnUnit(s, t, tribe, pos)
	if err != nil {
		log.Fatal().Err(err).Str("type", string(t)).Str("tribe", string(tribe)).Msg("failed to spawn starting unit")
	}
	return u
}

// run drives the plan/apply loop until the turn cap or a single surviving
// tribe. Rejected actions are skipped, never retried.
func run(engine *game.Engine, director *ai.Director, bus events.Publisher, store *persistence.Store, s *core.GameState, maxTurns, saveEvery int) *core.GameState {
	for s.Turn < maxTurns {
		bus.Publish(events.NewTurnStartedEvent(engine.GameID(), s.Turn))

		for _, tribe := range s.SortedTribeIDs() {
			if tribe == game.BarbarianTribe || eliminated(s, tribe) {
				continue
			}
			for _, action := range director.PlanTurn(s, tribe) {
				if _, ok := action.(game.EndTurnAction); ok {
					continue
				}
				next, err := engine.Apply(s, action)
				if errors.Is(err, core.ErrActionRejected) {
					continue
				}
				if err != nil {
					log.Error().Err(err).Str("kind", action.Kind()).Msg("action failed")
					continue
				}
				s = next
			}
		}

		next, err := engine.Apply(s, game.EndTurnAction{TribeID: firstTribe(s)})
		if err != nil {
			log.Fatal().Err(err).Msg("end of turn failed")
		}
		s = next

		if store != nil && saveEvery > 0 && s.Turn%saveEvery == 0 {
			if err := store.SaveSnapshot(engine.GameID(), s); err != nil {
				log.Error().Err(err).Int("turn", s.Turn).Msg("snapshot not saved")
			}
		}
		if survivors(s) <= 1 {
			break
		}
	}

	if store != nil {
		if err := store.SaveSnapshot(engine.GameID(), s); err != nil {
			log.Error().Err(err).Msg("final snapshot not saved")
		}
	}
	return s
}

func firstTribe(s *core.GameState) core.TribeID {
	for _, id := range s.SortedTribeIDs() {
		if id != game.BarbarianTribe {
			return id
		}
	}
	return game.BarbarianTribe
}

// eliminated reports whether a tribe has lost every unit and settlement.
func eliminated(s *core.GameState, tribe core.TribeID) bool {
	return len(s.TribeUnits(tribe)) == 0 && len(s.TribeSettlements(tribe)) == 0
}

func survivors(s *core.GameState) int {
	count := 0
	for _, id := range s.SortedTribeIDs() {
		if id == game.BarbarianTribe || eliminated(s, id) {
			continue
		}
		count++
	}
	return count
}

func report(s *core.GameState) {
	fmt.Printf("\nSimulation finished at turn %d\n", s.Turn)
	for _, id := range s.SortedTribeIDs() {
		tribe := s.Tribes[id]
		status := "alive"
		if eliminated(s, id) {
			status = "eliminated"
		}
		fmt.Printf("%-10s %-12s %-10s units=%-3d settlements=%-2d kills=%-3d weariness=%d\n",
			id, tribe.Personality, status,
			len(s.TribeUnits(id)), len(s.TribeSettlements(id)), tribe.Kills, tribe.WarWeariness)
	}
}

func setupLogging(level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
