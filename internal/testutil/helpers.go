package testutil

import (
	"github.com/rs/zerolog"

	"github.com/hexfall/tribesim/internal/game/core"
)

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// SeededRand creates a deterministic rng for tests
func SeededRand(seed int64) core.Rand {
	return core.SeededRand(seed)
}

// FixedRand returns an rng that yields the given values in order and then
// repeats the last one forever.
func FixedRand(values ...float64) core.Rand {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}
