package core

import "math/rand"

// Rand is the single injected source of randomness for the engine. Every
// non-deterministic decision (rarity rolls, AI probabilistic gates, random
// unit picks) draws from one of these, never from a global generator, so a
// full turn is replayable from a seed.
type Rand func() float64

// SeededRand returns a Rand backed by a deterministic generator.
func SeededRand(seed int64) Rand {
	r := rand.New(rand.NewSource(seed))
	return r.Float64
}
