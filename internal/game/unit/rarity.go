package unit

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// RollRarity draws a rarity tier from the configured cumulative-weight
// table. With the default weights 50/30/15/4/1, a roll in [0,50) is common,
// [50,80) uncommon, [80,95) rare, [95,99) epic and [99,100) legendary.
func RollRarity(rng core.Rand) core.Rarity {
	weights := config.Get().Game.Rarity.Weights

	total := 0
	for _, w := range weights {
		total += w
	}

	x := rng() * float64(total)
	for i, w := range weights {
		x -= float64(w)
		if x < 0 {
			return core.Rarity(i)
		}
	}
	// Only hit when rng returns a value at the very top of the range.
	return core.Rarity(len(weights) - 1)
}
