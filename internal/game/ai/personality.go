package ai

import (
	"github.com/hexfall/tribesim/internal/config"
	"github.com/hexfall/tribesim/internal/game/core"
)

// Personality is a tribe's immutable temperament record, resolved once per
// planning pass from the config table.
type Personality struct {
	Name string
	config.PersonalityConfig
}

// personalityFor resolves a tribe's personality, falling back to balanced
// when the tribe names an unknown one.
func personalityFor(tribe *core.Tribe) Personality {
	table := config.Get().AI.Personalities
	name := tribe.Personality
	p, ok := table[name]
	if !ok {
		name = "balanced"
		p = table[name]
	}
	return Personality{Name: name, PersonalityConfig: p}
}

// categoryWeight returns the tribe's affinity for a scoring category.
// Unknown categories weigh 1.
func (p Personality) categoryWeight(category string) float64 {
	if w, ok := p.CategoryWeights[category]; ok && w > 0 {
		return w
	}
	return 1
}
