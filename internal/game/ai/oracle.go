// Package ai synthesizes a full turn of actions for a tribe: diplomacy,
// research and culture picks, wonder queueing, unit orders and trade
// routes, in that fixed order, ending with the end-turn marker.
package ai

import (
	"github.com/hexfall/tribesim/internal/game/core"
)

// TechOption is one researchable tech as reported by the tech subsystem.
type TechOption struct {
	ID       string
	Category string
	Era      int
	// UnmetCulturePrereq marks a tech whose culture prerequisite the tribe
	// has not satisfied yet; scoring penalizes it heavily.
	UnmetCulturePrereq bool
}

// CultureOption is one adoptable culture track entry.
type CultureOption struct {
	ID       string
	Category string
	Era      int
}

// WonderOption is one buildable wonder with its scoring inputs.
type WonderOption struct {
	ID         string
	Category   string
	Era        int
	FloorPrice float64
	Military   bool
	Production bool
}

// TradeOption is one possible trade route with its projected yield.
type TradeOption struct {
	From       core.SettlementID
	To         core.SettlementID
	OtherTribe core.TribeID
	GoldYield  int
	Internal   bool
}

// TechOracle answers "what can this tribe research" for the director. The
// director depends only on the return contract, never on tech internals.
type TechOracle interface {
	AvailableTechs(s *core.GameState, tribe core.TribeID) []TechOption
}

// CultureOracle answers "what culture options are open".
type CultureOracle interface {
	AvailableCultureOptions(s *core.GameState, tribe core.TribeID) []CultureOption
}

// WonderOracle answers "what wonders could this tribe start".
type WonderOracle interface {
	AvailableWonders(s *core.GameState, tribe core.TribeID) []WonderOption
}

// TradeOracle answers "where could this tribe send a trade route".
type TradeOracle interface {
	AvailableTradeDestinations(s *core.GameState, tribe core.TribeID) []TradeOption
}

// Oracles bundles the read-only subsystem queries the director consumes.
type Oracles struct {
	Tech    TechOracle
	Culture CultureOracle
	Wonder  WonderOracle
	Trade   TradeOracle
}

// StaticOracles is a fixed-content oracle set good enough for simulations
// and tests. Techs and wonders already chosen by the tribe drop out of the
// available lists.
type StaticOracles struct {
	Techs    []TechOption
	Cultures []CultureOption
	Wonders  []WonderOption
}

// DefaultOracles returns a small fixed content set spanning the scoring
// categories.
func DefaultOracles() Oracles {
	static := &StaticOracles{
		Techs: []TechOption{
			{ID: "bronze_working", Category: "military", Era: 0},
			{ID: "pottery", Category: "economy", Era: 0},
			{ID: "writing", Category: "science", Era: 0},
			{ID: "iron_working", Category: "military", Era: 1, UnmetCulturePrereq: true},
			{ID: "currency", Category: "economy", Era: 1},
			{ID: "mathematics", Category: "science", Era: 1},
		},
		Cultures: []CultureOption{
			{ID: "warrior_code", Category: "military", Era: 0},
			{ID: "bartering", Category: "economy", Era: 0},
			{ID: "oral_tradition", Category: "science", Era: 0},
			{ID: "honor_duels", Category: "military", Era: 1},
		},
		Wonders: []WonderOption{
			{ID: "grand_obelisk", Category: "science", Era: 0, FloorPrice: 200},
			{ID: "war_monument", Category: "military", Era: 0, FloorPrice: 250, Military: true},
			{ID: "great_granary", Category: "economy", Era: 1, FloorPrice: 300, Production: true},
		},
	}
	return Oracles{Tech: static, Culture: static, Wonder: static, Trade: static}
}

// AvailableTechs implements TechOracle.
func (o *StaticOracles) AvailableTechs(s *core.GameState, tribe core.TribeID) []TechOption {
	t, ok := s.Tribe(tribe)
	if !ok {
		return nil
	}
	var result []TechOption
	for _, opt := range o.Techs {
		if opt.ID != t.CurrentResearch {
			result = append(result, opt)
		}
	}
	return result
}

// AvailableCultureOptions implements CultureOracle.
func (o *StaticOracles) AvailableCultureOptions(s *core.GameState, tribe core.TribeID) []CultureOption {
	t, ok := s.Tribe(tribe)
	if !ok {
		return nil
	}
	var result []CultureOption
	for _, opt := range o.Cultures {
		if opt.ID != t.CurrentCulture {
			result = append(result, opt)
		}
	}
	return result
}

// AvailableWonders implements WonderOracle. Wonders any settlement has
// already queued for this tribe are excluded.
func (o *StaticOracles) AvailableWonders(s *core.GameState, tribe core.TribeID) []WonderOption {
	queued := make(map[string]bool)
	for _, st := range s.TribeSettlements(tribe) {
		for _, order := range st.BuildQueue {
			if order.Kind == core.BuildWonder {
				queued[order.ID] = true
			}
		}
	}
	var result []WonderOption
	for _, opt := range o.Wonders {
		if !queued[opt.ID] {
			result = append(result, opt)
		}
	}
	return result
}

// AvailableTradeDestinations implements TradeOracle: every pairing from an
// owned settlement to any other settlement, internal or external.
func (o *StaticOracles) AvailableTradeDestinations(s *core.GameState, tribe core.TribeID) []TradeOption {
	owned := s.TribeSettlements(tribe)
	if len(owned) == 0 {
		return nil
	}
	var result []TradeOption
	for _, from := range owned {
		for _, id := range s.SortedSettlementIDs() {
			st := s.Settlements[id]
			if st.ID == from.ID {
				continue
			}
			result = append(result, TradeOption{
				From:       from.ID,
				To:         st.ID,
				OtherTribe: st.Owner,
				GoldYield:  2 + st.Population,
				Internal:   st.Owner == tribe,
			})
		}
	}
	return result
}
