package core

import "sort"

// Tribe is one faction in the game.
type Tribe struct {
	ID           TribeID `json:"id"`
	Name         string  `json:"name"`
	Personality  string  `json:"personality"`
	WarWeariness int     `json:"war_weariness"`
	Kills        int     `json:"kills"`

	// Current selections in the external research/culture subsystems.
	// The engine records the choices; yields are computed elsewhere.
	CurrentResearch string `json:"current_research,omitempty"`
	CurrentCulture  string `json:"current_culture,omitempty"`
}

// Clone returns a copy of the tribe.
func (t *Tribe) Clone() *Tribe {
	c := *t
	return &c
}

// TradeRoute connects two settlements. Routes crossing a new war front are
// deactivated, never deleted.
type TradeRoute struct {
	ID        TradeRouteID `json:"id"`
	From      SettlementID `json:"from"`
	To        SettlementID `json:"to"`
	FromTribe TribeID      `json:"from_tribe"`
	ToTribe   TribeID      `json:"to_tribe"`
	GoldYield int          `json:"gold_yield"`
	Active    bool         `json:"active"`
}

// Clone returns a copy of the trade route.
func (t *TradeRoute) Clone() *TradeRoute {
	c := *t
	return &c
}

// Camp is a barbarian camp. Its spawn cooldown is genuine game state and
// must survive save/restore.
type Camp struct {
	Position      HexCoord `json:"position"`
	SpawnCooldown int      `json:"spawn_cooldown"`
}

// Lootbox is an unclaimed map reward that scouts pursue.
type Lootbox struct {
	Position HexCoord `json:"position"`
	Claimed  bool     `json:"claimed"`
}

// GameState is the full game snapshot. Mutating operations deep-copy the
// snapshot, mutate the copy, and return it; a rejected action never touches
// the caller's snapshot.
type GameState struct {
	Turn int `json:"turn"`

	Tiles       map[HexCoord]*Tile            `json:"tiles"`
	Units       map[UnitID]*Unit              `json:"units"`
	Settlements map[SettlementID]*Settlement  `json:"settlements"`
	Tribes      map[TribeID]*Tribe            `json:"tribes"`
	Diplomacy   DiplomacyState                `json:"diplomacy"`
	TradeRoutes map[TradeRouteID]*TradeRoute  `json:"trade_routes,omitempty"`
	Camps       []*Camp                       `json:"camps,omitempty"`
	Lootboxes   []*Lootbox                    `json:"lootboxes,omitempty"`
	Explored    map[TribeID]map[HexCoord]bool `json:"explored,omitempty"`

	// GreatPeopleClaimed records global one-per-game unlocks: once a tribe
	// claims a great person, no other tribe may ever earn it.
	GreatPeopleClaimed map[GreatPersonID]TribeID `json:"great_people_claimed,omitempty"`
}

// NewGameState returns an empty snapshot.
func NewGameState() *GameState {
	return &GameState{
		Tiles:              make(map[HexCoord]*Tile),
		Units:              make(map[UnitID]*Unit),
		Settlements:        make(map[SettlementID]*Settlement),
		Tribes:             make(map[TribeID]*Tribe),
		Diplomacy:          NewDiplomacyState(),
		TradeRoutes:        make(map[TradeRouteID]*TradeRoute),
		Explored:           make(map[TribeID]map[HexCoord]bool),
		GreatPeopleClaimed: make(map[GreatPersonID]TribeID),
	}
}

// Clone returns a deep copy of the snapshot.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		Turn:               s.Turn,
		Tiles:              make(map[HexCoord]*Tile, len(s.Tiles)),
		Units:              make(map[UnitID]*Unit, len(s.Units)),
		Settlements:        make(map[SettlementID]*Settlement, len(s.Settlements)),
		Tribes:             make(map[TribeID]*Tribe, len(s.Tribes)),
		Diplomacy:          s.Diplomacy.Clone(),
		TradeRoutes:        make(map[TradeRouteID]*TradeRoute, len(s.TradeRoutes)),
		Explored:           make(map[TribeID]map[HexCoord]bool, len(s.Explored)),
		GreatPeopleClaimed: make(map[GreatPersonID]TribeID, len(s.GreatPeopleClaimed)),
	}
	for k, t := range s.Tiles {
		c.Tiles[k] = t.Clone()
	}
	for k, u := range s.Units {
		c.Units[k] = u.Clone()
	}
	for k, st := range s.Settlements {
		c.Settlements[k] = st.Clone()
	}
	for k, t := range s.Tribes {
		c.Tribes[k] = t.Clone()
	}
	for k, r := range s.TradeRoutes {
		c.TradeRoutes[k] = r.Clone()
	}
	for _, camp := range s.Camps {
		cc := *camp
		c.Camps = append(c.Camps, &cc)
	}
	for _, lb := range s.Lootboxes {
		lc := *lb
		c.Lootboxes = append(c.Lootboxes, &lc)
	}
	for tribe, seen := range s.Explored {
		m := make(map[HexCoord]bool, len(seen))
		for h := range seen {
			m[h] = true
		}
		c.Explored[tribe] = m
	}
	for k, tribe := range s.GreatPeopleClaimed {
		c.GreatPeopleClaimed[k] = tribe
	}
	return c
}

// Tile returns the tile at h, if any.
func (s *GameState) Tile(h HexCoord) (*Tile, bool) {
	t, ok := s.Tiles[h]
	return t, ok
}

// InBounds reports whether h is part of the map.
func (s *GameState) InBounds(h HexCoord) bool {
	_, ok := s.Tiles[h]
	return ok
}

// Unit returns the unit with the given id, if present.
func (s *GameState) Unit(id UnitID) (*Unit, bool) {
	u, ok := s.Units[id]
	return u, ok
}

// Settlement returns the settlement with the given id, if present.
func (s *GameState) Settlement(id SettlementID) (*Settlement, bool) {
	st, ok := s.Settlements[id]
	return st, ok
}

// Tribe returns the tribe with the given id, if present.
func (s *GameState) Tribe(id TribeID) (*Tribe, bool) {
	t, ok := s.Tribes[id]
	return t, ok
}

// UnitsAt returns every unit on a hex, ordered by id for determinism.
func (s *GameState) UnitsAt(h HexCoord) []*Unit {
	var result []*Unit
	for _, u := range s.Units {
		if u.Position == h {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SettlementAt returns the settlement on a hex, if any.
func (s *GameState) SettlementAt(h HexCoord) (*Settlement, bool) {
	for _, st := range s.Settlements {
		if st.Position == h {
			return st, true
		}
	}
	return nil, false
}

// TribeUnits returns a tribe's units ordered by id.
func (s *GameState) TribeUnits(tribe TribeID) []*Unit {
	var result []*Unit
	for _, u := range s.Units {
		if u.Owner == tribe {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// TribeSettlements returns a tribe's settlements ordered by id.
func (s *GameState) TribeSettlements(tribe TribeID) []*Settlement {
	var result []*Settlement
	for _, st := range s.Settlements {
		if st.Owner == tribe {
			result = append(result, st)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SortedTribeIDs returns every tribe id in lexical order. Map iteration in
// Go is randomized, so every pass over tribes goes through this to keep
// turns replayable.
func (s *GameState) SortedTribeIDs() []TribeID {
	ids := make([]TribeID, 0, len(s.Tribes))
	for id := range s.Tribes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortedUnitIDs returns every unit id in lexical order.
func (s *GameState) SortedUnitIDs() []UnitID {
	ids := make([]UnitID, 0, len(s.Units))
	for id := range s.Units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortedSettlementIDs returns every settlement id in lexical order.
func (s *GameState) SortedSettlementIDs() []SettlementID {
	ids := make([]SettlementID, 0, len(s.Settlements))
	for id := range s.Settlements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortedRouteIDs returns every trade route id in lexical order.
func (s *GameState) SortedRouteIDs() []TradeRouteID {
	ids := make([]TradeRouteID, 0, len(s.TradeRoutes))
	for id := range s.TradeRoutes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarkExplored records hexes as seen by a tribe.
func (s *GameState) MarkExplored(tribe TribeID, hexes []HexCoord) {
	seen := s.Explored[tribe]
	if seen == nil {
		seen = make(map[HexCoord]bool)
		s.Explored[tribe] = seen
	}
	for _, h := range hexes {
		if s.InBounds(h) {
			seen[h] = true
		}
	}
}
