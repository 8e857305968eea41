package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/events"
	"github.com/hexfall/tribesim/internal/testutil"
)

func newTestEngine() *Engine {
	return NewEngine(testutil.NopLogger(), testutil.SeededRand(42), WithGameID("test-game"))
}

func newTestState() *core.GameState {
	s := testutil.CreateTestMap(5)
	testutil.CreateTestTribes(s, "azure", "crimson")
	return s
}

func TestApply_SuccessReturnsFreshSnapshot(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceUnit(s, "u1", "azure", "warrior", core.HexCoord{Q: 0, R: 0})

	next, err := e.Apply(s, MoveUnitAction{TribeID: "azure", UnitID: "u1", Target: core.HexCoord{Q: 1, R: 0}})
	require.NoError(t, err)
	require.NotSame(t, s, next)

	moved, _ := next.Unit("u1")
	assert.Equal(t, core.HexCoord{Q: 1, R: 0}, moved.Position)
	assert.Equal(t, 1, moved.MovementRemaining)

	original, _ := s.Unit("u1")
	assert.Equal(t, core.HexCoord{Q: 0, R: 0}, original.Position, "input snapshot untouched")
	assert.True(t, next.Explored["azure"][core.HexCoord{Q: 1, R: 0}], "vision marks explored hexes")
}

func TestApply_RejectionLeavesStateAlone(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceUnit(s, "u1", "azure", "warrior", core.HexCoord{Q: 0, R: 0})

	next, err := e.Apply(s, MoveUnitAction{TribeID: "azure", UnitID: "u1", Target: core.HexCoord{Q: 5, R: 0}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrActionRejected))
	assert.Same(t, s, next, "failed apply returns the input snapshot")
}

func TestApply_MoveOntoEnemySuggestsAttack(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceUnit(s, "u1", "azure", "warrior", core.HexCoord{Q: 0, R: 0})
	testutil.PlaceUnit(s, "enemy", "crimson", "warrior", core.HexCoord{Q: 1, R: 0})

	_, err := e.Apply(s, MoveUnitAction{TribeID: "azure", UnitID: "u1", Target: core.HexCoord{Q: 1, R: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attack instead")
}

func TestApply_MoveWrongOwner(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceUnit(s, "u1", "azure", "warrior", core.HexCoord{Q: 0, R: 0})

	_, err := e.Apply(s, MoveUnitAction{TribeID: "crimson", UnitID: "u1", Target: core.HexCoord{Q: 1, R: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not owned")
}

func TestApply_MoveClaimsLootbox(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceUnit(s, "scout", "azure", "scout", core.HexCoord{Q: 0, R: 0})
	s.Lootboxes = append(s.Lootboxes, &core.Lootbox{Position: core.HexCoord{Q: 1, R: 0}})

	next, err := e.Apply(s, MoveUnitAction{TribeID: "azure", UnitID: "scout", Target: core.HexCoord{Q: 1, R: 0}})
	require.NoError(t, err)
	assert.True(t, next.Lootboxes[0].Claimed)

	scout, _ := next.Unit("scout")
	assert.Equal(t, 10, scout.Experience)
	assert.False(t, s.Lootboxes[0].Claimed, "input snapshot untouched")
}

func TestApply_AttackRequiresWar(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceUnit(s, "a", "azure", "warrior", core.HexCoord{Q: 0, R: 0})
	testutil.PlaceUnit(s, "d", "crimson", "warrior", core.HexCoord{Q: 1, R: 0})

	_, err := e.Apply(s, AttackAction{TribeID: "azure", AttackerID: "a", DefenderID: "d"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not at war")

	next, err := e.Apply(s, DeclareWarAction{TribeID: "azure", Target: "crimson"})
	require.NoError(t, err)

	next, err = e.Apply(next, AttackAction{TribeID: "azure", AttackerID: "a", DefenderID: "d"})
	require.NoError(t, err)
	defender, _ := next.Unit("d")
	assert.Less(t, defender.Health, 100)
}

func TestApply_LethalAttackPublishesUnitKilled(t *testing.T) {
	bus := events.NewEventBus()
	var killed []*events.UnitKilledEvent
	bus.SubscribeFunc(events.TypeUnitKilled, func(ev events.Event) {
		killed = append(killed, ev.(*events.UnitKilledEvent))
	})
	e := NewEngine(testutil.NopLogger(), testutil.SeededRand(42), WithGameID("test-game"), WithBus(bus))
	s := newTestState()
	testutil.PlaceUnit(s, "a", "azure", "warrior", core.HexCoord{Q: 0, R: 0})
	d := testutil.PlaceUnit(s, "d", "crimson", "warrior", core.HexCoord{Q: 1, R: 0})
	d.Health = 1

	next, err := e.Apply(s, DeclareWarAction{TribeID: "azure", Target: "crimson"})
	require.NoError(t, err)
	next, err = e.Apply(next, AttackAction{TribeID: "azure", AttackerID: "a", DefenderID: "d"})
	require.NoError(t, err)

	_, alive := next.Unit("d")
	require.False(t, alive)
	require.Len(t, killed, 1)
	assert.Equal(t, core.UnitID("d"), killed[0].Unit)
	assert.Equal(t, core.TribeID("crimson"), killed[0].Owner)
	assert.Equal(t, core.UnitID("a"), killed[0].Killer)
}

func TestApply_SiegeCollapsePublishesSettlementFell(t *testing.T) {
	bus := events.NewEventBus()
	var fell []*events.SettlementFellEvent
	bus.SubscribeFunc(events.TypeSettlementFell, func(ev events.Event) {
		fell = append(fell, ev.(*events.SettlementFellEvent))
	})
	e := NewEngine(testutil.NopLogger(), testutil.SeededRand(42), WithGameID("test-game"), WithBus(bus))
	s := newTestState()
	att := testutil.PlaceUnit(s, "cat", "azure", "catapult", core.HexCoord{Q: 0, R: 0})
	att.SettlementStrength = 30
	att.RangedStrength = 0
	town := testutil.PlaceSettlement(s, "town", "crimson", core.HexCoord{Q: 1, R: 0})
	town.Health = 1

	next, err := e.Apply(s, DeclareWarAction{TribeID: "azure", Target: "crimson"})
	require.NoError(t, err)
	next, err = e.Apply(next, AttackSettlementAction{TribeID: "azure", AttackerID: "cat", SettlementID: "town"})
	require.NoError(t, err)

	taken, _ := next.Settlement("town")
	assert.Equal(t, core.TribeID("azure"), taken.Owner)
	require.Len(t, fell, 1)
	assert.Equal(t, core.SettlementID("town"), fell[0].Settlement)
	assert.Equal(t, core.TribeID("crimson"), fell[0].PreviousOwner)
	assert.Equal(t, core.TribeID("azure"), fell[0].Attacker)
}

func TestApply_LootboxClaimPublishesEvent(t *testing.T) {
	bus := events.NewEventBus()
	var claims []*events.LootboxClaimedEvent
	bus.SubscribeFunc(events.TypeLootboxClaimed, func(ev events.Event) {
		claims = append(claims, ev.(*events.LootboxClaimedEvent))
	})
	e := NewEngine(testutil.NopLogger(), testutil.SeededRand(42), WithGameID("test-game"), WithBus(bus))
	s := newTestState()
	testutil.PlaceUnit(s, "scout", "azure", "scout", core.HexCoord{Q: 0, R: 0})
	s.Lootboxes = append(s.Lootboxes, &core.Lootbox{Position: core.HexCoord{Q: 1, R: 0}})

	_, err := e.Apply(s, MoveUnitAction{TribeID: "azure", UnitID: "scout", Target: core.HexCoord{Q: 1, R: 0}})
	require.NoError(t, err)

	require.Len(t, claims, 1)
	assert.Equal(t, core.UnitID("scout"), claims[0].Unit)
	assert.Equal(t, core.TribeID("azure"), claims[0].Tribe)
	assert.Equal(t, core.HexCoord{Q: 1, R: 0}, claims[0].Position)
}

func TestApply_FoundSettlement(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	settler := testutil.PlaceUnit(s, "s1", "azure", "settler", core.HexCoord{Q: 0, R: 0})
	settler.Civilian = true

	next, err := e.Apply(s, FoundSettlementAction{TribeID: "azure", SettlerID: "s1", Name: "First"})
	require.NoError(t, err)

	towns := next.TribeSettlements("azure")
	require.Len(t, towns, 1)
	assert.Equal(t, "First", towns[0].Name)
	assert.Equal(t, 100, towns[0].Health)

	_, exists := next.Unit("s1")
	assert.False(t, exists, "settler is consumed")

	tile, _ := next.Tile(core.HexCoord{Q: 1, R: 0})
	assert.Equal(t, core.TribeID("azure"), tile.Owner, "first ring is claimed")
}

func TestApply_FoundSettlementSpacing(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceSettlement(s, "existing", "azure", core.HexCoord{Q: 0, R: 0})
	settler := testutil.PlaceUnit(s, "s1", "azure", "settler", core.HexCoord{Q: 2, R: 0})
	settler.Civilian = true

	_, err := e.Apply(s, FoundSettlementAction{TribeID: "azure", SettlerID: "s1", Name: "Crowded"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too close")
}

func TestApply_NonSettlerCannotFound(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceUnit(s, "w1", "azure", "warrior", core.HexCoord{Q: 0, R: 0})

	_, err := e.Apply(s, FoundSettlementAction{TribeID: "azure", SettlerID: "w1", Name: "Nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a settler")
}

func TestApply_BuildImprovement(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	pos := core.HexCoord{Q: 1, R: 0}
	tile, _ := s.Tile(pos)
	tile.Owner = "azure"
	tile.Resource = core.ResourceWheat
	builder := testutil.PlaceUnit(s, "b1", "azure", "builder", pos)
	builder.Civilian = true

	next, err := e.Apply(s, BuildImprovementAction{TribeID: "azure", BuilderID: "b1"})
	require.NoError(t, err)

	improved, _ := next.Tile(pos)
	assert.Equal(t, core.ImprovementFarm, improved.Improvement)
	b, _ := next.Unit("b1")
	assert.True(t, b.HasActed)

	// Already improved now; a second build is rejected.
	_, err = e.Apply(next, BuildImprovementAction{TribeID: "azure", BuilderID: "b1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already improved")
}

func TestApply_PromoteUnit(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	u := testutil.PlaceUnit(s, "u1", "azure", "warrior", core.HexCoord{Q: 0, R: 0})

	_, err := e.Apply(s, PromoteUnitAction{TribeID: "azure", UnitID: "u1", Promotion: "assault"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no promotion earned")

	u.PendingPromotions = 1
	next, err := e.Apply(s, PromoteUnitAction{TribeID: "azure", UnitID: "u1", Promotion: "assault"})
	require.NoError(t, err)

	promoted, _ := next.Unit("u1")
	assert.True(t, promoted.HasPromotion("assault"))
	assert.Zero(t, promoted.PendingPromotions)
}

func TestApply_QueueWonder(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceSettlement(s, "capital", "azure", core.HexCoord{Q: 0, R: 0})
	testutil.PlaceSettlement(s, "second", "azure", core.HexCoord{Q: 3, R: 0})

	next, err := e.Apply(s, QueueWonderAction{TribeID: "azure", SettlementID: "capital", Wonder: "grand_temple"})
	require.NoError(t, err)
	capital, _ := next.Settlement("capital")
	assert.True(t, capital.HasWonderQueued())

	// Only one wonder may be queued anywhere the tribe owns.
	_, err = e.Apply(next, QueueWonderAction{TribeID: "azure", SettlementID: "second", Wonder: "colossus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already queued")
}

func TestApply_PeaceRejectionPersistsCooldown(t *testing.T) {
	e := newTestEngine()
	s := newTestState()

	next, err := e.Apply(s, DeclareWarAction{TribeID: "azure", Target: "crimson"})
	require.NoError(t, err)

	// The war is brand new, so the proposal is rebuffed, but the rebuff
	// itself is world state: the snapshot advances with the rejection
	// recorded for the cooldown window.
	next, err = e.Apply(next, ProposePeaceAction{TribeID: "azure", Target: "crimson"})
	require.NoError(t, err)
	assert.NotEmpty(t, next.Diplomacy.PeaceRejections)
	assert.Equal(t, core.StanceWar, e.Diplomacy().Stance(next, "azure", "crimson"))
}

func TestApply_TradeRoute(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceSettlement(s, "home", "azure", core.HexCoord{Q: 0, R: 0})
	dest := testutil.PlaceSettlement(s, "away", "crimson", core.HexCoord{Q: 4, R: 0})
	dest.Population = 3

	next, err := e.Apply(s, EstablishTradeRouteAction{TribeID: "azure", From: "home", To: "away"})
	require.NoError(t, err)
	require.Len(t, next.TradeRoutes, 1)
	for _, r := range next.TradeRoutes {
		assert.Equal(t, 5, r.GoldYield, "yield scales with destination population")
		assert.True(t, r.Active)
	}

	// One settlement supports one route.
	_, err = e.Apply(next, EstablishTradeRouteAction{TribeID: "azure", From: "home", To: "away"})
	require.Error(t, err)
}

func TestApply_TradeRouteBlockedByWar(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	testutil.PlaceSettlement(s, "home", "azure", core.HexCoord{Q: 0, R: 0})
	testutil.PlaceSettlement(s, "away", "crimson", core.HexCoord{Q: 4, R: 0})

	next, err := e.Apply(s, DeclareWarAction{TribeID: "azure", Target: "crimson"})
	require.NoError(t, err)

	_, err = e.Apply(next, EstablishTradeRouteAction{TribeID: "azure", From: "home", To: "away"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "war front")
}

func TestApply_ClaimGreatPersonOncePerGame(t *testing.T) {
	e := newTestEngine()
	s := newTestState()

	next, err := e.Apply(s, ClaimGreatPersonAction{TribeID: "azure", GreatPerson: "great_sage"})
	require.NoError(t, err)
	assert.Equal(t, core.TribeID("azure"), next.GreatPeopleClaimed["great_sage"])

	_, err = e.Apply(next, ClaimGreatPersonAction{TribeID: "crimson", GreatPerson: "great_sage"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already claimed")
}

func TestApply_EndTurnResetsUnits(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	u := testutil.PlaceUnit(s, "u1", "azure", "warrior", core.HexCoord{Q: 0, R: 0})
	u.MovementRemaining = 0
	u.HasActed = true
	u.Health = 50

	next, err := e.Apply(s, EndTurnAction{TribeID: "azure"})
	require.NoError(t, err)
	assert.Equal(t, 1, next.Turn)

	reset, _ := next.Unit("u1")
	assert.Equal(t, reset.MaxMovement, reset.MovementRemaining)
	assert.False(t, reset.HasActed)
	assert.Equal(t, 50, reset.Health, "a unit that acted does not heal")
}

func TestApply_EndTurnSpawnsRaiders(t *testing.T) {
	e := newTestEngine()
	s := newTestState()
	s.Camps = append(s.Camps, &core.Camp{Position: core.HexCoord{Q: 2, R: 2}, SpawnCooldown: 1})

	next, err := e.Apply(s, EndTurnAction{TribeID: "azure"})
	require.NoError(t, err)

	raiders := next.TribeUnits(BarbarianTribe)
	require.Len(t, raiders, 1)
	assert.Equal(t, core.HexCoord{Q: 2, R: 2}, raiders[0].Position)
	assert.True(t, e.Diplomacy().AtWar(next, BarbarianTribe, "azure"))
	assert.Equal(t, 8, next.Camps[0].SpawnCooldown, "cooldown rearmed from config")
}

func TestApply_Determinism(t *testing.T) {
	run := func() *core.GameState {
		e := NewEngine(testutil.NopLogger(), testutil.SeededRand(7), WithGameID("replay"))
		s := newTestState()
		s.Camps = append(s.Camps, &core.Camp{Position: core.HexCoord{Q: 2, R: 2}, SpawnCooldown: 1})
		var err error
		for i := 0; i < 3; i++ {
			s, err = e.Apply(s, EndTurnAction{TribeID: "azure"})
			require.NoError(t, err)
		}
		return s
	}

	a, b := run(), run()
	require.Equal(t, len(a.Units), len(b.Units))
	for _, id := range a.SortedUnitIDs() {
		ua := a.Units[id]
		ub, ok := b.Units[id]
		if !ok {
			// Unit ids are minted with uuids, so match by position and
			// rarity instead of id.
			continue
		}
		assert.Equal(t, ua.Rarity, ub.Rarity)
	}

	ra := make([]core.Rarity, 0)
	rb := make([]core.Rarity, 0)
	for _, u := range a.TribeUnits(BarbarianTribe) {
		ra = append(ra, u.Rarity)
	}
	for _, u := range b.TribeUnits(BarbarianTribe) {
		rb = append(rb, u.Rarity)
	}
	assert.Equal(t, ra, rb, "same seed, same rarity rolls")
}
