package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexfall/tribesim/internal/game/core"
	"github.com/hexfall/tribesim/internal/game/events"
	"github.com/hexfall/tribesim/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"), testutil.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleState(turn int) *core.GameState {
	s := testutil.CreateTestMap(3)
	testutil.CreateTestTribes(s, "azure", "crimson")
	testutil.PlaceUnit(s, "u1", "azure", "warrior", core.HexCoord{Q: 1, R: -1})
	testutil.PlaceSettlement(s, "cap", "crimson", core.HexCoord{Q: -2, R: 1})
	s.Turn = turn
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	st := openTestStore(t)
	saved := sampleState(3)
	tile, _ := saved.Tile(core.HexCoord{Q: 1, R: -1})
	tile.Resource = core.ResourceIron
	tile.HasRiver = true

	require.NoError(t, st.SaveSnapshot("game-1", saved))

	loaded, err := st.LoadSnapshot("game-1", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, loaded.Turn)
	assert.Len(t, loaded.Tiles, len(saved.Tiles))

	gotTile, ok := loaded.Tile(core.HexCoord{Q: 1, R: -1})
	require.True(t, ok, "hex-keyed tile maps survive the round trip")
	assert.Equal(t, core.ResourceIron, gotTile.Resource)
	assert.True(t, gotTile.HasRiver)

	u, ok := loaded.Unit("u1")
	require.True(t, ok)
	assert.Equal(t, core.TribeID("azure"), u.Owner)
	assert.Equal(t, core.HexCoord{Q: 1, R: -1}, u.Position)

	stl, ok := loaded.Settlement("cap")
	require.True(t, ok)
	assert.Equal(t, core.TribeID("crimson"), stl.Owner)
}

func TestSaveSnapshot_ReplacesSameTurn(t *testing.T) {
	st := openTestStore(t)
	s := sampleState(1)
	require.NoError(t, st.SaveSnapshot("game-1", s))

	s.Tribes["azure"].Kills = 7
	require.NoError(t, st.SaveSnapshot("game-1", s))

	loaded, err := st.LoadSnapshot("game-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Tribes["azure"].Kills)

	turns, err := st.Turns("game-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, turns)
}

func TestLoadLatestAndTurns(t *testing.T) {
	st := openTestStore(t)
	for _, turn := range []int{2, 5, 3} {
		require.NoError(t, st.SaveSnapshot("game-1", sampleState(turn)))
	}
	require.NoError(t, st.SaveSnapshot("game-2", sampleState(9)))

	latest, err := st.LoadLatest("game-1")
	require.NoError(t, err)
	assert.Equal(t, 5, latest.Turn)

	turns, err := st.Turns("game-1")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 5}, turns)
}

func TestLoadSnapshot_NotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.LoadSnapshot("missing", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.LoadLatest("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventSink_RecordsWithTurn(t *testing.T) {
	st := openTestStore(t)
	sink := NewEventSink(st, testutil.NopLogger())

	bus := events.NewEventBus()
	bus.Subscribe(sink)

	bus.Publish(events.NewTurnStartedEvent("game-1", 4))
	bus.Publish(events.NewWarDeclaredEvent("game-1", "azure", "crimson"))

	rows, err := st.RecentEvents("game-1", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest first.
	assert.Equal(t, "diplomacy.war_declared", rows[0].EventType)
	assert.Equal(t, 4, rows[0].Turn)
	assert.Contains(t, rows[0].Payload, "azure")
}
