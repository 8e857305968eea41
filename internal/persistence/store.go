// Package persistence stores game snapshots in SQLite. The engine never
// touches storage; the driver saves whole snapshots as JSON rows keyed by
// game id and turn, which is enough to resume or inspect any run.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/hexfall/tribesim/internal/game/core"
)

// ErrNotFound is returned when no snapshot matches the query.
var ErrNotFound = errors.New("snapshot not found")

// Store wraps a SQLite connection for snapshot persistence.
type Store struct {
	conn   *sqlx.DB
	logger zerolog.Logger
}

// Open opens or creates a SQLite database at the given path.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn, logger: logger.With().Str("component", "persistence").Logger()}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		game_id    TEXT NOT NULL,
		turn       INTEGER NOT NULL,
		saved_at   TIMESTAMP NOT NULL,
		state_json TEXT NOT NULL,
		PRIMARY KEY (game_id, turn)
	);

	CREATE TABLE IF NOT EXISTS game_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id    TEXT NOT NULL,
		turn       INTEGER NOT NULL,
		event_type TEXT NOT NULL,
		payload    TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_game_turn ON game_events(game_id, turn);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// SaveSnapshot writes the snapshot for its turn, replacing any earlier save
// of the same turn.
func (st *Store) SaveSnapshot(gameID string, s *core.GameState) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = st.conn.Exec(
		"INSERT OR REPLACE INTO snapshots (game_id, turn, saved_at, state_json) VALUES (?, ?, ?, ?)",
		gameID, s.Turn, time.Now().UTC(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	st.logger.Debug().Str("game_id", gameID).Int("turn", s.Turn).Msg("snapshot saved")
	return nil
}

// LoadSnapshot returns the snapshot saved for a specific turn.
func (st *Store) LoadSnapshot(gameID string, turn int) (*core.GameState, error) {
	var payload string
	err := st.conn.Get(&payload,
		"SELECT state_json FROM snapshots WHERE game_id = ? AND turn = ?", gameID, turn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return unmarshalSnapshot(payload)
}

// LoadLatest returns the most recently saved turn for a game.
func (st *Store) LoadLatest(gameID string) (*core.GameState, error) {
	var payload string
	err := st.conn.Get(&payload,
		"SELECT state_json FROM snapshots WHERE game_id = ? ORDER BY turn DESC LIMIT 1", gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return unmarshalSnapshot(payload)
}

// Turns lists the saved turns for a game in ascending order.
func (st *Store) Turns(gameID string) ([]int, error) {
	var turns []int
	err := st.conn.Select(&turns,
		"SELECT turn FROM snapshots WHERE game_id = ? ORDER BY turn ASC", gameID)
	if err != nil {
		return nil, fmt.Errorf("select turns: %w", err)
	}
	return turns, nil
}

// RecordEvent appends one event row for later inspection. Payload is any
// JSON-marshalable value.
func (st *Store) RecordEvent(gameID string, turn int, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = st.conn.Exec(
		"INSERT INTO game_events (game_id, turn, event_type, payload) VALUES (?, ?, ?, ?)",
		gameID, turn, eventType, string(body),
	)
	return err
}

// EventRow is one stored event.
type EventRow struct {
	Turn      int    `db:"turn"`
	EventType string `db:"event_type"`
	Payload   string `db:"payload"`
}

// RecentEvents returns the most recent N events for a game, newest first.
func (st *Store) RecentEvents(gameID string, limit int) ([]EventRow, error) {
	var rows []EventRow
	err := st.conn.Select(&rows,
		"SELECT turn, event_type, payload FROM game_events WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		gameID, limit)
	return rows, err
}

func unmarshalSnapshot(payload string) (*core.GameState, error) {
	s := core.NewGameState()
	if err := json.Unmarshal([]byte(payload), s); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return s, nil
}
