// Package save is the CLI's local save-slot store: one sqlite database
// under the user's home directory, one row per named franchise.
package save

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"pennant/internal/game"
)

const DefaultSlot = "default"

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

type SlotInfo struct {
	Slot      string
	TeamID    string
	Year      int
	Week      int
	Status    game.SeasonStatus
	UpdatedAt time.Time
}

// DefaultPath is ~/.pnt/pennant.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pnt", "pennant.db"), nil
}

// Open creates the database file and schema as needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create save dir: %w", err)
		}
	}

	connStr := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping save db: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS slots (
			slot       TEXT PRIMARY KEY,
			state      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create save schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (st *Store) Close() error {
	return st.db.Close()
}

// Load reads one slot. A corrupt blob is dropped and reported as missing so
// the caller can start fresh.
func (st *Store) Load(ctx context.Context, slot string) (*game.State, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	var raw string
	err := st.db.QueryRowContext(ctx, `SELECT state FROM slots WHERE slot = ?`, slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrSaveNotFound
	}
	if err != nil {
		return nil, err
	}

	state := &game.State{}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		_, _ = st.db.ExecContext(ctx, `DELETE FROM slots WHERE slot = ?`, slot)
		return nil, fmt.Errorf("%w: discarded corrupt slot %q", game.ErrSaveNotFound, slot)
	}
	return state, nil
}

func (st *Store) Save(ctx context.Context, slot string, state *game.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	_, err = st.db.ExecContext(ctx, `
		INSERT INTO slots (slot, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET state = excluded.state, updated_at = CURRENT_TIMESTAMP
	`, slot, string(raw))
	return err
}

func (st *Store) Delete(ctx context.Context, slot string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	res, err := st.db.ExecContext(ctx, `DELETE FROM slots WHERE slot = ?`, slot)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return game.ErrSaveNotFound
	}
	return nil
}

// List summarizes every slot; corrupt blobs are skipped.
func (st *Store) List(ctx context.Context) ([]SlotInfo, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	rows, err := st.db.QueryContext(ctx, `SELECT slot, state, updated_at FROM slots ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SlotInfo
	for rows.Next() {
		var (
			info SlotInfo
			raw  string
		)
		if err := rows.Scan(&info.Slot, &raw, &info.UpdatedAt); err != nil {
			return nil, err
		}
		var state game.State
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			continue
		}
		info.TeamID = state.UserTeamID
		info.Year = state.SeasonYear
		info.Week = state.Week
		info.Status = state.Status
		out = append(out, info)
	}
	return out, rows.Err()
}
