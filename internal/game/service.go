package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTxConflict is returned when a serializable transaction keeps losing
// after retries.
var ErrTxConflict = errors.New("transaction conflict, retry")

// Service owns the hosted saves: each save is one franchise state blob in
// Postgres, mutated only through Apply under a row lock.
type Service struct {
	db   *pgxpool.Pool
	log  *slog.Logger
	rand Rand
}

func NewService(db *pgxpool.Pool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:   db,
		log:  logger,
		rand: NewRand(time.Now().UnixNano()),
	}
}

// Save is a hosted franchise.
type Save struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     *State    `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateSaveInput struct {
	Name           string
	TeamID         string
	IdempotencyKey string
}

type ApplyActionInput struct {
	SaveID         string
	Action         Action
	IdempotencyKey string
}

// Migrate bootstraps the schema. Idempotent.
func (s *Service) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			state      JSONB NOT NULL,
			delegated  BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS season_history (
			id      BIGSERIAL PRIMARY KEY,
			save_id UUID NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
			season  INT NOT NULL,
			year    INT NOT NULL,
			team_id TEXT NOT NULL,
			rank    INT NOT NULL,
			wins    INT NOT NULL,
			losses  INT NOT NULL,
			draws   INT NOT NULL,
			UNIQUE (save_id, season)
		)`,
		`CREATE TABLE IF NOT EXISTS idempotency_keys (
			save_id    UUID NOT NULL,
			key        TEXT NOT NULL,
			action     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (save_id, key)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Service) CreateSave(ctx context.Context, in CreateSaveInput) (*Save, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("save name is required")
	}
	state, err := NewState(s.rand, in.TeamID)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	save := &Save{ID: uuid.NewString(), Name: name, State: state}
	err = s.db.QueryRow(ctx, `
		INSERT INTO saves (id, name, state, delegated)
		VALUES ($1, $2, $3::jsonb, $4)
		RETURNING updated_at
	`, save.ID, name, raw, state.Delegated).Scan(&save.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.log.Info("save created", "save_id", save.ID, "team_id", in.TeamID)
	return save, nil
}

func (s *Service) GetSave(ctx context.Context, id string) (*Save, error) {
	var (
		save Save
		raw  []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, name, state, updated_at
		FROM saves
		WHERE id = $1
	`, id).Scan(&save.ID, &save.Name, &raw, &save.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSaveNotFound
		}
		return nil, err
	}
	save.State = &State{}
	if err := json.Unmarshal(raw, save.State); err != nil {
		return nil, fmt.Errorf("decode save %s: %w", id, err)
	}
	return &save, nil
}

func (s *Service) DeleteSave(ctx context.Context, id string) error {
	cmd, err := s.db.Exec(ctx, `DELETE FROM saves WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSaveNotFound
	}
	return nil
}

// ListDelegated returns the ids of saves on autopilot, for the worker.
func (s *Service) ListDelegated(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM saves WHERE delegated ORDER BY updated_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ApplyAction runs one engine action against a save under a row lock,
// claiming the idempotency key first. Serialization losers retry with
// backoff.
func (s *Service) ApplyAction(ctx context.Context, in ApplyActionInput) (*Save, error) {
	const maxAttempts = 8
	retryDelay := 75 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		save, err := s.applyActionOnce(ctx, in)
		if err == nil {
			return save, nil
		}
		if !isSerializationError(err) {
			return nil, err
		}
		if attempt == maxAttempts-1 {
			return nil, ErrTxConflict
		}
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return nil, err
		}
		if retryDelay < 1200*time.Millisecond {
			retryDelay *= 2
		}
	}
	return nil, ErrTxConflict
}

func (s *Service) applyActionOnce(ctx context.Context, in ApplyActionInput) (*Save, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := claimIdempotency(ctx, tx, in.SaveID, in.IdempotencyKey, in.Action.Kind); err != nil {
		return nil, err
	}

	var (
		save Save
		raw  []byte
	)
	err = tx.QueryRow(ctx, `
		SELECT id, name, state, updated_at
		FROM saves
		WHERE id = $1
		FOR UPDATE
	`, in.SaveID).Scan(&save.ID, &save.Name, &raw, &save.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSaveNotFound
		}
		return nil, err
	}

	prev := &State{}
	if err := json.Unmarshal(raw, prev); err != nil {
		return nil, fmt.Errorf("decode save %s: %w", in.SaveID, err)
	}

	next, err := Apply(s.rand, prev, in.Action)
	if err != nil {
		return nil, err
	}

	nextRaw, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	err = tx.QueryRow(ctx, `
		UPDATE saves
		SET state = $1::jsonb, delegated = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, nextRaw, next.Delegated, in.SaveID).Scan(&save.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// Season closing appends one history row per finished season.
	if next.Status == SeasonEnded && prev.Status != SeasonEnded && len(next.History) > 0 {
		rec := next.History[len(next.History)-1]
		_, err = tx.Exec(ctx, `
			INSERT INTO season_history (save_id, season, year, team_id, rank, wins, losses, draws)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (save_id, season) DO NOTHING
		`, in.SaveID, rec.Season, rec.Year, rec.TeamID, rec.Rank, rec.Wins, rec.Losses, rec.Draws)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	save.State = next
	s.log.Info("action applied", "save_id", in.SaveID, "action", in.Action.Kind, "week", next.Week, "status", next.Status)
	return &save, nil
}

// SeasonHistory lists the finished seasons recorded for a save.
func (s *Service) SeasonHistory(ctx context.Context, saveID string) ([]SeasonRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT season, year, team_id, rank, wins, losses, draws
		FROM season_history
		WHERE save_id = $1
		ORDER BY season
	`, saveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SeasonRecord
	for rows.Next() {
		var rec SeasonRecord
		if err := rows.Scan(&rec.Season, &rec.Year, &rec.TeamID, &rec.Rank, &rec.Wins, &rec.Losses, &rec.Draws); err != nil {
			return nil, err
		}
		rec.TeamID = strings.TrimSpace(rec.TeamID)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func claimIdempotency(ctx context.Context, tx pgx.Tx, saveID, key, action string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("idempotency key is required")
	}
	cmd, err := tx.Exec(ctx, `
		INSERT INTO idempotency_keys (save_id, key, action, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (save_id, key) DO NOTHING
	`, saveID, key, action)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDuplicateIdempotency
	}
	return nil
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
