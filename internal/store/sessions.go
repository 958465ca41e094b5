package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/golftaweerak/sciquiz/internal/session"
)

// SessionRepo persists session snapshots keyed by session key. It
// implements session.SnapshotStore.
type SessionRepo struct {
	db  *sql.DB
	log zerolog.Logger
}

var _ session.SnapshotStore = (*SessionRepo)(nil)

// Save serializes the snapshot under key, stamping the last-activity
// timestamp. The error return exists for the interface; the engine
// swallows it, so failures are also logged here.
func (r *SessionRepo) Save(ctx context.Context, key string, snap *session.Snapshot) error {
	snap.LastAttemptTimestamp = time.Now().UnixMilli()

	data, err := json.Marshal(snap)
	if err != nil {
		r.log.Error().Err(err).Str("key", key).Msg("marshal snapshot")
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, string(data), snap.LastAttemptTimestamp)
	if err != nil {
		r.log.Error().Err(err).Str("key", key).Msg("save snapshot")
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under key, or nil if none exists. A
// record that fails to deserialize or validate is deleted and reported
// as absent: corruption degrades to "no saved state", never an error.
func (r *SessionRepo) Load(ctx context.Context, key string) (*session.Snapshot, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM sessions WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("discarding undecodable snapshot")
		_ = r.Clear(ctx, key)
		return nil, nil
	}
	if err := snap.Validate(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("discarding corrupt snapshot")
		_ = r.Clear(ctx, key)
		return nil, nil
	}
	return &snap, nil
}

// Clear deletes the snapshot under key. Idempotent.
func (r *SessionRepo) Clear(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, key)
	if err != nil {
		r.log.Error().Err(err).Str("key", key).Msg("clear snapshot")
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
