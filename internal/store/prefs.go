package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Preference keys.
const (
	PrefSound = "sound"
)

// PrefRepo stores small key/value preferences.
type PrefRepo struct {
	db *sql.DB
}

// Get returns the stored value for key, or fallback when unset.
func (r *PrefRepo) Get(ctx context.Context, key, fallback string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM prefs WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("get pref %q: %w", key, err)
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (r *PrefRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set pref %q: %w", key, err)
	}
	return nil
}

// GetBool reads a boolean preference stored as "1"/"0".
func (r *PrefRepo) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	def := "0"
	if fallback {
		def = "1"
	}
	v, err := r.Get(ctx, key, def)
	if err != nil {
		return fallback, err
	}
	return v == "1", nil
}

// SetBool stores a boolean preference as "1"/"0".
func (r *PrefRepo) SetBool(ctx context.Context, key string, value bool) error {
	v := "0"
	if value {
		v = "1"
	}
	return r.Set(ctx, key, v)
}
