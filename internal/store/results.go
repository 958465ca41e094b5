package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Result is one finished quiz recorded in history.
type Result struct {
	ID           string
	Title        string
	Score        int
	Total        int
	Percentage   float64
	DurationSecs int
	FinishedAt   time.Time
}

// ResultRepo records finished quizzes.
type ResultRepo struct {
	db *sql.DB
}

// Append records a finished quiz. The ID is assigned here.
func (r *ResultRepo) Append(ctx context.Context, res Result) error {
	res.ID = uuid.NewString()
	if res.FinishedAt.IsZero() {
		res.FinishedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO results (id, title, score, total, percentage, duration_secs, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.Title, res.Score, res.Total, res.Percentage, res.DurationSecs, res.FinishedAt.Unix())
	if err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

// List returns recorded results, most recent first, at most limit rows.
// limit <= 0 means no limit.
func (r *ResultRepo) List(ctx context.Context, limit int) ([]Result, error) {
	q := `SELECT id, title, score, total, percentage, duration_secs, finished_at
		FROM results ORDER BY finished_at DESC, id`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var res Result
		var finished int64
		if err := rows.Scan(&res.ID, &res.Title, &res.Score, &res.Total,
			&res.Percentage, &res.DurationSecs, &finished); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.FinishedAt = time.Unix(finished, 0)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return out, nil
}

// Clear deletes all recorded results.
func (r *ResultRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	return nil
}
