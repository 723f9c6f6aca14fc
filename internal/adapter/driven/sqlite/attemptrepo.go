package sqlite

import (
	"context"
	"fmt"

	"github.com/takeoffbot/takeoff/internal/domain/model"
	"github.com/takeoffbot/takeoff/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AttemptStore = (*AttemptRepo)(nil)

// AttemptRepo is the SQLite implementation of the AttemptStore port.
type AttemptRepo struct {
	db *DB
}

// NewAttemptRepo creates a new AttemptRepo backed by the given DB.
func NewAttemptRepo(db *DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Record appends one merge-attempt audit row.
func (r *AttemptRepo) Record(ctx context.Context, attempt model.MergeAttempt) error {
	const query = `
		INSERT INTO merge_attempts (channel, user_id, owner, repo, pull_number, status, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		attempt.Channel,
		attempt.UserID,
		attempt.Owner,
		attempt.Repo,
		attempt.PullNumber,
		attempt.Status,
		attempt.Message,
		attempt.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert merge attempt for %s/%s#%d: %w",
			attempt.Owner, attempt.Repo, attempt.PullNumber, err)
	}

	return nil
}

// ListRecent returns up to limit attempts, newest first.
func (r *AttemptRepo) ListRecent(ctx context.Context, limit int) ([]model.MergeAttempt, error) {
	const query = `
		SELECT id, channel, user_id, owner, repo, pull_number, status, message, created_at
		FROM merge_attempts
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list merge attempts: %w", err)
	}
	defer rows.Close()

	var attempts []model.MergeAttempt
	for rows.Next() {
		var a model.MergeAttempt
		if err := rows.Scan(
			&a.ID,
			&a.Channel,
			&a.UserID,
			&a.Owner,
			&a.Repo,
			&a.PullNumber,
			&a.Status,
			&a.Message,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan merge attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merge attempts: %w", err)
	}

	return attempts, nil
}
