package driven

import (
	"context"

	"github.com/takeoffbot/takeoff/internal/domain/model"
)

// AttemptStore defines the driven port for the merge-attempt audit log.
type AttemptStore interface {
	Record(ctx context.Context, attempt model.MergeAttempt) error
	// ListRecent returns up to limit attempts, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.MergeAttempt, error)
}
