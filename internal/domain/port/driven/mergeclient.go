// Package driven defines the driven ports implemented by outbound adapters.
package driven

import (
	"context"

	"github.com/takeoffbot/takeoff/internal/domain/model"
)

// MergeClient defines the driven port for attempting pull request merges
// against the code-hosting platform.
type MergeClient interface {
	// AttemptMerge fetches the PR's current state and, if it looks mergeable,
	// attempts a squash merge. It never returns an error: every API response,
	// timeout, or transport failure is classified into a MergeOutcome.
	AttemptMerge(ctx context.Context, pr model.ParsedPR) model.MergeOutcome
}
