package model

import "time"

// AuditStatusUnauthorized marks audit rows for triggers that were blocked by
// the allow-list before any GitHub call was made. All other audit rows carry
// one of the MergeStatus values.
const AuditStatusUnauthorized = "unauthorized"

// MergeAttempt is an append-only audit record of one processed merge trigger.
// The pipeline never reads these rows back; they exist for the ops API only.
type MergeAttempt struct {
	ID         int64
	Channel    string
	UserID     string
	Owner      string
	Repo       string
	PullNumber int
	Status     string
	Message    string
	CreatedAt  time.Time
}
