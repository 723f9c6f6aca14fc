// Package model contains the domain types shared across Takeoff components.
package model

// MergeStatus is the closed set of classifications a merge attempt can end in.
// Every GitHub API response, timeout, or transport failure maps to exactly one
// of these values.
type MergeStatus string

const (
	MergeSuccess       MergeStatus = "success"
	MergeAlreadyMerged MergeStatus = "already_merged"
	MergeConflict      MergeStatus = "conflict"
	MergeChecksPending MergeStatus = "checks_pending"
	MergeNotFound      MergeStatus = "not_found"
	MergeError         MergeStatus = "error"
)

// MergeOutcome is the terminal result of one merge attempt. Message is always
// non-empty and suitable for posting back into the triggering chat thread.
type MergeOutcome struct {
	Status  MergeStatus
	Message string
}

// Succeeded reports whether the attempt ended with the pull request merged by
// this invocation. An already-merged PR is not a success of this attempt.
func (o MergeOutcome) Succeeded() bool {
	return o.Status == MergeSuccess
}
