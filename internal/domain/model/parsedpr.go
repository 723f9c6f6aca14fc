package model

import "fmt"

// ParsedPR holds pull request coordinates extracted from a chat message.
// Immutable once constructed; URL is the exact substring that matched.
type ParsedPR struct {
	Owner      string
	Repo       string
	PullNumber int
	URL        string
}

// RepoFullName returns the "owner/repo" form used in log output and messages.
func (p ParsedPR) RepoFullName() string {
	return p.Owner + "/" + p.Repo
}

// String implements fmt.Stringer for log output.
func (p ParsedPR) String() string {
	return fmt.Sprintf("%s/%s#%d", p.Owner, p.Repo, p.PullNumber)
}
