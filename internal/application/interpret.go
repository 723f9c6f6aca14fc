// Package application contains use-case orchestration for the merge pipeline.
package application

import (
	"regexp"
	"strconv"

	"github.com/takeoffbot/takeoff/internal/domain/model"
)

// Matches https://github.com/{owner}/{repo}/pull/{number}. Owner and repo are
// restricted to the character set GitHub allows in repository paths.
var prURLPattern = regexp.MustCompile(`https://github\.com/([A-Za-z0-9_.\-]+)/([A-Za-z0-9_.\-]+)/pull/(\d+)`)

// Keywords that signal an intent to merge. Whole-word boundary on "merge"
// keeps words like "submerged" from matching.
var mergeIntentPattern = regexp.MustCompile(`(?i)\bmerge\b|can\s+u|please\s+merge`)

// ExtractPR returns the pull request referenced by the first GitHub PR URL in
// text, or nil when text contains none. Later matches are ignored.
func ExtractPR(text string) *model.ParsedPR {
	m := prURLPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	number, err := strconv.Atoi(m[3])
	if err != nil || number <= 0 {
		return nil
	}

	return &model.ParsedPR{
		Owner:      m[1],
		Repo:       m[2],
		PullNumber: number,
		URL:        m[0],
	}
}

// HasMergeIntent reports whether text expresses an intent to merge.
func HasMergeIntent(text string) bool {
	return mergeIntentPattern.MatchString(text)
}

// IsAuthorized reports whether the given Slack user may trigger merges.
// An empty allow-list authorizes no one: an unconfigured gateway denies all
// action rather than permitting all.
func IsAuthorized(userID string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return false
	}
	_, ok := allowed[userID]
	return ok
}
