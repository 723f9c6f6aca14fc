// Package github implements the MergeClient port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/takeoffbot/takeoff/internal/domain/model"
	"github.com/takeoffbot/takeoff/internal/domain/port/driven"
)

// requestTimeout bounds each GitHub API call. A timeout is classified as an
// error outcome, never retried.
const requestTimeout = 15 * time.Second

// Compile-time interface satisfaction check.
var _ driven.MergeClient = (*Client)(nil)

// Client implements the driven.MergeClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	rateLimitClient.Timeout = requestTimeout

	return &Client{
		gh: gh.NewClient(rateLimitClient).WithAuthToken(token),
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// AttemptMerge fetches the PR's state and, unless the fetch already settles
// the outcome, attempts a squash merge. Every response is classified; no
// error escapes to the caller.
func (c *Client) AttemptMerge(ctx context.Context, pr model.ParsedPR) model.MergeOutcome {
	if outcome := c.fetchState(ctx, pr); outcome != nil {
		return *outcome
	}
	return c.merge(ctx, pr)
}

// fetchState returns a terminal outcome when the PR's current state rules out
// a merge attempt, or nil when the merge call should proceed.
func (c *Client) fetchState(ctx context.Context, pr model.ParsedPR) *model.MergeOutcome {
	detail, resp, err := c.gh.PullRequests.Get(ctx, pr.Owner, pr.Repo, pr.PullNumber)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return &model.MergeOutcome{
				Status:  model.MergeNotFound,
				Message: fmt.Sprintf("PR #%d not found in %s.", pr.PullNumber, pr.RepoFullName()),
			}
		}
		if resp != nil {
			return &model.MergeOutcome{
				Status:  model.MergeError,
				Message: fmt.Sprintf("Failed to fetch PR #%d: HTTP %d.", pr.PullNumber, resp.StatusCode),
			}
		}
		// Transport failure or timeout; no HTTP status to report.
		return &model.MergeOutcome{
			Status:  model.MergeError,
			Message: fmt.Sprintf("Failed to fetch PR #%d: %v", pr.PullNumber, err),
		}
	}

	logRateLimit(resp, pr.RepoFullName()+"/pull")

	if detail.GetMerged() {
		return &model.MergeOutcome{
			Status:  model.MergeAlreadyMerged,
			Message: fmt.Sprintf("PR #%d is already merged.", pr.PullNumber),
		}
	}

	if detail.GetState() == "closed" {
		return &model.MergeOutcome{
			Status:  model.MergeError,
			Message: fmt.Sprintf("PR #%d is closed without being merged.", pr.PullNumber),
		}
	}

	// Mergeable is nil while GitHub computes mergeability; only an explicit
	// false blocks the attempt here.
	if detail.Mergeable != nil && !detail.GetMergeable() {
		out := conflictOutcome(pr.PullNumber)
		return &out
	}

	return nil
}

// merge issues the squash merge call and classifies the response.
func (c *Client) merge(ctx context.Context, pr model.ParsedPR) model.MergeOutcome {
	opts := &gh.PullRequestOptions{MergeMethod: "squash"}
	_, resp, err := c.gh.PullRequests.Merge(ctx, pr.Owner, pr.Repo, pr.PullNumber, "", opts)
	if err == nil {
		logRateLimit(resp, pr.RepoFullName()+"/merge")
		return model.MergeOutcome{
			Status:  model.MergeSuccess,
			Message: fmt.Sprintf("PR #%d merged successfully.", pr.PullNumber),
		}
	}

	var apiMessage string
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		apiMessage = ghErr.Message
	}

	var status int
	if resp != nil {
		status = resp.StatusCode
	}

	switch status {
	case http.StatusMethodNotAllowed:
		// GitHub reuses 405 for both conflicting branches and unmet branch
		// protection; the message text is the only discriminator.
		lower := strings.ToLower(apiMessage)
		if strings.Contains(lower, "not mergeable") || strings.Contains(lower, "conflict") {
			return conflictOutcome(pr.PullNumber)
		}
		return model.MergeOutcome{
			Status:  model.MergeChecksPending,
			Message: fmt.Sprintf("Cannot merge PR #%d — status checks have not passed.", pr.PullNumber),
		}
	case http.StatusConflict:
		return conflictOutcome(pr.PullNumber)
	case http.StatusNotFound:
		return model.MergeOutcome{
			Status:  model.MergeNotFound,
			Message: fmt.Sprintf("PR #%d not found.", pr.PullNumber),
		}
	}

	reason := apiMessage
	if reason == "" {
		if status != 0 {
			reason = fmt.Sprintf("HTTP %d", status)
		} else {
			reason = err.Error()
		}
	}
	return model.MergeOutcome{
		Status:  model.MergeError,
		Message: fmt.Sprintf("Failed to merge PR #%d: %s", pr.PullNumber, reason),
	}
}

func conflictOutcome(pullNumber int) model.MergeOutcome {
	return model.MergeOutcome{
		Status:  model.MergeConflict,
		Message: fmt.Sprintf("Cannot merge PR #%d — there are merge conflicts.", pullNumber),
	}
}

// logRateLimit logs the API call and warns when the rate limit is nearly
// exhausted.
func logRateLimit(resp *gh.Response, endpoint string) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
