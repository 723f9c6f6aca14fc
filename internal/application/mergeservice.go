package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/takeoffbot/takeoff/internal/domain/model"
	"github.com/takeoffbot/takeoff/internal/domain/port/driven"
)

const deniedMessage = "Sorry, you're not authorized to trigger merges."

// eventQueueSize bounds the number of webhook events awaiting processing.
const eventQueueSize = 64

// MergeService runs the merge pipeline: interpret a Slack message, authorize
// the sender, drive the merge attempt, and post the outcome back into the
// thread. Events are queued by the webhook adapter and processed by a worker
// goroutine so the webhook can acknowledge within Slack's delivery deadline.
type MergeService struct {
	merger   driven.MergeClient
	notifier driven.Notifier
	attempts driven.AttemptStore
	allowed  map[string]struct{}
	events   chan model.MessageEvent
}

// NewMergeService creates a MergeService with all required dependencies.
// authorizedIDs is the allow-list of Slack user IDs; empty denies everyone.
func NewMergeService(
	merger driven.MergeClient,
	notifier driven.Notifier,
	attempts driven.AttemptStore,
	authorizedIDs []string,
) *MergeService {
	allowed := make(map[string]struct{}, len(authorizedIDs))
	for _, id := range authorizedIDs {
		allowed[id] = struct{}{}
	}

	return &MergeService{
		merger:   merger,
		notifier: notifier,
		attempts: attempts,
		allowed:  allowed,
		events:   make(chan model.MessageEvent, eventQueueSize),
	}
}

// Enqueue hands a message event to the worker without blocking. It returns
// false when the queue is full and the event was dropped.
func (s *MergeService) Enqueue(ev model.MessageEvent) bool {
	select {
	case s.events <- ev:
		return true
	default:
		return false
	}
}

// Start runs the worker loop, draining the event queue until the context is
// canceled. Start blocks; run it in its own goroutine.
func (s *MergeService) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("merge service stopped")
			return
		case ev := <-s.events:
			s.Handle(ctx, ev)
		}
	}
}

// Handle processes one message event end to end. Messages without a PR URL or
// without merge intent are dropped silently; everything past that point yields
// exactly one notification in the originating thread.
func (s *MergeService) Handle(ctx context.Context, ev model.MessageEvent) {
	pr := ExtractPR(ev.Text)
	if pr == nil {
		return
	}

	if !HasMergeIntent(ev.Text) {
		return
	}

	if !IsAuthorized(ev.UserID, s.allowed) {
		slog.Info("merge trigger denied",
			"user", ev.UserID,
			"channel", ev.Channel,
			"pr", pr,
		)
		s.notify(ctx, ev, deniedMessage)
		s.record(ctx, ev, *pr, model.AuditStatusUnauthorized, deniedMessage)
		return
	}

	slog.Info("merging pull request",
		"pr", pr,
		"user", ev.UserID,
		"channel", ev.Channel,
	)

	outcome := s.merger.AttemptMerge(ctx, *pr)

	icon := "✗"
	if outcome.Succeeded() {
		icon = "✓"
	}
	s.notify(ctx, ev, icon+" "+outcome.Message)
	s.record(ctx, ev, *pr, string(outcome.Status), outcome.Message)
}

// notify posts text into the event's thread. Delivery failures are logged and
// swallowed; there is nothing further to do with them.
func (s *MergeService) notify(ctx context.Context, ev model.MessageEvent, text string) {
	if err := s.notifier.PostMessage(ctx, ev.Channel, ev.ReplyThreadTS(), text); err != nil {
		slog.Error("failed to post outcome message",
			"channel", ev.Channel,
			"error", err,
		)
	}
}

// record appends an audit row. A write failure never alters the user-visible
// outcome; it is logged and dropped.
func (s *MergeService) record(ctx context.Context, ev model.MessageEvent, pr model.ParsedPR, status, message string) {
	attempt := model.MergeAttempt{
		Channel:    ev.Channel,
		UserID:     ev.UserID,
		Owner:      pr.Owner,
		Repo:       pr.Repo,
		PullNumber: pr.PullNumber,
		Status:     status,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.attempts.Record(ctx, attempt); err != nil {
		slog.Error("failed to record merge attempt",
			"pr", pr,
			"error", err,
		)
	}
}
