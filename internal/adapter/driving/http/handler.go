// Package httphandler is the HTTP driving adapter: it receives Slack event
// callbacks and serves the ops API.
package httphandler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/takeoffbot/takeoff/internal/domain/model"
	"github.com/takeoffbot/takeoff/internal/domain/port/driven"
)

// maxEventBody caps the accepted webhook body size. Slack event payloads are
// small; anything larger is hostile or broken.
const maxEventBody = 1 << 20

// MergeQueue is the handoff point into the merge pipeline. Enqueue must not
// block; it returns false when the event was dropped.
type MergeQueue interface {
	Enqueue(ev model.MessageEvent) bool
}

// Handler is the HTTP driving adapter.
type Handler struct {
	queue         MergeQueue
	attempts      driven.AttemptStore
	signingSecret string
	now           func() time.Time
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(queue MergeQueue, attempts driven.AttemptStore, signingSecret string, logger *slog.Logger) *Handler {
	return &Handler{
		queue:         queue,
		attempts:      attempts,
		signingSecret: signingSecret,
		now:           time.Now,
		logger:        logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /slack/events", h.SlackEvents)
	mux.HandleFunc("GET /api/v1/attempts", h.ListAttempts)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// eventEnvelope is the outer Slack Events API payload.
type eventEnvelope struct {
	Type      string       `json:"type"`
	Challenge string       `json:"challenge"`
	Event     eventPayload `json:"event"`
}

// eventPayload is the inner event object of an event_callback envelope.
type eventPayload struct {
	Type     string `json:"type"`
	User     string `json:"user"`
	Channel  string `json:"channel"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
	BotID    string `json:"bot_id"`
	Subtype  string `json:"subtype"`
}

// SlackEvents receives Slack event callbacks. It acknowledges within Slack's
// delivery deadline by enqueueing the event and returning immediately; the
// merge pipeline runs in the service worker.
func (h *Handler) SlackEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// One-time endpoint verification challenge. Slack sends it when the
	// Events URL is first configured, before any signing handshake, so it is
	// answered ahead of the signature check. The response only echoes a value
	// Slack chose; this exemption stays limited to this payload type.
	if envelope.Type == "url_verification" {
		writeJSON(w, http.StatusOK, challengeResponse{Challenge: envelope.Challenge})
		return
	}

	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	signature := r.Header.Get("X-Slack-Signature")
	if !verifySignature(body, timestamp, signature, h.signingSecret, h.now) {
		h.logger.Warn("rejected event with invalid signature", "remote_addr", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	if envelope.Type == "event_callback" && envelope.Event.Type == "message" {
		ev := envelope.Event

		// Drop bot-authored messages before parsing to avoid reply loops.
		if ev.BotID == "" && ev.Subtype != "bot_message" {
			queued := h.queue.Enqueue(model.MessageEvent{
				UserID:   ev.User,
				Channel:  ev.Channel,
				Text:     ev.Text,
				TS:       ev.TS,
				ThreadTS: ev.ThreadTS,
			})
			if !queued {
				h.logger.Error("event queue full, dropping message event",
					"channel", ev.Channel,
					"user", ev.User,
				)
			}
		}
	}

	writeJSON(w, http.StatusOK, ackResponse{OK: true})
}

// ListAttempts returns recent merge-attempt audit rows, newest first.
// The optional limit query parameter defaults to 50, capped at 500.
func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(parsed, 500)
	}

	attempts, err := h.attempts.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list merge attempts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		resp = append(resp, toAttemptResponse(a))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   h.now().UTC().Format(time.RFC3339),
	})
}
