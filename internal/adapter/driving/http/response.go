package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/takeoffbot/takeoff/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// ackResponse acknowledges a received Slack event.
type ackResponse struct {
	OK bool `json:"ok"`
}

// challengeResponse answers the Slack url_verification handshake.
type challengeResponse struct {
	Challenge string `json:"challenge"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// AttemptResponse is the JSON representation of a merge-attempt audit row.
type AttemptResponse struct {
	ID         int64  `json:"id"`
	Channel    string `json:"channel"`
	UserID     string `json:"user_id"`
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
	PullNumber int    `json:"pull_number"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at"`
}

// toAttemptResponse converts a domain MergeAttempt to its JSON representation.
func toAttemptResponse(a model.MergeAttempt) AttemptResponse {
	return AttemptResponse{
		ID:         a.ID,
		Channel:    a.Channel,
		UserID:     a.UserID,
		Owner:      a.Owner,
		Repo:       a.Repo,
		PullNumber: a.PullNumber,
		Status:     a.Status,
		Message:    a.Message,
		CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
