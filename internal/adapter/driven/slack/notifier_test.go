package slack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slackadapter "github.com/takeoffbot/takeoff/internal/adapter/driven/slack"
)

// postCapture records the form fields of chat.postMessage calls.
type postCapture struct {
	channel  string
	threadTS string
	text     string
	token    string
	calls    int
	fail     bool
}

func (c *postCapture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/chat.postMessage" {
		http.NotFound(w, r)
		return
	}

	c.calls++
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.channel = r.FormValue("channel")
	c.threadTS = r.FormValue("thread_ts")
	c.text = r.FormValue("text")
	c.token = r.FormValue("token")
	if c.token == "" {
		c.token = r.Header.Get("Authorization")
	}

	w.Header().Set("Content-Type", "application/json")
	if c.fail {
		_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
		return
	}
	_, _ = w.Write([]byte(`{"ok":true,"channel":"` + c.channel + `","ts":"1700000000.000200"}`))
}

func newTestNotifier(t *testing.T, capture *postCapture) *slackadapter.Notifier {
	t.Helper()

	server := httptest.NewServer(capture)
	t.Cleanup(server.Close)

	return slackadapter.NewNotifierWithAPIURL("xoxb-test", server.URL+"/")
}

func TestPostMessage_Threaded(t *testing.T) {
	capture := &postCapture{}
	notifier := newTestNotifier(t, capture)

	err := notifier.PostMessage(context.Background(), "C42", "1700000000.000100", "✓ PR #7 merged successfully.")

	require.NoError(t, err)
	assert.Equal(t, 1, capture.calls)
	assert.Equal(t, "C42", capture.channel)
	assert.Equal(t, "1700000000.000100", capture.threadTS)
	assert.Equal(t, "✓ PR #7 merged successfully.", capture.text)
}

func TestPostMessage_NoThread(t *testing.T) {
	capture := &postCapture{}
	notifier := newTestNotifier(t, capture)

	err := notifier.PostMessage(context.Background(), "C42", "", "hello")

	require.NoError(t, err)
	assert.Empty(t, capture.threadTS)
}

func TestPostMessage_APIError(t *testing.T) {
	capture := &postCapture{fail: true}
	notifier := newTestNotifier(t, capture)

	err := notifier.PostMessage(context.Background(), "C404", "", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
	assert.Contains(t, err.Error(), "C404")
}
