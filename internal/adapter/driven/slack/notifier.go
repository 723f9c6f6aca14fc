// Package slack implements the Notifier port using the slack-go client.
package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	slackapi "github.com/slack-go/slack"

	"github.com/takeoffbot/takeoff/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Notifier = (*Notifier)(nil)

// Notifier posts outcome messages into Slack channels via chat.postMessage.
type Notifier struct {
	client *slackapi.Client
}

// NewNotifier creates a Notifier authenticated with the given bot token.
func NewNotifier(botToken string) *Notifier {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	return &Notifier{
		client: slackapi.New(botToken, slackapi.OptionHTTPClient(httpClient)),
	}
}

// NewNotifierWithAPIURL creates a Notifier pointed at a custom Slack API base
// URL. This constructor is intended for testing against an httptest server;
// apiURL must end with a trailing slash.
func NewNotifierWithAPIURL(botToken, apiURL string) *Notifier {
	return &Notifier{
		client: slackapi.New(botToken, slackapi.OptionAPIURL(apiURL)),
	}
}

// PostMessage sends text to the given channel, threaded under threadTS when
// it is non-empty.
func (n *Notifier) PostMessage(ctx context.Context, channel, threadTS, text string) error {
	opts := []slackapi.MsgOption{
		slackapi.MsgOptionText(text, false),
	}
	if threadTS != "" {
		opts = append(opts, slackapi.MsgOptionTS(threadTS))
	}

	if _, _, err := n.client.PostMessageContext(ctx, channel, opts...); err != nil {
		return fmt.Errorf("posting message to channel %s: %w", channel, err)
	}

	return nil
}
