package driven

import "context"

// Notifier defines the driven port for sending outcome messages back into the
// originating chat.
type Notifier interface {
	// PostMessage sends text to the given channel. When threadTS is non-empty
	// the message is threaded under it.
	PostMessage(ctx context.Context, channel, threadTS, text string) error
}
