package model

// MessageEvent is a Slack message forwarded from the webhook adapter into the
// merge pipeline. It lives only for the duration of one dispatch.
type MessageEvent struct {
	UserID   string
	Channel  string
	Text     string
	TS       string
	ThreadTS string
}

// ReplyThreadTS returns the timestamp replies should thread under: the
// existing thread if the message is part of one, otherwise the message itself.
func (e MessageEvent) ReplyThreadTS() string {
	if e.ThreadTS != "" {
		return e.ThreadTS
	}
	return e.TS
}
