package httphandler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// replayWindow is the maximum age of a signed request, in either direction,
// to tolerate clock skew between Slack and this host.
const replayWindow = 5 * time.Minute

// verifySignature checks that body was signed with secret at the given
// timestamp, per Slack's v0 signing scheme. It fails closed on any malformed
// input and uses a constant-time comparison against the signature header.
func verifySignature(body []byte, timestamp, signature, secret string, now func() time.Time) bool {
	requestTime, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	age := now().Unix() - requestTime
	if age < 0 {
		age = -age
	}
	if age > int64(replayWindow.Seconds()) {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("v0:" + timestamp + ":"))
	mac.Write(body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
