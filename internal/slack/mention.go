package slack

import (
	"regexp"
	"strings"
)

// Slack auto-links addresses in message fields as <mailto:addr> or
// <mailto:addr|label>.
var mentionRegexp = regexp.MustCompile(`(?i)<mailto:([^|]*?)(?:\|.*)?>`)

// ExtractEmailAddress recovers the bare address from an auto-linked mention.
// Values without a mention are returned unchanged.
func ExtractEmailAddress(fieldValue string) string {
	m := mentionRegexp.FindStringSubmatch(strings.TrimSpace(fieldValue))
	if m == nil {
		return fieldValue
	}
	return m[1]
}
