package suggest

import (
	"strings"

	"github.com/bastiangx/adaptserve/pkg/policy"
)

var interrogatives = []string{"how", "what", "why", "can you"}

// ApplyStyle rephrases a suggestion for a style. Search drops a trailing question
// mark and conversational adds one to questions. Other styles leave text unchanged.
func ApplyStyle(text string, style policy.Style) string {
	switch style {
	case policy.StyleSearch:
		return strings.TrimSuffix(text, "?")
	case policy.StyleConversational:
		if strings.HasSuffix(text, "?") {
			return text
		}
		lower := strings.ToLower(text)
		for _, opener := range interrogatives {
			if strings.HasPrefix(lower, opener) {
				return text + "?"
			}
		}
		return text
	default:
		return text
	}
}
