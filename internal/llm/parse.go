package llm

import (
	"regexp"
	"strings"
)

var (
	numbering = regexp.MustCompile(`^\d+[.)]\s*`)
	bullet    = regexp.MustCompile(`^[-•*]\s*`)
	quotes    = regexp.MustCompile(`^["']|["']$`)
	spaces    = regexp.MustCompile(`\s+`)
)

// ParseSuggestions extracts up to max suggestions from model output, one per line.
// Lines that do not mention the prefix are treated as bare completions and get it
// prepended. Lines that mention the prefix somewhere other than the start are dropped.
func ParseSuggestions(content, prefix string, max int) []string {
	normalized := strings.ToLower(strings.TrimSpace(prefix))
	out := []string{}

	for _, line := range strings.Split(content, "\n") {
		if len(out) >= max {
			break
		}
		line = strings.TrimSpace(line)
		line = numbering.ReplaceAllString(line, "")
		line = bullet.ReplaceAllString(line, "")
		line = quotes.ReplaceAllString(line, "")
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, normalized):
			out = append(out, line)
		case !strings.Contains(lower, normalized):
			combined := strings.TrimSpace(spaces.ReplaceAllString(prefix+" "+line, " "))
			out = append(out, combined)
		}
	}
	return out
}
