package utils

import (
	"strings"
)

// SuggestionFilter drops suggestions whose text was already seen, ignoring case.
// It is not safe for concurrent use; create one per request.
type SuggestionFilter struct {
	seen map[string]struct{}
}

// NewSuggestionFilter creates an empty filter.
func NewSuggestionFilter() *SuggestionFilter {
	return &SuggestionFilter{seen: make(map[string]struct{})}
}

// ShouldInclude reports whether text is new and records it.
func (f *SuggestionFilter) ShouldInclude(text string) bool {
	key := strings.ToLower(text)
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}

// Len is the number of distinct texts recorded.
func (f *SuggestionFilter) Len() int { return len(f.seen) }
