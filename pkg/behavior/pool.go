package behavior

import (
	"sort"
	"strings"
)

// PoolSize is how many candidates are kept per prefix.
const PoolSize = 10

// Candidate is an aggregated crowd suggestion for one prefix.
type Candidate struct {
	Text          string
	Count         int
	Clicks        int
	HistoricalCTR float64
	Score         float64
}

// Pool maps a normalized prefix to its best crowd candidates, highest score first.
type Pool map[string][]Candidate

// NormalizePrefix lowercases and trims a prefix the way pool keys are stored.
func NormalizePrefix(prefix string) string {
	return strings.ToLower(strings.TrimSpace(prefix))
}

// Lookup returns the candidates recorded for exactly this prefix.
func (p Pool) Lookup(prefix string) []Candidate {
	return p[NormalizePrefix(prefix)]
}

// BuildSuggestionPool tallies how often each suggestion was shown and clicked per prefix.
// Candidates score count + historicalCTR*100; ties keep first-seen order.
func BuildSuggestionPool(entries []LogEntry) Pool {
	type tally struct {
		order  []string
		counts map[string]*Candidate
	}
	var prefixes []string
	byPrefix := make(map[string]*tally)

	for _, e := range entries {
		prefix := NormalizePrefix(e.Prefix)
		if prefix == "" {
			continue
		}
		t, ok := byPrefix[prefix]
		if !ok {
			t = &tally{counts: make(map[string]*Candidate)}
			byPrefix[prefix] = t
			prefixes = append(prefixes, prefix)
		}
		c, ok := t.counts[e.Suggestion]
		if !ok {
			c = &Candidate{Text: e.Suggestion}
			t.counts[e.Suggestion] = c
			t.order = append(t.order, e.Suggestion)
		}
		c.Count++
		if e.Clicked {
			c.Clicks++
		}
	}

	pool := make(Pool, len(prefixes))
	for _, prefix := range prefixes {
		t := byPrefix[prefix]
		candidates := make([]Candidate, 0, len(t.order))
		for _, text := range t.order {
			c := *t.counts[text]
			c.HistoricalCTR = float64(c.Clicks) / float64(c.Count)
			c.Score = float64(c.Count) + c.HistoricalCTR*100
			candidates = append(candidates, c)
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Score > candidates[j].Score
		})
		if len(candidates) > PoolSize {
			candidates = candidates[:PoolSize]
		}
		pool[prefix] = candidates
	}
	return pool
}
