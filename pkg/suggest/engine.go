package suggest

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/adaptserve/internal/utils"
	"github.com/bastiangx/adaptserve/pkg/behavior"
	"github.com/bastiangx/adaptserve/pkg/policy"
)

// Source tells where a suggestion came from.
type Source int

const (
	SourceCrowd Source = iota
	SourceSynthetic
	SourceBase
	SourceAI
)

func (s Source) String() string {
	switch s {
	case SourceCrowd:
		return "crowd"
	case SourceSynthetic:
		return "synthetic"
	case SourceBase:
		return "base"
	case SourceAI:
		return "ai"
	default:
		return "unknown"
	}
}

// Suggestion is one ranked entry of a Result.
type Suggestion struct {
	Text     string
	Position int // 1-based
	Score    float64
	Source   Source
}

// ProfileSummary is the coarse profile echo carried by a Result.
type ProfileSummary struct {
	CTRCategory string
	TypingSpeed string
	Region      string
}

// Result is the outcome of one suggestion query.
type Result struct {
	Enabled       bool
	Suggestions   []Suggestion
	Style         policy.Style
	TriggerReason string
	Experience    policy.Experience
	Profile       ProfileSummary
}

// Trigger reasons that are not diagnostics.
const (
	ReasonDisabledForUser = "disabled_for_user"
	ReasonTriggerDisabled = "trigger_disabled"
)

const (
	crowdWeight = 2

	syntheticTop  = 80
	syntheticStep = 10
	baseTop       = 50
	baseStep      = 5

	topicNameBoost     = 30
	topicNameStep      = 8
	topicKeywordBoost  = 15
	topicKeywordStep   = 3
	affinityBoost      = 20
	affinityStep       = 5
	historyBoost       = 10
	historyOverlapRune = 5
)

// Engine ranks suggestions from the crowd pool, a synthetic completion table and a
// base table. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	profiles  behavior.Profiles
	pool      behavior.Pool
	synthetic *Table
	base      *Table
}

// NewEngine creates an engine over explicit sources. Nil tables are treated as empty.
func NewEngine(profiles behavior.Profiles, pool behavior.Pool, synthetic, base *Table) *Engine {
	return &Engine{
		profiles:  profiles,
		pool:      pool,
		synthetic: synthetic,
		base:      base,
	}
}

// FromDataset creates an engine over a dataset with the default completion tables.
func FromDataset(ds *behavior.Dataset) *Engine {
	return NewEngine(ds.Profiles, ds.Pool, DefaultSynthetic(), DefaultBase())
}

// Profile returns the profile for userID, or nil for unknown users.
func (e *Engine) Profile(userID string) *behavior.UserProfile {
	return e.profiles.Get(userID)
}

// Config derives the autosuggest config for userID.
func (e *Engine) Config(userID string) policy.Config {
	return policy.Derive(e.Profile(userID))
}

// Disabled is the result for a user who switched autosuggest off.
func (e *Engine) Disabled(userID string) Result {
	profile := e.Profile(userID)
	cfg := policy.Derive(profile)
	return Result{
		Enabled:       false,
		Suggestions:   []Suggestion{},
		Style:         cfg.Style,
		TriggerReason: ReasonDisabledForUser,
		Experience:    cfg.Experience,
		Profile:       summarize(profile),
	}
}

type candidate struct {
	text   string
	score  float64
	source Source
}

// Suggest returns the ranked suggestions for prefix. Unknown users get the default config.
func (e *Engine) Suggest(userID, prefix string) Result {
	profile := e.Profile(userID)
	cfg := policy.Derive(profile)
	normalized := behavior.NormalizePrefix(prefix)
	prefixLen := utf8.RuneCountInString(normalized)

	result := Result{
		Enabled:     cfg.Enabled,
		Suggestions: []Suggestion{},
		Style:       cfg.Style,
		Experience:  cfg.Experience,
		Profile:     summarize(profile),
	}
	switch {
	case !cfg.Enabled:
		result.TriggerReason = ReasonDisabledForUser
		return result
	case prefixLen < cfg.MinPrefixLength:
		result.TriggerReason = fmt.Sprintf("prefix_too_short (need %d+ chars)", cfg.MinPrefixLength)
		return result
	case cfg.TriggerMode == policy.TriggerDisabled:
		result.TriggerReason = ReasonTriggerDisabled
		return result
	}

	candidates := e.gather(normalized)
	if profile != nil {
		personalize(candidates, profile)
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > cfg.MaxSuggestions {
		candidates = candidates[:cfg.MaxSuggestions]
	}

	for i, c := range candidates {
		result.Suggestions = append(result.Suggestions, Suggestion{
			Text:     ApplyStyle(c.text, cfg.Style),
			Position: i + 1,
			Score:    c.score,
			Source:   c.source,
		})
	}

	if profile != nil {
		result.TriggerReason = fmt.Sprintf("ctr=%s, speed=%s, style=%s, prefix_len=%d",
			profile.CTRCategory, profile.TypingCategory, cfg.Style, prefixLen)
	} else {
		result.TriggerReason = fmt.Sprintf("new_user, prefix_len=%d", prefixLen)
	}
	return result
}

// gather collects crowd, synthetic and base candidates in that order.
// Every candidate starts with the prefix and no text appears twice.
func (e *Engine) gather(normalized string) []candidate {
	filter := utils.NewSuggestionFilter()
	var candidates []candidate
	add := func(text string, score float64, source Source) {
		if !utils.HasPrefixIgnoreCase(text, normalized) || !filter.ShouldInclude(text) {
			return
		}
		candidates = append(candidates, candidate{text: text, score: score, source: source})
	}

	for _, c := range e.pool.Lookup(normalized) {
		add(c.Text, c.Score*crowdWeight, SourceCrowd)
	}

	if entry, ok := e.synthetic.Best(normalized); ok {
		for i, text := range entry.Completions {
			add(text, float64(syntheticTop-syntheticStep*i), SourceSynthetic)
		}
	}

	for _, entry := range e.base.Matches(normalized) {
		for i, text := range entry.Completions {
			add(text, float64(baseTop-baseStep*i), SourceBase)
		}
	}
	return candidates
}

func personalize(candidates []candidate, p *behavior.UserProfile) {
	for i := range candidates {
		c := &candidates[i]
		text := strings.ToLower(c.text)

		for idx, topic := range p.TopicsOfInterest {
			if strings.Contains(text, strings.ToLower(topic)) {
				c.score += float64(topicNameBoost - topicNameStep*idx)
			}
			for _, kw := range behavior.TopicKeywords(topic) {
				if strings.Contains(text, strings.ToLower(kw)) {
					c.score += float64(topicKeywordBoost - topicKeywordStep*idx)
				}
			}
		}

		for idx, topic := range p.TopicAffinities {
			if strings.Contains(text, strings.ToLower(topic)) {
				c.score += float64(affinityBoost - affinityStep*idx)
			}
		}

		head := firstRunes(text, historyOverlapRune)
		for _, q := range p.HistoricalQueries {
			query := strings.ToLower(q)
			if strings.Contains(text, firstRunes(query, historyOverlapRune)) || strings.Contains(query, head) {
				c.score += historyBoost
			}
		}
	}
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func summarize(p *behavior.UserProfile) ProfileSummary {
	if p == nil {
		return ProfileSummary{CTRCategory: "unknown", TypingSpeed: "unknown", Region: "unknown"}
	}
	region := p.Region
	if region == "" {
		region = "unknown"
	}
	return ProfileSummary{
		CTRCategory: p.CTRCategory.String(),
		TypingSpeed: p.TypingCategory.String(),
		Region:      region,
	}
}
