package behavior

import (
	"sort"
	"strconv"
	"strings"
)

// CTRCategory buckets a user's click-through rate.
type CTRCategory int

const (
	CTRZero CTRCategory = iota
	CTRLow
	CTRMedium
	CTRHigh
	CTRVeryHigh
)

func (c CTRCategory) String() string {
	switch c {
	case CTRZero:
		return "zero"
	case CTRLow:
		return "low"
	case CTRMedium:
		return "medium"
	case CTRHigh:
		return "high"
	case CTRVeryHigh:
		return "very_high"
	default:
		return "unknown"
	}
}

// CategorizeCTR maps a click-through rate to its category at thresholds 0, 0.1, 0.3 and 0.6.
func CategorizeCTR(ctr float64) CTRCategory {
	switch {
	case ctr == 0:
		return CTRZero
	case ctr < 0.1:
		return CTRLow
	case ctr < 0.3:
		return CTRMedium
	case ctr < 0.6:
		return CTRHigh
	default:
		return CTRVeryHigh
	}
}

// TypingCategory buckets the average delay between keystroke events, fastest first.
type TypingCategory int

const (
	PowerUser TypingCategory = iota
	RegularUser
	ModerateUser
	OccasionalUser
	NewUser
)

func (c TypingCategory) String() string {
	switch c {
	case PowerUser:
		return "power_user"
	case RegularUser:
		return "regular_user"
	case ModerateUser:
		return "moderate_user"
	case OccasionalUser:
		return "occasional_user"
	case NewUser:
		return "new_user"
	default:
		return "unknown"
	}
}

// Rank is 1 for the fastest category and 5 for the slowest.
func (c TypingCategory) Rank() int { return int(c) + 1 }

// CategorizeTypingSpeed maps an average keystroke delay in ms at thresholds 150, 300, 700 and 2000.
func CategorizeTypingSpeed(avgMs float64) TypingCategory {
	switch {
	case avgMs <= 150:
		return PowerUser
	case avgMs <= 300:
		return RegularUser
	case avgMs <= 700:
		return ModerateUser
	case avgMs <= 2000:
		return OccasionalUser
	default:
		return NewUser
	}
}

// UsageFrequency buckets how many sessions a user has.
type UsageFrequency int

const (
	UsageLow UsageFrequency = iota
	UsageMedium
	UsageHigh
)

func (u UsageFrequency) String() string {
	switch u {
	case UsageLow:
		return "low"
	case UsageMedium:
		return "medium"
	case UsageHigh:
		return "high"
	default:
		return "unknown"
	}
}

func categorizeUsage(sessions int) UsageFrequency {
	switch {
	case sessions <= 2:
		return UsageLow
	case sessions <= 4:
		return UsageMedium
	default:
		return UsageHigh
	}
}

// UserProfile is the behavioral summary of one user. Profiles are only produced by
// BuildUserProfiles or DemoProfiles and are not modified afterwards.
type UserProfile struct {
	UserID     string
	Market     string
	UILanguage string
	Region     string

	TotalEvents   int
	ClickedEvents int
	CTR           float64
	CTRCategory   CTRCategory

	AvgTypingSpeedMs float64
	TypingCategory   TypingCategory

	TotalSessions       int
	AvgEventsPerSession float64
	UsageFrequency      UsageFrequency

	TopicAffinities    []string
	TopicsOfInterest   []string
	HistoricalQueries  []string
	ClickedSuggestions []string

	PastQueries  string
	WritingStyle string
}

// TypingSpeedRank is the 1..5 rank of the typing category.
func (p UserProfile) TypingSpeedRank() int { return p.TypingCategory.Rank() }

// Profiles indexes user profiles by user id.
type Profiles map[string]UserProfile

// Get returns the profile for id, or nil when the user is unknown.
func (p Profiles) Get(id string) *UserProfile {
	profile, ok := p[id]
	if !ok {
		return nil
	}
	return &profile
}

// IDs lists the demo users in their fixed order followed by every other user sorted by id.
func (p Profiles) IDs() []string {
	ids := make([]string, 0, len(p))
	seen := make(map[string]bool, len(p))
	for _, id := range demoOrder {
		if _, ok := p[id]; ok {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	rest := make([]string, 0, len(p)-len(ids))
	for id := range p {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}

const (
	defaultTypingMs   = 500
	maxTypingDeltaMs  = 10000
	minHistoricalRune = 4
)

// BuildUserProfiles derives one profile per user in the log, then overlays the demo profiles.
func BuildUserProfiles(entries []LogEntry) Profiles {
	profiles := deriveProfiles(entries)
	for id, p := range DemoProfiles() {
		profiles[id] = p
	}
	return profiles
}

func deriveProfiles(entries []LogEntry) Profiles {
	order, byUser := groupBy(entries, func(e LogEntry) string { return e.UserID })
	profiles := make(Profiles, len(order))
	for _, id := range order {
		profiles[id] = deriveProfile(id, byUser[id])
	}
	return profiles
}

func deriveProfile(userID string, entries []LogEntry) UserProfile {
	events := make(map[string]bool)
	clicked := make(map[string]bool)
	sessions := make(map[string]bool)
	var clickedSuggestions []string

	for _, e := range entries {
		events[e.EventID] = true
		sessions[e.SessionID] = true
		if e.Clicked {
			clicked[e.EventID] = true
			clickedSuggestions = append(clickedSuggestions, e.Suggestion)
		}
	}

	var ctr float64
	if len(events) > 0 {
		ctr = float64(len(clicked)) / float64(len(events))
	}
	avgMs := averageTypingDelay(entries)
	first := entries[0]

	return UserProfile{
		UserID:              userID,
		Market:              first.Market,
		UILanguage:          first.UILanguage,
		Region:              first.Region,
		TotalEvents:         len(events),
		ClickedEvents:       len(clicked),
		CTR:                 ctr,
		CTRCategory:         CategorizeCTR(ctr),
		AvgTypingSpeedMs:    avgMs,
		TypingCategory:      CategorizeTypingSpeed(avgMs),
		TotalSessions:       len(sessions),
		AvgEventsPerSession: float64(len(events)) / float64(len(sessions)),
		UsageFrequency:      categorizeUsage(len(sessions)),
		TopicAffinities:     extractAffinities(clickedSuggestions),
		TopicsOfInterest:    extractTopicsOfInterest(first.WritingStyle, first.PastQueries),
		HistoricalQueries:   historicalQueries(entries),
		ClickedSuggestions:  clickedSuggestions,
		PastQueries:         first.PastQueries,
		WritingStyle:        first.WritingStyle,
	}
}

// historicalQueries keeps the latest prefix of each session, in session order.
// Rows with equal times keep the earliest.
func historicalQueries(entries []LogEntry) []string {
	type last struct{ prefix, time string }
	var order []string
	latest := make(map[string]last)
	for _, e := range entries {
		cur, ok := latest[e.SessionID]
		if !ok {
			order = append(order, e.SessionID)
		}
		if !ok || e.Time > cur.time {
			latest[e.SessionID] = last{e.Prefix, e.Time}
		}
	}

	var queries []string
	for _, sid := range order {
		if p := latest[sid].prefix; len([]rune(p)) >= minHistoricalRune {
			queries = append(queries, p)
		}
	}
	return queries
}

// averageTypingDelay averages the gaps between consecutive distinct events of each session.
// Gaps that are not positive or reach ten seconds are pauses rather than typing.
func averageTypingDelay(entries []LogEntry) float64 {
	order, sessions := groupBy(entries, func(e LogEntry) string { return e.UserID + "-" + e.SessionID })

	var total, n int64
	for _, key := range order {
		events := uniqueEvents(sessions[key])
		sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
		for i := 1; i < len(events); i++ {
			t1, ok1 := parseClock(events[i-1].Time)
			t2, ok2 := parseClock(events[i].Time)
			if !ok1 || !ok2 {
				continue
			}
			if d := t2 - t1; d > 0 && d < maxTypingDeltaMs {
				total += d
				n++
			}
		}
	}
	if n == 0 {
		return defaultTypingMs
	}
	return float64(total) / float64(n)
}

func uniqueEvents(entries []LogEntry) []LogEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		if seen[e.EventID] {
			continue
		}
		seen[e.EventID] = true
		out = append(out, e)
	}
	return out
}

// parseClock converts HH:MM:SS to milliseconds since midnight.
func parseClock(s string) (int64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	var ms int64
	for i, unit := range []int64{3600, 60, 1} {
		v, err := strconv.ParseInt(parts[i], 10, 64)
		if err != nil {
			return 0, false
		}
		ms += v * unit
	}
	return ms * 1000, true
}

// groupBy buckets entries by key and returns the keys in first-seen order.
func groupBy(entries []LogEntry, key func(LogEntry) string) ([]string, map[string][]LogEntry) {
	var order []string
	groups := make(map[string][]LogEntry)
	for _, e := range entries {
		k := key(e)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}
	return order, groups
}
