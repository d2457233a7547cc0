// Package policy turns a behavioral profile into the trigger and display settings
// that govern autosuggest for that user.
package policy

import (
	"strings"

	"github.com/bastiangx/adaptserve/pkg/behavior"
)

// TriggerMode decides when new suggestions are requested while typing.
type TriggerMode int

const (
	TriggerDisabled TriggerMode = iota
	TriggerPause
	TriggerInterval
	TriggerContinuous
)

func (m TriggerMode) String() string {
	switch m {
	case TriggerDisabled:
		return "disabled"
	case TriggerPause:
		return "pause"
	case TriggerInterval:
		return "interval"
	case TriggerContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// Style is the phrasing applied to suggestion text.
type Style int

const (
	StyleNatural Style = iota
	StyleKeyword
	StyleConversational
	StyleSearch
	StyleTaskOriented
)

func (s Style) String() string {
	switch s {
	case StyleNatural:
		return "natural"
	case StyleKeyword:
		return "keyword"
	case StyleConversational:
		return "conversational"
	case StyleSearch:
		return "search"
	case StyleTaskOriented:
		return "task-oriented"
	default:
		return "unknown"
	}
}

// ParseStyle is the inverse of Style.String. Unknown names fall back to natural.
func ParseStyle(name string) Style {
	for s := StyleNatural; s <= StyleTaskOriented; s++ {
		if s.String() == name {
			return s
		}
	}
	return StyleNatural
}

// AnimationSpeed hints how quickly suggestion changes should animate.
type AnimationSpeed int

const (
	AnimationNormal AnimationSpeed = iota
	AnimationFast
	AnimationSlow
)

func (a AnimationSpeed) String() string {
	switch a {
	case AnimationFast:
		return "fast"
	case AnimationSlow:
		return "slow"
	default:
		return "normal"
	}
}

// Experience holds display hints for the rendering layer.
type Experience struct {
	ShowPositionHints   bool
	StableOrdering      bool
	EmphasizeTopResult  bool
	ShowTypingIndicator bool
	AnimationSpeed      AnimationSpeed
}

// Config is the autosuggest configuration for one user. Build it with Derive.
type Config struct {
	Enabled            bool
	MinPrefixLength    int
	MaxSuggestions     int
	Style              Style
	WritingStyle       string
	TriggerMode        TriggerMode
	TriggerEveryNChars int
	PauseThresholdMs   int
	TopicsOfInterest   []string
	Experience         Experience
}

// Default is the configuration used when nothing is known about the user.
func Default() Config {
	return Config{
		Enabled:            true,
		MinPrefixLength:    2,
		MaxSuggestions:     4,
		Style:              StyleNatural,
		WritingStyle:       "Balanced, natural language",
		TriggerMode:        TriggerInterval,
		TriggerEveryNChars: 3,
		PauseThresholdMs:   500,
		TopicsOfInterest:   []string{},
		Experience: Experience{
			ShowPositionHints:  true,
			EmphasizeTopResult: true,
			AnimationSpeed:     AnimationNormal,
		},
	}
}

type trigger struct {
	mode        TriggerMode
	minPrefix   int
	maxResults  int
	everyNChars int
	pauseMs     int
}

// ctrTriggers is indexed by behavior.CTRCategory. Zero CTR users get a minimum
// prefix length that no query reaches.
var ctrTriggers = [...]trigger{
	behavior.CTRZero:     {TriggerDisabled, 999, 0, 999, 99999},
	behavior.CTRLow:      {TriggerPause, 3, 2, 999, 800},
	behavior.CTRMedium:   {TriggerInterval, 2, 3, 4, 500},
	behavior.CTRHigh:     {TriggerInterval, 1, 4, 2, 300},
	behavior.CTRVeryHigh: {TriggerContinuous, 1, 4, 1, 0},
}

// Derive computes the configuration for a profile. A nil profile yields Default().
func Derive(p *behavior.UserProfile) Config {
	if p == nil {
		return Default()
	}

	t := ctrTriggers[behavior.CTRZero]
	if int(p.CTRCategory) >= 0 && int(p.CTRCategory) < len(ctrTriggers) {
		t = ctrTriggers[p.CTRCategory]
	}
	if t.mode != TriggerDisabled {
		t = adjustForTyping(t, p.TypingCategory)
	}

	return Config{
		Enabled:            true,
		MinPrefixLength:    t.minPrefix,
		MaxSuggestions:     t.maxResults,
		Style:              DeriveStyle(p.WritingStyle),
		WritingStyle:       p.WritingStyle,
		TriggerMode:        t.mode,
		TriggerEveryNChars: t.everyNChars,
		PauseThresholdMs:   t.pauseMs,
		TopicsOfInterest:   append([]string{}, p.TopicsOfInterest...),
		Experience:         deriveExperience(p),
	}
}

// adjustForTyping holds suggestions back for fast typists and offers them more
// often to slow ones.
func adjustForTyping(t trigger, typing behavior.TypingCategory) trigger {
	switch typing {
	case behavior.PowerUser:
		t.mode = TriggerPause
		t.pauseMs = max(t.pauseMs, 1000)
	case behavior.RegularUser:
		if t.mode == TriggerContinuous || t.mode == TriggerInterval {
			t.mode = TriggerPause
			t.pauseMs = max(t.pauseMs, 600)
		}
	case behavior.OccasionalUser:
		switch t.mode {
		case TriggerPause:
			t.pauseMs = min(t.pauseMs, 400)
		case TriggerInterval:
			t.everyNChars = max(1, t.everyNChars-1)
		}
	case behavior.NewUser:
		t.mode = TriggerContinuous
		t.everyNChars = 1
	}
	return t
}

var styleRules = []struct {
	phrases []string
	style   Style
}{
	{[]string{"keyword", "short"}, StyleKeyword},
	{[]string{"search"}, StyleSearch},
	{[]string{"conversational", "question"}, StyleConversational},
	{[]string{"task", "detailed"}, StyleTaskOriented},
	{[]string{"balanced", "semi-formal"}, StyleNatural},
}

// DeriveStyle picks the first style whose phrases occur in the writing style description.
func DeriveStyle(writingStyle string) Style {
	lower := strings.ToLower(writingStyle)
	for _, rule := range styleRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lower, phrase) {
				return rule.style
			}
		}
	}
	return StyleNatural
}

func isFastTypist(c behavior.TypingCategory) bool {
	return c == behavior.PowerUser || c == behavior.RegularUser
}

func isSlowTypist(c behavior.TypingCategory) bool {
	return c == behavior.OccasionalUser || c == behavior.NewUser
}

func deriveExperience(p *behavior.UserProfile) Experience {
	clicks := p.CTRCategory != behavior.CTRZero
	e := Experience{
		ShowPositionHints:   clicks,
		StableOrdering:      p.CTRCategory == behavior.CTRHigh || p.CTRCategory == behavior.CTRVeryHigh,
		EmphasizeTopResult:  clicks,
		ShowTypingIndicator: isSlowTypist(p.TypingCategory),
		AnimationSpeed:      AnimationNormal,
	}
	switch {
	case isFastTypist(p.TypingCategory):
		e.AnimationSpeed = AnimationFast
	case isSlowTypist(p.TypingCategory):
		e.AnimationSpeed = AnimationSlow
	}
	return e
}
