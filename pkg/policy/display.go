package policy

import (
	"fmt"
	"math"

	"github.com/bastiangx/adaptserve/pkg/behavior"
)

// DisplayInfo is a human readable summary of a profile and the config derived from it.
type DisplayInfo struct {
	CTRLabel          string
	CTRScore          string
	SpeedLabel        string
	KeystrokeInterval string
	TriggerMode       string
	TriggerDetails    string
	Status            string
	SuggestionsShown  int
	StyleLabel        string
	WritingStyle      string
	TopicsOfInterest  []string
	Description       string
}

var ctrLabels = map[behavior.CTRCategory]struct{ label, description string }{
	behavior.CTRZero:     {"Zero CTR", "Never clicks suggestions. Autosuggest disabled to avoid interrupting typing flow."},
	behavior.CTRLow:      {"Low CTR", "Rarely clicks suggestions. Triggers only on typing pause to minimize distraction."},
	behavior.CTRMedium:   {"Medium CTR", "Balanced autosuggest usage. Triggers at regular intervals while typing."},
	behavior.CTRHigh:     {"High CTR", "Frequently uses autosuggest. More aggressive triggering to help with input."},
	behavior.CTRVeryHigh: {"Very High CTR", "Power user of autosuggest. Continuous triggering for maximum assistance."},
}

var speedLabels = map[behavior.TypingCategory]struct{ label, interval string }{
	behavior.PowerUser:      {"Ultra-Fast", "≤ 150 ms"},
	behavior.RegularUser:    {"Fast", "200–300 ms"},
	behavior.ModerateUser:   {"Moderate", "400–700 ms"},
	behavior.OccasionalUser: {"Slow", "1–2 s"},
	behavior.NewUser:        {"Very Slow", "2–4 s"},
}

var styleLabels = map[Style]string{
	StyleKeyword:        "Short keywords",
	StyleSearch:         "Search-engine style",
	StyleNatural:        "Natural language",
	StyleConversational: "Conversational",
	StyleTaskOriented:   "Task-oriented",
}

// Describe summarizes a profile for display.
func Describe(p behavior.UserProfile) DisplayInfo {
	cfg := Derive(&p)

	info := DisplayInfo{
		CTRLabel:         "Unknown",
		CTRScore:         fmt.Sprintf("%.0f%%", math.Round(p.CTR*100)),
		SuggestionsShown: cfg.MaxSuggestions,
		StyleLabel:       styleLabels[cfg.Style],
		WritingStyle:     p.WritingStyle,
		TopicsOfInterest: cfg.TopicsOfInterest,
	}
	if l, ok := ctrLabels[p.CTRCategory]; ok {
		info.CTRLabel = l.label
		info.Description = l.description
	}
	speed, ok := speedLabels[p.TypingCategory]
	if !ok {
		speed = speedLabels[behavior.ModerateUser]
	}
	info.SpeedLabel, info.KeystrokeInterval = speed.label, speed.interval

	switch cfg.TriggerMode {
	case TriggerDisabled:
		info.TriggerMode, info.Status = "Disabled", "Off"
		info.TriggerDetails = "Autosuggest not triggered"
	case TriggerPause:
		info.TriggerMode, info.Status = "Pause Only", "Pause Trigger"
		info.TriggerDetails = fmt.Sprintf("Show after %d ms inactivity", cfg.PauseThresholdMs)
	case TriggerContinuous:
		info.TriggerMode, info.Status = "Continuous", "Always On"
		info.TriggerDetails = "Every keystroke"
	default:
		info.TriggerMode, info.Status = "Interval", "Always On"
		info.TriggerDetails = fmt.Sprintf("Every %d characters typed", cfg.TriggerEveryNChars)
	}
	return info
}
