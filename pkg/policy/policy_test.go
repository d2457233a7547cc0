package policy

import (
	"reflect"
	"testing"

	"github.com/bastiangx/adaptserve/pkg/behavior"
)

func profile(ctr behavior.CTRCategory, typing behavior.TypingCategory, style string) *behavior.UserProfile {
	return &behavior.UserProfile{
		UserID:           "U",
		CTRCategory:      ctr,
		TypingCategory:   typing,
		WritingStyle:     style,
		TopicsOfInterest: []string{"Finance"},
	}
}

func TestDeriveNilIsConstant(t *testing.T) {
	want := Default()
	for i := 0; i < 3; i++ {
		got := Derive(nil)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("call %d: got %+v, want %+v", i, got, want)
		}
	}
	if want.TriggerMode != TriggerInterval || want.TriggerEveryNChars != 3 || want.PauseThresholdMs != 500 ||
		want.MaxSuggestions != 4 || want.Style != StyleNatural {
		t.Errorf("unexpected default %+v", want)
	}
}

func TestDeriveZeroCTRNeverTriggers(t *testing.T) {
	for typing := behavior.PowerUser; typing <= behavior.NewUser; typing++ {
		cfg := Derive(profile(behavior.CTRZero, typing, ""))
		if cfg.TriggerMode != TriggerDisabled {
			t.Errorf("%v: zero CTR re-enabled as %v", typing, cfg.TriggerMode)
		}
		if cfg.MaxSuggestions != 0 || cfg.MinPrefixLength < 999 {
			t.Errorf("%v: zero CTR config reachable: %+v", typing, cfg)
		}
	}
}

func TestDeriveCTRBase(t *testing.T) {
	tests := []struct {
		ctr      behavior.CTRCategory
		mode     TriggerMode
		min, max int
		every    int
		pause    int
	}{
		{behavior.CTRLow, TriggerPause, 3, 2, 999, 800},
		{behavior.CTRMedium, TriggerInterval, 2, 3, 4, 500},
		{behavior.CTRHigh, TriggerInterval, 1, 4, 2, 300},
		{behavior.CTRVeryHigh, TriggerContinuous, 1, 4, 1, 0},
	}
	for _, tc := range tests {
		// moderate typists leave the base rule untouched
		cfg := Derive(profile(tc.ctr, behavior.ModerateUser, ""))
		got := []int{int(cfg.TriggerMode), cfg.MinPrefixLength, cfg.MaxSuggestions, cfg.TriggerEveryNChars, cfg.PauseThresholdMs}
		want := []int{int(tc.mode), tc.min, tc.max, tc.every, tc.pause}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%v: got %v, want %v", tc.ctr, got, want)
		}
	}
}

func TestDeriveTypingModifier(t *testing.T) {
	tests := []struct {
		name   string
		ctr    behavior.CTRCategory
		typing behavior.TypingCategory
		mode   TriggerMode
		every  int
		pause  int
	}{
		{"power user waits for a pause", behavior.CTRVeryHigh, behavior.PowerUser, TriggerPause, 1, 1000},
		{"power user keeps longer pause", behavior.CTRLow, behavior.PowerUser, TriggerPause, 999, 1000},
		{"regular user interval becomes pause", behavior.CTRHigh, behavior.RegularUser, TriggerPause, 2, 600},
		{"regular user pause untouched", behavior.CTRLow, behavior.RegularUser, TriggerPause, 999, 800},
		{"occasional user shorter pause", behavior.CTRLow, behavior.OccasionalUser, TriggerPause, 999, 400},
		{"occasional user denser interval", behavior.CTRHigh, behavior.OccasionalUser, TriggerInterval, 1, 300},
		{"new user continuous", behavior.CTRMedium, behavior.NewUser, TriggerContinuous, 1, 500},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Derive(profile(tc.ctr, tc.typing, ""))
			if cfg.TriggerMode != tc.mode || cfg.TriggerEveryNChars != tc.every || cfg.PauseThresholdMs != tc.pause {
				t.Errorf("got %v every=%d pause=%d, want %v every=%d pause=%d",
					cfg.TriggerMode, cfg.TriggerEveryNChars, cfg.PauseThresholdMs, tc.mode, tc.every, tc.pause)
			}
		})
	}
}

func TestDeriveStyle(t *testing.T) {
	tests := []struct {
		in   string
		want Style
	}{
		{"Short, keyword-based, technical", StyleKeyword},
		{"Short, casual, search-engine style", StyleKeyword},
		{"Casual search-engine style", StyleSearch},
		{"Conversational, question-based", StyleConversational},
		{"Natural language, task-oriented, detailed", StyleTaskOriented},
		{"Balanced, semi-formal, descriptive", StyleNatural},
		{"", StyleNatural},
		{"QUESTION heavy", StyleConversational},
	}
	for _, tc := range tests {
		if got := DeriveStyle(tc.in); got != tc.want {
			t.Errorf("DeriveStyle(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseStyle(t *testing.T) {
	for s := StyleNatural; s <= StyleTaskOriented; s++ {
		if got := ParseStyle(s.String()); got != s {
			t.Errorf("ParseStyle(%q) = %v", s.String(), got)
		}
	}
	if ParseStyle("shouting") != StyleNatural {
		t.Error("unknown style should fall back to natural")
	}
}

func TestDeriveExperience(t *testing.T) {
	zero := Derive(profile(behavior.CTRZero, behavior.PowerUser, "")).Experience
	if zero.ShowPositionHints || zero.EmphasizeTopResult || zero.StableOrdering || zero.AnimationSpeed != AnimationFast {
		t.Errorf("unexpected zero CTR experience %+v", zero)
	}

	high := Derive(profile(behavior.CTRHigh, behavior.NewUser, "")).Experience
	want := Experience{
		ShowPositionHints:   true,
		StableOrdering:      true,
		EmphasizeTopResult:  true,
		ShowTypingIndicator: true,
		AnimationSpeed:      AnimationSlow,
	}
	if high != want {
		t.Errorf("got %+v, want %+v", high, want)
	}

	medium := Derive(profile(behavior.CTRMedium, behavior.ModerateUser, "")).Experience
	if medium.StableOrdering || medium.ShowTypingIndicator || medium.AnimationSpeed != AnimationNormal {
		t.Errorf("unexpected medium experience %+v", medium)
	}
}

func TestDescribeDemoProfiles(t *testing.T) {
	demos := behavior.DemoProfiles()
	tests := []struct {
		id      string
		mode    string
		details string
		shown   int
	}{
		{"USER_001_SANDRA", "Disabled", "Autosuggest not triggered", 0},
		{"USER_002_JAMES", "Pause Only", "Show after 800 ms inactivity", 2},
		{"USER_003_PRIYA", "Interval", "Every 4 characters typed", 3},
		{"USER_004_MICHAEL", "Interval", "Every 1 characters typed", 4},
		{"USER_005_EMMA", "Continuous", "Every keystroke", 4},
	}
	for _, tc := range tests {
		info := Describe(demos[tc.id])
		if info.TriggerMode != tc.mode || info.TriggerDetails != tc.details || info.SuggestionsShown != tc.shown {
			t.Errorf("%s: got %q / %q / %d", tc.id, info.TriggerMode, info.TriggerDetails, info.SuggestionsShown)
		}
	}
	if info := Describe(demos["USER_005_EMMA"]); info.CTRScore != "35%" || info.SpeedLabel != "Very Slow" {
		t.Errorf("unexpected labels %+v", info)
	}
}
