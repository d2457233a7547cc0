/*
Package server implements msgpack IPC for adaptive autosuggest services.

The server reads a stream of msgpack maps from stdin and writes one msgpack map per
request to stdout. Logs go to stderr so they never interleave with responses.

# IPC

Every request carries a command and an optional id echoed in the response. When the
id is omitted the server assigns one.

	{"id": "req_001", "cmd": "suggest", "u": "USER_004_MICHAEL", "p": "how to"}

The server responds with ranked suggestions and the reason they were (not) shown:

	{"id": "req_001", "en": true, "s": [{"w": "how to cook rice?", "r": 1, "sc": 90, "src": "synthetic"}],
	 "c": 1, "st": "conversational", "tr": "ctr=high, speed=regular_user, ...", "t": 42}

Commands:

	suggest   {u, p}    ranked suggestions, respecting the per-user toggle
	config    {u}       derived autosuggest config
	profiles            every known profile with display labels
	ai        {u, p}    completions from the hosted model, rate limited per user
	settings  {u, e?}   read, or set then read, the per-user toggle
	stats               dataset statistics
	reload    {path?}   rebuild profiles and pool from a log file
	health              liveness check

Failures are reported as {"id", "e": message, "c": code, "r": reason} where reason is
one of bad_request, unknown_command, rate_limited, ai_unavailable or internal.
*/
package server

// Request is the envelope shared by all commands.
type Request struct {
	ID      string `msgpack:"id"`
	Command string `msgpack:"cmd"`
	UserID  string `msgpack:"u,omitempty"`
	Prefix  string `msgpack:"p,omitempty"`
	Enabled *bool  `msgpack:"e,omitempty"`
	Path    string `msgpack:"path,omitempty"`
}

// Suggestion - one ranked suggestion
type Suggestion struct {
	Text     string  `msgpack:"w"`
	Position int     `msgpack:"r"`
	Score    float64 `msgpack:"sc"`
	Source   string  `msgpack:"src"`
}

// Experience mirrors policy.Experience.
type Experience struct {
	ShowPositionHints   bool   `msgpack:"hints"`
	StableOrdering      bool   `msgpack:"stable"`
	EmphasizeTopResult  bool   `msgpack:"emph"`
	ShowTypingIndicator bool   `msgpack:"typing"`
	AnimationSpeed      string `msgpack:"anim"`
}

// ProfileSummary is the coarse profile echo of a suggest response.
type ProfileSummary struct {
	CTRCategory string `msgpack:"ctr"`
	TypingSpeed string `msgpack:"speed"`
	Region      string `msgpack:"region"`
}

// SuggestResponse - suggest response
type SuggestResponse struct {
	ID            string         `msgpack:"id"`
	Enabled       bool           `msgpack:"en"`
	Suggestions   []Suggestion   `msgpack:"s"`
	Count         int            `msgpack:"c"`
	Style         string         `msgpack:"st"`
	TriggerReason string         `msgpack:"tr"`
	Experience    Experience     `msgpack:"x"`
	Profile       ProfileSummary `msgpack:"pf"`
	TimeTaken     int64          `msgpack:"t"`
}

// ConfigResponse - derived config for one user
type ConfigResponse struct {
	ID                 string     `msgpack:"id"`
	UserID             string     `msgpack:"u"`
	Enabled            bool       `msgpack:"en"`
	MinPrefixLength    int        `msgpack:"min"`
	MaxSuggestions     int        `msgpack:"max"`
	Style              string     `msgpack:"st"`
	WritingStyle       string     `msgpack:"ws"`
	TriggerMode        string     `msgpack:"mode"`
	TriggerEveryNChars int        `msgpack:"every"`
	PauseThresholdMs   int        `msgpack:"pause"`
	TopicsOfInterest   []string   `msgpack:"topics"`
	Experience         Experience `msgpack:"x"`
}

// ProfileEntry - one profile with display labels
type ProfileEntry struct {
	UserID           string   `msgpack:"u"`
	CTR              float64  `msgpack:"ctr"`
	CTRCategory      string   `msgpack:"ctr_cat"`
	CTRLabel         string   `msgpack:"ctr_label"`
	TypingSpeed      string   `msgpack:"speed"`
	SpeedLabel       string   `msgpack:"speed_label"`
	TriggerMode      string   `msgpack:"mode"`
	TriggerDetails   string   `msgpack:"details"`
	Status           string   `msgpack:"status"`
	SuggestionsShown int      `msgpack:"shown"`
	StyleLabel       string   `msgpack:"style"`
	TopicsOfInterest []string `msgpack:"topics"`
	Description      string   `msgpack:"desc"`
}

// ProfilesResponse - profiles listing
type ProfilesResponse struct {
	ID       string         `msgpack:"id"`
	Profiles []ProfileEntry `msgpack:"profiles"`
}

// AIResponse - completions from the hosted model. Reason is set when the list is
// empty because of a failure rather than a lack of matches.
type AIResponse struct {
	ID          string   `msgpack:"id"`
	Suggestions []string `msgpack:"s"`
	Source      string   `msgpack:"src"`
	Reason      string   `msgpack:"r,omitempty"`
}

// SettingsResponse - per-user toggle state
type SettingsResponse struct {
	ID      string `msgpack:"id"`
	UserID  string `msgpack:"u"`
	Enabled bool   `msgpack:"e"`
}

// StatsResponse - dataset statistics
type StatsResponse struct {
	ID          string `msgpack:"id"`
	Entries     int    `msgpack:"entries"`
	Users       int    `msgpack:"users"`
	Sessions    int    `msgpack:"sessions"`
	Suggestions int    `msgpack:"suggestions"`
	Source      string `msgpack:"source"`
}

// StatusResponse - ready, health and reload acknowledgements
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds error information for any failed request
type ErrorResponse struct {
	ID     string `msgpack:"id"`
	Error  string `msgpack:"e"`
	Code   int    `msgpack:"c"`
	Reason string `msgpack:"r"`
}

// Machine-readable failure reasons.
const (
	ReasonBadRequest     = "bad_request"
	ReasonUnknownCommand = "unknown_command"
	ReasonRateLimited    = "rate_limited"
	ReasonAIUnavailable  = "ai_unavailable"
	ReasonInternal       = "internal"
)
