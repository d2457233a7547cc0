package server

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/adaptserve/internal/cache"
	"github.com/bastiangx/adaptserve/internal/llm"
	"github.com/bastiangx/adaptserve/pkg/behavior"
	"github.com/bastiangx/adaptserve/pkg/config"
)

type fakeAI struct {
	requests []llm.Request
	result   llm.Result
	err      error
}

func (f *fakeAI) Suggest(_ context.Context, req llm.Request) (llm.Result, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	ds, err := behavior.LoadDataset("")
	require.NoError(t, err)
	return NewServer(ds, config.DefaultConfig(), opts)
}

// exchange writes every request to the server and returns the raw responses,
// without the leading ready signal.
func exchange(t *testing.T, srv *Server, requests ...any) []msgpack.RawMessage {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}
	require.NoError(t, srv.Serve(context.Background(), &in, &out))

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, "ready", ready.Status)

	var responses []msgpack.RawMessage
	for {
		var raw msgpack.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		responses = append(responses, raw)
	}
	require.Len(t, responses, len(requests))
	return responses
}

func decode[T any](t *testing.T, raw msgpack.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, msgpack.Unmarshal(raw, &v))
	return v
}

func TestServe_HealthAndErrors(t *testing.T) {
	srv := newTestServer(t, Options{})
	out := exchange(t, srv,
		Request{ID: "h1", Command: "health"},
		Request{ID: "x1", Command: "teleport"},
		"not an envelope",
		Request{Command: "health"},
	)

	assert.Equal(t, StatusResponse{ID: "h1", Status: "ok"}, decode[StatusResponse](t, out[0]))

	unknown := decode[ErrorResponse](t, out[1])
	assert.Equal(t, "x1", unknown.ID)
	assert.Equal(t, ReasonUnknownCommand, unknown.Reason)
	assert.Equal(t, 400, unknown.Code)

	assert.Equal(t, ReasonBadRequest, decode[ErrorResponse](t, out[2]).Reason)
	assert.NotEmpty(t, decode[StatusResponse](t, out[3]).ID, "missing ids are assigned")
}

func TestServe_TruncatedStream(t *testing.T) {
	srv := newTestServer(t, Options{})
	data, err := msgpack.Marshal(Request{ID: "t", Command: "health"})
	require.NoError(t, err)

	var out bytes.Buffer
	err = srv.Serve(context.Background(), bytes.NewReader(data[:len(data)-2]), &out)
	assert.Error(t, err)
}

func TestServe_CancelledContext(t *testing.T) {
	srv := newTestServer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var in, out bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&in).Encode(Request{Command: "health"}))
	assert.ErrorIs(t, srv.Serve(ctx, &in, &out), context.Canceled)
}

func TestSuggest(t *testing.T) {
	srv := newTestServer(t, Options{})
	out := exchange(t, srv,
		Request{ID: "s1", Command: "suggest", UserID: "USER_004_MICHAEL", Prefix: "how to"},
		Request{ID: "s2", Command: "suggest", UserID: "USER_001_SANDRA", Prefix: "explain ai"},
		Request{ID: "s3", Command: "suggest", UserID: "nobody", Prefix: strings.Repeat("a", 61)},
	)

	michael := decode[SuggestResponse](t, out[0])
	assert.True(t, michael.Enabled)
	assert.Equal(t, "conversational", michael.Style)
	assert.True(t, strings.HasPrefix(michael.TriggerReason, "ctr=high"))
	require.NotEmpty(t, michael.Suggestions)
	assert.Equal(t, len(michael.Suggestions), michael.Count)
	for i, s := range michael.Suggestions {
		assert.Equal(t, i+1, s.Position)
		assert.True(t, strings.HasPrefix(strings.ToLower(s.Text), "how to"), s.Text)
	}

	sandra := decode[SuggestResponse](t, out[1])
	assert.True(t, sandra.Enabled)
	assert.Empty(t, sandra.Suggestions)
	assert.Equal(t, "prefix_too_short (need 999+ chars)", sandra.TriggerReason)
	assert.Equal(t, "zero", sandra.Profile.CTRCategory)

	assert.Equal(t, ReasonBadRequest, decode[ErrorResponse](t, out[2]).Reason)
}

func TestSettingsToggle(t *testing.T) {
	srv := newTestServer(t, Options{})
	off := false
	out := exchange(t, srv,
		Request{ID: "g", Command: "settings", UserID: "USER_005_EMMA"},
		Request{ID: "p", Command: "settings", UserID: "USER_005_EMMA", Enabled: &off},
		Request{ID: "s", Command: "suggest", UserID: "USER_005_EMMA", Prefix: "what is"},
		Request{ID: "bad", Command: "settings"},
	)

	assert.True(t, decode[SettingsResponse](t, out[0]).Enabled)
	assert.False(t, decode[SettingsResponse](t, out[1]).Enabled)

	res := decode[SuggestResponse](t, out[2])
	assert.False(t, res.Enabled)
	assert.Equal(t, "disabled_for_user", res.TriggerReason)
	assert.Empty(t, res.Suggestions)

	assert.Equal(t, ReasonBadRequest, decode[ErrorResponse](t, out[3]).Reason)
}

func TestConfigProfilesStats(t *testing.T) {
	srv := newTestServer(t, Options{})
	out := exchange(t, srv,
		Request{ID: "c", Command: "config", UserID: "USER_001_SANDRA"},
		Request{ID: "c2", Command: "config", UserID: "stranger"},
		Request{ID: "p", Command: "profiles"},
		Request{ID: "st", Command: "stats"},
	)

	sandra := decode[ConfigResponse](t, out[0])
	assert.Equal(t, "disabled", sandra.TriggerMode)
	assert.Equal(t, 999, sandra.MinPrefixLength)
	assert.Equal(t, 0, sandra.MaxSuggestions)

	stranger := decode[ConfigResponse](t, out[1])
	assert.Equal(t, "interval", stranger.TriggerMode)
	assert.Equal(t, 3, stranger.TriggerEveryNChars)
	assert.Equal(t, "natural", stranger.Style)

	profiles := decode[ProfilesResponse](t, out[2]).Profiles
	require.Len(t, profiles, 5)
	assert.Equal(t, "USER_001_SANDRA", profiles[0].UserID)
	assert.Equal(t, "Disabled", profiles[0].TriggerMode)
	assert.Equal(t, "USER_005_EMMA", profiles[4].UserID)

	stats := decode[StatsResponse](t, out[3])
	assert.Equal(t, 52, stats.Entries)
	assert.Equal(t, 5, stats.Users)
	assert.Equal(t, "embedded", stats.Source)
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	entries := []behavior.LogEntry{
		{UserID: "U1", Prefix: "pl", Time: "10:00:00", SessionID: "S1", EventID: "E1", Position: 1, Suggestion: "plan a trip", Clicked: true},
		{UserID: "U1", Prefix: "pla", Time: "10:00:01", SessionID: "S1", EventID: "E2", Position: 1, Suggestion: "plan a trip"},
	}
	require.NoError(t, os.WriteFile(path, []byte(behavior.FormatLog(entries)), 0o644))

	srv := newTestServer(t, Options{})
	out := exchange(t, srv,
		Request{ID: "r1", Command: "reload", Path: filepath.Join(t.TempDir(), "missing.csv")},
		Request{ID: "r2", Command: "reload", Path: path},
		Request{ID: "st", Command: "stats"},
		Request{ID: "s", Command: "suggest", UserID: "U1", Prefix: "pl"},
	)

	assert.Equal(t, ReasonBadRequest, decode[ErrorResponse](t, out[0]).Reason)
	assert.Equal(t, "reloaded", decode[StatusResponse](t, out[1]).Status)

	stats := decode[StatsResponse](t, out[2])
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, path, stats.Source)

	res := decode[SuggestResponse](t, out[3])
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "plan a trip", res.Suggestions[0].Text)
	assert.Equal(t, "crowd", res.Suggestions[0].Source)
}

func TestAI(t *testing.T) {
	ai := &fakeAI{result: llm.Result{Suggestions: []string{"how to cook rice"}, Source: llm.SourceAI}}
	clock := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	limiter := cache.NewLimiter(2, time.Minute, func() time.Time { return clock })
	srv := newTestServer(t, Options{AI: ai, Limiter: limiter})

	out := exchange(t, srv,
		Request{ID: "a1", Command: "ai", UserID: "USER_004_MICHAEL", Prefix: "  How to "},
		Request{ID: "a2", Command: "ai", UserID: "USER_004_MICHAEL", Prefix: "how to c"},
		Request{ID: "a3", Command: "ai", UserID: "USER_004_MICHAEL", Prefix: "how to co"},
		Request{ID: "a4", Command: "ai", UserID: "USER_001_SANDRA", Prefix: "explain"},
		Request{ID: "a5", Command: "ai", UserID: "USER_003_PRIYA", Prefix: ""},
	)

	first := decode[AIResponse](t, out[0])
	assert.Equal(t, []string{"how to cook rice"}, first.Suggestions)
	assert.Empty(t, first.Reason)

	limited := decode[ErrorResponse](t, out[2])
	assert.Equal(t, ReasonRateLimited, limited.Reason)
	assert.Equal(t, 429, limited.Code)

	assert.Equal(t, "trigger_disabled", decode[AIResponse](t, out[3]).Reason)
	assert.Equal(t, ReasonBadRequest, decode[ErrorResponse](t, out[4]).Reason)

	require.Len(t, ai.requests, 2)
	req := ai.requests[0]
	assert.Equal(t, "how to", req.Prefix)
	assert.Equal(t, 4, req.MaxSuggestions)
	assert.Equal(t, "conversational", req.Style.String())
	assert.NotEmpty(t, req.PastQueries)
}

func TestAIFailures(t *testing.T) {
	srv := newTestServer(t, Options{})
	out := exchange(t, srv, Request{ID: "n", Command: "ai", UserID: "USER_004_MICHAEL", Prefix: "how"})
	res := decode[AIResponse](t, out[0])
	assert.Equal(t, ReasonAIUnavailable, res.Reason)
	assert.NotNil(t, res.Suggestions)

	ai := &fakeAI{err: errors.New("upstream 500")}
	srv = newTestServer(t, Options{AI: ai})
	out = exchange(t, srv, Request{ID: "f", Command: "ai", UserID: "USER_004_MICHAEL", Prefix: "how"})
	res = decode[AIResponse](t, out[0])
	assert.Equal(t, ReasonAIUnavailable, res.Reason)
	assert.Empty(t, res.Suggestions)
}
