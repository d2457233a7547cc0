package trigger

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bastiangx/adaptserve/internal/cache"
	"github.com/bastiangx/adaptserve/pkg/policy"
	"github.com/bastiangx/adaptserve/pkg/suggest"
)

func config(mode policy.TriggerMode, min, every, pause int) policy.Config {
	cfg := policy.Default()
	cfg.TriggerMode = mode
	cfg.MinPrefixLength = min
	cfg.TriggerEveryNChars = every
	cfg.PauseThresholdMs = pause
	return cfg
}

type step struct {
	input string
	state State
	fire  bool
}

func runSteps(t *testing.T, m *Machine, steps []step) {
	t.Helper()
	for i, s := range steps {
		d := m.OnInput(s.input)
		if d.State != s.state || d.Fire != s.fire {
			t.Errorf("step %d %q: got %v fire=%v, want %v fire=%v", i, s.input, d.State, d.Fire, s.state, s.fire)
		}
	}
}

func TestMachineDisabledNeverShows(t *testing.T) {
	m := NewMachine(config(policy.TriggerDisabled, 1, 999, 0), NewManualScheduler(), nil)
	runSteps(t, m, []step{
		{"", Idle, false},
		{"e", Armed, false},
		{"explain", Armed, false},
	})
}

func TestMachineContinuous(t *testing.T) {
	m := NewMachine(config(policy.TriggerContinuous, 2, 1, 0), NewManualScheduler(), nil)
	runSteps(t, m, []step{
		{"h", Idle, false},
		{"ho", Visible, true},
		{"how", Visible, true},
		{"ho", Visible, true},
		{"", Idle, false},
	})
}

func TestMachineInterval(t *testing.T) {
	m := NewMachine(config(policy.TriggerInterval, 2, 3, 0), NewManualScheduler(), nil)
	runSteps(t, m, []step{
		{"h", Idle, false},
		{"he", Visible, true},
		{"hel", Visible, false},
		{"hell", Visible, false},
		{"hello", Visible, true},
		{"hello ", Visible, false},
		{"hello w", Visible, false},
		{"h", Idle, false},
		{"he", Visible, true},
	})
}

func TestMachineIntervalCountsTrimmedLength(t *testing.T) {
	m := NewMachine(config(policy.TriggerInterval, 2, 2, 0), NewManualScheduler(), nil)
	runSteps(t, m, []step{
		{"  ab", Visible, true},
		{"  ab  ", Visible, false},
		{"  abc", Visible, false},
		{"  abcd", Visible, true},
	})
}

func TestMachinePauseDebounces(t *testing.T) {
	sched := NewManualScheduler()
	var fired []string
	m := NewMachine(config(policy.TriggerPause, 3, 999, 500), sched, func(p string) { fired = append(fired, p) })

	runSteps(t, m, []step{{"exp", Armed, false}})
	sched.Advance(400 * time.Millisecond)
	runSteps(t, m, []step{{"expl", Armed, false}})
	sched.Advance(400 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired before the pause elapsed: %v", fired)
	}
	sched.Advance(100 * time.Millisecond)
	if !reflect.DeepEqual(fired, []string{"expl"}) {
		t.Fatalf("fired = %v, want [expl]", fired)
	}
	if m.State() != Visible {
		t.Errorf("state = %v, want visible", m.State())
	}
	if sched.Pending() != 0 {
		t.Errorf("%d timers still pending", sched.Pending())
	}
}

func TestMachinePauseCancelledByShrinking(t *testing.T) {
	sched := NewManualScheduler()
	fires := 0
	m := NewMachine(config(policy.TriggerPause, 3, 999, 500), sched, func(string) { fires++ })

	m.OnInput("expl")
	if d := m.OnInput("ex"); d.State != Idle {
		t.Errorf("state = %v, want idle", d.State)
	}
	sched.Advance(time.Second)

	m.OnInput("expl")
	m.OnInput("")
	sched.Advance(time.Second)

	if fires != 0 {
		t.Errorf("pending pause fired %d times after shrinking", fires)
	}
}

func TestMachineReset(t *testing.T) {
	sched := NewManualScheduler()
	fires := 0
	m := NewMachine(config(policy.TriggerPause, 1, 999, 300), sched, func(string) { fires++ })

	m.OnInput("what")
	m.Reset()
	sched.Advance(time.Second)
	if fires != 0 || m.State() != Idle {
		t.Errorf("reset machine fired %d times, state %v", fires, m.State())
	}

	m.OnInput("what")
	sched.Advance(300 * time.Millisecond)
	m.Hide()
	if fires != 1 || m.State() != Armed {
		t.Errorf("after hide: fires=%d state=%v", fires, m.State())
	}
}

type fakeSource struct {
	calls   []string
	results map[string][]string
	err     error
	during  func(prefix string)
}

func (s *fakeSource) fetch(_ context.Context, prefix string) ([]string, error) {
	s.calls = append(s.calls, prefix)
	if s.during != nil {
		s.during(prefix)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results[prefix], nil
}

func newFetcher(t *testing.T, src *fakeSource, memo *cache.Cache[[]string]) (*Fetcher, *ManualScheduler) {
	t.Helper()
	if memo == nil {
		var err error
		memo, err = cache.New[[]string](cache.Options{})
		if err != nil {
			t.Fatal(err)
		}
	}
	sched := NewManualScheduler()
	cfg := FetcherConfig{UserID: "USER_004_MICHAEL", Style: policy.StyleConversational, MinPrefixLength: 2}
	return NewFetcher(context.Background(), cfg, sched, memo, src.fetch), sched
}

func suggestionTexts(s []suggest.Suggestion) []string {
	out := make([]string, len(s))
	for i, x := range s {
		out[i] = x.Text
	}
	return out
}

func TestFetcherDebounces(t *testing.T) {
	src := &fakeSource{results: map[string][]string{"how t": {"how to cook rice", "how to travel cheap"}}}
	f, sched := newFetcher(t, src, nil)

	f.Update("h")
	f.Update("how")
	sched.Advance(200 * time.Millisecond)
	f.Update("how t")
	sched.Advance(299 * time.Millisecond)
	if len(src.calls) != 0 {
		t.Fatalf("fetched before the debounce elapsed: %v", src.calls)
	}
	sched.Advance(time.Millisecond)
	if !reflect.DeepEqual(src.calls, []string{"how t"}) {
		t.Fatalf("calls = %v", src.calls)
	}

	got := f.Suggestions()
	if want := []string{"how to cook rice", "how to travel cheap"}; !reflect.DeepEqual(suggestionTexts(got), want) {
		t.Errorf("suggestions = %v, want %v", suggestionTexts(got), want)
	}
	if got[1].Position != 2 || got[1].Score != 90 || got[1].Source != suggest.SourceAI {
		t.Errorf("unexpected second suggestion %+v", got[1])
	}

	f.Update("how t ")
	sched.Advance(time.Second)
	if len(src.calls) != 1 {
		t.Errorf("unchanged prefix fetched again: %v", src.calls)
	}
}

func TestFetcherMemoizesAcrossFetchers(t *testing.T) {
	memo, err := cache.New[[]string](cache.Options{})
	if err != nil {
		t.Fatal(err)
	}
	src := &fakeSource{results: map[string][]string{"plan": {"plan a trip to japan"}}}

	first, sched := newFetcher(t, src, memo)
	first.Update("plan")
	sched.Advance(DefaultFetchDelay)

	second, sched := newFetcher(t, src, memo)
	second.Update("plan")
	sched.Advance(DefaultFetchDelay)

	if len(src.calls) != 1 {
		t.Errorf("calls = %v, want one", src.calls)
	}
	if got := suggestionTexts(second.Suggestions()); !reflect.DeepEqual(got, []string{"plan a trip to japan"}) {
		t.Errorf("memoized suggestions = %v", got)
	}
	if _, ok := memo.Get(MemoKey("plan", policy.StyleConversational, "USER_004_MICHAEL")); !ok {
		t.Error("memo key missing")
	}
}

func TestFetcherDiscardsOnDivergingPrefix(t *testing.T) {
	src := &fakeSource{results: map[string][]string{"how": {"how are you"}}}
	f, sched := newFetcher(t, src, nil)

	f.Update("how")
	sched.Advance(DefaultFetchDelay)
	if len(f.Suggestions()) != 1 {
		t.Fatal("expected a suggestion for how")
	}

	f.Update("what")
	if got := f.Suggestions(); len(got) != 0 {
		t.Errorf("stale suggestions shown for a new prefix: %v", suggestionTexts(got))
	}
}

func TestFetcherDropsStaleResponse(t *testing.T) {
	src := &fakeSource{results: map[string][]string{"how": {"how are you"}}}
	f, sched := newFetcher(t, src, nil)
	src.during = func(prefix string) {
		if prefix == "how" {
			f.Update("why")
		}
	}

	f.Update("how")
	sched.Advance(DefaultFetchDelay)
	if got := f.Suggestions(); len(got) != 0 {
		t.Errorf("response for %q applied after input changed: %v", "how", suggestionTexts(got))
	}
}

func TestFetcherKeepsResponseForExtendedPrefix(t *testing.T) {
	src := &fakeSource{results: map[string][]string{
		"how to": {"how to cook rice", "how to travel cheap", "how to code in go"},
	}}
	f, sched := newFetcher(t, src, nil)
	src.during = func(prefix string) {
		if prefix == "how to" {
			f.Update("how to c")
		}
	}

	f.Update("how to")
	sched.Advance(DefaultFetchDelay)

	got := f.Suggestions()
	if want := []string{"how to cook rice", "how to code in go"}; !reflect.DeepEqual(suggestionTexts(got), want) {
		t.Errorf("suggestions = %v, want %v", suggestionTexts(got), want)
	}
	if got[1].Score != 90 || got[1].Position != 2 {
		t.Errorf("positions should follow the filtered order: %+v", got[1])
	}
}

func TestFetcherSwallowsErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream returned 500")}
	f, sched := newFetcher(t, src, nil)

	f.Update("tell me")
	sched.Advance(DefaultFetchDelay)
	if got := f.Suggestions(); len(got) != 0 {
		t.Errorf("suggestions after error: %v", suggestionTexts(got))
	}

	src.err = nil
	src.results = map[string][]string{"tell me": {"tell me a joke"}}
	f.Update("tell me")
	sched.Advance(DefaultFetchDelay)
	if len(src.calls) != 2 {
		t.Errorf("failed prefix should be retried, calls = %v", src.calls)
	}
}

func TestFetcherReset(t *testing.T) {
	src := &fakeSource{results: map[string][]string{"how": {"how are you"}}}
	f, sched := newFetcher(t, src, nil)

	f.Update("how")
	f.Reset()
	sched.Advance(time.Second)
	if len(src.calls) != 0 || len(f.Suggestions()) != 0 {
		t.Errorf("reset fetcher still active: calls=%v", src.calls)
	}
}

func TestFetcherClearsOnShortInput(t *testing.T) {
	src := &fakeSource{results: map[string][]string{"how": {"how are you", "how to cook"}}}
	f, sched := newFetcher(t, src, nil)

	f.Update("how")
	sched.Advance(DefaultFetchDelay)
	if got := f.Suggestions(); len(got) != 2 {
		t.Fatalf("suggestions for %q = %v", "how", suggestionTexts(got))
	}

	for _, text := range []string{"h", ""} {
		f.Update(text)
		if got := f.Suggestions(); len(got) != 0 {
			t.Errorf("input %q still shows %v", text, suggestionTexts(got))
		}
	}

	// retyping is served again, from the memo
	f.Update("how")
	sched.Advance(DefaultFetchDelay)
	if got := f.Suggestions(); len(got) != 2 {
		t.Errorf("suggestions after retyping = %v", suggestionTexts(got))
	}
}

func TestFetcherShortInputDropsInFlightResponse(t *testing.T) {
	src := &fakeSource{results: map[string][]string{"how": {"how are you"}}}
	f, sched := newFetcher(t, src, nil)
	src.during = func(string) { f.Update("h") }

	f.Update("how")
	sched.Advance(DefaultFetchDelay)
	if got := f.Suggestions(); len(got) != 0 {
		t.Errorf("response landed after the input was shortened: %v", suggestionTexts(got))
	}
}
