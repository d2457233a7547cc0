package trigger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/adaptserve/internal/cache"
	"github.com/bastiangx/adaptserve/internal/utils"
	"github.com/bastiangx/adaptserve/pkg/policy"
	"github.com/bastiangx/adaptserve/pkg/suggest"
)

// DefaultFetchDelay is the quiet period after the last prefix change before an AI fetch starts.
const DefaultFetchDelay = 300 * time.Millisecond

const (
	aiTop  = 100
	aiStep = 10
)

// FetchFunc requests suggestions for prefix from a network backed source.
type FetchFunc func(ctx context.Context, prefix string) ([]string, error)

// FetcherConfig identifies whose suggestions are fetched and how eagerly.
type FetcherConfig struct {
	UserID          string
	Style           policy.Style
	MinPrefixLength int
	// Delay defaults to DefaultFetchDelay.
	Delay time.Duration
}

// Fetcher debounces AI suggestion fetches for one input field.
//
// A fetch starts once the prefix has been stable for the configured delay. Results
// are memoized by prefix, style and user. A response is applied only if the input
// still extends the prefix it was requested for and no newer response was applied.
type Fetcher struct {
	mu    sync.Mutex
	ctx   context.Context
	cfg   FetcherConfig
	sched Scheduler
	memo  *cache.Cache[[]string]
	fetch FetchFunc

	current     string
	lastFetched string
	results     []string
	pending     Timer
	seq         uint64
	applied     uint64
}

// NewFetcher creates a fetcher. ctx bounds every fetch it starts; memo may be
// shared between fetchers since its keys include the user and style.
func NewFetcher(ctx context.Context, cfg FetcherConfig, sched Scheduler, memo *cache.Cache[[]string], fetch FetchFunc) *Fetcher {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultFetchDelay
	}
	if sched == nil {
		sched = WallClock()
	}
	return &Fetcher{ctx: ctx, cfg: cfg, sched: sched, memo: memo, fetch: fetch}
}

// MemoKey is the memoization key for a prefix, style and user. Prefixes differing
// only in case share a key.
func MemoKey(prefix string, style policy.Style, userID string) string {
	return fmt.Sprintf("%s:%s:%s", strings.ToLower(prefix), style, userID)
}

// Update records the current input text and schedules a fetch when needed.
func (f *Fetcher) Update(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := strings.TrimSpace(text)
	f.current = prefix
	if utf8.RuneCountInString(prefix) < f.cfg.MinPrefixLength || prefix == "" {
		// cleared or too short: nothing shown, and no in-flight response may land
		f.stopLocked()
		f.lastFetched = ""
		f.results = nil
		f.applied = f.seq
		return
	}
	if prefix == f.lastFetched {
		return
	}
	if f.lastFetched != "" && !utils.HasPrefixIgnoreCase(prefix, f.lastFetched) {
		f.results = nil
	}

	f.stopLocked()
	f.seq++
	seq := f.seq
	f.pending = f.sched.AfterFunc(f.cfg.Delay, func() { f.run(seq, prefix) })
}

func (f *Fetcher) stopLocked() {
	if f.pending != nil {
		f.pending.Stop()
		f.pending = nil
	}
}

func (f *Fetcher) run(seq uint64, origin string) {
	key := MemoKey(origin, f.cfg.Style, f.cfg.UserID)
	if f.memo != nil {
		if cached, ok := f.memo.Get(key); ok {
			f.apply(seq, origin, cached)
			return
		}
	}

	suggestions, err := f.fetch(f.ctx, origin)
	if err != nil {
		log.Warnf("AI suggestions for %q failed: %v", origin, err)
		f.mu.Lock()
		if seq > f.applied && f.current == origin {
			f.results = nil
		}
		f.mu.Unlock()
		return
	}
	if f.memo != nil && len(suggestions) > 0 {
		f.memo.Set(key, suggestions)
	}
	f.apply(seq, origin, suggestions)
}

func (f *Fetcher) apply(seq uint64, origin string, suggestions []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq <= f.applied {
		log.Debugf("Dropping superseded AI response for %q", origin)
		return
	}
	if !utils.HasPrefixIgnoreCase(f.current, origin) {
		log.Debugf("Dropping stale AI response for %q, input is now %q", origin, f.current)
		return
	}
	f.applied = seq
	f.lastFetched = origin
	f.results = append([]string(nil), suggestions...)
}

// Suggestions returns the fetched suggestions that still match the current input.
func (f *Fetcher) Suggestions() []suggest.Suggestion {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []suggest.Suggestion{}
	for _, text := range f.results {
		if !utils.HasPrefixIgnoreCase(text, f.current) {
			continue
		}
		i := len(out)
		out = append(out, suggest.Suggestion{
			Text:     text,
			Position: i + 1,
			Score:    float64(aiTop - aiStep*i),
			Source:   suggest.SourceAI,
		})
	}
	return out
}

// Reset forgets the input, the results and any pending fetch.
func (f *Fetcher) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
	f.current = ""
	f.lastFetched = ""
	f.results = nil
	f.applied = f.seq
}
