package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/adaptserve/internal/cache"
)

// DefaultCacheTTL is how long a non-empty completion stays cached.
const DefaultCacheTTL = 5 * time.Minute

const defaultMaxSuggestions = 4

// ErrEmptyPrefix rejects a request without a prefix.
var ErrEmptyPrefix = errors.New("prefix is required")

// Source values of a Result.
const (
	SourceAI    = "ai"
	SourceCache = "cache"
)

// Completer turns chat messages into model output. *Client implements it.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Result is the output of Suggester.Suggest.
type Result struct {
	Suggestions []string
	Source      string
}

// Suggester builds prompts, parses completions and caches them.
type Suggester struct {
	completer Completer
	cache     *cache.Cache[[]string]
}

// NewSuggester wraps completer with a response cache. A nil cache disables caching.
func NewSuggester(completer Completer, responses *cache.Cache[[]string]) *Suggester {
	return &Suggester{completer: completer, cache: responses}
}

func cacheKey(prefix string, req Request) string {
	return fmt.Sprintf("%s:%d:%s:%s", prefix, req.MaxSuggestions, req.Style, req.WritingStyle)
}

// Suggest returns up to req.MaxSuggestions completions of req.Prefix.
// Only non-empty results are cached.
func (s *Suggester) Suggest(ctx context.Context, req Request) (Result, error) {
	normalized := strings.ToLower(strings.TrimSpace(req.Prefix))
	if normalized == "" {
		return Result{Suggestions: []string{}}, ErrEmptyPrefix
	}
	if req.MaxSuggestions <= 0 {
		req.MaxSuggestions = defaultMaxSuggestions
	}

	key := cacheKey(normalized, req)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return Result{Suggestions: cached, Source: SourceCache}, nil
		}
	}

	content, err := s.completer.Complete(ctx, BuildMessages(req))
	if err != nil {
		return Result{Suggestions: []string{}}, err
	}
	suggestions := ParseSuggestions(content, req.Prefix, req.MaxSuggestions)
	log.Debugf("Parsed %d suggestions for %q", len(suggestions), req.Prefix)

	if s.cache != nil && len(suggestions) > 0 {
		s.cache.Set(key, suggestions)
	}
	return Result{Suggestions: suggestions, Source: SourceAI}, nil
}
