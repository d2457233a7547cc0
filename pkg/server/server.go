package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/adaptserve/internal/cache"
	"github.com/bastiangx/adaptserve/internal/llm"
	"github.com/bastiangx/adaptserve/internal/logger"
	"github.com/bastiangx/adaptserve/internal/settings"
	"github.com/bastiangx/adaptserve/pkg/behavior"
	"github.com/bastiangx/adaptserve/pkg/config"
	"github.com/bastiangx/adaptserve/pkg/policy"
	"github.com/bastiangx/adaptserve/pkg/suggest"
)

// pruneEvery is how many requests pass between sweeps of closed rate limit windows.
const pruneEvery = 256

// AISuggester requests completions from a hosted model. *llm.Suggester implements it.
type AISuggester interface {
	Suggest(ctx context.Context, req llm.Request) (llm.Result, error)
}

// Loader builds a dataset from a log path. An empty path means the bundled sample.
type Loader func(path string) (*behavior.Dataset, error)

// Options carries the collaborators of a Server. Nil fields get defaults:
// an in-memory settings store, no AI source, a limiter built from the server
// config and behavior.LoadDataset.
type Options struct {
	Store   settings.Store
	AI      AISuggester
	Limiter *cache.Limiter
	Loader  Loader
}

// Server handles the IPC for autosuggest
type Server struct {
	mu      sync.RWMutex
	engine  suggest.ISuggester
	dataset *behavior.Dataset

	config   *config.Config
	store    settings.Store
	ai       AISuggester
	limiter  *cache.Limiter
	load     Loader
	logger   *log.Logger
	requests int
}

// NewServer creates a server over ds.
func NewServer(ds *behavior.Dataset, cfg *config.Config, opts Options) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Store == nil {
		opts.Store = settings.NewMemoryStore()
	}
	if opts.Limiter == nil {
		opts.Limiter = cache.NewLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow(), nil)
	}
	if opts.Loader == nil {
		opts.Loader = behavior.LoadDataset
	}
	return &Server{
		engine:  suggest.FromDataset(ds),
		dataset: ds,
		config:  cfg,
		store:   opts.Store,
		ai:      opts.AI,
		limiter: opts.Limiter,
		load:    opts.Loader,
		logger:  logger.New("server"),
	}
}

// Start serves requests from stdin and writes responses to stdout.
func (s *Server) Start(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve processes msgpack requests from r until EOF or ctx is done.
// A request that is not a valid envelope gets an error response; a stream
// that cannot be decoded at all ends the loop.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	dec := msgpack.NewDecoder(r)
	enc := msgpack.NewEncoder(w)

	s.logger.Debug("Starting server")
	if err := enc.Encode(StatusResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("writing ready signal: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var raw msgpack.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, stopping server")
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		if err := enc.Encode(s.Handle(ctx, raw)); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
}

// Handle decodes one msgpack request and returns its response value.
func (s *Server) Handle(ctx context.Context, raw []byte) any {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Warnf("Invalid request: %v", err)
		return ErrorResponse{Error: "invalid request envelope", Code: 400, Reason: ReasonBadRequest}
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	s.maintain()
	s.logger.Debug("Request", "id", req.ID, "cmd", req.Command, "user", req.UserID)

	switch req.Command {
	case "suggest":
		return s.handleSuggest(ctx, req)
	case "config":
		return s.handleConfig(req)
	case "profiles":
		return s.handleProfiles(req)
	case "ai":
		return s.handleAI(ctx, req)
	case "settings":
		return s.handleSettings(ctx, req)
	case "stats":
		return s.handleStats(req)
	case "reload":
		return s.handleReload(req)
	case "health":
		return StatusResponse{ID: req.ID, Status: "ok"}
	default:
		return errorResponse(req.ID, 400, ReasonUnknownCommand, "unknown command: %q", req.Command)
	}
}

func errorResponse(id string, code int, reason, format string, args ...any) ErrorResponse {
	return ErrorResponse{ID: id, Error: fmt.Sprintf(format, args...), Code: code, Reason: reason}
}

func (s *Server) maintain() {
	s.mu.Lock()
	s.requests++
	due := s.requests%pruneEvery == 0
	s.mu.Unlock()
	if due {
		if n := s.limiter.Prune(); n > 0 {
			s.logger.Debugf("Pruned %d rate limit windows", n)
		}
	}
}

func (s *Server) current() (suggest.ISuggester, *behavior.Dataset) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, s.dataset
}

// enabled reads the per-user toggle. A failing store leaves autosuggest on.
func (s *Server) enabled(ctx context.Context, userID string) bool {
	on, err := s.store.Enabled(ctx, userID)
	if err != nil {
		s.logger.Warnf("Reading settings for %s: %v", userID, err)
		return true
	}
	return on
}

func (s *Server) handleSuggest(ctx context.Context, req Request) any {
	if max := s.config.Server.MaxPrefix; max > 0 && utf8.RuneCountInString(req.Prefix) > max {
		return errorResponse(req.ID, 400, ReasonBadRequest, "prefix exceeds maximum length of %d characters", max)
	}
	engine, _ := s.current()

	start := time.Now()
	var res suggest.Result
	if s.enabled(ctx, req.UserID) {
		res = engine.Suggest(req.UserID, req.Prefix)
	} else {
		res = engine.Disabled(req.UserID)
	}
	elapsed := time.Since(start)

	items := make([]Suggestion, len(res.Suggestions))
	for i, sg := range res.Suggestions {
		items[i] = Suggestion{Text: sg.Text, Position: sg.Position, Score: sg.Score, Source: sg.Source.String()}
	}
	return SuggestResponse{
		ID:            req.ID,
		Enabled:       res.Enabled,
		Suggestions:   items,
		Count:         len(items),
		Style:         res.Style.String(),
		TriggerReason: res.TriggerReason,
		Experience:    experience(res.Experience),
		Profile: ProfileSummary{
			CTRCategory: res.Profile.CTRCategory,
			TypingSpeed: res.Profile.TypingSpeed,
			Region:      res.Profile.Region,
		},
		TimeTaken: elapsed.Microseconds(),
	}
}

func experience(x policy.Experience) Experience {
	return Experience{
		ShowPositionHints:   x.ShowPositionHints,
		StableOrdering:      x.StableOrdering,
		EmphasizeTopResult:  x.EmphasizeTopResult,
		ShowTypingIndicator: x.ShowTypingIndicator,
		AnimationSpeed:      x.AnimationSpeed.String(),
	}
}

func (s *Server) handleConfig(req Request) any {
	engine, _ := s.current()
	cfg := engine.Config(req.UserID)
	return ConfigResponse{
		ID:                 req.ID,
		UserID:             req.UserID,
		Enabled:            cfg.Enabled,
		MinPrefixLength:    cfg.MinPrefixLength,
		MaxSuggestions:     cfg.MaxSuggestions,
		Style:              cfg.Style.String(),
		WritingStyle:       cfg.WritingStyle,
		TriggerMode:        cfg.TriggerMode.String(),
		TriggerEveryNChars: cfg.TriggerEveryNChars,
		PauseThresholdMs:   cfg.PauseThresholdMs,
		TopicsOfInterest:   cfg.TopicsOfInterest,
		Experience:         experience(cfg.Experience),
	}
}

func (s *Server) handleProfiles(req Request) any {
	_, ds := s.current()
	ids := ds.Profiles.IDs()
	entries := make([]ProfileEntry, 0, len(ids))
	for _, id := range ids {
		p := ds.Profiles[id]
		info := policy.Describe(p)
		entries = append(entries, ProfileEntry{
			UserID:           id,
			CTR:              p.CTR,
			CTRCategory:      p.CTRCategory.String(),
			CTRLabel:         info.CTRLabel,
			TypingSpeed:      p.TypingCategory.String(),
			SpeedLabel:       info.SpeedLabel,
			TriggerMode:      info.TriggerMode,
			TriggerDetails:   info.TriggerDetails,
			Status:           info.Status,
			SuggestionsShown: info.SuggestionsShown,
			StyleLabel:       info.StyleLabel,
			TopicsOfInterest: info.TopicsOfInterest,
			Description:      info.Description,
		})
	}
	return ProfilesResponse{ID: req.ID, Profiles: entries}
}

func (s *Server) handleAI(ctx context.Context, req Request) any {
	prefix := strings.ToLower(strings.TrimSpace(req.Prefix))
	if prefix == "" {
		return errorResponse(req.ID, 400, ReasonBadRequest, "prefix is required")
	}
	empty := func(reason string) AIResponse {
		return AIResponse{ID: req.ID, Suggestions: []string{}, Source: llm.SourceAI, Reason: reason}
	}
	if s.ai == nil {
		return empty(ReasonAIUnavailable)
	}
	if !s.enabled(ctx, req.UserID) {
		return empty(suggest.ReasonDisabledForUser)
	}

	engine, _ := s.current()
	cfg := engine.Config(req.UserID)
	if cfg.TriggerMode == policy.TriggerDisabled {
		return empty(suggest.ReasonTriggerDisabled)
	}

	key := req.UserID
	if key == "" {
		key = "anonymous"
	}
	if err := s.limiter.Allow(key); err != nil {
		return errorResponse(req.ID, 429, ReasonRateLimited, "%v", err)
	}

	aiReq := llm.Request{
		Prefix:         prefix,
		MaxSuggestions: cfg.MaxSuggestions,
		Style:          cfg.Style,
		WritingStyle:   cfg.WritingStyle,
	}
	if p := engine.Profile(req.UserID); p != nil {
		aiReq.PastQueries = p.PastQueries
	}

	res, err := s.ai.Suggest(ctx, aiReq)
	if err != nil {
		s.logger.Warnf("AI suggestions for %q failed: %v", prefix, err)
		return empty(ReasonAIUnavailable)
	}
	return AIResponse{ID: req.ID, Suggestions: res.Suggestions, Source: res.Source}
}

func (s *Server) handleSettings(ctx context.Context, req Request) any {
	if req.UserID == "" {
		return errorResponse(req.ID, 400, ReasonBadRequest, "user id is required")
	}
	if req.Enabled != nil {
		if err := s.store.SetEnabled(ctx, req.UserID, *req.Enabled); err != nil {
			s.logger.Errorf("Saving settings for %s: %v", req.UserID, err)
			return errorResponse(req.ID, 500, ReasonInternal, "failed to save settings")
		}
	}
	on, err := s.store.Enabled(ctx, req.UserID)
	if err != nil {
		s.logger.Errorf("Reading settings for %s: %v", req.UserID, err)
		return errorResponse(req.ID, 500, ReasonInternal, "failed to read settings")
	}
	return SettingsResponse{ID: req.ID, UserID: req.UserID, Enabled: on}
}

func (s *Server) handleStats(req Request) any {
	_, ds := s.current()
	return StatsResponse{
		ID:          req.ID,
		Entries:     ds.Stats.TotalEntries,
		Users:       ds.Stats.TotalUsers,
		Sessions:    ds.Stats.TotalSessions,
		Suggestions: ds.Stats.TotalSuggestions,
		Source:      ds.Source,
	}
}

func (s *Server) handleReload(req Request) any {
	path := req.Path
	if path == "" {
		path = s.config.Dataset.Path
	}
	ds, err := s.load(path)
	if err != nil {
		s.logger.Warnf("Reload failed: %v", err)
		return errorResponse(req.ID, 400, ReasonBadRequest, "reload failed: %v", err)
	}

	s.mu.Lock()
	s.dataset = ds
	s.engine = suggest.FromDataset(ds)
	s.mu.Unlock()

	s.logger.Infof("Reloaded dataset from %s", ds.Source)
	return StatusResponse{ID: req.ID, Status: "reloaded"}
}
