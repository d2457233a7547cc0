// Package cli replays typed lines through the trigger state machine so trigger
// modes and ranking can be watched per user in real time.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/adaptserve/internal/cache"
	"github.com/bastiangx/adaptserve/internal/llm"
	"github.com/bastiangx/adaptserve/internal/logger"
	"github.com/bastiangx/adaptserve/pkg/behavior"
	"github.com/bastiangx/adaptserve/pkg/policy"
	"github.com/bastiangx/adaptserve/pkg/suggest"
	"github.com/bastiangx/adaptserve/pkg/trigger"
)

const defaultKeystroke = 300 * time.Millisecond

// AISource requests completions from a hosted model. *llm.Suggester implements it.
type AISource interface {
	Suggest(ctx context.Context, req llm.Request) (llm.Result, error)
}

// Options configures an InputHandler.
type Options struct {
	UserID string
	// SimulateTyping replays a line one keystroke at a time at the user's
	// typing speed. Otherwise the whole line arrives as one input.
	SimulateTyping bool
	AI             AISource
	// Memo is shared by the per-line AI fetchers. May be nil.
	Memo     *cache.Cache[[]string]
	Debounce time.Duration
}

// InputHandler reads lines from the terminal and shows what a user would see
// while typing them.
type InputHandler struct {
	engine   suggest.ISuggester
	profiles behavior.Profiles
	userID   string
	simulate bool
	enabled  bool
	ai       AISource
	memo     *cache.Cache[[]string]
	debounce time.Duration
	out      io.Writer
	logger   *log.Logger
}

// NewInputHandler creates a handler that renders to out.
func NewInputHandler(engine suggest.ISuggester, profiles behavior.Profiles, out io.Writer, opts Options) *InputHandler {
	if opts.Debounce <= 0 {
		opts.Debounce = trigger.DefaultFetchDelay
	}
	return &InputHandler{
		engine:   engine,
		profiles: profiles,
		userID:   opts.UserID,
		simulate: opts.SimulateTyping,
		enabled:  true,
		ai:       opts.AI,
		memo:     opts.Memo,
		debounce: opts.Debounce,
		out:      out,
		logger:   logger.NewWithConfig("cli", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start reads lines from r until EOF, :quit or ctx is done.
func (h *InputHandler) Start(ctx context.Context, r io.Reader) error {
	reader := bufio.NewReader(r)
	fmt.Fprintln(h.out, titleStyle.Render("AdaptServe CLI"))
	fmt.Fprintln(h.out, "type a query and press Enter, :help lists commands (Ctrl+C to exit)")
	h.renderUser()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			if quit := h.handleLine(ctx, strings.TrimRight(line, "\r\n")); quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleLine runs a command or types the line. It reports whether to quit.
func (h *InputHandler) handleLine(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		h.typeLine(ctx, line)
		return false
	}

	fields := strings.Fields(trimmed)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		renderHelp(h.out)
	case ":users":
		renderUsers(h.out, h.profiles)
	case ":user":
		if len(fields) < 2 {
			h.renderUser()
			break
		}
		h.userID = fields[1]
		if h.profiles.Get(h.userID) == nil {
			h.logger.Warnf("Unknown user %s, default config applies", h.userID)
		}
		h.renderUser()
	case ":config":
		renderConfig(h.out, h.userID, h.engine.Config(h.userID))
	case ":on", ":off":
		h.enabled = fields[0] == ":on"
		fmt.Fprintf(h.out, "autosuggest %s for %s\n", onOff(h.enabled), displayUser(h.userID))
	default:
		h.logger.Errorf("Unknown command: %s", fields[0])
	}
	return false
}

// typeLine feeds text to a fresh trigger machine and renders every fire.
// Time is simulated, so a line replays instantly regardless of typing speed.
func (h *InputHandler) typeLine(ctx context.Context, text string) {
	cfg := h.engine.Config(h.userID)
	sched := trigger.NewManualScheduler()

	fires := 0
	show := func(prefix, cause string) {
		fires++
		h.show(prefix, cause)
	}
	machine := trigger.NewMachine(cfg, sched, func(prefix string) { show(prefix, "pause") })

	var fetcher *trigger.Fetcher
	if h.ai != nil && h.enabled && cfg.TriggerMode != policy.TriggerDisabled {
		fetcher = trigger.NewFetcher(ctx, trigger.FetcherConfig{
			UserID:          h.userID,
			Style:           cfg.Style,
			MinPrefixLength: cfg.MinPrefixLength,
			Delay:           h.debounce,
		}, sched, h.memo, h.fetchFunc(cfg))
	}

	inputs := []string{text}
	if h.simulate {
		inputs = keystrokes(text)
	}
	keystroke := h.keystroke()
	for _, typed := range inputs {
		if d := machine.OnInput(typed); d.Fire {
			show(d.Prefix, cfg.TriggerMode.String())
		}
		if fetcher != nil {
			fetcher.Update(typed)
		}
		sched.Advance(keystroke)
	}
	// let pending pause and fetch timers run out
	settle := max(time.Duration(cfg.PauseThresholdMs)*time.Millisecond, h.debounce)
	sched.Advance(settle)

	if fires == 0 {
		fmt.Fprintf(h.out, "%s no suggestions shown (mode %s, min prefix %d)\n",
			mutedStyle.Render("·"), cfg.TriggerMode, cfg.MinPrefixLength)
	}
	if fetcher != nil {
		renderSuggestions(h.out, "ai", fetcher.Suggestions())
	}
	h.logger.Debugf("Replayed %d inputs for %s, machine %s, %d fires", len(inputs), displayUser(h.userID), machine.State(), fires)
}

func (h *InputHandler) show(prefix, cause string) {
	var res suggest.Result
	if h.enabled {
		res = h.engine.Suggest(h.userID, prefix)
	} else {
		res = h.engine.Disabled(h.userID)
	}
	fmt.Fprintf(h.out, "%s %q %s\n", promptStyle.Render("["+cause+"]"), prefix, mutedStyle.Render(res.TriggerReason))
	renderSuggestions(h.out, "", res.Suggestions)
}

func (h *InputHandler) fetchFunc(cfg policy.Config) trigger.FetchFunc {
	pastQueries := ""
	if p := h.engine.Profile(h.userID); p != nil {
		pastQueries = p.PastQueries
	}
	return func(ctx context.Context, prefix string) ([]string, error) {
		res, err := h.ai.Suggest(ctx, llm.Request{
			Prefix:         prefix,
			MaxSuggestions: cfg.MaxSuggestions,
			Style:          cfg.Style,
			WritingStyle:   cfg.WritingStyle,
			PastQueries:    pastQueries,
		})
		if err != nil {
			return nil, err
		}
		return res.Suggestions, nil
	}
}

// keystroke is the simulated delay between two keys for the current user.
func (h *InputHandler) keystroke() time.Duration {
	if p := h.engine.Profile(h.userID); p != nil && p.AvgTypingSpeedMs > 0 {
		return time.Duration(p.AvgTypingSpeedMs * float64(time.Millisecond))
	}
	return defaultKeystroke
}

func (h *InputHandler) renderUser() {
	fmt.Fprintf(h.out, "user: %s, typing %s per key\n", displayUser(h.userID), h.keystroke())
}

// keystrokes returns the successive input snapshots while text is typed.
func keystrokes(text string) []string {
	out := make([]string, 0, len(text))
	for i := range text {
		if i > 0 {
			out = append(out, text[:i])
		}
	}
	return append(out, text)
}

func displayUser(id string) string {
	if id == "" {
		return "anonymous"
	}
	return id
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
