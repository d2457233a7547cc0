// Package trigger decides, keystroke by keystroke, when suggestions are shown.
//
// States:
//   - Idle: input is shorter than the minimum prefix length. Nothing is shown.
//   - Armed: the minimum is met and the machine waits for its trigger mode.
//   - Visible: suggestions were requested and are shown.
//
// The pause mode and the AI fetch debounce use a Scheduler so tests can drive
// time by hand.
package trigger

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/adaptserve/pkg/policy"
)

// State is the display state of the machine.
type State int

const (
	Idle State = iota
	Armed
	Visible
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one input event.
type Decision struct {
	State State
	// Fire is set when suggestions should be requested for Prefix right now.
	Fire   bool
	Prefix string
}

// Machine applies a policy.Config trigger mode to a stream of input snapshots.
// It is safe for concurrent use. Delayed fires from the pause mode are reported
// through the onFire callback, which runs without the machine lock held.
type Machine struct {
	mu     sync.Mutex
	cfg    policy.Config
	sched  Scheduler
	onFire func(prefix string)

	state State
	// anchor is the trimmed length at the last fire, 0 before the first one.
	anchor  int
	pending Timer
	gen     uint64
}

// NewMachine creates a machine for cfg. A nil scheduler uses wall-clock timers;
// a nil onFire drops delayed fires.
func NewMachine(cfg policy.Config, sched Scheduler, onFire func(prefix string)) *Machine {
	if sched == nil {
		sched = WallClock()
	}
	if onFire == nil {
		onFire = func(string) {}
	}
	return &Machine{cfg: cfg, sched: sched, onFire: onFire}
}

// OnInput processes the full input text after a keystroke.
func (m *Machine) OnInput(text string) Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := strings.TrimSpace(text)
	length := utf8.RuneCountInString(prefix)
	m.cancelLocked()

	if length == 0 || length < m.cfg.MinPrefixLength {
		m.state = Idle
		m.anchor = 0
		return Decision{State: Idle, Prefix: prefix}
	}

	switch m.cfg.TriggerMode {
	case policy.TriggerContinuous:
		return m.fireLocked(prefix, length)

	case policy.TriggerInterval:
		if m.anchor == 0 || length-m.anchor >= m.cfg.TriggerEveryNChars {
			return m.fireLocked(prefix, length)
		}

	case policy.TriggerPause:
		gen := m.gen
		delay := time.Duration(m.cfg.PauseThresholdMs) * time.Millisecond
		m.pending = m.sched.AfterFunc(delay, func() { m.elapsed(gen, prefix, length) })
	}

	if m.state != Visible {
		m.state = Armed
	}
	return Decision{State: m.state, Prefix: prefix}
}

func (m *Machine) fireLocked(prefix string, length int) Decision {
	m.state = Visible
	m.anchor = length
	return Decision{State: Visible, Fire: true, Prefix: prefix}
}

func (m *Machine) elapsed(gen uint64, prefix string, length int) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.pending = nil
	m.fireLocked(prefix, length)
	m.mu.Unlock()

	m.onFire(prefix)
}

// cancelLocked stops a pending pause timer. The generation bump also covers a
// timer that already fired and is waiting for the lock.
func (m *Machine) cancelLocked() {
	m.gen++
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

// Hide closes the suggestion list without touching the interval anchor.
func (m *Machine) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
	if m.state == Visible {
		m.state = Armed
	}
}

// Reset returns to Idle, as when the input loses focus.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
	m.state = Idle
	m.anchor = 0
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
