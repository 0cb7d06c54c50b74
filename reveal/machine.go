// Package reveal drives the show/hide animation of the effect from a single
// toggle action.
package reveal

import (
	"fmt"
	"log"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type State int

const (
	Hidden State = iota
	Revealing
	Visible
	Hiding
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case Revealing:
		return "Revealing"
	case Visible:
		return "Visible"
	case Hiding:
		return "Hiding"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	DefaultDuration    = 1.0
	DefaultOpenLabel   = "Open"
	DefaultCloseLabel  = "Close"
	DefaultOpenAccent  = "#3b82f6"
	DefaultCloseAccent = "#ef4444"
)

// Config holds the timing and button presentation of a Machine.
type Config struct {
	// Duration of a full 0 -> 1 ease in seconds.
	Duration    float32
	OpenLabel   string
	CloseLabel  string
	// A zero colorful.Color means "use the default accent", so pure black
	// cannot be configured; use a near-black such as #010101 instead.
	OpenAccent  colorful.Color
	CloseAccent colorful.Color
}

// mustHex parses a colour constant. It panics on malformed input, so it is
// only used for the package defaults.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("reveal: bad accent %q: %v", s, err))
	}
	return c
}

// DefaultConfig returns the stock blue "Open" / red "Close" configuration.
func DefaultConfig() Config {
	return Config{
		Duration:    DefaultDuration,
		OpenLabel:   DefaultOpenLabel,
		CloseLabel:  DefaultCloseLabel,
		OpenAccent:  mustHex(DefaultOpenAccent),
		CloseAccent: mustHex(DefaultCloseAccent),
	}
}

// Machine is the Hidden/Revealing/Visible/Hiding state machine. The button
// label and accent flip synchronously with Toggle; the state settles when the
// ease completes in Update.
type Machine struct {
	cfg    Config
	state  State
	value  float32
	tween  *Tween
	label  string
	accent colorful.Color
}

// New creates a machine in the Hidden state. Zero fields of cfg fall back to
// DefaultConfig, including zero (black) accents. A negative duration makes
// every toggle complete on the next Update.
func New(cfg Config) *Machine {
	def := DefaultConfig()
	if cfg.Duration < 0 {
		cfg.Duration = 0
	} else if cfg.Duration == 0 {
		cfg.Duration = def.Duration
	}
	if cfg.OpenLabel == "" {
		cfg.OpenLabel = def.OpenLabel
	}
	if cfg.CloseLabel == "" {
		cfg.CloseLabel = def.CloseLabel
	}
	if cfg.OpenAccent == (colorful.Color{}) {
		cfg.OpenAccent = def.OpenAccent
	}
	if cfg.CloseAccent == (colorful.Color{}) {
		cfg.CloseAccent = def.CloseAccent
	}
	return &Machine{
		cfg:    cfg,
		state:  Hidden,
		label:  cfg.OpenLabel,
		accent: cfg.OpenAccent,
	}
}

// Toggle reverses the direction of the animation. An in-flight ease is
// cancelled and the new one starts from the current value.
func (m *Machine) Toggle() {
	if m.tween != nil {
		m.tween.Cancel()
	}

	var target float32
	var ease Ease
	switch m.state {
	case Hidden, Hiding:
		m.state = Revealing
		m.label, m.accent = m.cfg.CloseLabel, m.cfg.CloseAccent
		target, ease = 1, EaseOutCubic
	case Revealing, Visible:
		m.state = Hiding
		m.label, m.accent = m.cfg.OpenLabel, m.cfg.OpenAccent
		target, ease = 0, EaseInCubic
	}

	distance := target - m.value
	if distance < 0 {
		distance = -distance
	}
	m.tween = NewTween(m.value, target, m.cfg.Duration*distance, ease)
	log.Printf("reveal: %s from %.3f over %.3fs", m.state, m.value, m.cfg.Duration*distance)
}

// Update advances the active ease by delta seconds and settles the state
// once it completes.
func (m *Machine) Update(delta float32) {
	if m.tween == nil {
		return
	}
	m.value = m.tween.Step(delta)
	if !m.tween.Done() {
		return
	}
	m.value = m.tween.Target()
	m.tween = nil
	switch m.state {
	case Revealing:
		m.state = Visible
	case Hiding:
		m.state = Hidden
	}
}

func (m *Machine) State() State { return m.state }

// Value is the eased reveal amount in [0,1].
func (m *Machine) Value() float32 { return m.value }

func (m *Machine) Label() string { return m.label }

func (m *Machine) Accent() colorful.Color { return m.accent }

// Visible reports whether the effect covers any pixels this frame.
func (m *Machine) Visible() bool { return m.value > 0 }

// Animating reports whether an ease is in flight.
func (m *Machine) Animating() bool { return m.tween != nil }
