package reveal

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const frame = float32(1.0 / 60.0)

func run(m *Machine, seconds float32) {
	for elapsed := float32(0); elapsed < seconds; elapsed += frame {
		m.Update(frame)
	}
}

func TestToggleScenario(t *testing.T) {
	m := New(Config{})
	blue, _ := colorful.Hex(DefaultOpenAccent)
	red, _ := colorful.Hex(DefaultCloseAccent)

	if m.State() != Hidden || m.Label() != "Open" || m.Accent() != blue {
		t.Fatalf("Expected Hidden/Open/blue, got %s/%s/%s", m.State(), m.Label(), m.Accent().Hex())
	}
	if m.Visible() {
		t.Fatal("Expected nothing visible while hidden")
	}

	m.Toggle()
	if m.State() != Revealing {
		t.Errorf("Expected Revealing after toggle, got %s", m.State())
	}
	// label flips with the action, not with ease completion
	if m.Label() != "Close" || m.Accent() != red {
		t.Errorf("Expected Close/red immediately, got %s/%s", m.Label(), m.Accent().Hex())
	}

	run(m, 0.5)
	if m.State() != Revealing {
		t.Errorf("Expected still Revealing halfway, got %s", m.State())
	}
	run(m, 0.6)
	if m.State() != Visible || m.Value() != 1 {
		t.Fatalf("Expected Visible at 1, got %s at %v", m.State(), m.Value())
	}

	m.Toggle()
	if m.State() != Hiding || m.Label() != "Open" || m.Accent() != blue {
		t.Errorf("Expected Hiding/Open/blue, got %s/%s/%s", m.State(), m.Label(), m.Accent().Hex())
	}
	run(m, 1.1)
	if m.State() != Hidden || m.Value() != 0 {
		t.Errorf("Expected Hidden at 0, got %s at %v", m.State(), m.Value())
	}
	if m.Animating() {
		t.Error("Expected no ease in flight once settled")
	}
}

func TestRetoggleReversesFromCurrentValue(t *testing.T) {
	m := New(Config{Duration: 1})
	m.Toggle()
	run(m, 0.3)

	mid := m.Value()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("Expected a partial reveal, got %v", mid)
	}

	m.Toggle()
	if m.State() != Hiding {
		t.Fatalf("Expected Hiding after re-toggle, got %s", m.State())
	}
	m.Update(0)
	if m.Value() != mid {
		t.Errorf("Expected reverse ease to start at %v, got %v", mid, m.Value())
	}

	// the reverse ease covers only the distance travelled so far
	run(m, mid+0.05)
	if m.State() != Hidden {
		t.Errorf("Expected Hidden after %vs, got %s at %v", mid+0.05, m.State(), m.Value())
	}
}

func TestRetoggleCancelsInFlightTween(t *testing.T) {
	m := New(Config{})
	m.Toggle()
	run(m, 0.2)
	first := m.tween

	m.Toggle()
	if !first.Cancelled() {
		t.Error("Expected the superseded tween to be cancelled")
	}
	before := first.Value()
	first.Step(10)
	if first.Value() != before {
		t.Errorf("Cancelled tween advanced from %v to %v", before, first.Value())
	}
}

func TestRapidToggling(t *testing.T) {
	m := New(Config{Duration: 0.5})
	for i := 0; i < 25; i++ {
		m.Toggle()
		m.Update(frame)
		if v := m.Value(); v < 0 || v > 1 || math.IsNaN(float64(v)) {
			t.Fatalf("Value %v escaped [0,1] on toggle %d", v, i)
		}
	}
	// odd number of toggles ends revealing
	if m.State() != Revealing {
		t.Fatalf("Expected Revealing, got %s", m.State())
	}
	run(m, 0.6)
	if m.State() != Visible {
		t.Errorf("Expected Visible, got %s", m.State())
	}
}

func TestCustomConfig(t *testing.T) {
	green, _ := colorful.Hex("#22c55e")
	m := New(Config{Duration: -1, OpenLabel: "Show", CloseLabel: "Hide", CloseAccent: green})

	m.Toggle()
	if m.Label() != "Hide" || m.Accent() != green {
		t.Errorf("Expected Hide/green, got %s/%s", m.Label(), m.Accent().Hex())
	}
	m.Update(0)
	if m.State() != Visible {
		t.Errorf("Expected zero duration to settle on the first update, got %s", m.State())
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Hidden:    "Hidden",
		Revealing: "Revealing",
		Visible:   "Visible",
		Hiding:    "Hiding",
		State(9):  "State(9)",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("Expected %q, got %q", want, s.String())
		}
	}
}

func TestDefaultConfigAccents(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		got  colorful.Color
		want string
	}{
		{"open", cfg.OpenAccent, DefaultOpenAccent},
		{"close", cfg.CloseAccent, DefaultCloseAccent},
	}
	for _, tc := range tests {
		if tc.got.Hex() != tc.want {
			t.Errorf("%s accent: expected %s, got %s", tc.name, tc.want, tc.got.Hex())
		}
	}
}

func TestZeroAccentFallsBack(t *testing.T) {
	nearBlack, _ := colorful.Hex("#010101")
	m := New(Config{OpenAccent: colorful.Color{}, CloseAccent: nearBlack})
	if m.Accent().Hex() != DefaultOpenAccent {
		t.Errorf("Expected zero accent to use %s, got %s", DefaultOpenAccent, m.Accent().Hex())
	}
	m.Toggle()
	if m.Accent() != nearBlack {
		t.Errorf("Expected configured near-black accent, got %s", m.Accent().Hex())
	}
}

func TestMustHexPanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for a malformed colour")
		}
	}()
	mustHex("not-a-colour")
}
