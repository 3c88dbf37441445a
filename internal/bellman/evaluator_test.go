package bellman

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"gridmdp/internal/logging"
)

func mustNew(t *testing.T, opts ...Option) *Evaluator {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestHorizonStatesAreClassified(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		wantReward int
	}{
		{"five ups", "state_up_up_up_up_up", 1},
		{"four ups", "state_up_down_up_up_up", 1},
		{"three ups", "state_up_up_down_down_up", -1},
		{"no ups", "state_down_down_down_down_down", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, discount := range []float64{0, 0.5, 0.99} {
				e := mustNew(t, WithDiscount(discount))
				if got := e.Reward(tt.state); got != tt.wantReward {
					t.Errorf("Reward = %d, want %d", got, tt.wantReward)
				}
				if got := e.MaxExpectedContinuation(tt.state); got != 0 {
					t.Errorf("MaxExpectedContinuation = %v, want 0", got)
				}
				if got := e.V(tt.state); got != float64(tt.wantReward) {
					t.Errorf("discount %v: V = %v, want %d", discount, got, tt.wantReward)
				}
			}
		})
	}
}

func TestEndMarkersAreAbsorbing(t *testing.T) {
	e := mustNew(t)
	for _, end := range []State{HappyEnd, BadEnd} {
		for _, m := range Moves {
			probs := e.Transitions(end, m)
			if len(probs) != 1 || probs[end] != 1 {
				t.Errorf("Transitions(%s, %s) = %v, want self loop", end, m, probs)
			}
		}
	}
	if e.V(HappyEnd) != 1 || e.V(BadEnd) != -1 {
		t.Errorf("V(happy)=%v V(bad)=%v", e.V(HappyEnd), e.V(BadEnd))
	}
	if e.Reward(Start) != 0 {
		t.Errorf("Reward(start) = %d", e.Reward(Start))
	}
}

func TestTransitionsBeforeHorizon(t *testing.T) {
	e := mustNew(t)
	probs := e.Transitions(Start, Up)
	if len(probs) != 2 {
		t.Fatalf("got %v", probs)
	}
	if math.Abs(probs["state_up"]-0.9) > 1e-12 || math.Abs(probs["state_down"]-0.1) > 1e-12 {
		t.Errorf("unexpected distribution %v", probs)
	}

	probs = e.Transitions("state_up_up_up_up_down", Down)
	if len(probs) != 1 || probs[HappyEnd] != 1 {
		t.Errorf("horizon state should map onto happy end, got %v", probs)
	}
	probs = e.Transitions("state_down_down_down_down_down", Up)
	if len(probs) != 1 || probs[BadEnd] != 1 {
		t.Errorf("horizon state should map onto bad end, got %v", probs)
	}
}

func TestValuesOneStepFromHorizon(t *testing.T) {
	e := mustNew(t)
	tests := []struct {
		state State
		want  float64
	}{
		// both moves lead to a happy end whatever the drift
		{"state_up_up_up_up", 0.99},
		// up: 0.9*(+1) + 0.1*(-1); down is the mirror image
		{"state_up_up_up_down", 0.99 * 0.8},
		// three downs already, a bad end is certain
		{"state_down_down_down_up", -0.99},
	}
	for _, tt := range tests {
		if got := e.V(tt.state); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("V(%s) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestRecursionCost(t *testing.T) {
	e := mustNew(t)
	// C(horizon) = 1, C(d) = 1 + 4*C(d+1)
	want := map[State]int{
		"state_up_up_up_up_up": 1,
		"state_up_up_up_up":    5,
		"state_up_up_up":       21,
		"state_up_up":          85,
		"state_up":             341,
		Start:                  1365,
	}
	for s, calls := range want {
		if got := e.Evaluate(s).Calls; got != calls {
			t.Errorf("Evaluate(%s).Calls = %d, want %d", s, got, calls)
		}
	}

	// repeated evaluation pays the full price again
	if first, second := e.Evaluate(Start), e.Evaluate(Start); first.Calls != second.Calls {
		t.Errorf("calls changed between runs: %d then %d", first.Calls, second.Calls)
	}
}

func TestShorterHorizon(t *testing.T) {
	e := mustNew(t, WithHorizon(3), WithHappyThreshold(2))
	res := e.Evaluate(Start)
	if res.Calls != 85 {
		t.Errorf("Calls = %d, want 85", res.Calls)
	}
	if e.Reward("state_up_down_up") != 1 || e.Reward("state_up_down_down") != -1 {
		t.Error("threshold 2 not applied at horizon 3")
	}
}

func TestStartValueIsPositive(t *testing.T) {
	e := mustNew(t)
	v := e.V(Start)
	if v <= 0 || v >= 1 {
		t.Errorf("V(start) = %v, want a value in (0, 1)", v)
	}
}

func TestMemoAgreesWithPlainRecursion(t *testing.T) {
	e := mustNew(t)
	memo := NewMemo(e)

	states := []State{Start}
	for depth := 0; depth < e.Horizon(); depth++ {
		var next []State
		for _, s := range states {
			if got, want := memo.V(s), e.V(s); math.Abs(got-want) > 1e-12 {
				t.Errorf("memo V(%s) = %v, plain %v", s, got, want)
			}
			next = append(next, s.Extend(Up), s.Extend(Down))
		}
		states = next
	}
}

func TestMemoExpandsEachStateOnce(t *testing.T) {
	memo := NewMemo(mustNew(t))
	first := memo.Evaluate(Start)
	// 1 + 2 + 4 + 8 + 16 + 32 distinct paths up to the horizon
	if first.Calls != 63 {
		t.Errorf("first Calls = %d, want 63", first.Calls)
	}
	if memo.Cached() != 63 {
		t.Errorf("Cached = %d, want 63", memo.Cached())
	}
	if again := memo.Evaluate(Start); again.Calls != 0 || again.Value != first.Value {
		t.Errorf("second evaluation = %+v, want cached %v", again, first.Value)
	}
}

func TestTraceLogging(t *testing.T) {
	var buf bytes.Buffer
	e := mustNew(t, WithLogger(logging.NewLogger("trace", &buf)))

	res := e.Evaluate("state_up_up_up_up")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != res.Calls {
		t.Fatalf("got %d trace lines, want %d", len(lines), res.Calls)
	}
	if !strings.Contains(lines[len(lines)-1], "state=state_up_up_up_up") {
		t.Errorf("last trace line should be the root: %s", lines[len(lines)-1])
	}

	buf.Reset()
	quiet := mustNew(t, WithLogger(logging.NewLogger("info", &buf)))
	quiet.V(Start)
	if buf.Len() != 0 {
		t.Errorf("trace records leaked at info level: %q", buf.String())
	}
}

func TestNewRejectsBadParameters(t *testing.T) {
	for name, opt := range map[string]Option{
		"horizon":   WithHorizon(0),
		"discount":  WithDiscount(1.5),
		"move prob": WithMoveProb(-0.1),
		"threshold": WithHappyThreshold(-1),
	} {
		if _, err := New(opt); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseState(t *testing.T) {
	valid := []string{"state", "state_up_down", " state_up ", "happy_end", "bad_end"}
	for _, raw := range valid {
		if _, err := ParseState(raw); err != nil {
			t.Errorf("ParseState(%q): %v", raw, err)
		}
	}
	invalid := []string{"", "up_up", "state_left", "state__up"}
	for _, raw := range invalid {
		if _, err := ParseState(raw); !errors.Is(err, ErrInvalidState) {
			t.Errorf("ParseState(%q): expected ErrInvalidState, got %v", raw, err)
		}
	}
}

func TestStateHelpers(t *testing.T) {
	s := Start.Extend(Up).Extend(Down).Extend(Up)
	if s != "state_up_down_up" {
		t.Fatalf("Extend built %q", s)
	}
	if s.Depth() != 3 || s.UpCount() != 2 {
		t.Errorf("Depth=%d UpCount=%d", s.Depth(), s.UpCount())
	}
	if Start.Depth() != 0 {
		t.Errorf("Start depth = %d", Start.Depth())
	}
	if Up.Opposite() != Down || Down.Opposite() != Up {
		t.Error("Opposite is wrong")
	}
}
