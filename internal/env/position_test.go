package env

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
)

func TestOpposite(t *testing.T) {
	tests := []struct {
		a, want Action
	}{
		{Up, Down},
		{Down, Up},
		{Left, Right},
		{Right, Left},
	}
	for _, tt := range tests {
		if got := tt.a.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, err)
		}
	}
	if got, _ := ParseAction(" RIGHT "); got != Right {
		t.Errorf("ParseAction is not case-insensitive, got %v", got)
	}
	if _, err := ParseAction("sideways"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", err)
	}
}

func TestActionJSONUsesNames(t *testing.T) {
	data, err := json.Marshal([]Action{Up, Right})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["up","right"]` {
		t.Errorf("got %s", data)
	}
	var back []Action
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back[0] != Up || back[1] != Right {
		t.Errorf("round trip gave %v", back)
	}
}

func TestPositionIsAMapKey(t *testing.T) {
	m := map[Position]int{}
	m[Position{Row: 1, Column: 2}]++
	m[Position{Row: 1, Column: 2}]++
	if len(m) != 1 || m[Position{Row: 1, Column: 2}] != 2 {
		t.Errorf("positions with equal fields should share a key: %v", m)
	}
}

func TestSampleSkipsZeroMass(t *testing.T) {
	d := Distribution{
		{Row: 0, Column: 0}: 0,
		{Row: 0, Column: 1}: 1,
		{Row: 0, Column: 2}: 0,
	}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		p, ok := d.Sample(rng)
		if !ok || p != (Position{Row: 0, Column: 1}) {
			t.Fatalf("draw %d returned %v, %v", i, p, ok)
		}
	}
	if _, ok := (Distribution{}).Sample(rng); ok {
		t.Error("empty distribution should not sample")
	}
}

func TestAggregate(t *testing.T) {
	episodes := []EpisodeStats{
		{TotalReward: 1, Steps: 4, Outcome: OutcomeHappy},
		{TotalReward: -1, Steps: 2, Outcome: OutcomeBad},
		{TotalReward: 1, Steps: 6, Outcome: OutcomeHappy},
		{TotalReward: -1, Steps: 8, Outcome: OutcomeTruncated},
	}
	agg := Aggregate(episodes)
	if agg.NumEpisodes != 4 {
		t.Fatalf("NumEpisodes = %d", agg.NumEpisodes)
	}
	if agg.RewardMean != 0 || agg.RewardStd != 1 {
		t.Errorf("reward mean/std = %v/%v, want 0/1", agg.RewardMean, agg.RewardStd)
	}
	if agg.StepsMean != 5 {
		t.Errorf("StepsMean = %v, want 5", agg.StepsMean)
	}
	if agg.SuccessRate() != 0.5 {
		t.Errorf("SuccessRate = %v, want 0.5", agg.SuccessRate())
	}
	if empty := Aggregate(nil); empty.NumEpisodes != 0 || empty.OutcomeCounts == nil {
		t.Errorf("unexpected empty aggregate %+v", empty)
	}
}
