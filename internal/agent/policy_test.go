package agent

import (
	"math/rand"
	"testing"

	"gridmdp/internal/env"
)

func TestRandomCoversActionSet(t *testing.T) {
	p := NewRandom(rand.New(rand.NewSource(1)))
	counts := map[env.Action]int{}
	const n = 4000
	for i := 0; i < n; i++ {
		a := p.Act(env.Position{})
		if !a.Valid() {
			t.Fatalf("invalid action %v", a)
		}
		counts[a]++
	}
	for _, a := range env.Actions() {
		if c := counts[a]; c < n/4-200 || c > n/4+200 {
			t.Errorf("action %v chosen %d times out of %d", a, c, n)
		}
	}
}

func TestRandomIsSeeded(t *testing.T) {
	a := NewRandom(rand.New(rand.NewSource(9)))
	b := NewRandom(rand.New(rand.NewSource(9)))
	for i := 0; i < 100; i++ {
		if x, y := a.Act(env.Position{}), b.Act(env.Position{}); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestFixed(t *testing.T) {
	if got := Fixed(env.Left).Act(env.Position{Row: 3}); got != env.Left {
		t.Errorf("Fixed returned %v", got)
	}
}
