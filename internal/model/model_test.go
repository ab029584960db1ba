package model

import (
	"math"
	"testing"
)

func TestNormalizedPosition(t *testing.T) {
	cases := map[string]string{
		"d":   "D",
		" C ": "C",
		"rw":  "RW",
		"":    "",
	}
	for in, want := range cases {
		p := Player{Position: in}
		if got := p.NormalizedPosition(); got != want {
			t.Errorf("NormalizedPosition(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsGoalieAndForward(t *testing.T) {
	g := Player{Position: "g"}
	if !g.IsGoalie() || g.IsForward() {
		t.Error("expected lower-case g to be a goalie and not a forward")
	}
	for _, pos := range ForwardSlots {
		p := Player{Position: pos}
		if !p.IsForward() {
			t.Errorf("expected %s to be a forward", pos)
		}
	}
	d := Player{Position: "D"}
	if d.IsForward() || d.IsGoalie() {
		t.Error("defenseman misclassified")
	}
}

func TestXGAPer60_ZeroIceTime(t *testing.T) {
	p := Player{ExpectedGoalsAgainst: 2, IceTime: 0}
	got := p.XGAPer60()
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("expected finite value, got %v", got)
	}
	if got != 120 {
		t.Errorf("expected 2/1*60 = 120, got %v", got)
	}

	p.IceTime = 120
	if got := p.XGAPer60(); got != 1 {
		t.Errorf("expected 2/120*60 = 1, got %v", got)
	}
}

func TestNegativeCountsKept(t *testing.T) {
	p := Player{Giveaways: -5}
	if p.Giveaways != -5 {
		t.Errorf("expected -5 giveaways, got %d", p.Giveaways)
	}
}
