package main

import (
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

func TestCommandFor(t *testing.T) {
	cases := []struct {
		name string
		key  tcell.Key
		r    rune
		want sim.Command
	}{
		{"arrow_right", tcell.KeyRight, 0, sim.MoveRight},
		{"rune_a", tcell.KeyRune, 'a', sim.MoveLeft},
		{"space", tcell.KeyRune, ' ', sim.Fire},
		{"enter", tcell.KeyEnter, 0, sim.Restart},
		{"escape", tcell.KeyEscape, 0, sim.Quit},
		{"unbound", tcell.KeyRune, 'x', sim.NoCommand},
		{"rune_ignored_for_arrows", tcell.KeyLeft, 'd', sim.MoveLeft},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := commandFor(c.key, c.r); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestHoldTracker(t *testing.T) {
	h := newHoldTracker(150 * time.Millisecond)
	t0 := time.Unix(0, 0)

	got := h.Press(sim.MoveRight, t0)
	if !reflect.DeepEqual(got, []sim.KeyEvent{{Command: sim.MoveRight, Down: true}}) {
		t.Fatalf("expected key down, got %+v", got)
	}

	// autorepeat keeps the key held without new transitions
	if got := h.Press(sim.MoveRight, t0.Add(100*time.Millisecond)); len(got) != 0 {
		t.Fatalf("expected no transitions on repeat, got %+v", got)
	}
	if got := h.Expire(t0.Add(200 * time.Millisecond)); len(got) != 0 {
		t.Fatalf("expected key still held, got %+v", got)
	}

	got = h.Expire(t0.Add(300 * time.Millisecond))
	if !reflect.DeepEqual(got, []sim.KeyEvent{{Command: sim.MoveRight, Down: false}}) {
		t.Fatalf("expected synthesized release, got %+v", got)
	}
}

func TestHoldTrackerOppositeReplaces(t *testing.T) {
	h := newHoldTracker(time.Second)
	t0 := time.Unix(0, 0)
	h.Press(sim.MoveLeft, t0)

	got := h.Press(sim.MoveRight, t0)
	want := []sim.KeyEvent{{Command: sim.MoveLeft, Down: false}, {Command: sim.MoveRight, Down: true}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestHoldTrackerRestartIsATap(t *testing.T) {
	h := newHoldTracker(time.Second)
	got := h.Press(sim.Restart, time.Unix(0, 0))
	want := []sim.KeyEvent{{Command: sim.Restart, Down: true}, {Command: sim.Restart, Down: false}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if h.Expire(time.Unix(10, 0)) != nil {
		t.Fatalf("restart must not be tracked as held")
	}
}

func TestRestartForgetsHeldKeys(t *testing.T) {
	// adversaries drop straight onto a one-hit player
	cfg := sim.DefaultConfig()
	cfg.Player.Health = 1
	cfg.Adversary.SpawnX = sim.Range{Min: 400, Max: 401}
	cfg.Adversary.PatrolRange = sim.Range{Min: 1, Max: 2}
	s := sim.NewSession(cfg, sim.NewRand(1))
	g := &game{session: s, holds: newHoldTracker(time.Second)}

	for i := 0; i < 1000 && s.Phase() != sim.Over; i++ {
		s.Advance(cfg.TickSeconds())
	}
	if s.Phase() != sim.Over {
		t.Fatalf("expected game over within 1000 ticks")
	}

	t0 := time.Unix(0, 0)
	g.press(sim.MoveRight, t0)
	g.press(sim.Restart, t0.Add(10*time.Millisecond))
	if s.Phase() != sim.Active {
		t.Fatalf("expected restart, got %v", s.Phase())
	}
	if s.Input().XAxis != 0 {
		t.Fatalf("expected restart to clear input, got %+v", s.Input())
	}

	// the key is still autorepeating through the restart
	g.press(sim.MoveRight, t0.Add(20*time.Millisecond))
	if s.Input().XAxis <= 0 {
		t.Fatalf("expected the repeated key to press again after restart, got %+v", s.Input())
	}
}

func TestToCells(t *testing.T) {
	screen := sim.Size{Width: 800, Height: 600}

	cases := []struct {
		name string
		rect common.Rect
		want cellRect
	}{
		// 80x31 grid: one HUD row plus 30 rows of 20 units each
		{"player", common.NewRect(400, 0, 95, 100), cellRect{x0: 40, y0: 26, x1: 49, y1: 31}},
		{"top_left", common.NewRect(0, 580, 20, 20), cellRect{x0: 0, y0: 1, x1: 2, y1: 2}},
		{"tiny_bullet", common.NewRect(5, 300, 1, 1), cellRect{x0: 0, y0: 15, x1: 1, y1: 16}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := toCells(c.rect, screen, 80, 31); got != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestDrawOnSimulationScreen(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer s.Fini()
	s.SetSize(80, 31)

	session := sim.NewSession(sim.DefaultConfig(), sim.NewRand(1))
	snap := session.Snapshot()
	draw(s, snap, newPalette(prefabs.PaletteSpec{}), false)

	if r, _, _, _ := s.GetContent(45, 28); r != '█' {
		t.Fatalf("expected player cell at (45, 28), got %q", r)
	}
	if r, _, _, _ := s.GetContent(1, 0); r != 'H' {
		t.Fatalf("expected HUD text in the top row, got %q", r)
	}
}

func TestSummary(t *testing.T) {
	s := sim.NewSession(sim.DefaultConfig(), sim.NewRand(1))
	s.Advance(s.Config().TickSeconds())
	s.Advance(s.Config().TickSeconds())
	if got, want := summary(9, s), "seed=9 score=0 ticks=2"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
