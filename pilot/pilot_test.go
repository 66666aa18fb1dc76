package pilot

import (
	"errors"
	"reflect"
	"testing"

	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/sim"
)

func snapshotWith(adversaries ...common.Point) sim.Snapshot {
	cfg := sim.DefaultConfig()
	s := sim.NewSession(cfg, sim.NewRand(1))
	snap := s.Snapshot()
	for _, p := range adversaries {
		snap.Adversaries = append(snap.Adversaries, sim.AdversaryView{
			Position: p,
			Bounds:   common.NewRect(p.X, p.Y-cfg.Adversary.Size.Height, cfg.Adversary.Size.Width, cfg.Adversary.Size.Height),
			Health:   1,
			Patrol:   "forward",
		})
	}
	return snap
}

func TestLoadDefaultScript(t *testing.T) {
	a, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Name() != DefaultScript {
		t.Fatalf("expected %q, got %q", DefaultScript, a.Name())
	}
}

func TestAutopilotSteersAndFires(t *testing.T) {
	a, err := Load(DefaultScript)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// far to the right: steer, not in line to fire
	got, err := a.Update(snapshotWith(common.Point{X: 600, Y: 400}))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := []sim.KeyEvent{{Command: sim.MoveRight, Down: true}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// same view again: nothing changes
	got, err = a.Update(snapshotWith(common.Point{X: 600, Y: 400}))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no transitions, got %+v", got)
	}

	// directly overhead: stop moving and fire
	got, err = a.Update(snapshotWith(common.Point{X: 410, Y: 400}))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want = []sim.KeyEvent{{Command: sim.MoveRight, Down: false}, {Command: sim.Fire, Down: true}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestAutopilotReleasesWhenOver(t *testing.T) {
	a, err := New([]byte(`commands = ["fire", "left"]`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	snap := snapshotWith()
	if _, err := a.Update(snap); err != nil {
		t.Fatalf("Update: %v", err)
	}

	snap.Phase = sim.Over
	got, err := a.Update(snap)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := []sim.KeyEvent{{Command: sim.MoveLeft, Down: false}, {Command: sim.Fire, Down: false}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if rest := a.Release(); len(rest) != 0 {
		t.Fatalf("expected nothing left held, got %+v", rest)
	}
}

func TestAutopilotRejectsUnknownCommand(t *testing.T) {
	cases := []string{
		`commands = ["jump"]`,
		`commands = ["quit"]`,
		`commands = [42]`,
	}
	for _, src := range cases {
		a, err := New([]byte(src))
		if err != nil {
			t.Fatalf("New(%q): %v", src, err)
		}
		if _, err := a.Update(snapshotWith()); !errors.Is(err, ErrUnknownCommand) {
			t.Fatalf("%q: expected ErrUnknownCommand, got %v", src, err)
		}
	}
}

func TestNewRejectsBadScript(t *testing.T) {
	if _, err := New([]byte(`commands = [`)); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestAutopilotDrivesSession(t *testing.T) {
	a, err := Load(DefaultScript)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := sim.NewSession(sim.DefaultConfig(), sim.NewRand(99))
	for i := 0; i < 600 && s.Phase() == sim.Active; i++ {
		events, err := a.Update(s.Snapshot())
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		s.Apply(events)
		s.Advance(s.Config().TickSeconds())
	}
	if s.Stats().ShotsFired == 0 {
		t.Fatalf("expected the autopilot to fire at least once")
	}
}
