package main

import (
	"testing"

	"github.com/milk9111/invaders/pilot"
	"github.com/milk9111/invaders/sim"
)

func TestRunKeepsInvariants(t *testing.T) {
	ap, err := pilot.Load(pilot.DefaultScript)
	if err != nil {
		t.Fatalf("load autopilot: %v", err)
	}
	s := sim.NewSession(sim.DefaultConfig(), sim.NewRand(7))

	sum, err := run(s, ap, 3000)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.games == 0 || sum.shots == 0 {
		t.Fatalf("expected at least one game with shots, got %s", sum)
	}
}

func TestCheck(t *testing.T) {
	cfg := sim.DefaultConfig()
	base := sim.NewSession(cfg, nil).Snapshot()

	cases := []struct {
		name    string
		mutate  func(*sim.Snapshot)
		wantErr bool
	}{
		{"fresh", func(*sim.Snapshot) {}, false},
		{"player_past_right_edge", func(s *sim.Snapshot) { s.Player.Bounds.X = 800 }, true},
		{"negative_score", func(s *sim.Snapshot) { s.Score = -1 }, true},
		{"stale_bullet", func(s *sim.Snapshot) {
			s.Bullets = append(s.Bullets, sim.BulletView{})
			s.Bullets[0].Position.Y = 600
		}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			snap := base
			snap.Bullets = nil
			c.mutate(&snap)
			if err := check(snap, cfg); (err != nil) != c.wantErr {
				t.Fatalf("expected error=%v, got %v", c.wantErr, err)
			}
		})
	}
}
