// Command soak plays the game headless with the autopilot for a fixed
// number of ticks, restarting after every game over, and checks the
// field invariants on every tick.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/milk9111/invaders/pilot"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

type summary struct {
	games   int
	ticks   uint64
	best    int
	shots   int
	kills   int
	escapes int
}

func (s *summary) add(st sim.Stats, score int) {
	s.games++
	s.ticks += st.Ticks
	s.shots += st.ShotsFired
	s.kills += st.Kills
	s.escapes += st.Escapes
	s.best = max(s.best, score)
}

func (s summary) String() string {
	return fmt.Sprintf("games=%d ticks=%d best=%d shots=%d kills=%d escapes=%d",
		s.games, s.ticks, s.best, s.shots, s.kills, s.escapes)
}

func main() {
	ticks := flag.Int("ticks", 60*60*10, "ticks to simulate")
	seed := flag.Uint64("seed", 1, "spawn seed")
	script := flag.String("script", pilot.DefaultScript, "autopilot script in prefabs/scripts")
	flag.Parse()

	rules, err := prefabs.LoadRulesSpec()
	if err != nil {
		log.Fatalf("load rules: %v", err)
	}
	cfg, err := sim.NewConfig(rules)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ap, err := pilot.Load(*script)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	sum, err := run(sim.NewSession(cfg, sim.NewRand(*seed)), ap, *ticks)
	log.Printf("soak: %s in %s", sum, time.Since(start).Round(time.Millisecond))
	if err != nil {
		log.Printf("soak: %v", err)
		os.Exit(1)
	}
}

// run advances s for n ticks under the autopilot. A game over is counted
// and restarted on the next tick.
func run(s *sim.Session, ap *pilot.Autopilot, n int) (summary, error) {
	var sum summary
	dt := s.Config().TickSeconds()

	for i := 0; i < n; i++ {
		snap := s.Snapshot()
		if snap.Over() {
			sum.add(snap.Stats, snap.Score)
			s.Apply(ap.Release())
			s.Restart()
			continue
		}

		events, err := ap.Update(snap)
		if err != nil {
			return sum, err
		}
		s.Apply(events)
		s.Advance(dt)
		s.Events()

		if err := check(s.Snapshot(), s.Config()); err != nil {
			return sum, fmt.Errorf("tick %d: %w", i, err)
		}
	}
	if snap := s.Snapshot(); snap.Stats.Ticks > 0 {
		sum.add(snap.Stats, snap.Score)
	}
	return sum, nil
}

// check verifies what must hold after every tick.
func check(snap sim.Snapshot, cfg sim.Config) error {
	p := snap.Player.Bounds
	switch {
	case p.X < 0 || p.X > cfg.Screen.Width-p.Width:
		return fmt.Errorf("player x=%v outside [0, %v]", p.X, cfg.Screen.Width-p.Width)
	case snap.Player.Position.Y > cfg.Screen.Height:
		return fmt.Errorf("player y=%v above the field", snap.Player.Position.Y)
	case snap.Player.Health < 0:
		return fmt.Errorf("player health %d below zero", snap.Player.Health)
	case cfg.Scoring.ClampAtZero && snap.Score < 0:
		return fmt.Errorf("score %d below zero", snap.Score)
	}
	for _, b := range snap.Bullets {
		if b.Position.Y >= cfg.Screen.Height {
			return fmt.Errorf("off-screen bullet at y=%v survived prune", b.Position.Y)
		}
	}
	return nil
}
