// Command tty plays the game in a terminal. Keys: arrows or WASD move,
// Space fires, Enter restarts after game over, P pauses, Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

type game struct {
	screen  tcell.Screen
	session *sim.Session
	clock   *sim.Clock
	holds   *holdTracker
	sounds  *sounds
	palette palette
	paused  bool
}

func newGame(rules *prefabs.RulesSpec, seed uint64, mute bool) (*game, error) {
	cfg, err := sim.NewConfig(rules)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tty: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tty: init screen: %w", err)
	}
	screen.HideCursor()

	g := &game{
		screen:  screen,
		session: sim.NewSession(cfg, sim.NewRand(seed)),
		clock:   sim.NewClock(cfg.TickRate, 0),
		holds:   newHoldTracker(keyTimeout),
		palette: newPalette(rules.Palette),
	}
	if !mute {
		g.sounds = newSounds(rules)
	}
	return g, nil
}

// handleKey applies one key event and reports whether to keep running.
func (g *game) handleKey(ev *tcell.EventKey, now time.Time) bool {
	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'p' || ev.Rune() == 'P') {
		if g.session.Phase() == sim.Active {
			g.paused = !g.paused
		}
		return true
	}

	c := commandFor(ev.Key(), ev.Rune())
	if c == sim.Quit {
		return false
	}
	g.press(c, now)
	return true
}

// press feeds one command through the hold tracker. A restart clears the
// session's input, so the tracker forgets its held keys with it.
func (g *game) press(c sim.Command, now time.Time) {
	wasOver := g.session.Phase() == sim.Over
	g.session.Apply(g.holds.Press(c, now))
	if wasOver && g.session.Phase() == sim.Active {
		g.holds.Reset()
	}
}

func (g *game) tick(now time.Time, elapsed time.Duration) {
	g.session.Apply(g.holds.Expire(now))
	if g.paused {
		// drop the backlog so unpausing does not fast-forward
		g.clock.Ticks(elapsed)
		return
	}
	if g.clock.Run(g.session, elapsed) > 0 {
		g.sounds.play(g.session.Events())
	}
}

func (g *game) run() {
	ticker := time.NewTicker(g.clock.Step())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.handleKey(ev, time.Now()) {
					return
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}

		case now := <-ticker.C:
			g.tick(now, now.Sub(last))
			last = now
			draw(g.screen, g.session.Snapshot(), g.palette, g.paused)
		}
	}
}

func (g *game) cleanup() {
	g.sounds.close()
	g.screen.Fini()
}

func main() {
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "spawn seed")
	mute := flag.Bool("mute", false, "no sound")
	flag.Parse()

	rules, err := prefabs.LoadRulesSpec()
	if err != nil {
		log.Fatalf("load rules: %v", err)
	}

	g, err := newGame(rules, *seed, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	g.run()
	g.cleanup()
	// after Fini, so the summary lands on the normal screen
	log.Print(summary(*seed, g.session))
}

func summary(seed uint64, s *sim.Session) string {
	return fmt.Sprintf("seed=%d score=%d ticks=%d", seed, s.Score(), s.Stats().Ticks)
}
