package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/invaders/sim"
)

// keyTimeout is how long a key counts as held after its last repeat.
// Terminals report presses and autorepeats but never releases.
const keyTimeout = 150 * time.Millisecond

// commandFor maps a terminal key to a session command. r is only read for
// tcell.KeyRune.
func commandFor(key tcell.Key, r rune) sim.Command {
	switch key {
	case tcell.KeyRight:
		return sim.MoveRight
	case tcell.KeyLeft:
		return sim.MoveLeft
	case tcell.KeyUp:
		return sim.MoveUp
	case tcell.KeyDown:
		return sim.MoveDown
	case tcell.KeyEnter:
		return sim.Restart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return sim.Quit
	case tcell.KeyRune:
		switch r {
		case 'd', 'D':
			return sim.MoveRight
		case 'a', 'A':
			return sim.MoveLeft
		case 'w', 'W':
			return sim.MoveUp
		case 's', 'S':
			return sim.MoveDown
		case ' ':
			return sim.Fire
		case 'q', 'Q':
			return sim.Quit
		}
	}
	return sim.NoCommand
}

// holdTracker turns presses and autorepeats into held keys with a
// synthesized release once the repeats stop.
type holdTracker struct {
	timeout  time.Duration
	lastSeen map[sim.Command]time.Time
}

func newHoldTracker(timeout time.Duration) *holdTracker {
	return &holdTracker{timeout: timeout, lastSeen: map[sim.Command]time.Time{}}
}

// Press records a press or repeat of c and returns the transitions it
// causes. Restart has no hold: it presses and releases at once.
func (h *holdTracker) Press(c sim.Command, now time.Time) []sim.KeyEvent {
	switch c {
	case sim.NoCommand, sim.Quit:
		return nil
	case sim.Restart:
		return []sim.KeyEvent{{Command: c, Down: true}, {Command: c, Down: false}}
	}

	var out []sim.KeyEvent
	// a new direction on an axis replaces the old one, as on a keyboard
	// where the newer key wins
	if opp, ok := opposite(c); ok {
		if _, held := h.lastSeen[opp]; held {
			delete(h.lastSeen, opp)
			out = append(out, sim.KeyEvent{Command: opp, Down: false})
		}
	}
	if _, held := h.lastSeen[c]; !held {
		out = append(out, sim.KeyEvent{Command: c, Down: true})
	}
	h.lastSeen[c] = now
	return out
}

// Expire releases every key not repeated within the timeout, in command
// order.
func (h *holdTracker) Expire(now time.Time) []sim.KeyEvent {
	var out []sim.KeyEvent
	for c := sim.MoveRight; c <= sim.Quit; c++ {
		seen, held := h.lastSeen[c]
		if held && now.Sub(seen) > h.timeout {
			delete(h.lastSeen, c)
			out = append(out, sim.KeyEvent{Command: c, Down: false})
		}
	}
	return out
}

// Reset forgets every held key.
func (h *holdTracker) Reset() {
	clear(h.lastSeen)
}

func opposite(c sim.Command) (sim.Command, bool) {
	switch c {
	case sim.MoveRight:
		return sim.MoveLeft, true
	case sim.MoveLeft:
		return sim.MoveRight, true
	case sim.MoveUp:
		return sim.MoveDown, true
	case sim.MoveDown:
		return sim.MoveUp, true
	}
	return sim.NoCommand, false
}
