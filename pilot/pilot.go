// Package pilot drives a session from a tengo script instead of a keyboard.
// The script sees a plain view of the latest snapshot and names the
// commands it wants held; the autopilot turns that into key transitions.
package pilot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

// DefaultScript is the autopilot shipped in prefabs/scripts.
const DefaultScript = "autopilot"

var ErrUnknownCommand = errors.New("pilot: unknown command")

type Autopilot struct {
	name     string
	compiled *tengo.Compiled
	held     map[sim.Command]bool
}

// Load compiles the named script from prefabs/scripts.
func Load(name string) (*Autopilot, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultScript
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("pilot: load %s: %w", name, err)
	}
	a, err := New(src)
	if err != nil {
		return nil, fmt.Errorf("pilot: compile %s: %w", name, err)
	}
	a.name = name
	return a, nil
}

// New compiles src. The script reads the global `view` and leaves the
// names of the commands to hold in the global `commands`.
func New(src []byte) (*Autopilot, error) {
	script := tengo.NewScript(src)
	_ = script.Add("view", map[string]any{})
	_ = script.Add("commands", []any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &Autopilot{
		name:     "inline",
		compiled: compiled,
		held:     map[sim.Command]bool{},
	}, nil
}

func (a *Autopilot) Name() string { return a.name }

// Update runs the script against snap and returns the key transitions that
// move the held set to what the script asked for: releases first, then
// presses, each in command order. A finished session releases everything.
func (a *Autopilot) Update(snap sim.Snapshot) ([]sim.KeyEvent, error) {
	if snap.Over() {
		return a.Release(), nil
	}

	if err := a.compiled.Set("view", viewOf(snap)); err != nil {
		return nil, fmt.Errorf("pilot: set view: %w", err)
	}
	if err := a.compiled.Run(); err != nil {
		return nil, fmt.Errorf("pilot: run %s: %w", a.name, err)
	}

	want := map[sim.Command]bool{}
	for _, raw := range a.compiled.Get("commands").Array() {
		name, _ := raw.(string)
		c, ok := sim.ParseCommand(strings.TrimSpace(name))
		if !ok || c == sim.Quit || c == sim.Restart {
			return nil, fmt.Errorf("%w: %v", ErrUnknownCommand, raw)
		}
		want[c] = true
	}

	var out []sim.KeyEvent
	for c := sim.MoveRight; c <= sim.Quit; c++ {
		if a.held[c] && !want[c] {
			out = append(out, sim.KeyEvent{Command: c, Down: false})
			delete(a.held, c)
		}
	}
	for c := sim.MoveRight; c <= sim.Quit; c++ {
		if want[c] && !a.held[c] {
			out = append(out, sim.KeyEvent{Command: c, Down: true})
			a.held[c] = true
		}
	}
	return out, nil
}

// Release lets go of every held command.
func (a *Autopilot) Release() []sim.KeyEvent {
	var out []sim.KeyEvent
	for c := sim.MoveRight; c <= sim.Quit; c++ {
		if a.held[c] {
			out = append(out, sim.KeyEvent{Command: c, Down: false})
		}
	}
	clear(a.held)
	return out
}

func viewOf(snap sim.Snapshot) map[string]any {
	adversaries := make([]any, 0, len(snap.Adversaries))
	for _, av := range snap.Adversaries {
		adversaries = append(adversaries, box(av.Position, av.Bounds))
	}
	bullets := make([]any, 0, len(snap.Bullets))
	for _, b := range snap.Bullets {
		bullets = append(bullets, box(b.Position, b.Bounds))
	}

	player := box(snap.Player.Position, snap.Player.Bounds)
	player["health"] = snap.Player.Health
	player["cooldown"] = snap.Player.FireCooldown

	return map[string]any{
		"player":      player,
		"adversaries": adversaries,
		"bullets":     bullets,
		"score":       snap.Score,
		"tick":        int64(snap.Stats.Ticks),
		"screen":      map[string]any{"w": snap.Screen.Width, "h": snap.Screen.Height},
	}
}

// box exposes an entity by its upper-left corner and size.
func box(pos common.Point, r common.Rect) map[string]any {
	return map[string]any{"x": pos.X, "y": pos.Y, "w": r.Width, "h": r.Height}
}
