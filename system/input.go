package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/invaders/sim"
)

// KeyBindings maps physical keys to session commands.
type KeyBindings map[ebiten.Key]sim.Command

func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		ebiten.KeyArrowRight: sim.MoveRight,
		ebiten.KeyD:          sim.MoveRight,
		ebiten.KeyArrowLeft:  sim.MoveLeft,
		ebiten.KeyA:          sim.MoveLeft,
		ebiten.KeyArrowUp:    sim.MoveUp,
		ebiten.KeyW:          sim.MoveUp,
		ebiten.KeyArrowDown:  sim.MoveDown,
		ebiten.KeyS:          sim.MoveDown,
		ebiten.KeySpace:      sim.Fire,
		ebiten.KeyEnter:      sim.Restart,
		ebiten.KeyEscape:     sim.Quit,
	}
}

// Translate turns one frame of key edges into command transitions. Releases
// come first so a same-frame swap from one direction to the other ends up
// holding the new one.
func (b KeyBindings) Translate(pressed, released []ebiten.Key) []sim.KeyEvent {
	var out []sim.KeyEvent
	for _, k := range released {
		if c, ok := b[k]; ok {
			out = append(out, sim.KeyEvent{Command: c, Down: false})
		}
	}
	for _, k := range pressed {
		if c, ok := b[k]; ok {
			out = append(out, sim.KeyEvent{Command: c, Down: true})
		}
	}
	return out
}

type InputSystem struct {
	bindings KeyBindings
	pressed  []ebiten.Key
	released []ebiten.Key
}

func NewInputSystem(bindings KeyBindings) *InputSystem {
	if bindings == nil {
		bindings = DefaultKeyBindings()
	}
	return &InputSystem{bindings: bindings}
}

// Poll reads this frame's key edges from ebiten.
func (i *InputSystem) Poll() []sim.KeyEvent {
	i.pressed = inpututil.AppendJustPressedKeys(i.pressed[:0])
	i.released = inpututil.AppendJustReleasedKeys(i.released[:0])
	return i.bindings.Translate(i.pressed, i.released)
}
