package sim

// Command is a logical key the session understands.
type Command int

const (
	NoCommand Command = iota
	MoveRight
	MoveLeft
	MoveUp
	MoveDown
	Fire
	Restart
	Quit
)

var commandNames = map[Command]string{
	MoveRight: "right",
	MoveLeft:  "left",
	MoveUp:    "up",
	MoveDown:  "down",
	Fire:      "fire",
	Restart:   "restart",
	Quit:      "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCommand maps a command name back to its Command.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return NoCommand, false
}

// KeyEvent is one key transition for a command.
type KeyEvent struct {
	Command Command
	Down    bool
}

// Input is the movement intent the next tick consumes. The axes only ever
// hold -step, 0 or +step.
type Input struct {
	XAxis float64
	YAxis float64
	Fire  bool
}

// KeyDown sets the axis for a movement command to step in its direction,
// or raises Fire. Other commands are ignored.
func (in *Input) KeyDown(c Command, step float64) {
	switch c {
	case MoveRight:
		in.XAxis = step
	case MoveLeft:
		in.XAxis = -step
	case MoveUp:
		in.YAxis = step
	case MoveDown:
		in.YAxis = -step
	case Fire:
		in.Fire = true
	}
}

// KeyUp clears an axis only if it is still held in the released key's
// direction, so letting go of one key does not cancel its opposite.
func (in *Input) KeyUp(c Command) {
	switch c {
	case MoveRight:
		if in.XAxis > 0 {
			in.XAxis = 0
		}
	case MoveLeft:
		if in.XAxis < 0 {
			in.XAxis = 0
		}
	case MoveUp:
		if in.YAxis > 0 {
			in.YAxis = 0
		}
	case MoveDown:
		if in.YAxis < 0 {
			in.YAxis = 0
		}
	case Fire:
		in.Fire = false
	}
}
