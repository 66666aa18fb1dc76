package sim

import (
	"errors"
	"fmt"

	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/prefabs"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

type Size struct {
	Width, Height float64
}

// Range is a half-open [Min, Max) interval sampled uniformly.
type Range struct {
	Min, Max float64
}

func (r Range) sample(rng Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

type PlayerConfig struct {
	Size         Size
	Health       int
	Step         float64 // axis magnitude a held movement key produces, per tick
	FireCooldown float64 // seconds
	BulletOffset float64
	Start        common.Point
}

type BulletConfig struct {
	Size Size
	Step float64
}

type AdversaryConfig struct {
	Size          Size
	Health        int
	PatrolSpeed   float64
	DescentSpeed  float64
	MinPopulation int
	PatrolRange   Range
	SpawnX        Range
	SpawnY        Range
}

type ScoringConfig struct {
	KillReward    int
	EscapePenalty int
	ClampAtZero   bool
}

type Config struct {
	Screen    Size
	TickRate  int
	Player    PlayerConfig
	Bullet    BulletConfig
	Adversary AdversaryConfig
	Scoring   ScoringConfig
	// MaxPendingEvents bounds the undrained event queue.
	MaxPendingEvents int
}

func DefaultConfig() Config {
	return Config{
		Screen:   Size{Width: common.ScreenWidth, Height: common.ScreenHeight},
		TickRate: common.TicksPerSecond,
		Player: PlayerConfig{
			Size:         Size{Width: 95, Height: 100},
			Health:       3,
			Step:         10,
			FireCooldown: 0.3,
			BulletOffset: 40,
			Start:        common.Point{X: common.ScreenWidth / 2, Y: 100},
		},
		Bullet: BulletConfig{
			Size: Size{Width: 20, Height: 20},
			Step: 20,
		},
		Adversary: AdversaryConfig{
			Size:          Size{Width: 80, Height: 60},
			Health:        1,
			PatrolSpeed:   3,
			DescentSpeed:  1,
			MinPopulation: 5,
			PatrolRange:   Range{Min: 50, Max: 300},
			SpawnX:        Range{Min: 100, Max: common.ScreenWidth - 100},
			SpawnY:        Range{Min: common.ScreenHeight / 2, Max: common.ScreenHeight - 100},
		},
		Scoring: ScoringConfig{
			KillReward:    1,
			EscapePenalty: 1,
			ClampAtZero:   true,
		},
		MaxPendingEvents: 64,
	}
}

// TickSeconds is the duration of one tick.
func (c Config) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / common.TicksPerSecond
	}
	return 1.0 / float64(c.TickRate)
}

// NewConfig overlays the non-zero fields of spec on DefaultConfig and
// validates the result. Fields where zero is meaningful are pointers in
// the spec and overlay whenever they are set.
func NewConfig(spec *prefabs.RulesSpec) (Config, error) {
	cfg := DefaultConfig()
	if spec == nil {
		return cfg, nil
	}

	setF := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setI := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setFP := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setIP := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setR := func(dst *Range, v prefabs.RangeSpec) {
		if v.Min != 0 || v.Max != 0 {
			*dst = Range{Min: v.Min, Max: v.Max}
		}
	}

	setF(&cfg.Screen.Width, spec.Screen.Width)
	setF(&cfg.Screen.Height, spec.Screen.Height)
	setI(&cfg.TickRate, spec.Screen.TickRate)

	p := spec.Player
	setF(&cfg.Player.Size.Width, p.Width)
	setF(&cfg.Player.Size.Height, p.Height)
	setI(&cfg.Player.Health, p.Health)
	setF(&cfg.Player.Step, p.Step)
	setF(&cfg.Player.FireCooldown, p.FireCooldown)
	setFP(&cfg.Player.BulletOffset, p.BulletOffset)
	setFP(&cfg.Player.Start.X, p.StartX)
	setF(&cfg.Player.Start.Y, p.StartY)

	setF(&cfg.Bullet.Size.Width, spec.Bullet.Width)
	setF(&cfg.Bullet.Size.Height, spec.Bullet.Height)
	setF(&cfg.Bullet.Step, spec.Bullet.Step)

	a := spec.Adversary
	setF(&cfg.Adversary.Size.Width, a.Width)
	setF(&cfg.Adversary.Size.Height, a.Height)
	setI(&cfg.Adversary.Health, a.Health)
	setF(&cfg.Adversary.PatrolSpeed, a.PatrolSpeed)
	setF(&cfg.Adversary.DescentSpeed, a.DescentSpeed)
	setIP(&cfg.Adversary.MinPopulation, a.MinPopulation)
	setR(&cfg.Adversary.PatrolRange, a.PatrolRange)
	setR(&cfg.Adversary.SpawnX, a.SpawnX)
	setR(&cfg.Adversary.SpawnY, a.SpawnY)

	setIP(&cfg.Scoring.KillReward, spec.Scoring.KillReward)
	setIP(&cfg.Scoring.EscapePenalty, spec.Scoring.EscapePenalty)
	if spec.Scoring.ClampAtZero != nil {
		cfg.Scoring.ClampAtZero = *spec.Scoring.ClampAtZero
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return invalid("screen size %vx%v must be positive", c.Screen.Width, c.Screen.Height)
	case c.TickRate <= 0:
		return invalid("tick rate %d must be positive", c.TickRate)
	case c.Player.Size.Width <= 0 || c.Player.Size.Height <= 0:
		return invalid("player size must be positive")
	case c.Player.Size.Width > c.Screen.Width:
		return invalid("player width %v exceeds screen width %v", c.Player.Size.Width, c.Screen.Width)
	case c.Player.Health <= 0:
		return invalid("player health %d must be positive", c.Player.Health)
	case c.Player.Step <= 0:
		return invalid("player step %v must be positive", c.Player.Step)
	case c.Player.FireCooldown <= 0:
		return invalid("fire cooldown %v must be positive", c.Player.FireCooldown)
	case c.Bullet.Size.Width <= 0 || c.Bullet.Size.Height <= 0:
		return invalid("bullet size must be positive")
	case c.Bullet.Step <= 0:
		return invalid("bullet step %v must be positive", c.Bullet.Step)
	case c.Adversary.Size.Width <= 0 || c.Adversary.Size.Height <= 0:
		return invalid("adversary size must be positive")
	case c.Adversary.Health <= 0:
		return invalid("adversary health %d must be positive", c.Adversary.Health)
	case c.Adversary.PatrolSpeed <= 0 || c.Adversary.DescentSpeed <= 0:
		return invalid("adversary speeds must be positive")
	case c.Adversary.MinPopulation < 0:
		return invalid("min population %d must not be negative", c.Adversary.MinPopulation)
	case !c.Adversary.PatrolRange.valid():
		return invalid("patrol range %+v is empty", c.Adversary.PatrolRange)
	case !c.Adversary.SpawnX.valid() || !c.Adversary.SpawnY.valid():
		return invalid("spawn band is empty")
	case c.Adversary.SpawnY.Min <= 0:
		return invalid("spawn band y %v must start above the bottom edge", c.Adversary.SpawnY.Min)
	case c.Scoring.KillReward < 0 || c.Scoring.EscapePenalty < 0:
		return invalid("scoring deltas must not be negative")
	}
	return nil
}

func (r Range) valid() bool {
	return r.Max > r.Min
}
