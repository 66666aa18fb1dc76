package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesFile is the tuning prefab every host loads at startup.
const RulesFile = "invaders.yaml"

var ErrUnknownSpec = errors.New("prefabs: unknown spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type RulesSpec struct {
	Name      string        `yaml:"name"`
	Screen    ScreenSpec    `yaml:"screen"`
	Player    PlayerSpec    `yaml:"player"`
	Bullet    BulletSpec    `yaml:"bullet"`
	Adversary AdversarySpec `yaml:"adversary"`
	Scoring   ScoringSpec   `yaml:"scoring"`
	Audio     []AudioSpec   `yaml:"audio"`
	Palette   PaletteSpec   `yaml:"palette"`
}

func LoadRulesSpec() (*RulesSpec, error) {
	spec, err := LoadSpec[RulesSpec](RulesFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ScreenSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	TickRate int     `yaml:"tick_rate"`
}

type PlayerSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Health       int     `yaml:"health"`
	Step         float64 `yaml:"step"`
	FireCooldown float64 `yaml:"fire_cooldown"`
	BulletOffset *float64 `yaml:"bullet_offset"`
	StartX       *float64 `yaml:"start_x"`
	StartY       float64  `yaml:"start_y"`
}

type BulletSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Step   float64 `yaml:"step"`
}

type AdversarySpec struct {
	Width         float64   `yaml:"width"`
	Height        float64   `yaml:"height"`
	Health        int       `yaml:"health"`
	PatrolSpeed   float64   `yaml:"patrol_speed"`
	DescentSpeed  float64   `yaml:"descent_speed"`
	MinPopulation *int      `yaml:"min_population"`
	PatrolRange   RangeSpec `yaml:"patrol_range"`
	SpawnX        RangeSpec `yaml:"spawn_x"`
	SpawnY        RangeSpec `yaml:"spawn_y"`
}

// RangeSpec is a half-open [min, max) interval.
type RangeSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type ScoringSpec struct {
	KillReward    *int  `yaml:"kill_reward"`
	EscapePenalty *int  `yaml:"escape_penalty"`
	ClampAtZero   *bool `yaml:"clamp_at_zero"`
}

// AudioSpec describes one sound cue. File wins over Tone when both are set.
type AudioSpec struct {
	Name     string  `yaml:"name"`
	File     string  `yaml:"file"`
	Tone     float64 `yaml:"tone"`
	Duration float64 `yaml:"duration"`
	Volume   float64 `yaml:"volume"`
}

// AudioCue returns the cue with the given name.
func (r *RulesSpec) AudioCue(name string) (AudioSpec, error) {
	if r != nil {
		for _, a := range r.Audio {
			if strings.EqualFold(a.Name, name) {
				return a, nil
			}
		}
	}
	return AudioSpec{}, fmt.Errorf("%w: audio cue %q", ErrUnknownSpec, name)
}

type PaletteSpec struct {
	Background *YAMLColor `yaml:"background"`
	Player     *YAMLColor `yaml:"player"`
	Bullet     *YAMLColor `yaml:"bullet"`
	Adversary  *YAMLColor `yaml:"adversary"`
	Text       *YAMLColor `yaml:"text"`
	GameOver   *YAMLColor `yaml:"game_over"`
}

type YAMLColor struct {
	color.Color
}

// Or returns the decoded color, or fallback when the entry was left out.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
