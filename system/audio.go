package system

import (
	"bytes"
	"fmt"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/invaders/assets"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide ebiten audio context. ebiten allows
// only one, so it is created on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(assets.SampleRate)
	})
	return audioContext
}

// cueNames maps session events to the audio cue names in the rules file.
var cueNames = map[sim.EventKind]string{
	sim.ShotFired:     "shot",
	sim.HitRegistered: "hit",
}

// cues returns the cue names to play for one batch of events, once each,
// in first-seen order.
func cues(events []sim.Event) []string {
	var out []string
	seen := map[string]bool{}
	for _, e := range events {
		name, ok := cueNames[e.Kind]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// AudioSystem plays drained session events. Failures are logged and the
// cue is skipped; sound never stops the game.
type AudioSystem struct {
	players map[string]*audio.Player
	Muted   bool
}

func NewAudioSystem(rules *prefabs.RulesSpec, muted bool) *AudioSystem {
	a := &AudioSystem{players: map[string]*audio.Player{}, Muted: muted}
	for _, name := range cueNames {
		spec, err := rules.AudioCue(name)
		if err != nil {
			log.Printf("audio: %v", err)
			continue
		}
		p, err := newCuePlayer(AudioContext(), spec)
		if err != nil {
			log.Printf("audio: cue %s: %v", name, err)
			continue
		}
		a.players[name] = p
	}
	return a
}

func newCuePlayer(ctx *audio.Context, spec prefabs.AudioSpec) (*audio.Player, error) {
	if spec.File != "" && assets.IsWAV(spec.File) {
		p, err := loadWAVPlayer(ctx, spec.File)
		if err == nil {
			if spec.Volume > 0 {
				p.SetVolume(spec.Volume)
			}
			return p, nil
		}
		if spec.Tone <= 0 {
			return nil, err
		}
		log.Printf("audio: %v; using %.0f Hz tone", err, spec.Tone)
	}
	if spec.Tone <= 0 || spec.Duration <= 0 {
		return nil, fmt.Errorf("no file or tone configured")
	}
	pcm := assets.PCM16(assets.Tone(ctx.SampleRate(), spec.Tone, spec.Duration, spec.Volume))
	return ctx.NewPlayerFromBytes(pcm), nil
}

func loadWAVPlayer(ctx *audio.Context, path string) (*audio.Player, error) {
	b, err := assets.LoadAudio(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	return ctx.NewPlayer(stream)
}

// Play restarts the cue for each kind of event in the batch.
func (a *AudioSystem) Play(events []sim.Event) {
	if a == nil || a.Muted {
		return
	}
	for _, name := range cues(events) {
		p := a.players[name]
		if p == nil {
			continue
		}
		if err := p.Rewind(); err != nil {
			log.Printf("audio: rewind %s: %v", name, err)
			continue
		}
		p.Play()
	}
}

func (a *AudioSystem) Close() {
	if a == nil {
		return
	}
	for name, p := range a.players {
		if err := p.Close(); err != nil {
			log.Printf("audio: close %s: %v", name, err)
		}
	}
	clear(a.players)
}
