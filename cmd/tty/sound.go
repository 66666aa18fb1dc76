package main

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/milk9111/invaders/assets"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

const sampleRate = beep.SampleRate(assets.SampleRate)

// cue builds a fresh streamer each time it plays.
type cue func() beep.Streamer

type sounds struct {
	cues  map[sim.EventKind]cue
	ready bool
}

func newSounds(rules *prefabs.RulesSpec) *sounds {
	s := &sounds{cues: map[sim.EventKind]cue{}}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("sound: %v; playing silent", err)
		return s
	}
	s.ready = true

	names := map[sim.EventKind]string{sim.ShotFired: "shot", sim.HitRegistered: "hit"}
	for kind, name := range names {
		spec, err := rules.AudioCue(name)
		if err != nil {
			log.Printf("sound: %v", err)
			continue
		}
		c, err := newCue(spec)
		if err != nil {
			log.Printf("sound: cue %s: %v", name, err)
			continue
		}
		s.cues[kind] = c
	}
	return s
}

func newCue(spec prefabs.AudioSpec) (cue, error) {
	if spec.File != "" && assets.IsWAV(spec.File) {
		buf, err := loadWAV(spec.File)
		if err == nil {
			return func() beep.Streamer {
				return withVolume(buf.Streamer(0, buf.Len()), spec.Volume)
			}, nil
		}
		if spec.Tone <= 0 {
			return nil, err
		}
		log.Printf("sound: %v; using %.0f Hz tone", err, spec.Tone)
	}
	if spec.Tone <= 0 || spec.Duration <= 0 {
		return nil, fmt.Errorf("no file or tone configured")
	}

	n := sampleRate.N(time.Duration(spec.Duration * float64(time.Second)))
	return func() beep.Streamer {
		sine, err := generators.SineTone(sampleRate, spec.Tone)
		if err != nil {
			return beep.Silence(n)
		}
		return withVolume(beep.Take(n, sine), spec.Volume)
	}, nil
}

func loadWAV(path string) (*beep.Buffer, error) {
	b, err := assets.LoadAudio(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	stream, format, err := wav.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	if format.SampleRate != sampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, sampleRate, stream))
	} else {
		buf.Append(stream)
	}
	return buf, nil
}

// withVolume scales s linearly by v; zero keeps the file's own level.
func withVolume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 || v == 1 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

func (s *sounds) play(events []sim.Event) {
	if s == nil || !s.ready {
		return
	}
	played := map[sim.EventKind]bool{}
	for _, e := range events {
		c, ok := s.cues[e.Kind]
		if !ok || played[e.Kind] {
			continue
		}
		played[e.Kind] = true
		speaker.Play(c())
	}
}

func (s *sounds) close() {
	if s != nil && s.ready {
		speaker.Close()
	}
}
