package sim

import (
	"math"
	"slices"

	"github.com/milk9111/invaders/common"
)

// Phase is the session lifecycle state.
type Phase int

const (
	Active Phase = iota
	Over
)

func (p Phase) String() string {
	if p == Over {
		return "over"
	}
	return "active"
}

// Stats counts what happened since the last restart.
type Stats struct {
	Ticks      uint64
	ShotsFired int
	Kills      int
	Escapes    int
	HitsTaken  int
}

// Session owns the whole simulation: the player, the bullet and adversary
// collections, the score and the pending input. It is driven by a caller
// owned loop through Advance, OnKeyDown/OnKeyUp and Snapshot, and is not
// safe for concurrent use.
type Session struct {
	cfg     Config
	pending *Config
	rng     Rand

	phase       Phase
	input       Input
	player      Player
	bullets     []Bullet
	adversaries []Adversary
	score       int
	stats       Stats
	events      *EventQueue
}

// NewSession starts an Active session. rng may be nil, in which case a
// fixed seed is used.
func NewSession(cfg Config, rng Rand) *Session {
	if rng == nil {
		rng = NewRand(1)
	}
	return &Session{
		cfg:    cfg,
		rng:    rng,
		player: newPlayer(cfg.Player),
		events: NewEventQueue(cfg.MaxPendingEvents),
	}
}

func (s *Session) Config() Config { return s.cfg }
func (s *Session) Phase() Phase   { return s.phase }
func (s *Session) Score() int     { return s.score }
func (s *Session) Stats() Stats   { return s.stats }
func (s *Session) Input() Input   { return s.input }

// SetConfig validates cfg and applies it on the next restart.
func (s *Session) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.pending = &cfg
	return nil
}

// Events drains the cues raised since the last call, oldest first.
func (s *Session) Events() []Event {
	return s.events.Drain()
}

func (s *Session) OnKeyDown(c Command) {
	s.input.KeyDown(c, s.cfg.Player.Step)
}

// OnKeyUp releases c. Releasing Restart restarts a finished session.
func (s *Session) OnKeyUp(c Command) {
	if c == Restart {
		s.Restart()
		return
	}
	s.input.KeyUp(c)
}

// Apply feeds a batch of key transitions in order.
func (s *Session) Apply(events []KeyEvent) {
	for _, e := range events {
		if e.Down {
			s.OnKeyDown(e.Command)
		} else {
			s.OnKeyUp(e.Command)
		}
	}
}

// Restart resets input, bullets, adversaries, score, stats and the player
// when the session is Over and reports whether it did. From Active it is a
// no-op, so repeating it changes nothing.
func (s *Session) Restart() bool {
	if s.phase != Over {
		return false
	}
	if s.pending != nil {
		s.cfg = *s.pending
		s.pending = nil
		s.events = NewEventQueue(s.cfg.MaxPendingEvents)
	}

	s.input = Input{}
	s.bullets = nil
	s.adversaries = nil
	s.score = 0
	s.stats = Stats{}
	s.events.flush()
	s.player.reset(s.cfg.Player)
	s.phase = Active
	return true
}

// Advance runs one fixed tick of dt seconds.
func (s *Session) Advance(dt float64) {
	if !s.player.Alive() {
		s.phase = Over
		return
	}
	s.stats.Ticks++

	s.movePlayer()

	s.player.FireCooldown -= dt
	if s.input.Fire && s.player.FireCooldown <= 0 {
		s.bullets = append(s.bullets, newBullet(s.player.Position, s.cfg))
		s.stats.ShotsFired++
		s.emit(ShotFired, s.player.Position)
		s.player.FireCooldown = s.cfg.Player.FireCooldown
	}

	for n := s.liveAdversaries(); n < s.cfg.Adversary.MinPopulation; n++ {
		s.adversaries = append(s.adversaries, newAdversary(s.cfg.Adversary, s.rng))
	}

	s.updateBullets()
	s.prune()
	s.updateAdversaries()
}

func (s *Session) movePlayer() {
	p := &s.player

	if dx := s.input.XAxis; dx != 0 {
		lane := common.NewRect(0, p.Position.Y, s.cfg.Screen.Width-p.Size.Width, 0)
		p.Position = lane.ClampPoint(p.Position.Add(common.Point{X: dx}))
	}

	// each vertical direction only checks its own bound
	top, bottom := s.cfg.Screen.Height, p.Size.Height
	switch dy := s.input.YAxis; {
	case dy > 0 && p.Position.Y < top:
		p.Position.Y = math.Min(p.Position.Y+dy, top)
	case dy < 0 && p.Position.Y > bottom:
		p.Position.Y = math.Max(p.Position.Y+dy, bottom)
	}
}

// updateBullets moves every bullet up and lets each on-screen bullet hit
// at most one live adversary, the first overlapping one in order. A bullet
// that hits is moved to the top edge so prune removes it.
func (s *Session) updateBullets() {
	for i := range s.bullets {
		b := &s.bullets[i]
		b.Position.Y += s.cfg.Bullet.Step
		if !s.bulletOnScreen(b) {
			continue
		}

		br := b.Bounds()
		for j := range s.adversaries {
			a := &s.adversaries[j]
			if !a.Alive() || !a.Bounds().Overlaps(br) {
				continue
			}
			s.emit(HitRegistered, a.Position)
			if a.hit() {
				s.stats.Kills++
				s.addScore(s.cfg.Scoring.KillReward)
			}
			b.Position.Y = s.cfg.Screen.Height
			break
		}
	}
}

// liveAdversaries counts adversaries that will survive the next prune.
func (s *Session) liveAdversaries() int {
	n := 0
	for i := range s.adversaries {
		if a := &s.adversaries[i]; a.Alive() && !a.Escaped() {
			n++
		}
	}
	return n
}

func (s *Session) bulletOnScreen(b *Bullet) bool {
	return b.Position.Y < s.cfg.Screen.Height
}

func (s *Session) prune() {
	s.bullets = slices.DeleteFunc(s.bullets, func(b Bullet) bool {
		return !s.bulletOnScreen(&b)
	})
	s.adversaries = slices.DeleteFunc(s.adversaries, func(a Adversary) bool {
		return !a.Alive() || a.Escaped()
	})
}

// updateAdversaries moves the survivors of prune and resolves contact with
// the player. An adversary that touches the player dies at once but stays
// in the collection until the next tick's prune.
func (s *Session) updateAdversaries() {
	pr := s.player.Bounds()
	for i := range s.adversaries {
		a := &s.adversaries[i]
		a.move(s.cfg.Adversary, s.cfg.Screen.Width)
		if a.Escaped() {
			s.stats.Escapes++
			s.addScore(-s.cfg.Scoring.EscapePenalty)
		}

		if !a.Alive() || !a.Bounds().Overlaps(pr) {
			continue
		}
		a.Health = 0
		if s.player.damage() {
			s.stats.HitsTaken++
			s.emit(HitRegistered, s.player.Position)
		}
	}
}

func (s *Session) addScore(delta int) {
	s.score += delta
	if s.cfg.Scoring.ClampAtZero && s.score < 0 {
		s.score = 0
	}
}

func (s *Session) emit(kind EventKind, at common.Point) {
	s.events.Push(Event{Kind: kind, Tick: s.stats.Ticks, Position: at})
}
