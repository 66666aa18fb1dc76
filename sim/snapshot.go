package sim

import "github.com/milk9111/invaders/common"

type PlayerView struct {
	Position     common.Point
	Bounds       common.Rect
	Health       int
	FireCooldown float64
	// Visible stays true after game over; the frozen field is still drawn.
	Visible bool
}

type BulletView struct {
	Position common.Point
	Bounds   common.Rect
}

type AdversaryView struct {
	Position common.Point
	Bounds   common.Rect
	Health   int
	Patrol   string
}

// Snapshot is a read-only copy of the session for one presented frame.
// Nothing in it aliases session memory. Adversaries holds only live ones;
// one killed by contact this tick is left out before prune drops it.
type Snapshot struct {
	Phase       Phase
	Score       int
	Screen      Size
	Player      PlayerView
	Bullets     []BulletView
	Adversaries []AdversaryView
	Stats       Stats
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:  s.phase,
		Score:  s.score,
		Screen: s.cfg.Screen,
		Player: PlayerView{
			Position:     s.player.Position,
			Bounds:       s.player.Bounds(),
			Health:       s.player.Health,
			FireCooldown: s.player.FireCooldown,
			Visible:      true,
		},
		Bullets:     make([]BulletView, 0, len(s.bullets)),
		Adversaries: make([]AdversaryView, 0, len(s.adversaries)),
		Stats:       s.stats,
	}

	for i := range s.bullets {
		b := &s.bullets[i]
		snap.Bullets = append(snap.Bullets, BulletView{Position: b.Position, Bounds: b.Bounds()})
	}
	for i := range s.adversaries {
		a := &s.adversaries[i]
		if !a.Alive() {
			continue
		}
		patrol := ""
		if a.Patrol.State != nil {
			patrol = a.Patrol.State.Name()
		}
		snap.Adversaries = append(snap.Adversaries, AdversaryView{
			Position: a.Position,
			Bounds:   a.Bounds(),
			Health:   a.Health,
			Patrol:   patrol,
		})
	}
	return snap
}

// Over reports whether the snapshot was taken after game over.
func (s Snapshot) Over() bool {
	return s.Phase == Over
}
