package sim

import "github.com/milk9111/invaders/common"

type Kind int

const (
	KindPlayer Kind = iota + 1
	KindBullet
	KindAdversary
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindAdversary:
		return "adversary"
	default:
		return "unknown"
	}
}

// Entity is anything with a bounding rectangle in simulation space.
//
// Every entity's Position is its upper-left corner: the bounding rect
// extends Size.Height below it. A player standing on the bottom edge has
// Position.Y == Size.Height, and an adversary whose Position.Y reaches 0
// has fully left the play field.
type Entity interface {
	Kind() Kind
	Bounds() common.Rect
}

func bounds(pos common.Point, size Size) common.Rect {
	return common.NewRect(pos.X, pos.Y-size.Height, size.Width, size.Height)
}

type Player struct {
	Position     common.Point
	Size         Size
	Health       int
	FireCooldown float64 // seconds until the next shot; only the sign matters
}

func newPlayer(cfg PlayerConfig) Player {
	return Player{
		Position: cfg.Start,
		Size:     cfg.Size,
		Health:   cfg.Health,
	}
}

func (p *Player) Kind() Kind          { return KindPlayer }
func (p *Player) Bounds() common.Rect { return bounds(p.Position, p.Size) }

// Alive reports whether the player still has health left.
func (p *Player) Alive() bool {
	return p.Health > 0
}

// damage removes one point of health and reports whether any was removed.
// Health never drops below zero.
func (p *Player) damage() bool {
	if p.Health <= 0 {
		return false
	}
	p.Health--
	return true
}

// reset reinitializes the player in place.
func (p *Player) reset(cfg PlayerConfig) {
	*p = newPlayer(cfg)
}

type Bullet struct {
	Position common.Point
	Size     Size
}

func newBullet(from common.Point, cfg Config) Bullet {
	return Bullet{
		Position: common.Point{X: from.X + cfg.Player.BulletOffset, Y: from.Y},
		Size:     cfg.Bullet.Size,
	}
}

func (b *Bullet) Kind() Kind          { return KindBullet }
func (b *Bullet) Bounds() common.Rect { return bounds(b.Position, b.Size) }

type Adversary struct {
	Position common.Point
	Size     Size
	Health   int
	Patrol   Patrol
}

func newAdversary(cfg AdversaryConfig, rng Rand) Adversary {
	return Adversary{
		Position: common.Point{X: cfg.SpawnX.sample(rng), Y: cfg.SpawnY.sample(rng)},
		Size:     cfg.Size,
		Health:   cfg.Health,
		Patrol:   NewPatrol(cfg.PatrolRange.sample(rng)),
	}
}

func (a *Adversary) Kind() Kind          { return KindAdversary }
func (a *Adversary) Bounds() common.Rect { return bounds(a.Position, a.Size) }

func (a *Adversary) Alive() bool {
	return a.Health > 0
}

// hit applies one point of damage and reports whether it was lethal.
func (a *Adversary) hit() bool {
	if a.Health <= 0 {
		return false
	}
	a.Health--
	return a.Health == 0
}

// Escaped reports whether the adversary has reached or crossed the bottom.
func (a *Adversary) Escaped() bool {
	return a.Position.Y <= 0
}

// move descends one tick and then runs one patrol step.
func (a *Adversary) move(cfg AdversaryConfig, screenWidth float64) {
	a.Position.Y -= cfg.DescentSpeed
	a.Position.X = a.Patrol.Step(a.Position.X, a.Size.Width, screenWidth, cfg.PatrolSpeed)
}
