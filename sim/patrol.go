package sim

// PatrolState is one side of an adversary's horizontal oscillation.
type PatrolState interface {
	Name() string
	step(p *Patrol, x, width, screenWidth, speed float64) float64
}

type forwardState struct{}

func (forwardState) Name() string { return "forward" }
func (forwardState) step(p *Patrol, x, width, screenWidth, speed float64) float64 {
	x += speed
	p.Traveled += speed
	if p.Traveled > p.Allowed || x > screenWidth-width {
		p.State = PatrolBackwards
	}
	return x
}

type backwardsState struct{}

func (backwardsState) Name() string { return "backwards" }
func (backwardsState) step(p *Patrol, x, _, _, speed float64) float64 {
	x -= speed
	p.Traveled -= speed
	if p.Traveled < 0 || x < 0 {
		p.State = PatrolForward
	}
	return x
}

// singletons for each state; transitions only swap the pointer
var (
	PatrolForward   PatrolState = forwardState{}
	PatrolBackwards PatrolState = backwardsState{}
)

// Patrol tracks how far an adversary has moved right of where it started
// and which way it is heading. Allowed is the patrol half-width.
type Patrol struct {
	Allowed  float64
	Traveled float64
	State    PatrolState
}

func NewPatrol(allowed float64) Patrol {
	return Patrol{Allowed: allowed, State: PatrolForward}
}

// Step moves x one tick along the patrol and returns the new x. Both the
// distance and the screen-edge condition are checked every tick; whichever
// trips first flips the direction.
func (p *Patrol) Step(x, width, screenWidth, speed float64) float64 {
	if p.State == nil {
		p.State = PatrolForward
	}
	return p.State.step(p, x, width, screenWidth, speed)
}
