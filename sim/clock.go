package sim

import "time"

const defaultMaxCatchUp = 5

// Clock turns elapsed wall time into a number of fixed ticks to run.
// Leftover time carries into the next call; a backlog longer than the
// catch-up limit is dropped instead of being replayed.
type Clock struct {
	step       time.Duration
	acc        time.Duration
	maxCatchUp int
}

func NewClock(tickRate, maxCatchUp int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxCatchUp <= 0 {
		maxCatchUp = defaultMaxCatchUp
	}
	return &Clock{
		step:       time.Second / time.Duration(tickRate),
		maxCatchUp: maxCatchUp,
	}
}

func (c *Clock) Step() time.Duration { return c.step }

// Seconds is the tick length handed to Session.Advance.
func (c *Clock) Seconds() float64 { return c.step.Seconds() }

// Ticks adds elapsed to the accumulator and returns how many ticks are due.
func (c *Clock) Ticks(elapsed time.Duration) int {
	if elapsed > 0 {
		c.acc += elapsed
	}
	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	if n > c.maxCatchUp {
		n = c.maxCatchUp
	}
	return n
}

// Run advances s by however many ticks elapsed allows and returns that count.
func (c *Clock) Run(s *Session, elapsed time.Duration) int {
	n := c.Ticks(elapsed)
	for i := 0; i < n; i++ {
		s.Advance(c.Seconds())
	}
	return n
}
