package loop

import "time"

// ClockState is the time accounting of one loop
type ClockState struct {
	Accumulator time.Duration // unspent simulation time
	Timestep    time.Duration
	MaxSteps    int

	Ticks   uint64        // update steps run so far
	Dropped time.Duration // simulation time discarded by the catch-up cap
}

// NewClockState creates a clock for the given step and cap
func NewClockState(timestep time.Duration, maxSteps int) ClockState {
	return ClockState{Timestep: timestep, MaxSteps: maxSteps}
}

// Accumulate adds real elapsed time. Negative durations are ignored.
func (c *ClockState) Accumulate(elapsed time.Duration) {
	if elapsed > 0 {
		c.Accumulator += elapsed
	}
}

// Drain runs step once per whole timestep in the accumulator, at most
// MaxSteps times. If the cap stops the drain with whole timesteps still
// pending, they are discarded and only the sub-step remainder is kept, so the
// accumulator always ends in [0, Timestep).
//
// A step error stops the drain immediately; the failed step is not counted.
func (c *ClockState) Drain(step func() error) (steps int, dropped time.Duration, err error) {
	for c.Accumulator >= c.Timestep && steps < c.MaxSteps {
		if err := step(); err != nil {
			return steps, 0, err
		}
		c.Accumulator -= c.Timestep
		c.Ticks++
		steps++
	}

	if c.Accumulator >= c.Timestep {
		rem := c.Accumulator % c.Timestep
		dropped = c.Accumulator - rem
		c.Accumulator = rem
		c.Dropped += dropped
	}
	return steps, dropped, nil
}

// Alpha returns how far the accumulator is through the next step, in [0, 1)
func (c *ClockState) Alpha() float64 {
	if c.Timestep <= 0 {
		return 0
	}
	return float64(c.Accumulator) / float64(c.Timestep)
}
