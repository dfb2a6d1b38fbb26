package loop

import (
	"fmt"
	"time"
)

const (
	// DefaultTickRate is the number of fixed updates per second
	DefaultTickRate = 60.0
	// DefaultMaxCatchUpSteps caps update calls per real frame
	DefaultMaxCatchUpSteps = 5
)

// Config holds the loop options. It is copied at construction and never
// changes while the loop runs.
type Config struct {
	// Timestep is the fixed simulation step passed to every update
	Timestep time.Duration
	// MaxCatchUpSteps is the most update calls one frame may make.
	// Whole timesteps left over once the cap is hit are discarded.
	MaxCatchUpSteps int
	// QuitOnEscape stops the loop when Escape is pressed
	QuitOnEscape bool
}

// DefaultConfig returns a 60 Hz loop with the default catch-up cap
func DefaultConfig() Config {
	return Config{
		Timestep:        TimestepForRate(DefaultTickRate),
		MaxCatchUpSteps: DefaultMaxCatchUpSteps,
	}
}

// TimestepForRate converts ticks per second into a timestep
func TimestepForRate(ticksPerSecond float64) time.Duration {
	if ticksPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / ticksPerSecond)
}

// Validate checks the config
func (c Config) Validate() error {
	if c.Timestep <= 0 {
		return fmt.Errorf("invalid timestep %v: must be positive", c.Timestep)
	}
	if c.MaxCatchUpSteps < 1 {
		return fmt.Errorf("invalid max catch-up steps %d: must be at least 1", c.MaxCatchUpSteps)
	}
	return nil
}
