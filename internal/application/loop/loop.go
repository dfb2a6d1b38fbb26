// Package loop provides the fixed-timestep game loop driver.
//
// Each real frame the loop measures elapsed wall time, runs zero or more
// fixed-size update steps to consume it, draws once with the interpolation
// factor between the last two steps, flushes the renderer and presents.
// Everything runs on the caller's goroutine; stop requests are only observed
// between frames.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/younwookim/tetra/internal/application/state"
	"github.com/younwookim/tetra/internal/domain/failure"
	"github.com/younwookim/tetra/internal/input"
)

var (
	// ErrNotRunning is returned by frame operations outside the Running state
	ErrNotRunning = errors.New("loop is not running")
	// ErrAlreadyRunning is returned when starting a running loop
	ErrAlreadyRunning = errors.New("loop is already running")
	// ErrLoopFinished is returned when starting a stopped or failed loop.
	// A new Loop is needed to run again.
	ErrLoopFinished = errors.New("loop has finished and cannot be restarted")
	// ErrNoPlatform is returned by Run when the loop has no platform
	ErrNoPlatform = errors.New("loop has no platform")
)

// UpdateFunc advances the simulation by one fixed step
type UpdateFunc func(dt time.Duration) error

// DrawFunc renders the current state. alpha in [0, 1) is the fraction of a
// step elapsed since the last update.
type DrawFunc func(alpha float64) error

// Platform is the windowing side of the loop
type Platform interface {
	PollEvents() ([]input.Event, error)
	Present() error
}

// Renderer is the batch renderer as seen by the loop
type Renderer interface {
	Flush() error
	Discard()
}

// Loop drives update and draw callbacks at a fixed timestep
type Loop struct {
	cfg      Config
	clock    ClockState
	platform Platform
	renderer Renderer
	timer    FrameTimer
	input    *input.State
	logger   *slog.Logger

	status        state.LoopState
	stopRequested bool
	err           error
	frames        uint64
	alpha         float64
}

// New creates a loop. platform may be nil for hosts that drive Advance and
// Render themselves; renderer may be nil when draw submits elsewhere.
func New(cfg Config, platform Platform, renderer Renderer) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loop{
		cfg:      cfg,
		clock:    NewClockState(cfg.Timestep, cfg.MaxCatchUpSteps),
		platform: platform,
		renderer: renderer,
		timer:    NewWallTimer(),
		input:    input.NewState(),
		logger:   slog.Default(),
		status:   state.NotStarted,
	}, nil
}

// SetTimer replaces the frame timer. Useful for replays and tests.
func (l *Loop) SetTimer(t FrameTimer) {
	l.timer = t
}

// SetLogger replaces the logger
func (l *Loop) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// Config returns the loop's configuration
func (l *Loop) Config() Config { return l.cfg }

// Clock returns a snapshot of the time accounting
func (l *Loop) Clock() ClockState { return l.clock }

// State returns the lifecycle state
func (l *Loop) State() state.LoopState { return l.status }

// Err returns the error that moved the loop to Errored, if any
func (l *Loop) Err() error { return l.err }

// Input returns the keyboard state fed by polled events
func (l *Loop) Input() *input.State { return l.input }

// Alpha returns the interpolation factor of the most recent frame
func (l *Loop) Alpha() float64 { return l.alpha }

// Frames returns the number of completed frames
func (l *Loop) Frames() uint64 { return l.frames }

// Start moves the loop from NotStarted to Running
func (l *Loop) Start() error {
	switch {
	case l.status == state.Running:
		return ErrAlreadyRunning
	case l.status.Finished():
		return ErrLoopFinished
	}
	l.status = state.Running
	l.logger.Info("loop started",
		"timestep", l.cfg.Timestep,
		"maxCatchUpSteps", l.cfg.MaxCatchUpSteps)
	return nil
}

// Stop requests a clean stop. The request takes effect at the top of the
// next frame; a frame in progress always completes.
func (l *Loop) Stop() {
	l.stopRequested = true
}

// ObserveStop reports whether a stop was requested and, if so, moves a
// running loop to Stopped.
func (l *Loop) ObserveStop() bool {
	if !l.stopRequested {
		return false
	}
	if l.status == state.Running {
		l.status = state.Stopped
		l.logger.Info("loop stopped", "frames", l.frames, "ticks", l.clock.Ticks, "dropped", l.clock.Dropped)
	}
	return true
}

// HandleEvents applies polled events to the input state and turns quit
// events (and Escape, when configured) into a stop request.
func (l *Loop) HandleEvents(events []input.Event) {
	l.input.Apply(events)
	if l.input.QuitRequested() {
		l.Stop()
	}
	if l.cfg.QuitOnEscape && l.input.IsPressed(input.KeyEscape) {
		l.Stop()
	}
}

// PollFrom polls events from p and handles them. Hosts that own the main
// thread call it at the start of their update phase.
func (l *Loop) PollFrom(p Platform) error {
	if l.status != state.Running {
		return ErrNotRunning
	}
	events, err := p.PollEvents()
	if err != nil {
		return l.fail(&failure.BackendError{Op: "poll events", Err: err})
	}
	l.HandleEvents(events)
	return nil
}

// Advance adds elapsed wall time and runs the update steps it pays for.
// Transient input is cleared after every step.
func (l *Loop) Advance(elapsed time.Duration, update UpdateFunc) (int, error) {
	if l.status != state.Running {
		return 0, ErrNotRunning
	}

	l.clock.Accumulate(elapsed)
	steps, dropped, err := l.clock.Drain(func() error {
		if err := update(l.clock.Timestep); err != nil {
			return err
		}
		l.input.ClearTransient()
		return nil
	})
	if err != nil {
		return steps, l.fail(&failure.CallbackError{Phase: "update", Tick: l.clock.Ticks, Err: err})
	}
	if dropped > 0 {
		l.logger.Debug("catch-up cap reached, discarding time",
			"steps", steps,
			"dropped", dropped,
			"elapsed", elapsed)
	}

	l.alpha = l.clock.Alpha()
	return steps, nil
}

// Render calls draw once with the current interpolation factor and flushes
// the renderer. A draw error discards everything pushed during the call.
func (l *Loop) Render(draw DrawFunc) error {
	if l.status != state.Running {
		return ErrNotRunning
	}

	if err := draw(l.alpha); err != nil {
		if l.renderer != nil {
			l.renderer.Discard()
		}
		return l.fail(&failure.CallbackError{Phase: "draw", Tick: l.clock.Ticks, Err: err})
	}
	if l.renderer != nil {
		if err := l.renderer.Flush(); err != nil {
			return l.fail(err)
		}
	}
	l.frames++
	return nil
}

// Frame runs one full iteration with a known elapsed time:
// poll events, advance, render, present.
func (l *Loop) Frame(elapsed time.Duration, update UpdateFunc, draw DrawFunc) error {
	if l.status != state.Running {
		return ErrNotRunning
	}
	if l.platform == nil {
		return l.fail(ErrNoPlatform)
	}

	if err := l.PollFrom(l.platform); err != nil {
		return err
	}
	if _, err := l.Advance(elapsed, update); err != nil {
		return err
	}
	if err := l.Render(draw); err != nil {
		return err
	}
	if err := l.platform.Present(); err != nil {
		return l.fail(&failure.BackendError{Op: "present", Err: err})
	}
	return nil
}

// Run starts the loop and blocks until it stops or fails. Cancelling ctx
// requests a stop. A clean stop returns nil; otherwise the fatal error is
// returned and the loop is left in Errored.
func (l *Loop) Run(ctx context.Context, update UpdateFunc, draw DrawFunc) error {
	if l.platform == nil {
		return ErrNoPlatform
	}
	if err := l.Start(); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			l.Stop()
		}
		if l.ObserveStop() {
			return nil
		}
		if err := l.Frame(l.timer.Elapsed(), update, draw); err != nil {
			return err
		}
	}
}

// Fail aborts a running loop with an error raised outside of it, such as a
// host whose window or graphics device failed. The loop moves to Errored
// and err is returned. A loop that has already finished is left as it is.
func (l *Loop) Fail(err error) error {
	if l.status != state.Running {
		return err
	}
	return l.fail(err)
}

func (l *Loop) fail(err error) error {
	l.status = state.Errored
	l.err = err
	l.logger.Error("loop aborted", "frames", l.frames, "ticks", l.clock.Ticks, "error", err)
	return err
}
