package ebitenhost

import (
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/tetra/internal/application/loop"
	"github.com/younwookim/tetra/internal/application/state"
	"github.com/younwookim/tetra/internal/domain/failure"
	"github.com/younwookim/tetra/internal/infrastructure/config"
	"github.com/younwookim/tetra/internal/input"
)

// Host implements ebiten.Game on top of a loop.
//
// ebiten owns the main thread, so the loop's frame is split across ebiten's
// callbacks: Update polls events and advances the clock, Draw renders and
// flushes into an offscreen frame. The frame is copied to the screen only
// when the whole render succeeded; otherwise the screen keeps the last good
// frame. TPS is synced to the display rate so every Update is followed by
// one Draw.
type Host struct {
	loop    *loop.Loop
	update  loop.UpdateFunc
	draw    loop.DrawFunc
	backend *Backend

	timer  loop.FrameTimer
	source loop.Platform

	frame     *ebiten.Image
	presented int
	closing   func() bool

	width, height int
	winW, winH    int
	keys          []ebiten.Key
	err           error
}

// NewSurface creates the window surface described by cfg. The window opens
// when Run is called.
func NewSurface(cfg config.WindowConfig, backend *Backend) *Host {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetWindowDecorated(!cfg.Borderless)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowMouse {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if cfg.Maximized {
		ebiten.MaximizeWindow()
	}
	if cfg.Minimized {
		ebiten.MinimizeWindow()
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	h := &Host{
		backend: backend,
		timer:   loop.NewWallTimer(),
		frame:   ebiten.NewImage(cfg.Width, cfg.Height),
		closing: ebiten.IsWindowBeingClosed,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	h.source = h
	return h
}

// SetTimer replaces the frame timer (e.g. with a replay recorder)
func (h *Host) SetTimer(t loop.FrameTimer) {
	h.timer = t
}

// SetEventSource replaces where events are polled from. The source's
// Present is never called; ebiten presents by itself.
func (h *Host) SetEventSource(p loop.Platform) {
	h.source = p
}

// Timer returns the current frame timer
func (h *Host) Timer() loop.FrameTimer {
	return h.timer
}

// Presented returns the number of frames copied to the screen
func (h *Host) Presented() int {
	return h.presented
}

// attach binds the loop and callbacks Update and Draw drive
func (h *Host) attach(l *loop.Loop, update loop.UpdateFunc, draw loop.DrawFunc) {
	h.loop, h.update, h.draw = l, update, draw
}

// Run starts l and blocks until the window closes, the loop stops or a
// fatal error occurs.
func (h *Host) Run(l *loop.Loop, update loop.UpdateFunc, draw loop.DrawFunc) error {
	h.attach(l, update, draw)
	if err := l.Start(); err != nil {
		return err
	}
	return h.finish(ebiten.RunGame(h))
}

// finish settles the loop state once ebiten has returned runErr
func (h *Host) finish(runErr error) error {
	l := h.loop
	switch {
	case runErr == nil || errors.Is(runErr, ebiten.Termination):
		if l.State() == state.Running {
			// ebiten exited on its own (e.g. the browser tab closed)
			l.Stop()
			l.ObserveStop()
		}
		return l.Err()
	case h.err != nil:
		return h.err
	case l.State() == state.Running:
		// window, graphics context or device failure outside the loop
		return l.Fail(&failure.BackendError{Op: "run", Err: runErr})
	default:
		return runErr
	}
}

// Update implements ebiten.Game
func (h *Host) Update() error {
	if h.err != nil {
		return h.err
	}
	if h.loop.ObserveStop() {
		return ebiten.Termination
	}

	elapsed := h.timer.Elapsed()
	if err := h.loop.PollFrom(h.source); err != nil {
		return err
	}
	if h.source != loop.Platform(h) && h.closing() {
		// a replayer does not see the window; closing still stops the loop
		h.loop.Stop()
	}
	steps, err := h.loop.Advance(elapsed, h.update)
	if err != nil {
		return err
	}
	if steps > 1 {
		slog.Debug("catching up", "steps", steps, "elapsed", elapsed)
	}
	return nil
}

// Draw implements ebiten.Game. Render errors are reported by the next
// Update; a failed frame is never shown.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.err != nil || h.loop.State() != state.Running {
		return
	}
	h.frame.Clear()
	h.backend.SetTarget(h.frame)
	err := h.loop.Render(h.draw)
	h.backend.SetTarget(nil)
	if err != nil {
		h.err = err
		return
	}

	screen.DrawImage(h.frame, &ebiten.DrawImageOptions{Blend: ebiten.BlendCopy})
	h.presented++
}

// Layout implements ebiten.Game
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.width, h.height
}

// PollEvents implements loop.Platform by translating ebiten input
func (h *Host) PollEvents() ([]input.Event, error) {
	var events []input.Event

	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	events = translateKeys(events, h.keys, input.EventKeyDown)
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	events = translateKeys(events, h.keys, input.EventKeyUp)

	if w, hh := ebiten.WindowSize(); w != h.winW || hh != h.winH {
		h.winW, h.winH = w, hh
		events = append(events, input.Event{Kind: input.EventResize, W: w, H: hh})
	}
	if h.closing() {
		events = append(events, input.QuitEvent())
	}
	return events, nil
}

// Present implements loop.Platform. ebiten presents after Draw.
func (h *Host) Present() error {
	return nil
}

// Err returns the error that ended the last run, if any
func (h *Host) Err() error {
	if h.err != nil {
		return h.err
	}
	if h.loop != nil {
		return h.loop.Err()
	}
	return errors.New("host has not run")
}
