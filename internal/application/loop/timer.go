package loop

import "time"

// FrameTimer measures real time between frames
type FrameTimer interface {
	// Elapsed returns the time since the previous call.
	// The first call returns zero.
	Elapsed() time.Duration
}

// WallTimer is a FrameTimer backed by the monotonic wall clock
type WallTimer struct {
	last    time.Time
	started bool
	now     func() time.Time
}

// NewWallTimer creates a wall clock timer
func NewWallTimer() *WallTimer {
	return &WallTimer{now: time.Now}
}

// Elapsed implements FrameTimer
func (t *WallTimer) Elapsed() time.Duration {
	now := t.now()
	if !t.started {
		t.started = true
		t.last = now
		return 0
	}
	d := now.Sub(t.last)
	t.last = now
	return d
}

// Reset makes the next Elapsed call return zero
func (t *WallTimer) Reset() {
	t.started = false
}
