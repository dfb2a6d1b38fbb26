package loop

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/tetra/internal/application/state"
	"github.com/younwookim/tetra/internal/domain/failure"
	"github.com/younwookim/tetra/internal/domain/geom"
	"github.com/younwookim/tetra/internal/graphics/batch"
	"github.com/younwookim/tetra/internal/input"
)

// mockPlatform is a test double for Platform
type mockPlatform struct {
	events     map[int][]input.Event // keyed by poll number (0-based)
	polls      int
	presents   int
	pollErr    error
	presentErr error
}

func (p *mockPlatform) PollEvents() ([]input.Event, error) {
	if p.pollErr != nil {
		return nil, p.pollErr
	}
	ev := p.events[p.polls]
	p.polls++
	return ev, nil
}

func (p *mockPlatform) Present() error {
	if p.presentErr != nil {
		return p.presentErr
	}
	p.presents++
	return nil
}

// scriptedTimer returns fixed durations in order, then zero
type scriptedTimer struct {
	durations []time.Duration
	i         int
}

func (s *scriptedTimer) Elapsed() time.Duration {
	if s.i >= len(s.durations) {
		return 0
	}
	d := s.durations[s.i]
	s.i++
	return d
}

type countingBackend struct {
	calls int
}

func (b *countingBackend) SubmitDraw(batch.DrawCall) error {
	b.calls++
	return nil
}

type oneTexture struct{}

func (oneTexture) TextureSize(id batch.TextureID) (int, int, bool) { return 16, 16, id == 1 }
func (oneTexture) HasShader(batch.ShaderID) bool                     { return false }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoop(t *testing.T, cfg Config, p Platform, r Renderer) *Loop {
	t.Helper()
	l, err := New(cfg, p, r)
	require.NoError(t, err)
	l.SetLogger(quietLogger())
	return l
}

func testConfig() Config {
	return Config{Timestep: 16 * ms, MaxCatchUpSteps: 5}
}

func noopUpdate(time.Duration) error { return nil }
func noopDraw(float64) error         { return nil }

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{}, &mockPlatform{}, nil)
	assert.Error(t, err)
}

func TestLoop_Lifecycle(t *testing.T) {
	l := newTestLoop(t, testConfig(), &mockPlatform{}, nil)
	assert.Equal(t, state.NotStarted, l.State())

	_, err := l.Advance(16*ms, noopUpdate)
	assert.ErrorIs(t, err, ErrNotRunning)

	require.NoError(t, l.Start())
	assert.Equal(t, state.Running, l.State())
	assert.ErrorIs(t, l.Start(), ErrAlreadyRunning)

	l.Stop()
	assert.Equal(t, state.Running, l.State(), "stop is observed, not immediate")
	assert.True(t, l.ObserveStop())
	assert.Equal(t, state.Stopped, l.State())

	assert.ErrorIs(t, l.Start(), ErrLoopFinished)
	assert.ErrorIs(t, l.Run(context.Background(), noopUpdate, noopDraw), ErrLoopFinished)
}

func TestLoop_Fail(t *testing.T) {
	l := newTestLoop(t, testConfig(), &mockPlatform{}, nil)
	require.NoError(t, l.Start())

	cause := &failure.BackendError{Op: "run", Err: errors.New("device lost")}
	assert.Same(t, cause, l.Fail(cause))
	assert.Equal(t, state.Errored, l.State())
	assert.Same(t, cause, l.Err())

	_ = l.Fail(errors.New("later"))
	assert.Same(t, cause, l.Err(), "a finished loop keeps its first error")
}

func TestLoop_Frame_CatchUpScenario(t *testing.T) {
	l := newTestLoop(t, testConfig(), &mockPlatform{}, nil)
	require.NoError(t, l.Start())

	updates := 0
	var drawAlpha float64
	draws := 0
	err := l.Frame(100*ms,
		func(dt time.Duration) error {
			assert.Equal(t, 16*ms, dt)
			updates++
			return nil
		},
		func(alpha float64) error {
			draws++
			drawAlpha = alpha
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 5, updates)
	assert.Equal(t, 1, draws)
	assert.Equal(t, 4*ms, l.Clock().Accumulator)
	assert.InDelta(t, 0.25, drawAlpha, 1e-9)
}

func TestLoop_AlphaMatchesClockAtDraw(t *testing.T) {
	l := newTestLoop(t, testConfig(), &mockPlatform{}, nil)
	require.NoError(t, l.Start())

	for _, elapsed := range []time.Duration{3 * ms, 17 * ms, 40 * ms, 0, 15 * ms, 250 * ms} {
		err := l.Frame(elapsed, noopUpdate, func(alpha float64) error {
			clock := l.Clock()
			assert.Equal(t, float64(clock.Accumulator)/float64(clock.Timestep), alpha)
			assert.GreaterOrEqual(t, alpha, 0.0)
			assert.Less(t, alpha, 1.0)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestLoop_UpdateErrorAborts(t *testing.T) {
	p := &mockPlatform{}
	l := newTestLoop(t, testConfig(), p, nil)
	require.NoError(t, l.Start())

	drawn := false
	err := l.Frame(50*ms,
		func(time.Duration) error { return assert.AnError },
		func(float64) error { drawn = true; return nil })

	var ce *failure.CallbackError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "update", ce.Phase)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, drawn)
	assert.Equal(t, 0, p.presents)
	assert.Equal(t, state.Errored, l.State())
	assert.Equal(t, err, l.Err())
	assert.ErrorIs(t, l.Start(), ErrLoopFinished)
}

func TestLoop_DrawErrorSubmitsNothing(t *testing.T) {
	backend := &countingBackend{}
	r := batch.NewRenderer(backend, oneTexture{}, 8)
	p := &mockPlatform{}
	l := newTestLoop(t, testConfig(), p, r)
	require.NoError(t, l.Start())

	err := l.Frame(16*ms, noopUpdate, func(float64) error {
		r.PushQuad(1, geom.Rect{}, geom.At(0, 0), geom.White)
		r.PushQuad(1, geom.Rect{}, geom.At(8, 0), geom.White)
		return errors.New("draw failed")
	})

	var ce *failure.CallbackError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "draw", ce.Phase)
	assert.Equal(t, 0, backend.calls)
	assert.Equal(t, 0, r.Pending())
	assert.Equal(t, 0, p.presents, "failed frame is not presented")
}

func TestLoop_FlushErrorAborts(t *testing.T) {
	r := batch.NewRenderer(&countingBackend{}, oneTexture{}, 8)
	l := newTestLoop(t, testConfig(), &mockPlatform{}, r)
	require.NoError(t, l.Start())

	err := l.Frame(16*ms, noopUpdate, func(float64) error {
		r.PushQuad(42, geom.Rect{}, geom.At(0, 0), geom.White)
		return nil
	})

	var re *failure.ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, state.Errored, l.State())
}

func TestLoop_PlatformErrors(t *testing.T) {
	tests := []struct {
		name     string
		platform *mockPlatform
		op       string
	}{
		{"poll", &mockPlatform{pollErr: assert.AnError}, "poll events"},
		{"present", &mockPlatform{presentErr: assert.AnError}, "present"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoop(t, testConfig(), tt.platform, nil)
			err := l.Run(context.Background(), noopUpdate, noopDraw)

			var be *failure.BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.op, be.Op)
			assert.Equal(t, state.Errored, l.State())
		})
	}
}

func TestLoop_Run_StopObservedAtNextFrame(t *testing.T) {
	p := &mockPlatform{}
	l := newTestLoop(t, testConfig(), p, nil)
	l.SetTimer(&scriptedTimer{durations: []time.Duration{16 * ms, 16 * ms, 16 * ms, 16 * ms}})

	updates, draws := 0, 0
	err := l.Run(context.Background(),
		func(time.Duration) error {
			updates++
			if updates == 2 {
				l.Stop()
			}
			return nil
		},
		func(float64) error { draws++; return nil })

	require.NoError(t, err)
	assert.Equal(t, state.Stopped, l.State())
	assert.Equal(t, 2, updates)
	assert.Equal(t, 2, draws, "the frame that requested the stop still draws")
	assert.Equal(t, 2, p.presents)
	assert.Equal(t, uint64(2), l.Frames())
}

func TestLoop_Run_QuitEventStops(t *testing.T) {
	p := &mockPlatform{events: map[int][]input.Event{
		2: {input.QuitEvent()},
	}}
	l := newTestLoop(t, testConfig(), p, nil)
	l.SetTimer(&scriptedTimer{durations: []time.Duration{16 * ms, 16 * ms, 16 * ms, 16 * ms, 16 * ms}})

	draws := 0
	err := l.Run(context.Background(), noopUpdate, func(float64) error { draws++; return nil })

	require.NoError(t, err)
	assert.Equal(t, 3, draws)
	assert.Equal(t, 3, p.polls)
}

func TestLoop_Run_QuitOnEscape(t *testing.T) {
	cfg := testConfig()
	cfg.QuitOnEscape = true
	p := &mockPlatform{events: map[int][]input.Event{
		1: {input.KeyDownEvent(input.KeyEscape)},
	}}
	l := newTestLoop(t, cfg, p, nil)

	require.NoError(t, l.Run(context.Background(), noopUpdate, noopDraw))
	assert.Equal(t, 2, p.polls)
}

func TestLoop_Run_EscapeIgnoredByDefault(t *testing.T) {
	p := &mockPlatform{events: map[int][]input.Event{
		0: {input.KeyDownEvent(input.KeyEscape)},
		3: {input.QuitEvent()},
	}}
	l := newTestLoop(t, testConfig(), p, nil)

	require.NoError(t, l.Run(context.Background(), noopUpdate, noopDraw))
	assert.Equal(t, 4, p.polls)
}

func TestLoop_Run_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &mockPlatform{}
	l := newTestLoop(t, testConfig(), p, nil)

	draws := 0
	err := l.Run(ctx, noopUpdate, func(float64) error {
		draws++
		if draws == 3 {
			cancel()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, draws)
	assert.Equal(t, state.Stopped, l.State())
}

func TestLoop_Run_NoPlatform(t *testing.T) {
	l := newTestLoop(t, testConfig(), nil, nil)
	assert.ErrorIs(t, l.Run(context.Background(), noopUpdate, noopDraw), ErrNoPlatform)
	assert.Equal(t, state.NotStarted, l.State())
}

func TestLoop_PressedKeySurvivesUntilUpdate(t *testing.T) {
	p := &mockPlatform{events: map[int][]input.Event{
		0: {input.KeyDownEvent(input.KeySpace)},
	}}
	l := newTestLoop(t, testConfig(), p, nil)
	require.NoError(t, l.Start())

	var seen []bool
	update := func(time.Duration) error {
		seen = append(seen, l.Input().IsPressed(input.KeySpace))
		return nil
	}

	// Frame 0: key goes down but no step is due
	require.NoError(t, l.Frame(5*ms, update, noopDraw))
	// Frame 1: two steps; only the first sees the press
	require.NoError(t, l.Frame(32*ms, update, noopDraw))

	assert.Equal(t, []bool{true, false}, seen)
	assert.True(t, l.Input().IsDown(input.KeySpace))
}
