// Package headless provides a window-less platform, graphics backend and
// texture table so the loop can run without a display (benchmarks, soak
// runs, replays on CI).
package headless

import (
	"time"

	"github.com/younwookim/tetra/internal/graphics/batch"
	"github.com/younwookim/tetra/internal/input"
)

// Platform presents nowhere. After MaxFrames presents it reports a quit
// event; zero means run until stopped.
type Platform struct {
	MaxFrames int

	presented int
}

// NewPlatform creates a platform that quits after maxFrames frames
func NewPlatform(maxFrames int) *Platform {
	return &Platform{MaxFrames: maxFrames}
}

// PollEvents implements loop.Platform
func (p *Platform) PollEvents() ([]input.Event, error) {
	if p.MaxFrames > 0 && p.presented >= p.MaxFrames-1 {
		return []input.Event{input.QuitEvent()}, nil
	}
	return nil, nil
}

// Present implements loop.Platform
func (p *Platform) Present() error {
	p.presented++
	return nil
}

// Presented returns the number of presented frames
func (p *Platform) Presented() int {
	return p.presented
}

// StepTimer reports the same elapsed time every frame, so each frame pays
// for a fixed number of updates regardless of how fast it actually ran.
type StepTimer struct {
	Step time.Duration
}

// Elapsed implements loop.FrameTimer
func (t StepTimer) Elapsed() time.Duration {
	return t.Step
}

// Backend counts submissions instead of drawing them
type Backend struct {
	Calls    int
	Quads    int
	Vertices int
	ByBlend  map[batch.BlendMode]int
}

// NewBackend creates a counting backend
func NewBackend() *Backend {
	return &Backend{ByBlend: make(map[batch.BlendMode]int)}
}

// SubmitDraw implements batch.Backend
func (b *Backend) SubmitDraw(call batch.DrawCall) error {
	if b.ByBlend == nil {
		b.ByBlend = make(map[batch.BlendMode]int)
	}
	b.Calls++
	b.Quads += call.Quads
	b.Vertices += len(call.Vertices)
	b.ByBlend[call.Blend]++
	return nil
}

// Textures is a fixed-size texture table without pixel data
type Textures struct {
	sizes [][2]int
}

// NewTextures creates an empty table
func NewTextures() *Textures {
	return &Textures{}
}

// Add registers a texture of the given size and returns its handle
func (t *Textures) Add(w, h int) batch.TextureID {
	t.sizes = append(t.sizes, [2]int{w, h})
	return batch.TextureID(len(t.sizes))
}

// TextureSize implements batch.Resources
func (t *Textures) TextureSize(id batch.TextureID) (int, int, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(t.sizes) {
		return 0, 0, false
	}
	return t.sizes[i][0], t.sizes[i][1], true
}

// HasShader implements batch.Resources. Headless runs have no custom shaders.
func (t *Textures) HasShader(batch.ShaderID) bool {
	return false
}
