// Package sprites provides the bouncing sprites demo scene.
package sprites

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/younwookim/tetra/internal/application/scene"
	"github.com/younwookim/tetra/internal/domain/geom"
	"github.com/younwookim/tetra/internal/graphics/batch"
	"github.com/younwookim/tetra/internal/infrastructure/config"
	"github.com/younwookim/tetra/internal/input"
)

// spawnBurst is how many sprites Space adds
const spawnBurst = 50

// Texture is a loaded texture the scene can draw with
type Texture struct {
	ID       batch.TextureID
	Width    float32
	Height   float32
	Additive bool
}

// Sprite is one bouncing quad. Prev/PrevRot hold the state before the last
// update so Draw can interpolate.
type Sprite struct {
	Prev    geom.Vec2
	Pos     geom.Vec2
	Vel     geom.Vec2
	PrevRot float32
	Rot     float32
	Spin    float32
	Texture int
}

// Scene bounces sprites around a fixed-size area
type Scene struct {
	cfg      config.SpritesConfig
	textures []Texture
	sprites  []Sprite
	bounds   geom.Vec2
	input    *input.State
	rng      *rand.Rand
	paused   bool
	ticks    uint64
}

// New creates the scene. Sprites are spawned deterministically from
// cfg.Seed so recorded runs replay identically.
func New(cfg config.SpritesConfig, textures []Texture, width, height int, in *input.State) (*Scene, error) {
	if len(textures) == 0 {
		return nil, fmt.Errorf("sprites scene needs at least one texture")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid scene size %dx%d", width, height)
	}
	if in == nil {
		in = input.NewState()
	}
	s := &Scene{
		cfg:      cfg,
		textures: textures,
		bounds:   geom.V2(float32(width), float32(height)),
		input:    in,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}
	s.spawn(cfg.Count)
	return s, nil
}

// spawn adds n sprites. Textures are assigned in contiguous blocks so that
// consecutive sprites usually share a batch.
func (s *Scene) spawn(n int) {
	for i := 0; i < n; i++ {
		ti := i * len(s.textures) / n
		tex := s.textures[ti]

		pos := geom.V2(
			s.rng.Float32()*(s.bounds.X-tex.Width),
			s.rng.Float32()*(s.bounds.Y-tex.Height),
		)
		speed := s.cfg.MinSpeed + s.rng.Float64()*(s.cfg.MaxSpeed-s.cfg.MinSpeed)
		angle := s.rng.Float64() * 2 * math.Pi
		spin := (s.rng.Float64()*2 - 1) * s.cfg.Spin

		s.sprites = append(s.sprites, Sprite{
			Prev:    pos,
			Pos:     pos,
			Vel:     geom.V2(float32(speed*math.Cos(angle)), float32(speed*math.Sin(angle))),
			Spin:    float32(spin),
			Texture: ti,
		})
	}
}

// Update implements scene.Scene
func (s *Scene) Update(dt float64) (scene.Scene, error) {
	if s.input.IsPressed(input.KeyP) {
		s.paused = !s.paused
	}
	if s.input.IsPressed(input.KeySpace) {
		s.spawn(spawnBurst)
	}
	if s.paused {
		for i := range s.sprites {
			sp := &s.sprites[i]
			sp.Prev, sp.PrevRot = sp.Pos, sp.Rot
		}
		return nil, nil
	}

	step := float32(dt)
	for i := range s.sprites {
		sp := &s.sprites[i]
		tex := s.textures[sp.Texture]
		sp.Prev, sp.PrevRot = sp.Pos, sp.Rot

		sp.Pos = sp.Pos.Add(geom.V2(sp.Vel.X*step, sp.Vel.Y*step))
		sp.Rot += sp.Spin * step

		maxX, maxY := s.bounds.X-tex.Width, s.bounds.Y-tex.Height
		if sp.Pos.X < 0 {
			sp.Pos.X, sp.Vel.X = -sp.Pos.X, -sp.Vel.X
		} else if sp.Pos.X > maxX {
			sp.Pos.X, sp.Vel.X = 2*maxX-sp.Pos.X, -sp.Vel.X
		}
		if sp.Pos.Y < 0 {
			sp.Pos.Y, sp.Vel.Y = -sp.Pos.Y, -sp.Vel.Y
		} else if sp.Pos.Y > maxY {
			sp.Pos.Y, sp.Vel.Y = 2*maxY-sp.Pos.Y, -sp.Vel.Y
		}
	}
	s.ticks++
	return nil, nil
}

// Draw implements scene.Scene
func (s *Scene) Draw(r scene.Renderer, alpha float64) error {
	a := float32(alpha)
	for i := range s.sprites {
		sp := &s.sprites[i]
		tex := s.textures[sp.Texture]

		pos := sp.Prev.Lerp(sp.Pos, a)
		half := geom.V2(tex.Width/2, tex.Height/2)
		req := batch.DrawRequest{
			Texture: tex.ID,
			Transform: geom.Transform{
				Position: pos.Add(half),
				Scale:    geom.V2(1, 1),
				Rotation: sp.PrevRot + (sp.Rot-sp.PrevRot)*a,
				Origin:   half,
			},
			Color: geom.White,
		}
		if tex.Additive {
			req.State.Blend = batch.BlendAdditive
		}
		r.Push(req)
	}
	return nil
}

// OnEnter implements scene.Scene
func (s *Scene) OnEnter() {}

// OnExit implements scene.Scene
func (s *Scene) OnExit() {}

// Sprites returns the live sprites
func (s *Scene) Sprites() []Sprite {
	return s.sprites
}

// Paused reports whether movement is paused
func (s *Scene) Paused() bool {
	return s.paused
}

// Checksum folds every sprite position into one value. Two runs fed the
// same frame timings and input produce the same checksum.
func (s *Scene) Checksum() uint64 {
	var sum uint64
	for _, sp := range s.sprites {
		sum = sum*31 + uint64(math.Float32bits(sp.Pos.X))
		sum = sum*31 + uint64(math.Float32bits(sp.Pos.Y))
	}
	return sum
}
