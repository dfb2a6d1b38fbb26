// Package ebitenhost runs the game loop inside an ebiten window.
//
// It provides the window surface, translates ebiten input into loop events,
// owns the texture and shader tables the renderer's handles point into, and
// implements the renderer backend on top of Image.DrawTriangles32.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/tetra/internal/graphics/batch"
)

// Resources maps renderer handles to ebiten images and shaders.
// Handles are never reused, so a removed handle stays invalid.
type Resources struct {
	textures    map[batch.TextureID]*ebiten.Image
	shaders     map[batch.ShaderID]*ebiten.Shader
	nextTexture batch.TextureID
	nextShader  batch.ShaderID
}

// NewResources creates empty tables
func NewResources() *Resources {
	return &Resources{
		textures:    make(map[batch.TextureID]*ebiten.Image),
		shaders:     make(map[batch.ShaderID]*ebiten.Shader),
		nextTexture: 1,
		nextShader:  1,
	}
}

// AddTexture registers an image and returns its handle
func (r *Resources) AddTexture(img *ebiten.Image) batch.TextureID {
	id := r.nextTexture
	r.nextTexture++
	r.textures[id] = img
	return id
}

// RemoveTexture drops a texture. Quads still referencing it fail at flush.
func (r *Resources) RemoveTexture(id batch.TextureID) {
	delete(r.textures, id)
}

// Texture returns the image for a handle
func (r *Resources) Texture(id batch.TextureID) (*ebiten.Image, bool) {
	img, ok := r.textures[id]
	return img, ok
}

// AddShader registers a Kage shader and returns its handle
func (r *Resources) AddShader(s *ebiten.Shader) batch.ShaderID {
	id := r.nextShader
	r.nextShader++
	r.shaders[id] = s
	return id
}

// RemoveShader drops a shader
func (r *Resources) RemoveShader(id batch.ShaderID) {
	delete(r.shaders, id)
}

// Shader returns the shader for a handle
func (r *Resources) Shader(id batch.ShaderID) (*ebiten.Shader, bool) {
	s, ok := r.shaders[id]
	return s, ok
}

// TextureSize implements batch.Resources
func (r *Resources) TextureSize(id batch.TextureID) (int, int, bool) {
	img, ok := r.textures[id]
	if !ok {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}

// HasShader implements batch.Resources
func (r *Resources) HasShader(id batch.ShaderID) bool {
	_, ok := r.shaders[id]
	return ok
}
