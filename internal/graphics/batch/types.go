// Package batch implements the batching sprite renderer.
//
// Quads pushed during a draw callback are kept in submission order and
// flushed as the smallest number of backend draw calls that still reproduces
// the unbatched result: consecutive quads sharing texture, shader and blend
// mode are merged, nothing is ever reordered.
package batch

import (
	"github.com/younwookim/tetra/internal/domain/geom"
)

// TextureID is an opaque handle into an externally owned texture table.
// The zero value is never a valid texture.
type TextureID uint32

// ShaderID is an opaque handle into an externally owned shader table.
// Zero selects the backend's default sprite shader.
type ShaderID uint32

// DefaultShader selects the backend's built-in sprite shader
const DefaultShader ShaderID = 0

// BlendMode selects how a quad is composited onto the target
type BlendMode uint8

const (
	BlendAlpha    BlendMode = iota // source-over
	BlendAdditive                  // lighter
	BlendOpaque                    // copy
)

// String returns the name of the blend mode
func (b BlendMode) String() string {
	switch b {
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	case BlendOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// RenderState is the non-texture pipeline state a quad is drawn with
type RenderState struct {
	Shader ShaderID
	Blend  BlendMode
}

// DrawRequest is one textured quad waiting to be flushed
type DrawRequest struct {
	Texture   TextureID
	Source    geom.Rect // texel rect; empty means the whole texture
	Transform geom.Transform
	Color     geom.Color
	State     RenderState

	// Index is the submission index assigned by Push
	Index uint64
}

// batchKey is the state a run of requests must share
type batchKey struct {
	texture TextureID
	state   RenderState
}

func (r *DrawRequest) key() batchKey {
	return batchKey{texture: r.Texture, state: r.State}
}

// DrawCall is a single submission handed to the backend.
// Vertices and Indices alias the renderer's vertex buffer and are only valid
// for the duration of SubmitDraw.
type DrawCall struct {
	Texture  TextureID
	Shader   ShaderID
	Blend    BlendMode
	Vertices []geom.Vertex
	Indices  []uint32

	// FirstIndex is the submission index of the first quad in the call
	FirstIndex uint64
	Quads      int
}

// Backend receives draw calls. It is the command-buffer side of the graphics
// layer: bind texture and shader, set blend, submit vertices and indices.
type Backend interface {
	SubmitDraw(call DrawCall) error
}

// Resources resolves handles against the externally owned resource tables
type Resources interface {
	// TextureSize returns the size in texels of a live texture
	TextureSize(id TextureID) (w, h int, ok bool)
	// HasShader reports whether a non-default shader handle is live
	HasShader(id ShaderID) bool
}

// Stats describes the most recent flush
type Stats struct {
	DrawCalls int
	Quads     int
}
