package ebitenhost

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/tetra/internal/domain/geom"
	"github.com/younwookim/tetra/internal/graphics/batch"
)

var errNoTarget = errors.New("no render target bound")

// Backend submits draw calls to the ebiten image bound as target
type Backend struct {
	res    *Resources
	target *ebiten.Image

	// reused between calls
	vertices []ebiten.Vertex
}

// NewBackend creates a backend resolving handles through res
func NewBackend(res *Resources) *Backend {
	return &Backend{res: res}
}

// SetTarget binds the image draw calls render into (nil unbinds)
func (b *Backend) SetTarget(target *ebiten.Image) {
	b.target = target
}

// SubmitDraw implements batch.Backend
func (b *Backend) SubmitDraw(call batch.DrawCall) error {
	if b.target == nil {
		return errNoTarget
	}
	tex, ok := b.res.Texture(call.Texture)
	if !ok {
		return fmt.Errorf("texture %d is not registered", call.Texture)
	}

	b.vertices = appendVertices(b.vertices[:0], call.Vertices, tex.Bounds())

	if call.Shader == batch.DefaultShader {
		b.target.DrawTriangles32(b.vertices, call.Indices, tex, &ebiten.DrawTrianglesOptions{
			Blend: blendFor(call.Blend),
		})
		return nil
	}

	shader, ok := b.res.Shader(call.Shader)
	if !ok {
		return fmt.Errorf("shader %d is not registered", call.Shader)
	}
	op := &ebiten.DrawTrianglesShaderOptions{
		Blend: blendFor(call.Blend),
	}
	op.Images[0] = tex
	b.target.DrawTrianglesShader32(b.vertices, call.Indices, shader, op)
	return nil
}

// appendVertices converts normalized UVs into ebiten's texel coordinates
// within bounds.
func appendVertices(dst []ebiten.Vertex, src []geom.Vertex, bounds image.Rectangle) []ebiten.Vertex {
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	for _, v := range src {
		dst = append(dst, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   ox + v.U*w,
			SrcY:   oy + v.V*h,
			ColorR: v.Color.R,
			ColorG: v.Color.G,
			ColorB: v.Color.B,
			ColorA: v.Color.A,
		})
	}
	return dst
}

// blendFor maps a renderer blend mode onto an ebiten blend
func blendFor(mode batch.BlendMode) ebiten.Blend {
	switch mode {
	case batch.BlendAdditive:
		return ebiten.BlendLighter
	case batch.BlendOpaque:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
