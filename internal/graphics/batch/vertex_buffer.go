package batch

import "github.com/younwookim/tetra/internal/domain/geom"

const (
	verticesPerQuad = 4
	indicesPerQuad  = 6
)

// VertexBuffer is a growable contiguous store of quad vertices and indices.
// Capacity doubles when exhausted; growing keeps everything already written.
type VertexBuffer struct {
	Vertices []geom.Vertex
	Indices  []uint32

	grows int
}

// NewVertexBuffer creates a buffer with room for the given number of quads
func NewVertexBuffer(quads int) *VertexBuffer {
	if quads < 1 {
		quads = 1
	}
	return &VertexBuffer{
		Vertices: make([]geom.Vertex, 0, quads*verticesPerQuad),
		Indices:  make([]uint32, 0, quads*indicesPerQuad),
	}
}

// Reset empties the buffer and keeps its capacity
func (b *VertexBuffer) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
}

// Quads returns the number of quads written since the last Reset
func (b *VertexBuffer) Quads() int {
	return len(b.Vertices) / verticesPerQuad
}

// QuadCapacity returns how many quads fit without growing
func (b *VertexBuffer) QuadCapacity() int {
	return cap(b.Vertices) / verticesPerQuad
}

// Grows returns how many times the buffer has grown
func (b *VertexBuffer) Grows() int {
	return b.grows
}

// Reserve makes room for n more quads, doubling capacity until they fit
func (b *VertexBuffer) Reserve(n int) {
	need := b.Quads() + n
	capQuads := b.QuadCapacity()
	if need <= capQuads {
		return
	}
	if capQuads < 1 {
		capQuads = 1
	}
	for capQuads < need {
		capQuads *= 2
	}

	vs := make([]geom.Vertex, len(b.Vertices), capQuads*verticesPerQuad)
	copy(vs, b.Vertices)
	is := make([]uint32, len(b.Indices), capQuads*indicesPerQuad)
	copy(is, b.Indices)
	b.Vertices, b.Indices = vs, is
	b.grows++
}

// AppendQuad writes four corners (TL, TR, BR, BL) and the two triangles
// covering them. Indices are relative to the start of the buffer.
func (b *VertexBuffer) AppendQuad(corners [4]geom.Vec2, uv geom.Rect, c geom.Color) {
	b.Reserve(1)

	base := uint32(len(b.Vertices))
	u0, v0 := uv.X, uv.Y
	u1, v1 := uv.X+uv.W, uv.Y+uv.H

	b.Vertices = append(b.Vertices,
		geom.Vertex{X: corners[0].X, Y: corners[0].Y, U: u0, V: v0, Color: c},
		geom.Vertex{X: corners[1].X, Y: corners[1].Y, U: u1, V: v0, Color: c},
		geom.Vertex{X: corners[2].X, Y: corners[2].Y, U: u1, V: v1, Color: c},
		geom.Vertex{X: corners[3].X, Y: corners[3].Y, U: u0, V: v1, Color: c},
	)
	b.Indices = append(b.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}
