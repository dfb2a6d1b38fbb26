// Package geom holds the geometry shared by the loop and the batch renderer:
// vectors, rectangles, colours, transforms and vertices.
package geom

// Vec2 is a 2D vector in pixels
type Vec2 struct {
	X, Y float32
}

// V2 returns a Vec2
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Lerp interpolates between v and o by t (0 = v, 1 = o).
// Used by draw callbacks to blend the previous and current simulation states.
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Rect is an axis-aligned rectangle in pixels
type Rect struct {
	X, Y, W, H float32
}

// R returns a Rect
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// IsEmpty reports whether the rect has no area
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Color is a straight-alpha RGBA colour with components in [0, 1]
type Color struct {
	R, G, B, A float32
}

// Common colours
var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// RGBA returns a colour from float components
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGBA8 returns a colour from 8-bit components
func RGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// Vertex is a single vertex as written into a vertex buffer.
// U and V are normalized texture coordinates.
type Vertex struct {
	X, Y  float32
	U, V  float32
	Color Color
}
