package geom

import "github.com/go-gl/mathgl/mgl32"

// Transform places a quad on screen.
// Origin is the pivot in unscaled quad pixels; rotation (radians) and scale
// are applied around it, then the pivot is moved to Position.
// A zero Scale component means 1 on that axis.
type Transform struct {
	Position Vec2
	Scale    Vec2
	Rotation float32
	Origin   Vec2
}

// At returns an unrotated, unscaled transform at the given position
func At(x, y float32) Transform {
	return Transform{Position: Vec2{x, y}, Scale: Vec2{1, 1}}
}

// Matrix returns the homogeneous 2D matrix for the transform.
// A zero-value Transform is the identity.
func (t Transform) Matrix() mgl32.Mat3 {
	sx, sy := t.Scale.X, t.Scale.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	m := mgl32.Translate2D(t.Position.X, t.Position.Y)
	if t.Rotation != 0 {
		m = m.Mul3(mgl32.HomogRotate2D(t.Rotation))
	}
	m = m.Mul3(mgl32.Scale2D(sx, sy))
	return m.Mul3(mgl32.Translate2D(-t.Origin.X, -t.Origin.Y))
}

// Corners returns the screen positions of a w x h quad under the transform,
// in the order top-left, top-right, bottom-right, bottom-left.
func (t Transform) Corners(w, h float32) [4]Vec2 {
	m := t.Matrix()
	local := [4]mgl32.Vec3{
		{0, 0, 1},
		{w, 0, 1},
		{w, h, 1},
		{0, h, 1},
	}
	var out [4]Vec2
	for i, p := range local {
		q := m.Mul3x1(p)
		out[i] = Vec2{X: q.X(), Y: q.Y()}
	}
	return out
}
