// Package game provides the scene manager that plugs into the game loop.
package game

import (
	"time"

	"github.com/younwookim/tetra/internal/application/scene"
)

// Game owns the current Scene and handles transitions.
// Its Update and Draw methods are the loop's update and draw callbacks.
type Game struct {
	current  scene.Scene
	renderer scene.Renderer
	ticks    uint64
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, r scene.Renderer) *Game {
	g := &Game{
		current:  initialScene,
		renderer: r,
	}
	g.current.OnEnter()
	return g
}

// Update runs one fixed step of the current scene and handles scene
// transitions. Matches loop.UpdateFunc.
func (g *Game) Update(dt time.Duration) error {
	next, err := g.current.Update(dt.Seconds())
	if err != nil {
		return err
	}
	g.ticks++

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene. Matches loop.DrawFunc.
func (g *Game) Draw(alpha float64) error {
	return g.current.Draw(g.renderer, alpha)
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// Ticks returns the number of completed updates
func (g *Game) Ticks() uint64 {
	return g.ticks
}
