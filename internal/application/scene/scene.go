// Package scene defines the Scene interface for game screens.
//
// Each game screen implements the Scene interface to handle its own fixed
// step update logic and its rendering into the batch renderer.
package scene

import (
	"github.com/younwookim/tetra/internal/domain/geom"
	"github.com/younwookim/tetra/internal/graphics/batch"
)

// Renderer is the part of the batch renderer a scene draws with
type Renderer interface {
	Push(req batch.DrawRequest)
	PushQuad(tex batch.TextureID, src geom.Rect, tr geom.Transform, c geom.Color)
}

// Scene represents a game screen (title, menu, playing, etc.)
//
// The game delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by one fixed step.
	// dt is the timestep in seconds (typically 1/60).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw pushes the scene's quads. alpha is the interpolation factor
	// between the previous and the current update, in [0, 1).
	Draw(r Renderer, alpha float64) error

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	OnExit()
}
