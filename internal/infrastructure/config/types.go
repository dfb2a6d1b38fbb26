package config

import (
	"fmt"
	"time"

	"github.com/younwookim/tetra/internal/application/loop"
)

// EngineConfig is the root config for engine.json / engine.yaml
type EngineConfig struct {
	Window   WindowConfig   `json:"window" yaml:"window"`
	Timing   TimingConfig   `json:"timing" yaml:"timing"`
	Renderer RendererConfig `json:"renderer" yaml:"renderer"`
	Input    InputConfig    `json:"input" yaml:"input"`
}

// WindowConfig describes the window surface to create
type WindowConfig struct {
	Title      string `json:"title" yaml:"title"`
	Width      int    `json:"width" yaml:"width"`   // logical width in pixels
	Height     int    `json:"height" yaml:"height"` // logical height in pixels
	Scale      int    `json:"scale" yaml:"scale"`   // window size multiplier
	VSync      bool   `json:"vsync" yaml:"vsync"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	Maximized  bool   `json:"maximized" yaml:"maximized"`
	Minimized  bool   `json:"minimized" yaml:"minimized"`
	Resizable  bool   `json:"resizable" yaml:"resizable"`
	Borderless bool   `json:"borderless" yaml:"borderless"`
	ShowMouse  bool   `json:"showMouse" yaml:"showMouse"`
}

// TimingConfig configures the fixed-timestep loop
type TimingConfig struct {
	TickRate        float64 `json:"tickRate" yaml:"tickRate"`               // updates per second
	TimestepMS      float64 `json:"timestepMs" yaml:"timestepMs"`           // overrides TickRate when > 0
	MaxCatchUpSteps int     `json:"maxCatchUpSteps" yaml:"maxCatchUpSteps"` // update cap per frame
}

// RendererConfig configures the batch renderer
type RendererConfig struct {
	InitialQuads int `json:"initialQuads" yaml:"initialQuads"`
}

// InputConfig configures built-in input handling
type InputConfig struct {
	QuitOnEscape bool `json:"quitOnEscape" yaml:"quitOnEscape"`
}

// DefaultEngineConfig returns the defaults every loaded file is layered on
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Window: WindowConfig{
			Title:  "Tetra",
			Width:  1280,
			Height: 720,
			Scale:  1,
			VSync:  true,
		},
		Timing: TimingConfig{
			TickRate:        loop.DefaultTickRate,
			MaxCatchUpSteps: loop.DefaultMaxCatchUpSteps,
		},
		Renderer: RendererConfig{
			InitialQuads: 1024,
		},
	}
}

// Timestep returns the configured fixed step
func (t TimingConfig) Timestep() time.Duration {
	if t.TimestepMS > 0 {
		return time.Duration(t.TimestepMS * float64(time.Millisecond))
	}
	return loop.TimestepForRate(t.TickRate)
}

// LoopConfig converts the engine config into loop options
func (c *EngineConfig) LoopConfig() loop.Config {
	return loop.Config{
		Timestep:        c.Timing.Timestep(),
		MaxCatchUpSteps: c.Timing.MaxCatchUpSteps,
		QuitOnEscape:    c.Input.QuitOnEscape,
	}
}

// Validate checks the config
func (c *EngineConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Scale < 1 {
		return fmt.Errorf("invalid window scale %d", c.Window.Scale)
	}
	if err := c.LoopConfig().Validate(); err != nil {
		return fmt.Errorf("invalid timing: %w", err)
	}
	return nil
}
