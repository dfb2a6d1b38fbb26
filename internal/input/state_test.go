package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_PressAndRelease(t *testing.T) {
	s := NewState()

	s.Apply([]Event{KeyDownEvent(KeySpace)})
	assert.True(t, s.IsDown(KeySpace))
	assert.True(t, s.IsPressed(KeySpace))
	assert.False(t, s.IsReleased(KeySpace))

	s.ClearTransient()
	assert.True(t, s.IsDown(KeySpace), "held key survives clear")
	assert.False(t, s.IsPressed(KeySpace))

	s.Apply([]Event{KeyUpEvent(KeySpace)})
	assert.False(t, s.IsDown(KeySpace))
	assert.True(t, s.IsReleased(KeySpace))
}

func TestState_RepeatedKeyDownIsNotAPress(t *testing.T) {
	s := NewState()
	s.Apply([]Event{KeyDownEvent(KeyA)})
	s.ClearTransient()

	// OS key repeat
	s.Apply([]Event{KeyDownEvent(KeyA), KeyDownEvent(KeyA)})
	assert.False(t, s.IsPressed(KeyA))
	assert.True(t, s.IsDown(KeyA))
}

func TestState_ReleaseWithoutPress(t *testing.T) {
	s := NewState()
	s.Apply([]Event{KeyUpEvent(KeyD)})
	assert.False(t, s.IsReleased(KeyD))
}

func TestState_QuitAndResize(t *testing.T) {
	s := NewState()
	assert.False(t, s.QuitRequested())

	s.Apply([]Event{{Kind: EventResize, W: 640, H: 480}, QuitEvent()})

	assert.True(t, s.QuitRequested())
	w, h := s.WindowSize()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}
