package input

// State holds keyboard state across frames.
//
// Pressed and released flags are transient: they stay set until ClearTransient
// is called, which the loop does after every update step. A key pressed during
// a frame with no update step is therefore still visible to the next update.
type State struct {
	down     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool

	quit          bool
	width, height int
}

// NewState creates an empty input state
func NewState() *State {
	return &State{
		down:     make(map[Key]bool),
		pressed:  make(map[Key]bool),
		released: make(map[Key]bool),
	}
}

// Apply folds a batch of events into the state
func (s *State) Apply(events []Event) {
	for _, e := range events {
		switch e.Kind {
		case EventKeyDown:
			if !s.down[e.Key] {
				s.pressed[e.Key] = true
			}
			s.down[e.Key] = true
		case EventKeyUp:
			if s.down[e.Key] {
				s.released[e.Key] = true
			}
			delete(s.down, e.Key)
		case EventQuit:
			s.quit = true
		case EventResize:
			s.width, s.height = e.W, e.H
		}
	}
}

// ClearTransient resets pressed/released flags
func (s *State) ClearTransient() {
	clear(s.pressed)
	clear(s.released)
}

// IsDown reports whether the key is currently held
func (s *State) IsDown(k Key) bool { return s.down[k] }

// IsPressed reports whether the key went down since the last update step
func (s *State) IsPressed(k Key) bool { return s.pressed[k] }

// IsReleased reports whether the key went up since the last update step
func (s *State) IsReleased(k Key) bool { return s.released[k] }

// QuitRequested reports whether a quit event has been seen
func (s *State) QuitRequested() bool { return s.quit }

// WindowSize returns the last size reported by a resize event (0, 0 if none)
func (s *State) WindowSize() (int, int) { return s.width, s.height }
