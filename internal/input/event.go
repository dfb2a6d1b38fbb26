// Package input tracks keyboard state from events polled off the platform.
package input

// Key identifies a keyboard key independent of the windowing backend
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyW
	KeyA
	KeyS
	KeyD
	KeyP
	KeyF5
)

// EventKind is the type of an input event
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventQuit   // window close request
	EventResize // W, H hold the new window size
)

// Event is a single translated platform event
type Event struct {
	Kind EventKind `json:"k"`
	Key  Key       `json:"key,omitempty"`
	W    int       `json:"w,omitempty"`
	H    int       `json:"h,omitempty"`
}

// KeyDownEvent returns a key-down event for k
func KeyDownEvent(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// KeyUpEvent returns a key-up event for k
func KeyUpEvent(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }

// QuitEvent returns a window close event
func QuitEvent() Event { return Event{Kind: EventQuit} }
