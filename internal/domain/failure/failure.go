// Package failure defines the fatal error taxonomy of the engine core.
//
// Every error here aborts the running loop and is returned to the caller of
// Run. Match them with errors.As.
package failure

import "fmt"

// BackendError is a surface or device failure reported by the windowing or
// graphics layer (poll, submit, present).
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// CallbackError is an error returned by a user update or draw callback
type CallbackError struct {
	Phase string // "update" or "draw"
	Tick  uint64 // simulation tick at which the callback ran
	Err   error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s callback failed at tick %d: %v", e.Phase, e.Tick, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// ResourceKind names the kind of handle a ResourceError refers to
type ResourceKind string

const (
	KindTexture ResourceKind = "texture"
	KindShader  ResourceKind = "shader"
)

// ResourceError reports an invalid or expired texture/shader handle found at
// flush time.
type ResourceError struct {
	Kind   ResourceKind
	ID     uint32
	Reason string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Kind, e.ID, e.Reason)
}
