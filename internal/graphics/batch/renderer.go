package batch

import (
	"errors"

	"github.com/younwookim/tetra/internal/domain/failure"
	"github.com/younwookim/tetra/internal/domain/geom"
)

// DefaultQuadCapacity is the initial vertex buffer size in quads
const DefaultQuadCapacity = 1024

var errNoBackend = errors.New("renderer has no backend")

// run is a half-open range [start, end) of pending requests sharing a key
type run struct {
	start, end int
}

// Renderer accumulates quads for one frame and flushes them in batches
type Renderer struct {
	backend   Backend
	resources Resources

	pending []DrawRequest
	runs    []run
	vb      *VertexBuffer
	next    uint64

	last Stats
}

// NewRenderer creates a renderer submitting to backend and resolving handles
// through resources. quadCapacity sizes the initial vertex buffer; values
// below one select DefaultQuadCapacity.
func NewRenderer(backend Backend, resources Resources, quadCapacity int) *Renderer {
	if quadCapacity < 1 {
		quadCapacity = DefaultQuadCapacity
	}
	return &Renderer{
		backend:   backend,
		resources: resources,
		pending:   make([]DrawRequest, 0, quadCapacity),
		vb:        NewVertexBuffer(quadCapacity),
	}
}

// Push queues a request and assigns its submission index
func (r *Renderer) Push(req DrawRequest) {
	req.Index = r.next
	r.next++
	r.pending = append(r.pending, req)
}

// PushQuad queues a quad drawn with the default shader and alpha blending
func (r *Renderer) PushQuad(tex TextureID, src geom.Rect, tr geom.Transform, c geom.Color) {
	r.Push(DrawRequest{
		Texture:   tex,
		Source:    src,
		Transform: tr,
		Color:     c,
	})
}

// Pending returns the number of queued requests
func (r *Renderer) Pending() int {
	return len(r.pending)
}

// Stats returns the statistics of the last flush
func (r *Renderer) Stats() Stats {
	return r.last
}

// VertexBuffer exposes the renderer's vertex store
func (r *Renderer) VertexBuffer() *VertexBuffer {
	return r.vb
}

// Discard drops every pending request without touching the backend
func (r *Renderer) Discard() {
	r.pending = r.pending[:0]
	r.runs = r.runs[:0]
}

// Flush submits the pending requests, one backend call per maximal run of
// requests sharing texture and render state, in submission order.
//
// Every handle is validated before anything is submitted, so a ResourceError
// produces no backend calls. Backend failures are wrapped in a BackendError.
// On return the pending sequence is always empty.
func (r *Renderer) Flush() error {
	defer r.Discard()

	r.last = Stats{}
	if len(r.pending) == 0 {
		return nil
	}
	if r.backend == nil {
		return &failure.BackendError{Op: "submit", Err: errNoBackend}
	}

	if err := r.validate(); err != nil {
		return err
	}

	r.partition()
	for _, rn := range r.runs {
		if err := r.submit(r.pending[rn.start:rn.end]); err != nil {
			return err
		}
	}
	return nil
}

// partition splits pending into maximal same-key runs in one forward pass
func (r *Renderer) partition() {
	r.runs = r.runs[:0]
	start := 0
	for i := 1; i <= len(r.pending); i++ {
		if i == len(r.pending) || r.pending[i].key() != r.pending[start].key() {
			r.runs = append(r.runs, run{start: start, end: i})
			start = i
		}
	}
}

func (r *Renderer) validate() error {
	for i := range r.pending {
		req := &r.pending[i]
		if _, _, ok := r.textureSize(req.Texture); !ok {
			return &failure.ResourceError{Kind: failure.KindTexture, ID: uint32(req.Texture), Reason: "invalid or expired handle"}
		}
		if req.State.Shader != DefaultShader && (r.resources == nil || !r.resources.HasShader(req.State.Shader)) {
			return &failure.ResourceError{Kind: failure.KindShader, ID: uint32(req.State.Shader), Reason: "invalid or expired handle"}
		}
	}
	return nil
}

func (r *Renderer) textureSize(id TextureID) (int, int, bool) {
	if id == 0 || r.resources == nil {
		return 0, 0, false
	}
	w, h, ok := r.resources.TextureSize(id)
	if !ok || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// submit writes one run into the vertex buffer and hands it to the backend
func (r *Renderer) submit(reqs []DrawRequest) error {
	first := &reqs[0]
	tw, th, _ := r.textureSize(first.Texture)

	r.vb.Reset()
	r.vb.Reserve(len(reqs))
	for i := range reqs {
		req := &reqs[i]
		src := req.Source
		if src.IsEmpty() {
			src = geom.R(0, 0, float32(tw), float32(th))
		}
		uv := geom.R(src.X/float32(tw), src.Y/float32(th), src.W/float32(tw), src.H/float32(th))
		r.vb.AppendQuad(req.Transform.Corners(src.W, src.H), uv, req.Color)
	}

	call := DrawCall{
		Texture:    first.Texture,
		Shader:     first.State.Shader,
		Blend:      first.State.Blend,
		Vertices:   r.vb.Vertices,
		Indices:    r.vb.Indices,
		FirstIndex: first.Index,
		Quads:      len(reqs),
	}
	if err := r.backend.SubmitDraw(call); err != nil {
		return &failure.BackendError{Op: "submit", Err: err}
	}

	r.last.DrawCalls++
	r.last.Quads += len(reqs)
	return nil
}
