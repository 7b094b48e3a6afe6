package swr

import (
	"sync/atomic"

	"github.com/gogpu/swr/attachment"
	"github.com/gogpu/swr/gpucore"
	"github.com/gogpu/swr/internal/parallel"
)

// BatchSize is the number of triangle-list primitives processed together
// as one unit of vertex/primitive/pixel work; VerticesPerBatch gives the
// matching vertex count.
const BatchSize = 128

// DrawContext is the ingress representation of a recorded draw: bound
// vertex/index buffers, topology and routines, descriptor bindings,
// push constants, and the attachments it writes. Renderer.Draw consumes
// one of these per call; it is deliberately decoupled from DrawCall so
// tests can construct draws without a live attachment.
type DrawContext struct {
	VertexBuffers [][]byte
	IndexBuffer   []byte

	BaseVertex int
	InstanceID uint32

	PipelineLayout gpucore.PipelineLayoutID
	DescriptorSets []gpucore.BindGroupID
	PushConstants  []byte

	Color   []*attachment.View
	Depth   *attachment.View
	Stencil *attachment.View

	Routines Routines
}

// drawState is the DrawCall's lifecycle position: Setup ->
// VertexPending -> PrimitivesPending -> PixelsPending -> Retired.
// Transitions are driven by completion counters from the
// worker pool's task callbacks; there is no dedicated scheduler thread.
type drawState int32

const (
	stateSetup drawState = iota
	stateVertexPending
	statePrimitivesPending
	statePixelsPending
	stateRetired
)

// DrawCall is a single drawing operation: a monotonically increasing id,
// bound routines, attachment views, a pipeline-state snapshot, descriptor
// bindings, push constants, attached queries, and the batch tickets that
// order its side-effecting completions. It is loaned from the renderer's
// DrawCall pool and released once every batch has retired.
type DrawCall struct {
	ID uint64

	Routines Routines
	State    PipelineState

	Color   []*attachment.View
	Depth   *attachment.View
	Stencil *attachment.View

	PipelineLayout gpucore.PipelineLayoutID
	DescriptorSets []gpucore.BindGroupID
	PushConstants  []byte

	Queries []*Query
	Events  TaskEvents

	// ClusterOcclusion holds per-cluster occlusion sample counts, summed
	// at draw completion rather than incremented through a shared atomic
	// on the hot path.
	ClusterOcclusion [parallel.ClusterCount]uint64

	batches      []*BatchData
	lifecycle    atomic.Int32
	pendingCount atomic.Int32 // batches not yet retired
	tickets      []parallel.Ticket
}

func (d *DrawCall) state() drawState {
	return drawState(d.lifecycle.Load())
}

func (d *DrawCall) setState(s drawState) {
	d.lifecycle.Store(int32(s))
}

// reset clears a DrawCall for reuse by the bounded pool. Slices are
// truncated to zero length rather than reallocated so their backing
// arrays are reused across loans.
func (d *DrawCall) reset() {
	d.ID = 0
	d.Routines = Routines{}
	d.State = PipelineState{}
	d.Color = d.Color[:0]
	d.Depth = nil
	d.Stencil = nil
	d.PipelineLayout = gpucore.InvalidID
	d.DescriptorSets = d.DescriptorSets[:0]
	d.PushConstants = d.PushConstants[:0]
	d.Queries = d.Queries[:0]
	d.Events = nil
	d.ClusterOcclusion = [parallel.ClusterCount]uint64{}
	d.batches = d.batches[:0]
	d.lifecycle.Store(int32(stateSetup))
	d.pendingCount.Store(0)
	d.tickets = d.tickets[:0]
}

// sumOcclusion totals the per-cluster occlusion counters, run once at
// draw retirement.
func (d *DrawCall) sumOcclusion() uint64 {
	var total uint64
	for _, c := range d.ClusterOcclusion {
		total += c
	}
	return total
}
