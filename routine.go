package swr

import (
	"github.com/gogpu/swr/internal/clip"
	"github.com/gogpu/swr/internal/raster"
)

// This file defines the Routine ABI: opaque, JIT-compiled pipeline-stage
// code exposed to the renderer only as callable function values. The
// renderer never inspects a routine's code — it only ever invokes it
// through these function-type signatures, the Go equivalent of a tagged
// enum of routine variants dispatched at the call site rather than
// through a vtable.

// VertexArgs is the argument block a VertexRoutine is invoked with.
type VertexArgs struct {
	// InputStreams are the bound vertex buffers (per-vertex) plus, when
	// AdvanceInstanceAttributes has been called, the per-instance streams
	// appended after them; neither is stride/offset adjusted, since a
	// routine's own vertex layout determines the stride.
	InputStreams [][]byte

	// Indices holds the absolute vertex id to fetch from InputStreams for
	// each output slot, already resolved from the draw's index buffer (or
	// the implicit sequential + base-vertex identity, for an unindexed
	// draw) by the scheduler. The routine stays oblivious to index width
	// and buffer layout; it only ever sees resolved ids.
	Indices []uint32

	// Output receives the transformed, batch-local vertex storage: one
	// clip-space position plus interpolable varyings per decoded vertex,
	// pre-sized to Count by the caller. The routine is opaque about how
	// it decodes InputStreams into these; the scheduler only trusts that
	// every element gets filled in.
	Output []clip.Vertex

	InstanceID uint32
	FirstIndex uint32
	Count      uint32
}

// VertexRoutine transforms a batch's worth of vertices. It is opaque to
// the scheduler: the scheduler supplies args and never interprets what
// the routine did beyond trusting that it filled args.Output.
type VertexRoutine func(args *VertexArgs)

// PixelArgs is the argument block a PixelRoutine is invoked with. The
// renderer invokes the routine once per covered pixel with a single
// sample (CoverageMask 1); it does not group pixels into 2x2 quads or
// pass multiple samples.
type PixelArgs struct {
	X, Y int

	// ZSamples holds the interpolated depth value at each covered sample;
	// the renderer passes one.
	ZSamples []float32

	// W holds 1/w at the quad's samples, for perspective-correct
	// attribute recovery inside the routine.
	W []float32

	// CoverageMask is read by the routine on entry (which samples are
	// covered after edge/scissor/depth-stencil tests) and written by the
	// routine on return (which samples the routine itself kills via
	// discard). A returned mask wider than the input mask is a fatal
	// programming error.
	CoverageMask uint8

	// Color is the routine's shaded output for this sample, in [0,1]
	// straight-alpha RGBA, read by the scheduler after the routine
	// returns and fed into the bound blend equation. The routine writes
	// it; the scheduler never reads CoverageMask bits the routine itself
	// cleared as anything but "not blended, not written".
	Color [4]float32
}

// PixelRoutine shades the covered samples it is given, leaving its colour
// in args.Color for the renderer to blend into the attachments; its
// return value is the (possibly narrowed) coverage mask.
type PixelRoutine func(args *PixelArgs) uint8

// SetupRoutine runs per-primitive fixed-function setup (edge equations,
// interpolator plane equations, area/cluster derivation) ahead of pixel
// tasks. Most pipelines use the built-in setup in internal/raster; a
// custom setup routine is only needed for non-standard topologies.
type SetupRoutine func(prim *raster.Primitive)

// Routines bundles the three stage entry points a DrawCall binds. A zero
// Routines value is invalid; draw validates each field is non-nil.
type Routines struct {
	Vertex VertexRoutine
	Setup  SetupRoutine
	Pixel  PixelRoutine
}

// valid reports whether every stage of the bundle is present.
func (r Routines) valid() bool {
	return r.Vertex != nil && r.Setup != nil && r.Pixel != nil
}
