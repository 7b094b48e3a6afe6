package swr

import (
	"hash/fnv"

	"github.com/gogpu/swr/internal/blend"
)

// Topology names a primitive topology, expanded into individual
// triangles/lines/points during primitive assembly.
type Topology uint8

const (
	TopologyPointList Topology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyTriangleFan
)

// IndexType names the index buffer's element width, or a sentinel for
// implicit sequential (unindexed) draws.
type IndexType uint8

const (
	IndexTypeNone IndexType = iota
	IndexTypeUint8
	IndexTypeUint16
	IndexTypeUint32
)

// Viewport is the window-space mapping applied to clip-space positions
// after the perspective divide.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Scissor restricts writes to a sub-rectangle of the framebuffer,
// intersected with the cluster strip during the pixel stage. The zero
// value (all fields 0) is the "no scissor" convention: every sample
// passes, rather than every sample failing against a zero-area rect.
type Scissor struct {
	X, Y, Width, Height int
}

// Contains reports whether (x, y) passes this scissor rectangle.
func (s Scissor) Contains(x, y int) bool {
	if s.Width == 0 && s.Height == 0 {
		return true
	}
	return x >= s.X && x < s.X+s.Width && y >= s.Y && y < s.Y+s.Height
}

// PipelineState is the renderer's current fixed-function state, snapshot
// into a DrawCall when a draw is submitted. It is also the key material hashed
// to look up a cached Routines bundle.
type PipelineState struct {
	Topology  Topology
	IndexType IndexType

	Viewport Viewport
	Scissor  Scissor

	DepthStencil blend.DepthStencilState

	// ColorBlend holds one blend equation per colour attachment.
	ColorBlend []blend.Equation

	SampleCount int

	// ProvokingVertexLast toggles last-vertex provoking convention; the
	// default (false) is first-vertex.
	ProvokingVertexLast bool

	CullBackface bool
}

// DefaultPipelineState returns a pipeline state with conventional
// defaults: triangle list topology, no depth/stencil test, a single
// source-over colour target, 1x sampling, first-vertex provoking,
// backface culling enabled.
func DefaultPipelineState() PipelineState {
	return PipelineState{
		Topology:     TopologyTriangleList,
		IndexType:    IndexTypeNone,
		ColorBlend:   []blend.Equation{blend.DefaultEquation()},
		SampleCount:  1,
		CullBackface: true,
	}
}

// Hash computes a stable key identifying the subset of state that
// determines which compiled Routines bundle applies: topology, index
// type, sample count, the provoking-vertex convention and backface
// culling. Viewport/scissor, depth-stencil and blend state are not part
// of the cache key.
func (s PipelineState) Hash() uint64 {
	h := fnv.New64a()
	buf := []byte{byte(s.Topology), byte(s.IndexType), byte(s.SampleCount)}
	if s.ProvokingVertexLast {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	if s.CullBackface {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}
