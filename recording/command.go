package recording

import "github.com/gogpu/swr/gpucore"

// Topology identifies how indices/vertices are assembled into primitives
// (expanded into individual triangles/lines/points during assembly).
type Topology uint8

const (
	TopologyPointList Topology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyTriangleFan
)

// IndexType identifies the index buffer's element width, or the absence of
// an index buffer (implicit sequential indices).
type IndexType uint8

const (
	IndexTypeNone IndexType = iota
	IndexTypeUint8
	IndexTypeUint16
	IndexTypeUint32
)

// Viewport is the viewport transform applied to clip-space primitives.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Scissor restricts pixel writes to a rectangle, in framebuffer pixels.
type Scissor struct {
	X, Y, Width, Height int32
}

// AttachmentSet names the colour, depth, and stencil attachments a draw
// writes to. A zero TextureID in Depth/Stencil means the test is disabled.
type AttachmentSet struct {
	Color   []gpucore.TextureID
	Depth   gpucore.TextureID
	Stencil gpucore.TextureID
}

// VertexBufferBinding is one bound vertex buffer and its per-vertex stride.
type VertexBufferBinding struct {
	Buffer gpucore.BufferID
	Offset uint64
	Stride uint32
}

// RoutineSet names the opaque per-stage JIT routines a draw invokes
// (a lifetime-shared, opaque handle). The fields are untyped here so this package does
// not depend on the renderer's concrete routine-function types
// (VertexRoutine/SetupRoutine/PixelRoutine). The renderer does not read
// a RecordedDraw, so nothing in the module type-asserts them back.
type RoutineSet struct {
	Vertex any
	Setup  any
	Pixel  any
}

// RecordedDraw is the decoupled ingress tuple of a single draw call
// (the renderer's ingress tuple). It carries no reference to a live Renderer or
// attachment, so tests can build and inspect draws directly.
type RecordedDraw struct {
	Topology    Topology
	IndexType   IndexType
	IndexBuffer gpucore.BufferID
	VertexBufs  []VertexBufferBinding

	Count      uint32
	BaseVertex int32
	InstanceID uint32

	PipelineLayout  gpucore.PipelineLayoutID
	DescriptorSets  []gpucore.BindGroupID
	PushConstants   []byte

	Viewport    Viewport
	Scissor     Scissor
	Attachments AttachmentSet
	Routines    RoutineSet
}
