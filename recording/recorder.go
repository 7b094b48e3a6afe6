package recording

import "github.com/gogpu/swr/gpucore"

// Recorder builds a sequence of RecordedDraws by accumulating renderer
// state between drawing commands, the same snapshot-on-call convention a
// 2D paint recorder uses for Save/Restore/SetTransform: each Draw call
// snapshots the current state into a new RecordedDraw and appends it.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	state RecordedDraw
	draws []RecordedDraw
}

// NewRecorder creates an empty Recorder. Viewport/Scissor/Attachments are
// zero until set explicitly.
func NewRecorder() *Recorder {
	return &Recorder{draws: make([]RecordedDraw, 0, 16)}
}

// SetTopology records the primitive topology for subsequent draws.
func (r *Recorder) SetTopology(t Topology) { r.state.Topology = t }

// SetIndexBuffer records the index buffer and its element width for
// subsequent draws. Pass IndexTypeNone to draw with implicit sequential
// indices.
func (r *Recorder) SetIndexBuffer(buf gpucore.BufferID, it IndexType) {
	r.state.IndexBuffer = buf
	r.state.IndexType = it
}

// SetVertexBuffers replaces the bound vertex buffer bindings.
func (r *Recorder) SetVertexBuffers(bindings ...VertexBufferBinding) {
	r.state.VertexBufs = append([]VertexBufferBinding(nil), bindings...)
}

// SetPipelineLayout records the pipeline layout for subsequent draws.
func (r *Recorder) SetPipelineLayout(id gpucore.PipelineLayoutID) {
	r.state.PipelineLayout = id
}

// SetDescriptorSets replaces the bound descriptor sets.
func (r *Recorder) SetDescriptorSets(sets ...gpucore.BindGroupID) {
	r.state.DescriptorSets = append([]gpucore.BindGroupID(nil), sets...)
}

// SetPushConstants records the push-constant block for subsequent draws.
// The slice is copied.
func (r *Recorder) SetPushConstants(data []byte) {
	r.state.PushConstants = append([]byte(nil), data...)
}

// SetViewport records the viewport for subsequent draws.
func (r *Recorder) SetViewport(v Viewport) { r.state.Viewport = v }

// SetScissor records the scissor rectangle for subsequent draws.
func (r *Recorder) SetScissor(s Scissor) { r.state.Scissor = s }

// SetAttachments records the colour/depth/stencil targets for subsequent
// draws.
func (r *Recorder) SetAttachments(a AttachmentSet) { r.state.Attachments = a }

// SetRoutines records the vertex/setup/pixel routines for subsequent draws.
func (r *Recorder) SetRoutines(rt RoutineSet) { r.state.Routines = rt }

// Draw snapshots the current state into a new RecordedDraw and appends it.
func (r *Recorder) Draw(count uint32, baseVertex int32, instanceID uint32) {
	d := r.state
	d.VertexBufs = append([]VertexBufferBinding(nil), r.state.VertexBufs...)
	d.DescriptorSets = append([]gpucore.BindGroupID(nil), r.state.DescriptorSets...)
	d.PushConstants = append([]byte(nil), r.state.PushConstants...)
	d.Attachments.Color = append([]gpucore.TextureID(nil), r.state.Attachments.Color...)
	d.Count = count
	d.BaseVertex = baseVertex
	d.InstanceID = instanceID
	r.draws = append(r.draws, d)
}

// Finish returns the recorded draws and resets the Recorder's draw list.
// Accumulated state (topology, bindings, viewport, ...) is preserved.
func (r *Recorder) Finish() []RecordedDraw {
	draws := r.draws
	r.draws = nil
	return draws
}

// Len returns the number of draws recorded so far.
func (r *Recorder) Len() int { return len(r.draws) }
