// Package recording provides a decoupled representation of a draw call's
// ingress tuple: vertex/index buffers, topology, pipeline
// state, descriptor-set bindings, push constants, viewport/scissor, and
// attachments. A Recorder lets callers (and tests) build a RecordedDraw
// without a live Renderer or attachment. The module has no conversion
// from a RecordedDraw to a DrawContext; Renderer.Draw takes a
// DrawContext only.
//
// The design follows a typed-command-struct approach to inspectable,
// replayable recordings, adapted from a 2D paint-command stream to a
// single fixed-shape draw-call record.
package recording
