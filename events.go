package swr

// TaskEvents is the draw-completion sink a caller supplies to Draw. Its
// methods are invoked from worker goroutines as batches finish each
// pipeline stage, never from the submitting goroutine, so implementations
// must be safe for concurrent calls from multiple callers at once.
type TaskEvents interface {
	// VertexComplete is called once per batch after its vertex routine
	// invocations have all returned.
	VertexComplete(batchIndex int)

	// PrimitivesComplete is called once per batch after primitive setup
	// has produced (or dropped) every primitive in it.
	PrimitivesComplete(batchIndex int)

	// PixelsComplete is called once per cluster, per batch, after every
	// covered pixel in that cluster has been shaded and written.
	PixelsComplete(batchIndex, cluster int)

	// DrawComplete is called exactly once, after every batch in the draw
	// has retired and any attached queries have been resolved.
	DrawComplete()
}

// noopEvents implements TaskEvents with no-ops, for code paths that do
// not care about completion notification. Draw does not substitute it for
// a nil sink: a nil events argument is rejected with ErrNoEvents.
type noopEvents struct{}

func (noopEvents) VertexComplete(int)      {}
func (noopEvents) PrimitivesComplete(int)  {}
func (noopEvents) PixelsComplete(int, int) {}
func (noopEvents) DrawComplete()           {}
