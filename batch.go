package swr

import (
	"github.com/gogpu/swr/internal/clip"
	"github.com/gogpu/swr/internal/parallel"
	"github.com/gogpu/swr/internal/raster"
)

// VerticesPerBatch bounds how many vertices a single BatchData decodes
// and shades at once: three per primitive of BatchSize, so a triangle-list
// batch holds exactly BatchSize triangles and every batch boundary falls
// on a triangle boundary. Other topologies split by the same vertex count
// (a line-list batch holds 1.5×BatchSize lines, a point-list batch
// 3×BatchSize points). Index decoding and vertex shading both iterate in
// units of this size so a batch's working set stays cache-resident.
const VerticesPerBatch = BatchSize * 3

// BatchData is one unit of per-stage work within a DrawCall: a run of up
// to VerticesPerBatch vertices/indices, the primitives assembled from
// them, and the ticket that serializes this batch's pixel-stage
// side-effecting writes (occlusion counts, query results) against its
// neighbors in submission order.
type BatchData struct {
	Draw *DrawCall

	FirstIndex uint32
	Count      uint32

	// VertexOut holds the vertex routine's decoded per-vertex attribute
	// output, indexed by vertex slot within the batch (not by index
	// buffer position).
	VertexOut []clip.Vertex

	// Primitives holds one assembled Primitive per triangle in the batch,
	// after clipping and setup; a clipped triangle may contribute more
	// than one entry via fanning.
	Primitives []raster.Primitive

	// Ticket orders this batch's pixel-stage completion against sibling
	// batches of the same draw, so occlusion counters and query results
	// are folded into the draw in submission order even though clusters
	// within a batch run concurrently.
	Ticket parallel.Ticket

	clusterPending [parallel.ClusterCount]int32
}

// reset clears a BatchData for reuse by the bounded pool.
func (b *BatchData) reset() {
	b.Draw = nil
	b.FirstIndex = 0
	b.Count = 0
	b.VertexOut = b.VertexOut[:0]
	b.Primitives = b.Primitives[:0]
	b.Ticket = parallel.Ticket{}
	b.clusterPending = [parallel.ClusterCount]int32{}
}

// ClusterMask ORs together the cluster masks of every non-dropped
// primitive in the batch, identifying which pixel tasks this batch must
// spawn.
func (b *BatchData) ClusterMask() uint32 {
	var mask uint32
	for _, p := range b.Primitives {
		if p.Dropped {
			continue
		}
		mask |= p.ClusterMask
	}
	return mask
}
