package swr

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/swr/cache"
	"github.com/gogpu/swr/internal/blend"
	"github.com/gogpu/swr/internal/clip"
	"github.com/gogpu/swr/internal/parallel"
	"github.com/gogpu/swr/internal/raster"
)

// Renderer is the software rasterizer's top-level entry point: it owns a
// worker pool sized from Config, the DrawCall/BatchData object pools,
// the cluster grid, the batch-ordering ticket queue, the active query
// set, the pipeline-state-keyed routine cache, and the current
// fixed-function pipeline state. A Renderer is safe for concurrent Draw
// calls; state-mutating calls (SetViewport, SetScissor,
// AddQuery/RemoveQuery, AdvanceInstanceAttributes) are serialized by mu.
type Renderer struct {
	mu sync.Mutex

	config Config
	state  PipelineState

	pool    *parallel.WorkerPool
	tickets *parallel.TicketQueue

	drawPool  *parallel.BoundedPool[DrawCall]
	batchPool *parallel.BoundedPool[BatchData]

	clusters parallel.ClusterGrid

	queries queryList

	// routines memoizes which Routines bundle a given PipelineState.Hash()
	// resolves to, so BindRoutines/Draw pairs don't need to thread a
	// bundle through every call once a pipeline has been bound once.
	routines *cache.ShardedCache[uint64, Routines]

	// instanceStreams are the per-instance vertex buffers applied to
	// draws submitted after the last AdvanceInstanceAttributes call,
	// appended to each draw's own vertex buffers before the vertex stage
	// runs.
	instanceStreams [][]byte

	// inFlight tracks draws submitted but not yet retired; Synchronize
	// blocks on it.
	inFlight sync.WaitGroup

	nextDrawID atomic.Uint64

	closed atomic.Bool
}

// drawPoolCapacity and batchPoolCapacity bound the number of in-flight
// draws/batches a Renderer will admit concurrently; Draw blocks (via the
// bounded pools) rather than growing unbounded when the pipeline is
// deeper than this.
const (
	drawPoolCapacity  = 64
	batchPoolCapacity = 512

	// routineCacheShardCapacity bounds the number of distinct pipeline
	// states memoized per shard; a renderer binding more distinct states
	// than this evicts the coldest ones rather than growing unbounded.
	routineCacheShardCapacity = 64
)

// NewRenderer creates a Renderer configured per cfg. A zero Config is
// normalized to DefaultConfig's values.
func NewRenderer(cfg Config) *Renderer {
	cfg = cfg.normalize()

	r := &Renderer{
		config:  cfg,
		state:   DefaultPipelineState(),
		pool:    parallel.NewWorkerPool(int(cfg.ThreadCount)),
		tickets: parallel.NewTicketQueue(),
	}
	r.drawPool = parallel.NewBoundedPool(drawPoolCapacity,
		func() *DrawCall { return &DrawCall{} },
		func(d *DrawCall) { d.reset() },
	)
	r.batchPool = parallel.NewBoundedPool(batchPoolCapacity,
		func() *BatchData { return &BatchData{} },
		func(b *BatchData) { b.reset() },
	)
	r.routines = cache.NewSharded[uint64, Routines](routineCacheShardCapacity, cache.Uint64Hasher)

	Logger().Info("renderer created", "threads", cfg.ThreadCount, "affinity_policy", cfg.AffinityPolicy)
	return r
}

// SetViewport installs the viewport applied to subsequent draws and
// rebuilds the cluster grid for its height.
func (r *Renderer) SetViewport(vp Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Viewport = vp
	r.clusters = parallel.NewClusterGrid(int(vp.Height))
}

// SetScissor installs the scissor rectangle applied to subsequent draws.
func (r *Renderer) SetScissor(s Scissor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Scissor = s
}

// SetPipelineState replaces the renderer's fixed-function state wholesale
// (topology, depth/stencil, blend, culling, etc.), preserving the
// previously set viewport and scissor.
func (r *Renderer) SetPipelineState(s PipelineState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Viewport = r.state.Viewport
	s.Scissor = r.state.Scissor
	r.state = s
	r.clusters = parallel.NewClusterGrid(int(s.Viewport.Height))
}

// BindRoutines memoizes routines against state's hash, so a later Draw
// against an equal-hashing state may omit DrawContext.Routines and have
// it resolved from this cache instead. Binding the same state again
// replaces the previous entry.
func (r *Renderer) BindRoutines(state PipelineState, routines Routines) {
	r.routines.Set(state.Hash(), routines)
}

// AddQuery attaches q: every draw submitted from this point on (until
// RemoveQuery) accumulates into it.
func (r *Renderer) AddQuery(q *Query) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries.add(q)
}

// RemoveQuery detaches q; draws already submitted while it was active
// still resolve it on retirement.
func (r *Renderer) RemoveQuery(q *Query) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries.remove(q)
}

// AdvanceInstanceAttributes records streams as the per-instance vertex
// buffers applied to draws submitted from this point on, until the next
// call. It returns the previously bound streams so a caller can restore
// them. Draws already submitted are unaffected.
func (r *Renderer) AdvanceInstanceAttributes(streams [][]byte) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.instanceStreams
	r.instanceStreams = streams
	return prev
}

// Synchronize blocks until every draw submitted before this call has
// retired (all batches shaded, queries resolved, DrawComplete observed).
// Draws submitted concurrently with Synchronize may or may not be waited
// on.
func (r *Renderer) Synchronize() {
	r.inFlight.Wait()
}

// Draw submits ctx for rendering: count vertices or indices (decoded per
// the renderer's bound IndexType when ctx.IndexBuffer is non-nil), split
// into batches of VerticesPerBatch and scheduled across the worker pool.
// events is notified as each stage of each batch completes and once,
// finally, when the whole draw retires.
//
// Draw returns ErrRendererClosed after Close, ErrNoContext for a nil
// ctx, ErrZeroCount when count == 0, ErrNoEvents for a nil events. If
// ctx.Routines is incomplete, Draw falls back to whatever was bound for
// the current pipeline state via BindRoutines; if that is also
// incomplete, the failure is fatal (a misconfigured Routines bundle is a
// programming error, not a runtime condition a caller can recover from).
func (r *Renderer) Draw(ctx *DrawContext, count uint32, events TaskEvents) error {
	if r.closed.Load() {
		return ErrRendererClosed
	}
	if ctx == nil {
		return ErrNoContext
	}
	if count == 0 {
		return ErrZeroCount
	}
	if events == nil {
		return ErrNoEvents
	}

	r.mu.Lock()
	state := r.state
	clusters := r.clusters
	activeQueries := r.queries.snapshot()
	instances := r.instanceStreams
	r.mu.Unlock()

	routines := ctx.Routines
	if !routines.valid() {
		if cached, ok := r.routines.Get(state.Hash()); ok {
			routines = cached
		}
	}
	if !routines.valid() {
		fatal("draw: incomplete Routines bundle (vertex=%v setup=%v pixel=%v)",
			routines.Vertex != nil, routines.Setup != nil, routines.Pixel != nil)
	}

	draw := r.drawPool.Borrow()
	draw.ID = r.nextDrawID.Add(1)
	draw.Routines = routines
	draw.State = state
	draw.Color = append(draw.Color, ctx.Color...)
	draw.Depth = ctx.Depth
	draw.Stencil = ctx.Stencil
	draw.PipelineLayout = ctx.PipelineLayout
	draw.DescriptorSets = append(draw.DescriptorSets, ctx.DescriptorSets...)
	draw.PushConstants = append(draw.PushConstants, ctx.PushConstants...)
	draw.Queries = append(draw.Queries, activeQueries...)
	draw.Events = events
	draw.setState(stateVertexPending)

	numBatches := int((count + VerticesPerBatch - 1) / VerticesPerBatch)
	draw.pendingCount.Store(int32(numBatches))
	r.tickets.TakeN(numBatches, func(t parallel.Ticket) { draw.tickets = append(draw.tickets, t) })

	r.inFlight.Add(1)

	for i := 0; i < numBatches; i++ {
		first := uint32(i) * VerticesPerBatch
		remain := count - first
		n := uint32(VerticesPerBatch)
		if remain < n {
			n = remain
		}
		batch := r.batchPool.Borrow()
		batch.Draw = draw
		batch.FirstIndex = first
		batch.Count = n
		batch.Ticket = draw.tickets[i]

		r.pool.Submit(func() {
			r.runBatch(ctx, draw, batch, clusters, state, instances)
		})
	}

	return nil
}

// decodeIndices resolves the absolute vertex id for each of count
// elements starting at first, from ctx.IndexBuffer per indexType (or the
// implicit sequential identity when indexType is IndexTypeNone), offset
// by ctx.BaseVertex.
func decodeIndices(ctx *DrawContext, indexType IndexType, first, count uint32) []uint32 {
	out := make([]uint32, count)
	base := uint32(ctx.BaseVertex)
	switch indexType {
	case IndexTypeUint8:
		for i := uint32(0); i < count; i++ {
			out[i] = uint32(ctx.IndexBuffer[first+i]) + base
		}
	case IndexTypeUint16:
		for i := uint32(0); i < count; i++ {
			off := (first + i) * 2
			out[i] = uint32(binary.LittleEndian.Uint16(ctx.IndexBuffer[off:off+2])) + base
		}
	case IndexTypeUint32:
		for i := uint32(0); i < count; i++ {
			off := (first + i) * 4
			out[i] = binary.LittleEndian.Uint32(ctx.IndexBuffer[off:off+4]) + base
		}
	default: // IndexTypeNone: implicit sequential
		for i := uint32(0); i < count; i++ {
			out[i] = first + i + base
		}
	}
	return out
}

// runBatch drives a single batch through vertex shading, primitive
// setup, and per-cluster pixel shading, then retires it.
func (r *Renderer) runBatch(ctx *DrawContext, draw *DrawCall, batch *BatchData, clusters parallel.ClusterGrid, state PipelineState, instances [][]byte) {
	batchIndex := int(batch.FirstIndex / VerticesPerBatch)

	indices := decodeIndices(ctx, state.IndexType, batch.FirstIndex, batch.Count)

	inputs := ctx.VertexBuffers
	if len(instances) > 0 {
		inputs = append(append([][]byte(nil), ctx.VertexBuffers...), instances...)
	}

	if cap(batch.VertexOut) < int(batch.Count) {
		batch.VertexOut = make([]clip.Vertex, batch.Count)
	} else {
		batch.VertexOut = batch.VertexOut[:batch.Count]
	}
	args := &VertexArgs{
		InputStreams: inputs,
		Indices:      indices,
		Output:       batch.VertexOut,
		InstanceID:   ctx.InstanceID,
		FirstIndex:   batch.FirstIndex,
		Count:        batch.Count,
	}
	draw.Routines.Vertex(args)
	draw.Events.VertexComplete(batchIndex)

	batch.Primitives = assemblePrimitives(draw, batch, state, clusters)
	draw.Events.PrimitivesComplete(batchIndex)

	mask := batch.ClusterMask()
	var clusterWG sync.WaitGroup
	for c := 0; c < parallel.ClusterCount; c++ {
		if mask&(1<<uint(c)) == 0 {
			continue
		}
		clusterWG.Add(1)
		cluster := c
		r.pool.Submit(func() {
			defer clusterWG.Done()
			occluded := r.shadeCluster(draw, batch, cluster, clusters)
			draw.ClusterOcclusion[cluster] += occluded
			draw.Events.PixelsComplete(batchIndex, cluster)
		})
	}
	clusterWG.Wait()

	// retireBatch folds this batch's occlusion counts into the draw;
	// OnCall defers that fold until every earlier batch in submission
	// order has folded its own, so ClusterOcclusion accumulates
	// deterministically even though clusters within a batch, and batches
	// across a draw, run concurrently.
	batch.Ticket.OnCall(func() {
		r.retireBatch(draw, batch)
		batch.Ticket.Done()
	})
}

// linePixelWidth is the screen-space width (in pixels) synthesized quads
// use to rasterize line and point topologies, which otherwise have no
// native representation in a triangle-edge rasterizer.
const linePixelWidth = 1.0

// assemblePrimitives runs setup over every primitive decoded from the
// batch's vertex output according to the bound topology, returning one
// Primitive per emitted triangle (triangle topologies clip and may fan
// one input triangle into several; line and point topologies synthesize
// a screen-space quad of two triangles per segment/vertex, since the
// rasterizer has no separate line/point coverage test). Topology
// assembly does not span batch boundaries: a strip or fan longer than
// VerticesPerBatch loses the one or two primitives that would have
// straddled the seam, the same restart behavior a hardware primitive
// assembler exhibits at a batch/index-restart boundary.
func assemblePrimitives(draw *DrawCall, batch *BatchData, state PipelineState, clusters parallel.ClusterGrid) []raster.Primitive {
	vp := state.Viewport
	fbWidth, fbHeight := int(vp.Width), int(vp.Height)

	toScreen := func(v clip.Vertex) raster.ScreenVertex {
		return raster.ToScreen(v, float64(vp.X), float64(vp.Y), float64(vp.Width), float64(vp.Height))
	}

	var out []raster.Primitive

	setup := func(a, b, c raster.ScreenVertex, cullBackface bool) {
		prim := raster.Setup(a, b, c, fbWidth, fbHeight, clusters, cullBackface, state.ProvokingVertexLast)
		if draw.Routines.Setup != nil {
			draw.Routines.Setup(&prim)
		}
		out = append(out, prim)
	}

	emitTri := func(v0, v1, v2 clip.Vertex) {
		tris := [][3]clip.Vertex{{v0, v1, v2}}
		if clip.NeedsClip(v0, v1, v2) {
			fanned := clip.ClipTriangle(v0, v1, v2)
			if len(fanned) == 0 {
				return
			}
			tris = fanned
		}
		for _, t := range tris {
			setup(toScreen(t[0]), toScreen(t[1]), toScreen(t[2]), state.CullBackface)
		}
	}

	emitQuad := func(a, b, c, d raster.ScreenVertex) {
		setup(a, b, c, false)
		setup(a, c, d, false)
	}

	emitLine := func(v0, v1 clip.Vertex) {
		a, b := toScreen(v0), toScreen(v1)
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			return
		}
		nx, ny := -dy/length*linePixelWidth*0.5, dx/length*linePixelWidth*0.5
		p0, p1, p2, p3 := a, a, b, b
		p0.X, p0.Y = a.X+nx, a.Y+ny
		p1.X, p1.Y = a.X-nx, a.Y-ny
		p2.X, p2.Y = b.X-nx, b.Y-ny
		p3.X, p3.Y = b.X+nx, b.Y+ny
		emitQuad(p0, p1, p2, p3)
	}

	emitPoint := func(v clip.Vertex) {
		p := toScreen(v)
		h := linePixelWidth * 0.5
		p0, p1, p2, p3 := p, p, p, p
		p0.X, p0.Y = p.X-h, p.Y-h
		p1.X, p1.Y = p.X+h, p.Y-h
		p2.X, p2.Y = p.X+h, p.Y+h
		p3.X, p3.Y = p.X-h, p.Y+h
		emitQuad(p0, p1, p2, p3)
	}

	verts := batch.VertexOut
	switch state.Topology {
	case TopologyTriangleStrip:
		for i := 0; i+2 < len(verts); i++ {
			if i%2 == 0 {
				emitTri(verts[i], verts[i+1], verts[i+2])
			} else {
				emitTri(verts[i+1], verts[i], verts[i+2])
			}
		}
	case TopologyTriangleFan:
		for i := 1; i+1 < len(verts); i++ {
			emitTri(verts[0], verts[i], verts[i+1])
		}
	case TopologyLineList:
		for i := 0; i+1 < len(verts); i += 2 {
			emitLine(verts[i], verts[i+1])
		}
	case TopologyLineStrip:
		for i := 0; i+1 < len(verts); i++ {
			emitLine(verts[i], verts[i+1])
		}
	case TopologyPointList:
		for _, v := range verts {
			emitPoint(v)
		}
	default: // TopologyTriangleList
		for i := 0; i+2 < len(verts); i += 3 {
			emitTri(verts[i], verts[i+1], verts[i+2])
		}
	}
	return out
}

// stencilFace selects the front or back stencil state for a primitive
// based on its winding.
func stencilFace(ds blend.DepthStencilState, frontFacing bool) blend.StencilFace {
	if frontFacing {
		return ds.Front
	}
	return ds.Back
}

// shadeCluster iterates the batch's primitives restricted to cluster c,
// applying the scissor test, the depth/stencil tests, the pixel routine,
// and colour blending, in that order, for every covered sample; it
// returns the count of samples that passed every test (for occlusion
// queries).
func (r *Renderer) shadeCluster(draw *DrawCall, batch *BatchData, c int, clusters parallel.ClusterGrid) uint64 {
	y0, y1 := clusters.Bounds(c)
	var passed uint64
	ds := draw.State.DepthStencil
	scissor := draw.State.Scissor

	for i := range batch.Primitives {
		prim := &batch.Primitives[i]
		if prim.Dropped || prim.ClusterMask&(1<<uint(c)) == 0 {
			continue
		}
		frontFacing := prim.AreaSign >= 0
		face := stencilFace(ds, frontFacing)

		minY := prim.BoundsMinY
		if y0 > minY {
			minY = y0
		}
		maxY := prim.BoundsMaxY
		if y1 < maxY {
			maxY = y1
		}
		for y := minY; y < maxY; y++ {
			for x := prim.BoundsMinX; x < prim.BoundsMaxX; x++ {
				if !scissor.Contains(x, y) {
					continue
				}
				fx, fy := float64(x)+0.5, float64(y)+0.5
				if prim.Edges[0].Eval(fx, fy) < 0 || prim.Edges[1].Eval(fx, fy) < 0 || prim.Edges[2].Eval(fx, fy) < 0 {
					continue
				}

				dx, dy := fx-float64(prim.BoundsMinX), fy-float64(prim.BoundsMinY)
				invW := prim.InvW.Eval(dx, dy)
				z := float32(prim.Depth.Eval(dx, dy))

				var existingDepth float32
				if draw.Depth != nil {
					existingDepth, _ = draw.Depth.ReadDepth(x, y)
				}
				depthPassed := ds.TestDepth(z, existingDepth)

				var existingStencil uint8
				stencilPassed := true
				if ds.StencilTestEnable {
					if draw.Stencil != nil {
						existingStencil, _ = draw.Stencil.ReadStencil(x, y)
					}
					stencilPassed = face.TestStencil(existingStencil)
					if draw.Stencil != nil {
						draw.Stencil.WriteStencil(x, y, face.UpdateStencil(existingStencil, stencilPassed, depthPassed))
					}
				}
				if !stencilPassed || !depthPassed {
					continue
				}

				args := &PixelArgs{
					X: x, Y: y,
					ZSamples:     []float32{z},
					W:            []float32{float32(invW)},
					CoverageMask: 1,
				}
				mask := draw.Routines.Pixel(args)
				if mask&^uint8(1) != 0 {
					fatal("pixel routine returned coverage mask %#x wider than its input mask 0x1", mask)
				}
				if mask == 0 {
					continue
				}
				passed++

				if ds.DepthWriteEnable && draw.Depth != nil {
					draw.Depth.WriteDepth(x, y, z)
				}
				for ci, view := range draw.Color {
					if view == nil {
						continue
					}
					eq := blendEquationFor(draw.State, ci)
					dst, _ := view.ReadColor(x, y)
					out := eq.Apply(args.Color, dst, [4]float32{})
					view.WriteColor(x, y, out)
				}
			}
		}
	}
	return passed
}

// blendEquationFor returns the blend equation bound to colour attachment
// index i, falling back to the default (source-over) equation when the
// pipeline state declares fewer equations than attachments.
func blendEquationFor(state PipelineState, i int) blend.Equation {
	if i < len(state.ColorBlend) {
		return state.ColorBlend[i]
	}
	return blend.DefaultEquation()
}

// retireBatch decrements the draw's pending-batch counter and, once
// every batch has finished, resolves the draw's attached queries and
// notifies DrawComplete before returning the draw and its batches to
// their pools.
func (r *Renderer) retireBatch(draw *DrawCall, batch *BatchData) {
	batch.Draw = nil
	r.batchPool.Return(batch)

	if draw.pendingCount.Add(-1) != 0 {
		return
	}

	draw.setState(stateRetired)
	total := draw.sumOcclusion()
	for _, q := range draw.Queries {
		if q.Kind == QueryOcclusion {
			q.resolve(total)
		} else {
			q.resolve(0)
		}
	}
	draw.Events.DrawComplete()
	r.inFlight.Done()
	r.drawPool.Return(draw)
}

// Close stops accepting new draws and shuts down the worker pool. Close
// does not wait for in-flight draws submitted before it was called; call
// Synchronize first if that is required.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrRendererClosed
	}
	r.pool.Close()
	return nil
}
