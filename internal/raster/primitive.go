package raster

// Primitive is a post-setup triangle/line/point ready for rasterization.
// Primitive assembly fills one of these per visible triangle: edge
// equations in screen space, per-attribute interpolation planes, a
// conservative bounding rectangle, and the cluster mask derived by
// intersecting that rectangle with the framebuffer's cluster strips.
type Primitive struct {
	// Edges holds the three half-space edge equations (A, B, C such that
	// A*x + B*y + C >= 0 inside the triangle), built from vertices
	// snapped to 1/64 pixel. No top-left tie-breaking is applied: a
	// sample exactly on an edge counts as inside.
	Edges [3]EdgeEquation

	// Interpolators holds one gradient plane per shaded attribute (the
	// vertex routine's output channels), in 1/w and attr/w form for
	// perspective-correct recovery; flat attributes store only a
	// constant (the provoking vertex's value) and zero gradients. Setup
	// leaves it empty.
	Interpolators []Interpolator

	// InvW is the plane for 1/w itself, shared by every perspective
	// attribute's divide.
	InvW Interpolator

	// Depth is the screen-space gradient plane for post-divide Z,
	// interpolated linearly (not perspective-corrected, matching the
	// standard rasterizer convention that window-space depth is already
	// linear after the divide). Read by the depth test.
	Depth Interpolator

	// BoundsMinX, BoundsMinY, BoundsMaxX, BoundsMaxY is the primitive's
	// conservative screen-space bounding rectangle, already clipped to
	// the framebuffer.
	BoundsMinX, BoundsMinY, BoundsMaxX, BoundsMaxY int

	// ClusterMask has bit i set when the primitive's bounding rectangle
	// intersects cluster i's row range.
	ClusterMask uint32

	// AreaSign is the sign of the primitive's doubled signed area:
	// positive for counter-clockwise (front-facing, under the default
	// OpenGL/Vulkan winding), negative for clockwise. Used for backface
	// culling and to choose the front or back stencil state; it plays no
	// part in choosing the provoking vertex.
	AreaSign float64

	// Dropped is set by setup for zero-area primitives, back-facing ones
	// when culling is on, and ones whose bounding rectangle lies outside
	// the framebuffer; such primitives are
	// skipped by every later stage rather than removed from the slice,
	// so batch indices stay stable.
	Dropped bool
}

// EdgeEquation is a half-space test A*x + B*y + C, evaluated at a sample
// point; the primitive covers the point when the value is >= 0 for all
// three edges.
type EdgeEquation struct {
	A, B, C float64
}

// Eval evaluates the edge equation at (x, y).
func (e EdgeEquation) Eval(x, y float64) float64 {
	return e.A*x + e.B*y + e.C
}

// Interpolator is a gradient plane for one perspective-divided attribute
// channel: value(x,y) = C + A*(x-x0) + B*(y-y0), evaluated relative to the
// top-left corner (x0,y0) = (BoundsMinX, BoundsMinY) of the primitive's
// bounding rectangle and then divided by the interpolated 1/w when the
// channel is perspective-correct.
type Interpolator struct {
	A, B, C float64
}

// Eval evaluates the interpolator at an offset (dx, dy) from its origin.
func (in Interpolator) Eval(dx, dy float64) float64 {
	return in.C + in.A*dx + in.B*dy
}
