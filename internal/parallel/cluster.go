package parallel

// ClusterCount is the number of horizontal framebuffer strips a draw's
// pixel work is divided into. Each cluster is processed by its own pixel
// task; clusters within a batch are mutually independent (non-overlapping
// pixel ranges) so they can run concurrently across the worker pool.
const ClusterCount = 16

// ClusterGrid partitions a framebuffer of a given height into ClusterCount
// horizontal strips. Unlike a 2D tile grid, a cluster has no pixel storage
// of its own — it is purely a Y-range used to route primitives to pixel
// tasks; the actual pixels live in the draw's attachment views.
type ClusterGrid struct {
	height int
	// strideY is the number of framebuffer rows per cluster, rounded up so
	// that ClusterCount strips always cover the full height.
	strideY int
}

// NewClusterGrid creates a cluster grid for a framebuffer of the given
// pixel height. A height of 0 produces an empty grid (no clusters take
// any primitives).
func NewClusterGrid(height int) ClusterGrid {
	if height <= 0 {
		return ClusterGrid{}
	}
	strideY := (height + ClusterCount - 1) / ClusterCount
	if strideY < 1 {
		strideY = 1
	}
	return ClusterGrid{height: height, strideY: strideY}
}

// Bounds returns the [y0, y1) row range owned by cluster index c.
func (g ClusterGrid) Bounds(c int) (y0, y1 int) {
	y0 = c * g.strideY
	y1 = y0 + g.strideY
	if y1 > g.height {
		y1 = g.height
	}
	return y0, y1
}

// Mask returns the bitmask of clusters whose Y range intersects
// [minY, maxY). Bit i set means cluster i is touched. The range is
// clamped to [0, height) before the mask is computed, so callers may pass
// an unclipped bounding rectangle.
func (g ClusterGrid) Mask(minY, maxY int) uint32 {
	if g.strideY == 0 || minY >= maxY {
		return 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > g.height {
		maxY = g.height
	}
	if minY >= maxY {
		return 0
	}

	firstCluster := minY / g.strideY
	lastCluster := (maxY - 1) / g.strideY
	if lastCluster >= ClusterCount {
		lastCluster = ClusterCount - 1
	}

	var mask uint32
	for c := firstCluster; c <= lastCluster; c++ {
		mask |= 1 << uint(c)
	}
	return mask
}
