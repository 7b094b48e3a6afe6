// Package texel decodes compressed-texture blocks (BC1-BC7, BC6H, ASTC)
// into plain 8-bit RGBA (or, for the HDR formats, float32 RGBA) texels a
// pixel routine can sample directly. Decoders never allocate per call:
// every Decode* function writes straight into a caller-supplied
// destination buffer at a caller-supplied pitch, the same shape as
// attachment.View so a decoded mip can be wrapped in a View without a
// copy.
package texel

// BlockWidth and BlockHeight are the fixed 4x4 texel footprint shared by
// every BCn format; ASTC varies its block footprint by format variant
// (handled separately in astc.go).
const (
	BlockWidth  = 4
	BlockHeight = 4
)

// clampBlock bounds how many columns/rows of a block actually land inside
// the destination image, mirroring a block decode that spills past the
// right/bottom edge of a non-block-aligned texture.
func clampBlock(x, y, dstW, dstH int) (cols, rows int) {
	cols = BlockWidth
	if x+cols > dstW {
		cols = dstW - x
	}
	rows = BlockHeight
	if y+rows > dstH {
		rows = dstH - y
	}
	return cols, rows
}
