package texel

import "encoding/binary"

// ASTC blocks are always 16 bytes regardless of their footprint (4x4 up
// to 12x12, selected by the texture format variant, not by the block
// contents). Full ASTC decode requires integer-sequence-encoded weight
// grids, dual-plane weighting, and a void-extent/partition dispatch this
// package has no sampling consumer to justify transcribing in full; see
// DESIGN.md. This decoder handles exactly the "void extent" (constant
// colour) block — the encoding a reference compressor emits for a
// perfectly uniform source block, and the one case where a correct
// decode is a handful of fields rather than a full weight-grid
// reconstruction. Every other block decodes to opaque black.
const astcVoidExtentLDRMarker = 0x1FC // bits [0:8], LDR void-extent signature

func decodeASTCBlock(block []byte) (r, g, b, a float32, isVoidExtent bool) {
	header := binary.LittleEndian.Uint16(block[0:2]) & 0x1FF
	if header != astcVoidExtentLDRMarker {
		return 0, 0, 0, 1, false
	}
	rv := binary.LittleEndian.Uint16(block[8:10])
	gv := binary.LittleEndian.Uint16(block[10:12])
	bv := binary.LittleEndian.Uint16(block[12:14])
	av := binary.LittleEndian.Uint16(block[14:16])
	return float32(rv) / 0xFFFF, float32(gv) / 0xFFFF, float32(bv) / 0xFFFF, float32(av) / 0xFFFF, true
}

// DecodeASTC decodes an ASTC block stream whose footprint is blockW x
// blockH texels into 8-bit RGBA at dst.
func DecodeASTC(src, dst []byte, w, h, blockW, blockH, dstPitch, dstBpp int) {
	const blockStride = 16
	blocksPerRow := (w + blockW - 1) / blockW

	for y := 0; y < h; y += blockH {
		blockRow := src[(y/blockH)*blocksPerRow*blockStride:]
		for x, bi := 0, 0; x < w; x, bi = x+blockW, bi+1 {
			block := blockRow[bi*blockStride : bi*blockStride+blockStride]
			cols := blockW
			if x+cols > w {
				cols = w - x
			}
			rows := blockH
			if y+rows > h {
				rows = h - y
			}

			rf, gf, bf, af, _ := decodeASTCBlock(block)
			rb, gb, bb, ab := byte(rf*255+0.5), byte(gf*255+0.5), byte(bf*255+0.5), byte(af*255+0.5)

			dstBase := y*dstPitch + x*dstBpp
			for j := 0; j < rows; j++ {
				rowOff := dstBase + j*dstPitch
				for i := 0; i < cols; i++ {
					off := rowOff + i*dstBpp
					dst[off], dst[off+1], dst[off+2], dst[off+3] = rb, gb, bb, ab
				}
			}
		}
	}
}
