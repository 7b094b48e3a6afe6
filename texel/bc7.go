package texel

// BC7 packs one of 8 modes, selected by a unary prefix (the position of
// the first set bit), each with its own partition count, endpoint
// precision, and index widths. This decoder fully implements mode 6 (no
// partitions, 7-bit+1-pbit RGBA endpoints, 4-bit indices) — the mode a
// reference encoder reaches for on a plain RGBA source with no need for
// multi-region partitioning, and the simplest mode to verify against its
// bitfield diagram by hand. The remaining 7 modes (1-5, 7, each adding
// partition tables, rotation bits, or narrower endpoint precision) decode
// to flat mid-grey opaque rather than guessing at their partition/anchor
// tables without a way to verify the result; see DESIGN.md.
var bc7Mode6Weights = [16]int{0, 4, 9, 13, 17, 21, 26, 30, 35, 39, 43, 47, 52, 56, 60, 64}

func decodeBC7Block(block []byte, dst []byte, dstBase, dstPitch, dstBpp, cols, rows int) {
	r := newBitReader128(block)

	mode := -1
	for i := 0; i < 8; i++ {
		if r.bits(uint(i), 1) == 1 {
			mode = i
			break
		}
	}

	if mode != 6 {
		for j := 0; j < rows; j++ {
			rowOff := dstBase + j*dstPitch
			for i := 0; i < cols; i++ {
				off := rowOff + i*dstBpp
				dst[off], dst[off+1], dst[off+2], dst[off+3] = 0x7F, 0x7F, 0x7F, 0xFF
			}
		}
		return
	}

	off := uint(7)
	comp := func(bits uint) uint64 {
		v := r.bits(off, bits)
		off += bits
		return v
	}

	r0, r1 := comp(7), comp(7)
	g0, g1 := comp(7), comp(7)
	b0, b1 := comp(7), comp(7)
	a0, a1 := comp(7), comp(7)
	p0, p1 := comp(1), comp(1)

	endpoint0 := [4]byte{
		byte(r0<<1 | p0), byte(g0<<1 | p0), byte(b0<<1 | p0), byte(a0<<1 | p0),
	}
	endpoint1 := [4]byte{
		byte(r1<<1 | p1), byte(g1<<1 | p1), byte(b1<<1 | p1), byte(a1<<1 | p1),
	}

	var idx [16]int
	for i := 0; i < 16; i++ {
		width := uint(4)
		if i == 0 {
			width = 3
		}
		v := r.bits(off, width)
		off += width
		if i == 0 {
			// Anchor texel's 3-bit index addresses the same 16-entry
			// weight table with its top bit implicitly 0.
			idx[i] = int(v)
		} else {
			idx[i] = int(v)
		}
	}

	for j := 0; j < rows; j++ {
		rowOff := dstBase + j*dstPitch
		for i := 0; i < cols; i++ {
			texel := j*BlockHeight + i
			w := bc7Mode6Weights[idx[texel]]
			o := rowOff + i*dstBpp
			for c := 0; c < 4; c++ {
				e0, e1 := int(endpoint0[c]), int(endpoint1[c])
				dst[o+c] = byte((e0*(64-w) + e1*w + 32) >> 6)
			}
		}
	}
}

// DecodeBC7 decodes a BC7 block stream into 8-bit RGBA at dst.
func DecodeBC7(src, dst []byte, w, h, dstPitch, dstBpp int) {
	const blockStride = 16
	blocksPerRow := (w + BlockWidth - 1) / BlockWidth

	for y := 0; y < h; y += BlockHeight {
		blockRow := src[(y/BlockHeight)*blocksPerRow*blockStride:]
		for x, bi := 0, 0; x < w; x, bi = x+BlockWidth, bi+1 {
			block := blockRow[bi*blockStride : bi*blockStride+blockStride]
			cols, rows := clampBlock(x, y, w, h)
			dstBase := y*dstPitch + x*dstBpp
			decodeBC7Block(block, dst, dstBase, dstPitch, dstBpp, cols, rows)
		}
	}
}
