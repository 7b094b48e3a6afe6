package texel

import "encoding/binary"

// decodeChannelBlock implements BC_channel::decode: an 8-byte single-channel
// block (two 8-bit endpoints + 16 3-bit indices), shared by BC3's alpha
// plane, BC4's red channel, and BC5's red/green channels. isSigned treats
// the endpoints as SNORM (-128..127) rather than UNORM (0..255); the two
// interpolation tables (6-step with two constant endpoints, or 8-step)
// select per BC_channel::decode's c[0] > c[1] branch.
func decodeChannelBlock(block []byte, dst []byte, dstBase, dstPitch, dstBpp, channel, cols, rows int, isSigned bool) {
	data := binary.LittleEndian.Uint64(block)

	var c [8]int
	if isSigned {
		c[0] = int(int8(data & 0xFF))
		c[1] = int(int8((data >> 8) & 0xFF))
	} else {
		c[0] = int(data & 0xFF)
		c[1] = int((data >> 8) & 0xFF)
	}

	if c[0] > c[1] {
		for i := 2; i < 8; i++ {
			c[i] = ((8-i)*c[0] + (i-1)*c[1]) / 7
		}
	} else {
		for i := 2; i < 6; i++ {
			c[i] = ((6-i)*c[0] + (i-1)*c[1]) / 5
		}
		if isSigned {
			c[6], c[7] = -128, 127
		} else {
			c[6], c[7] = 0, 255
		}
	}

	for j := 0; j < rows; j++ {
		rowOff := dstBase + j*dstPitch
		for i := 0; i < cols; i++ {
			idx := j*BlockHeight + i
			bitOff := uint(idx*3 + 16)
			sel := (data >> bitOff) & 0x7
			dst[rowOff+i*dstBpp+channel] = byte(c[sel])
		}
	}
}

// decodeAlphaBlock implements BC_alpha::decode: a BC2-style 4-bit explicit
// alpha block (16 nibbles, each replicated into the low bits to expand to
// 8-bit), writing only the destination's alpha channel (assumed to be
// byte index 3).
func decodeAlphaBlock(block []byte, dst []byte, dstBase, dstPitch, dstBpp, cols, rows int) {
	data := binary.LittleEndian.Uint64(block)
	for j := 0; j < rows; j++ {
		rowOff := dstBase + j*dstPitch
		for i := 0; i < cols; i++ {
			idx := j*BlockHeight + i
			shift := uint(idx * 4)
			nibble := byte((data >> shift) & 0xF)
			dst[rowOff+i*dstBpp+3] = nibble | (nibble << 4)
		}
	}
}

// DecodeBC4 decodes a single-channel (red) block stream into channel 0 of
// dst; isSigned selects SNORM endpoint interpretation.
func DecodeBC4(src, dst []byte, w, h, dstPitch, dstBpp int, isSigned bool) {
	decodeSingleChannelPlane(src, dst, w, h, dstPitch, dstBpp, 0, isSigned)
}

// DecodeBC5 decodes a two-channel (red, green) block stream, the red plane
// first followed immediately by the green plane per block, matching
// BC_Decoder.cpp's n==5 case.
func DecodeBC5(src, dst []byte, w, h, dstPitch, dstBpp int, isSigned bool) {
	const blockStride = 8
	blocksPerRow := (w + BlockWidth - 1) / BlockWidth
	rowStride := blocksPerRow * blockStride * 2

	for y := 0; y < h; y += BlockHeight {
		blockRow := src[(y/BlockHeight)*rowStride:]
		for x, bi := 0, 0; x < w; x, bi = x+BlockWidth, bi+1 {
			red := blockRow[bi*blockStride*2 : bi*blockStride*2+blockStride]
			green := blockRow[bi*blockStride*2+blockStride : bi*blockStride*2+2*blockStride]
			cols, rows := clampBlock(x, y, w, h)
			dstBase := y*dstPitch + x*dstBpp
			decodeChannelBlock(red, dst, dstBase, dstPitch, dstBpp, 0, cols, rows, isSigned)
			decodeChannelBlock(green, dst, dstBase, dstPitch, dstBpp, 1, cols, rows, isSigned)
		}
	}
}

func decodeSingleChannelPlane(src, dst []byte, w, h, dstPitch, dstBpp, channel int, isSigned bool) {
	const blockStride = 8
	blocksPerRow := (w + BlockWidth - 1) / BlockWidth

	for y := 0; y < h; y += BlockHeight {
		blockRow := src[(y/BlockHeight)*blocksPerRow*blockStride:]
		for x, bi := 0, 0; x < w; x, bi = x+BlockWidth, bi+1 {
			block := blockRow[bi*blockStride : bi*blockStride+blockStride]
			cols, rows := clampBlock(x, y, w, h)
			dstBase := y*dstPitch + x*dstBpp
			decodeChannelBlock(block, dst, dstBase, dstPitch, dstBpp, channel, cols, rows, isSigned)
		}
	}
}
