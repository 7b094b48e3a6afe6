package texel

import "encoding/binary"

// color565 unpacks a 16-bit RGB565 endpoint into 8-bit channels, using the
// same low-bit replication SwiftShader's BC_color::extract565 does (rather
// than a naive shift-only expand) so interpolated endpoints round the same
// way a hardware BC1 sampler would.
type color565 struct {
	r, g, b uint32
	a       uint32 // 0 or 0xFF
}

func extract565(c uint16) color565 {
	v := uint32(c)
	return color565{
		r: ((v & 0x001F) << 3) | ((v & 0x001C) >> 2),
		g: ((v & 0x07E0) >> 3) | ((v & 0x0600) >> 9),
		b: ((v & 0xF800) >> 8) | ((v & 0xE000) >> 13),
		a: 0xFF,
	}
}

// lerp2_3 computes (2*a + b) / 3 per channel, the BC1 two-thirds endpoint.
func lerp2_3(a, b color565) color565 {
	return color565{
		r: (2*a.r + b.r) / 3,
		g: (2*a.g + b.g) / 3,
		b: (2*a.b + b.b) / 3,
		a: 0xFF,
	}
}

func avg(a, b color565) color565 {
	return color565{r: (a.r + b.r) >> 1, g: (a.g + b.g) >> 1, b: (a.b + b.b) >> 1, a: 0xFF}
}

func (c color565) write(dst []byte) {
	dst[0] = byte(c.r)
	dst[1] = byte(c.g)
	dst[2] = byte(c.b)
	dst[3] = byte(c.a)
}

// decodeColorBlock implements BC_color::decode: a BC1-style 4-colour
// block, shared by BC1/BC2/BC3 (which differ only in their alpha plane).
// hasSeparateAlpha is true for BC2/BC3, where the block never uses the
// "c0 <= c1 implies punch-through alpha" 3-colour encoding since a
// separate alpha plane already carries transparency. dstBase is the byte
// offset of the block's top-left texel in dst; the block never writes
// past cols/rows (the portion of the 4x4 footprint inside the image).
func decodeColorBlock(block []byte, dst []byte, dstBase, dstPitch, dstBpp, cols, rows int, hasAlphaChannel, hasSeparateAlpha bool) {
	c0raw := binary.LittleEndian.Uint16(block[0:2])
	c1raw := binary.LittleEndian.Uint16(block[2:4])
	idx := binary.LittleEndian.Uint32(block[4:8])

	c0 := extract565(c0raw)
	c1 := extract565(c1raw)

	var palette [4]color565
	palette[0] = c0
	palette[1] = c1
	if hasSeparateAlpha || c0raw > c1raw {
		palette[2] = lerp2_3(c0, c1)
		palette[3] = lerp2_3(c1, c0)
	} else {
		palette[2] = avg(c0, c1)
		if hasAlphaChannel {
			palette[3] = color565{}
		} else {
			palette[3] = color565{a: 0xFF}
		}
	}

	for j := 0; j < rows; j++ {
		rowOff := dstBase + j*dstPitch
		for i := 0; i < cols; i++ {
			shift := uint((j*BlockHeight + i) * 2)
			sel := (idx >> shift) & 0x3
			off := rowOff + i*dstBpp
			palette[sel].write(dst[off : off+4])
		}
	}
}

// DecodeBC1 decodes a buffer of BC1 (DXT1) blocks into 8-bit RGBA at dst,
// row pitch dstPitch, dstBpp bytes per destination texel (normally 4).
// hasAlpha selects whether the c0<=c1 3-colour encoding's 4th palette
// entry carries a zero alpha (DXT1 with punch-through alpha) or is opaque
// black (DXT1 without alpha).
func DecodeBC1(src, dst []byte, w, h, dstPitch, dstBpp int, hasAlpha bool) {
	const blockStride = 8
	blocksPerRow := (w + BlockWidth - 1) / BlockWidth

	for y := 0; y < h; y += BlockHeight {
		blockRow := src[(y/BlockHeight)*blocksPerRow*blockStride:]
		for x, bi := 0, 0; x < w; x, bi = x+BlockWidth, bi+1 {
			block := blockRow[bi*blockStride : bi*blockStride+blockStride]
			cols, rows := clampBlock(x, y, w, h)
			dstBase := y*dstPitch + x*dstBpp
			decodeColorBlock(block, dst, dstBase, dstPitch, dstBpp, cols, rows, hasAlpha, false)
		}
	}
}
