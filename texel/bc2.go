package texel

// DecodeBC2 decodes a BC2 (DXT3) block stream: an 8-byte explicit 4-bit
// alpha block followed by an 8-byte BC1-style colour block per texel
// group, matching BC_Decoder.cpp's n==2 case (the colour block always
// decodes with hasSeparateAlpha=true, since BC2 never uses the
// punch-through 3-colour encoding).
func DecodeBC2(src, dst []byte, w, h, dstPitch, dstBpp int) {
	const blockStride = 16 // 8 bytes alpha + 8 bytes colour
	blocksPerRow := (w + BlockWidth - 1) / BlockWidth

	for y := 0; y < h; y += BlockHeight {
		blockRow := src[(y/BlockHeight)*blocksPerRow*blockStride:]
		for x, bi := 0, 0; x < w; x, bi = x+BlockWidth, bi+1 {
			alphaBlock := blockRow[bi*blockStride : bi*blockStride+8]
			colorBlock := blockRow[bi*blockStride+8 : bi*blockStride+16]
			cols, rows := clampBlock(x, y, w, h)
			dstBase := y*dstPitch + x*dstBpp
			decodeColorBlock(colorBlock, dst, dstBase, dstPitch, dstBpp, cols, rows, true, true)
			decodeAlphaBlock(alphaBlock, dst, dstBase, dstPitch, dstBpp, cols, rows)
		}
	}
}

// DecodeBC3 decodes a BC3 (DXT5) block stream: an 8-byte interpolated
// single-channel alpha block followed by an 8-byte BC1-style colour
// block, matching BC_Decoder.cpp's n==3 case.
func DecodeBC3(src, dst []byte, w, h, dstPitch, dstBpp int) {
	const blockStride = 16
	blocksPerRow := (w + BlockWidth - 1) / BlockWidth

	for y := 0; y < h; y += BlockHeight {
		blockRow := src[(y/BlockHeight)*blocksPerRow*blockStride:]
		for x, bi := 0, 0; x < w; x, bi = x+BlockWidth, bi+1 {
			alphaBlock := blockRow[bi*blockStride : bi*blockStride+8]
			colorBlock := blockRow[bi*blockStride+8 : bi*blockStride+16]
			cols, rows := clampBlock(x, y, w, h)
			dstBase := y*dstPitch + x*dstBpp
			decodeColorBlock(colorBlock, dst, dstBase, dstPitch, dstBpp, cols, rows, true, true)
			decodeChannelBlock(alphaBlock, dst, dstBase, dstPitch, dstBpp, 3, cols, rows, false)
		}
	}
}
