package texel

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Decode decodes a whole compressed mip level in src into dst, an 8-bit
// RGBA buffer of the given row pitch (dstBpp is always 4 for the 8-bit
// formats this dispatches to). HDR formats (BC6H) are not reachable
// through this entry point — callers needing float32 output call
// DecodeBC6H directly.
func Decode(format gputypes.TextureFormat, src, dst []byte, w, h, dstPitch int) error {
	const dstBpp = 4
	switch format {
	case gputypes.TextureFormatBC1RGBAUnorm, gputypes.TextureFormatBC1RGBAUnormSrgb:
		DecodeBC1(src, dst, w, h, dstPitch, dstBpp, true)
	case gputypes.TextureFormatBC2RGBAUnorm, gputypes.TextureFormatBC2RGBAUnormSrgb:
		DecodeBC2(src, dst, w, h, dstPitch, dstBpp)
	case gputypes.TextureFormatBC3RGBAUnorm, gputypes.TextureFormatBC3RGBAUnormSrgb:
		DecodeBC3(src, dst, w, h, dstPitch, dstBpp)
	case gputypes.TextureFormatBC4RUnorm:
		DecodeBC4(src, dst, w, h, dstPitch, dstBpp, false)
	case gputypes.TextureFormatBC4RSnorm:
		DecodeBC4(src, dst, w, h, dstPitch, dstBpp, true)
	case gputypes.TextureFormatBC5RGUnorm:
		DecodeBC5(src, dst, w, h, dstPitch, dstBpp, false)
	case gputypes.TextureFormatBC5RGSnorm:
		DecodeBC5(src, dst, w, h, dstPitch, dstBpp, true)
	case gputypes.TextureFormatBC7RGBAUnorm, gputypes.TextureFormatBC7RGBAUnormSrgb:
		DecodeBC7(src, dst, w, h, dstPitch, dstBpp)
	case gputypes.TextureFormatASTC4x4Unorm, gputypes.TextureFormatASTC4x4UnormSrgb:
		DecodeASTC(src, dst, w, h, 4, 4, dstPitch, dstBpp)
	default:
		return fmt.Errorf("texel: unsupported compressed format %v", format)
	}
	return nil
}

// BlockSize reports the compressed byte size of one block for format, or
// (0, false) if format isn't a block-compressed format this package
// handles.
func BlockSize(format gputypes.TextureFormat) (int, bool) {
	switch format {
	case gputypes.TextureFormatBC1RGBAUnorm, gputypes.TextureFormatBC1RGBAUnormSrgb,
		gputypes.TextureFormatBC4RUnorm, gputypes.TextureFormatBC4RSnorm:
		return 8, true
	case gputypes.TextureFormatBC2RGBAUnorm, gputypes.TextureFormatBC2RGBAUnormSrgb,
		gputypes.TextureFormatBC3RGBAUnorm, gputypes.TextureFormatBC3RGBAUnormSrgb,
		gputypes.TextureFormatBC5RGUnorm, gputypes.TextureFormatBC5RGSnorm,
		gputypes.TextureFormatBC6HRGBUfloat, gputypes.TextureFormatBC6HRGBFloat,
		gputypes.TextureFormatBC7RGBAUnorm, gputypes.TextureFormatBC7RGBAUnormSrgb,
		gputypes.TextureFormatASTC4x4Unorm, gputypes.TextureFormatASTC4x4UnormSrgb:
		return 16, true
	default:
		return 0, false
	}
}
