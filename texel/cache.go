package texel

import (
	"hash/fnv"

	"github.com/gogpu/gputypes"
	internalcache "github.com/gogpu/swr/internal/cache"
)

// Texel is a single decoded RGBA sample in [0,1] (HDR decodes may exceed
// 1 for the float channels).
type Texel [4]float32

// blockKey identifies a decoded block by its compressed format and the
// raw bytes that produced it, so two draws sampling the same compressed
// block (common for a tiled or instanced mesh reusing one texture) share
// one decode regardless of which mip/slice/offset it came from.
type blockKey uint64

func hashBlock(format gputypes.TextureFormat, block []byte) blockKey {
	h := fnv.New64a()
	_, _ = h.Write([]byte{byte(format), byte(format >> 8), byte(format >> 16), byte(format >> 24)})
	_, _ = h.Write(block)
	return blockKey(h.Sum64())
}

// BlockCache memoizes decoded 4x4 texel blocks keyed by their compressed
// content, fronting the stateless Decode* functions so repeated sampling
// of the same block across draws skips redecoding. Decoders themselves
// stay pure and allocation-free; this cache sits in front of them.
type BlockCache struct {
	cache *internalcache.Cache[blockKey, [4][4]Texel]
}

// NewBlockCache creates a BlockCache holding up to softLimit decoded
// blocks before evicting the least recently used.
func NewBlockCache(softLimit int) *BlockCache {
	return &BlockCache{cache: internalcache.New[blockKey, [4][4]Texel](softLimit)}
}

// Decode returns the decoded 4x4 texel block for a single BC1/BC2/BC3
// block, decoding and caching it on first use. format must be one of the
// 8-bit BCn formats Decode supports; callers sampling BC6H or ASTC
// decode through DecodeBC6H/DecodeASTC directly since those aren't
// always a fixed 4x4 footprint or 8-bit-per-channel result.
func (c *BlockCache) Decode(format gputypes.TextureFormat, block []byte) [4][4]Texel {
	key := hashBlock(format, block)
	return c.cache.GetOrCreate(key, func() [4][4]Texel {
		var rgba [64]byte // 4x4 texels * 4 bytes, pitch = 16 bytes/row
		switch format {
		case gputypes.TextureFormatBC1RGBAUnorm, gputypes.TextureFormatBC1RGBAUnormSrgb:
			DecodeBC1(block, rgba[:], BlockWidth, BlockHeight, 16, 4, true)
		case gputypes.TextureFormatBC2RGBAUnorm, gputypes.TextureFormatBC2RGBAUnormSrgb:
			DecodeBC2(block, rgba[:], BlockWidth, BlockHeight, 16, 4)
		case gputypes.TextureFormatBC3RGBAUnorm, gputypes.TextureFormatBC3RGBAUnormSrgb:
			DecodeBC3(block, rgba[:], BlockWidth, BlockHeight, 16, 4)
		case gputypes.TextureFormatBC7RGBAUnorm, gputypes.TextureFormatBC7RGBAUnormSrgb:
			DecodeBC7(block, rgba[:], BlockWidth, BlockHeight, 16, 4)
		default:
			DecodeASTC(block, rgba[:], BlockWidth, BlockHeight, BlockWidth, BlockHeight, 16, 4)
		}

		var out [4][4]Texel
		for y := 0; y < BlockHeight; y++ {
			for x := 0; x < BlockWidth; x++ {
				off := y*16 + x*4
				out[y][x] = Texel{
					float32(rgba[off]) / 255,
					float32(rgba[off+1]) / 255,
					float32(rgba[off+2]) / 255,
					float32(rgba[off+3]) / 255,
				}
			}
		}
		return out
	})
}
