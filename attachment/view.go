// Package attachment describes colour, depth, and stencil render-target
// views. A View never owns the memory it
// points at: ownership stays with the external image object the
// descriptor/image layer hands the renderer, and a View is
// only valid for the lifetime of the draw that references it.
package attachment

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Aspect selects which plane of a View a stage reads or writes.
type Aspect uint8

const (
	AspectColor Aspect = iota
	AspectDepth
	AspectStencil
)

// View is a non-owning handle to a rectangular region of pixel storage:
// a base pointer plus the pitch/format/sample-count metadata needed to
// address any sample in it. pixel and vertex tasks never copy out of a
// View; they read and write through it in place.
type View struct {
	Format      gputypes.TextureFormat
	Aspect      Aspect
	Width       int
	Height      int
	SampleCount int

	// RowPitch is the byte stride between rows; SlicePitch is the byte
	// stride between array layers/3D slices (0 for a single-layer view).
	RowPitch   int
	SlicePitch int

	// Base is the non-owning pointer to the first byte of the view's
	// backing storage.
	Base []byte
}

// BytesPerSample reports the storage size of one sample in this view's
// format, used to compute per-pixel byte offsets. Unsupported formats
// report 0; callers must not address into a zero-sized view.
func (v View) BytesPerSample() int {
	switch v.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return 4
	case gputypes.TextureFormatRGBA16Float:
		return 8
	case gputypes.TextureFormatRGBA32Float:
		return 16
	case gputypes.TextureFormatDepth32Float:
		return 4
	case gputypes.TextureFormatDepth24PlusStencil8:
		return 4
	case gputypes.TextureFormatStencil8:
		return 1
	default:
		return 0
	}
}

// Offset computes the byte offset of sample (x, y) in the view's base
// buffer, honoring RowPitch. Callers are responsible for bounds-checking
// x/y against Width/Height first.
func (v View) Offset(x, y int) int {
	return y*v.RowPitch + x*v.BytesPerSample()
}

// InBounds reports whether (x, y) addresses a sample within the view.
func (v View) InBounds(x, y int) bool {
	return x >= 0 && x < v.Width && y >= 0 && y < v.Height
}

func unormToFloat(b byte) float32 { return float32(b) / 255 }

func floatToUnorm(f float32) byte {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return byte(f*255 + 0.5)
}

// ReadColor decodes the RGBA sample at (x, y) into [0,1] float components.
// It reports false for formats this package doesn't know how to decode
// (compressed and floating-point formats; see the texel package for
// decoding compressed source textures before they reach an attachment).
func (v View) ReadColor(x, y int) ([4]float32, bool) {
	if !v.InBounds(x, y) {
		return [4]float32{}, false
	}
	off := v.Offset(x, y)
	switch v.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		b := v.Base[off : off+4]
		return [4]float32{unormToFloat(b[0]), unormToFloat(b[1]), unormToFloat(b[2]), unormToFloat(b[3])}, true
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		b := v.Base[off : off+4]
		return [4]float32{unormToFloat(b[2]), unormToFloat(b[1]), unormToFloat(b[0]), unormToFloat(b[3])}, true
	default:
		return [4]float32{}, false
	}
}

// WriteColor encodes an RGBA sample (components in [0,1], clamped) at
// (x, y). It reports false, leaving the view untouched, for formats this
// package doesn't know how to encode.
func (v View) WriteColor(x, y int, c [4]float32) bool {
	if !v.InBounds(x, y) {
		return false
	}
	off := v.Offset(x, y)
	switch v.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		b := v.Base[off : off+4]
		b[0], b[1], b[2], b[3] = floatToUnorm(c[0]), floatToUnorm(c[1]), floatToUnorm(c[2]), floatToUnorm(c[3])
		return true
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		b := v.Base[off : off+4]
		b[2], b[1], b[0], b[3] = floatToUnorm(c[0]), floatToUnorm(c[1]), floatToUnorm(c[2]), floatToUnorm(c[3])
		return true
	default:
		return false
	}
}

// depth24Scale converts between a float32 [0,1] depth and the 24-bit
// fixed-point value packed into the high 24 bits of a D24S8 texel.
const depth24Scale = float32((1 << 24) - 1)

// ReadDepth decodes the depth sample at (x, y).
func (v View) ReadDepth(x, y int) (float32, bool) {
	if !v.InBounds(x, y) {
		return 0, false
	}
	off := v.Offset(x, y)
	switch v.Format {
	case gputypes.TextureFormatDepth32Float:
		return math.Float32frombits(binary.LittleEndian.Uint32(v.Base[off : off+4])), true
	case gputypes.TextureFormatDepth24PlusStencil8:
		packed := binary.LittleEndian.Uint32(v.Base[off : off+4])
		return float32(packed>>8) / depth24Scale, true
	default:
		return 0, false
	}
}

// WriteDepth encodes a depth sample (clamped to [0,1] for fixed-point
// formats) at (x, y).
func (v View) WriteDepth(x, y int, z float32) bool {
	if !v.InBounds(x, y) {
		return false
	}
	off := v.Offset(x, y)
	switch v.Format {
	case gputypes.TextureFormatDepth32Float:
		binary.LittleEndian.PutUint32(v.Base[off:off+4], math.Float32bits(z))
		return true
	case gputypes.TextureFormatDepth24PlusStencil8:
		if z < 0 {
			z = 0
		}
		if z > 1 {
			z = 1
		}
		packed := binary.LittleEndian.Uint32(v.Base[off : off+4])
		depth24 := uint32(z*depth24Scale + 0.5)
		binary.LittleEndian.PutUint32(v.Base[off:off+4], depth24<<8|(packed&0xFF))
		return true
	default:
		return false
	}
}

// ReadStencil decodes the stencil sample at (x, y).
func (v View) ReadStencil(x, y int) (uint8, bool) {
	if !v.InBounds(x, y) {
		return 0, false
	}
	switch v.Format {
	case gputypes.TextureFormatStencil8:
		return v.Base[v.Offset(x, y)], true
	case gputypes.TextureFormatDepth24PlusStencil8:
		off := v.Offset(x, y)
		return uint8(binary.LittleEndian.Uint32(v.Base[off : off+4]) & 0xFF), true
	default:
		return 0, false
	}
}

// WriteStencil encodes a stencil sample at (x, y).
func (v View) WriteStencil(x, y int, s uint8) bool {
	if !v.InBounds(x, y) {
		return false
	}
	off := v.Offset(x, y)
	switch v.Format {
	case gputypes.TextureFormatStencil8:
		v.Base[off] = s
		return true
	case gputypes.TextureFormatDepth24PlusStencil8:
		packed := binary.LittleEndian.Uint32(v.Base[off : off+4])
		binary.LittleEndian.PutUint32(v.Base[off:off+4], (packed&^0xFF)|uint32(s))
		return true
	default:
		return false
	}
}
