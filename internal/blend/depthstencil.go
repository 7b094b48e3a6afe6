package blend

// CompareOp is a VkCompareOp-equivalent comparison used by both depth and
// stencil tests.
type CompareOp uint8

const (
	CompareNever CompareOp = iota
	CompareLess
	CompareEqual
	CompareLessOrEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterOrEqual
	CompareAlways
)

func (op CompareOp) test(ref, value float32) bool {
	switch op {
	case CompareNever:
		return false
	case CompareLess:
		return ref < value
	case CompareEqual:
		return ref == value
	case CompareLessOrEqual:
		return ref <= value
	case CompareGreater:
		return ref > value
	case CompareNotEqual:
		return ref != value
	case CompareGreaterOrEqual:
		return ref >= value
	case CompareAlways:
		return true
	default:
		return true
	}
}

// StencilOp is a VkStencilOp-equivalent stencil-buffer update, applied
// following Vulkan semantics (keep/zero/replace/incr/decr/invert, with
// optional wrap).
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrementClamp
	StencilDecrementClamp
	StencilInvert
	StencilIncrementWrap
	StencilDecrementWrap
)

func (op StencilOp) apply(current, ref uint8) uint8 {
	switch op {
	case StencilKeep:
		return current
	case StencilZero:
		return 0
	case StencilReplace:
		return ref
	case StencilIncrementClamp:
		if current == 0xFF {
			return current
		}
		return current + 1
	case StencilDecrementClamp:
		if current == 0 {
			return current
		}
		return current - 1
	case StencilInvert:
		return ^current
	case StencilIncrementWrap:
		return current + 1
	case StencilDecrementWrap:
		return current - 1
	default:
		return current
	}
}

// StencilFace holds one face's (front or back) stencil test/update state.
type StencilFace struct {
	Compare   CompareOp
	FailOp    StencilOp
	PassOp    StencilOp
	DepthFail StencilOp
	Reference uint8
	ReadMask  uint8
	WriteMask uint8
}

// DepthStencilState bundles the depth and stencil pipeline state tested
// per sample during rasterization. Early vs. late scheduling (before or
// after the pixel routine runs) is decided by the caller: early unless
// the routine may discard or writes depth.
type DepthStencilState struct {
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthCompare     CompareOp

	StencilTestEnable bool
	Front, Back       StencilFace
}

// TestDepth evaluates the depth compare for one sample and reports
// whether it passes. existing is the attachment's current depth value.
func (s DepthStencilState) TestDepth(candidate, existing float32) bool {
	if !s.DepthTestEnable {
		return true
	}
	return s.DepthCompare.test(candidate, existing)
}

// TestStencil evaluates the stencil compare for one sample using face
// (front or back, selected by the caller based on the primitive's
// winding), reporting whether it passes.
func (f StencilFace) TestStencil(existing uint8) bool {
	return f.Compare.test(float32(f.Reference&f.ReadMask), float32(existing&f.ReadMask))
}

// UpdateStencil computes the new stencil value for one sample given
// whether the stencil and depth tests passed, per Vulkan's three-way
// fail/depthFail/pass op selection.
func (f StencilFace) UpdateStencil(existing uint8, stencilPassed, depthPassed bool) uint8 {
	var op StencilOp
	switch {
	case !stencilPassed:
		op = f.FailOp
	case !depthPassed:
		op = f.DepthFail
	default:
		op = f.PassOp
	}
	result := op.apply(existing, f.Reference)
	return (existing &^ f.WriteMask) | (result & f.WriteMask)
}
