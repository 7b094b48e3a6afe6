package blend

// Factor is a VkBlendFactor-equivalent term in the classic
// src*SrcFactor OP dst*DstFactor blend equation.
// Unlike BlendMode, which names a fixed composite law, Factor/Op let a
// pipeline specify an arbitrary per-target blend equation the way a
// Vulkan VkPipelineColorBlendAttachmentState does.
type Factor uint8

const (
	FactorZero Factor = iota
	FactorOne
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorDstColor
	FactorOneMinusDstColor
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstAlpha
	FactorOneMinusDstAlpha
	FactorConstantColor
	FactorOneMinusConstantColor
	FactorConstantAlpha
	FactorOneMinusConstantAlpha
	FactorSrcAlphaSaturate
	FactorSrc1Color
	FactorOneMinusSrc1Color
	FactorSrc1Alpha
	FactorOneMinusSrc1Alpha
)

// Op is a VkBlendOp-equivalent combining operator.
type Op uint8

const (
	OpAdd Op = iota
	OpSubtract
	OpReverseSubtract
	OpMin
	OpMax
)

// Equation is one target's full blend state: the colour and alpha
// equations evaluated independently, plus the constant colour/alpha used
// by the Constant* factors and the write mask applied last.
type Equation struct {
	Enabled bool

	SrcColor, DstColor Factor
	ColorOp            Op

	SrcAlpha, DstAlpha Factor
	AlphaOp            Op

	ConstR, ConstG, ConstB, ConstA float32

	// WriteMask bits: 1=R, 2=G, 4=B, 8=A.
	WriteMask uint8
}

// DefaultEquation returns the conventional "source-over" equation:
// src*SrcAlpha + dst*(1-SrcAlpha) for colour and src + dst*(1-SrcAlpha)
// for alpha, writing all four channels.
func DefaultEquation() Equation {
	return Equation{
		Enabled:   true,
		SrcColor:  FactorSrcAlpha,
		DstColor:  FactorOneMinusSrcAlpha,
		ColorOp:   OpAdd,
		SrcAlpha:  FactorOne,
		DstAlpha:  FactorOneMinusSrcAlpha,
		AlphaOp:   OpAdd,
		WriteMask: 0xF,
	}
}

func factorValue(f Factor, src, dst, src1 [4]float32, c Equation) float32Vec4 {
	switch f {
	case FactorZero:
		return float32Vec4{0, 0, 0, 0}
	case FactorOne:
		return float32Vec4{1, 1, 1, 1}
	case FactorSrcColor:
		return float32Vec4{src[0], src[1], src[2], src[3]}
	case FactorOneMinusSrcColor:
		return float32Vec4{1 - src[0], 1 - src[1], 1 - src[2], 1 - src[3]}
	case FactorDstColor:
		return float32Vec4{dst[0], dst[1], dst[2], dst[3]}
	case FactorOneMinusDstColor:
		return float32Vec4{1 - dst[0], 1 - dst[1], 1 - dst[2], 1 - dst[3]}
	case FactorSrcAlpha:
		return float32Vec4{src[3], src[3], src[3], src[3]}
	case FactorOneMinusSrcAlpha:
		return float32Vec4{1 - src[3], 1 - src[3], 1 - src[3], 1 - src[3]}
	case FactorDstAlpha:
		return float32Vec4{dst[3], dst[3], dst[3], dst[3]}
	case FactorOneMinusDstAlpha:
		return float32Vec4{1 - dst[3], 1 - dst[3], 1 - dst[3], 1 - dst[3]}
	case FactorConstantColor:
		return float32Vec4{c.ConstR, c.ConstG, c.ConstB, c.ConstA}
	case FactorOneMinusConstantColor:
		return float32Vec4{1 - c.ConstR, 1 - c.ConstG, 1 - c.ConstB, 1 - c.ConstA}
	case FactorConstantAlpha:
		return float32Vec4{c.ConstA, c.ConstA, c.ConstA, c.ConstA}
	case FactorOneMinusConstantAlpha:
		a := 1 - c.ConstA
		return float32Vec4{a, a, a, a}
	case FactorSrcAlphaSaturate:
		a := min32(src[3], 1-dst[3])
		return float32Vec4{a, a, a, 1}
	case FactorSrc1Color:
		return float32Vec4{src1[0], src1[1], src1[2], src1[3]}
	case FactorOneMinusSrc1Color:
		return float32Vec4{1 - src1[0], 1 - src1[1], 1 - src1[2], 1 - src1[3]}
	case FactorSrc1Alpha:
		return float32Vec4{src1[3], src1[3], src1[3], src1[3]}
	case FactorOneMinusSrc1Alpha:
		return float32Vec4{1 - src1[3], 1 - src1[3], 1 - src1[3], 1 - src1[3]}
	default:
		return float32Vec4{0, 0, 0, 0}
	}
}

type float32Vec4 = [4]float32

func combine(op Op, s, d float32) float32 {
	switch op {
	case OpAdd:
		return s + d
	case OpSubtract:
		return s - d
	case OpReverseSubtract:
		return d - s
	case OpMin:
		return min32(s, d)
	case OpMax:
		return max32(s, d)
	default:
		return s + d
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Apply evaluates the equation for one RGBA sample, given un-premultiplied
// float32 source/destination colour (and, for dual-source blending, a
// second source colour src1) in [0,1], and returns the blended result
// before the write mask is applied. Values are not clamped here; the
// caller clamps/quantizes when writing to the attachment.
func (c Equation) Apply(src, dst, src1 [4]float32) [4]float32 {
	if !c.Enabled {
		return src
	}
	sf := factorValue(c.SrcColor, src, dst, src1, c)
	df := factorValue(c.DstColor, src, dst, src1, c)
	saf := factorValue(c.SrcAlpha, src, dst, src1, c)
	daf := factorValue(c.DstAlpha, src, dst, src1, c)

	var out [4]float32
	for i := 0; i < 3; i++ {
		out[i] = combine(c.ColorOp, src[i]*sf[i], dst[i]*df[i])
	}
	out[3] = combine(c.AlphaOp, src[3]*saf[3], dst[3]*daf[3])
	return out
}
