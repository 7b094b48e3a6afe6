package blend

import "testing"

func approxEq(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}

func TestEquationDefaultSourceOver(t *testing.T) {
	eq := DefaultEquation()
	src := [4]float32{1, 0, 0, 0.5}
	dst := [4]float32{0, 1, 0, 1}
	out := eq.Apply(src, dst, [4]float32{})

	// R: 1*0.5 + 0*(1-0.5) = 0.5
	if !approxEq(out[0], 0.5) {
		t.Errorf("R = %v, want 0.5", out[0])
	}
	// G: 0*0.5 + 1*(1-0.5) = 0.5
	if !approxEq(out[1], 0.5) {
		t.Errorf("G = %v, want 0.5", out[1])
	}
	// A: 0.5*1 + 1*(1-0.5) = 1.0
	if !approxEq(out[3], 1.0) {
		t.Errorf("A = %v, want 1.0", out[3])
	}
}

func TestEquationDisabledPassesThroughSource(t *testing.T) {
	eq := Equation{Enabled: false}
	src := [4]float32{0.1, 0.2, 0.3, 0.4}
	out := eq.Apply(src, [4]float32{1, 1, 1, 1}, [4]float32{})
	if out != src {
		t.Errorf("disabled equation should pass src through unchanged, got %v", out)
	}
}

func TestEquationOpMinMax(t *testing.T) {
	eq := Equation{
		Enabled: true, SrcColor: FactorOne, DstColor: FactorOne,
		ColorOp: OpMin, SrcAlpha: FactorOne, DstAlpha: FactorOne, AlphaOp: OpMax,
	}
	src := [4]float32{0.2, 0.8, 0.5, 0.3}
	dst := [4]float32{0.6, 0.1, 0.5, 0.9}
	out := eq.Apply(src, dst, [4]float32{})
	if !approxEq(out[0], 0.2) || !approxEq(out[1], 0.1) {
		t.Errorf("OpMin mismatch: %v", out)
	}
	if !approxEq(out[3], 0.9) {
		t.Errorf("OpMax mismatch: %v", out[3])
	}
}
