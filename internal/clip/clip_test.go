package clip

import "testing"

type scalarAttr float64

func (s scalarAttr) Lerp(other Attrs, t float64) Attrs {
	o := other.(scalarAttr)
	return scalarAttr(float64(s) + (float64(o)-float64(s))*t)
}

func TestClipTriangleWhollyInside(t *testing.T) {
	a := Vertex{Pos: Vec4{X: -1, Y: -1, Z: 0.5, W: 1}, Attrs: scalarAttr(0)}
	b := Vertex{Pos: Vec4{X: 1, Y: -1, Z: 0.5, W: 1}, Attrs: scalarAttr(1)}
	c := Vertex{Pos: Vec4{X: 0, Y: 1, Z: 0.5, W: 1}, Attrs: scalarAttr(2)}

	if NeedsClip(a, b, c) {
		t.Fatal("triangle inside the frustum should not need clipping")
	}
	tris := ClipTriangle(a, b, c)
	if len(tris) != 1 {
		t.Fatalf("len(tris) = %d, want 1", len(tris))
	}
}

func TestClipTriangleWhollyOutside(t *testing.T) {
	far := Vertex{Pos: Vec4{X: 5, Y: 5, Z: 0.5, W: 1}, Attrs: scalarAttr(0)}
	far2 := Vertex{Pos: Vec4{X: 6, Y: 5, Z: 0.5, W: 1}, Attrs: scalarAttr(0)}
	far3 := Vertex{Pos: Vec4{X: 5, Y: 6, Z: 0.5, W: 1}, Attrs: scalarAttr(0)}

	tris := ClipTriangle(far, far2, far3)
	if len(tris) != 0 {
		t.Fatalf("len(tris) = %d, want 0 for a triangle entirely right of the frustum", len(tris))
	}
}

func TestClipTriangleStraddlingNearPlane(t *testing.T) {
	// One vertex behind the near plane (Z < 0), two in front.
	behind := Vertex{Pos: Vec4{X: 0, Y: 0, Z: -1, W: 1}, Attrs: scalarAttr(0)}
	front1 := Vertex{Pos: Vec4{X: -1, Y: -1, Z: 1, W: 1}, Attrs: scalarAttr(1)}
	front2 := Vertex{Pos: Vec4{X: 1, Y: -1, Z: 1, W: 1}, Attrs: scalarAttr(2)}

	if !NeedsClip(behind, front1, front2) {
		t.Fatal("triangle straddling the near plane should need clipping")
	}

	tris := ClipTriangle(behind, front1, front2)
	if len(tris) == 0 {
		t.Fatal("straddling triangle should produce at least one triangle")
	}
	for _, tri := range tris {
		for _, v := range tri {
			if v.Pos.Z < -1e-9 {
				t.Fatalf("clipped vertex still behind near plane: %+v", v.Pos)
			}
		}
	}
}

func TestClipTriangleStraddlingSidePlaneProducesFan(t *testing.T) {
	a := Vertex{Pos: Vec4{X: -2, Y: 0, Z: 0.5, W: 1}, Attrs: scalarAttr(0)}
	b := Vertex{Pos: Vec4{X: 2, Y: -2, Z: 0.5, W: 1}, Attrs: scalarAttr(1)}
	c := Vertex{Pos: Vec4{X: 2, Y: 2, Z: 0.5, W: 1}, Attrs: scalarAttr(2)}

	tris := ClipTriangle(a, b, c)
	if len(tris) < 2 {
		t.Fatalf("expected the quad left by clipping a corner to fan into >=2 triangles, got %d", len(tris))
	}
	for _, tri := range tris {
		for _, v := range tri {
			if v.Pos.X > v.Pos.W+1e-9 {
				t.Fatalf("clipped vertex still right of frustum: %+v", v.Pos)
			}
		}
	}
}
