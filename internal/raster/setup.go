package raster

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/swr/internal/clip"
)

// subpixelBits matches the 1/64-pixel subpixel precision common to
// hardware rasterizers (and to golang.org/x/image/math/fixed.Int26_6,
// which this package reuses rather than hand-rolling a fixed-point
// type): a window-space vertex coordinate is snapped to the nearest
// 1/64 pixel before edge setup so two primitives sharing an edge
// produce bit-identical edge equations regardless of floating-point
// rounding in the upstream transform.
const subpixelBits = 6

func snapSubpixel(v float64) float64 {
	return float64(fixed.Int26_6(v*64+0.5)) / 64
}

// ScreenVertex is a vertex after the perspective divide and viewport
// transform: window-space X/Y, the post-divide depth Z in [0,1], and the
// 1/w the interpolators are built from.
type ScreenVertex struct {
	X, Y, Z, InvW float64
	Attrs         clip.Attrs
}

// ToScreen applies the perspective divide and viewport transform to a
// clip-space vertex, producing window-space coordinates. vpX, vpY, vpW,
// vpH describe the viewport rectangle.
func ToScreen(v clip.Vertex, vpX, vpY, vpW, vpH float64) ScreenVertex {
	invW := 1.0 / v.Pos.W
	ndcX := v.Pos.X * invW
	ndcY := v.Pos.Y * invW
	ndcZ := v.Pos.Z * invW

	return ScreenVertex{
		X:     snapSubpixel(vpX + (ndcX*0.5+0.5)*vpW),
		Y:     snapSubpixel(vpY + (1-(ndcY*0.5+0.5))*vpH), // Y flipped: +Y is down in window space
		Z:     ndcZ,
		InvW:  invW,
		Attrs: v.Attrs,
	}
}

// Setup builds a Primitive from three screen-space vertices: edge
// equations, the 1/w and depth interpolator planes, the conservative
// bounding rectangle clipped to the framebuffer, and the cluster mask.
// Per-attribute planes are not built; Interpolators is left empty.
// cullBackface drops primitives with negative signed area (clockwise
// under the default counter-clockwise-front convention); provokingLast
// is accepted but not used by Setup.
func Setup(a, b, c ScreenVertex, fbWidth, fbHeight int, clusters ClusterMasker, cullBackface, provokingLast bool) Primitive {
	area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)

	prim := Primitive{AreaSign: area}
	if area == 0 {
		prim.Dropped = true
		return prim
	}
	if cullBackface && area < 0 {
		prim.Dropped = true
		return prim
	}

	prim.Edges = [3]EdgeEquation{
		edgeFrom(a, b),
		edgeFrom(b, c),
		edgeFrom(c, a),
	}
	// edgeFrom's equations are >= 0 inside a negative-area triangle;
	// flip them for a positive-area one so inside is >= 0 either way.
	if area > 0 {
		for i := range prim.Edges {
			e := &prim.Edges[i]
			e.A, e.B, e.C = -e.A, -e.B, -e.C
		}
	}

	minX, minY := a.X, a.Y
	maxX, maxY := a.X, a.Y
	for _, v := range [3]ScreenVertex{a, b, c} {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	prim.BoundsMinX = clampInt(int(minX), 0, fbWidth)
	prim.BoundsMaxX = clampInt(int(maxX)+1, 0, fbWidth)
	prim.BoundsMinY = clampInt(int(minY), 0, fbHeight)
	prim.BoundsMaxY = clampInt(int(maxY)+1, 0, fbHeight)
	if prim.BoundsMinX >= prim.BoundsMaxX || prim.BoundsMinY >= prim.BoundsMaxY {
		prim.Dropped = true
		return prim
	}

	prim.ClusterMask = clusters.Mask(prim.BoundsMinY, prim.BoundsMaxY)

	prim.InvW = planeFrom(a, b, c, area, func(v ScreenVertex) float64 { return v.InvW })
	prim.Depth = planeFrom(a, b, c, area, func(v ScreenVertex) float64 { return v.Z })
	// planeFrom's constant is the value at vertex a; move it to the
	// bounding rectangle's top-left corner, the origin Eval offsets from.
	ox, oy := float64(prim.BoundsMinX)-a.X, float64(prim.BoundsMinY)-a.Y
	prim.InvW.C += prim.InvW.A*ox + prim.InvW.B*oy
	prim.Depth.C += prim.Depth.A*ox + prim.Depth.B*oy

	_ = provokingLast // flat-attribute selection happens in the pixel routine's attribute decode, not here
	return prim
}

// ClusterMasker is the subset of parallel.ClusterGrid's interface Setup
// needs; declared here (rather than importing internal/parallel) to
// avoid a dependency from raster onto the scheduler package.
type ClusterMasker interface {
	Mask(minY, maxY int) uint32
}

func edgeFrom(p0, p1 ScreenVertex) EdgeEquation {
	a := p1.Y - p0.Y
	b := p0.X - p1.X
	c := -(a*p0.X + b*p0.Y)
	return EdgeEquation{A: a, B: b, C: c}
}

// planeFrom solves for the gradient plane of a scalar attribute (value at
// each vertex given by get) over the triangle (a,b,c) with doubled signed
// area, using Cramer's rule in screen space.
func planeFrom(a, b, c ScreenVertex, area float64, get func(ScreenVertex) float64) Interpolator {
	va, vb, vc := get(a), get(b), get(c)
	// Plane through (a.X,a.Y,va), (b.X,b.Y,vb), (c.X,c.Y,vc).
	dydx1 := b.Y - a.Y
	dydx2 := c.Y - a.Y
	dxdx1 := b.X - a.X
	dxdx2 := c.X - a.X
	dv1 := vb - va
	dv2 := vc - va

	grad := dv1*dydx2 - dv2*dydx1
	gradY := dv2*dxdx1 - dv1*dxdx2
	if area != 0 {
		grad /= area
		gradY /= area
	}
	return Interpolator{A: grad, B: gradY, C: va}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
