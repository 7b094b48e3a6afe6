package clip

// distance returns the signed distance of v from the named plane's inside
// half-space, using the clip-space convention -W <= X,Y <= W with the
// Vulkan depth range 0 <= Z <= W. Positive means inside.
func distance(v Vec4, p Plane) float64 {
	switch p {
	case PlaneLeft:
		return v.X + v.W
	case PlaneRight:
		return v.W - v.X
	case PlaneBottom:
		return v.Y + v.W
	case PlaneTop:
		return v.W - v.Y
	case PlaneNear:
		return v.Z
	case PlaneFar:
		return v.W - v.Z
	default:
		return 0
	}
}

// clipAgainstPlane runs Sutherland-Hodgman polygon clipping of a convex
// polygon (given as an ordered vertex ring) against a single frustum plane.
func clipAgainstPlane(poly []Vertex, p Plane) []Vertex {
	if len(poly) == 0 {
		return nil
	}
	out := make([]Vertex, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevDist := distance(prev.Pos, p)
	prevIn := prevDist >= 0

	for _, cur := range poly {
		curDist := distance(cur.Pos, p)
		curIn := curDist >= 0

		if curIn != prevIn {
			t := prevDist / (prevDist - curDist)
			out = append(out, Vertex{
				Pos:   prev.Pos.Lerp(cur.Pos, t),
				Attrs: prev.Attrs.Lerp(cur.Attrs, t),
			})
		}
		if curIn {
			out = append(out, cur)
		}
		prev, prevDist, prevIn = cur, curDist, curIn
	}
	return out
}

// ClipTriangle clips a single triangle against all six frustum planes and
// fans the resulting convex polygon back into triangles. A triangle wholly
// inside the frustum is returned unchanged (as the one input triangle); a
// triangle wholly outside any single plane collapses to zero triangles. The
// polygon can grow to at most 9 vertices (3 + 6 plane insertions) and so
// fans into at most 7 triangles.
func ClipTriangle(a, b, c Vertex) [][3]Vertex {
	poly := []Vertex{a, b, c}
	for _, p := range allPlanes {
		poly = clipAgainstPlane(poly, p)
		if len(poly) == 0 {
			return nil
		}
	}
	if len(poly) < 3 {
		return nil
	}

	tris := make([][3]Vertex, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, [3]Vertex{poly[0], poly[i], poly[i+1]})
	}
	return tris
}

// NeedsClip reports whether a triangle has any vertex outside any frustum
// plane, i.e. whether ClipTriangle would do anything beyond returning the
// input unchanged.
func NeedsClip(a, b, c Vertex) bool {
	for _, p := range allPlanes {
		for _, v := range [3]Vertex{a, b, c} {
			if distance(v.Pos, p) < 0 {
				return true
			}
		}
	}
	return false
}
