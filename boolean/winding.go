package boolean

import (
	"github.com/soypat/meshcsg/exact"
	"github.com/soypat/meshcsg/isect"
)

// probeDir is a fixed, deliberately non-axis-aligned ray direction used
// by windingNumber, chosen to make an accidental exact coincidence (the
// ray running parallel to a triangle's plane, or passing exactly through
// an edge/vertex) unlikely for meshes built from "nice" coordinates. A
// mesh adversarially aligned to probeDir could still hit one of these
// degenerate cases; windingNumber skips a triangle it is parallel to
// rather than failing the whole query.
var probeDir = exact.Vec3{X: exact.NewInt(1), Y: exact.NewFrac(3, 7), Z: exact.NewFrac(11, 13)}

// rawNormal returns (Q-P) x (R-P), the winding-dependent normal of a
// triangle. Unlike exact.NewPlane's canonicalised Plane.N (which divides
// by the first nonzero component and so erases which way the triangle
// actually winds, by design, for its coplanar-grouping use in C5), this
// preserves orientation, which the winding-number and duplicate-pairing
// logic in this package both depend on.
func rawNormal(t isect.OutputTriangle) exact.Vec3 {
	return t.Q.Sub(t.P).Cross(t.R.Sub(t.P))
}

// windingNumber returns, for every shape in [0,nshapes), the signed count
// of probeDir-ray crossings with that shape's triangles starting at q:
// each crossing contributes sign(N.dir) for the crossed triangle's raw
// (winding-dependent) normal N, which sums to the standard integer
// winding number for a closed, consistently outward-oriented shape.
func windingNumber(q exact.Vec3, tris []isect.OutputTriangle, nshapes int, shapeFn ShapeFn) []int {
	w := make([]int, nshapes)
	for _, t := range tris {
		s := shapeFn(t.Orig)
		if s < 0 || s >= nshapes {
			continue
		}
		sign, hit := rayTriangleCrossing(q, probeDir, t)
		if hit {
			w[s] += sign
		}
	}
	return w
}

// rayTriangleCrossing tests whether the ray q+t*dir (t>0) crosses
// triangle tri, returning sign(N . dir) (N the raw, winding-dependent
// normal) and true if so.
func rayTriangleCrossing(q, dir exact.Vec3, tri isect.OutputTriangle) (sign int, hit bool) {
	n := rawNormal(tri)
	denom := n.Dot(dir)
	if denom.IsZero() {
		return 0, false // ray parallel to the triangle's plane
	}
	// Plane through tri.P with normal n: n.(x-P) = 0, i.e. n.x = n.P.
	// t solves n.(q+t*dir) = n.P.
	nP := n.Dot(tri.P)
	t := nP.Sub(n.Dot(q)).Quo(denom)
	if t.Sign() <= 0 {
		return 0, false
	}
	p := q.Add(dir.Scale(t))
	axis := exact.DominantAxis(n)
	p2 := exact.DropAxis(p, axis)
	a2 := exact.DropAxis(tri.P, axis)
	b2 := exact.DropAxis(tri.Q, axis)
	c2 := exact.DropAxis(tri.R, axis)
	if !pointInTriangle2D(p2, a2, b2, c2) {
		return 0, false
	}
	return denom.Sign(), true
}

// pointInTriangle2D reports whether p lies inside or on triangle (a,b,c),
// regardless of the triangle's winding.
func pointInTriangle2D(p, a, b, c exact.Vec2) bool {
	s0 := exact.Orient2D(a, b, p)
	s1 := exact.Orient2D(b, c, p)
	s2 := exact.Orient2D(c, a, p)
	return (s0 >= 0 && s1 >= 0 && s2 >= 0) || (s0 <= 0 && s1 <= 0 && s2 <= 0)
}
