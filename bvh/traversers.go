package bvh

import "math"

// PointInTet reports whether p lies inside the tetrahedron with corners
// v0..v3 (in either winding) using four signed-volume tests, analogous to
// a 3-D orient test: p is inside iff it is on the same side of every face
// as the opposite vertex.
func PointInTet(p, v0, v1, v2, v3 [3]float64) bool {
	sign := func(a, b, c, d [3]float64) float64 {
		ab := sub(b, a)
		ac := sub(c, a)
		ad := sub(d, a)
		return dot(ab, cross(ac, ad))
	}
	same := func(a, b, c, opp [3]float64) bool { return sign(a, b, c, p)*sign(a, b, c, opp) >= 0 }
	return same(v1, v2, v3, v0) && same(v0, v2, v3, v1) && same(v0, v1, v3, v2) && same(v0, v1, v2, v3)
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func dot(a, b [3]float64) float64    { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// PointInTetMeshTraverser finds the first tetrahedron (by traversal
// order) of a tet mesh X/T containing P, skipping any tet index present
// in SkipTets and any tet that uses a vertex present in SkipVerts. Prim
// holds the winning tet index, or -1 if none contained P.
type PointInTetMeshTraverser struct {
	P         [3]float64
	X         [][3]float64
	T         [][4]int
	SkipTets  map[int]bool
	SkipVerts map[int]bool
	Prim      int
}

func (tr *PointInTetMeshTraverser) Overlap(box Box) bool { return box.Contains(tr.P) }

func (tr *PointInTetMeshTraverser) Leaf(primIdx int) {
	if tr.Prim >= 0 {
		return // already found a winner; traversal continues but does no more work
	}
	if tr.SkipTets != nil && tr.SkipTets[primIdx] {
		return
	}
	tet := tr.T[primIdx]
	if tr.SkipVerts != nil {
		for _, v := range tet {
			if tr.SkipVerts[v] {
				return
			}
		}
	}
	v0, v1, v2, v3 := tr.X[tet[0]], tr.X[tet[1]], tr.X[tet[2]], tr.X[tet[3]]
	if PointInTet(tr.P, v0, v1, v2, v3) {
		tr.Prim = primIdx
	}
}

// PointInTetMeshTraverse runs a PointInTetMeshTraverser over tree and
// returns the first containing tet index, or -1.
func PointInTetMeshTraverse(tree *Tree, p [3]float64, X [][3]float64, T [][4]int, skipVerts, skipTets map[int]bool) int {
	tr := &PointInTetMeshTraverser{P: p, X: X, T: T, SkipTets: skipTets, SkipVerts: skipVerts, Prim: -1}
	tree.Traverse(tr)
	return tr.Prim
}

// nearestPointOnTriangle projects p onto triangle (a,b,c) and returns the
// closest point together with the squared distance.
func nearestPointOnTriangle(p, a, b, c [3]float64) ([3]float64, float64) {
	ab := sub(b, a)
	ac := sub(c, a)
	ap := sub(p, a)
	d1, d2 := dot(ab, ap), dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a, distSq(p, a)
	}
	bp := sub(p, b)
	d3, d4 := dot(ab, bp), dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b, distSq(p, b)
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		q := [3]float64{a[0] + v*ab[0], a[1] + v*ab[1], a[2] + v*ab[2]}
		return q, distSq(p, q)
	}
	cp := sub(p, c)
	d5, d6 := dot(ab, cp), dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c, distSq(p, c)
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		q := [3]float64{a[0] + w*ac[0], a[1] + w*ac[1], a[2] + w*ac[2]}
		return q, distSq(p, q)
	}
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		q := [3]float64{b[0] + w*(c[0]-b[0]), b[1] + w*(c[1]-b[1]), b[2] + w*(c[2]-b[2])}
		return q, distSq(p, q)
	}
	denom := 1 / (va + vb + vc)
	v, w := vb*denom, vc*denom
	q := [3]float64{a[0] + ab[0]*v + ac[0]*w, a[1] + ab[1]*v + ac[1]*w, a[2] + ab[2]*v + ac[2]*w}
	return q, distSq(p, q)
}

func distSq(a, b [3]float64) float64 {
	d := sub(a, b)
	return dot(d, d)
}

// NearestTriangleTraverser performs a branch-and-bound nearest-point-on-
// triangle search over a triangle mesh V/F. Prim and PtOnTri record the
// winner; SkipTris excludes triangle indices from consideration.
type NearestTriangleTraverser struct {
	P         [3]float64
	V         [][3]float64
	F         [][3]int
	SkipTris  map[int]bool
	Prim      int
	PtOnTri   [3]float64
	bestDist2 float64
}

func (tr *NearestTriangleTraverser) Overlap(box Box) bool {
	// Branch-and-bound: prune subtrees whose box cannot beat the current
	// best squared distance.
	if tr.Prim < 0 {
		return true
	}
	return boxDistSq(tr.P, box) <= tr.bestDist2
}

func boxDistSq(p [3]float64, b Box) float64 {
	var d2 float64
	for i := 0; i < 3; i++ {
		v := 0.0
		if p[i] < b.Min[i] {
			v = b.Min[i] - p[i]
		} else if p[i] > b.Max[i] {
			v = p[i] - b.Max[i]
		}
		d2 += v * v
	}
	return d2
}

func (tr *NearestTriangleTraverser) Leaf(primIdx int) {
	if tr.SkipTris != nil && tr.SkipTris[primIdx] {
		return
	}
	f := tr.F[primIdx]
	q, d2 := nearestPointOnTriangle(tr.P, tr.V[f[0]], tr.V[f[1]], tr.V[f[2]])
	if tr.Prim < 0 || d2 < tr.bestDist2 {
		tr.Prim = primIdx
		tr.PtOnTri = q
		tr.bestDist2 = d2
	}
}

// NearestTriangleTraverse finds the nearest triangle in F (with vertices
// V) to p, returning its index and the closest point on it, or (-1,
// zero) if every triangle was skipped.
func NearestTriangleTraverse(tree *Tree, p [3]float64, V [][3]float64, F [][3]int, skipTris map[int]bool) (int, [3]float64) {
	tr := &NearestTriangleTraverser{P: p, V: V, F: F, SkipTris: skipTris, Prim: -1, bestDist2: math.Inf(1)}
	tree.Traverse(tr)
	return tr.Prim, tr.PtOnTri
}

// PointInTriangleMeshTraverse determines whether p is inside the closed
// triangle mesh V/F by counting crossings of a ray cast from p along +X
// with every candidate triangle the tree offers (those whose box the ray
// could plausibly reach), using exact-orientation-equivalent 2-D
// projection along the ray's dominant plane.
func PointInTriangleMeshTraverse(tree *Tree, p [3]float64, V [][3]float64, F [][3]int) bool {
	tr := &rayCastTraverser{P: p, V: V, F: F}
	tree.Traverse(tr)
	return tr.crossings%2 == 1
}

type rayCastTraverser struct {
	P         [3]float64
	V         [][3]float64
	F         [][3]int
	crossings int
}

func (tr *rayCastTraverser) Overlap(box Box) bool {
	// Ray cast along +X from P: only boxes whose Y/Z range straddles P
	// and whose X range extends beyond P can contain a crossing.
	return box.Max[0] >= tr.P[0] && box.Min[1] <= tr.P[1] && box.Max[1] >= tr.P[1] &&
		box.Min[2] <= tr.P[2] && box.Max[2] >= tr.P[2]
}

func (tr *rayCastTraverser) Leaf(primIdx int) {
	f := tr.F[primIdx]
	if rayTriangleCrossesX(tr.P, tr.V[f[0]], tr.V[f[1]], tr.V[f[2]]) {
		tr.crossings++
	}
}

// rayTriangleCrossesX reports whether the ray {p + t*(1,0,0) : t>0}
// crosses triangle (a,b,c), via a Möller-Trumbore style test specialised
// to the +X direction.
func rayTriangleCrossesX(p, a, b, c [3]float64) bool {
	const eps = 1e-12
	e1 := sub(b, a)
	e2 := sub(c, a)
	dir := [3]float64{1, 0, 0}
	h := cross(dir, e2)
	det := dot(e1, h)
	if math.Abs(det) < eps {
		return false
	}
	invDet := 1 / det
	s := sub(p, a)
	u := dot(s, h) * invDet
	if u < 0 || u > 1 {
		return false
	}
	q := cross(s, e1)
	v := dot(dir, q) * invDet
	if v < 0 || u+v > 1 {
		return false
	}
	t := dot(e2, q) * invDet
	return t > eps
}
