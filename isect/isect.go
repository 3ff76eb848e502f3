// Package isect computes exact triangle-triangle intersections and groups
// coplanar, overlapping triangles into clusters for joint retriangulation.
package isect

import "github.com/soypat/meshcsg/exact"

// Triangle is the minimal view C4/C5 need of a mesh triangle: its three
// corners and the triangle's own cached supporting plane.
type Triangle struct {
	P, Q, R exact.Vec3
	Plane   exact.Plane
	Orig    int // the input triangle id this corner set came from
}

// Kind classifies the result of Intersect.
type Kind int

const (
	// None: the triangles' supporting planes meet, but not within both
	// triangles' interiors/boundaries (or the planes don't meet at all).
	None Kind = iota
	// Point: the triangles meet at exactly one point.
	Point
	// Segment: the triangles meet along a line segment.
	Segment
	// Coplanar: the triangles share a plane; resolve via the cluster path.
	Coplanar
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Point:
		return "Point"
	case Segment:
		return "Segment"
	case Coplanar:
		return "Coplanar"
	default:
		return "Kind(?)"
	}
}

// Result is the outcome of intersecting two triangles.
type Result struct {
	Kind Kind
	A, B exact.Vec3 // A valid for Point and Segment; B valid for Segment only
}

// Intersect classifies the intersection of two triangles using their
// cached planes, following the same exact-arithmetic sign-dispatch
// structure as the Guigue-Devillers algorithm: separate by one plane's
// side test against the other triangle's vertices (twice, symmetrically),
// and when neither test separates, derive the intersection chord each
// triangle cuts on the other's plane and overlap the two chords along
// their common supporting line.
//
// This implementation folds the algorithm's 6-case/3-case vertex-sign
// dispatch table into one reusable chord() helper applied twice (see
// DESIGN.md) rather than enumerating every permutation inline; the
// resulting classification is the same.
func Intersect(t1, t2 Triangle) Result {
	d1p := t2.Plane.SignedDistance(t1.P)
	d1q := t2.Plane.SignedDistance(t1.Q)
	d1r := t2.Plane.SignedDistance(t1.R)
	if allZero(d1p, d1q, d1r) {
		return Result{Kind: Coplanar}
	}
	if sameNonzeroSign(d1p, d1q, d1r) {
		return Result{Kind: None}
	}

	d2p := t1.Plane.SignedDistance(t2.P)
	d2q := t1.Plane.SignedDistance(t2.Q)
	d2r := t1.Plane.SignedDistance(t2.R)
	if sameNonzeroSign(d2p, d2q, d2r) {
		return Result{Kind: None}
	}

	chord1 := chordPoints(t1.P, t1.Q, t1.R, d1p, d1q, d1r)
	chord2 := chordPoints(t2.P, t2.Q, t2.R, d2p, d2q, d2r)
	if len(chord1) == 0 || len(chord2) == 0 {
		return Result{Kind: None}
	}

	// Both chords lie on the planes' common line of intersection (each
	// triangle's chord is, by construction, a sub-segment of that line
	// clipped to the triangle). Parameterise both along the line
	// direction and intersect the two 1-D intervals.
	dir := t1.Plane.N.Cross(t2.Plane.N)
	origin := chord1[0]
	param := func(p exact.Vec3) exact.R { return p.Sub(origin).Dot(dir) }

	a0, a1 := chordInterval(chord1, param)
	b0, b1 := chordInterval(chord2, param)

	lo := exact.Max(a0, b0)
	hi := exact.Min(a1, b1)
	if lo.Cmp(hi) > 0 {
		return Result{Kind: None}
	}
	pLo := pointAtParam(chord1, param, lo)
	if lo.Cmp(hi) == 0 {
		return Result{Kind: Point, A: pLo}
	}
	pHi := pointAtParam(chord1, param, hi)
	return Result{Kind: Segment, A: pLo, B: pHi}
}

func allZero(a, b, c exact.R) bool {
	return a.Sign() == 0 && b.Sign() == 0 && c.Sign() == 0
}

func sameNonzeroSign(a, b, c exact.R) bool {
	sa := a.Sign()
	if sa == 0 {
		return false
	}
	return sa == b.Sign() && sa == c.Sign()
}

// chordPoints returns the 1 or 2 points where the triangle (P,Q,R), with
// plane-relative signed distances (dp,dq,dr) not all zero and not all the
// same nonzero sign, crosses the distance-zero plane.
func chordPoints(P, Q, R exact.Vec3, dp, dq, dr exact.R) []exact.Vec3 {
	pts := [3]exact.Vec3{P, Q, R}
	d := [3]exact.R{dp, dq, dr}
	var zeros []int
	for i := 0; i < 3; i++ {
		if d[i].Sign() == 0 {
			zeros = append(zeros, i)
		}
	}
	switch len(zeros) {
	case 2:
		return []exact.Vec3{pts[zeros[0]], pts[zeros[1]]}
	case 1:
		zi := zeros[0]
		a, b := (zi+1)%3, (zi+2)%3
		if d[a].Sign() == d[b].Sign() {
			return []exact.Vec3{pts[zi]}
		}
		return []exact.Vec3{pts[zi], edgeCross(pts[a], pts[b], d[a], d[b])}
	case 0:
		for i := 0; i < 3; i++ {
			a, b := (i+1)%3, (i+2)%3
			if d[i].Sign() != d[a].Sign() && d[i].Sign() != d[b].Sign() {
				return []exact.Vec3{
					edgeCross(pts[i], pts[a], d[i], d[a]),
					edgeCross(pts[i], pts[b], d[i], d[b]),
				}
			}
		}
	}
	return nil
}

func edgeCross(a, b exact.Vec3, da, db exact.R) exact.Vec3 {
	t := da.Quo(da.Sub(db))
	return exact.Interp(a, b, t)
}

// chordInterval returns the [min,max] of param() over a 1- or 2-point
// chord.
func chordInterval(chord []exact.Vec3, param func(exact.Vec3) exact.R) (lo, hi exact.R) {
	lo = param(chord[0])
	hi = lo
	if len(chord) == 2 {
		p1 := param(chord[1])
		lo, hi = exact.Min(lo, p1), exact.Max(lo, p1)
	}
	return lo, hi
}

// pointAtParam returns the point on the chord's line (parameterised by
// param, which is affine in t along that line) whose parameter is t.
func pointAtParam(chord []exact.Vec3, param func(exact.Vec3) exact.R, t exact.R) exact.Vec3 {
	if len(chord) == 1 {
		return chord[0]
	}
	p0, p1 := param(chord[0]), param(chord[1])
	if p0.Equal(p1) {
		return chord[0]
	}
	frac := t.Sub(p0).Quo(p1.Sub(p0))
	return exact.Interp(chord[0], chord[1], frac)
}
