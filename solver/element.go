package solver

import "math"

// Element is one tetrahedron's local ADMM state: its rest-shape inverse
// edge matrix (used to recover the deformation gradient each step), its
// ADMM weight, rest volume, and ARAP/NeoHookean target singular values.
type Element struct {
	Tet     [4]int
	DmInv   [3][3]float64 // inverse of the rest edge matrix [X1-X0|X2-X0|X3-X0]
	W       float64       // sqrt(K * rest volume)
	RestVol float64
	Z, U    [3][3]float64 // ADMM auxiliary/dual variables, 3x3 deformation-gradient-shaped
}

// NewElement builds an Element from the tet's rest positions X0 and
// stiffness K, inverting its rest edge matrix. A rest tet whose volume is
// below 1e-14 is a fatal construction error (ErrInvertedRestTet). An
// inverted rest tet (negative edge-matrix determinant) is not rejected:
// its rest volume is taken as the absolute value.
func NewElement(tet [4]int, X0 [][3]float64, K float64) (Element, error) {
	p0, p1, p2, p3 := X0[tet[0]], X0[tet[1]], X0[tet[2]], X0[tet[3]]
	dm := [3][3]float64{
		{p1[0] - p0[0], p2[0] - p0[0], p3[0] - p0[0]},
		{p1[1] - p0[1], p2[1] - p0[1], p3[1] - p0[1]},
		{p1[2] - p0[2], p2[2] - p0[2], p3[2] - p0[2]},
	}
	det := det3(dm)
	vol := det / 6
	if vol < 0 {
		vol = -vol
	}
	const minVol = 1e-14
	if vol < minVol {
		return Element{}, ErrInvertedRestTet
	}
	dmInv, ok := inv3(dm, det)
	if !ok {
		return Element{}, ErrInvertedRestTet
	}
	return Element{Tet: tet, DmInv: dmInv, RestVol: vol, W: math.Sqrt(K * vol)}, nil
}

// EvalF computes the deformation gradient F = Ds * DmInv for the
// element's current deformed positions X.
func (e *Element) EvalF(X [][3]float64) [3][3]float64 {
	p0, p1, p2, p3 := X[e.Tet[0]], X[e.Tet[1]], X[e.Tet[2]], X[e.Tet[3]]
	ds := [3][3]float64{
		{p1[0] - p0[0], p2[0] - p0[0], p3[0] - p0[0]},
		{p1[1] - p0[1], p2[1] - p0[1], p3[1] - p0[1]},
		{p1[2] - p0[2], p2[2] - p0[2], p3[2] - p0[2]},
	}
	return mul3(ds, e.DmInv)
}

// ReductionRow returns the 3x4 reduction matrix B such that, for axis a,
// F[a,:] = B * (x0[a],x1[a],x2[a],x3[a])^T; shared by all three axes.
func (e *Element) ReductionRow() [3][4]float64 {
	var b [3][4]float64
	for j := 0; j < 3; j++ {
		var s float64
		for c := 0; c < 3; c++ {
			s += e.DmInv[c][j]
		}
		b[j][0] = -s
		for c := 0; c < 3; c++ {
			b[j][c+1] = e.DmInv[c][j]
		}
	}
	return b
}

func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func inv3(m [3][3]float64, det float64) ([3][3]float64, bool) {
	if det == 0 {
		return [3][3]float64{}, false
	}
	invDet := 1 / det
	var r [3][3]float64
	r[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	r[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	r[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	r[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	r[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	r[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet
	r[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	r[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	r[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet
	return r, true
}

func mul3(a, b [3][3]float64) [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

func transpose3(a [3][3]float64) [3][3]float64 {
	return [3][3]float64{
		{a[0][0], a[1][0], a[2][0]},
		{a[0][1], a[1][1], a[2][1]},
		{a[0][2], a[1][2], a[2][2]},
	}
}
