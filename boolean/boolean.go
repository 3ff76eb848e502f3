// Package boolean implements the n-ary winding-number boolean filter over
// an arrangement produced by package isect: UNION, INTERSECTION, and
// DIFFERENCE classify every arrangement triangle by how the winding
// number vector (one integer per input shape) changes across it, and
// NONE passes the arrangement through unfiltered.
package boolean

import (
	"github.com/soypat/meshcsg/exact"
	"github.com/soypat/meshcsg/isect"
)

// Op selects the boolean operation Run performs, mirroring the
// BOOLEAN_NONE/BOOLEAN_ISECT/BOOLEAN_UNION/BOOLEAN_DIFFERENCE enum this
// layer was distilled from.
type Op int

const (
	DIFFERENCE Op = iota - 1
	NONE
	INTERSECTION
	UNION
)

func (o Op) String() string {
	switch o {
	case NONE:
		return "NONE"
	case UNION:
		return "UNION"
	case INTERSECTION:
		return "INTERSECTION"
	case DIFFERENCE:
		return "DIFFERENCE"
	default:
		return "Op(?)"
	}
}

// ShapeFn maps an input triangle's original id (isect.Triangle.Orig,
// preserved as isect.OutputTriangle.Orig through the arrangement) to a
// shape id in [0,nshapes), or -1 to exclude that face from every
// winding-number count (it still appears in the arrangement for NONE).
type ShapeFn func(origFace int) int

// Options carries boolean-layer knobs beyond the core op/shape_fn
// arguments.
type Options struct {
	// HoleTolerant relaxes the duplicate-coplanar cancellation pass under
	// DIFFERENCE (the only op for which that pass can fail): when false
	// (default), a coplanar pair that fails to resolve to a clean
	// same-orientation or opposite-orientation match is left as an open
	// question by erroring; when true, such a pair is passed through
	// unresolved rather than rejected, trading a possibly non-manifold
	// seam for never failing on messy/non-manifold input.
	HoleTolerant bool
}

// Run classifies every triangle of arrangement by its winding-number
// vector on either side and returns the subset op keeps, with duplicate
// coplanar triangles from overlapping input collapsed or cancelled per
// op. NONE returns arrangement unfiltered (after the same duplicate
// pass, since duplicates are a property of the input, not the op).
func Run(arrangement []isect.OutputTriangle, nshapes int, shapeFn ShapeFn, op Op, opts Options) ([]isect.OutputTriangle, error) {
	deduped, err := collapseDuplicates(arrangement, op, opts)
	if err != nil {
		return nil, err
	}
	if op == NONE {
		return deduped, nil
	}
	var out []isect.OutputTriangle
	for _, f := range deduped {
		wOut, wIn := faceWindingVectors(f, deduped, nshapes, shapeFn)
		if keepFace(op, wOut, wIn, shapeFn(f.Orig), nshapes) {
			out = append(out, f)
		}
	}
	return out, nil
}

func keepFace(op Op, wOut, wIn []int, shape, nshapes int) bool {
	switch op {
	case UNION:
		return sumAtLeast(wOut, 1) != sumAtLeast(wIn, 1)
	case INTERSECTION:
		return sumEquals(wOut, nshapes) != sumEquals(wIn, nshapes)
	case DIFFERENCE:
		return diffRegionB(wOut) != diffRegionB(wIn)
	default:
		return true
	}
}

func sumAtLeast(w []int, n int) bool {
	s := 0
	for _, v := range w {
		s += v
	}
	return s >= n
}

func sumEquals(w []int, n int) bool {
	s := 0
	for _, v := range w {
		s += v
	}
	return s == n
}

// diffRegionA is the DIFFERENCE "outside the result" pattern: the
// minuend (shape 0) absent, some subtrahend present.
func diffRegionA(w []int) bool {
	if len(w) == 0 || w[0] != 0 {
		return false
	}
	for _, v := range w[1:] {
		if v > 0 {
			return true
		}
	}
	return false
}

// diffRegionB is the DIFFERENCE "inside the result" pattern: the
// minuend present alone, every subtrahend absent.
func diffRegionB(w []int) bool {
	if len(w) == 0 || w[0] != 1 {
		return false
	}
	for _, v := range w[1:] {
		if v != 0 {
			return false
		}
	}
	return true
}

// faceWindingVectors returns the winding number vector for every shape
// just outside f (along its normal) and just inside it. Since crossing f
// changes only its own shape's winding number by exactly one (all other
// arrangement faces are on one side or the other of f, not coincident
// with it, once duplicates are resolved), wIn is wOut with f's own shape
// slot incremented rather than a second expensive ray cast.
func faceWindingVectors(f isect.OutputTriangle, tris []isect.OutputTriangle, nshapes int, shapeFn ShapeFn) (wOut, wIn []int) {
	n := rawNormal(f)
	if n.X.IsZero() && n.Y.IsZero() && n.Z.IsZero() {
		wOut = make([]int, nshapes)
		wIn = append([]int(nil), wOut...)
		return wOut, wIn
	}
	centroid := exact.Vec3{
		X: f.P.X.Add(f.Q.X).Add(f.R.X).Quo(exact.NewInt(3)),
		Y: f.P.Y.Add(f.Q.Y).Add(f.R.Y).Quo(exact.NewInt(3)),
		Z: f.P.Z.Add(f.Q.Z).Add(f.R.Z).Quo(exact.NewInt(3)),
	}
	eps := exact.NewFrac(1, 1<<20)
	pOut := centroid.Add(n.Scale(eps))
	wOut = windingNumber(pOut, tris, nshapes, shapeFn)
	shape := shapeFn(f.Orig)
	wIn = append([]int(nil), wOut...)
	if shape >= 0 && shape < nshapes {
		wIn[shape]++
	}
	return wOut, wIn
}
