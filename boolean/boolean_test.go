package boolean

import (
	"testing"

	"github.com/soypat/meshcsg/exact"
	"github.com/soypat/meshcsg/isect"
)

func v3(x, y, z float64) exact.Vec3 {
	return exact.Vec3{X: exact.NewFloat64(x), Y: exact.NewFloat64(y), Z: exact.NewFloat64(z)}
}

// cubeTris returns the 12 outward-CCW triangles of an axis-aligned cube
// [min,max], with Orig numbered origBase..origBase+11.
func cubeTris(min, max [3]float64, origBase int) []isect.Triangle {
	v := [8]exact.Vec3{
		v3(min[0], min[1], min[2]), v3(max[0], min[1], min[2]),
		v3(max[0], max[1], min[2]), v3(min[0], max[1], min[2]),
		v3(min[0], min[1], max[2]), v3(max[0], min[1], max[2]),
		v3(max[0], max[1], max[2]), v3(min[0], max[1], max[2]),
	}
	idx := [12][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom (-z), CCW viewed from below
		{4, 5, 6}, {4, 6, 7}, // top (+z)
		{0, 5, 4}, {0, 1, 5}, // front (-y)
		{1, 6, 5}, {1, 2, 6}, // right (+x)
		{2, 7, 6}, {2, 3, 7}, // back (+y)
		{3, 4, 7}, {3, 0, 4}, // left (-x)
	}
	out := make([]isect.Triangle, 12)
	for i, tri := range idx {
		p, q, r := v[tri[0]], v[tri[1]], v[tri[2]]
		pl, ok := exact.NewPlane(p, q, r)
		if !ok {
			panic("degenerate cube face in test")
		}
		out[i] = isect.Triangle{P: p, Q: q, R: r, Plane: pl, Orig: origBase + i}
	}
	return out
}

// twoOverlappingCubes returns an arrangement of a unit cube [0,1]^3
// (shape 0, orig 0..11) overlapping a shifted unit cube [0.5,1.5]^3
// (shape 1, orig 12..23), plus a shapeFn mapping orig < 12 to shape 0 and
// the rest to shape 1.
func twoOverlappingCubes(t *testing.T) ([]isect.OutputTriangle, ShapeFn) {
	t.Helper()
	a := cubeTris([3]float64{0, 0, 0}, [3]float64{1, 1, 1}, 0)
	b := cubeTris([3]float64{0.5, 0.5, 0.5}, [3]float64{1.5, 1.5, 1.5}, 12)
	arr, err := isect.SelfIntersect(append(append([]isect.Triangle(nil), a...), b...))
	if err != nil {
		t.Fatalf("SelfIntersect: %v", err)
	}
	shapeFn := func(orig int) int {
		if orig < 12 {
			return 0
		}
		return 1
	}
	return arr, shapeFn
}

func TestRunNonePassesArrangementThrough(t *testing.T) {
	arr, shapeFn := twoOverlappingCubes(t)
	out, err := Run(arr, 2, shapeFn, NONE, Options{})
	if err != nil {
		t.Fatalf("Run NONE: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("want non-empty passthrough arrangement")
	}
}

func TestRunUnionKeepsOuterBoundaryOnly(t *testing.T) {
	arr, shapeFn := twoOverlappingCubes(t)
	out, err := Run(arr, 2, shapeFn, UNION, Options{})
	if err != nil {
		t.Fatalf("Run UNION: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("want a non-empty union result")
	}
	verts, _ := ToMesh(out)
	for _, v := range verts {
		x, y, z := v.Float64()
		if x < -1e-9 || y < -1e-9 || z < -1e-9 || x > 1.5+1e-9 || y > 1.5+1e-9 || z > 1.5+1e-9 {
			t.Errorf("union vertex %v outside the two cubes' combined bounds", v)
		}
	}
}

func TestRunIntersectionKeepsOverlapOnly(t *testing.T) {
	arr, shapeFn := twoOverlappingCubes(t)
	out, err := Run(arr, 2, shapeFn, INTERSECTION, Options{})
	if err != nil {
		t.Fatalf("Run INTERSECTION: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("want a non-empty intersection result")
	}
	verts, _ := ToMesh(out)
	for _, v := range verts {
		x, y, z := v.Float64()
		if x < 0.5-1e-9 || y < 0.5-1e-9 || z < 0.5-1e-9 || x > 1+1e-9 || y > 1+1e-9 || z > 1+1e-9 {
			t.Errorf("intersection vertex %v outside the overlap region [0.5,1]^3", v)
		}
	}
}

func TestRunDifferenceExcludesSubtrahendInterior(t *testing.T) {
	arr, shapeFn := twoOverlappingCubes(t)
	out, err := Run(arr, 2, shapeFn, DIFFERENCE, Options{})
	if err != nil {
		t.Fatalf("Run DIFFERENCE: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("want a non-empty difference result")
	}
}

func TestRunUnionSingleShapeKeepsOwnBoundary(t *testing.T) {
	arr, _ := twoOverlappingCubes(t)
	alwaysShapeZero := func(int) int { return 0 }
	// A single shape: UNION/INTERSECTION with nshapes=1 both degenerate to
	// "boundary of shape 0", since Sigma>=1 and Sigma==1 coincide here.
	out, err := Run(arr, 1, alwaysShapeZero, UNION, Options{})
	if err != nil {
		t.Fatalf("Run UNION nshapes=1: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("want non-empty result filtering a single shape's own arrangement")
	}
}

func TestToMeshDeduplicatesVertices(t *testing.T) {
	p, q, r := v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0)
	tris := []isect.OutputTriangle{
		{P: p, Q: q, R: r, Orig: 0},
		{P: p, Q: r, R: q, Orig: 1},
	}
	verts, faces := ToMesh(tris)
	if len(verts) != 3 {
		t.Fatalf("want 3 distinct vertices, got %d", len(verts))
	}
	if len(faces) != 2 {
		t.Fatalf("want 2 faces, got %d", len(faces))
	}
}
