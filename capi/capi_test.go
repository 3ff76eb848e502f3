package capi

import "testing"

// cube returns the 12-triangle, 8-vertex flat TriMesh of an axis-aligned
// cube [min,max], outward-CCW winding.
func cube(min, max [3]float64) *TriMesh {
	v := [8][3]float64{
		{min[0], min[1], min[2]}, {max[0], min[1], min[2]},
		{max[0], max[1], min[2]}, {min[0], max[1], min[2]},
		{min[0], min[1], max[2]}, {max[0], min[1], max[2]},
		{max[0], max[1], max[2]}, {min[0], max[1], max[2]},
	}
	tris := [][3]int{
		{0, 2, 1}, {0, 3, 2},
		{4, 5, 6}, {4, 6, 7},
		{0, 5, 4}, {0, 1, 5},
		{1, 6, 5}, {1, 2, 6},
		{2, 7, 6}, {2, 3, 7},
		{3, 4, 7}, {3, 0, 4},
	}
	return &TriMesh{NVerts: 8, NTris: 12, Verts: v[:], Tris: tris}
}

func TestTrimeshSelfIntersectPassesThroughASimpleCube(t *testing.T) {
	out, err := TrimeshSelfIntersect(cube([3]float64{0, 0, 0}, [3]float64{1, 1, 1}))
	if err != nil {
		t.Fatalf("TrimeshSelfIntersect: %v", err)
	}
	if out.NTris == 0 || out.NVerts == 0 {
		t.Fatal("want a non-empty output mesh")
	}
}

func TestTrimeshSelfIntersectRejectsMismatchedCounts(t *testing.T) {
	m := cube([3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	m.NTris = 99
	_, err := TrimeshSelfIntersect(m)
	if err == nil {
		t.Fatal("want an error for mismatched NTris")
	}
	if err.Kind != InvalidInput {
		t.Fatalf("want InvalidInput, got %v", err.Kind)
	}
}

// TestBLIBooleanTrimeshEmptyMeshReturnsEmptyNotError mirrors
// BLI_boolean_test.cc's "Empty" case: a default-empty mesh flows through
// to a zero-vertex, zero-triangle result, not a validation error.
func TestBLIBooleanTrimeshEmptyMeshReturnsEmptyNotError(t *testing.T) {
	empty := &BooleanTrimeshInput{}
	out, err := BLIBooleanTrimesh(empty, nil, BLIBooleanNone)
	if err != nil {
		t.Fatalf("want no error for an empty mesh, got %v", err)
	}
	if out.N != 0 || out.M != 0 {
		t.Fatalf("want vert_len=0, tri_len=0, got N=%d M=%d", out.N, out.M)
	}
}

// TestTrimeshSelfIntersectSkipsDegenerateTriangle verifies a degenerate
// (zero-area) input triangle is dropped rather than failing the whole
// mesh: the remaining two valid triangles of a unit square still produce
// output.
func TestTrimeshSelfIntersectSkipsDegenerateTriangle(t *testing.T) {
	m := &TriMesh{
		NVerts: 4,
		NTris:  3,
		Verts: [][3]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
		Tris: [][3]int{
			{0, 1, 2}, {0, 2, 3},
			{0, 0, 1}, // degenerate: repeated vertex 0
		},
	}
	out, err := TrimeshSelfIntersect(m)
	if err != nil {
		t.Fatalf("TrimeshSelfIntersect: %v", err)
	}
	if out.NTris == 0 {
		t.Fatal("want the two valid triangles to still produce output")
	}
}

func TestBooleanMeshUnionOfTwoOverlappingCubes(t *testing.T) {
	a := cube([3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	b := cube([3]float64{0.5, 0.5, 0.5}, [3]float64{1.5, 1.5, 1.5})
	out, err := BLIBooleanTrimesh(
		&BooleanTrimeshInput{N: a.NVerts, M: a.NTris, Verts: a.Verts, Tris: a.Tris},
		&BooleanTrimeshInput{N: b.NVerts, M: b.NTris, Verts: b.Verts, Tris: b.Tris},
		BLIBooleanUnion,
	)
	if err != nil {
		t.Fatalf("BLIBooleanTrimesh UNION: %v", err)
	}
	if out.M == 0 {
		t.Fatal("want a non-empty union result")
	}
	for _, v := range out.Verts {
		if v[0] < -1e-9 || v[1] < -1e-9 || v[2] < -1e-9 || v[0] > 1.5+1e-9 || v[1] > 1.5+1e-9 || v[2] > 1.5+1e-9 {
			t.Errorf("union vertex %v outside the two cubes' combined bounds", v)
		}
	}
}

func TestBLIBooleanTrimeshSelfBooleanWithNilIn1(t *testing.T) {
	a := cube([3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	out, err := BLIBooleanTrimesh(
		&BooleanTrimeshInput{N: a.NVerts, M: a.NTris, Verts: a.Verts, Tris: a.Tris},
		nil,
		BLIBooleanIntersect,
	)
	if err != nil {
		t.Fatalf("BLIBooleanTrimesh self ISECT: %v", err)
	}
	if out.M == 0 {
		t.Fatal("want a non-empty self-intersect result")
	}
}

func TestDelaunayCDTCalcTriangulatesASquare(t *testing.T) {
	in := &CDTInput{
		Vertex:          [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		FacesFlat:       []int{0, 1, 2, 3},
		FacesStartTable: []int{0},
		FacesLenTable:   []int{4},
	}
	out, err := DelaunayCDTCalc(in, CDTInside)
	if err != nil {
		t.Fatalf("DelaunayCDTCalc: %v", err)
	}
	if len(out.FacesStartTable) == 0 {
		t.Fatal("want at least one output triangle face")
	}
	if out.FaceEdgeOffset != 0 {
		t.Fatalf("want FaceEdgeOffset 0 (no free-standing input edges), got %d", out.FaceEdgeOffset)
	}
}
