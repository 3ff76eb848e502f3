package arena

import (
	"testing"

	"github.com/soypat/meshcsg/exact"
)

func v(x, y, z int64) exact.Vec3 {
	return exact.Vec3{X: exact.NewInt(x), Y: exact.NewInt(y), Z: exact.NewInt(z)}
}

func TestAddOrFindVertDedup(t *testing.T) {
	a := New()
	id1 := a.AddOrFindVert(v(0, 0, 0), 0)
	id2 := a.AddOrFindVert(v(1, 0, 0), 1)
	id3 := a.AddOrFindVert(v(0, 0, 0), 2) // duplicate coordinate, different orig
	if id1 != id3 {
		t.Fatalf("expected duplicate coordinate to return same handle: %d vs %d", id1, id3)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct coordinates to get distinct handles")
	}
	if a.NumVerts() != 2 {
		t.Fatalf("expected 2 distinct vertices, got %d", a.NumVerts())
	}
	// orig argument is ignored on a dedup hit: the surviving vertex keeps
	// its original orig.
	if a.Vert(id1).Orig != 0 {
		t.Fatalf("expected surviving vertex to keep its original orig, got %d", a.Vert(id1).Orig)
	}
}

func TestAddFacePanicsOnDegenerate(t *testing.T) {
	a := New()
	v0 := a.AddOrFindVert(v(0, 0, 0), 0)
	v1 := a.AddOrFindVert(v(1, 0, 0), 1)
	v2 := a.AddOrFindVert(v(2, 0, 0), 2) // collinear with v0,v1
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on collinear face")
		}
	}()
	a.AddFace([]VertexID{v0, v1, v2}, NoOrig, nil, nil)
}

func TestMeshTrianglesAndLookup(t *testing.T) {
	a := New()
	v0 := a.AddOrFindVert(v(0, 0, 0), 0)
	v1 := a.AddOrFindVert(v(1, 0, 0), 1)
	v2 := a.AddOrFindVert(v(0, 1, 0), 2)
	f := a.AddFace([]VertexID{v0, v1, v2}, 7, nil, nil)

	m := NewMesh(a, []FaceID{f})
	tris := m.Triangles()
	if len(tris) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(tris))
	}
	if tris[0].Orig != 7 {
		t.Fatalf("expected orig 7, got %d", tris[0].Orig)
	}
	idx, ok := m.LookupVert(v1)
	if !ok || idx != 1 {
		t.Fatalf("expected v1 at dense index 1, got %d ok=%v", idx, ok)
	}
	if _, ok := m.LookupVert(VertexID(999)); ok {
		t.Fatal("expected lookup of unreachable vertex to fail")
	}
}

func TestEraseFacePositions(t *testing.T) {
	a := New()
	v0 := a.AddOrFindVert(v(0, 0, 0), 0)
	v1 := a.AddOrFindVert(v(4, 0, 0), 1)
	v2 := a.AddOrFindVert(v(4, 4, 0), 2)
	v3 := a.AddOrFindVert(v(0, 4, 0), 3)
	f := a.AddFace([]VertexID{v0, v1, v2, v3}, NoOrig, nil, nil)
	m := NewMesh(a, []FaceID{f})
	newF := m.EraseFacePositions(f, []bool{false, true, false, false})
	newFace := a.Face(newF)
	if len(newFace.Verts) != 3 {
		t.Fatalf("expected 3 verts after erase, got %d", len(newFace.Verts))
	}
	if newFace.Verts[0] != v0 || newFace.Verts[1] != v2 || newFace.Verts[2] != v3 {
		t.Fatalf("unexpected verts after erase: %v", newFace.Verts)
	}
}
