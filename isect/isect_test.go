package isect

import (
	"testing"

	"github.com/soypat/meshcsg/exact"
)

func v3(x, y, z float64) exact.Vec3 {
	return exact.Vec3{X: exact.NewFloat64(x), Y: exact.NewFloat64(y), Z: exact.NewFloat64(z)}
}

func mustTri(p, q, r exact.Vec3, orig int) Triangle {
	pl, ok := exact.NewPlane(p, q, r)
	if !ok {
		panic("degenerate triangle in test")
	}
	return Triangle{P: p, Q: q, R: r, Plane: pl, Orig: orig}
}

func TestIntersectNone(t *testing.T) {
	a := mustTri(v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0), 0)
	b := mustTri(v3(0, 0, 5), v3(1, 0, 5), v3(0, 1, 5), 1)
	got := Intersect(a, b)
	if got.Kind != None {
		t.Fatalf("want None, got %v", got.Kind)
	}
}

func TestIntersectCoplanar(t *testing.T) {
	a := mustTri(v3(0, 0, 0), v3(2, 0, 0), v3(0, 2, 0), 0)
	b := mustTri(v3(1, 0, 0), v3(3, 0, 0), v3(1, 2, 0), 1)
	got := Intersect(a, b)
	if got.Kind != Coplanar {
		t.Fatalf("want Coplanar, got %v", got.Kind)
	}
}

func TestIntersectSegment(t *testing.T) {
	// Two triangles piercing each other through the XY plane at z=0 and
	// the XZ plane at y=0, meeting along a segment of the x-axis.
	a := mustTri(v3(-1, -1, 0), v3(2, -1, 0), v3(-1, 2, 0), 0)
	b := mustTri(v3(-1, 0, -1), v3(2, 0, -1), v3(-1, 0, 2), 1)
	got := Intersect(a, b)
	if got.Kind != Segment {
		t.Fatalf("want Segment, got %v", got.Kind)
	}
	if got.A.Y.Sign() != 0 || got.A.Z.Sign() != 0 {
		t.Errorf("intersection point %v not on x-axis", got.A)
	}
}

func TestNonTrivialIntersectSharedEdgeOnly(t *testing.T) {
	a := mustTri(v3(0, 0, 0), v3(1, 0, 0), v3(0, 1, 0), 0)
	b := mustTri(v3(1, 0, 0), v3(0, 0, 0), v3(1, -1, 0), 1)
	if NonTrivialIntersect(a, b) {
		t.Error("triangles sharing only an edge should not be a non-trivial intersection")
	}
}

func TestNonTrivialIntersectOverlap(t *testing.T) {
	a := mustTri(v3(0, 0, 0), v3(2, 0, 0), v3(0, 2, 0), 0)
	b := mustTri(v3(1, 0, 0), v3(3, 0, 0), v3(1, 2, 0), 1)
	if !NonTrivialIntersect(a, b) {
		t.Error("overlapping coplanar triangles should be non-trivial")
	}
}

func TestBuildClustersGroupsOverlappingCoplanarTriangles(t *testing.T) {
	tris := []Triangle{
		mustTri(v3(0, 0, 0), v3(2, 0, 0), v3(0, 2, 0), 0),
		mustTri(v3(1, 0, 0), v3(3, 0, 0), v3(1, 2, 0), 1),
		mustTri(v3(0, 0, 5), v3(1, 0, 5), v3(0, 1, 5), 2), // unrelated plane
	}
	clusters := BuildClusters(tris)
	if len(clusters) != 1 {
		t.Fatalf("want 1 cluster, got %d", len(clusters))
	}
	if len(clusters[0].Members) != 2 {
		t.Errorf("want 2 members, got %d", len(clusters[0].Members))
	}
}

func TestSelfIntersectCrossingTriangles(t *testing.T) {
	a := mustTri(v3(-1, -1, 0), v3(2, -1, 0), v3(-1, 2, 0), 0)
	b := mustTri(v3(-1, 0, -1), v3(2, 0, -1), v3(-1, 0, 2), 1)
	out, err := SelfIntersect([]Triangle{a, b})
	if err != nil {
		t.Fatalf("SelfIntersect: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("want at least one output triangle")
	}
	var sawOrig0, sawOrig1 bool
	for _, o := range out {
		if o.Orig == 0 {
			sawOrig0 = true
		}
		if o.Orig == 1 {
			sawOrig1 = true
		}
	}
	if !sawOrig0 || !sawOrig1 {
		t.Errorf("want output triangles from both inputs, got origs from out=%v", out)
	}
}
