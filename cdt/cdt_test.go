package cdt

import (
	"testing"

	"github.com/soypat/meshcsg/exact"
)

func v2(x, y float64) exact.Vec2 {
	return exact.Vec2{X: exact.NewFloat64(x), Y: exact.NewFloat64(y)}
}

// TestUnitSquareOneDiagonal follows the canonical CDT scenario: a unit
// square split by one diagonal edge, eps=0 (exact comparison), in INSIDE
// mode. The triangulation must keep exactly the two triangles either side
// of the diagonal and every boundary/diagonal edge once.
func TestUnitSquareOneDiagonal(t *testing.T) {
	input := Input{
		Verts: []exact.Vec2{
			v2(0, 0), v2(1, 0), v2(1, 1), v2(0, 1),
		},
		Edges: [][2]int{{0, 2}},
		Faces: [][]int{{0, 1, 2, 3}},
	}
	out, err := Triangulate(input, INSIDE)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(out.Verts) != 4 {
		t.Errorf("want 4 verts, got %d", len(out.Verts))
	}
	if len(out.Edges) != 5 {
		t.Errorf("want 5 edges, got %d: %v", len(out.Edges), out.Edges)
	}
	if len(out.Faces) != 2 {
		t.Errorf("want 2 faces, got %d: %v", len(out.Faces), out.Faces)
	}
	if out.FaceEdgeOffset != 1 {
		t.Errorf("want FaceEdgeOffset 1, got %d", out.FaceEdgeOffset)
	}
}

func TestUnitSquareFullMode(t *testing.T) {
	input := Input{
		Verts: []exact.Vec2{v2(0, 0), v2(1, 0), v2(1, 1), v2(0, 1)},
		Faces: [][]int{{0, 1, 2, 3}},
	}
	out, err := Triangulate(input, FULL)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(out.Faces) != 2 {
		t.Errorf("want 2 faces, got %d", len(out.Faces))
	}
}

func TestDuplicateVertexMerging(t *testing.T) {
	input := Input{
		Verts: []exact.Vec2{
			v2(0, 0), v2(1, 0), v2(1, 1), v2(0, 1),
			v2(0, 0.0000000001), // near-duplicate of v0 within default eps
		},
		Faces: [][]int{{0, 1, 2, 3}},
	}
	out, err := Triangulate(input, FULL)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(out.Verts) != 4 {
		t.Fatalf("want 4 verts after merge, got %d", len(out.Verts))
	}
	foundMerged := false
	for _, ids := range out.VertsOrig {
		if len(ids) == 2 {
			foundMerged = true
		}
	}
	if !foundMerged {
		t.Errorf("want one output vertex to carry 2 input ids (the merged pair), got %v", out.VertsOrig)
	}
}

func TestConstrainedLShape(t *testing.T) {
	// An L-shaped polygon (concave): CDT(INSIDE) must exclude the
	// reflex-corner notch from the output triangles.
	input := Input{
		Verts: []exact.Vec2{
			v2(0, 0), v2(2, 0), v2(2, 1), v2(1, 1), v2(1, 2), v2(0, 2),
		},
		Faces: [][]int{{0, 1, 2, 3, 4, 5}},
	}
	out, err := Triangulate(input, INSIDE)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(out.Faces) != 4 {
		t.Errorf("want 4 triangles for an L-shape (area 3 unit squares), got %d", len(out.Faces))
	}
	for _, f := range out.Faces {
		for _, vi := range f {
			p := out.Verts[vi]
			x, y := p.X.Float64(), p.Y.Float64()
			if x > 1.0001 && y > 1.0001 {
				t.Errorf("face vertex (%v,%v) falls inside the notch excised from the L-shape", x, y)
			}
		}
	}
}

func TestTooFewVerticesIsStructurallyEmptyNotAnError(t *testing.T) {
	out, err := Triangulate(Input{Verts: []exact.Vec2{v2(0, 0), v2(1, 0)}}, FULL)
	if err != nil {
		t.Fatalf("want no error for <3 vertices, got %v", err)
	}
	if out == nil || len(out.Faces) != 0 {
		t.Fatalf("want a non-nil, zero-face output, got %+v", out)
	}
}

func TestCollinearPointsIsStructurallyEmptyNotAnError(t *testing.T) {
	out, err := Triangulate(Input{Verts: []exact.Vec2{v2(0, 0), v2(1, 0), v2(2, 0)}}, FULL)
	if err != nil {
		t.Fatalf("want no error for a collinear point set, got %v", err)
	}
	if out == nil || len(out.Faces) != 0 {
		t.Fatalf("want a non-nil, zero-face output, got %+v", out)
	}
}

func TestConstraintsModeMergesTriangles(t *testing.T) {
	input := Input{
		Verts: []exact.Vec2{v2(0, 0), v2(1, 0), v2(1, 1), v2(0, 1)},
		Faces: [][]int{{0, 1, 2, 3}},
	}
	out, err := Triangulate(input, CONSTRAINTS)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(out.Faces) != 1 {
		t.Errorf("want the two triangles merged back into 1 quad face, got %d faces", len(out.Faces))
	}
	if len(out.Faces) == 1 && len(out.Faces[0]) != 4 {
		t.Errorf("want a 4-vertex boundary loop, got %d", len(out.Faces[0]))
	}
}
