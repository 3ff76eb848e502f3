package bvh

import "testing"

func box(minX, minY, minZ, maxX, maxY, maxZ float64) Box {
	return Box{Min: [3]float64{minX, minY, minZ}, Max: [3]float64{maxX, maxY, maxZ}}
}

func TestInitAndTraverseAllLeaves(t *testing.T) {
	boxes := []Box{
		box(0, 0, 0, 1, 1, 1),
		box(5, 5, 5, 6, 6, 6),
		box(10, 0, 0, 11, 1, 1),
	}
	tree := Init(boxes)
	var visited []int
	tree.Traverse(&collectAll{out: &visited})
	if len(visited) != 3 {
		t.Fatalf("want 3 leaves visited, got %d: %v", len(visited), visited)
	}
}

type collectAll struct{ out *[]int }

func (c *collectAll) Overlap(Box) bool { return true }
func (c *collectAll) Leaf(i int)       { *c.out = append(*c.out, i) }

func TestPointInTet(t *testing.T) {
	v0 := [3]float64{0, 0, 0}
	v1 := [3]float64{1, 0, 0}
	v2 := [3]float64{0, 1, 0}
	v3 := [3]float64{0, 0, 1}
	inside := [3]float64{0.1, 0.1, 0.1}
	outside := [3]float64{2, 2, 2}
	if !PointInTet(inside, v0, v1, v2, v3) {
		t.Error("want inside point classified inside tet")
	}
	if PointInTet(outside, v0, v1, v2, v3) {
		t.Error("want outside point classified outside tet")
	}
}

func TestPointInTetMeshTraverse(t *testing.T) {
	X := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	T := [][4]int{{0, 1, 2, 3}}
	boxes := []Box{{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 1}}}
	tree := Init(boxes)
	got := PointInTetMeshTraverse(tree, [3]float64{0.1, 0.1, 0.1}, X, T, nil, nil)
	if got != 0 {
		t.Errorf("want tet 0, got %d", got)
	}
	got = PointInTetMeshTraverse(tree, [3]float64{5, 5, 5}, X, T, nil, nil)
	if got != -1 {
		t.Errorf("want no containing tet, got %d", got)
	}
}

func TestNearestTriangleTraverse(t *testing.T) {
	V := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	F := [][3]int{{0, 1, 2}}
	boxes := []Box{{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 0}}}
	tree := Init(boxes)
	idx, pt := NearestTriangleTraverse(tree, [3]float64{0.1, 0.1, 5}, V, F, nil)
	if idx != 0 {
		t.Fatalf("want triangle 0, got %d", idx)
	}
	if pt[2] != 0 {
		t.Errorf("want projected point on the z=0 plane, got %v", pt)
	}
}

func TestPointInTriangleMeshTraverseCube(t *testing.T) {
	// An axis-aligned unit cube, 12 triangles, outward-facing winding not
	// required by the ray parity test.
	V := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	F := [][3]int{
		{0, 1, 2}, {0, 2, 3}, // bottom
		{4, 6, 5}, {4, 7, 6}, // top
		{0, 4, 5}, {0, 5, 1}, // front
		{1, 5, 6}, {1, 6, 2}, // right
		{2, 6, 7}, {2, 7, 3}, // back
		{3, 7, 4}, {3, 4, 0}, // left
	}
	var boxes []Box
	for _, f := range F {
		b := EmptyBox()
		for _, vi := range f {
			b = b.Extend(V[vi])
		}
		boxes = append(boxes, b)
	}
	tree := Init(boxes)
	if !PointInTriangleMeshTraverse(tree, [3]float64{0.5, 0.5, 0.5}, V, F) {
		t.Error("want cube centre classified inside")
	}
	if PointInTriangleMeshTraverse(tree, [3]float64{5, 5, 5}, V, F) {
		t.Error("want far point classified outside")
	}
}
