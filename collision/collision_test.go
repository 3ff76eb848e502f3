package collision

import (
	"testing"

	"github.com/soypat/meshcsg/bvh"
	"github.com/soypat/meshcsg/embed"
)

func TestFloorTest(t *testing.T) {
	X := [][3]float64{{0, 0, 0.5}, {0, 0, -0.1}, {0, 0, 5}}
	rows := FloorTest(X, 0, 0.2, 1)
	if len(rows) != 1 {
		t.Fatalf("want 1 floor contact, got %d", len(rows))
	}
	if rows[0].Cols[0] != 1 {
		t.Errorf("want contact on vertex 1, got %d", rows[0].Cols[0])
	}
}

func sphereSDF(center [3]float64, r float64) SDF3 {
	return func(p [3]float64) float64 {
		return distance(p, center) - r
	}
}

func TestObstacleGridSphere(t *testing.T) {
	center := [3]float64{0, 0, 0}
	grid := BuildObstacleGrid(sphereSDF(center, 1), [3]float64{-2, -2, -2}, [3]float64{2, 2, 2})
	dCenter, _ := grid.Eval(center)
	if dCenter >= 0 {
		t.Errorf("want negative distance at sphere centre, got %g", dCenter)
	}
	dFar, _ := grid.Eval([3]float64{1.9, 0, 0})
	if dFar <= 0 {
		t.Errorf("want positive distance well outside sphere, got %g", dFar)
	}
}

func TestObstacleTest(t *testing.T) {
	grid := BuildObstacleGrid(sphereSDF([3]float64{0, 0, 0}, 1), [3]float64{-2, -2, -2}, [3]float64{2, 2, 2})
	X := [][3]float64{{0.05, 0, 0}, {1.9, 0, 0}}
	rows := ObstacleTest(X, grid, 0.1, 1)
	if len(rows) != 1 {
		t.Fatalf("want 1 obstacle contact, got %d", len(rows))
	}
	if rows[0].Cols[0] != 0 {
		t.Errorf("want contact on vertex 0, got %d", rows[0].Cols[0])
	}
}

func TestParallelStripeCoversEveryIndex(t *testing.T) {
	n := 37
	seen := make([]bool, n)
	ParallelStripe(n, 4, func(i int) { seen[i] = true })
	for i, ok := range seen {
		if !ok {
			t.Errorf("index %d never visited", i)
		}
	}
}

func TestConstraintGraphClique(t *testing.T) {
	g := NewGraph()
	g.AddClique([]int{1, 2, 3})
	if !g.Neighbors(1)[2] || !g.Neighbors(1)[3] {
		t.Error("want vertex 1 adjacent to 2 and 3")
	}
	if !g.Neighbors(3)[1] || !g.Neighbors(3)[2] {
		t.Error("want vertex 3 adjacent to 1 and 2")
	}
}

func cubeMesh() ([][3]float64, [][3]int) {
	V := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	F := [][3]int{
		{0, 1, 2}, {0, 2, 3},
		{4, 6, 5}, {4, 7, 6},
		{0, 4, 5}, {0, 5, 1},
		{1, 5, 6}, {1, 6, 2},
		{2, 6, 7}, {2, 7, 3},
		{3, 7, 4}, {3, 4, 0},
	}
	return V, F
}

func TestSelfCollisionTestNoFalsePositiveAtRest(t *testing.T) {
	V, F := cubeMesh()
	em, err := embed.Build(V, F, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	tetBoxes := make([]bvh.Box, len(em.LatticeT))
	for i, tet := range em.LatticeT {
		b := bvh.EmptyBox()
		for _, v := range tet {
			b = b.Extend(em.LatticeX[v])
		}
		tetBoxes[i] = b
	}
	tetTree := bvh.Init(tetBoxes)
	faceBoxes := make([]bvh.Box, len(F))
	for i, f := range F {
		b := bvh.EmptyBox()
		for _, v := range f {
			b = b.Extend(V[v])
		}
		faceBoxes[i] = b
	}
	faceTree := bvh.Init(faceBoxes)
	adj := FaceAdjacency(F, len(V))
	rows := SelfCollisionTest(em, em.LatticeX, tetTree, faceTree, adj, 0.01, 1)
	if len(rows) != 0 {
		t.Errorf("want no self-collision contacts at rest, got %d", len(rows))
	}
}
