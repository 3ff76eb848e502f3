package embed

import "testing"

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

func TestBuildLatticeAroundCube(t *testing.T) {
	V, F := cubeMesh()
	em, err := Build(V, F, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(em.LatticeT) == 0 {
		t.Fatal("want a non-empty lattice")
	}
	if len(em.Tet) != len(V) {
		t.Fatalf("want %d embeddings, got %d", len(V), len(em.Tet))
	}
	for i := range V {
		if em.Tet[i] < 0 {
			t.Errorf("facet vertex %d failed to embed", i)
		}
		var sum float64
		for _, b := range em.Bary[i] {
			sum += b
		}
		if sum < 1-1e-6 || sum > 1+1e-6 {
			t.Errorf("facet vertex %d barycentrics sum to %g, want 1", i, sum)
		}
	}
}

func TestFacetPositionReproducesRestPose(t *testing.T) {
	V, F := cubeMesh()
	em, err := Build(V, F, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, want := range V {
		got := em.FacetPosition(i, em.LatticeX)
		for a := 0; a < 3; a++ {
			if diff := got[a] - want[a]; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("facet vertex %d axis %d: got %g want %g", i, a, got[a], want[a])
			}
		}
	}
}

func TestComputeMasses(t *testing.T) {
	V, F := cubeMesh()
	em, err := Build(V, F, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	em.ComputeMasses(1000)
	if len(em.Mass) != len(em.LatticeX) {
		t.Fatalf("want %d masses, got %d", len(em.LatticeX), len(em.Mass))
	}
	var total float64
	for _, m := range em.Mass {
		if m < 0 {
			t.Errorf("negative mass %g", m)
		}
		total += m
	}
	if total <= 0 {
		t.Error("want positive total mass")
	}
}

func TestLinearizePins(t *testing.T) {
	V, F := cubeMesh()
	em, err := Build(V, F, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	em.SetPin(0, [3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	rows := em.LinearizePins()
	if len(rows) != 1 {
		t.Fatalf("want 1 pin row, got %d", len(rows))
	}
	if rows[0].FacetVert != 0 {
		t.Errorf("want pin row for facet vertex 0, got %d", rows[0].FacetVert)
	}
	em.ClearPins()
	if len(em.LinearizePins()) != 0 {
		t.Error("want no pin rows after ClearPins")
	}
}
