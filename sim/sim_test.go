package sim

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

func testOptions() Options {
	o := DefaultOptions()
	o.LatticeSubdiv = 1
	return o
}

func TestNewBuildsLatticeAndSolver(t *testing.T) {
	V, F := cubeMesh()
	s, err := New(V, F, testOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(s.Positions()) == 0 {
		t.Fatal("want non-empty lattice positions")
	}
	fp := s.FacetPositions()
	if len(fp) != len(V) {
		t.Fatalf("want %d facet positions, got %d", len(V), len(fp))
	}
}

func TestNewRejectsIncompressiblePoisson(t *testing.T) {
	V, F := cubeMesh()
	o := testOptions()
	o.Poisson = 0.5
	if _, err := New(V, F, o); err == nil {
		t.Fatal("want error for poisson=0.5")
	}
}

func TestStepUnderGravityMovesLatticeDown(t *testing.T) {
	V, F := cubeMesh()
	o := testOptions()
	s, err := New(V, F, o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	z0 := avgZ(s.Positions())
	for i := 0; i < 5; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	z1 := avgZ(s.Positions())
	if z1 >= z0 {
		t.Errorf("want average height to decrease under gravity: z0=%g z1=%g", z0, z1)
	}
}

func TestStepWithFloorStopsDescent(t *testing.T) {
	V, F := cubeMesh()
	o := testOptions()
	o.Floor = true
	o.FloorZ = -0.05
	s, err := New(V, F, o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 30; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	for i, p := range s.Positions() {
		if p[2] < o.FloorZ-o.CollisionThickness-0.2 {
			t.Errorf("lattice vertex %d fell through floor: z=%g", i, p[2])
		}
	}
}

func TestRunAsyncCancel(t *testing.T) {
	V, F := cubeMesh()
	s, err := New(V, F, testOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	job := RunAsync(s, 0, nil)
	job.Cancel()
	if err := job.Wait(); err == nil {
		t.Fatal("want cancellation error")
	}
}

func TestRunAsyncFixedSteps(t *testing.T) {
	V, F := cubeMesh()
	s, err := New(V, F, testOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var n int
	job := RunAsync(s, 3, func(step int, err error) {
		if err != nil {
			t.Errorf("step %d: %v", step, err)
		}
		n++
	})
	if err := job.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if n != 3 {
		t.Errorf("want 3 onStep calls, got %d", n)
	}
}

func avgZ(X [][3]float64) float64 {
	var sum float64
	for _, p := range X {
		sum += p[2]
	}
	return sum / float64(len(X))
}
