package solver

import "testing"

func unitTet() ([][3]float64, [][4]int) {
	x0 := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	tets := [][4]int{{0, 1, 2, 3}}
	return x0, tets
}

func TestNewRejectsEmptyMesh(t *testing.T) {
	if _, err := New(nil, nil, nil, 1.0/24, 1e4); err != ErrEmptyMesh {
		t.Fatalf("want ErrEmptyMesh, got %v", err)
	}
}

func TestNewRejectsDegenerateRestTet(t *testing.T) {
	x0 := [][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}} // collinear, zero volume
	tets := [][4]int{{0, 1, 2, 3}}
	mass := []float64{1, 1, 1, 1}
	if _, err := New(x0, tets, mass, 1.0/24, 1e4); err != ErrInvertedRestTet {
		t.Fatalf("want ErrInvertedRestTet, got %v", err)
	}
}

func TestStepFreeFallMovesDown(t *testing.T) {
	x0, tets := unitTet()
	mass := []float64{1, 1, 1, 1}
	s, err := New(x0, tets, mass, 1.0/24, 1e4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	z0 := s.X[0][2]
	for i := 0; i < 5; i++ {
		if err := s.Step(nil, nil); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if s.X[0][2] >= z0 {
		t.Errorf("want vertex 0 to have fallen under gravity, z went from %g to %g", z0, s.X[0][2])
	}
}

func TestStepWithPinHoldsPinnedVertex(t *testing.T) {
	x0, tets := unitTet()
	mass := []float64{1, 1, 1, 1}
	s, err := New(x0, tets, mass, 1.0/24, 1e4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pin := PinRow{
		Cols:      [4]int{0, -1, -1, -1},
		Weights:   [4]float64{1, 0, 0, 0},
		Axis:      2,
		Target:    0,
		Stiffness: 1e6,
	}
	for i := 0; i < 10; i++ {
		if err := s.Step([]PinRow{pin}, nil); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if diff := s.X[0][2]; diff > 0.05 || diff < -0.05 {
		t.Errorf("want pinned vertex 0 to stay near z=0, got %g", diff)
	}
}

func TestNeoHookeanProxNoOpOnRestShapeatIdentity(t *testing.T) {
	z := identity3()
	out := neoHookeanProx(z, 1, 1e4, 1)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			want := 0.0
			if a == b {
				want = 1
			}
			if diff := out[a][b] - want; diff > 1e-3 || diff < -1e-3 {
				t.Errorf("out[%d][%d]=%g, want %g", a, b, out[a][b], want)
			}
		}
	}
}

func TestSignedSVD3ReconstructsInput(t *testing.T) {
	z := [3][3]float64{{2, 0.1, 0}, {0, 1.5, 0}, {0.2, 0, 0.8}}
	u, vt, sigma := signedSVD3(z)
	got := mul3(mul3(u, diag3(sigma)), vt)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			if diff := got[a][b] - z[a][b]; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("reconstruction[%d][%d]=%g, want %g", a, b, got[a][b], z[a][b])
			}
		}
	}
}
