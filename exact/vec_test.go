package exact

import "testing"

func TestOrient2D(t *testing.T) {
	a := Vec2{NewInt(0), NewInt(0)}
	b := Vec2{NewInt(1), NewInt(0)}
	c := Vec2{NewInt(0), NewInt(1)}
	if got := Orient2D(a, b, c); got != 1 {
		t.Fatalf("ccw triangle: got %d want 1", got)
	}
	if got := Orient2D(a, c, b); got != -1 {
		t.Fatalf("cw triangle: got %d want -1", got)
	}
	d := Vec2{NewInt(2), NewInt(0)}
	if got := Orient2D(a, b, d); got != 0 {
		t.Fatalf("collinear: got %d want 0", got)
	}
}

func TestOrient3D(t *testing.T) {
	origin := Vec3{NewInt(0), NewInt(0), NewInt(0)}
	x := Vec3{NewInt(1), NewInt(0), NewInt(0)}
	y := Vec3{NewInt(0), NewInt(1), NewInt(0)}
	z := Vec3{NewInt(0), NewInt(0), NewInt(1)}
	below := Vec3{NewInt(0), NewInt(0), NewInt(-1)}
	if got := Orient3D(x, y, z, origin); got == 0 {
		t.Fatalf("expected nonzero orientation")
	}
	// Flipping which point is "below" the plane should flip the sign.
	got1 := Orient3D(x, y, origin, below)
	above := Vec3{NewInt(0), NewInt(0), NewInt(1)}
	got2 := Orient3D(x, y, origin, above)
	if got1 == got2 {
		t.Fatalf("expected orientation to flip across plane: %d vs %d", got1, got2)
	}
}

func TestDominantAxis(t *testing.T) {
	tests := []struct {
		n    Vec3
		want int
	}{
		{Vec3{NewInt(5), NewInt(1), NewInt(1)}, 0},
		{Vec3{NewInt(1), NewInt(5), NewInt(1)}, 1},
		{Vec3{NewInt(1), NewInt(1), NewInt(5)}, 2},
		{Vec3{NewInt(3), NewInt(3), NewInt(1)}, 0}, // tie broken to lowest index
		{Vec3{NewInt(-5), NewInt(1), NewInt(1)}, 0},
	}
	for _, tc := range tests {
		if got := DominantAxis(tc.n); got != tc.want {
			t.Errorf("DominantAxis(%v) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestPlaneCanonical(t *testing.T) {
	v0 := Vec3{NewInt(0), NewInt(0), NewInt(0)}
	v1 := Vec3{NewInt(2), NewInt(0), NewInt(0)}
	v2 := Vec3{NewInt(0), NewInt(2), NewInt(0)}
	p1, ok := NewPlane(v0, v1, v2)
	if !ok {
		t.Fatal("expected valid plane")
	}
	// Same plane, scaled triangle (doubled), should canonicalise identically.
	w1 := Vec3{NewInt(4), NewInt(0), NewInt(0)}
	w2 := Vec3{NewInt(0), NewInt(4), NewInt(0)}
	p2, ok := NewPlane(v0, w1, w2)
	if !ok {
		t.Fatal("expected valid plane")
	}
	if !p1.Equal(p2) {
		t.Fatalf("expected canonical planes to be equal: %+v vs %+v", p1, p2)
	}
	if _, ok := NewPlane(v0, v1, Vec3{NewInt(4), NewInt(0), NewInt(0)}); ok {
		t.Fatal("expected collinear points to fail plane construction")
	}
}
