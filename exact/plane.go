package exact

// Plane is an exact plane n.x + d = 0, canonicalised so that two
// geometrically identical planes compare equal: the representative is
// divided by the first nonzero component of n.
type Plane struct {
	N Vec3
	D R
}

// NewPlane builds the plane through three (expected non-collinear) points,
// with normal n = (v1-v0) x (v2-v0) and d = -n.v0, then canonicalises it.
// The second return value is false if the three points are collinear (no
// well-defined plane).
func NewPlane(v0, v1, v2 Vec3) (Plane, bool) {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if n.X.IsZero() && n.Y.IsZero() && n.Z.IsZero() {
		return Plane{}, false
	}
	d := n.Dot(v0).Neg()
	return Plane{N: n, D: d}.canonical(), true
}

func (p Plane) canonical() Plane {
	var div R
	switch {
	case !p.N.X.IsZero():
		div = p.N.X
	case !p.N.Y.IsZero():
		div = p.N.Y
	default:
		div = p.N.Z
	}
	return Plane{
		N: Vec3{p.N.X.Quo(div), p.N.Y.Quo(div), p.N.Z.Quo(div)},
		D: p.D.Quo(div),
	}
}

// Equal reports whether two canonical planes coincide.
func (p Plane) Equal(q Plane) bool { return p.N.Equal(q.N) && p.D.Equal(q.D) }

// Key returns a value usable as a Go map key for grouping coplanar
// triangles (see isect's cluster finder).
func (p Plane) Key() [4]string {
	k := p.N.Key()
	return [4]string{k[0], k[1], k[2], p.D.String()}
}

// SignedDistance evaluates n.v + d, whose Sign() says which side of the
// plane v is on (0 meaning v lies on the plane).
func (p Plane) SignedDistance(v Vec3) R {
	return p.N.Dot(v).Add(p.D)
}
