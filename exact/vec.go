package exact

// Vec2 is an exact 2-vector.
type Vec2 struct {
	X, Y R
}

// Vec3 is an exact 3-vector.
type Vec3 struct {
	X, Y, Z R
}

func NewVec2(x, y R) Vec2 { return Vec2{X: x, Y: y} }
func NewVec3(x, y, z R) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X.Add(b.X), a.Y.Add(b.Y)} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X.Sub(b.X), a.Y.Sub(b.Y)} }
func (a Vec2) Scale(s R) Vec2  { return Vec2{a.X.Mul(s), a.Y.Mul(s)} }
func (a Vec2) Dot(b Vec2) R    { return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)) }

// Cross returns the scalar (a x b) z-component, i.e. a.X*b.Y - a.Y*b.X.
func (a Vec2) Cross(b Vec2) R { return a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)) }

func (a Vec2) LenSq() R { return a.Dot(a) }

func (a Vec2) Equal(b Vec2) bool { return a.X.Equal(b.X) && a.Y.Equal(b.Y) }

// Compare gives a total (lexicographic) order over Vec2, used for
// deterministic tie-breaking and map keys via String.
func (a Vec2) Compare(b Vec2) int {
	if c := a.X.Cmp(b.X); c != 0 {
		return c
	}
	return a.Y.Cmp(b.Y)
}

func (a Vec2) Key() [2]string { return [2]string{a.X.String(), a.Y.String()} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X.Add(b.X), a.Y.Add(b.Y), a.Z.Add(b.Z)} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z)} }
func (a Vec3) Scale(s R) Vec3  { return Vec3{a.X.Mul(s), a.Y.Mul(s), a.Z.Mul(s)} }
func (a Vec3) Neg() Vec3       { return Vec3{a.X.Neg(), a.Y.Neg(), a.Z.Neg()} }
func (a Vec3) Dot(b Vec3) R    { return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z)) }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y.Mul(b.Z).Sub(a.Z.Mul(b.Y)),
		Y: a.Z.Mul(b.X).Sub(a.X.Mul(b.Z)),
		Z: a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)),
	}
}

func (a Vec3) LenSq() R { return a.Dot(a) }

func (a Vec3) Equal(b Vec3) bool {
	return a.X.Equal(b.X) && a.Y.Equal(b.Y) && a.Z.Equal(b.Z)
}

// Compare gives a total lexicographic order over Vec3.
func (a Vec3) Compare(b Vec3) int {
	if c := a.X.Cmp(b.X); c != 0 {
		return c
	}
	if c := a.Y.Cmp(b.Y); c != 0 {
		return c
	}
	return a.Z.Cmp(b.Z)
}

// Key returns a value usable as a Go map key that is equal iff the vectors
// are exactly equal. Used by the arena for vertex deduplication.
func (a Vec3) Key() [3]string { return [3]string{a.X.String(), a.Y.String(), a.Z.String()} }

// Float64 returns the floating-point shadow of a, for use in BVH boxes,
// SDF grids and other non-predicate contexts only.
func (a Vec3) Float64() (x, y, z float64) { return a.X.Float64(), a.Y.Float64(), a.Z.Float64() }

// Interp returns a + t*(b-a), the point a fraction t of the way from a to b.
func Interp(a, b Vec3, t R) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Interp2 is the 2-D analogue of Interp.
func Interp2(a, b Vec2, t R) Vec2 {
	return a.Add(b.Sub(a).Scale(t))
}

// DominantAxis returns the index i in {0,1,2} maximising |n_i|, breaking
// ties toward the lowest index.
func DominantAxis(n Vec3) int {
	ax, ay, az := n.X.Abs(), n.Y.Abs(), n.Z.Abs()
	best := 0
	bestV := ax
	if ay.Cmp(bestV) > 0 {
		best, bestV = 1, ay
	}
	if az.Cmp(bestV) > 0 {
		best = 2
	}
	return best
}

// DropAxis projects v to 2-D by deleting coordinate axis (in the order
// X,Y,Z), preserving the order of the remaining two.
func DropAxis(v Vec3, axis int) Vec2 {
	switch axis {
	case 0:
		return Vec2{v.Y, v.Z}
	case 1:
		return Vec2{v.X, v.Z}
	default:
		return Vec2{v.X, v.Y}
	}
}

// Orient2D returns the sign of (b-a) x (c-a): +1 if a,b,c turn
// counterclockwise, -1 clockwise, 0 if collinear.
func Orient2D(a, b, c Vec2) int {
	return b.Sub(a).Cross(c.Sub(a)).Sign()
}

// Orient3D returns the sign of the determinant of the 3x3 matrix formed by
// rows (a-d),(b-d),(c-d): +1 if d sees a,b,c wound counterclockwise (i.e. d
// is below the plane abc under the right-hand rule), -1 if above, 0 if
// coplanar.
func Orient3D(a, b, c, d Vec3) int {
	ad := a.Sub(d)
	bd := b.Sub(d)
	cd := c.Sub(d)
	return ad.Dot(bd.Cross(cd)).Sign()
}
