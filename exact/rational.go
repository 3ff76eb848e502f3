// Package exact provides an arbitrary-precision rational kernel used by the
// rest of this module for geometric predicates. Every sign decision that
// drives topology (which triangles cross, which vertices merge, which side
// of a plane a point is on) is made here, in exact arithmetic, never in
// float32/float64.
//
// A float32 "shadow" of any rational quantity may be kept elsewhere (BVH
// boxes, SDF grids, solver kinematics) but must never feed back into a
// predicate in this package.
package exact

import "math/big"

// R is an exact rational number. The zero value is 0.
//
// R is treated as immutable: every method returns a new value and never
// mutates the receiver's underlying big.Int storage. This makes it safe to
// copy by value like any other small value type in this module.
type R struct {
	v big.Rat
}

// NewInt returns the exact integer n.
func NewInt(n int64) R {
	var r R
	r.v.SetInt64(n)
	return r
}

// NewFrac returns the exact fraction n/d.
func NewFrac(n, d int64) R {
	var r R
	r.v.SetFrac64(n, d)
	return r
}

// NewFloat64 returns the exact value of f, which is representable exactly
// since float64 is itself a binary fraction.
func NewFloat64(f float64) R {
	var r R
	r.v.SetFloat64(f)
	return r
}

func fromBig(v *big.Rat) R {
	var r R
	r.v.Set(v)
	return r
}

func (a R) Add(b R) R { return fromBig(new(big.Rat).Add(&a.v, &b.v)) }
func (a R) Sub(b R) R { return fromBig(new(big.Rat).Sub(&a.v, &b.v)) }
func (a R) Mul(b R) R { return fromBig(new(big.Rat).Mul(&a.v, &b.v)) }
func (a R) Quo(b R) R { return fromBig(new(big.Rat).Quo(&a.v, &b.v)) }
func (a R) Neg() R    { return fromBig(new(big.Rat).Neg(&a.v)) }
func (a R) Abs() R    { return fromBig(new(big.Rat).Abs(&a.v)) }

// Cmp returns -1, 0 or +1 as a is less than, equal to, or greater than b.
func (a R) Cmp(b R) int { return a.v.Cmp(&b.v) }

// Sign returns -1, 0 or +1 according to the sign of a. This is the core
// predicate primitive: every orientation test reduces to a Sign call.
func (a R) Sign() int { return a.v.Sign() }

func (a R) IsZero() bool { return a.v.Sign() == 0 }

func (a R) Equal(b R) bool { return a.v.Cmp(&b.v) == 0 }

// Float64 returns the nearest float64 to a. Only ever use this for the
// floating shadow, not for predicates.
func (a R) Float64() float64 {
	f, _ := a.v.Float64()
	return f
}

func (a R) String() string { return a.v.RatString() }

// Sgn returns the sign of a rational as -1, 0 or +1.
func Sgn(a R) int { return a.Sign() }

// Min returns the lesser of a, b.
func Min(a, b R) R {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater of a, b.
func Max(a, b R) R {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
