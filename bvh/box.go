// Package bvh implements an axis-aligned bounding-volume hierarchy over
// float64 boxes, built once and refit in place across small deformations,
// with a traversal template specialised by concrete point/triangle/tet
// queries.
package bvh

import "math"

// Box is an axis-aligned box in double precision: BVH geometry needs more
// headroom against exact-touching misses than the float32 shadow values
// used elsewhere in this module's solver/render paths.
type Box struct {
	Min, Max [3]float64
}

// EmptyBox returns a box with no extent, ready to be grown by Extend.
func EmptyBox() Box {
	return Box{
		Min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Extend grows b to include p.
func (b Box) Extend(p [3]float64) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// ExtendBox grows b to include other.
func (b Box) ExtendBox(other Box) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], other.Min[i])
		b.Max[i] = math.Max(b.Max[i], other.Max[i])
	}
	return b
}

// Diagonal returns the length of b's diagonal.
func (b Box) Diagonal() float64 {
	var d float64
	for i := 0; i < 3; i++ {
		s := b.Max[i] - b.Min[i]
		d += s * s
	}
	return math.Sqrt(d)
}

// Pad grows b outward by eps on every side, used before leaf insertion to
// avoid exact-touching misses at box boundaries.
func (b Box) Pad(eps float64) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] -= eps
		b.Max[i] += eps
	}
	return b
}

// Overlaps reports whether b and other share any volume.
func (b Box) Overlaps(other Box) bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] > other.Max[i] || other.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p lies within b (inclusive).
func (b Box) Contains(p [3]float64) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b Box) longestAxis() int {
	best, bestSize := 0, b.Max[0]-b.Min[0]
	for i := 1; i < 3; i++ {
		size := b.Max[i] - b.Min[i]
		if size > bestSize {
			best, bestSize = i, size
		}
	}
	return best
}

func (b Box) center() [3]float64 {
	return [3]float64{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}
