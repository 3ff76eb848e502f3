package solver

import (
	"github.com/soypat/meshcsg/collision"
	"github.com/soypat/meshcsg/embed"
)

// PinRow is one axis of a linearized pin constraint: Σⱼ Weights[j]*x[Cols[j]][Axis] = Target,
// penalized with Stiffness.
type PinRow struct {
	Cols      [4]int
	Weights   [4]float64
	Axis      int
	Target    float64
	Stiffness float64
}

// ExpandPinRow splits an embed.PinRow (one facet-vertex pin, all three
// axes) into up to three PinRow values, one per axis with nonzero
// stiffness.
func ExpandPinRow(r embed.PinRow) []PinRow {
	out := make([]PinRow, 0, 3)
	for a := 0; a < 3; a++ {
		if r.Stiffness[a] == 0 {
			continue
		}
		out = append(out, PinRow{Cols: r.Cols, Weights: r.Weights, Axis: a, Target: r.Target[a], Stiffness: r.Stiffness[a]})
	}
	return out
}

// ContactRow is a linearized collision constraint n·Σⱼ Weights[j]*x[Cols[j]] = Offset.
// A self-collision contact couples the colliding vertex's own 4-corner
// embedding stencil against the hit triangle's three facet vertices' own
// 4-corner stencils, so Cols/Weights carry up to 16 entries rather than a
// fixed 4; an environment-collision contact still carries exactly 4.
type ContactRow struct {
	Cols    []int
	Weights []float64
	Normal  [3]float64
	Offset  float64
}

// FromCollisionRow converts a collision.Row into a solver ContactRow.
func FromCollisionRow(r collision.Row) ContactRow {
	return ContactRow{Cols: r.Cols, Weights: r.Weights, Normal: r.Normal, Offset: r.Offset}
}
