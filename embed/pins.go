package embed

// Pin anchors a facet vertex towards Target with a per-axis spring
// Stiffness, enforced by the solver as a linear penalty term rather than
// a hard constraint.
type Pin struct {
	Target    [3]float64
	Stiffness [3]float64
}

// SetPin pins facet vertex i to target with the given per-axis stiffness.
func (em *EmbeddedMesh) SetPin(i int, target [3]float64, stiffness [3]float64) {
	if em.Pins == nil {
		em.Pins = make(map[int]Pin)
	}
	em.Pins[i] = Pin{Target: target, Stiffness: stiffness}
}

// ClearPins removes every pin.
func (em *EmbeddedMesh) ClearPins() {
	em.Pins = nil
}

// PinRow is one linearized pin constraint: the pinned facet vertex's
// position, expressed as a barycentric combination of lattice tet corner
// columns, pulled towards Target with per-axis Stiffness.
type PinRow struct {
	FacetVert int
	Cols      [4]int
	Weights   [4]float64
	Target    [3]float64
	Stiffness [3]float64
}

// LinearizePins expands every current pin into a PinRow the solver's
// global step can fold directly into its normal equations (Cols/Weights
// give the barycentric combination of lattice dof columns the row acts
// on; Stiffness scales its contribution to both A and b).
func (em *EmbeddedMesh) LinearizePins() []PinRow {
	if len(em.Pins) == 0 {
		return nil
	}
	rows := make([]PinRow, 0, len(em.Pins))
	for i, pin := range em.Pins {
		rows = append(rows, PinRow{
			FacetVert: i,
			Cols:      em.LatticeT[em.Tet[i]],
			Weights:   em.Bary[i],
			Target:    pin.Target,
			Stiffness: pin.Stiffness,
		})
	}
	return rows
}
