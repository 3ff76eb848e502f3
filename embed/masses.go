package embed

import "fmt"

// tetVolume returns the unsigned volume of tet (v0,v1,v2,v3).
func tetVolume(v0, v1, v2, v3 [3]float64) float64 {
	ab := sub3(v1, v0)
	ac := sub3(v2, v0)
	ad := sub3(v3, v0)
	vol := dot3(ab, cross3(ac, ad)) / 6
	if vol < 0 {
		vol = -vol
	}
	return vol
}

// minIsolatedMass is assigned to lattice vertices no tet references, so
// the solver's mass matrix never carries a zero on its diagonal.
const minIsolatedMass = 1e-9

// ComputeMasses lumps each tet's rho*volume equally onto its four corners,
// filling em.Mass. Lattice vertices unreferenced by any tet (degenerate
// corner cells, should not normally occur) get minIsolatedMass and a
// warning rather than a fatal error.
func (em *EmbeddedMesh) ComputeMasses(densityKgm3 float64) {
	em.Mass = make([]float64, len(em.LatticeX))
	referenced := make([]bool, len(em.LatticeX))
	for _, t := range em.LatticeT {
		vol := tetVolume(em.LatticeX[t[0]], em.LatticeX[t[1]], em.LatticeX[t[2]], em.LatticeX[t[3]])
		share := densityKgm3 * vol / 4
		for _, v := range t {
			em.Mass[v] += share
			referenced[v] = true
		}
	}
	for v, ok := range referenced {
		if !ok {
			em.Mass[v] = minIsolatedMass
			em.Warnings = append(em.Warnings, fmt.Sprintf("lattice vertex %d is unreferenced by any tet; assigned nominal mass", v))
		}
	}
}
