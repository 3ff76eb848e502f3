// Package solver implements the ADMM projective-dynamics time integrator:
// per-element local proximal updates on the singular values of each
// tetrahedron's deformation gradient, alternated with a global sparse
// SPD solve that ties every element and active contact back together.
package solver

// Material selects the per-element local-step energy model.
type Material int

const (
	ARAP Material = iota
	NeoHookean
)

func (m Material) String() string {
	switch m {
	case ARAP:
		return "ARAP"
	case NeoHookean:
		return "NeoHookean"
	default:
		return "Material(?)"
	}
}

// LinSolver selects the global-step linear solver. MCGS (multi-colour
// Gauss-Seidel) is intentionally not offered: it requires a colour-graph
// precondition this package does not build.
type LinSolver int

const (
	LDLT LinSolver = iota
	PCG
)

func (s LinSolver) String() string {
	switch s {
	case LDLT:
		return "LDLT"
	case PCG:
		return "PCG"
	default:
		return "LinSolver(?)"
	}
}
