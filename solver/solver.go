package solver

import "math"

// Solver runs the ADMM projective-dynamics time integrator over a fixed
// tetrahedral lattice. It owns per-vertex kinematic state and per-element
// ADMM auxiliary state; the embedding/collision/pin layers above it
// (packages embed, collision, sim) are responsible for turning mesh and
// contact data into the Elements/PinRow/ContactRow this type consumes.
type Solver struct {
	Elements []Element
	Mass     []float64
	X        [][3]float64
	V        [][3]float64
	XStart   [][3]float64
	XPrev    [][3]float64

	DT          float64
	Material    Material
	K           float64
	Grav        [3]float64
	LinSolver   LinSolver
	MaxADMMIter int
	MaxCGIter   int
	MinRes      float64
	MultPk      float64
	MultCk      float64

	sys *system
}

// New builds a Solver over a rest-state lattice X0/tets, validating every
// tet's rest shape; a degenerate (near-zero-volume) rest tet is a fatal
// error. Orientation is not checked: an inverted rest tet is accepted
// (see NewElement).
func New(x0 [][3]float64, tets [][4]int, mass []float64, dt, k float64) (*Solver, error) {
	if len(x0) == 0 || len(tets) == 0 {
		return nil, ErrEmptyMesh
	}
	elements := make([]Element, len(tets))
	for i, t := range tets {
		e, err := NewElement(t, x0, k)
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	x := cloneVerts(x0)
	s := &Solver{
		Elements:    elements,
		Mass:        mass,
		X:           x,
		V:           make([][3]float64, len(x0)),
		XStart:      cloneVerts(x0),
		XPrev:       cloneVerts(x0),
		DT:          dt,
		Material:    ARAP,
		K:           k,
		Grav:        [3]float64{0, 0, -9.8},
		LinSolver:   LDLT,
		MaxADMMIter: 10,
		MaxCGIter:   200,
		MinRes:      1e-6,
		MultPk:      1,
		MultCk:      1,
	}
	s.sys = &system{n: len(x0), baseA: buildBaseA(len(x0), mass, elements, dt)}
	return s, nil
}

func cloneVerts(v [][3]float64) [][3]float64 {
	out := make([][3]float64, len(v))
	copy(out, v)
	return out
}

// Step advances the solver by one timestep with the given pin/contact
// rows (already linearized by the embed/collision packages). XStart
// records X at the start of the step; on a per-step numerical failure
// Step restores X to XStart and returns the error; the caller may retry
// with a smaller step or different options.
func (s *Solver) Step(pins []PinRow, contacts []ContactRow) error {
	n := len(s.X)
	s.XStart = cloneVerts(s.X)
	xbar := make([][3]float64, n)
	for i := range xbar {
		var accel [3]float64
		if s.Mass[i] > 0 {
			accel = s.Grav
		}
		xbar[i] = [3]float64{
			s.X[i][0] + s.DT*s.V[i][0] + s.DT*s.DT*accel[0],
			s.X[i][1] + s.DT*s.V[i][1] + s.DT*s.DT*accel[1],
			s.X[i][2] + s.DT*s.V[i][2] + s.DT*s.DT*accel[2],
		}
	}

	pk := s.MultPk * s.sys.maxDiag()
	ck := s.MultCk * s.sys.maxDiag()

	x := cloneVerts(s.X)
	var stepErr error
	for iter := 0; iter < s.MaxADMMIter; iter++ {
		if err := localStep(s.Elements, x, s.Material, s.K); err != nil {
			stepErr = err
			break
		}
		rhs := make([][3]float64, n)
		for i := 0; i < n; i++ {
			rhs[i] = [3]float64{
				s.Mass[i] * xbar[i][0] / (s.DT * s.DT),
				s.Mass[i] * xbar[i][1] / (s.DT * s.DT),
				s.Mass[i] * xbar[i][2] / (s.DT * s.DT),
			}
		}
		addElementRHS(rhs, s.Elements)

		var next [][3]float64
		var err error
		if len(pins) == 0 && len(contacts) == 0 {
			next, err = s.sys.solveAxisDecoupled(rhs)
		} else {
			next, err = s.sys.solveCoupled(rhs, pins, contacts, pk, ck, s.LinSolver, s.MaxCGIter, s.MinRes)
		}
		if err != nil {
			stepErr = err
			break
		}
		x = next
		dualUpdate(s.Elements, x)

		if admmConverged(s.Elements, x, s.MinRes) {
			break
		}
	}
	if stepErr != nil {
		s.X = cloneVerts(s.XStart)
		return stepErr
	}
	s.XPrev = s.X
	s.X = x
	for i := range s.V {
		s.V[i] = [3]float64{
			(s.X[i][0] - s.XPrev[i][0]) / s.DT,
			(s.X[i][1] - s.XPrev[i][1]) / s.DT,
			(s.X[i][2] - s.XPrev[i][2]) / s.DT,
		}
	}
	return nil
}

// addElementRHS accumulates DᵀW²(z-u) into rhs.
func addElementRHS(rhs [][3]float64, elements []Element) {
	for _, e := range elements {
		b := e.ReductionRow()
		w2 := e.W * e.W
		zu := sub33(e.Z, e.U)
		for rr := 0; rr < 3; rr++ {
			row := b[rr]
			for p := 0; p < 4; p++ {
				v := row[p]
				if v == 0 {
					continue
				}
				vert := e.Tet[p]
				for axis := 0; axis < 3; axis++ {
					rhs[vert][axis] += w2 * v * zuComponent(zu, rr, axis)
				}
			}
		}
	}
}

// zuComponent returns (z-u)[axis][rr]: F[axis][rr] = Σ_p B[rr][p]*x_p[axis]
// (see Element.ReductionRow), so in DᵀW²(z-u) reduction row rr is paired
// with the z-u entry at row axis, column rr.
func zuComponent(zu [3][3]float64, rr, axis int) float64 {
	return zu[axis][rr]
}

// admmConverged reports whether every element's local/global gap is
// within tolerance, i.e. ||D_i x - Z_i|| is small for all elements.
func admmConverged(elements []Element, x [][3]float64, tol float64) bool {
	for i := range elements {
		dx := elements[i].EvalF(x)
		diff := sub33(dx, elements[i].Z)
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				if math.Abs(diff[a][b]) > tol {
					return false
				}
			}
		}
	}
	return true
}
