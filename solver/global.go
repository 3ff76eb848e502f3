package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// system holds the per-axis-decoupled elastic part of the global normal
// equations (A = M/dt^2 + DᵀW²D, identical for x/y/z) plus the factor
// cache the step loop reuses across calls when pins/contacts allow it.
type system struct {
	n        int
	baseA    *mat.SymDense // n x n, one axis' worth (elastic + mass)
	baseChol mat.Cholesky
	baseOK   bool
}

// buildBaseA assembles A = M/dt^2 + DᵀW²D for one axis (shared by all
// three, since the elastic reduction decouples axes in the absence of
// contacts/pins).
func buildBaseA(n int, mass []float64, elements []Element, dt float64) *mat.SymDense {
	a := mat.NewSymDense(n, nil)
	for i, m := range mass {
		a.SetSym(i, i, a.At(i, i)+m/(dt*dt))
	}
	for _, e := range elements {
		b := e.ReductionRow()
		w2 := e.W * e.W
		// DᵀW²D's axis-decoupled block is w² * Bᵀ B summed over B's three
		// rows (one per deformation-gradient output row, each weighted
		// identically by the element's scalar ADMM weight).
		for rr := 0; rr < 3; rr++ {
			row := b[rr]
			for p := 0; p < 4; p++ {
				cp := e.Tet[p]
				for q := p; q < 4; q++ {
					cq := e.Tet[q]
					v := w2 * row[p] * row[q]
					if cp <= cq {
						a.SetSym(cp, cq, a.At(cp, cq)+v)
					} else {
						a.SetSym(cq, cp, a.At(cq, cp)+v)
					}
				}
			}
		}
	}
	return a
}

// solveAxisDecoupled solves the base system (no pins/contacts) for all
// three axes independently, reusing one Cholesky factor.
func (s *system) solveAxisDecoupled(rhs [][3]float64) ([][3]float64, error) {
	if !s.baseOK {
		ok := s.baseChol.Factorize(s.baseA)
		if !ok {
			return nil, ErrFactorizeFailed
		}
		s.baseOK = true
	}
	out := make([][3]float64, s.n)
	for axis := 0; axis < 3; axis++ {
		b := mat.NewVecDense(s.n, nil)
		for i := 0; i < s.n; i++ {
			b.SetVec(i, rhs[i][axis])
		}
		var x mat.VecDense
		if err := s.baseChol.SolveVecTo(&x, b); err != nil {
			return nil, ErrLinearSolveFailed
		}
		for i := 0; i < s.n; i++ {
			out[i][axis] = x.AtVec(i)
		}
	}
	return out, nil
}

// solveCoupled solves the full 3n system (elastic base replicated across
// axes, plus pin and contact penalty terms which couple axes) via dense
// Cholesky when linsolver==LDLT, or PCG otherwise.
func (s *system) solveCoupled(rhs [][3]float64, pins []PinRow, contacts []ContactRow, pk, ck float64, ls LinSolver, maxIters int, minRes float64) ([][3]float64, error) {
	n3 := 3 * s.n
	A := mat.NewSymDense(n3, nil)
	for axis := 0; axis < 3; axis++ {
		for i := 0; i < s.n; i++ {
			for j := i; j < s.n; j++ {
				v := s.baseA.At(i, j)
				if v != 0 {
					A.SetSym(3*i+axis, 3*j+axis, v)
				}
			}
		}
	}
	b := make([]float64, n3)
	for i := 0; i < s.n; i++ {
		for axis := 0; axis < 3; axis++ {
			b[3*i+axis] = rhs[i][axis]
		}
	}
	addPinTerms(A, b, pins, pk)
	addContactTerms(A, b, contacts, ck)

	bv := mat.NewVecDense(n3, b)
	var xv mat.VecDense
	switch ls {
	case PCG:
		if err := pcg(A, bv, &xv, maxIters, minRes); err != nil {
			return nil, err
		}
	default:
		var chol mat.Cholesky
		if !chol.Factorize(A) {
			return nil, ErrLinearSolveFailed
		}
		if err := chol.SolveVecTo(&xv, bv); err != nil {
			return nil, ErrLinearSolveFailed
		}
	}
	out := make([][3]float64, s.n)
	for i := 0; i < s.n; i++ {
		for axis := 0; axis < 3; axis++ {
			out[i][axis] = xv.AtVec(3*i + axis)
		}
	}
	return out, nil
}

func addPinTerms(A *mat.SymDense, b []float64, pins []PinRow, pk float64) {
	for _, p := range pins {
		var cols []int
		var w []float64
		for c := 0; c < 4; c++ {
			if p.Weights[c] == 0 {
				continue
			}
			cols = append(cols, 3*p.Cols[c]+p.Axis)
			w = append(w, p.Weights[c])
		}
		for i, ci := range cols {
			b[ci] += pk * p.Stiffness * w[i] * p.Target
			for j, cj := range cols {
				if ci <= cj {
					A.SetSym(ci, cj, A.At(ci, cj)+pk*p.Stiffness*w[i]*w[j])
				}
			}
		}
	}
}

func addContactTerms(A *mat.SymDense, b []float64, contacts []ContactRow, ck float64) {
	for _, c := range contacts {
		var cols []int
		var coeff []float64
		for j := range c.Cols {
			if c.Weights[j] == 0 {
				continue
			}
			for a := 0; a < 3; a++ {
				if c.Normal[a] == 0 {
					continue
				}
				cols = append(cols, 3*c.Cols[j]+a)
				coeff = append(coeff, c.Weights[j]*c.Normal[a])
			}
		}
		for i, ci := range cols {
			b[ci] += ck * c.Offset * coeff[i]
			for j, cj := range cols {
				if ci <= cj {
					A.SetSym(ci, cj, A.At(ci, cj)+ck*coeff[i]*coeff[j])
				}
			}
		}
	}
}

// pcg runs preconditioned conjugate gradient (Jacobi-preconditioned)
// against the L∞ residual tolerance minRes, for at most maxIters.
func pcg(A *mat.SymDense, b *mat.VecDense, x *mat.VecDense, maxIters int, minRes float64) error {
	n := b.Len()
	*x = *mat.NewVecDense(n, nil)
	r := mat.NewVecDense(n, nil)
	r.CopyVec(b)
	precond := make([]float64, n)
	for i := 0; i < n; i++ {
		d := A.At(i, i)
		if d == 0 {
			d = 1
		}
		precond[i] = 1 / d
	}
	z := mat.NewVecDense(n, nil)
	applyPrecond := func(dst, src *mat.VecDense) {
		for i := 0; i < n; i++ {
			dst.SetVec(i, precond[i]*src.AtVec(i))
		}
	}
	applyPrecond(z, r)
	p := mat.NewVecDense(n, nil)
	p.CopyVec(z)
	rz := mat.Dot(r, z)
	ap := mat.NewVecDense(n, nil)
	for iter := 0; iter < maxIters; iter++ {
		ap.MulVec(A, p)
		alpha := rz / mat.Dot(p, ap)
		if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
			return ErrNaN
		}
		x.AddScaledVec(x, alpha, p)
		r.AddScaledVec(r, -alpha, ap)
		if linfNorm(r) < minRes {
			return nil
		}
		applyPrecond(z, r)
		rzNew := mat.Dot(r, z)
		beta := rzNew / rz
		p.AddScaledVec(z, beta, p)
		rz = rzNew
	}
	if linfNorm(r) >= minRes {
		return ErrLinearSolveFailed
	}
	return nil
}

func linfNorm(v *mat.VecDense) float64 {
	var m float64
	for i := 0; i < v.Len(); i++ {
		a := math.Abs(v.AtVec(i))
		if a > m {
			m = a
		}
	}
	return m
}

// maxDiag returns the largest diagonal entry of the per-axis base
// matrix, used to rescale pk/ck per spec.
func (s *system) maxDiag() float64 {
	m := 0.0
	for i := 0; i < s.n; i++ {
		if v := s.baseA.At(i, i); v > m {
			m = v
		}
	}
	return m
}
