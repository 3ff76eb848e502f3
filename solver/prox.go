package solver

import "math"

// localStep runs the per-element proximal update for every element,
// given the current global positions X: Z_i <- prox(D_i x + U_i).
// Returns ErrNaN if any element's update produced a non-finite value.
func localStep(elements []Element, X [][3]float64, material Material, K float64) error {
	for i := range elements {
		e := &elements[i]
		dx := e.EvalF(X)
		z := add3(dx, e.U)
		var newZ [3][3]float64
		switch material {
		case NeoHookean:
			newZ = neoHookeanProx(z, e.W*e.W, K, e.RestVol)
		default:
			newZ = arapProx(z, e.W*e.W, K*e.RestVol)
		}
		if !finite3(newZ) {
			return ErrNaN
		}
		e.Z = newZ
	}
	return nil
}

// dualUpdate runs the ADMM dual ascent U_i <- U_i + D_i x - Z_i.
func dualUpdate(elements []Element, X [][3]float64) {
	for i := range elements {
		e := &elements[i]
		dx := e.EvalF(X)
		e.U = add3(e.U, sub33(dx, e.Z))
	}
}

// arapProx implements the closed-form ARAP prox: target singular values
// are always (1,1,1) (pure rotation), blended against the raw Z by the
// element's stiffness-weighted volume kV against its ADMM weight^2.
func arapProx(z [3][3]float64, w2, kV float64) [3][3]float64 {
	u, vt, _ := signedSVD3(z)
	r := mul3(u, vt) // UI Vt with Sigma=(1,1,1)
	denom := w2 + kV
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = (kV*r[i][j] + w2*z[i][j]) / denom
		}
	}
	return out
}

// neoHookeanProx runs up to 10 damped-Newton iterations (20 backtracking
// halvings each) on the singular values s, minimizing
//
//	1/2*mu*(I1 - log(I3) - 3) + 1/8*lambda*log(I3)^2 + 1/2*w2*||s-s0||^2
//
// where I1 = sum(s_i^2), I3 = prod(s_i^2), s0 is the raw singular value
// vector of z, mu=lambda=K*vol are the Lame parameters derived from the
// single stiffness input K scaled by the element's rest volume, and the
// proximal regularizer is weighted by the element's ADMM weight^2 (w2),
// matching ARAP's (w2, kV) blend.
func neoHookeanProx(z [3][3]float64, w2, K, vol float64) [3][3]float64 {
	u, vt, s0 := signedSVD3(z)
	mu := K * vol
	lambda := K * vol
	s := s0
	energy := func(s [3]float64) float64 {
		i1 := s[0]*s[0] + s[1]*s[1] + s[2]*s[2]
		i3 := s[0] * s[0] * s[1] * s[1] * s[2] * s[2]
		if i3 <= 0 {
			return math.Inf(1)
		}
		logI3 := math.Log(i3)
		d := [3]float64{s[0] - s0[0], s[1] - s0[1], s[2] - s0[2]}
		reg := d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
		return 0.5*mu*(i1-logI3-3) + 0.125*lambda*logI3*logI3 + 0.5*w2*reg
	}
	for iter := 0; iter < 10; iter++ {
		grad, hess := neoHookeanGradHess(s, s0, mu, lambda, w2)
		projectSPD3Diag(&hess)
		step, ok := solveDiag3(hess, grad)
		if !ok {
			break
		}
		e0 := energy(s)
		alpha := 1.0
		var next [3]float64
		accepted := false
		for h := 0; h < 20; h++ {
			next = [3]float64{s[0] - alpha*step[0], s[1] - alpha*step[1], s[2] - alpha*step[2]}
			if next[0] > 0 && next[1] > 0 && next[2] > 0 && energy(next) <= e0 {
				accepted = true
				break
			}
			alpha *= 0.5
		}
		if !accepted {
			break
		}
		s = next
	}
	return mul3(mul3(u, diag3(s)), vt)
}

// neoHookeanGradHess returns the gradient and the diagonal of the
// (Gauss-Newton, always-SPD) Hessian of the per-singular-value energy.
func neoHookeanGradHess(s, s0 [3]float64, mu, lambda, w2 float64) ([3]float64, [3]float64) {
	i3 := s[0] * s[0] * s[1] * s[1] * s[2] * s[2]
	if i3 <= 1e-12 {
		i3 = 1e-12
	}
	logI3 := math.Log(i3)
	var grad, hess [3]float64
	for a := 0; a < 3; a++ {
		grad[a] = mu*s[a] - mu/s[a] + 0.5*lambda*logI3/s[a] + w2*(s[a]-s0[a])
		hess[a] = mu + mu/(s[a]*s[a]) + 0.5*lambda*(1-logI3)/(s[a]*s[a]) + w2
	}
	return grad, hess
}

func projectSPD3Diag(h *[3]float64) {
	const floor = 1e-8
	for i := range h {
		if h[i] < floor {
			h[i] = floor
		}
	}
}

func solveDiag3(h, g [3]float64) ([3]float64, bool) {
	if h[0] == 0 || h[1] == 0 || h[2] == 0 {
		return [3]float64{}, false
	}
	return [3]float64{g[0] / h[0], g[1] / h[1], g[2] / h[2]}, true
}

func add3(a, b [3][3]float64) [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] + b[i][j]
		}
	}
	return r
}

func sub33(a, b [3][3]float64) [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] - b[i][j]
		}
	}
	return r
}

func finite3(m [3][3]float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}
