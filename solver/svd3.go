package solver

import "gonum.org/v1/gonum/mat"

// signedSVD3 factorizes the 3x3 matrix z into U*diag(sigma)*Vt with the
// reflection fix: if det(U) (or det(V)) is negative, its last column is
// flipped and the corresponding singular value negated, so U and V are
// always proper rotations and sigma's sign carries the orientation.
func signedSVD3(z [3][3]float64) (u, vt [3][3]float64, sigma [3]float64) {
	a := mat.NewDense(3, 3, flatten3(z))
	var svd mat.SVD
	ok := svd.Factorize(a, mat.SVDFull)
	if !ok {
		// Degenerate input; fall back to identity factors rather than
		// propagating a zero value the caller would mistake for a valid
		// rotation.
		return identity3(), identity3(), [3]float64{1, 1, 1}
	}
	var um, vm mat.Dense
	svd.UTo(&um)
	svd.VTo(&vm)
	vals := svd.Values(nil)
	u = unflatten3(um.RawMatrix().Data)
	v := unflatten3(vm.RawMatrix().Data)
	sigma = [3]float64{vals[0], vals[1], vals[2]}

	if det3(u) < 0 {
		u[0][2], u[1][2], u[2][2] = -u[0][2], -u[1][2], -u[2][2]
		sigma[2] = -sigma[2]
	}
	if det3(v) < 0 {
		v[0][2], v[1][2], v[2][2] = -v[0][2], -v[1][2], -v[2][2]
		sigma[2] = -sigma[2]
	}
	vt = transpose3(v)
	return u, vt, sigma
}

func flatten3(m [3][3]float64) []float64 {
	return []float64{m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2], m[2][0], m[2][1], m[2][2]}
}

func unflatten3(d []float64) [3][3]float64 {
	return [3][3]float64{
		{d[0], d[1], d[2]},
		{d[3], d[4], d[5]},
		{d[6], d[7], d[8]},
	}
}

func identity3() [3][3]float64 {
	return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func diag3(d [3]float64) [3][3]float64 {
	return [3][3]float64{{d[0], 0, 0}, {0, d[1], 0}, {0, 0, d[2]}}
}
