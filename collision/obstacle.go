package collision

import "math"

// ObstacleTest reports per-lattice-vertex obstacle contacts against a
// pre-sampled ObstacleGrid: any vertex with interpolated distance below
// thickness gets a constraint row linearized at the current position
// along the field's gradient (the tangent plane to the isosurface
// dist=thickness).
func ObstacleTest(X [][3]float64, grid *ObstacleGrid, thickness float64, nthreads int) []Row {
	hits := make([]*Row, len(X))
	ParallelStripe(len(X), nthreads, func(i int) {
		dist, grad := grid.Eval(X[i])
		if dist >= thickness {
			return
		}
		n := normalize(grad)
		p := X[i]
		offset := n[0]*p[0] + n[1]*p[1] + n[2]*p[2] - (dist - thickness)
		r := directRow(i, n, offset, thickness)
		hits[i] = &r
	})
	var rows []Row
	for _, r := range hits {
		if r != nil {
			rows = append(rows, *r)
		}
	}
	return rows
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return [3]float64{0, 0, 1}
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}
