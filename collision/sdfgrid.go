package collision

import "fmt"

// SDF3 is a scalar signed distance function sampled to build an
// ObstacleGrid; negative inside the obstacle, matching the sign
// convention of the teacher's gleval.SDF3 evaluators.
type SDF3 func(p [3]float64) float64

// gridN is the per-axis resolution of the sampled obstacle grid.
const gridN = 30

// gridPadFraction pads the sampled bounding box by 0.1% on every side so
// samples taken exactly on the supplied bounds still have a full cubic
// interpolation stencil available.
const gridPadFraction = 0.001

// ObstacleGrid is a pre-sampled signed distance field over a uniform
// gridN^3 lattice, evaluated per solver step by cubic Lagrange
// interpolation instead of re-running the (possibly expensive) source
// SDF3 at every contact candidate.
type ObstacleGrid struct {
	Min, Max [3]float64
	N        int
	cell     [3]float64
	values   []float64 // N^3, x-fastest
}

// BuildObstacleGrid samples sdf over [bbMin,bbMax] (padded by
// gridPadFraction) on a gridN^3 lattice.
func BuildObstacleGrid(sdf SDF3, bbMin, bbMax [3]float64) *ObstacleGrid {
	var pad [3]float64
	for a := 0; a < 3; a++ {
		pad[a] = (bbMax[a] - bbMin[a]) * gridPadFraction
	}
	min := [3]float64{bbMin[0] - pad[0], bbMin[1] - pad[1], bbMin[2] - pad[2]}
	max := [3]float64{bbMax[0] + pad[0], bbMax[1] + pad[1], bbMax[2] + pad[2]}
	g := &ObstacleGrid{Min: min, Max: max, N: gridN}
	for a := 0; a < 3; a++ {
		g.cell[a] = (max[a] - min[a]) / float64(gridN-1)
	}
	g.values = make([]float64, gridN*gridN*gridN)
	for k := 0; k < gridN; k++ {
		for j := 0; j < gridN; j++ {
			for i := 0; i < gridN; i++ {
				p := [3]float64{
					min[0] + float64(i)*g.cell[0],
					min[1] + float64(j)*g.cell[1],
					min[2] + float64(k)*g.cell[2],
				}
				g.values[g.idx(i, j, k)] = sdf(p)
			}
		}
	}
	return g
}

func (g *ObstacleGrid) idx(i, j, k int) int { return (k*g.N+j)*g.N + i }

func (g *ObstacleGrid) at(i, j, k int) float64 {
	i = clampInt(i, 0, g.N-1)
	j = clampInt(j, 0, g.N-1)
	k = clampInt(k, 0, g.N-1)
	return g.values[g.idx(i, j, k)]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lagrangeWeights4 returns the 4 cubic Lagrange basis weights for
// evaluating at fractional offset t in [0,1] from the 2nd of 4 equally
// spaced samples (indices -1,0,1,2 relative to the cell floor).
func lagrangeWeights4(t float64) [4]float64 {
	// Cubic Lagrange basis over nodes at x=-1,0,1,2.
	return [4]float64{
		-t * (t - 1) * (t - 2) / 6,
		(t + 1) * (t - 1) * (t - 2) / 2,
		-(t + 1) * t * (t - 2) / 2,
		(t + 1) * t * (t - 1) / 6,
	}
}

// Eval returns the interpolated signed distance and its gradient
// (central-difference on the interpolated field) at p.
func (g *ObstacleGrid) Eval(p [3]float64) (dist float64, grad [3]float64) {
	dist = g.sample(p)
	const h = 1e-4
	for a := 0; a < 3; a++ {
		pp, pm := p, p
		pp[a] += h
		pm[a] -= h
		grad[a] = (g.sample(pp) - g.sample(pm)) / (2 * h)
	}
	return dist, grad
}

func (g *ObstacleGrid) sample(p [3]float64) float64 {
	var base [3]int
	var frac [3]float64
	for a := 0; a < 3; a++ {
		u := (p[a] - g.Min[a]) / g.cell[a]
		fl := clampInt(int(floor(u)), 0, g.N-1)
		base[a] = fl
		frac[a] = u - float64(fl)
	}
	wx := lagrangeWeights4(frac[0])
	wy := lagrangeWeights4(frac[1])
	wz := lagrangeWeights4(frac[2])
	var sum float64
	for dz := -1; dz <= 2; dz++ {
		for dy := -1; dy <= 2; dy++ {
			for dx := -1; dx <= 2; dx++ {
				w := wx[dx+1] * wy[dy+1] * wz[dz+1]
				sum += w * g.at(base[0]+dx, base[1]+dy, base[2]+dz)
			}
		}
	}
	return sum
}

func floor(x float64) float64 {
	i := int(x)
	if x < 0 && float64(i) != x {
		i--
	}
	return float64(i)
}

// String summarises the grid for debug logging.
func (g *ObstacleGrid) String() string {
	return fmt.Sprintf("ObstacleGrid{N=%d, min=%v, max=%v}", g.N, g.Min, g.Max)
}
