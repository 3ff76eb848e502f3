package embed

import (
	"fmt"
	"math"

	"github.com/soypat/meshcsg/bvh"
)

// EmbeddedMesh is a surface (facet) mesh embedded inside a coarser
// tetrahedral lattice: every facet vertex is expressed as a barycentric
// combination of one lattice tet's four corners, so the lattice can be
// simulated and the facet dragged along for rendering/collision.
type EmbeddedMesh struct {
	FacetVerts [][3]float64
	FacetFaces [][3]int

	LatticeX [][3]float64
	LatticeT [][4]int

	// Tet[i]/Bary[i] give the containing tet and barycentric weights for
	// FacetVerts[i]; Bary[i] sums to 1 and all components lie in
	// [-embedTol, 1+embedTol].
	Tet  []int
	Bary [][4]float64

	// Mass holds the lumped mass of every lattice vertex, set by
	// ComputeMasses.
	Mass []float64

	Pins map[int]Pin

	// Warnings accumulates non-fatal issues found while building the
	// lattice (e.g. lattice vertices unreferenced by any tet).
	Warnings []string
}

const embedTol = 1e-6

// gridIdx is an exact integer key for a lattice grid corner, used to
// merge duplicate corners shared between adjacent cube cells without any
// floating point comparison.
type gridIdx [3]int

// Build constructs the tetrahedral lattice enclosing facetVerts/facetFaces
// at subdivision level subdiv (2^subdiv cells along the surface's longest
// bounding-box axis) and embeds every facet vertex into it.
func Build(facetVerts [][3]float64, facetFaces [][3]int, subdiv int) (*EmbeddedMesh, error) {
	if len(facetVerts) == 0 || len(facetFaces) == 0 {
		return nil, fmt.Errorf("embed: empty facet mesh")
	}
	if subdiv < 0 {
		return nil, fmt.Errorf("embed: negative subdivision level %d", subdiv)
	}
	bbMin, bbMax := boundsOf(facetVerts)
	span := [3]float64{bbMax[0] - bbMin[0], bbMax[1] - bbMin[1], bbMax[2] - bbMin[2]}
	longest := math.Max(span[0], math.Max(span[1], span[2]))
	if longest <= 0 {
		return nil, fmt.Errorf("embed: degenerate (zero-volume) bounding box")
	}
	cell := longest / math.Exp2(float64(subdiv))
	// Pad by one cell so the lattice fully encloses the surface even when
	// a facet vertex sits exactly on the bounding box boundary.
	bbMin = [3]float64{bbMin[0] - cell, bbMin[1] - cell, bbMin[2] - cell}
	dims := [3]int{
		int(math.Ceil(span[0]/cell)) + 2,
		int(math.Ceil(span[1]/cell)) + 2,
		int(math.Ceil(span[2]/cell)) + 2,
	}

	surfTree := buildSurfaceTree(facetFaces, facetVerts)

	em := &EmbeddedMesh{FacetVerts: facetVerts, FacetFaces: facetFaces}
	vertIdx := make(map[gridIdx]int)
	corner := func(gi gridIdx) int {
		if id, ok := vertIdx[gi]; ok {
			return id
		}
		id := len(em.LatticeX)
		em.LatticeX = append(em.LatticeX, [3]float64{
			bbMin[0] + float64(gi[0])*cell,
			bbMin[1] + float64(gi[1])*cell,
			bbMin[2] + float64(gi[2])*cell,
		})
		vertIdx[gi] = id
		return id
	}

	for i := 0; i < dims[0]; i++ {
		for j := 0; j < dims[1]; j++ {
			for k := 0; k < dims[2]; k++ {
				center := [3]float64{
					bbMin[0] + (float64(i)+0.5)*cell,
					bbMin[1] + (float64(j)+0.5)*cell,
					bbMin[2] + (float64(k)+0.5)*cell,
				}
				if !bvh.PointInTriangleMeshTraverse(surfTree, center, facetVerts, facetFaces) {
					continue
				}
				var cubeCorners [8]int
				for c := 0; c < 8; c++ {
					off := cubeCornerOffset(c)
					cubeCorners[c] = corner(gridIdx{i + off[0], j + off[1], k + off[2]})
				}
				for _, tet := range kuhnTets {
					em.LatticeT = append(em.LatticeT, [4]int{
						cubeCorners[tet[0]], cubeCorners[tet[1]], cubeCorners[tet[2]], cubeCorners[tet[3]],
					})
				}
			}
		}
	}
	if len(em.LatticeT) == 0 {
		return nil, fmt.Errorf("embed: no lattice cell classified inside the surface")
	}

	latTree := buildTetTree(em.LatticeT, em.LatticeX)
	em.Tet = make([]int, len(facetVerts))
	em.Bary = make([][4]float64, len(facetVerts))
	for i, p := range facetVerts {
		tet, bary, err := embedPoint(p, em.LatticeX, em.LatticeT, latTree)
		if err != nil {
			return nil, fmt.Errorf("embed: facet vertex %d: %w", i, err)
		}
		em.Tet[i] = tet
		em.Bary[i] = bary
	}
	return em, nil
}

func boundsOf(pts [][3]float64) (min, max [3]float64) {
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		for a := 0; a < 3; a++ {
			if p[a] < min[a] {
				min[a] = p[a]
			}
			if p[a] > max[a] {
				max[a] = p[a]
			}
		}
	}
	return min, max
}

func buildSurfaceTree(faces [][3]int, verts [][3]float64) *bvh.Tree {
	boxes := make([]bvh.Box, len(faces))
	for i, f := range faces {
		b := bvh.EmptyBox()
		b = b.Extend(verts[f[0]])
		b = b.Extend(verts[f[1]])
		b = b.Extend(verts[f[2]])
		boxes[i] = b
	}
	return bvh.Init(boxes)
}

func buildTetTree(tets [][4]int, X [][3]float64) *bvh.Tree {
	boxes := make([]bvh.Box, len(tets))
	for i, t := range tets {
		b := bvh.EmptyBox()
		for _, v := range t {
			b = b.Extend(X[v])
		}
		boxes[i] = b
	}
	return bvh.Init(boxes)
}

// embedPoint finds the lattice tet containing p and its barycentric
// coordinates there. If no tet's BVH box contains p exactly (boundary
// rounding), it falls back to the tet minimizing the barycentric
// infeasibility, accepting it only within embedTol.
func embedPoint(p [3]float64, X [][3]float64, T [][4]int, tree *bvh.Tree) (int, [4]float64, error) {
	idx := bvh.PointInTetMeshTraverse(tree, p, X, T, nil, nil)
	if idx >= 0 {
		bary := tetBary(p, X[T[idx][0]], X[T[idx][1]], X[T[idx][2]], X[T[idx][3]])
		return idx, bary, nil
	}
	bestTet, bestBary, bestSlack := -1, [4]float64{}, math.Inf(1)
	for ti, t := range T {
		bary := tetBary(p, X[t[0]], X[t[1]], X[t[2]], X[t[3]])
		slack := 0.0
		for _, b := range bary {
			if b < 0 {
				slack += -b
			} else if b > 1 {
				slack += b - 1
			}
		}
		if slack < bestSlack {
			bestSlack, bestTet, bestBary = slack, ti, bary
		}
	}
	if bestTet < 0 || bestSlack > embedTol {
		return -1, [4]float64{}, fmt.Errorf("no containing lattice tet within tolerance (slack %g)", bestSlack)
	}
	return bestTet, bestBary, nil
}

// tetBary returns the barycentric coordinates of p with respect to tet
// (v0,v1,v2,v3) via signed-volume ratios.
func tetBary(p, v0, v1, v2, v3 [3]float64) [4]float64 {
	vol := func(a, b, c, d [3]float64) float64 {
		ab := sub3(b, a)
		ac := sub3(c, a)
		ad := sub3(d, a)
		return dot3(ab, cross3(ac, ad))
	}
	vTot := vol(v0, v1, v2, v3)
	if vTot == 0 {
		return [4]float64{0.25, 0.25, 0.25, 0.25}
	}
	b0 := vol(p, v1, v2, v3) / vTot
	b1 := vol(v0, p, v2, v3) / vTot
	b2 := vol(v0, v1, p, v3) / vTot
	b3 := vol(v0, v1, v2, p) / vTot
	return [4]float64{b0, b1, b2, b3}
}

func sub3(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func dot3(a, b [3]float64) float64    { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// FacetPosition reconstructs the current (possibly deformed) world
// position of facet vertex i from its barycentric embedding in the
// current lattice vertex positions X.
func (em *EmbeddedMesh) FacetPosition(i int, X [][3]float64) [3]float64 {
	tet := em.LatticeT[em.Tet[i]]
	bary := em.Bary[i]
	var out [3]float64
	for c := 0; c < 4; c++ {
		v := X[tet[c]]
		w := bary[c]
		out[0] += w * v[0]
		out[1] += w * v[1]
		out[2] += w * v[2]
	}
	return out
}
