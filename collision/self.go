package collision

import (
	"math"

	"github.com/soypat/meshcsg/bvh"
	"github.com/soypat/meshcsg/embed"
)

// FaceAdjacency maps every facet vertex index to the triangle indices
// incident to it, used to exclude a vertex's own neighbourhood from its
// self-collision nearest-triangle query.
func FaceAdjacency(faces [][3]int, nverts int) [][]int {
	adj := make([][]int, nverts)
	for fi, f := range faces {
		for _, v := range f {
			adj[v] = append(adj[v], fi)
		}
	}
	return adj
}

// SelfCollisionTest finds, for every facet vertex of an embedded mesh,
// whether it has penetrated another part of its own tet lattice (via
// tetTree, a PointInTetMesh query skipping the vertex's own containing
// tet's corners) or come within thickness of another part of its own
// surface (via faceTree, a nearest-triangle query skipping its own
// incident faces). X gives the current lattice vertex positions;
// faceAdj is FaceAdjacency's output.
func SelfCollisionTest(em *embed.EmbeddedMesh, X [][3]float64, tetTree, faceTree *bvh.Tree, faceAdj [][]int, thickness float64, nthreads int) []Row {
	hits := make([]*Row, len(em.FacetVerts))
	ParallelStripe(len(em.FacetVerts), nthreads, func(i int) {
		p := em.FacetPosition(i, X)
		skipVerts := make(map[int]bool, 4)
		for _, v := range em.LatticeT[em.Tet[i]] {
			skipVerts[v] = true
		}
		if tet := bvh.PointInTetMeshTraverse(tetTree, p, X, em.LatticeT, skipVerts, nil); tet >= 0 {
			hits[i] = selfPenetrationRow(em, i, p, tet, X)
			return
		}
		skipTris := make(map[int]bool, len(faceAdj[i]))
		for _, f := range faceAdj[i] {
			skipTris[f] = true
		}
		nearestTri, nearestPt := bvh.NearestTriangleTraverse(faceTree, p, em.FacetVerts, em.FacetFaces, skipTris)
		if nearestTri < 0 {
			return
		}
		d := distance(p, nearestPt)
		if d >= thickness {
			return
		}
		n := normalize(sub(p, nearestPt))
		cols, weights := em.LatticeT[em.Tet[i]], em.Bary[i]
		r := barycentricRow(cols, weights, n, thickness, thickness)
		hitVerts := em.FacetFaces[nearestTri]
		pairBary := triBary3D(em.FacetVerts[hitVerts[0]], em.FacetVerts[hitVerts[1]], em.FacetVerts[hitVerts[2]], nearestPt)
		for k, hv := range hitVerts {
			r = r.appendStencil(em.LatticeT[em.Tet[hv]], em.Bary[hv], -pairBary[k])
		}
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

func selfPenetrationRow(em *embed.EmbeddedMesh, i int, p [3]float64, tet int, X [][3]float64) *Row {
	// Push the penetrating vertex out along the direction to the
	// penetrated tet's centroid, the cheapest well-defined escape
	// direction available without a full contact-manifold search.
	c := tetCentroid(em.LatticeT[tet], X)
	n := normalize(sub(p, c))
	offset := n[0]*p[0] + n[1]*p[1] + n[2]*p[2]
	cols, weights := em.LatticeT[em.Tet[i]], em.Bary[i]
	r := barycentricRow(cols, weights, n, offset, 0)
	return &r
}

func tetCentroid(t [4]int, X [][3]float64) [3]float64 {
	var c [3]float64
	for _, v := range t {
		p := X[v]
		c[0] += p[0] / 4
		c[1] += p[1] / 4
		c[2] += p[2] / 4
	}
	return c
}

// triBary3D returns the barycentric weights of p with respect to triangle
// a,b,c, assuming p lies on the triangle's plane (as bvh's nearest-point
// query guarantees). Used to re-express a contact point found against a
// snapshot position as a live combination of the hit triangle's own
// lattice embedding stencils, rather than a frozen offset.
func triBary3D(a, b, c, p [3]float64) [3]float64 {
	v0, v1, v2 := sub(b, a), sub(c, a), sub(p, a)
	d00 := dot(v0, v0)
	d01 := dot(v0, v1)
	d11 := dot(v1, v1)
	d20 := dot(v2, v0)
	d21 := dot(v2, v1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return [3]float64{1, 0, 0}
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return [3]float64{u, v, w}
}

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func distance(a, b [3]float64) float64 {
	d := sub(a, b)
	return math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
}
