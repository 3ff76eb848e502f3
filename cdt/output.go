package cdt

import "github.com/soypat/meshcsg/exact"

// centroid returns the (inexact-division, exact-otherwise) centroid of a
// live triangle, used only as a representative interior point for the
// inside/outside test below.
func (ar *Arrangement) centroid(f FaceID) exact.Vec2 {
	t := &ar.tris[f]
	three := exact.NewInt(3)
	p0, p1, p2 := ar.verts[t.verts[0]].Co, ar.verts[t.verts[1]].Co, ar.verts[t.verts[2]].Co
	x := p0.X.Add(p1.X).Add(p2.X).Quo(three)
	y := p0.Y.Add(p1.Y).Add(p2.Y).Quo(three)
	return exact.Vec2{X: x, Y: y}
}

// insideRegion reports whether p lies inside the region bounded by the
// constrained edges of ar, using parity of a rightward horizontal ray cast
// from p against every constrained edge.
func (ar *Arrangement) insideRegion(p exact.Vec2) bool {
	crossings := 0
	for i := range ar.edges {
		e := &ar.edges[i]
		if !e.Constrained {
			continue
		}
		a, b := ar.verts[e.V0].Co, ar.verts[e.V1].Co
		if a.Y.Cmp(b.Y) == 0 {
			continue // horizontal edge, never straddles a horizontal ray edge-on
		}
		lo, hi := a, b
		if lo.Y.Cmp(hi.Y) > 0 {
			lo, hi = hi, lo
		}
		if p.Y.Cmp(lo.Y) < 0 || p.Y.Cmp(hi.Y) >= 0 {
			continue
		}
		// x-intersection of the edge with the horizontal line y = p.Y:
		// x = lo.x + (hi.x-lo.x) * (p.y-lo.y)/(hi.y-lo.y)
		t := p.Y.Sub(lo.Y).Quo(hi.Y.Sub(lo.Y))
		xi := lo.X.Add(hi.X.Sub(lo.X).Mul(t))
		if xi.Cmp(p.X) > 0 {
			crossings++
		}
	}
	return crossings%2 == 1
}

// insideFaces returns, for every live (non-super, non-deleted) triangle,
// whether it is enclosed by constrained edges: a triangle is dropped when
// it can be reached from the hull boundary without crossing a constrained
// edge, so constrained edges interior to the region do not remove faces.
func (ar *Arrangement) insideFaces() []bool {
	kept := make([]bool, len(ar.tris))
	for fi := range ar.tris {
		kept[fi] = !ar.tris[fi].deleted
	}
	for changed := true; changed; {
		changed = false
		for fi, t := range ar.tris {
			for c := 0; c < 3 && kept[fi]; c++ {
				if !ar.edges[t.edge[c]].Constrained && (t.nb[c] == NoFace || !kept[t.nb[c]]) {
					kept[fi], changed = false, true
				}
			}
		}
	}
	return kept
}

func idsOf(in []int) []int {
	if len(in) == 0 {
		return nil
	}
	return append([]int(nil), in...)
}

// exportFull returns every live triangle, regardless of inside/outside
// classification.
func (ar *Arrangement) exportFull() *Output {
	kept := make([]bool, len(ar.tris))
	for fi := range ar.tris {
		kept[fi] = !ar.tris[fi].deleted
	}
	return ar.exportTriangles(kept)
}

// exportInside returns only the triangles classified as inside the
// constrained region, along with every edge incident to at least one of
// them.
func (ar *Arrangement) exportInside() *Output {
	return ar.exportTriangles(ar.insideFaces())
}

func (ar *Arrangement) exportTriangles(kept []bool) *Output {
	out := &Output{}
	vertOut := make([]int, len(ar.verts))
	for i := range vertOut {
		vertOut[i] = -1
	}
	vertOf := func(v VertID) int {
		v = ar.ResolveMerge(v)
		if vertOut[v] < 0 {
			vertOut[v] = len(out.Verts)
			out.Verts = append(out.Verts, ar.verts[v].Co)
			out.VertsOrig = append(out.VertsOrig, idsOf(ar.verts[v].InputIDs))
		}
		return vertOut[v]
	}
	for fi, k := range kept {
		if !k {
			continue
		}
		t := &ar.tris[fi]
		face := []int{vertOf(t.verts[0]), vertOf(t.verts[1]), vertOf(t.verts[2])}
		out.Faces = append(out.Faces, face)
		out.FacesOrig = append(out.FacesOrig, nil)
	}
	seenEdge := make(map[vpair]bool)
	for ei := range ar.edges {
		e := &ar.edges[ei]
		f0, f1, _, _ := ar.triCorner(EdgeID(ei))
		keptHere := (f0 != NoFace && kept[f0]) || (f1 != NoFace && kept[f1])
		if !keptHere {
			continue
		}
		key := canon(ar.ResolveMerge(e.V0), ar.ResolveMerge(e.V1))
		if seenEdge[key] {
			continue
		}
		seenEdge[key] = true
		out.Edges = append(out.Edges, [2]int{vertOf(e.V0), vertOf(e.V1)})
		out.EdgesOrig = append(out.EdgesOrig, idsOf(e.InputIDs))
	}
	return out
}

// exportConstraints merges the inside triangles across every unconstrained
// edge into connected regions and traces each region's boundary into a
// polygon face. Regions are assumed simply connected (no holes); a region
// with holes degrades to tracing whichever boundary loop is found first
// starting from its lowest-index boundary half-edge, which is a documented
// scope limitation rather than a rare-input crash.
func (ar *Arrangement) exportConstraints() *Output {
	kept := ar.insideFaces()
	n := len(ar.tris)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for fi := range ar.tris {
		if !kept[fi] || ar.tris[fi].deleted {
			continue
		}
		t := &ar.tris[fi]
		for c := 0; c < 3; c++ {
			e := t.edge[c]
			if ar.edges[e].Constrained {
				continue
			}
			nb := t.nb[c]
			if nb != NoFace && kept[nb] {
				union(fi, int(nb))
			}
		}
	}

	out := &Output{}
	vertOut := make([]int, len(ar.verts))
	for i := range vertOut {
		vertOut[i] = -1
	}
	vertOf := func(v VertID) int {
		v = ar.ResolveMerge(v)
		if vertOut[v] < 0 {
			vertOut[v] = len(out.Verts)
			out.Verts = append(out.Verts, ar.verts[v].Co)
			out.VertsOrig = append(out.VertsOrig, idsOf(ar.verts[v].InputIDs))
		}
		return vertOut[v]
	}

	// Collect, per region root, the boundary directed half-edges (kept
	// triangle on the left) keyed by origin vertex.
	type boundaryEdge struct {
		se   SymEdgeID
		v0   VertID
		v1   VertID
		orig []int
	}
	regionBoundary := make(map[int][]boundaryEdge)
	var order []int
	seenRoot := make(map[int]bool)
	for fi := range ar.tris {
		if !kept[fi] || ar.tris[fi].deleted {
			continue
		}
		root := find(fi)
		if !seenRoot[root] {
			seenRoot[root] = true
			order = append(order, root)
		}
		t := &ar.tris[fi]
		for c := 0; c < 3; c++ {
			e := t.edge[c]
			nb := t.nb[c]
			isBoundary := ar.edges[e].Constrained || nb == NoFace || !kept[nb]
			if !isBoundary {
				continue
			}
			se := makeSymEdge(FaceID(fi), c)
			regionBoundary[root] = append(regionBoundary[root], boundaryEdge{
				se: se, v0: t.verts[c], v1: t.verts[(c+1)%3], orig: ar.edges[e].InputIDs,
			})
		}
	}

	for _, root := range order {
		edges := regionBoundary[root]
		if len(edges) == 0 {
			continue
		}
		next := make(map[VertID]int) // v0 -> index into edges
		for i, be := range edges {
			next[be.v0] = i
		}
		used := make([]bool, len(edges))
		for start := range edges {
			if used[start] {
				continue
			}
			var loop []int
			cur := start
			for {
				if used[cur] {
					break
				}
				used[cur] = true
				loop = append(loop, cur)
				nv := edges[cur].v1
				ni, ok := next[nv]
				if !ok || ni == start {
					break
				}
				cur = ni
			}
			if len(loop) < 3 {
				continue
			}
			face := make([]int, len(loop))
			for i, li := range loop {
				face[i] = vertOf(edges[li].v0)
			}
			out.Faces = append(out.Faces, face)
			out.FacesOrig = append(out.FacesOrig, nil)
		}
	}

	seenEdge := make(map[vpair]bool)
	for ei := range ar.edges {
		e := &ar.edges[ei]
		f0, f1, _, _ := ar.triCorner(EdgeID(ei))
		keptHere := (f0 != NoFace && kept[f0]) || (f1 != NoFace && kept[f1])
		if !keptHere {
			continue
		}
		key := canon(ar.ResolveMerge(e.V0), ar.ResolveMerge(e.V1))
		if seenEdge[key] {
			continue
		}
		seenEdge[key] = true
		out.Edges = append(out.Edges, [2]int{vertOf(e.V0), vertOf(e.V1)})
		out.EdgesOrig = append(out.EdgesOrig, idsOf(e.InputIDs))
	}
	return out
}
