package cdt

import "github.com/soypat/meshcsg/exact"

// mergedPoints snaps near-duplicate input vertices together (within eps)
// and returns, for every input vertex index, the output vertex it was
// merged to, plus the deduplicated point list with accumulated input ids.
func mergedPoints(pts []exact.Vec2, eps exact.R) (outPts []exact.Vec2, outIDs [][]int, vertMap []int) {
	eps2 := eps.Mul(eps)
	vertMap = make([]int, len(pts))
	for i, p := range pts {
		found := -1
		for j, q := range outPts {
			d := p.Sub(q)
			if d.LenSq().Cmp(eps2) <= 0 {
				found = j
				break
			}
		}
		if found >= 0 {
			vertMap[i] = found
			outIDs[found] = append(outIDs[found], i)
			continue
		}
		vertMap[i] = len(outPts)
		outPts = append(outPts, p)
		outIDs = append(outIDs, []int{i})
	}
	return outPts, outIDs, vertMap
}

// constraintEdge is a post-merge edge constraint: the endpoints (as merged
// vertex indices) plus every input id (edge index, or FaceEdgeOffset+CSR
// position) that produced it.
type constraintEdge struct {
	v0, v1 int
	ids    []int
}

// flattenFaceEdges walks Input.Faces into a CSR-style flattened array (one
// entry per face-edge occurrence, across all faces, in order) and returns
// the per-occurrence (v0,v1) pair in original vertex indices. The returned
// index i corresponds to synthetic input id faceEdgeOffset+i.
func flattenFaceEdges(faces [][]int) (v0, v1 []int) {
	for _, f := range faces {
		n := len(f)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			v0 = append(v0, f[i])
			v1 = append(v1, f[(i+1)%n])
		}
	}
	return v0, v1
}

// buildConstraints merges duplicate edges (after vertex-merge remapping)
// from both the explicit edge list and the flattened face-edge list into
// one deduplicated constraint set, recording provenance ids per the
// FaceEdgeOffset convention.
func buildConstraints(edges [][2]int, faces [][]int, vertMap []int) (cs []constraintEdge, faceEdgeOffset int) {
	faceEdgeOffset = len(edges)
	fv0, fv1 := flattenFaceEdges(faces)

	index := make(map[vpair]int)
	add := func(a, b int, id int) {
		av, bv := VertID(vertMap[a]), VertID(vertMap[b])
		if av == bv {
			return // degenerate (zero-length) edge, dropped per spec
		}
		key := canon(av, bv)
		if idx, ok := index[key]; ok {
			cs[idx].ids = append(cs[idx].ids, id)
			return
		}
		index[key] = len(cs)
		cs = append(cs, constraintEdge{v0: int(key.a), v1: int(key.b), ids: []int{id}})
	}
	for i, e := range edges {
		add(e[0], e[1], i)
	}
	for i := range fv0 {
		add(fv0[i], fv1[i], faceEdgeOffset+i)
	}
	return cs, faceEdgeOffset
}
