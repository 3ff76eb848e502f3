package cdt

import "github.com/soypat/meshcsg/exact"

func findCornerByEdge(t *tri, e EdgeID) int {
	for c := 0; c < 3; c++ {
		if t.edge[c] == e {
			return c
		}
	}
	return -1
}

// canFlip reports whether the quad formed by the two triangles sharing
// edge e is strictly convex, i.e. whether swapping its diagonal yields two
// non-degenerate triangles.
func (ar *Arrangement) canFlip(e EdgeID) bool {
	f0, f1, c0, c1 := ar.triCorner(e)
	if f0 == NoFace || f1 == NoFace {
		return false // hull boundary edge
	}
	t0, t1 := &ar.tris[f0], &ar.tris[f1]
	v0, v1 := t0.verts[c0], t0.verts[(c0+1)%3]
	apex0 := t0.verts[(c0+2)%3]
	apex1 := t1.verts[(c1+2)%3]
	p := func(id VertID) exact.Vec2 { return ar.verts[id].Co }
	return exact.Orient2D(p(apex0), p(v0), p(apex1)) > 0 &&
		exact.Orient2D(p(apex1), p(v1), p(apex0)) > 0
}

// flip swaps the diagonal of the two triangles sharing edge e (v0,v1) for
// apex0-apex1, the other diagonal of their shared quad. The caller must
// have already verified canFlip(e) and that e is unconstrained.
func (ar *Arrangement) flip(e EdgeID) {
	f0, f1, c0, c1 := ar.triCorner(e)
	t0, t1 := &ar.tris[f0], &ar.tris[f1]
	v0, v1 := t0.verts[c0], t0.verts[(c0+1)%3]
	apex0 := t0.verts[(c0+2)%3]
	apex1 := t1.verts[(c1+2)%3]

	x1f, x1c := t1.nb[(c1+1)%3], -1
	x2f, x2c := t1.nb[(c1+2)%3], -1
	y1f, y1c := t0.nb[(c0+1)%3], -1
	y2f, y2c := t0.nb[(c0+2)%3], -1
	eX1, eX2 := t1.edge[(c1+1)%3], t1.edge[(c1+2)%3]
	eY1, eY2 := t0.edge[(c0+1)%3], t0.edge[(c0+2)%3]

	if x1f != NoFace {
		x1c = findCornerByEdge(&ar.tris[x1f], eX1)
	}
	if x2f != NoFace {
		x2c = findCornerByEdge(&ar.tris[x2f], eX2)
	}
	if y1f != NoFace {
		y1c = findCornerByEdge(&ar.tris[y1f], eY1)
	}
	if y2f != NoFace {
		y2c = findCornerByEdge(&ar.tris[y2f], eY2)
	}

	*t0 = tri{
		verts: [3]VertID{v0, apex1, apex0},
		nb:    [3]FaceID{x1f, f1, y2f},
		edge:  [3]EdgeID{eX1, e, eY2},
	}
	*t1 = tri{
		verts: [3]VertID{apex1, v1, apex0},
		nb:    [3]FaceID{x2f, y1f, f0},
		edge:  [3]EdgeID{eX2, eY1, e},
	}
	if x1f != NoFace {
		ar.tris[x1f].nb[x1c] = f0
	}
	if x2f != NoFace {
		ar.tris[x2f].nb[x2c] = f1
	}
	if y1f != NoFace {
		ar.tris[y1f].nb[y1c] = f1
	}
	if y2f != NoFace {
		ar.tris[y2f].nb[y2c] = f0
	}

	oldKey := canon(v0, v1)
	newKey := canon(apex0, apex1)
	delete(ar.edgeIndex, oldKey)
	ar.edgeIndex[newKey] = e
	ar.edges[e].V0, ar.edges[e].V1 = newKey.a, newKey.b

	ar.verts[v0].symedge = makeSymEdge(f0, 0)
	ar.verts[apex1].symedge = makeSymEdge(f0, 1)
	ar.verts[apex0].symedge = makeSymEdge(f0, 2)
	ar.verts[v1].symedge = makeSymEdge(f1, 1)
}
