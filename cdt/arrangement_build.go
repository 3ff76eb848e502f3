package cdt

import "github.com/soypat/meshcsg/exact"

// buildArrangement turns a plain CCW triangle-index list over pts into an
// Arrangement: allocates Vert/Edge/tri pools and wires triangle-neighbor
// adjacency.
func buildArrangement(pts []exact.Vec2, vertIDs [][]int, tris [][3]int) *Arrangement {
	a := &Arrangement{
		edgeIndex: make(map[vpair]EdgeID),
	}
	a.verts = make([]Vert, len(pts))
	for i, p := range pts {
		a.verts[i] = Vert{Co: p, InputIDs: vertIDs[i], MergeToIndex: -1, symedge: NoSymEdge}
	}
	a.tris = make([]tri, len(tris))
	for i, t := range tris {
		a.tris[i] = tri{
			verts: [3]VertID{VertID(t[0]), VertID(t[1]), VertID(t[2])},
			nb:    [3]FaceID{NoFace, NoFace, NoFace},
			edge:  [3]EdgeID{-1, -1, -1},
		}
	}
	// Wire neighbors and allocate Edge records: first time an (unordered)
	// vertex pair is seen, remember (face,corner); second time, link both
	// triangles as neighbors and allocate the shared Edge.
	type firstSeen struct {
		face   FaceID
		corner int
	}
	seen := make(map[vpair]firstSeen)
	for fi := range a.tris {
		t := &a.tris[fi]
		for c := 0; c < 3; c++ {
			v0, v1 := t.verts[c], t.verts[(c+1)%3]
			key := canon(v0, v1)
			if fs, ok := seen[key]; ok {
				other := &a.tris[fs.face]
				t.nb[c] = fs.face
				other.nb[fs.corner] = FaceID(fi)
				eid := a.edgeIndex[key]
				t.edge[c] = eid
				other.edge[fs.corner] = eid
				delete(seen, key)
			} else {
				seen[key] = firstSeen{face: FaceID(fi), corner: c}
				eid := EdgeID(len(a.edges))
				a.edges = append(a.edges, Edge{V0: key.a, V1: key.b})
				a.edgeIndex[key] = eid
				t.edge[c] = eid
			}
			if a.verts[v0].symedge == NoSymEdge {
				a.verts[v0].symedge = makeSymEdge(FaceID(fi), c)
			}
		}
	}
	return a
}

// findEdge returns the EdgeID between a and b, if the triangulation
// currently has a triangle edge directly connecting them.
func (ar *Arrangement) findEdge(a, b VertID) (EdgeID, bool) {
	id, ok := ar.edgeIndex[canon(a, b)]
	return id, ok
}

// triCorner returns the (up to two) faces incident to edge e, and
// the corner of each at which the edge starts going a->b.
func (ar *Arrangement) triCorner(e EdgeID) (f0, f1 FaceID, c0, c1 int) {
	f0, f1 = NoFace, NoFace
	for fi := range ar.tris {
		t := &ar.tris[fi]
		if t.deleted {
			continue
		}
		for c := 0; c < 3; c++ {
			if t.edge[c] == e {
				if f0 == NoFace {
					f0, c0 = FaceID(fi), c
				} else {
					f1, c1 = FaceID(fi), c
				}
			}
		}
	}
	return
}
