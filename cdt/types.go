// Package cdt implements 2-D Constrained Delaunay Triangulation.
//
// The public data model follows the half-edge description used throughout
// this module's design (SymEdge.next/rot, CDTVert/CDTEdge/CDTFace owning
// input_ids lists, merge_to_index for coincident-vertex resolution): see
// Next, Rot, Sym and Prev below. Internally, rather than a pointer-chasing
// quad-edge graph, the arrangement is stored as a pool of triangles with
// explicit neighbor links (a triangle-neighbor mesh); SymEdgeID is a plain
// index into that pool (triangle*3 + corner) so the usual "don't store
// pointers into a growable slice" hazard never arises -- every cross
// reference in this package is a stable integer handle.
package cdt

import "github.com/soypat/meshcsg/exact"

// VertID indexes into Arrangement.verts.
type VertID int32

// FaceID indexes into Arrangement.tris; NoFace is the unbounded outer face.
type FaceID int32

const NoFace FaceID = -1

// EdgeID indexes into Arrangement.edges.
type EdgeID int32

// SymEdgeID encodes a directed edge as 3*FaceID + corner (corner in 0..2),
// running from tri.verts[corner] to tri.verts[(corner+1)%3].
type SymEdgeID int32

const NoSymEdge SymEdgeID = -1

func makeSymEdge(f FaceID, corner int) SymEdgeID { return SymEdgeID(int32(f)*3 + int32(corner)) }
func (se SymEdgeID) face() FaceID                { return FaceID(int32(se) / 3) }
func (se SymEdgeID) corner() int                 { return int(int32(se) % 3) }

// Vert is a CDT vertex: its 2-D coordinate plus provenance bookkeeping.
type Vert struct {
	Co           exact.Vec2
	InputIDs     []int
	MergeToIndex int32 // -1 if this is the canonical (surviving) vertex
	VisitIndex   int
	symedge      SymEdgeID
}

// Edge is a CDT (undirected) edge: its two endpoint vertices, its
// provenance, and whether it must survive as a constraint. The triangles
// sharing it are found through the tri pool (tri.edge/tri.nb), not stored
// here.
type Edge struct {
	V0, V1      VertID
	InputIDs    []int
	Constrained bool
}

// tri is the internal pool element: a triangle plus its three neighbors
// (nb[i] is the triangle across the edge verts[i]-verts[(i+1)%3], or
// NoFace on the hull boundary) and the EdgeID of each of its edges.
type tri struct {
	verts   [3]VertID
	nb      [3]FaceID
	edge    [3]EdgeID
	deleted bool
	visit   int
}

// Arrangement owns all CDT vertex/edge/triangle storage for one
// triangulation. It is built by Triangulate and is not safe for concurrent
// mutation (the CDT is specified as single-threaded, see §5).
type Arrangement struct {
	verts []Vert
	edges []Edge
	tris  []tri

	edgeIndex map[vpair]EdgeID
}

type vpair struct{ a, b VertID }

func canon(a, b VertID) vpair {
	if a > b {
		a, b = b, a
	}
	return vpair{a, b}
}

// NumVerts, NumFaces, NumEdges report pool sizes (including logically
// deleted/merged elements).
func (a *Arrangement) NumVerts() int { return len(a.verts) }
func (a *Arrangement) NumFaces() int { return len(a.tris) }
func (a *Arrangement) NumEdges() int { return len(a.edges) }

func (a *Arrangement) Vert(id VertID) *Vert { return &a.verts[id] }
func (a *Arrangement) Edge(id EdgeID) *Edge { return &a.edges[id] }

// ResolveMerge returns the canonical vertex id that i merged into (i
// itself if it was never merged).
func (a *Arrangement) ResolveMerge(i VertID) VertID {
	v := &a.verts[i]
	if v.MergeToIndex < 0 {
		return i
	}
	return VertID(v.MergeToIndex)
}

// Next returns the next SymEdge CCW around se's face.
func (a *Arrangement) Next(se SymEdgeID) SymEdgeID {
	return makeSymEdge(se.face(), (se.corner()+1)%3)
}

// prevInFace returns the SymEdge whose Next is se (CW within the face).
func (a *Arrangement) prevInFace(se SymEdgeID) SymEdgeID {
	return makeSymEdge(se.face(), (se.corner()+2)%3)
}

// Sym returns the opposite directed SymEdge for the same undirected edge,
// or NoSymEdge if se is on the hull boundary.
func (a *Arrangement) Sym(se SymEdgeID) SymEdgeID {
	t := &a.tris[se.face()]
	c := se.corner()
	nbf := t.nb[c]
	if nbf == NoFace {
		return NoSymEdge
	}
	v0, v1 := t.verts[c], t.verts[(c+1)%3]
	nb := &a.tris[nbf]
	for i := 0; i < 3; i++ {
		if nb.verts[i] == v1 && nb.verts[(i+1)%3] == v0 {
			return makeSymEdge(nbf, i)
		}
	}
	return NoSymEdge
}

// Rot returns the next SymEdge CCW around se's origin vertex: sym =
// next.rot holds by construction of Sym/Next/prevInFace.
func (a *Arrangement) Rot(se SymEdgeID) SymEdgeID {
	return a.Sym(a.prevInFace(se))
}

// Prev returns rot.next.rot(se), the SymEdge preceding se in face order.
func (a *Arrangement) Prev(se SymEdgeID) SymEdgeID {
	return a.Rot(a.Next(a.Rot(se)))
}

// OriginVert returns the vertex se points away from.
func (a *Arrangement) OriginVert(se SymEdgeID) VertID {
	t := &a.tris[se.face()]
	return t.verts[se.corner()]
}

// Face returns the CDTFace (triangle) se belongs to.
func (se SymEdgeID) Face() FaceID { return se.face() }

// EdgeOf returns the EdgeID se is a directed half of.
func (a *Arrangement) EdgeOf(se SymEdgeID) EdgeID {
	return a.tris[se.face()].edge[se.corner()]
}
