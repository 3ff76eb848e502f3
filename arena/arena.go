// Package arena owns all vertex and face storage for one arrangement
// computation. It guarantees vertex deduplication by exact coordinate and
// hands out stable handles keyed by creation index, mirroring the teacher
// repo's convention of growable slices plus lightweight index handles
// (see soypat/gsdf's Builder, and the pool-indexed CDT arena it was
// adapted from) rather than pointer graphs.
package arena

import (
	"fmt"

	"github.com/soypat/meshcsg/exact"
)

// VertexID identifies a Vertex within an Arena by creation index: the
// first vertex AddOrFindVert creates gets id 0.
type VertexID int32

// NoOrig marks a Vertex or Face that has no original input identifier.
const NoOrig = -1

// Vertex is an arena-owned point. Identity is its exact coordinate: two
// vertices with the same Co are the same Vertex (I5 of the data model).
type Vertex struct {
	Co    exact.Vec3 // exact coordinate; identity
	CoF   [3]float32 // floating shadow, for BVH/SDF use only
	ID    VertexID
	Orig  int // input vertex id, or NoOrig
}

// FaceID identifies a Face within an Arena.
type FaceID int32

// Face is an arena-owned polygon: an ordered (CCW around Plane.N) sequence
// of vertex handles, plus per-edge provenance used by the self-intersect
// driver and CDT back-reference machinery.
type Face struct {
	Verts       []VertexID
	EdgeOrig    []int  // per-edge input-edge id, parallel to Verts
	IsIntersect []bool // per-edge: true if this edge came from subdivision
	Plane       exact.Plane
	ID          FaceID
	Orig        int // input triangle/face id, or NoOrig
}

// NumPos returns the number of vertex positions (polygon size).
func (f *Face) NumPos() int { return len(f.Verts) }

// NextPos returns (i+1) mod size.
func (f *Face) NextPos(i int) int { return (i + 1) % len(f.Verts) }

// PrevPos returns (i-1) mod size.
func (f *Face) PrevPos(i int) int { return (i - 1 + len(f.Verts)) % len(f.Verts) }

// Arena owns all Vertex and Face storage for one computation.
type Arena struct {
	verts   []Vertex
	faces   []Face
	byCoord map[[3]string]VertexID
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{byCoord: make(map[[3]string]VertexID)}
}

// Reserve hints at the eventual vertex/face counts, avoiding slice growth
// churn on large inputs.
func (a *Arena) Reserve(nv, nf int) {
	if cap(a.verts)-len(a.verts) < nv {
		grown := make([]Vertex, len(a.verts), len(a.verts)+nv)
		copy(grown, a.verts)
		a.verts = grown
	}
	if cap(a.faces)-len(a.faces) < nf {
		grown := make([]Face, len(a.faces), len(a.faces)+nf)
		copy(grown, a.faces)
		a.faces = grown
	}
}

// FindVert returns the handle of the vertex with exact coordinate co, if
// one has already been added.
func (a *Arena) FindVert(co exact.Vec3) (VertexID, bool) {
	id, ok := a.byCoord[co.Key()]
	return id, ok
}

// AddOrFindVert returns the existing handle for co if any vertex with that
// exact coordinate already exists (orig is then ignored); otherwise it
// allocates a new vertex with the next creation index as id.
func (a *Arena) AddOrFindVert(co exact.Vec3, orig int) VertexID {
	if id, ok := a.FindVert(co); ok {
		return id
	}
	id := VertexID(len(a.verts))
	x, y, z := co.Float64()
	a.verts = append(a.verts, Vertex{
		Co:   co,
		CoF:  [3]float32{float32(x), float32(y), float32(z)},
		ID:   id,
		Orig: orig,
	})
	a.byCoord[co.Key()] = id
	return id
}

// Vert returns the vertex for handle id.
func (a *Arena) Vert(id VertexID) *Vertex { return &a.verts[id] }

// NumVerts returns the number of vertices currently in the arena.
func (a *Arena) NumVerts() int { return len(a.verts) }

// AddFace allocates a new face from verts, computing its plane from the
// first three non-collinear vertices. Faces are never deduplicated.
// edgeOrig/isIntersect may be nil, in which case they default to NoOrig /
// false for every edge. Panics if verts has fewer than 3 positions or no
// three of them are non-collinear (programmer error, per §4.2).
func (a *Arena) AddFace(verts []VertexID, orig int, edgeOrig []int, isIntersect []bool) FaceID {
	if len(verts) < 3 {
		panic(fmt.Sprintf("arena: AddFace needs >= 3 verts, got %d", len(verts)))
	}
	plane, ok := a.facePlane(verts)
	if !ok {
		panic("arena: AddFace requires three non-collinear vertices")
	}
	if edgeOrig == nil {
		edgeOrig = make([]int, len(verts))
		for i := range edgeOrig {
			edgeOrig[i] = NoOrig
		}
	}
	if isIntersect == nil {
		isIntersect = make([]bool, len(verts))
	}
	id := FaceID(len(a.faces))
	vcopy := append([]VertexID(nil), verts...)
	a.faces = append(a.faces, Face{
		Verts:       vcopy,
		EdgeOrig:    edgeOrig,
		IsIntersect: isIntersect,
		Plane:       plane,
		ID:          id,
		Orig:        orig,
	})
	return id
}

// facePlane finds the first triple of non-collinear vertices among verts
// and returns their plane.
func (a *Arena) facePlane(verts []VertexID) (exact.Plane, bool) {
	if len(verts) < 3 {
		return exact.Plane{}, false
	}
	v0 := a.verts[verts[0]].Co
	for i := 1; i < len(verts)-1; i++ {
		v1 := a.verts[verts[i]].Co
		v2 := a.verts[verts[i+1]].Co
		if p, ok := exact.NewPlane(v0, v1, v2); ok {
			return p, true
		}
	}
	return exact.Plane{}, false
}

// Face returns the face for handle id.
func (a *Arena) Face(id FaceID) *Face { return &a.faces[id] }

// NumFaces returns the number of faces currently in the arena.
func (a *Arena) NumFaces() int { return len(a.faces) }
