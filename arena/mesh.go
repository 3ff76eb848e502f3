package arena

// Mesh is a sequence of Face handles into an Arena plus a lazily built
// dense vertex index over the exact vertex set reachable from those faces.
type Mesh struct {
	Arena *Arena
	Faces []FaceID

	vertIndex map[VertexID]int // exact vertex -> dense index
	denseVert []VertexID       // dense index -> exact vertex, inverse of above
}

// NewMesh wraps faces (all belonging to a) into a Mesh.
func NewMesh(a *Arena, faces []FaceID) *Mesh {
	return &Mesh{Arena: a, Faces: append([]FaceID(nil), faces...)}
}

// AddFace appends a face handle to the mesh and invalidates its vertex
// index (it is rebuilt lazily on next PopulateVert/LookupVert call).
func (m *Mesh) AddFace(f FaceID) {
	m.Faces = append(m.Faces, f)
	m.vertIndex = nil
	m.denseVert = nil
}

// PopulateVert (re)builds the dense 0..n-1 labelling of the exact vertex
// set reachable from m.Faces, in first-appearance order.
func (m *Mesh) PopulateVert() {
	m.vertIndex = make(map[VertexID]int)
	m.denseVert = m.denseVert[:0]
	for _, fid := range m.Faces {
		f := m.Arena.Face(fid)
		for _, v := range f.Verts {
			if _, ok := m.vertIndex[v]; !ok {
				m.vertIndex[v] = len(m.denseVert)
				m.denseVert = append(m.denseVert, v)
			}
		}
	}
}

// LookupVert returns the dense index of v, or (-1, false) if v is not
// reachable from m.Faces. The index is populated first if necessary.
func (m *Mesh) LookupVert(v VertexID) (int, bool) {
	if m.vertIndex == nil {
		m.PopulateVert()
	}
	idx, ok := m.vertIndex[v]
	if !ok {
		return -1, false
	}
	return idx, ok
}

// DenseVerts returns the dense index -> VertexID mapping, populating it
// first if necessary.
func (m *Mesh) DenseVerts() []VertexID {
	if m.vertIndex == nil {
		m.PopulateVert()
	}
	return m.denseVert
}

// EraseFacePositions rewrites face f with the positions flagged true in
// mask elided, allocating a new Face in the arena and returning its handle.
// len(mask) must equal the face's vertex count.
func (m *Mesh) EraseFacePositions(f FaceID, mask []bool) FaceID {
	face := m.Arena.Face(f)
	var verts []VertexID
	var edgeOrig []int
	var isIntersect []bool
	for i, v := range face.Verts {
		if mask[i] {
			continue
		}
		verts = append(verts, v)
		edgeOrig = append(edgeOrig, face.EdgeOrig[i])
		isIntersect = append(isIntersect, face.IsIntersect[i])
	}
	return m.Arena.AddFace(verts, face.Orig, edgeOrig, isIntersect)
}

// IndexedTriangle is the dense-index form of a three-vertex Face.
type IndexedTriangle struct {
	V0, V1, V2 int
	Orig       int
}

// Triangles returns the IndexedTriangle form of every 3-vertex face in m,
// using m's dense vertex index (populating it if necessary). Faces with
// other than 3 positions are skipped.
func (m *Mesh) Triangles() []IndexedTriangle {
	if m.vertIndex == nil {
		m.PopulateVert()
	}
	var out []IndexedTriangle
	for _, fid := range m.Faces {
		f := m.Arena.Face(fid)
		if len(f.Verts) != 3 {
			continue
		}
		i0, _ := m.LookupVert(f.Verts[0])
		i1, _ := m.LookupVert(f.Verts[1])
		i2, _ := m.LookupVert(f.Verts[2])
		out = append(out, IndexedTriangle{V0: i0, V1: i1, V2: i2, Orig: f.Orig})
	}
	return out
}
