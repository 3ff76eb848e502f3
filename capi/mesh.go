package capi

import (
	"github.com/soypat/meshcsg/boolean"
	"github.com/soypat/meshcsg/exact"
	"github.com/soypat/meshcsg/isect"
)

// TriMesh is the flat triangle-soup layout every capi entry point
// exchanges: NVerts/NTris mirror the original Boolean_trimesh_input's
// explicit counts (rather than relying on len(Verts)/len(Tris)), so a
// caller marshalling from a foreign ABI can fill the counts and slices
// independently.
type TriMesh struct {
	NVerts int
	NTris  int
	Verts  [][3]float64
	Tris   [][3]int
}

// validate checks the struct's internal consistency (not its geometric
// validity, which the pipeline functions discover on their own). An empty
// mesh (NVerts==0, NTris==0) is valid input, not an error: it flows
// through to an empty output, matching the "Empty" scenario the original
// C-ABI entry points are tested against.
func (m *TriMesh) validate(argName string) *Error {
	if m == nil {
		return errf(InvalidInput, "%s is nil", argName)
	}
	if m.NVerts < 0 || m.NTris < 0 {
		return errf(InvalidInput, "%s has negative NVerts=%d or NTris=%d", argName, m.NVerts, m.NTris)
	}
	if m.NVerts != len(m.Verts) {
		return errf(InvalidInput, "%s.NVerts=%d does not match len(Verts)=%d", argName, m.NVerts, len(m.Verts))
	}
	if m.NTris != len(m.Tris) {
		return errf(InvalidInput, "%s.NTris=%d does not match len(Tris)=%d", argName, m.NTris, len(m.Tris))
	}
	for i, t := range m.Tris {
		for _, idx := range t {
			if idx < 0 || idx >= m.NVerts {
				return errf(InvalidInput, "%s.Tris[%d] references out-of-range vertex %d (NVerts=%d)", argName, i, idx, m.NVerts)
			}
		}
	}
	return nil
}

// toTriangles converts m into isect.Triangle values, origBase offsetting
// every Orig so several meshes' triangles can share one id space (used by
// trimesh_nary_intersect and boolean_mesh to tell operand meshes apart via
// ShapeFn). A degenerate (collinear or repeated-vertex) triangle is
// skipped rather than failing the whole mesh: it contributes nothing to
// the arrangement, the same way CDT(INSIDE) contributes nothing for the
// interior of a zero-area face.
func (m *TriMesh) toTriangles(origBase int) ([]isect.Triangle, *Error) {
	out := make([]isect.Triangle, 0, m.NTris)
	for i, t := range m.Tris {
		p := vec3(m.Verts[t[0]])
		q := vec3(m.Verts[t[1]])
		r := vec3(m.Verts[t[2]])
		pl, ok := exact.NewPlane(p, q, r)
		if !ok {
			continue
		}
		out = append(out, isect.Triangle{P: p, Q: q, R: r, Plane: pl, Orig: origBase + i})
	}
	return out, nil
}

func vec3(v [3]float64) exact.Vec3 {
	return exact.Vec3{X: exact.NewFloat64(v[0]), Y: exact.NewFloat64(v[1]), Z: exact.NewFloat64(v[2])}
}

// triMeshFromOutput flattens an isect.OutputTriangle soup (optionally
// passed through a boolean.Run filter upstream) into a TriMesh, deduping
// vertices by exact position via boolean.ToMesh.
func triMeshFromOutput(tris []isect.OutputTriangle) *TriMesh {
	verts, faces := boolean.ToMesh(tris)
	out := &TriMesh{NVerts: len(verts), NTris: len(faces), Tris: faces}
	out.Verts = make([][3]float64, len(verts))
	for i, v := range verts {
		x, y, z := v.Float64()
		out.Verts[i] = [3]float64{x, y, z}
	}
	return out
}
