package boolean

import (
	"fmt"
	"sort"

	"github.com/soypat/meshcsg/arena"
	"github.com/soypat/meshcsg/exact"
	"github.com/soypat/meshcsg/isect"
)

// collapseDuplicates groups arrangement triangles sharing the same three
// vertex positions (regardless of winding) and resolves each group:
// same-orientation duplicates (produced by exactly overlapping input
// faces, e.g. two copies of one shape) collapse to a single instance for
// every op; opposite-orientation pairs (a face and its exact mirror,
// produced when one operand's boundary exactly touches another's)
// additionally cancel out entirely under DIFFERENCE: the surviving
// same-orientation instance and one opposite-orientation member are both
// dropped. Under DIFFERENCE, any further opposite-orientation members are
// unresolved overlap: an error by default, since it usually signals
// non-manifold input the caller should know about, and passed through
// untouched when HoleTolerant is set. Under the other ops every
// opposite-orientation member is kept as it is (they are not collapsed
// among themselves).
func collapseDuplicates(tris []isect.OutputTriangle, op Op, opts Options) ([]isect.OutputTriangle, error) {
	groups := make(map[string][]int)
	for i, t := range tris {
		k := posKey(t)
		groups[k] = append(groups[k], i)
	}
	keep := make([]bool, len(tris))
	for i := range keep {
		keep[i] = true
	}
	for _, idxs := range groups {
		if len(idxs) == 1 {
			continue
		}
		same, opposite := partitionByOrientation(tris, idxs)
		if len(same) > 1 {
			for _, i := range same[1:] {
				keep[i] = false
			}
		}
		if op == DIFFERENCE && len(opposite) > 0 {
			keep[same[0]] = false
			keep[opposite[0]] = false
			opposite = opposite[1:]
		}
		if len(opposite) > 0 && !opts.HoleTolerant && op == DIFFERENCE {
			return nil, fmt.Errorf("boolean: unresolved coplanar overlap at vertex set %v (%d unmatched faces)", idxs, len(opposite))
		}
	}
	var out []isect.OutputTriangle
	for i, t := range tris {
		if keep[i] {
			out = append(out, t)
		}
	}
	return out, nil
}

// partitionByOrientation splits a same-position group into indices whose
// winding matches the first member (same) and indices whose winding is
// reversed relative to it (opposite).
func partitionByOrientation(tris []isect.OutputTriangle, idxs []int) (same, opposite []int) {
	refN := rawNormal(tris[idxs[0]])
	same = append(same, idxs[0])
	for _, i := range idxs[1:] {
		n := rawNormal(tris[i])
		if sameDirection(refN, n) {
			same = append(same, i)
		} else {
			opposite = append(opposite, i)
		}
	}
	return same, opposite
}

func sameDirection(a, b exact.Vec3) bool {
	axis := exact.DominantAxis(a)
	var av, bv exact.R
	switch axis {
	case 0:
		av, bv = a.X, b.X
	case 1:
		av, bv = a.Y, b.Y
	default:
		av, bv = a.Z, b.Z
	}
	return av.Sign() == bv.Sign()
}

// posKey is an order-independent exact key for a triangle's three vertex
// positions, used to find coplanar duplicates regardless of winding or
// which corner each input calls P/Q/R.
func posKey(t isect.OutputTriangle) string {
	keys := []string{vecKey(t.P), vecKey(t.Q), vecKey(t.R)}
	sort.Strings(keys)
	return keys[0] + "|" + keys[1] + "|" + keys[2]
}

func vecKey(v exact.Vec3) string {
	k := v.Key()
	return k[0] + "," + k[1] + "," + k[2]
}

// ToMesh flattens an arrangement (or a boolean Run result) into a
// deduplicated vertex list and index triangles. Vertex identity is owned
// by an arena.Arena (I5: two vertices with the same exact coordinate are
// the same vertex), so every operand and every intersection-generated
// triangle funnels through one AddOrFindVert table regardless of which
// input mesh or clipping step produced it; arena.Mesh then supplies the
// dense 0..n-1 vertex relabelling this function's flat [][3]int result
// needs.
func ToMesh(tris []isect.OutputTriangle) (verts []exact.Vec3, faces [][3]int) {
	ar := arena.New()
	ar.Reserve(3*len(tris), len(tris))
	var faceIDs []arena.FaceID
	for _, t := range tris {
		if _, ok := exact.NewPlane(t.P, t.Q, t.R); !ok {
			continue // degenerate after dedup (e.g. two corners merged); AddFace requires non-collinear verts
		}
		v0 := ar.AddOrFindVert(t.P, arena.NoOrig)
		v1 := ar.AddOrFindVert(t.Q, arena.NoOrig)
		v2 := ar.AddOrFindVert(t.R, arena.NoOrig)
		faceIDs = append(faceIDs, ar.AddFace([]arena.VertexID{v0, v1, v2}, t.Orig, nil, nil))
	}
	mesh := arena.NewMesh(ar, faceIDs)
	for _, it := range mesh.Triangles() {
		faces = append(faces, [3]int{it.V0, it.V1, it.V2})
	}
	verts = make([]exact.Vec3, len(mesh.DenseVerts()))
	for i, vid := range mesh.DenseVerts() {
		verts[i] = ar.Vert(vid).Co
	}
	return verts, faces
}
