package capi

import (
	"github.com/soypat/meshcsg/boolean"
	"github.com/soypat/meshcsg/isect"
)

// ShapeFn maps a triangle's Orig id in the combined arrangement (the
// position of its originating triangle in the concatenation of every
// operand's Tris, in argument order) to a shape id in [0,nshapes),
// mirroring boolean.ShapeFn at this boundary.
type ShapeFn = boolean.ShapeFn

// TrimeshSelfIntersect runs the self-intersection/retriangulation pipeline
// over a single closed triangle soup and returns the resolved arrangement
// as a flat mesh. It corresponds to trimesh_self_intersect: there is no
// separate "arena" parameter here, since the exact/isect packages return
// freshly allocated Go values rather than writing into a caller-owned
// pool.
func TrimeshSelfIntersect(in *TriMesh) (*TriMesh, *Error) {
	if err := in.validate("in"); err != nil {
		return nil, err
	}
	tris, err := in.toTriangles(0)
	if err != nil {
		return nil, err
	}
	arrangement, serr := isect.SelfIntersect(tris)
	if serr != nil {
		return nil, errf(InternalNumerical, "self-intersect: %v", serr)
	}
	return triMeshFromOutput(arrangement), nil
}

// naryArrangement runs the self-intersection pipeline over the
// concatenation of every mesh in ins (in argument order) and returns the
// resolved combined arrangement plus a ShapeFn classifying every output
// triangle's Orig back to its originating mesh's index in ins.
//
// useSelf mirrors the original's "also resolve self-intersections within
// one shape" flag; this implementation always resolves every pairwise
// intersection regardless of shape (isect.SelfIntersect has no per-shape
// filtering), so useSelf has no additional effect here beyond documenting
// intent — see DESIGN.md.
func naryArrangement(ins []*TriMesh, useSelf bool) ([]isect.OutputTriangle, ShapeFn, *Error) {
	_ = useSelf
	if len(ins) == 0 {
		return nil, nil, errf(InvalidInput, "need at least one input mesh")
	}
	var all []isect.Triangle
	origRanges := make([][2]int, len(ins)) // [start,end) of Orig per mesh
	base := 0
	for i, in := range ins {
		if err := in.validate("ins[]"); err != nil {
			return nil, nil, err
		}
		tris, err := in.toTriangles(base)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, tris...)
		origRanges[i] = [2]int{base, base + in.NTris}
		base += in.NTris
	}
	arrangement, serr := isect.SelfIntersect(all)
	if serr != nil {
		return nil, nil, errf(InternalNumerical, "nary-intersect: %v", serr)
	}
	return arrangement, shapeFnFromRanges(origRanges), nil
}

// TrimeshNaryIntersect is the public, flat-mesh-returning form of
// naryArrangement, corresponding to trimesh_nary_intersect. The returned
// ShapeFn classifies Orig ids of the *input* triangles (0..sum(NTris)-1 in
// argument order), not the deduplicated output mesh's triangle indices,
// since a caller classifying the result needs the original per-shape
// authorship, which vertex/face dedup does not preserve 1:1.
func TrimeshNaryIntersect(ins []*TriMesh, useSelf bool) (*TriMesh, ShapeFn, *Error) {
	arrangement, shapeFn, err := naryArrangement(ins, useSelf)
	if err != nil {
		return nil, nil, err
	}
	return triMeshFromOutput(arrangement), shapeFn, nil
}

// BooleanMesh runs the n-ary winding-number boolean over the concatenation
// of ins and returns the filtered result, corresponding to boolean_mesh.
func BooleanMesh(ins []*TriMesh, op boolean.Op, useSelf, holeTolerant bool) (*TriMesh, *Error) {
	arrangement, shapeFn, err := naryArrangement(ins, useSelf)
	if err != nil {
		return nil, err
	}
	filtered, berr := boolean.Run(arrangement, len(ins), shapeFn, op, boolean.Options{HoleTolerant: holeTolerant})
	if berr != nil {
		// boolean.Run's only error path is an unresolved coplanar overlap
		// it refused to guess at; that is bad input topology, not a
		// numerical failure of the pipeline itself.
		return nil, errf(BadTopology, "boolean: %v", berr)
	}
	return triMeshFromOutput(filtered), nil
}

func shapeFnFromRanges(ranges [][2]int) ShapeFn {
	return func(orig int) int {
		for i, r := range ranges {
			if orig >= r[0] && orig < r[1] {
				return i
			}
		}
		return -1
	}
}
