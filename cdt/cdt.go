// Package cdt's entry point: Triangulate drives the full pipeline from a
// raw point/edge/face Input to a classified Output.
package cdt

import "fmt"

// emptyOutput returns a structurally empty, non-nil *Output for input that
// cannot be triangulated for geometric reasons (too few vertices, every
// vertex merging to fewer than 3 distinct points, or a collinear/degenerate
// point set). This package never raises for geometric reasons: bad
// topology is reported as zero triangles, not an error, mirroring the
// original's "skip the degenerate element, keep going" convention.
func emptyOutput(nEdges int) *Output {
	return &Output{FaceEdgeOffset: nEdges}
}

// Triangulate computes a constrained Delaunay triangulation of input and
// returns the subset of it selected by mode.
//
// Pipeline: snap near-duplicate vertices together (Eps), flatten and
// deduplicate the edge/face constraint set, run unconstrained Delaunay
// triangulation (Bowyer-Watson) over the merged points, recover every
// constraint edge by diagonal flipping, re-legalize the unconstrained
// edges (Lawson flips), then export the requested subset.
func Triangulate(input Input, mode OutputMode) (*Output, error) {
	if len(input.Verts) < 3 {
		return emptyOutput(len(input.Edges)), nil
	}
	eps := input.Eps
	if eps.IsZero() {
		eps = DefaultEps
	}

	pts, ids, vertMap := mergedPoints(input.Verts, eps)
	if len(pts) < 3 {
		return emptyOutput(len(input.Edges)), nil
	}
	constraints, faceEdgeOffset := buildConstraints(input.Edges, input.Faces, vertMap)

	tris := bwTriangulate(pts)
	if len(tris) == 0 {
		return emptyOutput(len(input.Edges)), nil
	}
	ar := buildArrangement(pts, ids, tris)

	for _, c := range constraints {
		ar.insertConstraint(VertID(c.v0), VertID(c.v1), c.ids)
	}
	ar.legalize()

	var out *Output
	switch mode {
	case FULL:
		out = ar.exportFull()
	case INSIDE:
		out = ar.exportInside()
	case CONSTRAINTS, CONSTRAINTS_VALID_BMESH:
		out = ar.exportConstraints()
	default:
		return nil, fmt.Errorf("cdt: unknown output mode %d", mode)
	}
	out.FaceEdgeOffset = faceEdgeOffset
	return out, nil
}
