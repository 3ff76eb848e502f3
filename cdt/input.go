package cdt

import "github.com/soypat/meshcsg/exact"

// OutputMode selects which subset of the triangulation Triangulate returns.
type OutputMode int

const (
	// FULL returns all triangles inside the convex hull of the input.
	FULL OutputMode = iota
	// INSIDE returns only triangles fully enclosed by input edges/faces.
	INSIDE
	// CONSTRAINTS returns only the constrained edges and faces'
	// triangulations, merged back into polygon faces.
	CONSTRAINTS
	// CONSTRAINTS_VALID_BMESH is as CONSTRAINTS but additionally keeps
	// edges so that every output face attributable to an input face is a
	// simple closed loop. This implementation treats it as CONSTRAINTS;
	// see DESIGN.md for the scope decision.
	CONSTRAINTS_VALID_BMESH
)

// Input is the triangulation request: a point set, free-standing edges
// between those points, and CCW polygon faces over those points.
type Input struct {
	Verts []exact.Vec2
	Edges [][2]int   // vertex-index pairs
	Faces [][]int    // each a CCW vertex-index loop, length >= 3
	Eps   exact.R     // snapping tolerance; zero means "use default"
}

// DefaultEps is substituted whenever Input.Eps is the zero value, per the
// "epsilon 0 is treated as a small positive tolerance" rule: CDT requires
// some positive tolerance to stay well defined under nearness queries.
var DefaultEps = exact.NewFrac(1, 100000000) // 1e-8

// Output is the triangulation result in the same shape as Input, plus
// back-references from every output element to the input elements that
// produced it.
type Output struct {
	Verts []exact.Vec2
	Edges [][2]int
	Faces [][]int

	// FaceEdgeOffset equals len(Input.Edges); an id >= FaceEdgeOffset in
	// EdgesOrig means the edge came from input face-edge position
	// (id - FaceEdgeOffset) in the flattened CSR over Input.Faces.
	FaceEdgeOffset int

	VertsOrig [][]int
	EdgesOrig [][]int
	FacesOrig [][]int
}
