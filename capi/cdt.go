package capi

import (
	"github.com/soypat/meshcsg/cdt"
	"github.com/soypat/meshcsg/exact"
)

// CDTInput is the delaunay_2d_cdt_calc-shaped request: a 2-D point set,
// free-standing edges between them, and polygon faces stored as a CSR
// triple (FacesFlat holds every face's vertex-index loop back to back;
// FacesStartTable/FacesLenTable give each face's slice of FacesFlat), matching the
// original's "vertex float[2][], edge int[2][], face CSR triple" layout
// rather than Go's more natural [][]int.
type CDTInput struct {
	Vertex [][2]float64
	Edge   [][2]int

	FacesFlat       []int
	FacesStartTable []int
	FacesLenTable   []int

	// Eps is the snap tolerance; zero means "use the package default".
	Eps float64
}

// CDTOutputMode is DelaunayCDTCalc's output-mode argument (the
// delaunay_2d_cdt_calc output type); it is a thin re-export of cdt.OutputMode so
// capi's callers don't need to import package cdt directly.
type CDTOutputMode = cdt.OutputMode

const (
	CDTFull                  = cdt.FULL
	CDTInside                = cdt.INSIDE
	CDTConstraints           = cdt.CONSTRAINTS
	CDTConstraintsValidBmesh = cdt.CONSTRAINTS_VALID_BMESH
)

// CDTOutput is the triangulation result plus CSR back-references, in the
// same shape as CDTInput.
type CDTOutput struct {
	Vertex [][2]float64
	Edge   [][2]int

	FacesFlat       []int
	FacesStartTable []int
	FacesLenTable   []int

	// FaceEdgeOffset reports where, in each *Orig back-reference id space,
	// input-face-edge ids begin (ids below it are input Edge ids).
	FaceEdgeOffset int

	VertOrig [][]int
	EdgeOrig [][]int
	FaceOrig [][]int
}

func facesFromCSR(flat, start, length []int) [][]int {
	faces := make([][]int, len(start))
	for i := range start {
		faces[i] = flat[start[i] : start[i]+length[i]]
	}
	return faces
}

func facesToCSR(faces [][]int) (flat, start, length []int) {
	start = make([]int, len(faces))
	length = make([]int, len(faces))
	for i, f := range faces {
		start[i] = len(flat)
		length[i] = len(f)
		flat = append(flat, f...)
	}
	return flat, start, length
}

// DelaunayCDTCalc computes a constrained Delaunay triangulation of in and
// returns the subset selected by mode, corresponding to
// delaunay_2d_cdt_calc(input, output_mode).
func DelaunayCDTCalc(in *CDTInput, mode CDTOutputMode) (*CDTOutput, *Error) {
	if in == nil {
		return nil, errf(InvalidInput, "input is nil")
	}
	if len(in.FacesStartTable) != len(in.FacesLenTable) {
		return nil, errf(InvalidInput, "FacesStartTable/FacesLenTable length mismatch (%d vs %d)", len(in.FacesStartTable), len(in.FacesLenTable))
	}
	verts := make([]exact.Vec2, len(in.Vertex))
	for i, v := range in.Vertex {
		verts[i] = exact.Vec2{X: exact.NewFloat64(v[0]), Y: exact.NewFloat64(v[1])}
	}
	var eps exact.R
	if in.Eps > 0 {
		eps = exact.NewFloat64(in.Eps)
	}
	req := cdt.Input{
		Verts: verts,
		Edges: in.Edge,
		Faces: facesFromCSR(in.FacesFlat, in.FacesStartTable, in.FacesLenTable),
		Eps:   eps,
	}
	res, err := cdt.Triangulate(req, mode)
	if err != nil {
		return nil, errf(InternalNumerical, "%v", err)
	}
	out := &CDTOutput{
		Edge:           res.Edges,
		FaceEdgeOffset: res.FaceEdgeOffset,
		VertOrig:       res.VertsOrig,
		EdgeOrig:       res.EdgesOrig,
		FaceOrig:       res.FacesOrig,
	}
	out.Vertex = make([][2]float64, len(res.Verts))
	for i, v := range res.Verts {
		x, y := v.X.Float64(), v.Y.Float64()
		out.Vertex[i] = [2]float64{x, y}
	}
	out.FacesFlat, out.FacesStartTable, out.FacesLenTable = facesToCSR(res.Faces)
	return out, nil
}
