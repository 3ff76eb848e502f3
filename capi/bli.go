package capi

import "github.com/soypat/meshcsg/boolean"

// BLIOp is the BLI_boolean_trimesh op code, numbered the way the original
// bool_optype enum is (BOOLEAN_NONE=-1, BOOLEAN_ISECT=0, BOOLEAN_UNION=1,
// BOOLEAN_DIFFERENCE=2). boolean.Op numbers the same four operations
// differently (DIFFERENCE=-1, NONE=0, INTERSECTION=1, UNION=2), since that
// ordering reads more naturally against Go's iota idiom elsewhere in this
// module; BLIOp exists so this one C-ABI-shaped entry point can still
// accept the original numbering verbatim.
type BLIOp int32

const (
	BLIBooleanNone       BLIOp = -1
	BLIBooleanIntersect  BLIOp = 0
	BLIBooleanUnion      BLIOp = 1
	BLIBooleanDifference BLIOp = 2
)

func (o BLIOp) toOp() (boolean.Op, *Error) {
	switch o {
	case BLIBooleanNone:
		return boolean.NONE, nil
	case BLIBooleanIntersect:
		return boolean.INTERSECTION, nil
	case BLIBooleanUnion:
		return boolean.UNION, nil
	case BLIBooleanDifference:
		return boolean.DIFFERENCE, nil
	default:
		return 0, errf(InvalidInput, "unknown BLIOp %d", o)
	}
}

// BooleanTrimeshInput is the flat C-ABI-shaped request struct, named and
// laid out after Boolean_trimesh_input: n verts as [3]float64, m triangles
// as [3]int indexing them.
type BooleanTrimeshInput struct {
	N     int
	M     int
	Verts [][3]float64
	Tris  [][3]int
}

func (in *BooleanTrimeshInput) toTriMesh() *TriMesh {
	if in == nil {
		return nil
	}
	return &TriMesh{NVerts: in.N, NTris: in.M, Verts: in.Verts, Tris: in.Tris}
}

// BooleanTrimeshOutput is the matching flat output struct.
type BooleanTrimeshOutput struct {
	N     int
	M     int
	Verts [][3]float64
	Tris  [][3]int
}

func fromTriMesh(m *TriMesh) *BooleanTrimeshOutput {
	return &BooleanTrimeshOutput{N: m.NVerts, M: m.NTris, Verts: m.Verts, Tris: m.Tris}
}

// BLIBooleanTrimesh runs a boolean between in0 and in1, or a self-boolean
// of in0 alone when in1 is nil, matching BLI_boolean_trimesh(in0, in1,
// op)'s "in1 optional" convention.
func BLIBooleanTrimesh(in0, in1 *BooleanTrimeshInput, op BLIOp) (*BooleanTrimeshOutput, *Error) {
	bop, err := op.toOp()
	if err != nil {
		return nil, err
	}
	ins := []*TriMesh{in0.toTriMesh()}
	if in1 != nil {
		ins = append(ins, in1.toTriMesh())
	}
	out, berr := BooleanMesh(ins, bop, false, false)
	if berr != nil {
		return nil, berr
	}
	return fromTriMesh(out), nil
}
