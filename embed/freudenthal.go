// Package embed builds the coarse tetrahedral lattice the ADMM solver
// simulates, embeds the input surface's facet vertices into it by
// barycentric coordinates, and carries the per-vertex mass and pin
// bookkeeping the solver needs each step.
package embed

// kuhnTets lists the 6 Freudenthal (Kuhn) tetrahedra that triangulate the
// unit cube, each sharing the main diagonal corner 0 (0,0,0) to corner 7
// (1,1,1); cubeCorner converts a corner index (0-7, bit i = axis i) plus
// a grid cell origin into the cube's 8 corner grid indices.
var kuhnTets = [6][4]int{
	{0, 1, 3, 7}, // x,y,z
	{0, 1, 5, 7}, // x,z,y
	{0, 2, 3, 7}, // y,x,z
	{0, 2, 6, 7}, // y,z,x
	{0, 4, 5, 7}, // z,x,y
	{0, 4, 6, 7}, // z,y,x
}

// cubeCornerOffset returns the (dx,dy,dz) grid offset of corner index c
// (0-7) from a cube's minimum corner, with bit 0/1/2 of c selecting the
// x/y/z axis.
func cubeCornerOffset(c int) [3]int {
	return [3]int{c & 1, (c >> 1) & 1, (c >> 2) & 1}
}
