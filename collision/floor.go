package collision

// FloorTest reports per-lattice-vertex floor contacts: any vertex at
// height z below floorZ+thickness gets a constraint row pinning it to
// the plane z=floorZ+thickness (Normal=(0,0,1)). Checked across striped
// vertex ranges so the scan splits evenly regardless of how vertices are
// ordered.
func FloorTest(X [][3]float64, floorZ, thickness float64, nthreads int) []Row {
	hits := make([]*Row, len(X))
	ParallelStripe(len(X), nthreads, func(i int) {
		if X[i][2] < floorZ+thickness {
			r := directRow(i, [3]float64{0, 0, 1}, floorZ+thickness, thickness)
			hits[i] = &r
		}
	})
	var rows []Row
	for _, r := range hits {
		if r != nil {
			rows = append(rows, *r)
		}
	}
	return rows
}
