package cdt

import "github.com/soypat/meshcsg/exact"

// bwTriangulate computes an unconstrained Delaunay triangulation of pts by
// incremental insertion (Bowyer-Watson), bracketed by a super-triangle
// that is stripped from the result. Triangles are returned CCW as index
// triples into pts. No spatial index is used (every insertion scans every
// live triangle): fine for the arrangement sizes this engine targets
// (per-cluster/per-triangle 2-D projections), not meant for bulk meshes.
func bwTriangulate(pts []exact.Vec2) [][3]int {
	if len(pts) < 3 {
		return nil
	}
	work := append([]exact.Vec2(nil), pts...)
	s0, s1, s2 := superTriangle(pts)
	superBase := len(work)
	work = append(work, s0, s1, s2)

	tris := [][3]int{{superBase, superBase + 1, superBase + 2}}
	fixCCW(work, tris)

	for pi := 0; pi < len(pts); pi++ {
		tris = bwInsert(work, tris, pi)
	}

	// Strip any triangle touching a super-triangle vertex.
	out := tris[:0]
	for _, t := range tris {
		if t[0] >= superBase || t[1] >= superBase || t[2] >= superBase {
			continue
		}
		out = append(out, t)
	}
	return out
}

func fixCCW(pts []exact.Vec2, tris [][3]int) {
	for i, t := range tris {
		if exact.Orient2D(pts[t[0]], pts[t[1]], pts[t[2]]) < 0 {
			tris[i][1], tris[i][2] = tris[i][2], tris[i][1]
		}
	}
}

// superTriangle returns a triangle, CCW, enclosing every point in pts with
// margin, used as the bootstrap boundary for Bowyer-Watson insertion.
func superTriangle(pts []exact.Vec2) (a, b, c exact.Vec2) {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = exact.Min(minX, p.X), exact.Max(maxX, p.X)
		minY, maxY = exact.Min(minY, p.Y), exact.Max(maxY, p.Y)
	}
	dx := maxX.Sub(minX).Add(exact.NewInt(1))
	dy := maxY.Sub(minY).Add(exact.NewInt(1))
	d := exact.Max(dx, dy).Mul(exact.NewInt(20))
	cx := minX.Add(maxX).Quo(exact.NewInt(2))
	cy := minY.Add(maxY).Quo(exact.NewInt(2))
	a = exact.Vec2{X: cx.Sub(d), Y: cy.Sub(d)}
	b = exact.Vec2{X: cx.Add(d), Y: cy.Sub(d)}
	c = exact.Vec2{X: cx, Y: cy.Add(d.Mul(exact.NewInt(2)))}
	return a, b, c
}

// bwInsert inserts point index pi (into pts) into the triangulation tris,
// removing every triangle whose circumcircle contains it and retriangulating
// the resulting cavity as a fan from pi.
func bwInsert(pts []exact.Vec2, tris [][3]int, pi int) [][3]int {
	p := pts[pi]
	bad := make([]bool, len(tris))
	anyBad := false
	for i, t := range tris {
		if exact.InCircle(pts[t[0]], pts[t[1]], pts[t[2]], p) > 0 {
			bad[i] = true
			anyBad = true
		}
	}
	if !anyBad {
		// Point coincides with an existing vertex or triangulation is
		// degenerate here; skip (callers pre-merge duplicate points).
		return tris
	}

	// Boundary of the cavity: edges belonging to exactly one bad triangle.
	type edge struct{ a, b int }
	count := make(map[edge]int)
	orientOf := make(map[edge]edge)
	addEdge := func(a, b int) {
		key := edge{a, b}
		rkey := edge{b, a}
		if _, ok := orientOf[rkey]; ok {
			count[rkey]++
			return
		}
		count[key]++
		orientOf[key] = key
	}
	for i, t := range tris {
		if !bad[i] {
			continue
		}
		addEdge(t[0], t[1])
		addEdge(t[1], t[2])
		addEdge(t[2], t[0])
	}

	kept := tris[:0:0]
	for i, t := range tris {
		if !bad[i] {
			kept = append(kept, t)
		}
	}
	for e, c := range count {
		if c == 1 {
			kept = append(kept, [3]int{e.a, e.b, pi})
		}
	}
	return kept
}
