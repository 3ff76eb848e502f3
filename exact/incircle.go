package exact

// InCircle returns the sign of the standard incircle determinant of
// a,b,c,d. When a,b,c are wound counterclockwise, a positive result means
// d lies strictly inside the circle through a,b,c; negative means outside;
// zero means on the circle. Used by the CDT to decide whether an
// unconstrained edge satisfies the local Delaunay criterion.
func InCircle(a, b, c, d Vec2) int {
	ax := a.X.Sub(d.X)
	ay := a.Y.Sub(d.Y)
	bx := b.X.Sub(d.X)
	by := b.Y.Sub(d.Y)
	cx := c.X.Sub(d.X)
	cy := c.Y.Sub(d.Y)

	a2 := ax.Mul(ax).Add(ay.Mul(ay))
	b2 := bx.Mul(bx).Add(by.Mul(by))
	c2 := cx.Mul(cx).Add(cy.Mul(cy))

	// Determinant expanded along the third column.
	det := ax.Mul(by.Mul(c2).Sub(cy.Mul(b2))).
		Sub(ay.Mul(bx.Mul(c2).Sub(cx.Mul(b2)))).
		Add(a2.Mul(bx.Mul(cy).Sub(cx.Mul(by))))
	return det.Sign()
}

// SegmentsProperlyIntersect reports whether open segments (p1,p2) and
// (p3,p4) cross at a single interior point of both (used by CDT edge
// recovery to find triangulation edges crossing a constraint).
func SegmentsProperlyIntersect(p1, p2, p3, p4 Vec2) bool {
	d1 := Orient2D(p3, p4, p1)
	d2 := Orient2D(p3, p4, p2)
	d3 := Orient2D(p1, p2, p3)
	d4 := Orient2D(p1, p2, p4)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
