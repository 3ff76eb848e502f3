package cdt

import "github.com/soypat/meshcsg/exact"

// insertConstraint ensures the direct edge (a,b) exists in the
// triangulation and is marked constrained with the given input ids,
// recovering it by repeated diagonal swapping (George & Borouchaki's
// swap algorithm) if it is not already present. This is a greedy
// simplification: it handles the common case of a constraint set with no
// self-intersections (what the rest of the pipeline feeds it) and is not
// guaranteed to terminate on adversarial input, so it is capped. A
// constraint that passes exactly through another vertex is split there
// and each piece is recovered separately.
func (ar *Arrangement) insertConstraint(a, b VertID, ids []int) {
	if e, ok := ar.findEdge(a, b); ok {
		ar.markConstrained(e, ids)
		return
	}
	pa, pb := ar.verts[a].Co, ar.verts[b].Co
	ab := pb.Sub(pa)
	for ci := range ar.verts {
		pc := ar.verts[ci].Co
		if c := VertID(ci); c != a && c != b && ab.Cross(pc.Sub(pa)).IsZero() &&
			pc.Sub(pa).Dot(ab).Sign() > 0 && pb.Sub(pc).Dot(ab).Sign() > 0 {
			ar.insertConstraint(a, c, ids)
			ar.insertConstraint(c, b, ids)
			return
		}
	}
	const maxRounds = 100000
	for round := 0; round < maxRounds; round++ {
		if e, ok := ar.findEdge(a, b); ok {
			ar.markConstrained(e, ids)
			return
		}
		flipped := false
		for ei := 0; ei < len(ar.edges); ei++ {
			e := EdgeID(ei)
			edge := &ar.edges[e]
			if edge.Constrained {
				continue
			}
			p0, p1 := ar.verts[edge.V0].Co, ar.verts[edge.V1].Co
			if !exact.SegmentsProperlyIntersect(pa, pb, p0, p1) {
				continue
			}
			if !ar.canFlip(e) {
				continue
			}
			ar.flip(e)
			flipped = true
			break
		}
		if !flipped {
			// Could not make progress (degenerate/adversarial input);
			// give up recovering this constraint rather than loop forever.
			return
		}
	}
}

func (ar *Arrangement) markConstrained(e EdgeID, ids []int) {
	edge := &ar.edges[e]
	edge.Constrained = true
	edge.InputIDs = append(edge.InputIDs, ids...)
}

// legalize restores the Delaunay property for every unconstrained edge via
// Lawson flips, leaving constrained edges untouched.
func (ar *Arrangement) legalize() {
	const maxPasses = 50
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for ei := 0; ei < len(ar.edges); ei++ {
			e := EdgeID(ei)
			edge := &ar.edges[e]
			if edge.Constrained {
				continue
			}
			f0, f1, c0, c1 := ar.triCorner(e)
			if f0 == NoFace || f1 == NoFace {
				continue
			}
			t0, t1 := &ar.tris[f0], &ar.tris[f1]
			v0, v1 := t0.verts[c0], t0.verts[(c0+1)%3]
			apex0 := t0.verts[(c0+2)%3]
			apex1 := t1.verts[(c1+2)%3]
			p := func(id VertID) exact.Vec2 { return ar.verts[id].Co }
			if exact.InCircle(p(v0), p(v1), p(apex0), p(apex1)) > 0 && ar.canFlip(e) {
				ar.flip(e)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
