package isect

import (
	"fmt"

	"github.com/soypat/meshcsg/cdt"
	"github.com/soypat/meshcsg/exact"
)

// OutputTriangle is one retriangulated output triangle, labelled with the
// input triangle it was produced for.
type OutputTriangle struct {
	P, Q, R exact.Vec3
	Orig    int
}

type itt struct {
	other int
	res   Result
}

// SelfIntersect runs the full per-triangle/per-cluster retriangulation
// pipeline (gather pairwise intersections, resolve coplanar clusters
// jointly, run CDT, lift back to 3-D, union every piece) over tris and
// returns the resulting triangle soup. Every output triangle carries the
// Orig of the input triangle that produced it and that triangle's winding;
// a degenerate/zero-area input triangle contributes nothing once its own
// interior is excluded by CDT(INSIDE).
func SelfIntersect(tris []Triangle) ([]OutputTriangle, error) {
	n := len(tris)
	byOrig := make(map[int]Triangle, n)
	for _, t := range tris {
		byOrig[t.Orig] = t
	}
	itts := make([][]itt, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			res := Intersect(tris[i], tris[j])
			switch res.Kind {
			case None, Coplanar:
				continue // coplanar pairs are resolved by the cluster path
			default:
				itts[i] = append(itts[i], itt{other: j, res: res})
				itts[j] = append(itts[j], itt{other: i, res: res})
			}
		}
	}

	clusters := BuildClusters(tris)
	clusterOf := make([]int, n)
	for i := range clusterOf {
		clusterOf[i] = -1
	}
	for ci, c := range clusters {
		for _, m := range c.Members {
			clusterOf[m] = ci
		}
	}

	var out []OutputTriangle
	clusterDone := make([]bool, len(clusters))
	for i, t := range tris {
		if ci := clusterOf[i]; ci >= 0 {
			if clusterDone[ci] {
				continue
			}
			clusterDone[ci] = true
			res, err := clusterSubdivided(tris, clusters[ci], itts)
			if err != nil {
				return nil, fmt.Errorf("isect: cluster %d: %w", ci, err)
			}
			out = append(out, res...)
			continue
		}
		res, err := triangleSubdivided(t, itts[i])
		if err != nil {
			return nil, fmt.Errorf("isect: triangle %d: %w", i, err)
		}
		out = append(out, res...)
	}
	// CDT faces come back CCW in the 2-D projection; restore each piece's
	// 3-D winding to that of its input triangle.
	for k, o := range out {
		s := byOrig[o.Orig]
		if o.Q.Sub(o.P).Cross(o.R.Sub(o.P)).Dot(s.Q.Sub(s.P).Cross(s.R.Sub(s.P))).Sign() < 0 {
			out[k].Q, out[k].R = o.R, o.Q
		}
	}
	return out, nil
}

// triangleSubdivided retriangulates a single triangle against its
// non-coplanar intersections (the singleton path: a cluster of size 1).
func triangleSubdivided(t Triangle, itts []itt) ([]OutputTriangle, error) {
	axis := exact.DominantAxis(t.Plane.N)
	p2 := [3]exact.Vec2{exact.DropAxis(t.P, axis), exact.DropAxis(t.Q, axis), exact.DropAxis(t.R, axis)}
	if exact.Orient2D(p2[0], p2[1], p2[2]) < 0 {
		p2[1], p2[2] = p2[2], p2[1]
	}
	verts := []exact.Vec2{p2[0], p2[1], p2[2]}
	edges := [][2]int{{0, 1}, {1, 2}, {2, 0}}
	for _, it := range itts {
		addIntersection(&verts, &edges, it.res, axis)
	}
	out, err := cdt.Triangulate(cdt.Input{Verts: verts, Edges: edges, Faces: [][]int{{0, 1, 2}}}, cdt.INSIDE)
	if err != nil {
		return nil, err
	}
	return liftFaces(out, t.Plane, axis, t.Orig), nil
}

// clusterSubdivided retriangulates every member of a coplanar cluster
// jointly: the union of member boundaries and their external (non-cluster)
// intersections drives one CDT run over the cluster's shared plane, and
// every resulting triangle is attributed to whichever member triangle(s)
// contain it. A triangle lying in the overlap of two members is attributed
// to both, mirroring the duplicate-triangle handling the boolean layer
// (C7) expects from overlapping input.
func clusterSubdivided(tris []Triangle, c Cluster, itts [][]itt) ([]OutputTriangle, error) {
	axis := exact.DominantAxis(c.Plane.N)

	memberTris2D := make([][3]exact.Vec2, len(c.Members))
	var verts []exact.Vec2
	var faces [][]int
	var edges [][2]int
	for mi, ti := range c.Members {
		t := tris[ti]
		p2 := [3]exact.Vec2{exact.DropAxis(t.P, axis), exact.DropAxis(t.Q, axis), exact.DropAxis(t.R, axis)}
		// Orient every member consistently CCW in this shared 2-D frame,
		// regardless of its own winding in 3-D.
		if exact.Orient2D(p2[0], p2[1], p2[2]) < 0 {
			p2[1], p2[2] = p2[2], p2[1]
		}
		memberTris2D[mi] = p2
		base := len(verts)
		verts = append(verts, p2[0], p2[1], p2[2])
		faces = append(faces, []int{base, base + 1, base + 2})
		for _, it := range itts[ti] {
			if clusterOfOther(it.other, c) {
				continue // internal to the cluster, already a member boundary
			}
			addIntersection(&verts, &edges, it.res, axis)
		}
	}

	out, err := cdt.Triangulate(cdt.Input{Verts: verts, Edges: edges, Faces: faces}, cdt.FULL)
	if err != nil {
		return nil, err
	}

	var result []OutputTriangle
	for _, f := range out.Faces {
		if len(f) != 3 {
			continue
		}
		centroid2 := exact.Vec2{
			X: out.Verts[f[0]].X.Add(out.Verts[f[1]].X).Add(out.Verts[f[2]].X).Quo(exact.NewInt(3)),
			Y: out.Verts[f[0]].Y.Add(out.Verts[f[1]].Y).Add(out.Verts[f[2]].Y).Quo(exact.NewInt(3)),
		}
		p0 := liftPoint(out.Verts[f[0]], c.Plane, axis)
		p1 := liftPoint(out.Verts[f[1]], c.Plane, axis)
		p2 := liftPoint(out.Verts[f[2]], c.Plane, axis)
		for mi, mt := range memberTris2D {
			if insideOrOnTriangle(centroid2, mt) {
				result = append(result, OutputTriangle{P: p0, Q: p1, R: p2, Orig: tris[c.Members[mi]].Orig})
			}
		}
	}
	return result, nil
}

func clusterOfOther(other int, c Cluster) bool {
	for _, m := range c.Members {
		if m == other {
			return true
		}
	}
	return false
}

func insideOrOnTriangle(p exact.Vec2, tri [3]exact.Vec2) bool {
	s0 := exact.Orient2D(tri[0], tri[1], p)
	s1 := exact.Orient2D(tri[1], tri[2], p)
	s2 := exact.Orient2D(tri[2], tri[0], p)
	return (s0 >= 0 && s1 >= 0 && s2 >= 0) || (s0 <= 0 && s1 <= 0 && s2 <= 0)
}

// addIntersection appends the 2-D projection of a Point/Segment result to
// verts (deduplicating), and for Segment adds the corresponding edge.
func addIntersection(verts *[]exact.Vec2, edges *[][2]int, res Result, axis int) {
	switch res.Kind {
	case Point:
		addPoint(verts, exact.DropAxis(res.A, axis))
	case Segment:
		i0 := addPoint(verts, exact.DropAxis(res.A, axis))
		i1 := addPoint(verts, exact.DropAxis(res.B, axis))
		if i0 != i1 {
			*edges = append(*edges, [2]int{i0, i1})
		}
	}
}

func addPoint(verts *[]exact.Vec2, p exact.Vec2) int {
	for i, q := range *verts {
		if q.Equal(p) {
			return i
		}
	}
	*verts = append(*verts, p)
	return len(*verts) - 1
}

// liftPoint inverts DropAxis using the plane equation n.x+d=0 to recover
// the coordinate dropped during projection: p3d[axis] = -(sum of the
// other n_i*p2d_i + d) / n_axis.
func liftPoint(p exact.Vec2, pl exact.Plane, axis int) exact.Vec3 {
	switch axis {
	case 0:
		s := pl.N.Y.Mul(p.X).Add(pl.N.Z.Mul(p.Y)).Add(pl.D)
		return exact.Vec3{X: s.Neg().Quo(pl.N.X), Y: p.X, Z: p.Y}
	case 1:
		s := pl.N.X.Mul(p.X).Add(pl.N.Z.Mul(p.Y)).Add(pl.D)
		return exact.Vec3{X: p.X, Y: s.Neg().Quo(pl.N.Y), Z: p.Y}
	default:
		s := pl.N.X.Mul(p.X).Add(pl.N.Y.Mul(p.Y)).Add(pl.D)
		return exact.Vec3{X: p.X, Y: p.Y, Z: s.Neg().Quo(pl.N.Z)}
	}
}

func liftFaces(out *cdt.Output, pl exact.Plane, axis int, orig int) []OutputTriangle {
	var res []OutputTriangle
	for _, f := range out.Faces {
		if len(f) != 3 {
			continue
		}
		res = append(res, OutputTriangle{
			P:    liftPoint(out.Verts[f[0]], pl, axis),
			Q:    liftPoint(out.Verts[f[1]], pl, axis),
			R:    liftPoint(out.Verts[f[2]], pl, axis),
			Orig: orig,
		})
	}
	return res
}
