package isect

import "github.com/soypat/meshcsg/exact"

// NonTrivialIntersect reports whether coplanar triangles a,b overlap in
// more than a shared vertex or shared edge: a point of one is strictly
// inside the other, an edge of one properly crosses an edge of the other,
// or the two triangles are identical up to vertex rotation.
func NonTrivialIntersect(a, b Triangle) bool {
	axis := exact.DominantAxis(a.Plane.N)
	pa := [3]exact.Vec2{exact.DropAxis(a.P, axis), exact.DropAxis(a.Q, axis), exact.DropAxis(a.R, axis)}
	pb := [3]exact.Vec2{exact.DropAxis(b.P, axis), exact.DropAxis(b.Q, axis), exact.DropAxis(b.R, axis)}

	if identicalUpToRotation(pa, pb) {
		return true
	}
	for _, p := range pa {
		if strictlyInside(p, pb) {
			return true
		}
	}
	for _, p := range pb {
		if strictlyInside(p, pa) {
			return true
		}
	}
	for i := 0; i < 3; i++ {
		e0a, e1a := pa[i], pa[(i+1)%3]
		for j := 0; j < 3; j++ {
			e0b, e1b := pb[j], pb[(j+1)%3]
			if sharesEndpoint(e0a, e1a, e0b, e1b) {
				continue
			}
			if exact.SegmentsProperlyIntersect(e0a, e1a, e0b, e1b) {
				return true
			}
		}
	}
	return false
}

func sharesEndpoint(a0, a1, b0, b1 exact.Vec2) bool {
	return a0.Equal(b0) || a0.Equal(b1) || a1.Equal(b0) || a1.Equal(b1)
}

func strictlyInside(p exact.Vec2, tri [3]exact.Vec2) bool {
	s0 := exact.Orient2D(tri[0], tri[1], p)
	s1 := exact.Orient2D(tri[1], tri[2], p)
	s2 := exact.Orient2D(tri[2], tri[0], p)
	if s0 == 0 || s1 == 0 || s2 == 0 {
		return false
	}
	return (s0 > 0 && s1 > 0 && s2 > 0) || (s0 < 0 && s1 < 0 && s2 < 0)
}

func identicalUpToRotation(a, b [3]exact.Vec2) bool {
	for shift := 0; shift < 3; shift++ {
		if a[0].Equal(b[shift]) && a[1].Equal(b[(shift+1)%3]) && a[2].Equal(b[(shift+2)%3]) {
			return true
		}
	}
	return false
}

// Cluster is a set of mutually non-trivially-intersecting coplanar
// triangle indices (into the slice passed to BuildClusters) sharing one
// canonical plane.
type Cluster struct {
	Plane   exact.Plane
	Members []int
}

// BuildClusters partitions tris into coplanar clusters. Triangles are
// first bucketed by canonical plane (only triangles sharing a plane can
// ever be coplanar partners); within a bucket, union-find over pairwise
// NonTrivialIntersect tests assembles maximal clusters. Buckets (and
// union-find components within a bucket) with fewer than 2 members are
// dropped -- singletons take the per-triangle path in the driver (C6),
// not the cluster path.
func BuildClusters(tris []Triangle) []Cluster {
	byPlane := make(map[[4]string][]int)
	for i, t := range tris {
		key := t.Plane.Key()
		byPlane[key] = append(byPlane[key], i)
	}

	var clusters []Cluster
	for _, idxs := range byPlane {
		if len(idxs) < 2 {
			continue
		}
		parent := make([]int, len(idxs))
		for i := range parent {
			parent[i] = i
		}
		var find func(int) int
		find = func(x int) int {
			for parent[x] != x {
				parent[x] = parent[parent[x]]
				x = parent[x]
			}
			return x
		}
		union := func(x, y int) {
			rx, ry := find(x), find(y)
			if rx != ry {
				parent[rx] = ry
			}
		}
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				if NonTrivialIntersect(tris[idxs[i]], tris[idxs[j]]) {
					union(i, j)
				}
			}
		}
		groups := make(map[int][]int)
		for i, gi := range idxs {
			root := find(i)
			groups[root] = append(groups[root], gi)
		}
		plane := tris[idxs[0]].Plane
		for _, members := range groups {
			if len(members) < 2 {
				continue
			}
			clusters = append(clusters, Cluster{Plane: plane, Members: members})
		}
	}
	return clusters
}
