package bvh

import "sort"

// leafPadFraction pads every primitive's box by this fraction of the
// whole tree's bounding diagonal before insertion, per the spec's
// 10^-8*bbox-diag exact-touching safeguard.
const leafPadFraction = 1e-8

// node is one entry of the tree's implicit pool; leaves have
// left==right==-1 and a non-empty primitive range.
type node struct {
	box         Box
	left, right int32
	primStart   int32
	primCount   int32
}

// Tree is a balanced binary AABB hierarchy over a fixed primitive count.
// It is read-only during traversal; Update refits it bottom-up without
// changing topology, which is only valid for small deformations of the
// same primitive set Init was built with.
type Tree struct {
	nodes []node
	// prims maps leaf slot -> original primitive index, permuted during
	// Init's median-split construction.
	prims []int32
}

// Root returns the root node index, or -1 if the tree is empty.
func (t *Tree) Root() int {
	if len(t.nodes) == 0 {
		return -1
	}
	return 0
}

// Init builds a new tree over boxes (one per primitive), splitting along
// the longest axis at the median at each level.
func Init(boxes []Box) *Tree {
	t := &Tree{}
	if len(boxes) == 0 {
		return t
	}
	diag := 0.0
	whole := EmptyBox()
	for _, b := range boxes {
		whole = whole.ExtendBox(b)
	}
	diag = whole.Diagonal()
	pad := diag * leafPadFraction

	t.prims = make([]int32, len(boxes))
	for i := range t.prims {
		t.prims[i] = int32(i)
	}
	t.nodes = make([]node, 0, 2*len(boxes))
	t.build(boxes, pad, 0, len(boxes))
	return t
}

// build recursively partitions prims[lo:hi] and appends nodes, returning
// the index of the node just appended for this range.
func (t *Tree) build(boxes []Box, pad float64, lo, hi int) int32 {
	n := node{primStart: int32(lo), primCount: int32(hi - lo), left: -1, right: -1}
	box := EmptyBox()
	for i := lo; i < hi; i++ {
		box = box.ExtendBox(boxes[t.prims[i]])
	}
	n.box = box.Pad(pad)
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, n)

	if hi-lo <= 1 {
		return idx
	}
	axis := box.longestAxis()
	mid := (lo + hi) / 2
	primSlice := t.prims[lo:hi]
	sort.Slice(primSlice, func(i, j int) bool {
		return boxes[primSlice[i]].center()[axis] < boxes[primSlice[j]].center()[axis]
	})
	leftIdx := t.build(boxes, pad, lo, mid)
	rightIdx := t.build(boxes, pad, mid, hi)
	t.nodes[idx].left = leftIdx
	t.nodes[idx].right = rightIdx
	t.nodes[idx].primCount = 0 // internal node: primitives live only in its leaf descendants
	return idx
}

// Update refits every node's box bottom-up from new primitive boxes
// without changing topology, for small per-step deformations.
func (t *Tree) Update(boxes []Box) {
	if len(t.nodes) == 0 {
		return
	}
	diag := 0.0
	whole := EmptyBox()
	for _, b := range boxes {
		whole = whole.ExtendBox(b)
	}
	diag = whole.Diagonal()
	pad := diag * leafPadFraction
	t.refit(0, boxes, pad)
}

func (t *Tree) refit(idx int32, boxes []Box, pad float64) Box {
	n := &t.nodes[idx]
	if n.left < 0 {
		box := EmptyBox()
		for i := n.primStart; i < n.primStart+n.primCount; i++ {
			box = box.ExtendBox(boxes[t.prims[i]])
		}
		n.box = box.Pad(pad)
		return n.box
	}
	lb := t.refit(n.left, boxes, pad)
	rb := t.refit(n.right, boxes, pad)
	n.box = lb.ExtendBox(rb)
	return n.box
}

// Traverser drives a tree walk: Overlap decides whether to descend into a
// subtree whose bounding box is box, and Leaf is called once per
// primitive index reached in a leaf node whose box overlapped.
type Traverser interface {
	Overlap(box Box) bool
	Leaf(primIdx int)
}

// Traverse visits every node whose box satisfies tr.Overlap, calling
// tr.Leaf for each primitive in matching leaves.
func (t *Tree) Traverse(tr Traverser) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(0, tr)
}

func (t *Tree) walk(idx int32, tr Traverser) {
	n := &t.nodes[idx]
	if !tr.Overlap(n.box) {
		return
	}
	if n.left < 0 {
		for i := n.primStart; i < n.primStart+n.primCount; i++ {
			tr.Leaf(int(t.prims[i]))
		}
		return
	}
	t.walk(n.left, tr)
	t.walk(n.right, tr)
}
