package scene

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// PartitionLimitError is returned when a cutting algorithm exceeds its partition cycle
// limit on a pathologically fragmenting scene. The caller can raise the limit or switch
// to another cutting algorithm; no partial result is produced.
type PartitionLimitError struct {
	Limit int
}

func (err PartitionLimitError) Error() string {
	return fmt.Sprintf("partition cycle limit (%d) reached", err.Limit)
}

// BSPTree is a binary space partition over a set of screen-space polygons. Each
// internal node's polygon acts as the splitting plane for its subtree; polygons that
// straddle a plane are cut in two during construction, so that an in-order traversal
// yields an exact back-to-front order from any viewpoint. Nodes live in a flat arena
// and refer to each other by index.
type BSPTree struct {
	nodes  []bspNode
	cycles int
	leaves int
}

type bspNode struct {
	front, back int // node indices, noNode when absent
	leaf        bool
	polys       []*Polygon
}

func (t *BSPTree) newNode() int {
	t.nodes = append(t.nodes, bspNode{front: noNode, back: noNode, leaf: true})
	return len(t.nodes) - 1
}

// BuildBSP partitions polys into a BSP tree, consuming the slice. Construction runs in
// sweeps over the tree's leaves, partitioning every leaf that still holds more than one
// polygon; the number of sweeps is capped by limit and exceeding it returns a
// PartitionLimitError. Normals must have been corrected towards a single viewpoint
// beforehand, see CorrectNormals.
func BuildBSP(polys []*Polygon, limit int) (*BSPTree, error) {
	t := &BSPTree{}
	root := t.newNode()
	t.nodes[root].polys = polys
	if len(polys) <= 1 {
		t.leaves = len(polys)
		return t, nil
	}

	t.partition(root)
	var leaves []int
	if f := t.nodes[root].front; f != noNode {
		leaves = append(leaves, f)
	}
	if b := t.nodes[root].back; b != noNode {
		leaves = append(leaves, b)
	}

	for t.sweep(&leaves) {
		t.cycles++
		if limit <= t.cycles {
			return nil, PartitionLimitError{limit}
		}
	}
	t.leaves = len(leaves)
	return t, nil
}

// sweep partitions every leaf holding more than one polygon and replaces partitioned
// leaves in the worklist by their children. It returns false once no leaf changed.
func (t *BSPTree) sweep(leaves *[]int) bool {
	changed := false
	for _, n := range *leaves {
		if 1 < len(t.nodes[n].polys) {
			t.partition(n)
			changed = true
		}
	}
	if !changed {
		return false
	}

	next := make([]int, 0, len(*leaves))
	for _, n := range *leaves {
		if t.nodes[n].leaf {
			next = append(next, n)
		} else {
			if f := t.nodes[n].front; f != noNode {
				next = append(next, f)
			}
			if b := t.nodes[n].back; b != noNode {
				next = append(next, b)
			}
		}
	}
	*leaves = next
	return true
}

// partition splits node n around its middle polygon. The remaining polygons move to the
// front or back child by their side of the plane; straddling polygons are cut in two
// first and degenerate fragments fall away.
func (t *BSPTree) partition(n int) {
	polys := t.nodes[n].polys
	idx := popIndex(len(polys))
	plane := polys[idx]
	polys = append(polys[:idx], polys[idx+1:]...)
	t.nodes[n].leaf = false

	for i := len(polys) - 1; 0 <= i; i-- {
		switch ClassifyPolygon(plane, polys[i]) {
		case Front:
			t.route(n, true, polys[i])
		case Behind:
			t.route(n, false, polys[i])
		default:
			front, back := SplitPolygon(plane, polys[i])
			if front != nil {
				t.route(n, true, front)
			}
			if back != nil {
				t.route(n, false, back)
			}
		}
	}
	t.nodes[n].polys = append(polys[:0], plane)
}

// route appends p to node n's front or back child, creating the child on first use.
func (t *BSPTree) route(n int, front bool, p *Polygon) {
	var c int
	if front {
		if c = t.nodes[n].front; c == noNode {
			c = t.newNode()
			t.nodes[n].front = c
		}
	} else {
		if c = t.nodes[n].back; c == noNode {
			c = t.newNode()
			t.nodes[n].back = c
		}
	}
	t.nodes[c].polys = append(t.nodes[c].polys, p)
}

// popIndex returns the index of the splitting polygon among n remaining ones. The
// middle element balances tree depth reasonably for randomly ordered input; halves are
// rounded to even so that the choice is deterministic.
func popIndex(n int) int {
	return int(math.RoundToEven(float64(n) / 2.0))
}

// Traverse walks the tree in painter's order relative to the viewpoint and returns the
// polygons back to front: at every internal node the subtree on the far side of the
// node's plane is emitted before the plane polygon and the near subtree after it.
func (t *BSPTree) Traverse(viewpoint r3.Vector) []*Polygon {
	if len(t.nodes) == 0 || len(t.nodes[0].polys) == 0 {
		return nil
	}
	return t.traverse(0, viewpoint, nil)
}

func (t *BSPTree) traverse(n int, viewpoint r3.Vector, polys []*Polygon) []*Polygon {
	if n == noNode {
		return polys
	}
	node := &t.nodes[n]
	if node.leaf {
		return append(polys, node.polys[0])
	}
	plane := node.polys[0]
	if plane.Verts[0].Sub(viewpoint).Dot(plane.Normal) < 0.0 {
		// viewpoint in front of the plane
		polys = t.traverse(node.back, viewpoint, polys)
		polys = append(polys, plane)
		return t.traverse(node.front, viewpoint, polys)
	}
	polys = t.traverse(node.front, viewpoint, polys)
	polys = append(polys, plane)
	return t.traverse(node.back, viewpoint, polys)
}
