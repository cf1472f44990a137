package scene

import "sort"

// Octree localizes conflict detection between screen-space polygons. Every polygon is
// stored at the smallest node whose bounds fully contain its bounding box, so that
// conflicts only need to be checked within a node and against its ancestors. It trades
// the strict ordering guarantee of a BSP tree for better average performance on scenes
// with localized polygon clusters. Nodes live in a flat arena and refer to each other
// by index.
type Octree struct {
	nodes      []octNode
	compressed bool
}

type octNode struct {
	bounds     Box
	parent     int
	depth      int
	children   [8]int
	divided    bool
	unresolved []*Polygon
	resolved   []*Polygon
}

// NewOctree returns an octree whose root covers bounds.
func NewOctree(bounds Box) *Octree {
	t := &Octree{}
	t.newNode(bounds, noNode, 0)
	return t
}

func (t *Octree) newNode(bounds Box, parent, depth int) int {
	n := octNode{bounds: bounds, parent: parent, depth: depth}
	for i := range n.children {
		n.children[i] = noNode
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// Insert adds p to the smallest node that fully contains its bounding box. An occupied
// leaf subdivides into eight octants on the second arrival. Inserting into a compressed
// octree is a contract violation and panics.
func (t *Octree) Insert(p *Polygon) {
	if t.compressed {
		panic("scene: insert into a compressed octree")
	}
	t.insert(0, p)
}

func (t *Octree) insert(n int, p *Polygon) {
	if !t.nodes[n].divided {
		if len(t.nodes[n].unresolved) == 0 {
			t.nodes[n].unresolved = append(t.nodes[n].unresolved, p)
			return
		}
		t.subdivide(n)
	}
	for _, c := range t.nodes[n].children {
		if t.nodes[c].bounds.Contains(p.Bounds) {
			t.insert(c, p)
			return
		}
	}
	// straddles the subdivision boundaries, stays here
	t.nodes[n].unresolved = append(t.nodes[n].unresolved, p)
}

// subdivide creates eight children with halved bounds and re-sifts the polygons stored
// at n into any child that fully contains them.
func (t *Octree) subdivide(n int) {
	b := t.nodes[n].bounds
	xh := (b.XMin + b.XMax) / 2.0
	yh := (b.YMin + b.YMax) / 2.0
	zh := (b.ZMin + b.ZMax) / 2.0
	boxes := [8]Box{
		{b.XMin, xh, b.YMin, yh, b.ZMin, zh},
		{xh, b.XMax, b.YMin, yh, b.ZMin, zh},
		{b.XMin, xh, yh, b.YMax, b.ZMin, zh},
		{xh, b.XMax, yh, b.YMax, b.ZMin, zh},
		{b.XMin, xh, b.YMin, yh, zh, b.ZMax},
		{xh, b.XMax, b.YMin, yh, zh, b.ZMax},
		{b.XMin, xh, yh, b.YMax, zh, b.ZMax},
		{xh, b.XMax, yh, b.YMax, zh, b.ZMax},
	}
	depth := t.nodes[n].depth + 1
	for i, box := range boxes {
		c := t.newNode(box, n, depth)
		t.nodes[n].children[i] = c
	}
	t.nodes[n].divided = true

	kept := t.nodes[n].unresolved[:0]
	for _, p := range t.nodes[n].unresolved {
		moved := false
		for _, c := range t.nodes[n].children {
			if t.nodes[c].bounds.Contains(p.Bounds) {
				t.nodes[c].unresolved = append(t.nodes[c].unresolved, p)
				moved = true
				break
			}
		}
		if !moved {
			kept = append(kept, p)
		}
	}
	t.nodes[n].unresolved = kept
}

// Compress prunes children that are empty undivided leaves and returns the surviving
// node indices in breadth-first order, the root always included. The tree refuses
// insertions afterwards.
func (t *Octree) Compress() []int {
	t.compressed = true
	nodes := []int{0}
	for i := 0; i < len(nodes); i++ {
		node := &t.nodes[nodes[i]]
		for j, c := range node.children {
			if c != noNode {
				if len(t.nodes[c].unresolved) == 0 && !t.nodes[c].divided {
					node.children[j] = noNode
				} else {
					nodes = append(nodes, c)
				}
			}
		}
	}
	return nodes
}

// ResolveConflicts compresses the tree and resolves every surviving node, deepest
// first, so that a node's polygons settle before the ancestors they were checked
// against are processed themselves.
func (t *Octree) ResolveConflicts() {
	nodes := t.Compress()
	sort.SliceStable(nodes, func(i, j int) bool {
		return t.nodes[nodes[j]].depth < t.nodes[nodes[i]].depth
	})
	for _, n := range nodes {
		t.resolveNode(n)
	}
}

// resolveNode checks every unresolved polygon of node n against the other unresolved
// polygons in the node and in all its ancestors. The first conflict found cuts the
// polygon by the conflicting polygon's plane and re-enqueues the surviving fragments; a
// polygon without any conflict moves to the resolved list.
func (t *Octree) resolveNode(n int) {
	node := &t.nodes[n]
	for 0 < len(node.unresolved) {
		p := node.unresolved[0]
		cut := false
		for i := 1; i < len(node.unresolved); i++ {
			if inConflict(p, node.unresolved[i]) {
				t.cutHead(n, node.unresolved[i])
				cut = true
				break
			}
		}
		if cut {
			continue
		}
		for a := node.parent; a != noNode; a = t.nodes[a].parent {
			for _, q := range t.nodes[a].unresolved {
				if inConflict(p, q) {
					t.cutHead(n, q)
					cut = true
					break
				}
			}
			if cut {
				break
			}
		}
		if !cut {
			node.resolved = append(node.resolved, p)
			node.unresolved = node.unresolved[1:]
		}
	}
}

// cutHead removes the head of node n's unresolved list, cuts it by the plane polygon,
// and re-enqueues the surviving fragments at the end of the list.
func (t *Octree) cutHead(n int, plane *Polygon) {
	node := &t.nodes[n]
	p := node.unresolved[0]
	node.unresolved = node.unresolved[1:]
	front, back := SplitPolygon(plane, p)
	if front != nil {
		node.unresolved = append(node.unresolved, front)
	}
	if back != nil {
		node.unresolved = append(node.unresolved, back)
	}
}

// Resolved returns the resolved polygons of all nodes in breadth-first node order.
func (t *Octree) Resolved() []*Polygon {
	var polys []*Polygon
	nodes := []int{0}
	for i := 0; i < len(nodes); i++ {
		node := &t.nodes[nodes[i]]
		polys = append(polys, node.resolved...)
		for _, c := range node.children {
			if c != noNode {
				nodes = append(nodes, c)
			}
		}
	}
	return polys
}

// inConflict returns true when p and q overlap on all three bounding-box axes, each
// straddles the other's plane, and their screen-space projections properly overlap.
// Such a pair cannot be ordered without cutting one of them.
func inConflict(p, q *Polygon) bool {
	if !p.Bounds.OverlapsZ(q.Bounds) || !p.Bounds.OverlapsY(q.Bounds) || !p.Bounds.OverlapsX(q.Bounds) {
		return false
	}
	if ClassifyPolygon(q, p) != Straddling || ClassifyPolygon(p, q) != Straddling {
		return false
	}
	return overlaps(p, q)
}

// MaxDepthBound returns the depth of the furthest vertex plus one, used as the depth
// extent of an octree's root box.
func MaxDepthBound(polys []*Polygon) float64 {
	zMax := 0.0
	for _, p := range polys {
		for _, v := range p.Verts {
			if zMax < v.Z {
				zMax = v.Z
			}
		}
	}
	return zMax + 1.0
}
