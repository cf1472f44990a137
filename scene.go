// Package scene converts sets of screen-space polygons into correctly depth-ordered
// sequences for painter's-algorithm drawing, resolving mutual occlusion by cutting
// polygons with a BSP tree or an octree-based conflict resolver.
package scene

import (
	"time"

	"github.com/golang/geo/r3"
)

// CutAlgorithm selects how mutually occluding polygons are resolved before sorting.
type CutAlgorithm int

const (
	// CutOctree detects and cuts conflicting polygon pairs within an octree, then
	// sorts by the depth heuristic. Faster than a full BSP on clustered scenes.
	CutOctree CutAlgorithm = iota
	// CutBSP builds a binary space partition and traverses it from the viewpoint,
	// giving an exact back-to-front order.
	CutBSP
	// CutNone skips cutting entirely and only sorts by the depth heuristic.
	CutNone
	// CutNewell re-orders and cuts pairwise with Newell's algorithm. Legacy.
	CutNewell
)

func (a CutAlgorithm) String() string {
	switch a {
	case CutOctree:
		return "Octree"
	case CutBSP:
		return "BSP"
	case CutNone:
		return "None"
	case CutNewell:
		return "Newell"
	}
	return "Invalid"
}

// Options holds the sorting configuration. Width and Height span the viewport in
// pixels; the viewpoint used by the cutting algorithms is its center at zero depth.
// PartitionLimit caps the partition cycles of the BSP build and the cuts of the Newell
// sort, valid between 5 and 1000; zero selects the default. Trace, when non-nil,
// receives progress lines with phase timings and counts.
type Options struct {
	Algorithm      CutAlgorithm
	Heuristic      Heuristic
	PartitionLimit int
	Width, Height  float64
	Trace          func(format string, args ...interface{})
}

// DefaultOptions is the default configuration used by Sort.
var DefaultOptions = Options{
	Algorithm:      CutOctree,
	Heuristic:      Center,
	PartitionLimit: 500,
}

// Sort orders polys back to front for painter's-algorithm drawing. Polygons that
// straddle others are replaced by smaller fragments carrying the same style. When the
// partition limit is exceeded it returns a PartitionLimitError and no polygons.
func Sort(polys []*Polygon, opts *Options) ([]*Polygon, error) {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}
	limit := opts.PartitionLimit
	if limit == 0 {
		limit = DefaultOptions.PartitionLimit
	} else if limit < 5 {
		limit = 5
	} else if 1000 < limit {
		limit = 1000
	}
	trace := opts.Trace
	if trace == nil {
		trace = func(string, ...interface{}) {}
	}

	if opts.Algorithm == CutNone {
		SortByDepth(polys, opts.Heuristic)
		return polys, nil
	}

	viewpoint := r3.Vector{X: opts.Width / 2.0, Y: opts.Height / 2.0, Z: 0.0}
	CorrectNormals(polys, viewpoint)

	start := time.Now()
	switch opts.Algorithm {
	case CutBSP:
		tree, err := BuildBSP(polys, limit)
		if err != nil {
			return nil, err
		}
		trace("bsp: built tree in %v, %d partition cycles, %d leaf nodes", time.Since(start), tree.cycles, tree.leaves)
		start = time.Now()
		sorted := tree.Traverse(viewpoint)
		trace("bsp: traversed %d polygons in %v", len(sorted), time.Since(start))
		return sorted, nil
	case CutNewell:
		sorted, err := SortNewell(polys, limit)
		if err != nil {
			return nil, err
		}
		trace("newell: sorted %d polygons in %v", len(sorted), time.Since(start))
		SortByDepth(sorted, opts.Heuristic)
		return sorted, nil
	case CutOctree:
		tree := NewOctree(Box{0.0, opts.Width, 0.0, opts.Height, 0.0, MaxDepthBound(polys)})
		for _, p := range polys {
			tree.Insert(p)
		}
		trace("octree: built %d nodes in %v", len(tree.nodes), time.Since(start))
		start = time.Now()
		tree.ResolveConflicts()
		resolved := tree.Resolved()
		trace("octree: resolved %d polygons in %v", len(resolved), time.Since(start))
		SortByDepth(resolved, opts.Heuristic)
		return resolved, nil
	}
	panic("scene: invalid cutting algorithm")
}
