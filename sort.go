package scene

import "sort"

// Heuristic selects the scalar depth by which the non-cutting sort orders polygons.
type Heuristic int

const (
	ClosestVertex  Heuristic = iota // minimum vertex depth
	Center                          // midpoint of minimum and maximum depth
	FurthestVertex                  // maximum vertex depth
	WeightedCenter                  // mean of all vertex depths
)

func (h Heuristic) String() string {
	switch h {
	case ClosestVertex:
		return "ClosestVertex"
	case Center:
		return "Center"
	case FurthestVertex:
		return "FurthestVertex"
	case WeightedCenter:
		return "WeightedCenter"
	}
	return "Invalid"
}

// SortByDepth sorts polys far to near by the chosen bounding-box heuristic. It does not
// cut anything and trades correctness near intersecting polygons for speed. The sort is
// stable so that equal depths keep their input order. WeightedCenter also stores the
// mean vertex depth on each polygon as its Depth. An invalid heuristic panics.
func SortByDepth(polys []*Polygon, h Heuristic) {
	var depth func(*Polygon) float64
	switch h {
	case ClosestVertex:
		depth = func(p *Polygon) float64 { return p.Bounds.ZMin }
	case Center:
		depth = func(p *Polygon) float64 { return (p.Bounds.ZMin + p.Bounds.ZMax) / 2.0 }
	case FurthestVertex:
		depth = func(p *Polygon) float64 { return p.Bounds.ZMax }
	case WeightedCenter:
		for _, p := range polys {
			d := 0.0
			for _, v := range p.Verts {
				d += v.Z
			}
			p.Depth = d / float64(len(p.Verts))
		}
		depth = func(p *Polygon) float64 { return p.Depth }
	default:
		panic("scene: invalid sorting heuristic")
	}
	sort.SliceStable(polys, func(i, j int) bool {
		return depth(polys[j]) < depth(polys[i])
	})
}
