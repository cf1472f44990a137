package scene

import "sort"

// SortNewell depth sorts polys with Newell's algorithm: polygons are ordered by their
// furthest vertex and pairs that obscure each other are re-ordered or cut until the
// order is consistent. It is kept for compatibility; the BSP and octree algorithms are
// preferred. The number of cuts is capped by limit so that pathological
// mutual-obscuration cycles fail with a PartitionLimitError instead of looping forever.
func SortNewell(polys []*Polygon, limit int) ([]*Polygon, error) {
	sort.SliceStable(polys, func(i, j int) bool {
		return polys[j].Bounds.ZMax < polys[i].Bounds.ZMax
	})

	sorted := make([]*Polygon, 0, len(polys))
	cuts := 0
	for 0 < len(polys) {
		p := polys[0]
		restart := false
		for i := 1; i < len(polys); i++ {
			q := polys[i]
			if p.Bounds.ZMin < q.Bounds.ZMax {
				// depth ranges overlap
				if !pObscuresQ(p, q) {
					continue
				}
				if !q.marked && !pObscuresQ(q, p) {
					// q can safely go in front of p; mark it so it is cut the next
					// time it conflicts
					q.marked = true
					copy(polys[1:i+1], polys[:i])
					polys[0] = q
					restart = true
					break
				}
				if limit <= cuts {
					return nil, PartitionLimitError{limit}
				}
				cuts++
				var front, back *Polygon
				if ClassifyPolygon(q, p) == Straddling {
					front, back = SplitPolygon(q, p)
					polys = polys[1:]
				} else if ClassifyPolygon(p, q) == Straddling {
					front, back = SplitPolygon(p, q)
					polys = append(polys[:i], polys[i+1:]...)
				} else {
					// neither plane separates cleanly, halve p across its longest axis
					front, back = halve(p)
					polys = polys[1:]
				}
				insertFragments(&polys, front, back)
				restart = true
				break
			}
			if q.marked {
				continue
			}
			break
		}
		if restart {
			continue
		}
		sorted = append(sorted, p)
		polys = polys[1:]
	}
	return sorted, nil
}

// pObscuresQ returns true when p may hide parts of q: their screen extents overlap, p
// is not wholly behind q's plane, q is not wholly in front of p's plane, and their
// projections properly overlap.
func pObscuresQ(p, q *Polygon) bool {
	if !p.Bounds.OverlapsY(q.Bounds) || !p.Bounds.OverlapsX(q.Bounds) {
		return false
	}
	if ClassifyPolygon(q, p) == Behind {
		return false
	}
	if ClassifyPolygon(p, q) == Front {
		return false
	}
	return overlaps(p, q)
}

// insertFragments re-enters surviving fragments into the candidate list, each before
// the first unmarked polygon whose furthest vertex it lies behind, or at the end when
// there is none.
func insertFragments(polys *[]*Polygon, fragments ...*Polygon) {
	for _, f := range fragments {
		if f == nil {
			continue
		}
		f.marked = false
		inserted := false
		for j, p := range *polys {
			if !p.marked && p.Bounds.ZMax < f.Bounds.ZMax {
				*polys = append(*polys, nil)
				copy((*polys)[j+1:], (*polys)[j:])
				(*polys)[j] = f
				inserted = true
				break
			}
		}
		if !inserted {
			*polys = append(*polys, f)
		}
	}
}

// halve splits p in half across the longest axis of its bounding box. It is the
// fallback for polygon pairs that obscure each other without either plane separating
// them.
func halve(p *Polygon) (*Polygon, *Polygon) {
	xLen := p.Bounds.XMax - p.Bounds.XMin
	yLen := p.Bounds.YMax - p.Bounds.YMin
	zLen := p.Bounds.ZMax - p.Bounds.ZMin

	var axis int
	var mid float64
	if xLen < zLen && yLen < zLen {
		axis, mid = axisZ, p.Bounds.ZMin+zLen/2.0
	} else if xLen < yLen {
		axis, mid = axisY, p.Bounds.YMin+yLen/2.0
	} else {
		axis, mid = axisX, p.Bounds.XMin+xLen/2.0
	}
	a := fragment(p, clipAxis(p.Verts, axis, mid, false))
	b := fragment(p, clipAxis(p.Verts, axis, mid, true))
	return a, b
}
