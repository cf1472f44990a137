package scene

import (
	"math"

	"github.com/golang/geo/r3"
)

// ElementKind discriminates the drawing element variants.
type ElementKind int

const (
	PolygonElement ElementKind = iota
	CurveElement
	TextElement
	CurveGroupElement
)

// BezierPoint is an anchor of a projected curve with its left and right control
// handles, all in screen space with depth.
type BezierPoint struct {
	Left  r3.Vector
	Right r3.Vector
	Pos   r3.Vector
}

// Element is a drawable item in screen space: a depth-sorted polygon, a projected
// cubic Bézier chain, a text anchor with its lines, or a group of curves that sorts as
// one unit. Only the fields of the active kind are set.
type Element struct {
	Kind ElementKind

	// PolygonElement
	Polygon *Polygon

	// CurveElement
	Points []BezierPoint
	Cyclic bool
	Curved bool // false draws straight lines between the anchors

	// TextElement
	Lines []string

	// CurveGroupElement, each curve keeps its own style
	Group []*Element

	Bounds Box
	Style  Style
}

// NewPolygonElement wraps a polygon into an element.
func NewPolygonElement(p *Polygon) *Element {
	return &Element{Kind: PolygonElement, Polygon: p, Bounds: p.Bounds, Style: p.Style}
}

// NewCurveElement returns a curve element over the given anchors.
func NewCurveElement(points []BezierPoint, cyclic, curved bool, style Style) *Element {
	e := &Element{Kind: CurveElement, Points: points, Cyclic: cyclic, Curved: curved, Style: style}
	b := Box{points[0].Pos.X, points[0].Pos.X, points[0].Pos.Y, points[0].Pos.Y, points[0].Pos.Z, points[0].Pos.Z}
	for _, pt := range points[1:] {
		b.XMin = math.Min(pt.Pos.X, b.XMin)
		b.XMax = math.Max(pt.Pos.X, b.XMax)
		b.YMin = math.Min(pt.Pos.Y, b.YMin)
		b.YMax = math.Max(pt.Pos.Y, b.YMax)
		b.ZMin = math.Min(pt.Pos.Z, b.ZMin)
		b.ZMax = math.Max(pt.Pos.Z, b.ZMax)
	}
	e.Bounds = b
	return e
}

// NewCurveGroupElement groups curve elements so that they sort by a shared bounding
// box but render with their individual styles.
func NewCurveGroupElement(curves []*Element) *Element {
	e := &Element{Kind: CurveGroupElement, Group: curves}
	b := curves[0].Bounds
	for _, c := range curves[1:] {
		b.XMin = math.Min(c.Bounds.XMin, b.XMin)
		b.XMax = math.Max(c.Bounds.XMax, b.XMax)
		b.YMin = math.Min(c.Bounds.YMin, b.YMin)
		b.YMax = math.Max(c.Bounds.YMax, b.YMax)
		b.ZMin = math.Min(c.Bounds.ZMin, b.ZMin)
		b.ZMax = math.Max(c.Bounds.ZMax, b.ZMax)
	}
	e.Bounds = b
	return e
}

// NewTextElement returns a text element anchored at the top-left of bounds.
func NewTextElement(lines []string, bounds Box, style Style) *Element {
	return &Element{Kind: TextElement, Lines: lines, Bounds: bounds, Style: style}
}

// Depth returns the element's depth under the given heuristic. WeightedCenter falls
// back to Center as elements do not keep per-vertex depths.
func (e *Element) Depth(h Heuristic) float64 {
	b := e.Bounds
	if e.Kind == PolygonElement {
		b = e.Polygon.Bounds
	}
	switch h {
	case ClosestVertex:
		return b.ZMin
	case FurthestVertex:
		return b.ZMax
	case Center, WeightedCenter:
		return (b.ZMin + b.ZMax) / 2.0
	}
	panic("scene: invalid sorting heuristic")
}

// MergeByDepth merges depth-descending element groups into one back-to-front sequence.
// Each group must already be sorted far to near; the merge repeatedly takes the group
// whose head is furthest away.
func MergeByDepth(groups [][]*Element, h Heuristic) []*Element {
	var queues [][]*Element
	n := 0
	for _, group := range groups {
		if 0 < len(group) {
			queues = append(queues, group)
			n += len(group)
		}
	}

	merged := make([]*Element, 0, n)
	for 1 < len(queues) {
		next := 0
		depth := math.Inf(-1)
		for i, queue := range queues {
			if d := queue[0].Depth(h); depth < d {
				depth = d
				next = i
			}
		}
		merged = append(merged, queues[next][0])
		if queues[next] = queues[next][1:]; len(queues[next]) == 0 {
			queues = append(queues[:next], queues[next+1:]...)
		}
	}
	if len(queues) == 1 {
		merged = append(merged, queues[0]...)
	}
	return merged
}
