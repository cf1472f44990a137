package scene

import (
	"image/color"
	"math"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// Style is the paint carried by a polygon. The sorting algorithms never interpret it,
// they only propagate it verbatim to split fragments. When Class is set the renderer
// refers to a stylesheet class instead of emitting inline colors.
type Style struct {
	Fill   color.RGBA
	Stroke color.RGBA
	Class  string
}

// Polygon is a simple planar ring of at least three vertices in screen space. X and Y
// of each vertex are pixel coordinates, Z is the camera-space depth of the vertex along
// the view direction. The last vertex connects back to the first.
//
// The normal is derived from the vertex ring at construction and is not recomputed when
// the vertices change; neither are the bounds. Callers that mutate Verts must call
// RecalcBounds themselves.
type Polygon struct {
	Verts  []r3.Vector
	Normal r3.Vector
	Depth  float64
	Style  Style
	Bounds Box

	marked bool // Newell's algorithm
}

// NewPolygon returns a polygon over verts with its normal derived from the vertex ring
// and its bounds set.
func NewPolygon(verts []r3.Vector, depth float64, style Style) *Polygon {
	p := &Polygon{Verts: verts, Normal: ringNormal(verts), Depth: depth, Style: style}
	p.RecalcBounds()
	return p
}

// RecalcBounds recomputes the bounding box over the vertices.
func (p *Polygon) RecalcBounds() {
	b := Box{p.Verts[0].X, p.Verts[0].X, p.Verts[0].Y, p.Verts[0].Y, p.Verts[0].Z, p.Verts[0].Z}
	for _, v := range p.Verts[1:] {
		b.XMin = math.Min(v.X, b.XMin)
		b.XMax = math.Max(v.X, b.XMax)
		b.YMin = math.Min(v.Y, b.YMin)
		b.YMax = math.Max(v.Y, b.YMax)
		b.ZMin = math.Min(v.Z, b.ZMin)
		b.ZMax = math.Max(v.Z, b.ZMax)
	}
	p.Bounds = b
}

// Ring returns the polygon's outline projected onto the screen plane, closed.
func (p *Polygon) Ring() orb.Ring {
	ring := make(orb.Ring, len(p.Verts)+1)
	for i, v := range p.Verts {
		ring[i] = orb.Point{v.X, v.Y}
	}
	ring[len(p.Verts)] = ring[0]
	return ring
}

// ringNormal computes the unit normal of a vertex ring using Newell's method. Concave
// rings are fine, the winding of the ring decides the direction.
func ringNormal(verts []r3.Vector) r3.Vector {
	n := r3.Vector{}
	for i, v := range verts {
		w := verts[(i+1)%len(verts)]
		n.X += (v.Y - w.Y) * (v.Z + w.Z)
		n.Y += (v.Z - w.Z) * (v.X + w.X)
		n.Z += (v.X - w.X) * (v.Y + w.Y)
	}
	if n.Norm() == 0.0 {
		return n
	}
	return n.Normalize()
}

// CorrectNormals flips each polygon's normal that points toward the viewpoint, so that
// afterwards every normal faces away from it. The cutting algorithms rely on this
// pre-pass to make their front/back decisions consistent.
func CorrectNormals(polys []*Polygon, viewpoint r3.Vector) {
	for _, p := range polys {
		if 0.0 < viewpoint.Sub(p.Verts[0]).Dot(p.Normal) {
			p.Normal = p.Normal.Mul(-1.0)
		}
	}
}
