package scene

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// Side is the position of a point or polygon relative to a plane.
type Side int

const (
	Behind Side = iota - 1
	On
	Front
)

// Straddling marks a polygon with vertices on both sides of a plane.
const Straddling = On

func (side Side) String() string {
	switch side {
	case Behind:
		return "Behind"
	case On:
		return "On"
	case Front:
		return "Front"
	}
	return "Invalid"
}

// ClassifyPoint returns the position of v relative to the plane through plane.Verts[0]
// with normal plane.Normal. Points within Epsilon of the plane are On.
func ClassifyPoint(plane *Polygon, v r3.Vector) Side {
	d := v.Sub(plane.Verts[0]).Dot(plane.Normal)
	if math.Abs(d) < Epsilon {
		return On
	} else if 0.0 < d {
		return Front
	}
	return Behind
}

// ClassifyPolygon returns Front when all of p's vertices are on or in front of the
// plane, Behind when all are on or behind it, and Straddling otherwise. A polygon lying
// fully on the plane classifies as Front, which breaks the tie the same way for both
// polygons of a coplanar pair.
func ClassifyPolygon(plane, p *Polygon) Side {
	allFront, allBack := true, true
	for _, v := range p.Verts {
		switch ClassifyPoint(plane, v) {
		case Front:
			allBack = false
		case Behind:
			allFront = false
		}
	}
	if allFront {
		return Front
	} else if allBack {
		return Behind
	}
	return Straddling
}

// inFront is the boundary test used for splitting. Unlike ClassifyPoint it has no
// epsilon band, every point belongs to exactly one side.
func inFront(plane *Polygon, v r3.Vector) bool {
	return 0.0 <= v.Sub(plane.Verts[0]).Dot(plane.Normal)
}

// intersectSegmentPlane returns the intersection of the line through a and b with the
// plane, or false when the line is parallel to it.
func intersectSegmentPlane(a, b r3.Vector, plane *Polygon) (r3.Vector, bool) {
	dir := b.Sub(a)
	denom := dir.Dot(plane.Normal)
	if denom == 0.0 {
		return r3.Vector{}, false
	}
	t := plane.Verts[0].Sub(a).Dot(plane.Normal) / denom
	return a.Add(dir.Mul(t)), true
}

// SplitPolygon cuts p by the plane and returns its front and back fragments. Each
// intersection point is nudged by CutOffset along the cut edge so that both fragments
// fall strictly on their own side of the plane. A fragment that degenerates to fewer
// than three vertices or to a near-zero extent is nil. Both fragments are fresh
// polygons carrying p's style and normal; p itself is left untouched.
func SplitPolygon(plane, p *Polygon) (*Polygon, *Polygon) {
	var frontVerts, backVerts []r3.Vector
	verts := p.Verts
	front := inFront(plane, verts[len(verts)-1])
	for i, v := range verts {
		if inFront(plane, v) {
			if front {
				frontVerts = append(frontVerts, v)
			} else {
				front = true
				prev := verts[(i-1+len(verts))%len(verts)]
				offset := prev.Sub(v).Normalize().Mul(CutOffset)
				if ip, ok := intersectSegmentPlane(v, prev, plane); ok {
					backVerts = append(backVerts, ip.Add(offset))
					frontVerts = append(frontVerts, ip.Sub(offset), v)
				} else {
					// edge parallel to the plane, duplicate the vertex onto both sides
					backVerts = append(backVerts, v)
					frontVerts = append(frontVerts, v)
				}
			}
		} else {
			if front {
				front = false
				prev := verts[(i-1+len(verts))%len(verts)]
				offset := prev.Sub(v).Normalize().Mul(CutOffset)
				if ip, ok := intersectSegmentPlane(v, prev, plane); ok {
					frontVerts = append(frontVerts, ip.Add(offset))
					backVerts = append(backVerts, ip.Sub(offset), v)
				} else {
					frontVerts = append(frontVerts, v)
					backVerts = append(backVerts, v)
				}
			} else {
				backVerts = append(backVerts, v)
			}
		}
	}
	return fragment(p, frontVerts), fragment(p, backVerts)
}

// fragment wraps verts into a polygon inheriting p's attributes, or nil when the verts
// are degenerate.
func fragment(p *Polygon, verts []r3.Vector) *Polygon {
	if isFragment(verts) {
		return nil
	}
	f := &Polygon{Verts: verts, Normal: p.Normal, Depth: p.Depth, Style: p.Style}
	f.RecalcBounds()
	return f
}

// isFragment returns true when verts span a near-zero extent.
func isFragment(verts []r3.Vector) bool {
	if len(verts) < 3 {
		return true
	}
	sum := 0.0
	for i := 1; i < len(verts); i++ {
		sum += math.Abs(verts[i-1].X-verts[i].X) +
			math.Abs(verts[i-1].Y-verts[i].Y) +
			math.Abs(verts[i-1].Z-verts[i].Z)
	}
	return sum < CullEpsilon
}

// overlaps returns true when the screen-space projections of p and q properly overlap,
// that is their outlines cross. Mere touching or full containment of one by the other
// does not count.
func overlaps(p, q *Polygon) bool {
	a, b := p.Ring(), q.Ring()
	for i := 1; i < len(a); i++ {
		for j := 1; j < len(b); j++ {
			if segmentsCross(a[i-1], a[i], b[j-1], b[j]) {
				return true
			}
		}
	}
	return false
}

// segmentsCross returns true when segments ab and cd intersect in a single point
// interior to both.
func segmentsCross(a, b, c, d orb.Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	return (0.0 < d1 && d2 < 0.0 || d1 < 0.0 && 0.0 < d2) &&
		(0.0 < d3 && d4 < 0.0 || d3 < 0.0 && 0.0 < d4)
}

// cross returns the cross product of ab with ap.
func cross(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}
