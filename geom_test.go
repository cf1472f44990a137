package scene

import (
	"fmt"
	"image/color"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb/planar"
	"github.com/tdewolff/test"
)

// rect returns an axis-aligned rectangle at constant depth z.
func rect(x0, y0, x1, y1, z float64) *Polygon {
	return NewPolygon([]r3.Vector{
		{X: x0, Y: y0, Z: z},
		{X: x1, Y: y0, Z: z},
		{X: x1, Y: y1, Z: z},
		{X: x0, Y: y1, Z: z},
	}, z, Style{})
}

// ramp returns a rectangle tilted along y, with depth z0 at y0 and z1 at y1.
func ramp(x0, y0, x1, y1, z0, z1 float64) *Polygon {
	return NewPolygon([]r3.Vector{
		{X: x0, Y: y0, Z: z0},
		{X: x1, Y: y0, Z: z0},
		{X: x1, Y: y1, Z: z1},
		{X: x0, Y: y1, Z: z1},
	}, (z0+z1)/2.0, Style{})
}

func area(p *Polygon) float64 {
	return math.Abs(planar.Area(p.Ring()))
}

func TestClassifyPoint(t *testing.T) {
	plane := rect(0.0, 0.0, 1.0, 1.0, 2.0)
	var tts = []struct {
		v    r3.Vector
		side Side
	}{
		{r3.Vector{X: 0.5, Y: 0.5, Z: 3.0}, Front},
		{r3.Vector{X: 0.5, Y: 0.5, Z: 1.0}, Behind},
		{r3.Vector{X: 0.5, Y: 0.5, Z: 2.0}, On},
		{r3.Vector{X: 5.0, Y: -5.0, Z: 2.0005}, On},
		{r3.Vector{Z: 1.9995}, On},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, ClassifyPoint(plane, tt.v), tt.side)
		})
	}
}

func TestClassifyPolygon(t *testing.T) {
	plane := rect(0.0, 0.0, 1.0, 1.0, 2.0)
	var tts = []struct {
		p    *Polygon
		side Side
	}{
		{rect(0.0, 0.0, 1.0, 1.0, 3.0), Front},
		{rect(0.0, 0.0, 1.0, 1.0, 1.0), Behind},
		{rect(5.0, 5.0, 6.0, 6.0, 2.0), Front}, // coplanar classifies front
		{ramp(0.0, 0.0, 1.0, 1.0, 1.5, 2.5), Straddling},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, ClassifyPolygon(plane, tt.p), tt.side)
		})
	}
}

func TestSplitPolygon(t *testing.T) {
	plane := ramp(-0.5, 0.25, 1.5, 0.75, 1.5, 2.5)
	p := rect(0.0, 0.0, 1.0, 1.0, 2.0)
	p.Style = Style{Fill: color.RGBA{255, 0, 0, 255}, Class: "roof"}

	front, back := SplitPolygon(plane, p)
	test.That(t, front != nil && back != nil)
	test.T(t, len(front.Verts), 4)
	test.T(t, len(back.Verts), 4)

	// the cut runs along y=0.5, each fragment is nudged onto its own side
	test.Float(t, front.Bounds.YMax, 0.5-CutOffset)
	test.Float(t, back.Bounds.YMin, 0.5+CutOffset)
	test.T(t, ClassifyPolygon(plane, front), Front)
	test.T(t, ClassifyPolygon(plane, back), Behind)

	// fragments inherit style and normal, the original polygon is untouched
	test.T(t, front.Style, p.Style)
	test.T(t, back.Style, p.Style)
	test.T(t, front.Normal, p.Normal)
	test.T(t, len(p.Verts), 4)
	test.Float(t, p.Bounds.YMax, 1.0)

	// the fragments cover the original area up to the cut gap
	test.That(t, math.Abs(area(front)+area(back)-area(p)) < 0.01)
}

func TestSplitPolygonOneSided(t *testing.T) {
	plane := rect(0.0, 0.0, 1.0, 1.0, 2.0)

	front, back := SplitPolygon(plane, rect(0.0, 0.0, 1.0, 1.0, 3.0))
	test.That(t, back == nil)
	test.T(t, len(front.Verts), 4)
	test.Float(t, area(front), 1.0)

	front, back = SplitPolygon(plane, rect(0.0, 0.0, 1.0, 1.0, 1.0))
	test.That(t, front == nil)
	test.T(t, len(back.Verts), 4)
}

func TestIsFragment(t *testing.T) {
	var tts = []struct {
		verts    []r3.Vector
		fragment bool
	}{
		{nil, true},
		{[]r3.Vector{{}, {X: 1.0}}, true},
		{[]r3.Vector{{}, {X: 1e-8}, {X: 1e-8, Y: 1e-8}}, true},
		{[]r3.Vector{{}, {X: 1.0}, {X: 1.0, Y: 1.0}}, false},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, isFragment(tt.verts), tt.fragment)
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := rect(0.0, 0.0, 1.0, 1.0, 2.0)
	var tts = []struct {
		b        *Polygon
		overlaps bool
	}{
		{rect(0.5, 0.5, 1.5, 1.5, 2.0), true},
		{rect(0.25, 0.25, 0.75, 0.75, 2.0), false}, // contained
		{rect(1.0, 0.0, 2.0, 1.0, 2.0), false},     // touching edge
		{rect(0.0, 0.0, 1.0, 1.0, 5.0), false},     // identical outline
		{rect(3.0, 3.0, 4.0, 4.0, 2.0), false},     // disjoint
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, overlaps(a, tt.b), tt.overlaps)
			test.T(t, overlaps(tt.b, a), tt.overlaps)
		})
	}
}

func TestBoxOverlaps(t *testing.T) {
	b := Box{0.0, 1.0, 0.0, 1.0, 0.0, 1.0}
	test.T(t, b.Overlaps(Box{0.5, 1.5, 0.5, 1.5, 0.5, 1.5}), true)
	test.T(t, b.Overlaps(Box{1.0, 2.0, 0.0, 1.0, 0.0, 1.0}), true) // touching counts
	test.T(t, b.Overlaps(Box{2.0, 3.0, 0.0, 1.0, 0.0, 1.0}), false)
	test.T(t, b.Contains(Box{0.25, 0.75, 0.25, 0.75, 0.0, 1.0}), true)
	test.T(t, b.Contains(Box{0.25, 1.25, 0.25, 0.75, 0.0, 1.0}), false)
}
