package scene

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/tdewolff/test"
)

func TestNewPolygon(t *testing.T) {
	p := rect(0.0, 0.0, 1.0, 1.0, 2.0)
	test.Float(t, p.Normal.X, 0.0)
	test.Float(t, p.Normal.Y, 0.0)
	test.Float(t, p.Normal.Z, 1.0)
	test.T(t, p.Bounds, Box{0.0, 1.0, 0.0, 1.0, 2.0, 2.0})

	p = ramp(0.0, 0.0, 1.0, 1.0, 1.5, 2.5)
	test.Float(t, p.Normal.X, 0.0)
	test.Float(t, p.Normal.Y, -1.0/math.Sqrt2)
	test.Float(t, p.Normal.Z, 1.0/math.Sqrt2)
	test.Float(t, p.Normal.Norm(), 1.0)
}

func TestPolygonRing(t *testing.T) {
	ring := rect(0.0, 0.0, 1.0, 1.0, 2.0).Ring()
	test.T(t, len(ring), 5)
	test.T(t, ring[0], ring[4])
	test.Float(t, ring[2][0], 1.0)
	test.Float(t, ring[2][1], 1.0)
}

func TestRecalcBounds(t *testing.T) {
	p := rect(0.0, 0.0, 1.0, 1.0, 2.0)
	p.Verts[2] = r3.Vector{X: 4.0, Y: 1.0, Z: 2.0}
	p.RecalcBounds()
	test.Float(t, p.Bounds.XMax, 4.0)
}

func TestCorrectNormals(t *testing.T) {
	p := rect(0.0, 0.0, 1.0, 1.0, 2.0)

	// viewpoint behind the polygon, the normal already faces away
	CorrectNormals([]*Polygon{p}, r3.Vector{X: 0.5, Y: 0.5})
	test.Float(t, p.Normal.Z, 1.0)

	// viewpoint in front, the normal flips
	CorrectNormals([]*Polygon{p}, r3.Vector{X: 0.5, Y: 0.5, Z: 5.0})
	test.Float(t, p.Normal.Z, -1.0)
}
