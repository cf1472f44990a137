package scene

// Epsilon is the distance below which a point is considered to lie on a plane.
var Epsilon = 1e-3

// CullEpsilon is the total coordinate extent below which a split fragment is discarded.
var CullEpsilon = 1e-6

// CutOffset is the distance by which intersection points are nudged along the cut edge,
// so that each fragment ends up strictly on its own side of the cutting plane.
var CutOffset = 1e-3

// Precision is the number of significant digits used when writing coordinates.
var Precision = 5

const noNode = -1

////////////////////////////////////////////////////////////////

// Box is an axis-aligned bounding box in screen space, where X and Y are pixel
// coordinates and Z is the camera-space depth.
type Box struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// OverlapsX returns true if the X extents of b and o overlap or touch.
func (b Box) OverlapsX(o Box) bool {
	return b.XMin <= o.XMax && o.XMin <= b.XMax
}

// OverlapsY returns true if the Y extents of b and o overlap or touch.
func (b Box) OverlapsY(o Box) bool {
	return b.YMin <= o.YMax && o.YMin <= b.YMax
}

// OverlapsZ returns true if the depth extents of b and o overlap or touch.
func (b Box) OverlapsZ(o Box) bool {
	return b.ZMin <= o.ZMax && o.ZMin <= b.ZMax
}

// Overlaps returns true if b and o overlap on all three axes.
func (b Box) Overlaps(o Box) bool {
	return b.OverlapsX(o) && b.OverlapsY(o) && b.OverlapsZ(o)
}

// Contains returns true if o lies entirely within b.
func (b Box) Contains(o Box) bool {
	return b.XMin <= o.XMin && o.XMax <= b.XMax &&
		b.YMin <= o.YMin && o.YMax <= b.YMax &&
		b.ZMin <= o.ZMin && o.ZMax <= b.ZMax
}
