package scene

import "github.com/golang/geo/r3"

const (
	axisX = iota
	axisY
	axisZ
)

// intersectOnX returns the point on the line through a and b at the given x,
// interpolating y and depth.
func intersectOnX(x float64, a, b r3.Vector) r3.Vector {
	ky := (b.Y - a.Y) / (b.X - a.X)
	kz := (b.Z - a.Z) / (b.X - a.X)
	return r3.Vector{X: x, Y: a.Y + (x-a.X)*ky, Z: a.Z + (x-a.X)*kz}
}

// intersectOnY returns the point on the line through a and b at the given y.
func intersectOnY(y float64, a, b r3.Vector) r3.Vector {
	kx := (b.X - a.X) / (b.Y - a.Y)
	kz := (b.Z - a.Z) / (b.Y - a.Y)
	return r3.Vector{X: a.X + (y-a.Y)*kx, Y: y, Z: a.Z + (y-a.Y)*kz}
}

// intersectOnZ returns the point on the line through a and b at the given depth.
func intersectOnZ(z float64, a, b r3.Vector) r3.Vector {
	kx := (b.X - a.X) / (b.Z - a.Z)
	ky := (b.Y - a.Y) / (b.Z - a.Z)
	return r3.Vector{X: a.X + (z-a.Z)*kx, Y: a.Y + (z-a.Z)*ky, Z: z}
}

func axisCoord(v r3.Vector, axis int) float64 {
	switch axis {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	}
	return v.Z
}

func axisIntersect(axis int, val float64, a, b r3.Vector) r3.Vector {
	switch axis {
	case axisX:
		return intersectOnX(val, a, b)
	case axisY:
		return intersectOnY(val, a, b)
	}
	return intersectOnZ(val, a, b)
}

// clipAxis clips the ring against the axis-aligned boundary at val, keeping the side
// below it, or above when keepAbove is set. Crossing edges get an interpolated vertex
// on the boundary.
func clipAxis(verts []r3.Vector, axis int, val float64, keepAbove bool) []r3.Vector {
	inside := func(c float64) bool {
		if keepAbove {
			return val <= c
		}
		return c <= val
	}

	var clipped []r3.Vector
	for i, v := range verts {
		next := verts[(i+1)%len(verts)]
		c0, c1 := axisCoord(v, axis), axisCoord(next, axis)
		if inside(c0) && inside(c1) {
			clipped = append(clipped, next)
		} else if !inside(c0) && inside(c1) {
			clipped = append(clipped, axisIntersect(axis, val, v, next), next)
		} else if inside(c0) && !inside(c1) {
			clipped = append(clipped, axisIntersect(axis, val, v, next))
		}
	}
	return clipped
}

// ClipToViewport clips a screen-space ring against the rectangle spanning (0,0) to
// (width,height). A ring fully inside passes through untouched; fewer than three
// surviving vertices means the polygon is invisible and nil is returned.
func ClipToViewport(verts []r3.Vector, width, height float64) []r3.Vector {
	inside := true
	for _, v := range verts {
		if v.X < 0.0 || width < v.X || v.Y < 0.0 || height < v.Y {
			inside = false
			break
		}
	}
	if inside {
		return verts
	}

	verts = clipAxis(verts, axisX, 0.0, true)
	verts = clipAxis(verts, axisY, 0.0, true)
	verts = clipAxis(verts, axisX, width, false)
	verts = clipAxis(verts, axisY, height, false)
	if len(verts) < 3 {
		return nil
	}
	return verts
}

// ClipToFront cuts a world-space ring by the camera plane and returns the part in front
// of the camera, or nil when the ring lies entirely behind it. Only the camera position
// and view direction define the plane.
func ClipToFront(verts []r3.Vector, camPos, camDir r3.Vector) []r3.Vector {
	plane := &Polygon{Verts: []r3.Vector{camPos}, Normal: camDir}
	front, _ := SplitPolygon(plane, &Polygon{Verts: verts})
	if front == nil {
		return nil
	}
	return front.Verts
}
