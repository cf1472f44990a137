package scene

import (
	"image/color"
	"math"

	"github.com/golang/geo/r3"
)

// Camera projects world coordinates to screen pixels. Project returns the screen
// position of a world point with ok false when it lies behind the camera; the depth of
// a point is its distance to the camera plane along the view direction. Dir must be
// unit length. Project is injected so that a host application can supply its own
// viewport projection.
type Camera struct {
	Pos, Dir      r3.Vector
	Width, Height float64
	Project       func(v r3.Vector) (x, y float64, ok bool)
}

// Depth returns the distance of a world point to the camera plane along the view
// direction.
func (cam *Camera) Depth(v r3.Vector) float64 {
	return v.Sub(cam.Pos).Dot(cam.Dir)
}

// NewPerspectiveCamera returns a pinhole camera at pos looking at target, with the
// given up direction and vertical field of view in radians. Screen y grows downward.
func NewPerspectiveCamera(pos, target, up r3.Vector, fov, width, height float64) *Camera {
	dir := target.Sub(pos).Normalize()
	right := up.Cross(dir).Normalize()
	camUp := dir.Cross(right)
	focal := (height / 2.0) / math.Tan(fov/2.0)

	cam := &Camera{Pos: pos, Dir: dir, Width: width, Height: height}
	cam.Project = func(v r3.Vector) (float64, float64, bool) {
		d := v.Sub(pos)
		depth := d.Dot(dir)
		if depth <= 0.0 {
			return 0.0, 0.0, false
		}
		x := width/2.0 + focal*d.Dot(right)/depth
		y := height/2.0 - focal*d.Dot(camUp)/depth
		return x, y, true
	}
	return cam
}

// Light illuminates mesh faces. A point light shines from Pos towards each face, a
// directional light along Dir. Ambient is added to the diffuse term. Color channels are
// intensities between 0 and 1.
type Light struct {
	Point   bool
	Pos     r3.Vector
	Dir     r3.Vector
	Color   [3]float64
	Ambient [3]float64
}

// Material is the surface appearance of a mesh face. Diffuse channels are between 0 and
// 1. A non-empty Class makes the exported polygons refer to a stylesheet class.
type Material struct {
	Diffuse [3]float64
	Opacity float64
	Class   string
}

// Mesh is a set of polygonal faces in world coordinates. Faces index into Verts;
// FaceStyle, when non-nil, returns the material of a face.
type Mesh struct {
	Verts     []r3.Vector
	Faces     [][]int
	FaceStyle func(face int) *Material
}

// ConvertOptions controls mesh-to-polygon conversion.
type ConvertOptions struct {
	BackfaceCulling bool
	IgnoreMaterials bool

	// Grayscale maps the diffuse term onto a brightness range instead of colors.
	Grayscale     bool
	MinBrightness float64 // 0-255
	MaxBrightness float64 // 0-255

	// Fill overrides lighting entirely; Stroke overrides the stroke color.
	Fill   *color.RGBA
	Stroke *color.RGBA
}

// DefaultConvertOptions is the default conversion configuration.
var DefaultConvertOptions = ConvertOptions{
	BackfaceCulling: true,
	MaxBrightness:   255.0,
}

// ConvertMesh projects every face of the mesh through the camera and returns the
// resulting screen-space polygons, lit by the light and clipped to the viewport. Faces
// partially behind the camera are clipped to its plane first; faces fully behind it or
// outside the viewport are dropped. A nil light renders every face at full brightness.
func ConvertMesh(mesh *Mesh, cam *Camera, light *Light, opts *ConvertOptions) []*Polygon {
	if opts == nil {
		defaultOptions := DefaultConvertOptions
		opts = &defaultOptions
	}

	var polys []*Polygon
	for i, face := range mesh.Faces {
		world := make([]r3.Vector, len(face))
		for j, vi := range face {
			world[j] = mesh.Verts[vi]
		}
		normal := ringNormal(world)
		if opts.BackfaceCulling && 0.0 <= world[0].Sub(cam.Pos).Dot(normal) {
			continue
		}

		var mat *Material
		if mesh.FaceStyle != nil {
			mat = mesh.FaceStyle(i)
		}
		if p := convertFace(world, normal, mat, cam, light, opts); p != nil {
			polys = append(polys, p)
		}
	}
	return polys
}

// convertFace projects the world-space ring to screen space and wraps it into a lit
// polygon, or returns nil when no part of the face is visible.
func convertFace(world []r3.Vector, normal r3.Vector, mat *Material, cam *Camera, light *Light, opts *ConvertOptions) *Polygon {
	verts := make([]r3.Vector, 0, len(world))
	behind := false
	for _, v := range world {
		x, y, ok := cam.Project(v)
		if !ok {
			behind = true
			break
		}
		verts = append(verts, r3.Vector{X: x, Y: y, Z: cam.Depth(v)})
	}
	if behind {
		world = ClipToFront(world, cam.Pos, cam.Dir)
		if world == nil {
			return nil
		}
		verts = verts[:0]
		for _, v := range world {
			x, y, ok := cam.Project(v)
			if !ok {
				continue
			}
			verts = append(verts, r3.Vector{X: x, Y: y, Z: cam.Depth(v)})
		}
	}

	verts = ClipToViewport(verts, cam.Width, cam.Height)
	if verts == nil {
		return nil
	}

	median := r3.Vector{}
	for _, v := range world {
		median = median.Add(v)
	}
	median = median.Mul(1.0 / float64(len(world)))

	style := faceStyle(world[0], normal, mat, light, opts)
	return NewPolygon(verts, cam.Depth(median), style)
}

// faceStyle computes the flat-shaded style of a face at v0 with the given normal.
func faceStyle(v0, normal r3.Vector, mat *Material, light *Light, opts *ConvertOptions) Style {
	var style Style
	if opts.Fill != nil {
		style.Fill = *opts.Fill
	} else {
		if light == nil {
			light = &Light{Dir: normal, Color: [3]float64{1.0, 1.0, 1.0}}
		}
		dir := light.Dir
		if light.Point {
			dir = light.Pos.Sub(v0)
		}
		cosine := 0.0
		if norm := dir.Norm() * normal.Norm(); norm != 0.0 {
			cosine = dir.Dot(normal) / norm
		}
		brightness := math.Max(cosine, 0.0)

		if opts.IgnoreMaterials {
			mat = nil
		}
		if opts.Grayscale {
			gray := clamp255(brightness*(opts.MaxBrightness-opts.MinBrightness) + opts.MinBrightness)
			alpha := 1.0
			if mat != nil {
				alpha = mat.Opacity
			}
			style.Fill = rgba(float64(gray)/255.0, float64(gray)/255.0, float64(gray)/255.0, alpha)
		} else if mat == nil {
			style.Fill = rgba(
				light.Ambient[0]+brightness*light.Color[0],
				light.Ambient[1]+brightness*light.Color[1],
				light.Ambient[2]+brightness*light.Color[2],
				1.0)
		} else {
			style.Fill = rgba(
				mat.Diffuse[0]*(light.Ambient[0]+brightness*light.Color[0]),
				mat.Diffuse[1]*(light.Ambient[1]+brightness*light.Color[1]),
				mat.Diffuse[2]*(light.Ambient[2]+brightness*light.Color[2]),
				mat.Opacity)
		}
	}

	style.Stroke = style.Fill
	if opts.Stroke != nil {
		style.Stroke = *opts.Stroke
	}
	if mat != nil && !opts.IgnoreMaterials {
		style.Class = mat.Class
	}
	return style
}

// rgba converts channel intensities between 0 and 1 to a color, clamping overflow.
func rgba(r, g, b, a float64) color.RGBA {
	return color.RGBA{
		R: clamp255(r * 255.0),
		G: clamp255(g * 255.0),
		B: clamp255(b * 255.0),
		A: clamp255(a * 255.0),
	}
}

func clamp255(f float64) uint8 {
	if f < 0.0 {
		return 0
	} else if 255.0 < f {
		return 255
	}
	return uint8(math.Round(f))
}
