package scene

import (
	"image/color"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/tdewolff/test"
)

func testCamera() *Camera {
	return NewPerspectiveCamera(r3.Vector{Z: -5.0}, r3.Vector{}, r3.Vector{Y: 1.0}, math.Pi/2.0, 100.0, 100.0)
}

func TestPerspectiveCamera(t *testing.T) {
	cam := testCamera()
	test.Float(t, cam.Depth(r3.Vector{}), 5.0)

	x, y, ok := cam.Project(r3.Vector{})
	test.That(t, ok)
	test.Float(t, x, 50.0)
	test.Float(t, y, 50.0)

	x, y, ok = cam.Project(r3.Vector{X: 1.0})
	test.That(t, ok)
	test.Float(t, x, 60.0)
	test.Float(t, y, 50.0)

	// screen y grows downward
	_, y, _ = cam.Project(r3.Vector{Y: 1.0})
	test.Float(t, y, 40.0)

	_, _, ok = cam.Project(r3.Vector{Z: -6.0})
	test.T(t, ok, false)
}

func testMesh() *Mesh {
	// single triangle in the z=0 plane facing the camera
	return &Mesh{
		Verts: []r3.Vector{{Y: 1.0}, {X: 1.0, Y: -1.0}, {X: -1.0, Y: -1.0}},
		Faces: [][]int{{0, 1, 2}},
	}
}

func TestConvertMesh(t *testing.T) {
	light := &Light{Dir: r3.Vector{Z: -1.0}, Color: [3]float64{1.0, 0.0, 0.0}}
	polys := ConvertMesh(testMesh(), testCamera(), light, nil)
	test.T(t, len(polys), 1)

	p := polys[0]
	test.T(t, len(p.Verts), 3)
	test.Float(t, p.Verts[0].X, 50.0)
	test.Float(t, p.Verts[0].Y, 40.0)
	test.Float(t, p.Verts[0].Z, 5.0)
	test.Float(t, p.Depth, 5.0)

	// full brightness, stroke follows fill
	test.T(t, p.Style.Fill, color.RGBA{255, 0, 0, 255})
	test.T(t, p.Style.Stroke, color.RGBA{255, 0, 0, 255})
}

func TestConvertMeshBackface(t *testing.T) {
	mesh := testMesh()
	mesh.Faces = [][]int{{2, 1, 0}} // reversed winding, faces away
	light := &Light{Dir: r3.Vector{Z: -1.0}, Color: [3]float64{1.0, 1.0, 1.0}}

	test.T(t, len(ConvertMesh(mesh, testCamera(), light, nil)), 0)

	opts := DefaultConvertOptions
	opts.BackfaceCulling = false
	test.T(t, len(ConvertMesh(mesh, testCamera(), light, &opts)), 1)
}

func TestConvertMeshMaterial(t *testing.T) {
	mesh := testMesh()
	mat := &Material{Diffuse: [3]float64{0.0, 1.0, 0.0}, Opacity: 0.5, Class: "leaf"}
	mesh.FaceStyle = func(int) *Material { return mat }
	light := &Light{Dir: r3.Vector{Z: -1.0}, Color: [3]float64{1.0, 1.0, 1.0}}

	polys := ConvertMesh(mesh, testCamera(), light, nil)
	test.T(t, len(polys), 1)
	test.T(t, polys[0].Style.Fill, color.RGBA{0, 255, 0, 128})
	test.T(t, polys[0].Style.Class, "leaf")

	opts := DefaultConvertOptions
	opts.IgnoreMaterials = true
	polys = ConvertMesh(mesh, testCamera(), light, &opts)
	test.T(t, polys[0].Style.Fill, color.RGBA{255, 255, 255, 255})
	test.T(t, polys[0].Style.Class, "")
}

func TestConvertMeshOverride(t *testing.T) {
	blue := color.RGBA{0, 0, 255, 255}
	white := color.RGBA{255, 255, 255, 255}
	opts := DefaultConvertOptions
	opts.Fill = &blue
	opts.Stroke = &white
	light := &Light{Dir: r3.Vector{Z: -1.0}, Color: [3]float64{1.0, 0.0, 0.0}}

	polys := ConvertMesh(testMesh(), testCamera(), light, &opts)
	test.T(t, polys[0].Style.Fill, blue)
	test.T(t, polys[0].Style.Stroke, white)
}

func TestConvertMeshGrayscale(t *testing.T) {
	opts := DefaultConvertOptions
	opts.Grayscale = true
	opts.MinBrightness = 55.0
	opts.MaxBrightness = 255.0
	light := &Light{Dir: r3.Vector{Z: -1.0}, Color: [3]float64{1.0, 1.0, 1.0}}

	polys := ConvertMesh(testMesh(), testCamera(), light, &opts)
	test.T(t, polys[0].Style.Fill, color.RGBA{255, 255, 255, 255})
}

func TestConvertMeshNilLight(t *testing.T) {
	// no light renders at full brightness
	polys := ConvertMesh(testMesh(), testCamera(), nil, nil)
	test.T(t, len(polys), 1)
	test.T(t, polys[0].Style.Fill, color.RGBA{255, 255, 255, 255})

	mesh := testMesh()
	mesh.FaceStyle = func(int) *Material { return &Material{Diffuse: [3]float64{0.0, 1.0, 0.0}, Opacity: 1.0} }
	polys = ConvertMesh(mesh, testCamera(), nil, nil)
	test.T(t, polys[0].Style.Fill, color.RGBA{0, 255, 0, 255})
}

func TestConvertMeshPointLight(t *testing.T) {
	// point light along the normal of the first vertex gives full brightness
	light := &Light{Point: true, Pos: r3.Vector{Y: 1.0, Z: -3.0}, Color: [3]float64{0.0, 0.0, 1.0}}
	polys := ConvertMesh(testMesh(), testCamera(), light, nil)
	test.T(t, polys[0].Style.Fill, color.RGBA{0, 0, 255, 255})
}
