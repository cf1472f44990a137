package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/tdewolff/scene"
	"github.com/tdewolff/test"
)

func TestParseHexColor(t *testing.T) {
	var tts = []struct {
		s   string
		col color.RGBA
		err bool
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"00ff00", color.RGBA{0, 255, 0, 255}, false},
		{"#0000ff80", color.RGBA{0, 0, 255, 128}, false},
		{"#fff", color.RGBA{}, true},
		{"not-a-color", color.RGBA{}, true},
	}
	for _, tt := range tts {
		t.Run(tt.s, func(t *testing.T) {
			col, err := parseHexColor(tt.s)
			test.T(t, err != nil, tt.err)
			test.T(t, col, tt.col)
		})
	}
}

func TestReadOBJ(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cube.obj")
	data := `# a single quad with noise
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 1.0 1.0 0.0
v 0.0 1.0 0.0
vn 0.0 0.0 1.0
vt 0.5 0.5
f 1/1/1 2/1/1 3/1/1 4/1/1
f -1 -2 -3
`
	test.T(t, os.WriteFile(filename, []byte(data), 0644), nil)

	mesh, err := readOBJ(filename)
	test.T(t, err, nil)
	test.T(t, len(mesh.Verts), 4)
	test.Float(t, mesh.Verts[2].X, 1.0)
	test.Float(t, mesh.Verts[2].Y, 1.0)
	test.T(t, len(mesh.Faces), 2)
	test.T(t, mesh.Faces[0], []int{0, 1, 2, 3})
	test.T(t, mesh.Faces[1], []int{3, 2, 1}) // negative indices count from the end
}

func TestReadOBJBadFace(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.obj")
	test.T(t, os.WriteFile(filename, []byte("v 0 0 0\nf 1 2 3\n"), 0644), nil)
	_, err := readOBJ(filename)
	test.That(t, err != nil) // face vertex out of range
}

func loadTestJSON(t *testing.T, faces string) (*loadedScene, error) {
	filename := filepath.Join(t.TempDir(), "scene.json")
	data := `{"camera":{"pos":[0,0,-5],"up":[0,1,0]},"meshes":[{"verts":[[0,1,0],[1,-1,0],[-1,-1,0]],"faces":` + faces + `}]}`
	test.T(t, os.WriteFile(filename, []byte(data), 0644), nil)

	cmd := &Export{Input: filename, FOV: 90.0, Width: 100.0, Height: 100.0}
	convert := scene.DefaultConvertOptions
	sc := &loadedScene{classes: map[string]scene.Style{}}
	return sc, cmd.loadJSON(sc, &convert)
}

func TestLoadJSON(t *testing.T) {
	sc, err := loadTestJSON(t, `[[0,1,2]]`)
	test.T(t, err, nil)
	test.T(t, len(sc.polys), 1)
}

func TestLoadJSONBadFace(t *testing.T) {
	_, err := loadTestJSON(t, `[[0,1,9]]`)
	test.That(t, err != nil) // face vertex out of range

	_, err = loadTestJSON(t, `[[0,1,-1]]`)
	test.That(t, err != nil)
}

func TestLoadJSONDegenerateFace(t *testing.T) {
	// faces with fewer than three vertices are dropped, not an error
	sc, err := loadTestJSON(t, `[[0,1],[0,1,2]]`)
	test.T(t, err, nil)
	test.T(t, len(sc.polys), 1)
}

func TestBoundingSphere(t *testing.T) {
	_, radius := boundingSphere(nil)
	test.Float(t, radius, 1.0)

	center, radius := boundingSphere([]r3.Vector{
		{X: -2.0},
		{X: 2.0},
		{Y: 1.0},
		{Y: -1.0},
	})
	test.Float(t, center.X, 0.0)
	test.Float(t, center.Y, 0.0)
	test.Float(t, radius, 2.0)
}
