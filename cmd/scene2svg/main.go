package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/minify/v2"
	minifysvg "github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/scene"
	"github.com/tdewolff/scene/renderers/svg"
)

type Export struct {
	Output      string  `short:"o" desc:"Output SVG filename"`
	Algorithm   string  `short:"a" default:"octree" desc:"Cutting algorithm: bsp, octree, newell, none"`
	Heuristic   string  `default:"center" desc:"Depth heuristic: closest, center, furthest, weighted"`
	Limit       int     `default:"500" desc:"Partition cycle limit for the BSP and Newell algorithms (5-1000)"`
	Width       float64 `default:"1024" desc:"Viewport width in pixels"`
	Height      float64 `default:"768" desc:"Viewport height in pixels"`
	FOV         float64 `default:"60" desc:"Vertical field of view in degrees"`
	StrokeWidth float64 `default:"1" desc:"Stroke width"`
	Precision   int     `default:"5" desc:"Number of significant digits for coordinates"`
	NoCull      bool    `desc:"Disable backface culling"`
	Grayscale   bool    `desc:"Grayscale shading"`
	Fill        string  `desc:"Override fill color, hex"`
	Stroke      string  `desc:"Override stroke color, hex"`
	Minify      bool    `short:"m" desc:"Minify the SVG output"`
	Verbose     bool    `short:"v" desc:"Print phase timings"`
	Input       string  `index:"0" desc:"Input scene (.json) or mesh (.obj) file"`
}

func main() {
	root := argp.NewCmd(&Export{}, "Convert a 3D scene to a depth-sorted SVG drawing")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Export) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	algorithm, err := cmd.parseAlgorithm()
	if err != nil {
		return err
	}
	heuristic, err := cmd.parseHeuristic()
	if err != nil {
		return err
	}
	scene.Precision = cmd.Precision

	sc, err := cmd.load()
	if err != nil {
		return err
	}

	opts := scene.Options{
		Algorithm:      algorithm,
		Heuristic:      heuristic,
		PartitionLimit: cmd.Limit,
		Width:          cmd.Width,
		Height:         cmd.Height,
	}
	if cmd.Verbose {
		opts.Trace = func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	polys, err := scene.Sort(sc.polys, &opts)
	if err != nil {
		var limitErr scene.PartitionLimitError
		if errors.As(err, &limitErr) {
			return fmt.Errorf("partition cycle limit (%d) reached, try another cutting algorithm or increase the limit if memory allows it", limitErr.Limit)
		}
		return err
	}

	output := cmd.Output
	if output == "" {
		output = strings.TrimSuffix(cmd.Input, filepath.Ext(cmd.Input))
	}
	if !strings.HasSuffix(output, ".svg") {
		output += ".svg"
	}

	buf := &bytes.Buffer{}
	r := svg.New(buf, cmd.Width, cmd.Height, &svg.Options{
		StrokeWidth: cmd.StrokeWidth,
		GroupID:     svg.DefaultOptions.GroupID,
	})
	r.RenderStyleSheet(sc.classes)
	for _, p := range polys {
		r.RenderPolygon(p)
	}
	if err := r.Close(); err != nil {
		return err
	}

	b := buf.Bytes()
	if cmd.Minify {
		m := minify.New()
		m.AddFunc("image/svg+xml", minifysvg.Minify)
		if b, err = m.Bytes("image/svg+xml", b); err != nil {
			return err
		}
	}

	if err := os.WriteFile(output, b, 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %d polygons to %s\n", len(polys), output)
	return nil
}

func (cmd *Export) parseAlgorithm() (scene.CutAlgorithm, error) {
	switch strings.ToLower(cmd.Algorithm) {
	case "bsp":
		return scene.CutBSP, nil
	case "octree":
		return scene.CutOctree, nil
	case "newell":
		return scene.CutNewell, nil
	case "none":
		return scene.CutNone, nil
	}
	return 0, fmt.Errorf("invalid cutting algorithm: %s", cmd.Algorithm)
}

func (cmd *Export) parseHeuristic() (scene.Heuristic, error) {
	switch strings.ToLower(cmd.Heuristic) {
	case "closest":
		return scene.ClosestVertex, nil
	case "center":
		return scene.Center, nil
	case "furthest":
		return scene.FurthestVertex, nil
	case "weighted":
		return scene.WeightedCenter, nil
	}
	return 0, fmt.Errorf("invalid depth heuristic: %s", cmd.Heuristic)
}

type loadedScene struct {
	polys   []*scene.Polygon
	classes map[string]scene.Style
}

// load reads the input file and converts its meshes to screen-space polygons.
func (cmd *Export) load() (*loadedScene, error) {
	convert := scene.DefaultConvertOptions
	convert.BackfaceCulling = !cmd.NoCull
	convert.Grayscale = cmd.Grayscale
	if cmd.Fill != "" {
		col, err := parseHexColor(cmd.Fill)
		if err != nil {
			return nil, err
		}
		convert.Fill = &col
	}
	if cmd.Stroke != "" {
		col, err := parseHexColor(cmd.Stroke)
		if err != nil {
			return nil, err
		}
		convert.Stroke = &col
	}

	sc := &loadedScene{classes: map[string]scene.Style{}}
	switch strings.ToLower(filepath.Ext(cmd.Input)) {
	case ".json":
		if err := cmd.loadJSON(sc, &convert); err != nil {
			return nil, err
		}
	case ".obj":
		if err := cmd.loadOBJ(sc, &convert); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported input format: %s", cmd.Input)
	}
	return sc, nil
}

type sceneFile struct {
	Camera struct {
		Pos    [3]float64 `json:"pos"`
		Target [3]float64 `json:"target"`
		Up     [3]float64 `json:"up"`
	} `json:"camera"`
	Light struct {
		Point   bool       `json:"point"`
		Pos     [3]float64 `json:"pos"`
		Dir     [3]float64 `json:"dir"`
		Color   [3]float64 `json:"color"`
		Ambient [3]float64 `json:"ambient"`
	} `json:"light"`
	Materials map[string]struct {
		Diffuse [3]float64 `json:"diffuse"`
		Opacity float64    `json:"opacity"`
		Class   string     `json:"class"`
	} `json:"materials"`
	Meshes []struct {
		Verts    [][3]float64 `json:"verts"`
		Faces    [][]int      `json:"faces"`
		Material string       `json:"material"`
	} `json:"meshes"`
}

func (cmd *Export) loadJSON(sc *loadedScene, convert *scene.ConvertOptions) error {
	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	var file sceneFile
	if err := json.Unmarshal(b, &file); err != nil {
		return fmt.Errorf("%s: %v", cmd.Input, err)
	}

	up := vec(file.Camera.Up)
	if up.Norm() == 0.0 {
		up = r3.Vector{Z: 1.0}
	}
	cam := scene.NewPerspectiveCamera(vec(file.Camera.Pos), vec(file.Camera.Target), up,
		cmd.FOV*math.Pi/180.0, cmd.Width, cmd.Height)

	light := scene.Light{
		Point:   file.Light.Point,
		Pos:     vec(file.Light.Pos),
		Dir:     vec(file.Light.Dir),
		Color:   file.Light.Color,
		Ambient: file.Light.Ambient,
	}
	if !light.Point && light.Dir == (r3.Vector{}) {
		light.Dir = cam.Dir.Mul(-1.0)
	}

	materials := map[string]*scene.Material{}
	for name, m := range file.Materials {
		materials[name] = &scene.Material{Diffuse: m.Diffuse, Opacity: m.Opacity, Class: m.Class}
		if m.Class != "" {
			sc.classes[m.Class] = scene.Style{
				Fill:   rgb(m.Diffuse),
				Stroke: rgb(m.Diffuse),
			}
		}
	}

	for i, meshFile := range file.Meshes {
		verts := make([]r3.Vector, len(meshFile.Verts))
		for j, v := range meshFile.Verts {
			verts[j] = vec(v)
		}
		faces := make([][]int, 0, len(meshFile.Faces))
		for _, face := range meshFile.Faces {
			for _, vi := range face {
				if vi < 0 || len(verts) <= vi {
					return fmt.Errorf("%s: mesh %d: face vertex out of range", cmd.Input, i)
				}
			}
			if 3 <= len(face) {
				faces = append(faces, face)
			}
		}
		mesh := &scene.Mesh{Verts: verts, Faces: faces}
		if mat, ok := materials[meshFile.Material]; ok {
			mesh.FaceStyle = func(int) *scene.Material { return mat }
		}
		sc.polys = append(sc.polys, scene.ConvertMesh(mesh, cam, &light, convert)...)
	}
	return nil
}

func (cmd *Export) loadOBJ(sc *loadedScene, convert *scene.ConvertOptions) error {
	mesh, err := readOBJ(cmd.Input)
	if err != nil {
		return err
	}

	// frame the mesh from a diagonal so everything is in view
	center, radius := boundingSphere(mesh.Verts)
	pos := center.Add(r3.Vector{X: radius * 2.0, Y: radius * 2.0, Z: radius}.Mul(1.5))
	cam := scene.NewPerspectiveCamera(pos, center, r3.Vector{Z: 1.0},
		cmd.FOV*math.Pi/180.0, cmd.Width, cmd.Height)
	light := scene.Light{
		Dir:     pos.Sub(center).Normalize(),
		Color:   [3]float64{0.8, 0.8, 0.8},
		Ambient: [3]float64{0.2, 0.2, 0.2},
	}

	sc.polys = append(sc.polys, scene.ConvertMesh(mesh, cam, &light, convert)...)
	return nil
}

func boundingSphere(verts []r3.Vector) (r3.Vector, float64) {
	center := r3.Vector{}
	for _, v := range verts {
		center = center.Add(v)
	}
	if 0 < len(verts) {
		center = center.Mul(1.0 / float64(len(verts)))
	}
	radius := 1.0
	for _, v := range verts {
		if r := v.Sub(center).Norm(); radius < r {
			radius = r
		}
	}
	return center, radius
}

func vec(v [3]float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

func rgb(c [3]float64) color.RGBA {
	return color.RGBA{uint8(c[0] * 255.0), uint8(c[1] * 255.0), uint8(c[2] * 255.0), 255}
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b, a uint8
	a = 255
	switch len(s) {
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color: %s", s)
		}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color: %s", s)
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid color: %s", s)
	}
	return color.RGBA{r, g, b, a}, nil
}
