// Package svg writes depth-sorted scenes as scalable vector graphics.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/tdewolff/scene"
)

type Options struct {
	StrokeWidth float64
	GroupID     string
}

var DefaultOptions = Options{
	StrokeWidth: 1.0,
	GroupID:     "scene",
}

// SVG renders scene elements to SVG markup. Elements must be rendered in draw order,
// back to front.
type SVG struct {
	w             io.Writer
	width, height float64
	opts          *Options
}

// New returns an SVG renderer writing to w and writes the document header and the
// enclosing group tag immediately.
func New(w io.Writer, width, height float64, opts *Options) *SVG {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}
	fmt.Fprintf(w, `<svg version="1.1" width="%v" height="%v" stroke-width="%v" stroke-linejoin="round" xmlns="http://www.w3.org/2000/svg">`, num(width), num(height), num(opts.StrokeWidth))
	fmt.Fprintf(w, `<g id="%s">`, opts.GroupID)
	return &SVG{
		w:      w,
		width:  width,
		height: height,
		opts:   opts,
	}
}

// Close closes the group and finishes the SVG.
func (r *SVG) Close() error {
	_, err := fmt.Fprintf(r.w, "</g></svg>")
	return err
}

// RenderStyleSheet writes a style block defining one class per named style, so that
// elements with a class render without inline paint attributes. Classes are written in
// lexicographic order.
func (r *SVG) RenderStyleSheet(classes map[string]scene.Style) {
	if len(classes) == 0 {
		return
	}
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(r.w, `<defs><style>`)
	for _, name := range names {
		style := classes[name]
		fmt.Fprintf(r.w, `.%s{fill:%s;stroke:%s}`, name, toCSSColor(style.Fill), toCSSColor(style.Stroke))
	}
	fmt.Fprintf(r.w, `</style></defs>`)
}

// RenderPolygon writes a polygon's projected outline.
func (r *SVG) RenderPolygon(p *scene.Polygon) {
	fmt.Fprintf(r.w, `<polygon points="`)
	for i, v := range p.Verts {
		if 0 < i {
			fmt.Fprintf(r.w, ` `)
		}
		fmt.Fprintf(r.w, `%v,%v`, dec(v.X), dec(v.Y))
	}
	fmt.Fprintf(r.w, `"`)
	r.writeStyle(p.Style)
	fmt.Fprintf(r.w, `/>`)
}

// RenderElement dispatches on the element kind.
func (r *SVG) RenderElement(e *scene.Element) {
	switch e.Kind {
	case scene.PolygonElement:
		r.RenderPolygon(e.Polygon)
	case scene.CurveElement:
		r.renderCurve(e)
	case scene.TextElement:
		r.renderText(e)
	case scene.CurveGroupElement:
		fmt.Fprintf(r.w, `<g>`)
		for _, c := range e.Group {
			r.renderCurve(c)
		}
		fmt.Fprintf(r.w, `</g>`)
	}
}

func (r *SVG) renderCurve(e *scene.Element) {
	points := e.Points
	fmt.Fprintf(r.w, `<path d="M%v,%v`, dec(points[0].Pos.X), dec(points[0].Pos.Y))
	if e.Curved {
		for i := 1; i < len(points); i++ {
			fmt.Fprintf(r.w, `C%v,%v %v,%v %v,%v`,
				dec(points[i-1].Right.X), dec(points[i-1].Right.Y),
				dec(points[i].Left.X), dec(points[i].Left.Y),
				dec(points[i].Pos.X), dec(points[i].Pos.Y))
		}
		if e.Cyclic {
			last := points[len(points)-1]
			fmt.Fprintf(r.w, `C%v,%v %v,%v %v,%vz`,
				dec(last.Right.X), dec(last.Right.Y),
				dec(points[0].Left.X), dec(points[0].Left.Y),
				dec(points[0].Pos.X), dec(points[0].Pos.Y))
		}
	} else {
		for i := 1; i < len(points); i++ {
			fmt.Fprintf(r.w, `L%v,%v`, dec(points[i].Pos.X), dec(points[i].Pos.Y))
		}
		if e.Cyclic {
			fmt.Fprintf(r.w, `z`)
		}
	}
	fmt.Fprintf(r.w, `"`)
	r.writeStyle(e.Style)
	fmt.Fprintf(r.w, `/>`)
}

func (r *SVG) renderText(e *scene.Element) {
	fmt.Fprintf(r.w, `<text x="%v" y="%v"`, dec(e.Bounds.XMin), dec(e.Bounds.YMin))
	if e.Style.Class != "" {
		fmt.Fprintf(r.w, ` class="%s"`, e.Style.Class)
	} else {
		fmt.Fprintf(r.w, ` fill="%s"`, toCSSColor(e.Style.Fill))
	}
	fmt.Fprintf(r.w, `>`)
	for _, line := range e.Lines {
		fmt.Fprintf(r.w, `<tspan x="%v" dy="1em">`, dec(e.Bounds.XMin))
		xml.EscapeText(r.w, []byte(line))
		fmt.Fprintf(r.w, `</tspan>`)
	}
	fmt.Fprintf(r.w, `</text>`)
}

func (r *SVG) writeStyle(style scene.Style) {
	if style.Class != "" {
		fmt.Fprintf(r.w, ` class="%s"`, style.Class)
		return
	}
	fmt.Fprintf(r.w, ` fill="%s" stroke="%s"`, toCSSColor(style.Fill), toCSSColor(style.Stroke))
}
