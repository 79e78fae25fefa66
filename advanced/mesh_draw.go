package advanced

import (
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/osuushi/triangulation/dbg"
	"github.com/osuushi/triangulation/kernel"
)

// Padding around the hull so hull edges and labels stay on the canvas
const dbgDrawPadding = 40

// DrawOptions controls Draw. Labels prints readable vertex names next to each
// vertex, and Dual overlays the finite part of the dual diagram.
type DrawOptions struct {
	Scale  float64
	Labels bool
	Dual   bool
}

// Draw renders the finite part of the triangulation as a PNG.
func (t *Triangulation) Draw(w io.Writer, opts DrawOptions) error {
	return t.context(opts).EncodePNG(w)
}

// Helper to draw and print a triangulation in the terminal (iTerm only) for
// debugging.
func (t *Triangulation) dbgDraw(scale float64) {
	c := t.context(DrawOptions{Scale: scale, Labels: true})
	// Save to temp file
	c.SavePNG("/tmp/triangulation.png")
	// Print to terminal
	imgcat.CatFile("/tmp/triangulation.png", os.Stdout)
}

func (t *Triangulation) bounds() r2.Rect {
	var points []r2.Point
	for v := range t.m.vertices {
		if int32(v) != t.m.infinite {
			points = append(points, t.m.point(int32(v)))
		}
	}
	if len(points) == 0 {
		return r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})
	}
	rect := r2.RectFromPoints(points...)
	if rect.X.Length() == 0 || rect.Y.Length() == 0 {
		rect = rect.ExpandedByMargin(0.5)
	}
	return rect
}

func (t *Triangulation) context(opts DrawOptions) *gg.Context {
	scale := opts.Scale
	if scale <= 0 {
		scale = 100
	}
	rect := t.bounds()
	width := int(scale*rect.X.Length()) + dbgDrawPadding*2
	height := int(scale*rect.Y.Length()) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-rect.X.Lo, -rect.Y.Lo)

	for f := range t.FiniteFaces() {
		t.drawFace(c, f)
	}
	c.SetLineWidth(2)
	for e := range t.FiniteEdges() {
		t.drawEdge(c, e)
	}
	if opts.Dual {
		t.drawDual(c, rect)
	}
	for v := range t.HiddenVertices() {
		drawVertex(c, v.Point(), scale, 0.5)
	}
	for v := range t.FiniteVertices() {
		drawVertex(c, v.Point(), scale, 1)
		if opts.Labels {
			drawLabel(c, v.Point(), dbg.Name(v))
		}
	}
	return c
}

func (t *Triangulation) drawFace(c *gg.Context, f Face) {
	for i := 0; i < 3; i++ {
		p := f.Vertex(i).Point()
		if i == 0 {
			c.MoveTo(p.X, p.Y)
		} else {
			c.LineTo(p.X, p.Y)
		}
	}
	c.ClosePath()
	c.SetRGBA(0.3, 0.2, 1, 0.5)
	c.Fill()
}

func (t *Triangulation) drawEdge(c *gg.Context, e Edge) {
	s, ok := t.Segment(e)
	if !ok {
		return
	}
	c.MoveTo(s.Source.X, s.Source.Y)
	c.LineTo(s.Target.X, s.Target.Y)
	c.Push()
	c.Identity()
	if t.IsConstrained(e) {
		c.SetRGB(1, 0.2, 0.2)
	} else {
		c.SetRGB(0, 1, 0)
	}
	c.Stroke()
	c.Pop()
}

// drawDual draws dual segments and clips rays to the drawing bounds.
func (t *Triangulation) drawDual(c *gg.Context, rect r2.Rect) {
	reach := rect.X.Length() + rect.Y.Length()
	for e := range t.FiniteEdges() {
		d, ok := t.dual(e)
		if !ok {
			continue
		}
		var s kernel.Segment
		switch d.Kind {
		case VoronoiSegment:
			s = d.Segment
		case VoronoiRay:
			dir := d.Ray.Direction.Normalize()
			s = kernel.Segment{Source: d.Ray.Source, Target: d.Ray.Source.Add(dir.Mul(reach))}
		case VoronoiLine:
			p, dir := d.Line.Point(), d.Line.Direction().Normalize()
			s = kernel.Segment{Source: p.Sub(dir.Mul(reach)), Target: p.Add(dir.Mul(reach))}
		}
		c.MoveTo(s.Source.X, s.Source.Y)
		c.LineTo(s.Target.X, s.Target.Y)
		c.Push()
		c.Identity()
		c.SetRGB(1, 1, 0)
		c.Stroke()
		c.Pop()
	}
}

func drawVertex(c *gg.Context, p kernel.Point, scale, brightness float64) {
	c.DrawCircle(p.X, p.Y, 3/scale)
	c.SetRGB(brightness, brightness, brightness)
	c.Fill()
}

func drawLabel(c *gg.Context, p kernel.Point, name string) {
	// Text must be drawn in native coordinates, or it comes out upside down
	x, y := c.TransformPoint(p.X, p.Y)
	c.Push()
	c.Identity()
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(name, x+4, y-4, 0, 0)
	c.Pop()
}
