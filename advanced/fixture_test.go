package advanced

import (
	"embed"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"

	"github.com/osuushi/triangulation/kernel"
)

// This file parses the svg fixtures into triangulation input. This is not a
// full (or even correct) svg parser. Circles become weighted points with the
// squared radius as weight, polygons become closed constraints and polylines
// open ones. If anything goes wrong, it panics.
//
// Fixtures are available by name in this fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

type Fixture struct {
	Points    []kernel.WeightedPoint
	Polygons  [][]kernel.Point
	Polylines [][]kernel.Point
}

// AllPoints lists every point of the fixture, constraint endpoints included.
func (f *Fixture) AllPoints() []kernel.Point {
	var points []kernel.Point
	for _, p := range f.Points {
		points = append(points, p.Point)
	}
	for _, poly := range f.Polygons {
		points = append(points, poly...)
	}
	for _, line := range f.Polylines {
		points = append(points, line...)
	}
	return points
}

// Segments lists every constraint segment of the fixture.
func (f *Fixture) Segments() []kernel.Segment {
	var segments []kernel.Segment
	for _, poly := range f.Polygons {
		for i := range poly {
			segments = append(segments, kernel.Segment{Source: poly[i], Target: poly[(i+1)%len(poly)]})
		}
	}
	for _, line := range f.Polylines {
		for i := 0; i+1 < len(line); i++ {
			segments = append(segments, kernel.Segment{Source: line[i], Target: line[i+1]})
		}
	}
	return segments
}

// Build inserts the fixture into a fresh triangulation of the named variant.
func (f *Fixture) Build(variant string) *Triangulation {
	switch variant {
	case "regular":
		r := NewRegular()
		r.InsertWeighted(f.Points...)
		for _, p := range f.AllPoints()[len(f.Points):] {
			r.InsertWeighted(kernel.WeightedPoint{Point: p})
		}
		return r.Triangulation
	case "plain", "delaunay":
		var t *Triangulation
		if variant == "plain" {
			t = NewTriangulation()
		} else {
			t = NewDelaunay().Triangulation
		}
		t.Insert(f.AllPoints()...)
		return t
	}

	var c *Constrained
	switch variant {
	case "constrained":
		c = NewConstrained()
	case "cdt":
		c = &NewConstrainedDelaunay().Constrained
	default:
		log.Fatalf("Unknown variant %q", variant)
	}
	for _, poly := range f.Polygons {
		c.InsertPolygon(poly...)
	}
	for _, line := range f.Polylines {
		c.InsertConstraints(line...)
	}
	for _, p := range f.Points {
		c.Insert(p.Point)
	}
	return c.Triangulation
}

func LoadFixture(name string) *Fixture {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	var result Fixture
	for _, el := range rootEl.FindAll("circle") {
		x := parseFloat(el.Attributes["cx"])
		y := parseFloat(el.Attributes["cy"])
		r := parseFloat(el.Attributes["r"])
		result.Points = append(result.Points, kernel.Weighted(x, y, r*r))
	}
	for _, el := range rootEl.FindAll("polygon") {
		result.Polygons = append(result.Polygons, parsePoints(el.Attributes["points"]))
	}
	for _, el := range rootEl.FindAll("polyline") {
		result.Polylines = append(result.Polylines, parsePoints(el.Attributes["points"]))
	}
	if len(result.Points)+len(result.Polygons)+len(result.Polylines) == 0 {
		log.Fatalf("Nothing found in fixture %q", name)
	}
	return &result
}

func parsePoints(pointString string) []kernel.Point {
	var points []kernel.Point
	for _, pointString := range strings.Split(pointString, " ") {
		if pointString == "" {
			continue
		}
		pointStrings := strings.Split(pointString, ",")
		if len(pointStrings) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		points = append(points, kernel.Point{X: parseFloat(pointStrings[0]), Y: parseFloat(pointStrings[1])})
	}
	return points
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("Invalid number %q: %v", s, err)
	}
	return v
}

// Some ad hoc code specified fixtures
func SimpleStar() []kernel.Point {
	var points []kernel.Point
	const outerRadius = 5
	const innerRadius = 2
	for i := 0; i < 10; i++ {
		var radius float64
		if i%2 == 0 {
			radius = outerRadius
		} else {
			radius = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, kernel.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return points
}

func SquareWithHole() [][]kernel.Point {
	return [][]kernel.Point{
		{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}},
		{{X: -2, Y: -2}, {X: -2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: -2}},
	}
}

func star(x, y, outerRadius, innerRadius float64) []kernel.Point {
	var points []kernel.Point
	for i := 0; i < 10; i++ {
		angle := 2 * math.Pi * float64(i) / 10
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		points = append(points, kernel.Point{X: x + r*math.Cos(angle), Y: y + r*math.Sin(angle)})
	}
	return points
}

func StarOutline() [][]kernel.Point {
	return [][]kernel.Point{star(0, 0, 10, 5), star(0, 0, 8, 3)}
}

func MultiLayeredHoles() [][]kernel.Point {
	// Multiple holes which contain filled shapes inside.
	return [][]kernel.Point{
		// Outer star
		star(0, 0, 10, 7),
		// Top hole and its filling
		star(1.5, 5, 3, 2),
		star(1.5, 5, 2, 1),
		// Bottom hole and its filling
		star(1.8, -5, 3, 2),
		star(1.8, -5, 2, 1),
		// Left hole and its filling
		star(-3, 0, 4, 2),
		star(-3, 0, 3, 1),
	}
}
