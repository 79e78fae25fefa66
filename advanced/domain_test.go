package advanced

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osuushi/triangulation/kernel"
)

// Crossing count helper for the even-odd rule
func crossingCount(polygon []kernel.Point, p kernel.Point) int {
	crossings := 0
	for i, a := range polygon {
		b := polygon[(i+1)%len(polygon)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				crossings++
			}
		}
	}
	return crossings
}

func containsByEvenOdd(polygons [][]kernel.Point, p kernel.Point) bool {
	crossings := 0
	for _, polygon := range polygons {
		crossings += crossingCount(polygon, p)
	}
	return crossings%2 == 1
}

func buildDomain(polygons [][]kernel.Point) *ConstrainedDelaunay {
	c := NewConstrainedDelaunay()
	for _, polygon := range polygons {
		c.InsertPolygon(polygon...)
	}
	return c
}

func validateDomainBySampling(t *testing.T, c *Constrained, polygons [][]kernel.Point) {
	t.Helper()
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, polygon := range polygons {
		for _, p := range polygon {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	// Pad the bounding box by 10%
	xPadding := (maxX - minX) * 0.1
	yPadding := (maxY - minY) * 0.1
	minX -= xPadding
	minY -= yPadding
	maxX += xPadding
	maxY += yPadding

	// Offset the grid so no sample lands on an axis aligned edge
	step := math.Max(maxX-minX, maxY-minY) / 50
	for y := minY + step/7; y <= maxY; y += step {
		for x := minX + step/7; x <= maxX; x += step {
			p := kernel.Point{X: x, Y: y}
			if containsByEvenOdd(polygons, p) {
				assert.True(t, c.ContainsPoint(p), "point %v should be inside", p)
			} else {
				assert.False(t, c.ContainsPoint(p), "point %v should be outside", p)
			}
		}
	}
}

func interiorArea(c *Constrained) float64 {
	area := 0.0
	for f := range c.InteriorFaces() {
		a, b, d := f.Vertex(0).Point(), f.Vertex(1).Point(), f.Vertex(2).Point()
		area += b.Sub(a).Cross(d.Sub(a)) / 2
	}
	return area
}

func TestDomainSquareWithHole(t *testing.T) {
	c := buildDomain(SquareWithHole())
	assert.Equal(t, 8, count(c.InteriorFaces()))
	assert.InDelta(t, 100-16, interiorArea(&c.Constrained), 1e-9)
	validateDomainBySampling(t, &c.Constrained, SquareWithHole())
}

func TestDomainStar(t *testing.T) {
	star := [][]kernel.Point{SimpleStar()}
	c := buildDomain(star)
	// A ten sided simple polygon splits into eight triangles.
	assert.Equal(t, 8, count(c.InteriorFaces()))
	validateDomainBySampling(t, &c.Constrained, star)
}

func TestDomainStarOutline(t *testing.T) {
	polygons := StarOutline()
	c := buildDomain(polygons)
	validateDomainBySampling(t, &c.Constrained, polygons)
}

func TestDomainMultiLayeredHoles(t *testing.T) {
	polygons := MultiLayeredHoles()
	c := buildDomain(polygons)
	AssertValidTriangulation(t, c.Triangulation, nil)
	validateDomainBySampling(t, &c.Constrained, polygons)
}

func TestDomainWithoutConstraints(t *testing.T) {
	c := NewConstrained()
	assert.False(t, c.ContainsPoint(kernel.Point{}))
	c.Insert(kernel.Point{X: 0, Y: 0}, kernel.Point{X: 1, Y: 0}, kernel.Point{X: 0, Y: 1})
	assert.Equal(t, 0, count(c.InteriorFaces()))
	assert.False(t, c.ContainsPoint(kernel.Point{X: 0.2, Y: 0.2}))
}
