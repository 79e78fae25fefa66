package advanced

// This contains no actual tests. It is just a helper for checking
// triangulations against their input.

import (
	"math"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/triangulation/kernel"
)

const areaEpsilon = 1e-9

// Helper to check that a triangulation is valid. The rules are:
// 1. IsValid holds.
// 2. Every input point is a vertex, or hidden.
// 3. Every finite face is counterclockwise with nonzero area.
// 4. The face areas add up to the area of the convex hull.
func AssertValidTriangulation(t *testing.T, tri *Triangulation, points []kernel.Point) {
	t.Helper()
	if !tri.IsValid() {
		t.Fatalf("invalid triangulation: %v", tri.check())
	}

	present := make(map[kernel.Point]bool)
	for v := range tri.FiniteVertices() {
		present[v.Point()] = true
	}
	for v := range tri.HiddenVertices() {
		present[v.Point()] = true
	}
	for _, p := range points {
		require.True(t, present[p], "point %v is missing", p)
	}

	if tri.Dimension() < 2 {
		return
	}
	var faceArea float64
	for f := range tri.FiniteFaces() {
		a, b, c := f.Vertex(0).Point(), f.Vertex(1).Point(), f.Vertex(2).Point()
		area := b.Sub(a).Cross(c.Sub(a)) / 2
		require.Greater(t, area, 0.0, "face %s is not counterclockwise: %s", f, spew.Sdump(a, b, c))
		faceArea += area
	}
	require.InDelta(t, hullArea(tri), faceArea, areaEpsilon*math.Max(1, faceArea))
}

// The hull edges are the finite edges of the infinite faces, seen from
// outside.
func hullArea(tri *Triangulation) float64 {
	var area float64
	for f := range tri.AllFaces() {
		if !f.IsInfinite() {
			continue
		}
		k := f.Index(tri.InfiniteVertex())
		a, b := f.Vertex(ccw(k)).Point(), f.Vertex(cw(k)).Point()
		area += b.Cross(a) / 2
	}
	return area
}

// Helper to check that every constraint segment is exactly covered by
// constrained edges.
func AssertConstraintsCovered(t *testing.T, tri *Triangulation, segments []kernel.Segment) {
	t.Helper()
	for _, s := range segments {
		covered := 0.0
		for e := range tri.ConstrainedEdges() {
			es, ok := tri.Segment(e)
			require.True(t, ok)
			if kernel.Orient(s.Source, s.Target, es.Source) == kernel.Collinear &&
				kernel.Orient(s.Source, s.Target, es.Target) == kernel.Collinear &&
				onSegment(s, es.Midpoint()) {
				covered += math.Sqrt(es.SquaredLength())
			}
		}
		require.InDelta(t, math.Sqrt(s.SquaredLength()), covered, 1e-9, "constraint %v is not covered", s)
	}
}

func onSegment(s kernel.Segment, p kernel.Point) bool {
	d := s.Vector()
	t := p.Sub(s.Source).Dot(d) / d.Dot(d)
	return t > 0 && t < 1
}

func randomPoints(rng *rand.Rand, n int, scale float64) []kernel.Point {
	points := make([]kernel.Point, n)
	for i := range points {
		points[i] = kernel.Point{X: rng.Float64() * scale, Y: rng.Float64() * scale}
	}
	return points
}

// gridPoints is maximally degenerate input: collinear rows and cocircular
// squares everywhere.
func gridPoints(n int) []kernel.Point {
	var points []kernel.Point
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			points = append(points, kernel.Point{X: float64(i), Y: float64(j)})
		}
	}
	return points
}
