package advanced

import (
	"github.com/osuushi/triangulation/kernel"
)

// Delaunay keeps every edge locally Delaunay: no vertex lies strictly inside
// the circumcircle of a face it does not belong to.
type Delaunay struct {
	*Triangulation
}

func NewDelaunay(opts ...Option) *Delaunay {
	return &Delaunay{newTriangulation(delaunayRestorer{}, opts)}
}

// NearestVertex returns the vertex closest to p. Ties are broken by the order
// of the descent, which is deterministic.
func (d *Delaunay) NearestVertex(p kernel.Point) (Vertex, bool) {
	return d.nearest(p, false)
}

// Dual returns the Voronoi edge dual to e: a segment between two
// circumcenters, a ray for a hull edge, or a line in dimension 1. Infinite
// edges have no dual.
func (d *Delaunay) Dual(e Edge) (VoronoiEdge, bool) {
	return d.dual(e)
}

// EdgeBetween returns the edge joining a and b.
func (t *Triangulation) EdgeBetween(a, b Vertex) (Edge, bool) {
	if a.m != t.m || b.m != t.m {
		return Edge{}, false
	}
	f, i, ok := t.m.edgeBetween(a.idx, b.idx)
	if !ok {
		return Edge{}, false
	}
	return Edge{Face{t.m, f}, i}, true
}

func (t *Triangulation) nearest(p kernel.Point, power bool) (Vertex, bool) {
	m := t.m
	closer := func(a, b int32) bool {
		if power {
			return kernel.ComparePowerDistance(p, m.vertices[a].point, m.vertices[b].point) < 0
		}
		return kernel.CompareDistance(p, m.point(a), m.point(b)) < 0
	}

	best := noIndex
	if m.dim < 2 {
		for v := range t.FiniteVertices() {
			if best == noIndex || closer(v.idx, best) {
				best = v.idx
			}
		}
		if best == noIndex {
			return Vertex{}, false
		}
		return Vertex{m, best}, true
	}

	loc := t.locate(p, kernel.Orient)
	for _, v := range m.faces[loc.face].v {
		if !m.isInfinite(v) && (best == noIndex || closer(v, best)) {
			best = v
		}
	}
	for improved := true; improved; {
		improved = false
		for _, w := range m.neighborsAround(best) {
			if !m.isInfinite(w) && closer(w, best) {
				best = w
				improved = true
			}
		}
	}
	return Vertex{m, best}, true
}

// center is the circumcenter of a finite face, or its power center when the
// vertices carry weights.
func (m *mesh) center(f int32) kernel.Point {
	r := &m.faces[f]
	return kernel.PowerCenter(m.vertices[r.v[0]].point, m.vertices[r.v[1]].point, m.vertices[r.v[2]].point)
}

func (t *Triangulation) dual(e Edge) (VoronoiEdge, bool) {
	m := t.m
	if e.IsNil() || e.Face.m != m || e.IsInfinite() {
		return VoronoiEdge{}, false
	}
	switch m.dim {
	case 1:
		a, b := e.Vertices()
		return VoronoiEdge{Kind: VoronoiLine, Line: kernel.RadicalAxis(a.WeightedPoint(), b.WeightedPoint())}, true
	case 2:
	default:
		return VoronoiEdge{}, false
	}

	f, i := e.Face.idx, e.Index
	n := m.faces[f].n[i]
	fInf, nInf := m.isInfiniteFace(f), m.isInfiniteFace(n)
	switch {
	case !fInf && !nInf:
		return VoronoiEdge{Kind: VoronoiSegment, Segment: kernel.Segment{Source: m.center(f), Target: m.center(n)}}, true
	case fInf && nInf:
		fatalf("finite edge %v lies between two infinite faces", e)
	case fInf:
		f, i = n, m.mirrorIndex(f, i)
	}
	// The ray leaves the finite face across its hull edge, to the right of
	// the edge as the face sees it.
	q, p := m.point(m.faces[f].v[ccw(i)]), m.point(m.faces[f].v[cw(i)])
	d := p.Sub(q)
	return VoronoiEdge{Kind: VoronoiRay, Ray: kernel.Ray{Source: m.center(f), Direction: kernel.Point{X: d.Y, Y: -d.X}}}, true
}
