package advanced

import (
	"math"

	"go.uber.org/zap"

	"github.com/osuushi/triangulation/kernel"
)

// Constrained is a triangulation that keeps inserted segments as chains of
// edges. Point insertion never removes a constrained edge; a point landing on
// one splits it into two constrained halves.
type Constrained struct {
	*Triangulation
}

func NewConstrained(opts ...Option) *Constrained {
	return &Constrained{newTriangulation(hullRestorer{}, opts)}
}

// ConstrainedDelaunay is a constrained triangulation in which every
// unconstrained edge is locally Delaunay.
type ConstrainedDelaunay struct {
	Constrained
}

func NewConstrainedDelaunay(opts ...Option) *ConstrainedDelaunay {
	return &ConstrainedDelaunay{Constrained{newTriangulation(delaunayRestorer{}, opts)}}
}

// InsertConstraint inserts p and q if needed and makes the segment pq a chain
// of constrained edges.
func (c *Constrained) InsertConstraint(p, q kernel.Point) {
	u, _ := c.insert(kernel.WeightedPoint{Point: p})
	w, _ := c.insert(kernel.WeightedPoint{Point: q})
	c.constrain(u, w)
}

// InsertConstraints constrains the polyline through points.
func (c *Constrained) InsertConstraints(points ...kernel.Point) {
	if len(points) == 1 {
		c.insert(kernel.WeightedPoint{Point: points[0]})
	}
	for k := 0; k+1 < len(points); k++ {
		c.InsertConstraint(points[k], points[k+1])
	}
}

// InsertPolygon constrains the closed polygon through points.
func (c *Constrained) InsertPolygon(points ...kernel.Point) {
	c.InsertConstraints(points...)
	if len(points) > 2 {
		c.InsertConstraint(points[len(points)-1], points[0])
	}
}

// constrain marks the segment between the vertices u and w. Vertices found on
// the segment split it, and so do crossings with constrained edges, which
// insert the intersection point.
func (c *Constrained) constrain(u, w int32) {
	m := c.m
	work := [][2]int32{{u, w}}
	budget := 8*len(m.faces) + 64
	for steps := 0; len(work) > 0; steps++ {
		if steps > budget {
			fatalf("constraining %v-%v does not converge", m.point(u), m.point(w))
		}
		s := work[len(work)-1]
		work = work[:len(work)-1]
		if s[0] == s[1] {
			continue
		}
		switch m.dim {
		case 1:
			c.constrainChain(s[0], s[1])
			continue
		case 2:
		default:
			continue
		}
		if f, i, ok := m.edgeBetween(s[0], s[1]); ok {
			m.setConstrained(f, i, true)
			continue
		}
		work = append(work, c.constrainAcross(s[0], s[1])...)
	}
}

func (c *Constrained) constrainChain(u, w int32) {
	m := c.m
	verts, _ := m.chain()
	from, to := -1, -1
	for k, v := range verts {
		if v == u {
			from = k
		}
		if v == w {
			to = k
		}
	}
	if from > to {
		from, to = to, from
	}
	for k := from; k < to; k++ {
		f, i := m.mustEdge(verts[k], verts[k+1])
		m.setConstrained(f, i, true)
	}
}

// constrainAcross makes uw an edge when no vertex lies on it and no
// constrained edge crosses it. Otherwise it returns the pieces left to
// constrain.
func (c *Constrained) constrainAcross(u, w int32) [][2]int32 {
	m := c.m
	pu, pw := m.point(u), m.point(w)

	// Find the face of the fan of u the segment leaves through.
	var r, l int32 = noIndex, noIndex
	for _, f := range m.facesAround(u) {
		if m.isInfiniteFace(f) {
			continue
		}
		k := m.vertexIndex(f, u)
		x, y := m.faces[f].v[ccw(k)], m.faces[f].v[cw(k)]
		for _, z := range []int32{x, y} {
			if kernel.Orient(pu, pw, m.point(z)) == kernel.Collinear && kernel.CollinearBetween(pu, m.point(z), pw) {
				return [][2]int32{{u, z}, {z, w}}
			}
		}
		if kernel.Orient(pu, m.point(x), pw) == kernel.CounterClockwise && kernel.Orient(pu, m.point(y), pw) == kernel.Clockwise {
			r, l = x, y
			break
		}
	}
	if r == noIndex {
		fatalf("segment from %v to %v leaves no face around its source", pu, pw)
	}

	// Collect the edges crossed by uw, right endpoint first.
	var crossed [][2]int32
	budget := len(m.faces) + 16
	for steps := 0; ; steps++ {
		if steps > budget {
			fatalf("walk from %v to %v does not reach its target", pu, pw)
		}
		f, i := m.mustEdge(r, l)
		if m.faces[f].constrained[i] {
			return c.splitAtCrossing(u, w, f, i)
		}
		crossed = append(crossed, [2]int32{r, l})
		n := m.faces[f].n[i]
		z := m.faces[n].v[m.mirrorIndex(f, i)]
		if z == w {
			break
		}
		switch kernel.Orient(pu, pw, m.point(z)) {
		case kernel.Collinear:
			return [][2]int32{{u, z}, {z, w}}
		case kernel.CounterClockwise:
			l = z
		default:
			r = z
		}
	}

	created := c.flipOut(u, w, crossed)
	f, i := m.mustEdge(u, w)
	m.setConstrained(f, i, true)
	if flips := c.restorer.legalize(c.Triangulation, created); flips > 0 {
		c.log.Debug("legalized around constraint", zap.Int("flips", flips))
	}
	return nil
}

// flipOut removes the crossed edges by flipping each one whose quadrilateral
// is convex, requeueing the rest, until uw is an edge. It returns the new
// edges that do not cross uw.
func (c *Constrained) flipOut(u, w int32, crossed [][2]int32) [][2]int32 {
	m := c.m
	pu, pw := m.point(u), m.point(w)
	var created [][2]int32
	budget := len(crossed) * len(crossed) * 4
	for steps := 0; len(crossed) > 0; steps++ {
		if steps > budget+16 {
			fatalf("flipping out the edges crossed by %v-%v does not converge", pu, pw)
		}
		e := crossed[0]
		crossed = crossed[1:]
		f, i := m.mustEdge(e[0], e[1])
		n := m.faces[f].n[i]
		x := m.faces[f].v[i]
		y := m.faces[n].v[m.mirrorIndex(f, i)]
		px, py := m.point(x), m.point(y)
		if kernel.Orient(px, py, m.point(e[0])) == kernel.Orient(px, py, m.point(e[1])) ||
			kernel.Orient(px, py, m.point(e[0])) == kernel.Collinear ||
			kernel.Orient(px, py, m.point(e[1])) == kernel.Collinear {
			crossed = append(crossed, e)
			continue
		}
		m.flip(f, i)
		ox, oy := kernel.Orient(pu, pw, px), kernel.Orient(pu, pw, py)
		if x != u && x != w && y != u && y != w && ox != kernel.Collinear && oy != kernel.Collinear && ox != oy {
			crossed = append(crossed, [2]int32{x, y})
		} else {
			created = append(created, [2]int32{x, y})
		}
	}
	return created
}

// splitAtCrossing resolves a crossing between uw and the constrained edge i
// of f. The rounded intersection point is inserted like any other point, so
// it may land on an existing vertex. When rounding pushes it out of the
// quadrilateral spanned by both segments, the endpoint closest to the other
// segment stands in for it. Both constraints are then rebuilt through the
// crossing vertex.
func (c *Constrained) splitAtCrossing(u, w int32, f int32, i int) [][2]int32 {
	m := c.m
	a, b := m.faces[f].v[ccw(i)], m.faces[f].v[cw(i)]
	pu, pw, pa, pb := m.point(u), m.point(w), m.point(a), m.point(b)
	m.setConstrained(f, i, false)

	var v int32
	p, ok := kernel.SegmentIntersection(pu, pw, pa, pb)
	if ok && strictlyInside(p, pu, pa, pw, pb) {
		v, _ = c.insert(kernel.WeightedPoint{Point: p})
	} else {
		v = snapCrossing(m, u, w, a, b)
	}
	c.log.Debug("constraints cross",
		zap.Stringer("at", m.point(v)),
		zap.Bool("snapped", !ok || m.point(v) != p),
		zap.Stringer("constraint", kernel.Segment{Source: pu, Target: pw}))
	// The crossed constraint goes on the stack last so it is restored first.
	return [][2]int32{{u, v}, {v, w}, {a, v}, {v, b}}
}

// strictlyInside reports whether p lies in the interior of the convex
// quadrilateral q0 q1 q2 q3, given in either orientation.
func strictlyInside(p kernel.Point, q ...kernel.Point) bool {
	first := kernel.Orient(q[0], q[1], p)
	if first == kernel.Collinear {
		return false
	}
	for k := 1; k < len(q); k++ {
		if kernel.Orient(q[k], q[(k+1)%len(q)], p) != first {
			return false
		}
	}
	return true
}

// snapCrossing picks, among the endpoints of uw and ab, the one closest to the
// supporting line of the other segment.
func snapCrossing(m *mesh, u, w, a, b int32) int32 {
	pu, pw, pa, pb := m.point(u), m.point(w), m.point(a), m.point(b)
	best, dist := u, lineDistance(pu, pa, pb)
	for _, c := range []struct {
		v int32
		d float64
	}{
		{w, lineDistance(pw, pa, pb)},
		{a, lineDistance(pa, pu, pw)},
		{b, lineDistance(pb, pu, pw)},
	} {
		if c.d < dist {
			best, dist = c.v, c.d
		}
	}
	return best
}

func lineDistance(x, p, q kernel.Point) float64 {
	d := q.Sub(p)
	return math.Abs(d.Cross(x.Sub(p))) / d.Norm()
}
