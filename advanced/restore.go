package advanced

import (
	"github.com/osuushi/triangulation/kernel"
)

// A restorer is the per-variant policy applied around a local change of the
// mesh. Every variant shares insertion and point location; they differ in
// which edges they flip afterwards and in how they treat points that land on
// or under existing vertices.
type restorer interface {
	// coincide handles a point located exactly on the existing vertex v. It
	// returns the vertex standing for p and whether a vertex was created.
	coincide(t *Triangulation, v int32, p kernel.WeightedPoint) (int32, bool)
	// dominated reports the vertex hiding p, a point about to be inserted at
	// loc, if p must not appear in the triangulation.
	dominated(m *mesh, loc location, p kernel.WeightedPoint) (int32, bool)
	// restore re-establishes the variant's invariant around the new vertex v
	// and returns the number of flips it took.
	restore(t *Triangulation, v int32) int
	// legalize restores the invariant after constraint insertion created the
	// given edges.
	legalize(t *Triangulation, edges [][2]int32) int
	// locallyValid checks the variant's local condition on edge i of f.
	locallyValid(m *mesh, f int32, i int) bool
}

type bareRestorer struct{}

func (bareRestorer) coincide(_ *Triangulation, v int32, _ kernel.WeightedPoint) (int32, bool) {
	return v, false
}

func (bareRestorer) dominated(*mesh, location, kernel.WeightedPoint) (int32, bool) {
	return noIndex, false
}

func (bareRestorer) legalize(*Triangulation, [][2]int32) int { return 0 }

// hullRestorer only flips the edges that hide a new vertex outside the convex
// hull, which is what keeps a plain triangulation convex.
type hullRestorer struct{ bareRestorer }

func (hullRestorer) restore(t *Triangulation, v int32) int {
	m := t.m
	if m.dim < 2 {
		return 0
	}
	return m.flipAround(v, func(n int32, p kernel.WeightedPoint) bool {
		return m.isInfiniteFace(n) && m.inConflict(n, p, false)
	})
}

func (hullRestorer) locallyValid(*mesh, int32, int) bool { return true }

// delaunayRestorer flips every unconstrained edge whose opposite vertex lies
// in the circumcircle of the other face.
type delaunayRestorer struct{ bareRestorer }

func (delaunayRestorer) restore(t *Triangulation, v int32) int {
	m := t.m
	if m.dim < 2 {
		return 0
	}
	return m.flipAround(v, func(n int32, p kernel.WeightedPoint) bool {
		return m.inConflict(n, p, false)
	})
}

func (delaunayRestorer) legalize(t *Triangulation, edges [][2]int32) int {
	m := t.m
	flips := 0
	for len(edges) > 0 {
		e := edges[len(edges)-1]
		edges = edges[:len(edges)-1]
		f, i, ok := m.edgeBetween(e[0], e[1])
		if !ok || m.faces[f].constrained[i] || !m.edgeConflict(f, i, false) {
			continue
		}
		n := m.faces[f].n[i]
		a, b, c := m.faces[f].v[i], m.faces[f].v[ccw(i)], m.faces[f].v[cw(i)]
		d := m.faces[n].v[m.mirrorIndex(f, i)]
		m.flip(f, i)
		flips++
		edges = append(edges, [2]int32{a, b}, [2]int32{b, d}, [2]int32{d, c}, [2]int32{c, a})
	}
	return flips
}

func (delaunayRestorer) locallyValid(m *mesh, f int32, i int) bool {
	if m.faces[f].constrained[i] || m.isInfiniteFace(f) || m.isInfiniteFace(m.faces[f].n[i]) {
		return true
	}
	return !m.edgeConflict(f, i, false)
}

// flipAround runs the flip loop over the star of v: an edge opposite v is
// flipped when conflict holds between its far face and v, and both faces
// sharing the new edge are examined again.
func (m *mesh) flipAround(v int32, conflict func(n int32, p kernel.WeightedPoint) bool) int {
	p := m.vertices[v].point
	stack := m.facesAround(v)
	flips := 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i := m.vertexIndex(f, v)
		if i < 0 || m.faces[f].constrained[i] {
			continue
		}
		n := m.faces[f].n[i]
		if !conflict(n, p) {
			continue
		}
		m.flip(f, i)
		flips++
		stack = append(stack, f, n)
	}
	return flips
}

// inConflict reports whether p lies in the circumcircle (or, when power is
// set, conflicts in the power test) of face n. An infinite face conflicts
// with the open half-plane beyond its hull edge.
func (m *mesh) inConflict(n int32, p kernel.WeightedPoint, power bool) bool {
	r := &m.faces[n]
	if k := m.vertexIndex(n, m.infinite); k >= 0 {
		a, b := m.vertices[r.v[ccw(k)]].point, m.vertices[r.v[cw(k)]].point
		switch kernel.Orient(a.Point, b.Point, p.Point) {
		case kernel.CounterClockwise:
			return true
		case kernel.Clockwise:
			return false
		}
		if power {
			return kernel.CollinearPowerTest(a, b, p) == kernel.Inside
		}
		return kernel.CollinearBetween(a.Point, p.Point, b.Point)
	}
	a, b, c := m.vertices[r.v[0]].point, m.vertices[r.v[1]].point, m.vertices[r.v[2]].point
	if power {
		return kernel.PowerTest(a, b, c, p) == kernel.Inside
	}
	return kernel.InCircle(a.Point, b.Point, c.Point, p.Point) == kernel.Inside
}

// edgeConflict tests the edge i of f from whichever side has a finite
// opposite vertex.
func (m *mesh) edgeConflict(f int32, i int, power bool) bool {
	n := m.faces[f].n[i]
	p := m.faces[f].v[i]
	if m.isInfinite(p) {
		p = m.faces[n].v[m.mirrorIndex(f, i)]
		n = f
		if m.isInfinite(p) {
			return false
		}
	}
	return m.inConflict(n, m.vertices[p].point, power)
}
