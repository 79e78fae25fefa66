package advanced

import (
	"iter"

	"go.uber.org/zap"

	"github.com/osuushi/triangulation/kernel"
)

type orientFunc func(p, q, r kernel.Point) kernel.Orientation

type location struct {
	face  int32
	typ   LocateType
	index int
}

// Locate returns a face containing p, or having p on its boundary. Outside
// the convex hull the face is infinite. ok is false only for an empty
// triangulation.
func (t *Triangulation) Locate(p kernel.Point) (Face, bool) {
	loc, ok := t.Classify(p)
	return loc.Face, ok
}

// InexactLocate is Locate with plain floating point orientation tests. Near
// degeneracies it may return a neighbor of the right face.
func (t *Triangulation) InexactLocate(p kernel.Point) (Face, bool) {
	if t.m.dim < 0 {
		return Face{}, false
	}
	loc := t.locate(p, kernel.InexactOrient)
	return Face{t.m, loc.face}, true
}

// Classify locates p and reports how it relates to the returned face.
func (t *Triangulation) Classify(p kernel.Point) (Location, bool) {
	if t.m.dim < 0 {
		return Location{}, false
	}
	loc := t.locate(p, kernel.Orient)
	return Location{Face: Face{t.m, loc.face}, Type: loc.typ, Index: loc.index}, true
}

func (t *Triangulation) locate(p kernel.Point, orient orientFunc) location {
	m := t.m
	switch m.dim {
	case -1:
		return location{face: noIndex, typ: OutsideAffineHull}
	case 0:
		f := m.vertices[m.infinite].face
		f = m.faces[f].n[0]
		if m.point(m.faces[f].v[0]) == p {
			return location{face: f, typ: LocateVertex}
		}
		return location{face: f, typ: OutsideAffineHull}
	case 1:
		return t.locateOnChain(p, orient)
	}
	return t.walk(p, orient)
}

func (t *Triangulation) locateOnChain(p kernel.Point, orient orientFunc) location {
	m := t.m
	verts, _ := m.chain()
	first, last := verts[0], verts[len(verts)-1]
	endFaces := func(v int32) []int32 { return m.chainFaces(v) }

	if orient(m.point(first), m.point(last), p) != kernel.Collinear {
		// Report the face holding the orthogonal projection of p.
		a := m.point(first)
		d := m.point(last).Sub(a)
		sp := p.Sub(a).Dot(d)
		if sp < 0 {
			return location{face: endFaces(first)[0], typ: OutsideAffineHull, index: 2}
		}
		for k := 0; k+1 < len(verts); k++ {
			if m.point(verts[k+1]).Sub(a).Dot(d) >= sp {
				return location{face: endFaces(verts[k])[1], typ: OutsideAffineHull, index: 2}
			}
		}
		return location{face: endFaces(last)[1], typ: OutsideAffineHull, index: 2}
	}

	for _, v := range verts {
		if m.point(v) == p {
			f := m.vertices[v].face
			return location{face: f, typ: LocateVertex, index: m.vertexIndex(f, v)}
		}
	}
	for k := 0; k+1 < len(verts); k++ {
		if kernel.CollinearBetween(m.point(verts[k]), p, m.point(verts[k+1])) {
			return location{face: endFaces(verts[k])[1], typ: LocateEdge, index: 2}
		}
	}
	if kernel.CollinearBetween(p, m.point(first), m.point(last)) {
		return location{face: endFaces(first)[0], typ: OutsideConvexHull, index: 2}
	}
	return location{face: endFaces(last)[1], typ: OutsideConvexHull, index: 2}
}

func (m *mesh) nextRand() uint32 {
	x := m.walkState
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	m.walkState = x
	return x
}

func (m *mesh) anyFace() int32 {
	for f := range m.faces {
		if !m.faces[f].dead && !m.isInfiniteFace(int32(f)) {
			return int32(f)
		}
	}
	for f := range m.faces {
		if !m.faces[f].dead {
			return int32(f)
		}
	}
	fatalf("mesh of dimension %d has no faces", m.dim)
	return noIndex
}

// walk is a remembering visibility walk. Each face tests its edges starting
// from a varying one, which keeps the walk from cycling on degenerate input.
func (t *Triangulation) walk(p kernel.Point, orient orientFunc) location {
	m := t.m
	f := m.hint
	if f == noIndex || f >= int32(len(m.faces)) || m.faces[f].dead {
		f = m.anyFace()
	}
	budget := t.walkBudget*len(m.faces) + 16
	prev := noIndex
	for step := 0; step < budget; step++ {
		next, loc, done := t.walkStep(f, prev, p, orient)
		if done {
			m.hint = loc.face
			return loc
		}
		prev, f = f, next
	}
	t.log.Warn("locate walk exceeded its budget, scanning all faces",
		zap.Stringer("point", p),
		zap.Int("steps", budget))
	loc, ok := t.scan(p, orient)
	if !ok {
		t.log.Warn("scan found no face, retrying with exact predicates", zap.Stringer("point", p))
		loc, ok = t.scan(p, kernel.Orient)
	}
	if !ok {
		fatalf("no face contains %v", p)
	}
	m.hint = loc.face
	return loc
}

func (t *Triangulation) walkStep(f, prev int32, p kernel.Point, orient orientFunc) (int32, location, bool) {
	m := t.m
	r := &m.faces[f]
	if k := m.vertexIndex(f, m.infinite); k >= 0 {
		return t.infiniteStep(f, k, p, orient)
	}

	var sides [3]kernel.Orientation
	start := int(m.nextRand() % 3)
	for j := 0; j < 3; j++ {
		i := (start + j) % 3
		if r.n[i] == prev {
			sides[i] = kernel.CounterClockwise
			continue
		}
		sides[i] = orient(m.point(r.v[ccw(i)]), m.point(r.v[cw(i)]), p)
		if sides[i] == kernel.Clockwise {
			return r.n[i], location{}, false
		}
	}
	if prev != noIndex {
		// The skipped edge still matters for classification.
		for i := 0; i < 3; i++ {
			if r.n[i] == prev {
				sides[i] = orient(m.point(r.v[ccw(i)]), m.point(r.v[cw(i)]), p)
			}
		}
	}
	return noIndex, classifyInFace(f, sides), true
}

func classifyInFace(f int32, sides [3]kernel.Orientation) location {
	var zeros []int
	for i, s := range sides {
		if s == kernel.Collinear {
			zeros = append(zeros, i)
		}
	}
	switch len(zeros) {
	case 0:
		return location{face: f, typ: LocateFace}
	case 1:
		return location{face: f, typ: LocateEdge, index: zeros[0]}
	}
	return location{face: f, typ: LocateVertex, index: 3 - zeros[0] - zeros[1]}
}

// infiniteStep handles a walk arriving in the infinite face f, whose infinite
// vertex has index k.
func (t *Triangulation) infiniteStep(f int32, k int, p kernel.Point, orient orientFunc) (int32, location, bool) {
	m := t.m
	r := &m.faces[f]
	a, b := m.point(r.v[ccw(k)]), m.point(r.v[cw(k)])
	switch orient(a, b, p) {
	case kernel.CounterClockwise:
		return noIndex, location{face: f, typ: OutsideConvexHull, index: k}, true
	case kernel.Clockwise:
		return r.n[k], location{}, false
	}
	switch {
	case p == a:
		return noIndex, location{face: f, typ: LocateVertex, index: ccw(k)}, true
	case p == b:
		return noIndex, location{face: f, typ: LocateVertex, index: cw(k)}, true
	case kernel.CollinearBetween(a, p, b):
		return noIndex, location{face: f, typ: LocateEdge, index: k}, true
	case kernel.CollinearBetween(a, b, p):
		return r.n[ccw(k)], location{}, false
	}
	return r.n[cw(k)], location{}, false
}

// scan tests every face. Finite faces win over infinite ones so that points on
// the hull are reported on their inner side.
func (t *Triangulation) scan(p kernel.Point, orient orientFunc) (location, bool) {
	m := t.m
	for f := range m.faces {
		r := &m.faces[f]
		if r.dead || m.isInfiniteFace(int32(f)) {
			continue
		}
		var sides [3]kernel.Orientation
		inside := true
		for i := 0; i < 3 && inside; i++ {
			sides[i] = orient(m.point(r.v[ccw(i)]), m.point(r.v[cw(i)]), p)
			inside = sides[i] != kernel.Clockwise
		}
		if inside {
			return classifyInFace(int32(f), sides), true
		}
	}
	for f := range m.faces {
		if m.faces[f].dead {
			continue
		}
		k := m.vertexIndex(int32(f), m.infinite)
		if k < 0 {
			continue
		}
		if _, loc, done := t.infiniteStep(int32(f), k, p, orient); done {
			return loc, true
		}
	}
	return location{}, false
}

// LineWalk yields the faces crossed by the segment pq, from the face locating p
// up to the face containing q. A walk starting outside the convex hull enters
// it through the hull edge the segment crosses, and a walk leaving the hull
// stops at the infinite face it exits into. Only dimension 2 yields faces.
func (t *Triangulation) LineWalk(p, q kernel.Point) iter.Seq[Face] {
	return func(yield func(Face) bool) {
		m := t.m
		if m.dim < 2 {
			return
		}
		f := t.walkStart(p, q)
		if m.isInfiniteFace(f) {
			if !yield(Face{m, f}) {
				return
			}
			g, ok := t.hullEntry(p, q)
			if !ok {
				return
			}
			f = g
		}
		for steps := 0; steps <= len(m.faces); steps++ {
			if !yield(Face{m, f}) {
				return
			}
			if m.isInfiniteFace(f) {
				return
			}
			next, ok := t.exitFace(f, p, q)
			if !ok {
				return
			}
			f = next
		}
		t.log.Warn("line walk did not reach its target",
			zap.Stringer("from", p),
			zap.Stringer("to", q))
	}
}

func (t *Triangulation) walkStart(p, q kernel.Point) int32 {
	m := t.m
	loc := t.locate(p, kernel.Orient)
	switch loc.typ {
	case LocateVertex:
		v := m.faces[loc.face].v[loc.index]
		for _, f := range m.facesAround(v) {
			if m.isInfiniteFace(f) {
				continue
			}
			i := m.vertexIndex(f, v)
			x, y := m.point(m.faces[f].v[ccw(i)]), m.point(m.faces[f].v[cw(i)])
			if kernel.Orient(p, x, q) != kernel.Clockwise && kernel.Orient(p, y, q) != kernel.CounterClockwise {
				return f
			}
		}
	case LocateEdge:
		if m.isInfiniteFace(loc.face) {
			return m.faces[loc.face].n[loc.index]
		}
	}
	return loc.face
}

// exitFace returns the neighbor of the finite face f through which the
// segment pq leaves it. ok is false when q lies in f.
func (t *Triangulation) exitFace(f int32, p, q kernel.Point) (int32, bool) {
	m := t.m
	r := &m.faces[f]
	for i := 0; i < 3; i++ {
		a, b := m.point(r.v[ccw(i)]), m.point(r.v[cw(i)])
		if kernel.Orient(a, b, q) != kernel.Clockwise {
			continue
		}
		if kernel.Orient(p, q, a) != kernel.CounterClockwise && kernel.Orient(p, q, b) != kernel.Clockwise {
			return r.n[i], true
		}
	}
	return noIndex, false
}

// hullEntry finds the finite face through which the segment pq, starting
// outside the hull, enters it.
func (t *Triangulation) hullEntry(p, q kernel.Point) (int32, bool) {
	m := t.m
	for f := range m.faces {
		if m.faces[f].dead {
			continue
		}
		k := m.vertexIndex(int32(f), m.infinite)
		if k < 0 {
			continue
		}
		r := &m.faces[f]
		a, b := m.point(r.v[ccw(k)]), m.point(r.v[cw(k)])
		if kernel.Orient(a, b, p) == kernel.CounterClockwise &&
			kernel.Orient(a, b, q) == kernel.Clockwise &&
			kernel.Orient(p, q, a) != kernel.CounterClockwise &&
			kernel.Orient(p, q, b) != kernel.Clockwise {
			return r.n[k], true
		}
	}
	return noIndex, false
}
