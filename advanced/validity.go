package advanced

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/osuushi/triangulation/dbg"
	"github.com/osuushi/triangulation/kernel"
)

// IsValid exhaustively checks the combinatorial structure, the geometry of
// every face and the variant's local condition on every edge. It has no side
// effects besides logging the first failure at debug level.
func (t *Triangulation) IsValid() bool {
	if err := t.check(); err != nil {
		t.log.Debug("triangulation is invalid", zap.Error(err))
		return false
	}
	return true
}

func (t *Triangulation) check() error {
	m := t.m
	live := 0
	for f := range m.faces {
		if m.faces[f].dead {
			continue
		}
		live++
		if err := m.checkFace(int32(f)); err != nil {
			return err
		}
	}

	visible := 0
	for v := range m.vertices {
		r := &m.vertices[v]
		if int32(v) != m.infinite {
			if r.hidden {
				continue
			}
			visible++
		}
		if m.dim < 0 {
			continue
		}
		if r.face == noIndex || int(r.face) >= len(m.faces) || m.faces[r.face].dead {
			return errors.Errorf("vertex %d has no live face: %s", v, dbg.Dump(*r))
		}
		if m.vertexIndex(r.face, int32(v)) < 0 {
			return errors.Errorf("vertex %d is not a vertex of its face %d", v, r.face)
		}
	}
	if visible+m.hiddenCount != len(m.vertices)-1 {
		return errors.Errorf("hidden count %d disagrees with the vertex flags", m.hiddenCount)
	}

	switch m.dim {
	case -1:
		if live != 0 || visible != 0 {
			return errors.Errorf("empty triangulation with %d faces and %d vertices", live, visible)
		}
	case 0:
		if live != 2 || visible != 1 {
			return errors.Errorf("dimension 0 with %d faces and %d vertices", live, visible)
		}
	case 1:
		if live != visible+1 {
			return errors.Errorf("dimension 1 chain has %d segments for %d vertices", live, visible)
		}
		if err := m.checkChain(); err != nil {
			return err
		}
	case 2:
		if live != 2*(visible+1)-4 {
			return errors.Errorf("%d faces for %d vertices breaks Euler's relation", live, visible)
		}
		degrees := 0
		for v := range t.AllVertices() {
			degrees += v.Degree()
		}
		if degrees != 3*live {
			return errors.Errorf("vertex degrees sum to %d for %d faces", degrees, live)
		}
		if err := m.checkHull(); err != nil {
			return err
		}
		for e := range t.AllEdges() {
			if !t.restorer.locallyValid(m, e.Face.idx, e.Index) {
				return errors.Errorf("edge %v fails the local condition", e)
			}
		}
	}

	for v := range m.vertices {
		if m.vertices[v].hidden && m.vertices[v].face != noIndex {
			return errors.Errorf("hidden vertex %d is still in the mesh", v)
		}
	}
	return nil
}

// checkFace verifies the neighbor symmetry of f, its constraint flags and, in
// dimension 2, the orientation of a finite f.
func (m *mesh) checkFace(f int32) error {
	r := &m.faces[f]
	if r.dead {
		return errors.Errorf("face %d is dead", f)
	}
	switch m.dim {
	case 0:
		n := r.n[0]
		if n == noIndex || m.faces[n].n[0] != f {
			return errors.Errorf("dimension 0 face %d is not paired", f)
		}
		return nil
	case 1:
		next, prev := r.n[0], r.n[1]
		if next == noIndex || prev == noIndex || m.faces[next].n[1] != f || m.faces[prev].n[0] != f {
			return errors.Errorf("chain links of face %d are not symmetric", f)
		}
		if m.faces[next].v[0] != r.v[1] {
			return errors.Errorf("chain face %d does not meet its successor", f)
		}
		return nil
	case 2:
	default:
		return nil
	}

	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if r.v[i] == r.v[j] {
				return errors.Errorf("face %d repeats a vertex: %s", f, dbg.Dump(r.v))
			}
		}
		n := r.n[i]
		if n == noIndex || m.faces[n].dead {
			return errors.Errorf("face %d has no neighbor across edge %d", f, i)
		}
		j := m.vertexIndex(n, r.v[ccw(i)])
		if j < 0 || m.faces[n].n[ccw(j)] != f || m.faces[n].v[ccw(ccw(j))] != r.v[cw(i)] {
			return errors.Errorf("face %d and its neighbor %d disagree across edge %d", f, n, i)
		}
		if m.faces[n].constrained[ccw(j)] != r.constrained[i] {
			return errors.Errorf("faces %d and %d disagree on whether their edge is constrained", f, n)
		}
	}
	if !m.isInfiniteFace(f) {
		a, b, c := m.point(r.v[0]), m.point(r.v[1]), m.point(r.v[2])
		if kernel.Orient(a, b, c) != kernel.CounterClockwise {
			return errors.Errorf("face %d is not counterclockwise: %v %v %v", f, a, b, c)
		}
	}
	return nil
}

// checkHull verifies that the hull turns left (or goes straight) at every hull
// vertex.
func (m *mesh) checkHull() error {
	for f := range m.faces {
		if m.faces[f].dead {
			continue
		}
		k := m.vertexIndex(int32(f), m.infinite)
		if k < 0 {
			continue
		}
		r := &m.faces[f]
		a, b := r.v[ccw(k)], r.v[cw(k)]
		n := r.n[ccw(k)]
		y := m.faces[n].v[cw(m.vertexIndex(n, m.infinite))]
		if kernel.Orient(m.point(a), m.point(b), m.point(y)) == kernel.CounterClockwise {
			return errors.Errorf("hull is not convex at %v", m.point(b))
		}
	}
	return nil
}

func (m *mesh) checkChain() error {
	verts, _ := m.chain()
	for k := 0; k+2 < len(verts); k++ {
		p, q, r := m.point(verts[k]), m.point(verts[k+1]), m.point(verts[k+2])
		if kernel.Orient(p, q, r) != kernel.Collinear || !kernel.CollinearBetween(p, q, r) {
			return errors.Errorf("chain is not a straight monotone line at %v", q)
		}
	}
	return nil
}
