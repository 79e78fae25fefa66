package advanced

import (
	"iter"

	"github.com/osuushi/triangulation/kernel"
)

// Regular is the weighted analogue of Delaunay: the power test replaces the
// in-circle test, and a weighted point whose lifted point lies above the lower
// hull is stored as a hidden vertex instead of appearing in the mesh.
type Regular struct {
	*Triangulation
}

func NewRegular(opts ...Option) *Regular {
	return &Regular{newTriangulation(regularRestorer{}, opts)}
}

// InsertWeighted adds the weighted points in order and returns how many new
// vertices were created, hidden ones included.
func (r *Regular) InsertWeighted(points ...kernel.WeightedPoint) int {
	created := 0
	for _, p := range points {
		if _, ok := r.insert(p); ok {
			created++
		}
	}
	return created
}

// PushWeighted inserts a single weighted point. The returned vertex may be
// hidden.
func (r *Regular) PushWeighted(p kernel.WeightedPoint) Vertex {
	v, _ := r.insert(p)
	return Vertex{r.m, v}
}

func (r *Regular) NumberOfHiddenVertices() int { return r.m.hiddenCount }

// HiddenBy returns the vertex that hid v when it was hidden by insertion.
func (r *Regular) HiddenBy(v Vertex) (Vertex, bool) {
	by := v.rec().hiddenBy
	if !v.IsHidden() || by == noIndex {
		return Vertex{}, false
	}
	return Vertex{r.m, by}, true
}

// NearestPowerVertex returns the visible vertex minimizing the power distance
// to p.
func (r *Regular) NearestPowerVertex(p kernel.Point) (Vertex, bool) {
	return r.nearest(p, true)
}

// Dual returns the power diagram edge dual to e.
func (r *Regular) Dual(e Edge) (VoronoiEdge, bool) {
	return r.dual(e)
}

// DualOf is Dual for an edge given by its two endpoints.
func (r *Regular) DualOf(a, b Vertex) (VoronoiEdge, bool) {
	e, ok := r.EdgeBetween(a, b)
	if !ok {
		return VoronoiEdge{}, false
	}
	return r.dual(e)
}

// HiddenVertices iterates the hidden vertices in arena order.
func (t *Triangulation) HiddenVertices() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		m := t.m
		for v := range m.vertices {
			if m.vertices[v].hidden && !yield(Vertex{m, int32(v)}) {
				return
			}
		}
	}
}

type regularRestorer struct{}

func (regularRestorer) coincide(t *Triangulation, u int32, p kernel.WeightedPoint) (int32, bool) {
	m := t.m
	switch kernel.PowerCompare(m.vertices[u].point, p) {
	case kernel.OnBoundary:
		return u, false
	case kernel.Outside:
		v := m.newVertex(p)
		t.hide(v, u)
		return v, true
	}
	v := m.newVertex(p)
	m.replaceVertex(u, v)
	t.hide(u, v)
	regularRestorer{}.restore(t, v)
	return v, true
}

func (regularRestorer) dominated(m *mesh, loc location, p kernel.WeightedPoint) (int32, bool) {
	if loc.typ != LocateFace && loc.typ != LocateEdge {
		return noIndex, false
	}
	r := &m.faces[loc.face]
	var candidates []int32
	switch {
	case m.dim == 1:
		a, b := r.v[0], r.v[1]
		if kernel.CollinearPowerTest(m.vertices[a].point, m.vertices[b].point, p) != kernel.Outside {
			return noIndex, false
		}
		candidates = []int32{a, b}
	case loc.typ == LocateEdge:
		a, b := r.v[ccw(loc.index)], r.v[cw(loc.index)]
		if kernel.CollinearPowerTest(m.vertices[a].point, m.vertices[b].point, p) != kernel.Outside {
			return noIndex, false
		}
		candidates = []int32{a, b}
	default:
		if m.isInfiniteFace(loc.face) {
			return noIndex, false
		}
		a, b, c := m.vertices[r.v[0]].point, m.vertices[r.v[1]].point, m.vertices[r.v[2]].point
		if kernel.PowerTest(a, b, c, p) != kernel.Outside {
			return noIndex, false
		}
		candidates = r.v[:]
	}
	by := candidates[0]
	for _, c := range candidates[1:] {
		if kernel.ComparePowerDistance(p.Point, m.vertices[c].point, m.vertices[by].point) < 0 {
			by = c
		}
	}
	return by, true
}

func (regularRestorer) restore(t *Triangulation, v int32) int {
	switch t.m.dim {
	case 1:
		return t.regularizeChain(v)
	case 2:
		return t.regularizePlane(v)
	}
	return 0
}

func (regularRestorer) legalize(*Triangulation, [][2]int32) int { return 0 }

func (regularRestorer) locallyValid(m *mesh, f int32, i int) bool {
	if m.isInfiniteFace(f) || m.isInfiniteFace(m.faces[f].n[i]) {
		return true
	}
	return !m.edgeConflict(f, i, true)
}

// replaceVertex hands every incidence of u over to v.
func (m *mesh) replaceVertex(u, v int32) {
	var faces []int32
	switch m.dim {
	case 0:
		faces = []int32{m.vertices[u].face}
	case 1:
		faces = m.chainFaces(u)
	default:
		faces = m.facesAround(u)
	}
	for _, f := range faces {
		m.faces[f].v[m.vertexIndex(f, u)] = v
	}
	m.vertices[v].face = m.vertices[u].face
	m.vertices[u].face = noIndex
}

// regularizeChain hides the chain neighbors of v whose lifted points lie
// above the lifted segment joining v to the vertex beyond them.
func (t *Triangulation) regularizeChain(v int32) int {
	m := t.m
	p := m.vertices[v].point
	hidden := 0
	for side := 0; side < 2; side++ {
		for {
			x := m.chainNeighbor(v, side)
			if m.isInfinite(x) {
				break
			}
			y := m.chainNeighbor(x, side)
			if m.isInfinite(y) {
				break
			}
			if kernel.CollinearPowerTest(p, m.vertices[y].point, m.vertices[x].point) != kernel.Outside {
				break
			}
			m.unsplitChain(x)
			t.hide(x, v)
			hidden++
		}
	}
	return hidden
}

// chainNeighbor returns the chain neighbor of v before it (side 0) or after it
// (side 1).
func (m *mesh) chainNeighbor(v int32, side int) int32 {
	fs := m.chainFaces(v)
	if side == 0 {
		return m.faces[fs[0]].v[0]
	}
	return m.faces[fs[1]].v[1]
}

// regularizePlane is the flip loop of the regular triangulation. Besides
// ordinary flips it removes vertices of degree 3 and 4 that the new vertex
// makes redundant, hiding them.
func (t *Triangulation) regularizePlane(v int32) int {
	m := t.m
	p := m.vertices[v].point
	stack := m.facesAround(v)
	flips := 0
	detach := func(x, from int32) {
		stack = append(stack, m.removeLowDegree(x, from)...)
		t.hide(x, v)
		flips++
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if m.faces[f].dead {
			continue
		}
		i := m.vertexIndex(f, v)
		if i < 0 {
			continue
		}
		n := m.faces[f].n[i]
		if !m.inConflict(n, p, true) {
			continue
		}

		if m.isInfiniteEdge(f, i) {
			k := m.vertexIndex(f, m.infinite)
			x := m.faces[f].v[3-i-k]
			rn := &m.faces[n]
			kn := m.vertexIndex(n, m.infinite)
			a, b := m.point(rn.v[ccw(kn)]), m.point(rn.v[cw(kn)])
			if kernel.Orient(a, b, p.Point) == kernel.CounterClockwise {
				m.flip(f, i)
				flips++
				stack = append(stack, f, n)
			} else if m.degree(x) == 4 {
				detach(x, v)
			}
			continue
		}

		z := m.faces[n].v[m.mirrorIndex(f, i)]
		if m.isInfinite(z) {
			continue
		}
		x, y := m.faces[f].v[ccw(i)], m.faces[f].v[cw(i)]
		occw := kernel.Orient(p.Point, m.point(x), m.point(z))
		ocw := kernel.Orient(p.Point, m.point(y), m.point(z))
		switch {
		case occw == kernel.CounterClockwise && ocw == kernel.Clockwise:
			m.flip(f, i)
			flips++
			stack = append(stack, f, n)
		case occw == kernel.Clockwise && m.degree(x) == 3:
			detach(x, noIndex)
		case ocw == kernel.CounterClockwise && m.degree(y) == 3:
			detach(y, noIndex)
		case occw == kernel.Collinear && m.degree(x) == 4:
			detach(x, v)
		case ocw == kernel.Collinear && m.degree(y) == 4:
			detach(y, v)
		}
	}
	return flips
}
