package advanced

import (
	"iter"

	"github.com/osuushi/triangulation/kernel"
)

// Iterators walk the arenas in index order, so two traversals of an unchanged
// triangulation agree. They are live views: mutating the triangulation while
// one is being consumed gives unspecified results.

// AllVertices yields the infinite vertex first, then every visible finite
// vertex.
func (t *Triangulation) AllVertices() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		if t.m.dim < 0 || !yield(Vertex{t.m, t.m.infinite}) {
			return
		}
		for v := range t.FiniteVertices() {
			if !yield(v) {
				return
			}
		}
	}
}

// FiniteVertices yields the finite vertices that are not hidden.
func (t *Triangulation) FiniteVertices() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		m := t.m
		for v := range m.vertices {
			if int32(v) == m.infinite || m.vertices[v].hidden {
				continue
			}
			if !yield(Vertex{m, int32(v)}) {
				return
			}
		}
	}
}

func (t *Triangulation) Points() iter.Seq[kernel.Point] {
	return func(yield func(kernel.Point) bool) {
		for v := range t.FiniteVertices() {
			if !yield(v.Point()) {
				return
			}
		}
	}
}

// AllFaces yields every face, infinite ones included. Below dimension 2 there
// are no faces.
func (t *Triangulation) AllFaces() iter.Seq[Face] {
	return t.faces(true)
}

func (t *Triangulation) FiniteFaces() iter.Seq[Face] {
	return t.faces(false)
}

func (t *Triangulation) faces(infinite bool) iter.Seq[Face] {
	return func(yield func(Face) bool) {
		m := t.m
		if m.dim < 2 {
			return
		}
		for f := range m.faces {
			if m.faces[f].dead || (!infinite && m.isInfiniteFace(int32(f))) {
				continue
			}
			if !yield(Face{m, int32(f)}) {
				return
			}
		}
	}
}

// AllEdges yields each edge once, from the face with the lower index. In
// dimension 1 the edges are the segments of the chain.
func (t *Triangulation) AllEdges() iter.Seq[Edge] {
	return t.edges(true)
}

func (t *Triangulation) FiniteEdges() iter.Seq[Edge] {
	return t.edges(false)
}

func (t *Triangulation) edges(infinite bool) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		m := t.m
		switch m.dim {
		case 1:
			for f := range m.faces {
				if m.faces[f].dead || (!infinite && m.isInfiniteFace(int32(f))) {
					continue
				}
				if !yield(Edge{Face{m, int32(f)}, 2}) {
					return
				}
			}
		case 2:
			for f := range m.faces {
				r := &m.faces[f]
				if r.dead {
					continue
				}
				for i := 0; i < 3; i++ {
					if r.n[i] < int32(f) || (!infinite && m.isInfiniteEdge(int32(f), i)) {
						continue
					}
					if !yield(Edge{Face{m, int32(f)}, i}) {
						return
					}
				}
			}
		}
	}
}

// IsConstrained reports whether e lies on an inserted constraint.
func (t *Triangulation) IsConstrained(e Edge) bool {
	return e.Face.rec().constrained[e.Index]
}

// ConstrainedEdges yields each constrained edge once.
func (t *Triangulation) ConstrainedEdges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for e := range t.FiniteEdges() {
			if t.IsConstrained(e) && !yield(e) {
				return
			}
		}
	}
}

func (t *Triangulation) NumberOfConstrainedEdges() int {
	n := 0
	for range t.ConstrainedEdges() {
		n++
	}
	return n
}
