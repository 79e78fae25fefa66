package advanced

import (
	"go.uber.org/zap"

	"github.com/osuushi/triangulation/kernel"
)

// Triangulation is the mesh core shared by every variant. Used directly it is
// a plain triangulation: insertion splits the located face and only repairs
// the convex hull. The variants differ in the restorer they install.
//
// A Triangulation is not safe for concurrent use.
type Triangulation struct {
	m          *mesh
	restorer   restorer
	log        *zap.Logger
	walkBudget int
}

type Option func(*Triangulation)

// WithLogger sets the logger used for debug traces and walk fallbacks.
func WithLogger(log *zap.Logger) Option {
	return func(t *Triangulation) {
		if log != nil {
			t.log = log
		}
	}
}

// WithWalkBudget sets how many steps per face the locate walk may take before
// it gives up and scans every face.
func WithWalkBudget(factor int) Option {
	return func(t *Triangulation) {
		if factor > 0 {
			t.walkBudget = factor
		}
	}
}

func newTriangulation(r restorer, opts []Option) *Triangulation {
	t := &Triangulation{
		m:          newMesh(),
		restorer:   r,
		log:        zap.NewNop(),
		walkBudget: 3,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTriangulation returns an empty plain triangulation.
func NewTriangulation(opts ...Option) *Triangulation {
	return newTriangulation(hullRestorer{}, opts)
}

func (t *Triangulation) Dimension() int { return t.m.dim }

// NumberOfVertices counts finite vertices that are not hidden.
func (t *Triangulation) NumberOfVertices() int {
	return len(t.m.vertices) - 1 - t.m.hiddenCount
}

// NumberOfFaces counts finite faces. It is zero below dimension 2.
func (t *Triangulation) NumberOfFaces() int {
	if t.m.dim < 2 {
		return 0
	}
	n := 0
	for f := range t.m.faces {
		if !t.m.faces[f].dead && !t.m.isInfiniteFace(int32(f)) {
			n++
		}
	}
	return n
}

func (t *Triangulation) InfiniteVertex() Vertex { return Vertex{t.m, t.m.infinite} }

// Clear discards every vertex and face. Handles obtained before are detached
// from the triangulation.
func (t *Triangulation) Clear() {
	t.m = newMesh()
}

// Swap exchanges the contents of t and o, which must be of the same variant.
func (t *Triangulation) Swap(o *Triangulation) {
	if t.restorer != o.restorer {
		fatalf("cannot swap a %T triangulation with a %T one", t.restorer, o.restorer)
	}
	t.m, o.m = o.m, t.m
}

// Insert adds the points in order and returns how many new vertices were
// created.
func (t *Triangulation) Insert(points ...kernel.Point) int {
	created := 0
	for _, p := range points {
		if _, ok := t.insert(kernel.WeightedPoint{Point: p}); ok {
			created++
		}
	}
	return created
}

// Push inserts a single point and returns its vertex. A point already present
// returns the existing vertex.
func (t *Triangulation) Push(p kernel.Point) Vertex {
	v, _ := t.insert(kernel.WeightedPoint{Point: p})
	return Vertex{t.m, v}
}

// insert adds wp and reports whether a new vertex was created. The returned
// vertex may be hidden.
func (t *Triangulation) insert(wp kernel.WeightedPoint) (int32, bool) {
	m := t.m
	switch m.dim {
	case -1:
		v := m.newVertex(wp)
		m.insertFirst(v)
		t.log.Debug("dimension changed", zap.Int("dimension", 0))
		return v, true
	case 0:
		u := m.faces[m.vertices[m.infinite].face].n[0]
		u = m.faces[u].v[0]
		if m.point(u) == wp.Point {
			return t.restorer.coincide(t, u, wp)
		}
		v := m.newVertex(wp)
		m.insertSecond(u, v)
		t.log.Debug("dimension changed", zap.Int("dimension", 1))
		return v, true
	}

	loc := t.locate(wp.Point, kernel.Orient)
	if loc.typ == LocateVertex {
		return t.restorer.coincide(t, m.faces[loc.face].v[loc.index], wp)
	}
	if by, hidden := t.restorer.dominated(m, loc, wp); hidden {
		v := m.newVertex(wp)
		t.hide(v, by)
		return v, true
	}

	v := m.newVertex(wp)
	switch {
	case m.dim == 1 && loc.typ == OutsideAffineHull:
		m.raiseToPlane(v)
		t.log.Debug("dimension changed", zap.Int("dimension", 2))
	case m.dim == 1:
		m.splitChain(loc.face, v)
	case loc.typ == LocateEdge:
		m.insertInEdge(loc.face, loc.index, v)
	default:
		m.insertInFace(loc.face, v)
	}
	flips := t.restorer.restore(t, v)
	m.hint = m.vertices[v].face
	t.log.Debug("inserted vertex",
		zap.Stringer("point", wp),
		zap.Stringer("site", loc.typ),
		zap.Int("flips", flips))
	return v, true
}

// hide marks v hidden by the vertex by. v must not be referenced by any face.
func (t *Triangulation) hide(v, by int32) {
	r := &t.m.vertices[v]
	r.face = noIndex
	r.hiddenBy = by
	if !r.hidden {
		r.hidden = true
		t.m.hiddenCount++
	}
	t.log.Debug("vertex hidden",
		zap.Stringer("vertex", r.point),
		zap.Stringer("by", t.m.vertices[by].point))
}

// MirrorEdge returns the representation of e seen from the other face.
func (t *Triangulation) MirrorEdge(e Edge) Edge {
	if t.m.dim < 2 {
		return e
	}
	f := e.Face.idx
	return Edge{Face{t.m, t.m.faces[f].n[e.Index]}, t.m.mirrorIndex(f, e.Index)}
}

// Segment returns the geometric segment of a finite edge.
func (t *Triangulation) Segment(e Edge) (kernel.Segment, bool) {
	if e.IsNil() || e.IsInfinite() {
		return kernel.Segment{}, false
	}
	a, b := e.Vertices()
	return kernel.Segment{Source: a.Point(), Target: b.Point()}, true
}
