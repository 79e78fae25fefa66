package advanced

import (
	"fmt"

	"github.com/osuushi/triangulation/kernel"
)

// Handles are small values pointing into the arena of a triangulation. They
// stay valid across insertions (faces may be rewired by flips, but a vertex
// handle always denotes the same vertex) and follow their data through Swap.
// After Clear they refer to a discarded arena.

type Vertex struct {
	m   *mesh
	idx int32
}

type Face struct {
	m   *mesh
	idx int32
}

// An Edge is the edge of Face opposite its vertex Index. The same geometric
// edge has a second representation from the neighboring face, see MirrorEdge.
type Edge struct {
	Face  Face
	Index int
}

const noIndex int32 = -1

// LocateType classifies where a query point lies relative to the located face.
type LocateType int

const (
	LocateVertex LocateType = iota
	LocateEdge
	LocateFace
	OutsideConvexHull
	OutsideAffineHull
)

func (lt LocateType) String() string {
	switch lt {
	case LocateVertex:
		return "Vertex"
	case LocateEdge:
		return "Edge"
	case LocateFace:
		return "Face"
	case OutsideConvexHull:
		return "OutsideConvexHull"
	}
	return "OutsideAffineHull"
}

// A Location is the detailed answer of Classify. Index is the vertex index for
// LocateVertex and the edge index for LocateEdge.
type Location struct {
	Face  Face
	Type  LocateType
	Index int
}

// VoronoiKind tags which of the three shapes a VoronoiEdge holds.
type VoronoiKind int

const (
	VoronoiSegment VoronoiKind = iota
	VoronoiRay
	VoronoiLine
)

func (k VoronoiKind) String() string {
	switch k {
	case VoronoiSegment:
		return "Segment"
	case VoronoiRay:
		return "Ray"
	}
	return "Line"
}

// A VoronoiEdge is the dual of a triangulation edge in the Voronoi diagram (or
// the power diagram for a regular triangulation). Only the field matching
// Kind is meaningful.
type VoronoiEdge struct {
	Kind    VoronoiKind
	Segment kernel.Segment
	Ray     kernel.Ray
	Line    kernel.Line
}

func (ve VoronoiEdge) String() string {
	switch ve.Kind {
	case VoronoiSegment:
		return ve.Segment.String()
	case VoronoiRay:
		return ve.Ray.String()
	}
	return ve.Line.String()
}

func ccw(i int) int { return (i + 1) % 3 }
func cw(i int) int  { return (i + 2) % 3 }

// Vertex accessors

func (v Vertex) IsNil() bool { return v.m == nil }

func (v Vertex) rec() *vertexRecord { return &v.m.vertices[v.idx] }

func (v Vertex) Point() kernel.Point { return v.rec().point.Point }

func (v Vertex) WeightedPoint() kernel.WeightedPoint { return v.rec().point }

func (v Vertex) Weight() float64 { return v.rec().point.Weight }

func (v Vertex) IsInfinite() bool { return v.idx == v.m.infinite }

func (v Vertex) IsHidden() bool { return v.rec().hidden }

// SetHidden flips the hidden flag without touching the mesh. It exists for
// callers that rebuild state by hand; hiding a vertex that is still referenced
// by faces makes IsValid fail.
func (v Vertex) SetHidden(hidden bool) {
	r := v.rec()
	if r.hidden == hidden {
		return
	}
	r.hidden = hidden
	if hidden {
		v.m.hiddenCount++
	} else {
		v.m.hiddenCount--
	}
}

// Face returns a face incident to v, or a nil face for hidden vertices.
func (v Vertex) Face() Face {
	f := v.rec().face
	if f == noIndex {
		return Face{}
	}
	return Face{v.m, f}
}

// Degree is the number of edges incident to v, edges to the infinite vertex
// included.
func (v Vertex) Degree() int {
	return v.m.degree(v.idx)
}

func (v Vertex) String() string {
	if v.m == nil {
		return "Vertex(nil)"
	}
	if v.IsInfinite() {
		return "Vertex(∞)"
	}
	return fmt.Sprintf("Vertex#%d%v", v.idx, v.rec().point)
}

// Face accessors

func (f Face) IsNil() bool { return f.m == nil }

func (f Face) rec() *faceRecord { return &f.m.faces[f.idx] }

// Vertex returns the vertex at index i (0, 1 or 2). Indices beyond the face
// dimension return a nil vertex.
func (f Face) Vertex(i int) Vertex {
	v := f.rec().v[i]
	if v == noIndex {
		return Vertex{}
	}
	return Vertex{f.m, v}
}

// Neighbor returns the face sharing the edge opposite vertex i.
func (f Face) Neighbor(i int) Face {
	n := f.rec().n[i]
	if n == noIndex {
		return Face{}
	}
	return Face{f.m, n}
}

// Index returns the index of v in f, or -1.
func (f Face) Index(v Vertex) int {
	return f.m.vertexIndex(f.idx, v.idx)
}

func (f Face) HasVertex(v Vertex) bool { return f.Index(v) >= 0 }

func (f Face) Dimension() int { return f.m.dim }

func (f Face) IsInfinite() bool { return f.m.isInfiniteFace(f.idx) }

// IsValid checks the face locally: its orientation and the symmetry of its
// neighbor relation.
func (f Face) IsValid() bool {
	return f.m.checkFace(f.idx) == nil
}

func (f Face) String() string {
	if f.m == nil {
		return "Face(nil)"
	}
	r := f.rec()
	s := fmt.Sprintf("Face#%d[", f.idx)
	for i := 0; i <= max(f.m.dim, 0) && i < 3; i++ {
		if i > 0 {
			s += " "
		}
		s += Vertex{f.m, r.v[i]}.String()
	}
	return s + "]"
}

// Edge accessors

func (e Edge) IsNil() bool { return e.Face.IsNil() }

// Vertices returns the endpoints of e in the orientation of e.Face.
func (e Edge) Vertices() (Vertex, Vertex) {
	m := e.Face.m
	if m.dim == 1 {
		return e.Face.Vertex(0), e.Face.Vertex(1)
	}
	return e.Face.Vertex(ccw(e.Index)), e.Face.Vertex(cw(e.Index))
}

func (e Edge) IsInfinite() bool {
	a, b := e.Vertices()
	return a.IsInfinite() || b.IsInfinite()
}

func (e Edge) String() string {
	a, b := e.Vertices()
	return fmt.Sprintf("Edge(%v, %v)", a, b)
}
