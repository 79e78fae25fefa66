package advanced

import (
	"github.com/osuushi/triangulation/kernel"
)

// The mesh is an arena of vertex and face records addressed by int32
// indices. Vertex 0 is the infinite vertex. Faces incident to it cover the
// outside of the convex hull, so every point of the plane lies in some face
// once the dimension reaches 2.
//
// Faces store their vertices counterclockwise, and n[i] is the face across the
// edge opposite v[i]. Below dimension 2 the same records are reused with
// fewer vertices: in dimension 1 a face is a segment (v[0], v[1]) of the
// chain, n[0] follows the chain past v[1] and n[1] goes back past v[0]; in
// dimension 0 each of the two faces holds one vertex and points at the other.

type vertexRecord struct {
	point    kernel.WeightedPoint
	face     int32
	hidden   bool
	hiddenBy int32
}

type faceRecord struct {
	v           [3]int32
	n           [3]int32
	constrained [3]bool
	dead        bool
}

type mesh struct {
	vertices    []vertexRecord
	faces       []faceRecord
	free        []int32
	infinite    int32
	dim         int
	hiddenCount int

	// Start face for the next locate walk, and the state used to vary the
	// order in which the walk tries the edges of a face.
	hint      int32
	walkState uint32
}

func newMesh() *mesh {
	m := &mesh{
		infinite:  0,
		dim:       -1,
		hint:      noIndex,
		walkState: 2463534242,
	}
	m.vertices = append(m.vertices, vertexRecord{face: noIndex, hiddenBy: noIndex})
	return m
}

func (m *mesh) newVertex(p kernel.WeightedPoint) int32 {
	m.vertices = append(m.vertices, vertexRecord{point: p, face: noIndex, hiddenBy: noIndex})
	return int32(len(m.vertices) - 1)
}

func (m *mesh) newFace(v0, v1, v2 int32) int32 {
	rec := faceRecord{
		v: [3]int32{v0, v1, v2},
		n: [3]int32{noIndex, noIndex, noIndex},
	}
	if len(m.free) > 0 {
		f := m.free[len(m.free)-1]
		m.free = m.free[:len(m.free)-1]
		m.faces[f] = rec
		return f
	}
	m.faces = append(m.faces, rec)
	return int32(len(m.faces) - 1)
}

func (m *mesh) deleteFace(f int32) {
	m.faces[f] = faceRecord{dead: true, v: [3]int32{noIndex, noIndex, noIndex}, n: [3]int32{noIndex, noIndex, noIndex}}
	m.free = append(m.free, f)
	if m.hint == f {
		m.hint = noIndex
	}
}

// resetFaces drops every face. Vertices survive and lose their face pointer.
func (m *mesh) resetFaces() {
	m.faces = m.faces[:0]
	m.free = m.free[:0]
	m.hint = noIndex
	for i := range m.vertices {
		m.vertices[i].face = noIndex
	}
}

func (m *mesh) point(v int32) kernel.Point { return m.vertices[v].point.Point }

func (m *mesh) isInfinite(v int32) bool { return v == m.infinite }

func (m *mesh) vertexIndex(f, v int32) int {
	r := &m.faces[f]
	for i := 0; i < 3; i++ {
		if r.v[i] == v {
			return i
		}
	}
	return -1
}

func (m *mesh) isInfiniteFace(f int32) bool {
	return m.vertexIndex(f, m.infinite) >= 0
}

func (m *mesh) isInfiniteEdge(f int32, i int) bool {
	if m.dim == 1 {
		return m.isInfiniteFace(f)
	}
	r := &m.faces[f]
	return m.isInfinite(r.v[ccw(i)]) || m.isInfinite(r.v[cw(i)])
}

// mirrorIndex returns the index j such that faces[f].n[i].n[j] == f.
func (m *mesh) mirrorIndex(f int32, i int) int {
	switch m.dim {
	case 0:
		return 0
	case 1:
		return 1 - i
	}
	n := m.faces[f].n[i]
	j := m.vertexIndex(n, m.faces[f].v[ccw(i)])
	if j < 0 {
		fatalf("face %d is not adjacent to its neighbor %d across edge %d", f, n, i)
	}
	return ccw(j)
}

func (m *mesh) link(f int32, i int, g int32, j int) {
	m.faces[f].n[i] = g
	m.faces[g].n[j] = f
}

func (m *mesh) setConstrained(f int32, i int, c bool) {
	m.faces[f].constrained[i] = c
	if m.dim == 2 {
		n := m.faces[f].n[i]
		m.faces[n].constrained[m.mirrorIndex(f, i)] = c
	}
}

// facesAround lists the faces incident to v in counterclockwise order. Only
// meaningful in dimension 2.
func (m *mesh) facesAround(v int32) []int32 {
	start := m.vertices[v].face
	if start == noIndex {
		return nil
	}
	var out []int32
	f := start
	for {
		out = append(out, f)
		i := m.vertexIndex(f, v)
		if i < 0 {
			fatalf("vertex %d is not a vertex of face %d on its own fan", v, f)
		}
		f = m.faces[f].n[ccw(i)]
		if f == start {
			return out
		}
		if len(out) > len(m.faces) {
			fatalf("the fan of vertex %d does not close", v)
		}
	}
}

// neighborsAround lists the vertices adjacent to v.
func (m *mesh) neighborsAround(v int32) []int32 {
	switch m.dim {
	case 1:
		var out []int32
		for _, f := range m.chainFaces(v) {
			r := &m.faces[f]
			if r.v[0] == v {
				out = append(out, r.v[1])
			} else {
				out = append(out, r.v[0])
			}
		}
		return out
	case 2:
		faces := m.facesAround(v)
		out := make([]int32, len(faces))
		for k, f := range faces {
			out[k] = m.faces[f].v[ccw(m.vertexIndex(f, v))]
		}
		return out
	}
	return nil
}

func (m *mesh) degree(v int32) int {
	if m.vertices[v].hidden || m.vertices[v].face == noIndex {
		return 0
	}
	switch m.dim {
	case 1:
		return 2
	case 2:
		return len(m.facesAround(v))
	}
	return 0
}

// chainFaces returns the two faces of the dimension 1 chain incident to v, the
// one ending at v first.
func (m *mesh) chainFaces(v int32) []int32 {
	f := m.vertices[v].face
	if f == noIndex {
		return nil
	}
	if m.faces[f].v[1] == v {
		return []int32{f, m.faces[f].n[0]}
	}
	return []int32{m.faces[f].n[1], f}
}

// edgeBetween finds the edge joining a and b.
func (m *mesh) edgeBetween(a, b int32) (int32, int, bool) {
	switch m.dim {
	case 1:
		for _, f := range m.chainFaces(a) {
			r := &m.faces[f]
			if r.v[0] == b || r.v[1] == b {
				return f, 2, true
			}
		}
	case 2:
		for _, f := range m.facesAround(a) {
			k := m.vertexIndex(f, a)
			if m.faces[f].v[ccw(k)] == b {
				return f, cw(k), true
			}
		}
	}
	return noIndex, 0, false
}

func (m *mesh) mustEdge(a, b int32) (int32, int) {
	f, i, ok := m.edgeBetween(a, b)
	if !ok {
		fatalf("no edge between vertices %d and %d", a, b)
	}
	return f, i
}

// insertFirst takes the mesh from dimension -1 to 0.
func (m *mesh) insertFirst(v int32) {
	f := m.newFace(v, noIndex, noIndex)
	g := m.newFace(m.infinite, noIndex, noIndex)
	m.link(f, 0, g, 0)
	m.vertices[v].face = f
	m.vertices[m.infinite].face = g
	m.dim = 0
}

// insertSecond takes the mesh from dimension 0 to 1. u is the existing finite
// vertex.
func (m *mesh) insertSecond(u, v int32) {
	m.resetFaces()
	chain := [3]int32{
		m.newFace(m.infinite, u, noIndex),
		m.newFace(u, v, noIndex),
		m.newFace(v, m.infinite, noIndex),
	}
	for k, f := range chain {
		m.faces[f].n[0] = chain[(k+1)%3]
		m.faces[f].n[1] = chain[(k+2)%3]
	}
	m.vertices[m.infinite].face = chain[0]
	m.vertices[u].face = chain[1]
	m.vertices[v].face = chain[2]
	m.dim = 1
}

// splitChain inserts v inside the segment face f of a dimension 1 mesh.
func (m *mesh) splitChain(f, v int32) {
	b := m.faces[f].v[1]
	next := m.faces[f].n[0]
	g := m.newFace(v, b, noIndex)
	m.faces[g].constrained[2] = m.faces[f].constrained[2]
	m.faces[g].n[0] = next
	m.faces[g].n[1] = f
	m.faces[next].n[1] = g
	m.faces[f].n[0] = g
	m.faces[f].v[1] = v
	if m.vertices[b].face == f {
		m.vertices[b].face = g
	}
	m.vertices[v].face = f
}

// unsplitChain removes the finite vertex x from a dimension 1 chain, merging
// its two segments.
func (m *mesh) unsplitChain(x int32) {
	fs := m.chainFaces(x)
	left, right := fs[0], fs[1]
	y := m.faces[right].v[1]
	next := m.faces[right].n[0]
	m.faces[left].v[1] = y
	m.faces[left].n[0] = next
	m.faces[left].constrained[2] = false
	m.faces[next].n[1] = left
	if m.vertices[y].face == right {
		m.vertices[y].face = left
	}
	m.deleteFace(right)
	m.vertices[x].face = noIndex
	if m.vertices[m.infinite].face == right {
		m.vertices[m.infinite].face = left
	}
}

// chain returns the finite vertices of a dimension 1 mesh in chain order,
// together with the constrained flag of each segment between them.
func (m *mesh) chain() ([]int32, []bool) {
	var start int32 = noIndex
	for f := range m.faces {
		if !m.faces[f].dead && m.faces[f].v[0] == m.infinite {
			start = int32(f)
			break
		}
	}
	if start == noIndex {
		fatalf("dimension 1 mesh without a chain start")
	}
	var verts []int32
	var flags []bool
	f := m.faces[start].n[0]
	for m.faces[f].v[1] != m.infinite {
		if len(verts) == 0 {
			verts = append(verts, m.faces[f].v[0])
		}
		verts = append(verts, m.faces[f].v[1])
		flags = append(flags, m.faces[f].constrained[2])
		f = m.faces[f].n[0]
		if len(verts) > len(m.vertices) {
			fatalf("dimension 1 chain does not close")
		}
	}
	if len(verts) == 0 {
		verts = append(verts, m.faces[f].v[0])
	}
	return verts, flags
}

// raiseToPlane takes a dimension 1 mesh to dimension 2 by coning the chain to
// v, which must not be collinear with it.
func (m *mesh) raiseToPlane(v int32) {
	verts, flags := m.chain()
	k := len(verts)
	if kernel.Orient(m.point(verts[0]), m.point(verts[k-1]), m.point(v)) == kernel.Clockwise {
		for i, j := 0, k-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
		for i, j := 0, len(flags)-1; i < j; i, j = i+1, j-1 {
			flags[i], flags[j] = flags[j], flags[i]
		}
	}

	m.resetFaces()
	inf := m.infinite
	var created []int32
	for i := 0; i+1 < k; i++ {
		t := m.newFace(verts[i], verts[i+1], v)
		u := m.newFace(verts[i+1], verts[i], inf)
		m.faces[t].constrained[2] = flags[i]
		m.faces[u].constrained[2] = flags[i]
		created = append(created, t, u)
	}
	created = append(created,
		m.newFace(v, verts[k-1], inf),
		m.newFace(verts[0], v, inf))
	m.dim = 2
	m.stitch(created)
}

// stitch sets the neighbor relation of freshly built faces by matching their
// directed edges, and points every vertex at one of them.
func (m *mesh) stitch(faces []int32) {
	type slot struct {
		f int32
		i int
	}
	edges := make(map[[2]int32]slot, 3*len(faces))
	for _, f := range faces {
		r := &m.faces[f]
		for i := 0; i < 3; i++ {
			edges[[2]int32{r.v[ccw(i)], r.v[cw(i)]}] = slot{f, i}
		}
	}
	for _, f := range faces {
		r := &m.faces[f]
		for i := 0; i < 3; i++ {
			s, ok := edges[[2]int32{r.v[cw(i)], r.v[ccw(i)]}]
			if !ok {
				fatalf("edge %d-%d has no opposite face", r.v[cw(i)], r.v[ccw(i)])
			}
			r.n[i] = s.f
			m.vertices[r.v[i]].face = f
		}
	}
}

// insertInFace splits face f into three faces around v (dimension 2).
func (m *mesh) insertInFace(f, v int32) {
	r := m.faces[f]
	v0, v1, v2 := r.v[0], r.v[1], r.v[2]
	n1, n2 := r.n[1], r.n[2]
	i1, i2 := m.mirrorIndex(f, 1), m.mirrorIndex(f, 2)

	f1 := m.newFace(v0, v, v2)
	f2 := m.newFace(v0, v1, v)
	m.link(f1, 0, f, 1)
	m.link(f1, 1, n1, i1)
	m.link(f1, 2, f2, 1)
	m.link(f2, 0, f, 2)
	m.link(f2, 2, n2, i2)
	m.faces[f1].constrained[1] = r.constrained[1]
	m.faces[f2].constrained[2] = r.constrained[2]

	m.faces[f].v[0] = v
	m.faces[f].constrained[1] = false
	m.faces[f].constrained[2] = false

	if m.vertices[v0].face == f {
		m.vertices[v0].face = f2
	}
	m.vertices[v].face = f
}

// insertInEdge splits the edge i of f and both faces sharing it (dimension 2).
// A constrained edge stays constrained on both halves.
func (m *mesh) insertInEdge(f int32, i int, v int32) {
	a, b := m.faces[f].v[ccw(i)], m.faces[f].v[cw(i)]
	constrained := m.faces[f].constrained[i]
	n := m.faces[f].n[i]
	ni := m.mirrorIndex(f, i)
	m.insertInFace(f, v)
	m.flip(n, ni)
	if constrained {
		g, j := m.mustEdge(a, v)
		m.setConstrained(g, j, true)
		g, j = m.mustEdge(v, b)
		m.setConstrained(g, j, true)
	}
}

// flip replaces the edge i of f, shared with its neighbor, by the other
// diagonal of their union. f keeps its vertex i and the vertex ccw of it.
func (m *mesh) flip(f int32, i int) {
	n := m.faces[f].n[i]
	ni := m.mirrorIndex(f, i)
	vcw := m.faces[f].v[cw(i)]
	vccw := m.faces[f].v[ccw(i)]

	tr := m.faces[f].n[ccw(i)]
	tri := m.mirrorIndex(f, ccw(i))
	trc := m.faces[f].constrained[ccw(i)]
	bl := m.faces[n].n[ccw(ni)]
	bli := m.mirrorIndex(n, ccw(ni))
	blc := m.faces[n].constrained[ccw(ni)]

	m.faces[f].v[cw(i)] = m.faces[n].v[ni]
	m.faces[n].v[cw(ni)] = m.faces[f].v[i]

	m.link(f, i, bl, bli)
	m.link(f, ccw(i), n, ccw(ni))
	m.link(n, ni, tr, tri)
	m.faces[f].constrained[i] = blc
	m.faces[f].constrained[ccw(i)] = false
	m.faces[n].constrained[ni] = trc
	m.faces[n].constrained[ccw(ni)] = false

	if m.vertices[vcw].face == f {
		m.vertices[vcw].face = n
	}
	if m.vertices[vccw].face == n {
		m.vertices[vccw].face = f
	}
}

// removeLowDegree detaches a vertex of degree 3 or 4 and retriangulates its
// link. With degree 4 the new diagonal starts at link vertex from. It returns
// the faces covering the link.
func (m *mesh) removeLowDegree(x, from int32) []int32 {
	faces := m.facesAround(x)
	k := len(faces)
	if k != 3 && k != 4 {
		fatalf("cannot detach vertex %d of degree %d", x, k)
	}
	type outer struct {
		f int32
		i int
	}
	link := make([]int32, k)
	out := make([]outer, k)
	for j, f := range faces {
		i := m.vertexIndex(f, x)
		link[j] = m.faces[f].v[ccw(i)]
		out[j] = outer{m.faces[f].n[i], m.mirrorIndex(f, i)}
	}

	attach := func(f int32, slot int, o outer) {
		m.faces[f].constrained[slot] = false
		m.link(f, slot, o.f, o.i)
	}
	reset := func(f int32, a, b, c int32) {
		m.faces[f].v = [3]int32{a, b, c}
		m.faces[f].constrained = [3]bool{}
		for _, v := range m.faces[f].v {
			m.vertices[v].face = f
		}
	}

	var result []int32
	if k == 3 {
		f := faces[0]
		reset(f, link[0], link[1], link[2])
		attach(f, 2, out[0])
		attach(f, 0, out[1])
		attach(f, 1, out[2])
		m.deleteFace(faces[1])
		m.deleteFace(faces[2])
		result = []int32{f}
	} else {
		d := 0
		for j, l := range link {
			if l == from {
				d = j
			}
		}
		at := func(j int) int { return (d + j) % 4 }
		f1, f2 := faces[0], faces[1]
		reset(f1, link[at(0)], link[at(1)], link[at(2)])
		reset(f2, link[at(2)], link[at(3)], link[at(0)])
		attach(f1, 0, out[at(1)])
		attach(f1, 2, out[at(0)])
		attach(f2, 0, out[at(3)])
		attach(f2, 2, out[at(2)])
		m.link(f1, 1, f2, 1)
		m.deleteFace(faces[2])
		m.deleteFace(faces[3])
		result = []int32{f1, f2}
	}
	m.vertices[x].face = noIndex
	return result
}
