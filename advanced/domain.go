package advanced

import (
	"iter"

	"github.com/osuushi/triangulation/kernel"
)

// Domains of a constrained triangulation follow the even-odd rule: the
// outside of the convex hull has nesting level 0, and crossing a constrained
// edge moves one level deeper. Faces at odd levels are inside the polygons
// bounded by the constraints, so a polygon inserted inside another one is a
// hole, whatever its winding.

// nesting returns the nesting level of every face, indexed like the face
// arena. Dead faces get -1.
func (c *Constrained) nesting() []int {
	m := c.m
	levels := make([]int, len(m.faces))
	for f := range levels {
		levels[f] = -1
	}
	if m.dim < 2 {
		return levels
	}

	// Flood fill one level at a time. Constrained edges found on the way seed
	// the next level.
	var border []int32
	for f := range m.faces {
		if !m.faces[f].dead && m.isInfiniteFace(int32(f)) {
			border = append(border, int32(f))
		}
	}
	for level := 0; len(border) > 0; level++ {
		var next []int32
		stack := border
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if levels[f] != -1 {
				continue
			}
			levels[f] = level
			r := &m.faces[f]
			for i := 0; i < 3; i++ {
				n := r.n[i]
				if levels[n] != -1 {
					continue
				}
				if r.constrained[i] {
					next = append(next, n)
				} else {
					stack = append(stack, n)
				}
			}
		}
		border = next
	}
	return levels
}

// InteriorFaces yields the finite faces inside the domain bounded by the
// constraints, by the even-odd rule.
func (c *Constrained) InteriorFaces() iter.Seq[Face] {
	return func(yield func(Face) bool) {
		levels := c.nesting()
		for f := range c.FiniteFaces() {
			if levels[f.idx]%2 == 1 && !yield(f) {
				return
			}
		}
	}
}

// ContainsPoint reports whether p lies in the interior domain. Points on a
// constraint may be reported on either side.
func (c *Constrained) ContainsPoint(p kernel.Point) bool {
	if c.m.dim < 2 {
		return false
	}
	loc := c.locate(p, kernel.Orient)
	return c.nesting()[loc.face]%2 == 1
}
