// Package kernel holds the geometric primitives and predicates the
// triangulation engine is built on. Predicates are robust: they evaluate a
// floating-point filter first and fall back to exact arithmetic when the
// filter cannot certify the sign. Constructions (circumcenters, bisectors,
// intersections) are plain float64 and are never used to make combinatorial
// decisions.
package kernel

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

type Point = r2.Point

// A WeightedPoint is a point with an associated weight, the squared radius of
// its power circle.
type WeightedPoint struct {
	Point
	Weight float64
}

func Weighted(x, y, w float64) WeightedPoint {
	return WeightedPoint{Point: Point{X: x, Y: y}, Weight: w}
}

func (wp WeightedPoint) String() string {
	return fmt.Sprintf("(%.12v, %.12v; %.12v)", wp.X, wp.Y, wp.Weight)
}

type Segment struct {
	Source, Target Point
}

func (s Segment) Vector() Point {
	return s.Target.Sub(s.Source)
}

func (s Segment) SquaredLength() float64 {
	d := s.Vector()
	return d.Dot(d)
}

func (s Segment) Midpoint() Point {
	return s.Source.Add(s.Target).Mul(0.5)
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment(%v -> %v)", s.Source, s.Target)
}

// A Ray starts at Source and extends forever along Direction.
type Ray struct {
	Source    Point
	Direction Point
}

// PointAt returns Source + t*Direction.
func (r Ray) PointAt(t float64) Point {
	return r.Source.Add(r.Direction.Mul(t))
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(%v, dir %v)", r.Source, r.Direction)
}

// A Line is the set of points (x, y) with A*x + B*y + C == 0. Its direction
// is (B, -A), so the positive side (A*x + B*y + C > 0) is on the left.
type Line struct {
	A, B, C float64
}

// LineThrough returns the line through p oriented along dir.
func LineThrough(p, dir Point) Line {
	a := -dir.Y
	b := dir.X
	return Line{A: a, B: b, C: -a*p.X - b*p.Y}
}

func (l Line) Direction() Point {
	return Point{X: l.B, Y: -l.A}
}

// Point returns an arbitrary point of the line, the one closest to the origin.
func (l Line) Point() Point {
	n2 := l.A*l.A + l.B*l.B
	return Point{X: -l.A * l.C / n2, Y: -l.B * l.C / n2}
}

// Value evaluates A*x + B*y + C. Its sign tells the side of p.
func (l Line) Value(p Point) float64 {
	return l.A*p.X + l.B*p.Y + l.C
}

func (l Line) IsDegenerate() bool {
	return l.A == 0 && l.B == 0
}

func (l Line) String() string {
	return fmt.Sprintf("Line(%.12vx + %.12vy + %.12v = 0)", l.A, l.B, l.C)
}

func SquaredDistance(p, q Point) float64 {
	d := p.Sub(q)
	return d.Dot(d)
}

// PowerDistance is the power of the bare point p with respect to the power
// circle of wq.
func PowerDistance(p Point, wq WeightedPoint) float64 {
	return SquaredDistance(p, wq.Point) - wq.Weight
}

// Circumcenter of the triangle pqr. Collinear input yields non-finite
// coordinates.
func Circumcenter(p, q, r Point) Point {
	return PowerCenter(WeightedPoint{Point: p}, WeightedPoint{Point: q}, WeightedPoint{Point: r})
}

// PowerCenter is the point with equal power distance to the three weighted
// points (the weighted circumcenter, a vertex of the power diagram).
func PowerCenter(p, q, r WeightedPoint) Point {
	// Translate to p to keep the magnitudes small.
	qx, qy := q.X-p.X, q.Y-p.Y
	rx, ry := r.X-p.X, r.Y-p.Y
	qn := qx*qx + qy*qy - q.Weight + p.Weight
	rn := rx*rx + ry*ry - r.Weight + p.Weight
	den := 2 * (qx*ry - qy*rx)
	x := (qn*ry - rn*qy) / den
	y := (qx*rn - rx*qn) / den
	return Point{X: p.X + x, Y: p.Y + y}
}

// Bisector returns the perpendicular bisector of pq, oriented so that p lies
// on its positive (left) side.
func Bisector(p, q Point) Line {
	return RadicalAxis(WeightedPoint{Point: p}, WeightedPoint{Point: q})
}

// RadicalAxis returns the locus of equal power distance to p and q, oriented
// so that p lies on its positive (left) side.
func RadicalAxis(p, q WeightedPoint) Line {
	d := q.Sub(p.Point)
	n2 := d.Dot(d)
	t := (n2 + p.Weight - q.Weight) / (2 * n2)
	foot := p.Add(d.Mul(t))
	// Direction is d rotated counterclockwise, which puts p on the left.
	return LineThrough(foot, d.Ortho())
}

// SegmentIntersection returns the intersection point of the supporting lines
// of ab and cd. ok is false when they are parallel.
func SegmentIntersection(a, b, c, d Point) (p Point, ok bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	den := r.Cross(s)
	if den == 0 || math.IsNaN(den) {
		return Point{}, false
	}
	t := c.Sub(a).Cross(s) / den
	return a.Add(r.Mul(t)), true
}
