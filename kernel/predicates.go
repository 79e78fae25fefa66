package kernel

// The predicates in this file follow the usual two stage scheme: evaluate the
// determinant in float64 together with a conservative bound on its rounding
// error, and only when the sign cannot be certified recompute it exactly with
// math/big. The error bounds for orientation and in-circle are Shewchuk's
// "A" bounds.

import (
	"math"
	"math/big"
)

// Orientation of an ordered triple of points.
type Orientation int

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

const (
	RightTurn = Clockwise
	LeftTurn  = CounterClockwise
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	}
	return "Collinear"
}

// Side is the answer of the circle and power tests. Inside means the query
// conflicts with the circle (it lies strictly inside the circumcircle, or its
// lifted point lies strictly below the lifted plane).
type Side int

const (
	Outside    Side = -1
	OnBoundary Side = 0
	Inside     Side = 1
)

func (s Side) String() string {
	switch s {
	case Outside:
		return "Outside"
	case Inside:
		return "Inside"
	}
	return "OnBoundary"
}

const (
	// epsilon is half an ulp of 1, the unit roundoff of float64.
	epsilon = 1.1102230246251565e-16

	ccwErrBoundA = (3 + 16*epsilon) * epsilon
	iccErrBoundA = (10 + 96*epsilon) * epsilon
	// The power test has one extra subtraction per lifted coordinate.
	powerErrBoundA = (16 + 128*epsilon) * epsilon
	distErrBound   = (8 + 64*epsilon) * epsilon
)

// newBigFloat constructs a new big.Float with maximum precision, which makes
// addition, subtraction and multiplication exact.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func bf(x float64) *big.Float { return newBigFloat().SetFloat64(x) }

func bsub(a, b *big.Float) *big.Float { return newBigFloat().Sub(a, b) }
func badd(a, b *big.Float) *big.Float { return newBigFloat().Add(a, b) }
func bmul(a, b *big.Float) *big.Float { return newBigFloat().Mul(a, b) }

// Orient reports whether r lies to the left of (CounterClockwise), to the
// right of (Clockwise), or on the directed line pq.
func Orient(p, q, r Point) Orientation {
	detLeft := (p.X - r.X) * (q.Y - r.Y)
	detRight := (p.Y - r.Y) * (q.X - r.X)
	det := detLeft - detRight
	errBound := ccwErrBoundA * (math.Abs(detLeft) + math.Abs(detRight))
	if det > errBound {
		return CounterClockwise
	}
	if -det > errBound {
		return Clockwise
	}
	return exactOrient(p, q, r)
}

// InexactOrient is Orient without the exact fallback. Near degeneracies it may
// misclassify, and it is not guaranteed to be consistent under permutation.
func InexactOrient(p, q, r Point) Orientation {
	det := (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	switch {
	case det > 0:
		return CounterClockwise
	case det < 0:
		return Clockwise
	}
	return Collinear
}

func exactOrient(p, q, r Point) Orientation {
	px, py := bf(p.X), bf(p.Y)
	left := bmul(bsub(bf(q.X), px), bsub(bf(r.Y), py))
	right := bmul(bsub(bf(q.Y), py), bsub(bf(r.X), px))
	return Orientation(left.Cmp(right))
}

// InCircle tests s against the circumcircle of p, q, r, which must be in
// counterclockwise order.
func InCircle(p, q, r, s Point) Side {
	adx, ady := p.X-s.X, p.Y-s.Y
	bdx, bdy := q.X-s.X, q.Y-s.Y
	cdx, cdy := r.X-s.X, r.Y-s.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	alift := adx*adx + ady*ady
	cdxady, adxcdy := cdx*ady, adx*cdy
	blift := bdx*bdx + bdy*bdy
	adxbdy, bdxady := adx*bdy, bdx*ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := iccErrBoundA * permanent
	if det > errBound {
		return Inside
	}
	if -det > errBound {
		return Outside
	}
	return exactLifted(
		WeightedPoint{Point: p}, WeightedPoint{Point: q},
		WeightedPoint{Point: r}, WeightedPoint{Point: s})
}

// PowerTest generalizes InCircle to weighted points: s is Inside when its
// lifted point (x, y, x²+y²-w) lies strictly below the plane through the
// lifted p, q, r. p, q, r must be in counterclockwise order. With all weights
// equal it agrees with InCircle.
func PowerTest(p, q, r, s WeightedPoint) Side {
	adx, ady := p.X-s.X, p.Y-s.Y
	bdx, bdy := q.X-s.X, q.Y-s.Y
	cdx, cdy := r.X-s.X, r.Y-s.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	alift := adx*adx + ady*ady - (p.Weight - s.Weight)
	cdxady, adxcdy := cdx*ady, adx*cdy
	blift := bdx*bdx + bdy*bdy - (q.Weight - s.Weight)
	adxbdy, bdxady := adx*bdy, bdx*ady
	clift := cdx*cdx + cdy*cdy - (r.Weight - s.Weight)

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)
	amag := adx*adx + ady*ady + math.Abs(p.Weight) + math.Abs(s.Weight)
	bmag := bdx*bdx + bdy*bdy + math.Abs(q.Weight) + math.Abs(s.Weight)
	cmag := cdx*cdx + cdy*cdy + math.Abs(r.Weight) + math.Abs(s.Weight)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*amag +
		(math.Abs(cdxady)+math.Abs(adxcdy))*bmag +
		(math.Abs(adxbdy)+math.Abs(bdxady))*cmag
	errBound := powerErrBoundA * permanent
	if det > errBound {
		return Inside
	}
	if -det > errBound {
		return Outside
	}
	return exactLifted(p, q, r, s)
}

// exactLifted evaluates the sign of the lifted 3x3 determinant exactly.
func exactLifted(p, q, r, s WeightedPoint) Side {
	sx, sy, sw := bf(s.X), bf(s.Y), bf(s.Weight)
	row := func(a WeightedPoint) (dx, dy, lift *big.Float) {
		dx = bsub(bf(a.X), sx)
		dy = bsub(bf(a.Y), sy)
		lift = badd(bmul(dx, dx), bmul(dy, dy))
		lift = bsub(lift, bsub(bf(a.Weight), sw))
		return
	}
	adx, ady, alift := row(p)
	bdx, bdy, blift := row(q)
	cdx, cdy, clift := row(r)

	det := bmul(alift, bsub(bmul(bdx, cdy), bmul(cdx, bdy)))
	det = badd(det, bmul(blift, bsub(bmul(cdx, ady), bmul(adx, cdy))))
	det = badd(det, bmul(clift, bsub(bmul(adx, bdy), bmul(bdx, ady))))
	return Side(det.Sign())
}

// CollinearPowerTest is the power test for three collinear weighted points:
// t is Inside when its lifted point lies strictly below the lifted line
// through p and q. p and q must be distinct.
func CollinearPowerTest(p, q, t WeightedPoint) Side {
	// Parametrize along the dominant axis of pq; lifted heights use the full
	// squared norm so distances along the line are measured correctly.
	param := func(a WeightedPoint) *big.Float { return bf(a.X) }
	if math.Abs(q.X-p.X) < math.Abs(q.Y-p.Y) {
		param = func(a WeightedPoint) *big.Float { return bf(a.Y) }
	}
	lift := func(a WeightedPoint) *big.Float {
		x, y := bf(a.X), bf(a.Y)
		return bsub(badd(bmul(x, x), bmul(y, y)), bf(a.Weight))
	}
	sp, sq, st := param(p), param(q), param(t)
	zp, zq, zt := lift(p), lift(q), lift(t)

	d := bmul(zp, bsub(sq, st))
	d = badd(d, bmul(zq, bsub(st, sp)))
	d = badd(d, bmul(zt, bsub(sp, sq)))
	return Side(d.Sign() * bsub(sq, sp).Sign())
}

// PowerCompare is the power test for two weighted points at the same
// location: q is Inside (it dominates p) when it is strictly heavier.
func PowerCompare(p, q WeightedPoint) Side {
	switch {
	case q.Weight > p.Weight:
		return Inside
	case q.Weight < p.Weight:
		return Outside
	}
	return OnBoundary
}

// CompareXY orders points lexicographically, x first.
func CompareXY(p, q Point) int {
	switch {
	case p.X < q.X:
		return -1
	case p.X > q.X:
		return 1
	case p.Y < q.Y:
		return -1
	case p.Y > q.Y:
		return 1
	}
	return 0
}

// CollinearBetween reports whether q lies strictly between p and r, assuming
// the three points are collinear.
func CollinearBetween(p, q, r Point) bool {
	a := CompareXY(p, q)
	return a != 0 && a == CompareXY(q, r)
}

// CompareDistance returns -1, 0 or 1 as q is closer to, as close to, or
// farther from p than r.
func CompareDistance(p, q, r Point) int {
	return ComparePowerDistance(p, WeightedPoint{Point: q}, WeightedPoint{Point: r})
}

// ComparePowerDistance compares the power distances of p to q and to r.
func ComparePowerDistance(p Point, q, r WeightedPoint) int {
	qx, qy := q.X-p.X, q.Y-p.Y
	rx, ry := r.X-p.X, r.Y-p.Y
	dq := qx*qx + qy*qy - q.Weight
	dr := rx*rx + ry*ry - r.Weight
	diff := dq - dr
	errBound := distErrBound * (qx*qx + qy*qy + math.Abs(q.Weight) + rx*rx + ry*ry + math.Abs(r.Weight))
	if diff > errBound {
		return 1
	}
	if -diff > errBound {
		return -1
	}
	px, py := bf(p.X), bf(p.Y)
	power := func(a WeightedPoint) *big.Float {
		dx, dy := bsub(bf(a.X), px), bsub(bf(a.Y), py)
		return bsub(badd(bmul(dx, dx), bmul(dy, dy)), bf(a.Weight))
	}
	return power(q).Cmp(power(r))
}
