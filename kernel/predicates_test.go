package kernel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrient(t *testing.T) {
	p, q := Point{X: 0, Y: 0}, Point{X: 1, Y: 0}
	assert.Equal(t, CounterClockwise, Orient(p, q, Point{X: 0.5, Y: 1}))
	assert.Equal(t, Clockwise, Orient(p, q, Point{X: 0.5, Y: -1}))
	assert.Equal(t, Collinear, Orient(p, q, Point{X: 7, Y: 0}))
	assert.Equal(t, LeftTurn, CounterClockwise)
}

func TestOrientNearDegenerate(t *testing.T) {
	p := Point{X: 0.5, Y: 0.5}
	q := Point{X: 12, Y: 12}
	r := Point{X: 24, Y: 24}
	require.Equal(t, Collinear, Orient(p, q, r))

	above := Point{X: 24, Y: math.Nextafter(24, 25)}
	below := Point{X: 24, Y: math.Nextafter(24, 23)}
	assert.Equal(t, CounterClockwise, Orient(p, q, above))
	assert.Equal(t, Clockwise, Orient(p, q, below))
}

// Points a few ulps off a line must be classified consistently under every
// permutation.
func TestOrientPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		base := rng.Float64()
		p := Point{X: base, Y: base}
		q := Point{X: base + 1, Y: base + 1}
		x := base + rng.Float64()*2
		r := Point{X: x, Y: x}
		for j := rng.Intn(3); j > 0; j-- {
			r.Y = math.Nextafter(r.Y, 10)
		}

		o := Orient(p, q, r)
		require.Equal(t, o, Orient(q, r, p))
		require.Equal(t, o, Orient(r, p, q))
		require.Equal(t, -o, Orient(q, p, r))
		require.Equal(t, -o, Orient(p, r, q))
	}
}

func TestInexactOrient(t *testing.T) {
	p, q := Point{X: 0, Y: 0}, Point{X: 1, Y: 1}
	assert.Equal(t, CounterClockwise, InexactOrient(p, q, Point{X: 0, Y: 1}))
	assert.Equal(t, Clockwise, InexactOrient(p, q, Point{X: 1, Y: 0}))
	assert.Equal(t, Collinear, InexactOrient(p, q, Point{X: 2, Y: 2}))
}

func TestInCircle(t *testing.T) {
	p, q, r := Point{X: 1, Y: 0}, Point{X: 0, Y: 1}, Point{X: -1, Y: 0}
	assert.Equal(t, Inside, InCircle(p, q, r, Point{X: 0, Y: 0}))
	assert.Equal(t, Outside, InCircle(p, q, r, Point{X: 2, Y: 0}))
	assert.Equal(t, OnBoundary, InCircle(p, q, r, Point{X: 0, Y: -1}))

	// Cocircular within float64 rounding is decided exactly.
	s := Point{X: 0.6, Y: -0.8}
	assert.Equal(t, InCircle(p, q, r, s), exactLifted(
		WeightedPoint{Point: p}, WeightedPoint{Point: q}, WeightedPoint{Point: r}, WeightedPoint{Point: s}))
}

func TestPowerTest(t *testing.T) {
	p, q, r := Weighted(1, 0, 0), Weighted(0, 1, 0), Weighted(-1, 0, 0)

	t.Run("unweighted agrees with InCircle", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			s := Point{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2}
			require.Equal(t, InCircle(p.Point, q.Point, r.Point, s), PowerTest(p, q, r, WeightedPoint{Point: s}))
		}
	})

	t.Run("weight moves the query", func(t *testing.T) {
		assert.Equal(t, Inside, PowerTest(p, q, r, Weighted(0, 0, 5)))
		assert.Equal(t, Outside, PowerTest(p, q, r, Weighted(0, 0, -5)))
		assert.Equal(t, OnBoundary, PowerTest(p, q, r, Weighted(0, 0, -1)))
		// Far away but heavy enough to conflict.
		assert.Equal(t, Outside, PowerTest(p, q, r, Weighted(3, 0, 0)))
		assert.Equal(t, Inside, PowerTest(p, q, r, Weighted(3, 0, 9)))
	})
}

func TestCollinearPowerTest(t *testing.T) {
	p, q := Weighted(0, 0, 0), Weighted(2, 0, 0)
	assert.Equal(t, Inside, CollinearPowerTest(p, q, Weighted(1, 0, 0)))
	assert.Equal(t, OnBoundary, CollinearPowerTest(p, q, Weighted(1, 0, -1)))
	assert.Equal(t, Outside, CollinearPowerTest(p, q, Weighted(1, 0, -2)))
	assert.Equal(t, Outside, CollinearPowerTest(p, q, Weighted(3, 0, 0)))
	assert.Equal(t, Inside, CollinearPowerTest(p, q, Weighted(3, 0, 4)))

	// Independent of the order of p and q, and of the axis.
	assert.Equal(t, Inside, CollinearPowerTest(q, p, Weighted(1, 0, 0)))
	assert.Equal(t, Inside, CollinearPowerTest(Weighted(0, 0, 0), Weighted(0, 2, 0), Weighted(0, 1, 0)))
	assert.Equal(t, Outside, CollinearPowerTest(Weighted(0, 0, 0), Weighted(1, 1, 0), Weighted(2, 2, 0)))
}

func TestPowerCompare(t *testing.T) {
	assert.Equal(t, Inside, PowerCompare(Weighted(1, 1, 0), Weighted(1, 1, 2)))
	assert.Equal(t, Outside, PowerCompare(Weighted(1, 1, 2), Weighted(1, 1, 0)))
	assert.Equal(t, OnBoundary, PowerCompare(Weighted(1, 1, 2), Weighted(1, 1, 2)))
}

func TestCompareXY(t *testing.T) {
	assert.Equal(t, -1, CompareXY(Point{X: 0, Y: 5}, Point{X: 1, Y: 0}))
	assert.Equal(t, 1, CompareXY(Point{X: 1, Y: 1}, Point{X: 1, Y: 0}))
	assert.Equal(t, 0, CompareXY(Point{X: 1, Y: 1}, Point{X: 1, Y: 1}))
}

func TestCollinearBetween(t *testing.T) {
	a, b, c := Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 2, Y: 2}
	assert.True(t, CollinearBetween(a, b, c))
	assert.True(t, CollinearBetween(c, b, a))
	assert.False(t, CollinearBetween(a, c, b))
	assert.False(t, CollinearBetween(a, a, c))
}

func TestCompareDistance(t *testing.T) {
	p := Point{X: 0, Y: 0}
	assert.Equal(t, -1, CompareDistance(p, Point{X: 1, Y: 0}, Point{X: 0, Y: 2}))
	assert.Equal(t, 1, CompareDistance(p, Point{X: 3, Y: 0}, Point{X: 0, Y: 2}))
	assert.Equal(t, 0, CompareDistance(p, Point{X: 0.1, Y: 0.2}, Point{X: 0.2, Y: 0.1}))

	// Weight pulls a farther point closer in power distance.
	assert.Equal(t, -1, ComparePowerDistance(p, Weighted(3, 0, 9), Weighted(1, 0, 0)))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "CounterClockwise", CounterClockwise.String())
	assert.Equal(t, "Collinear", Collinear.String())
	assert.Equal(t, "Outside", Outside.String())
	assert.Equal(t, "OnBoundary", OnBoundary.String())
}
