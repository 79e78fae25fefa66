package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/triangulation/advanced"
	"github.com/osuushi/triangulation/kernel"
)

const squareInput = `0 0
1 0
1 1
0 1

0.5 0.5 2
`

func TestReadPolylines(t *testing.T) {
	polylines, err := readPolylines(strings.NewReader(squareInput))
	require.NoError(t, err)
	require.Len(t, polylines, 2)
	assert.Len(t, polylines[0], 4)
	assert.Equal(t, kernel.Weighted(0.5, 0.5, 2), polylines[1][0])
}

func TestReadPolylines_BadLine(t *testing.T) {
	_, err := readPolylines(strings.NewReader("1 2 3 4\n"))
	assert.Error(t, err)
	_, err = readPolylines(strings.NewReader("1 x\n"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	polylines, err := readPolylines(strings.NewReader(squareInput))
	require.NoError(t, err)

	t.Run("delaunay", func(t *testing.T) {
		e, err := build("delaunay", polylines, false)
		require.NoError(t, err)
		assert.Equal(t, 5, e.NumberOfVertices())
		assert.Equal(t, 4, e.NumberOfFaces())
		assert.NotNil(t, e.dualOf)
	})

	t.Run("closed cdt", func(t *testing.T) {
		e, err := build("cdt", polylines, true)
		require.NoError(t, err)
		assert.Equal(t, 4, e.NumberOfConstrainedEdges())
		assert.True(t, e.IsValid())
	})

	t.Run("regular hides the center", func(t *testing.T) {
		heavy := [][]kernel.WeightedPoint{polylines[0], {kernel.Weighted(0.5, 0.5, -1)}}
		e, err := build("regular", heavy, false)
		require.NoError(t, err)
		assert.Equal(t, 4, e.NumberOfVertices())
		assert.Equal(t, 1, e.regular.NumberOfHiddenVertices())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := build("voronoi", polylines, false)
		assert.Error(t, err)
	})
}

func TestReport(t *testing.T) {
	polylines, err := readPolylines(strings.NewReader(squareInput))
	require.NoError(t, err)
	e, err := build("constrained", polylines, false)
	require.NoError(t, err)

	var out bytes.Buffer
	report(&out, e, aurora.NewAurora(false))
	assert.Contains(t, out.String(), "5 vertices")
	assert.Contains(t, out.String(), "4 faces")
	assert.Contains(t, out.String(), "3 constrained edges")
}

func TestNewLogger(t *testing.T) {
	polylines, err := readPolylines(strings.NewReader(squareInput))
	require.NoError(t, err)

	var plain bytes.Buffer
	_, err = build("delaunay", polylines, false, advanced.WithLogger(newLogger(&plain, true, false)))
	require.NoError(t, err)
	assert.Contains(t, plain.String(), "DEBUG\tinserted vertex")
	assert.NotContains(t, plain.String(), "\033[")

	var colored bytes.Buffer
	_, err = build("delaunay", polylines, false, advanced.WithLogger(newLogger(&colored, true, true)))
	require.NoError(t, err)
	assert.Contains(t, colored.String(), "\033[36mdebug\033[0m")

	var quiet bytes.Buffer
	_, err = build("delaunay", polylines, false, advanced.WithLogger(newLogger(&quiet, false, false)))
	require.NoError(t, err)
	assert.Empty(t, quiet.String())
}
