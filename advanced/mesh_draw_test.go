package advanced

import (
	"bytes"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuushi/triangulation/kernel"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestDraw(t *testing.T) {
	rng := rand.New(rand.NewSource(51))
	d := NewDelaunay()
	d.Insert(randomPoints(rng, 30, 5)...)

	var buf bytes.Buffer
	require.NoError(t, d.Draw(&buf, DrawOptions{Scale: 20, Labels: true, Dual: true}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	// Set TRIANGULATION_DRAW to see the drawing in an iTerm session.
	if os.Getenv("TRIANGULATION_DRAW") != "" {
		d.dbgDraw(20)
	}
}

func TestDrawDegenerate(t *testing.T) {
	for _, tri := range []*Triangulation{NewTriangulation(), NewRegular().Triangulation} {
		var buf bytes.Buffer
		require.NoError(t, tri.Draw(&buf, DrawOptions{}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

		tri.Insert(kernel.Point{X: 1, Y: 1}, kernel.Point{X: 3, Y: 1})
		buf.Reset()
		require.NoError(t, tri.Draw(&buf, DrawOptions{Dual: true}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	}
}
