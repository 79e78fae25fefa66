package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi/triangulation/advanced"
	"github.com/osuushi/triangulation/kernel"
	"github.com/osuushi/triangulation/logger"
)

// Demo of triangulation. Input on stdin should be newline separated points in
// the form "x y" or "x y w", with each polyline separated by an extra newline.
//
// For the constrained variants every polyline of two or more points becomes a
// chain of constraints (closed with --closed); single points are plain
// insertions. The weight column is only used by the regular variant.
var (
	variant = kingpin.Flag("variant", "Triangulation variant.").Short('t').Default("delaunay").
		Enum("plain", "delaunay", "constrained", "cdt", "regular")
	closed  = kingpin.Flag("closed", "Close every polyline into a polygon.").Bool()
	verbose = kingpin.Flag("verbose", "Log insertions and flips.").Short('v').Bool()
	faces   = kingpin.Flag("faces", "Print every finite face.").Bool()
	dual    = kingpin.Flag("dual", "Print the dual of every finite edge.").Bool()
	png     = kingpin.Flag("png", "Write a drawing of the result to this file.").String()
	noColor = kingpin.Flag("no-color", "Disable colored output.").Bool()
)

type engine struct {
	*advanced.Triangulation
	constrained *advanced.Constrained
	regular     *advanced.Regular
	dualOf      func(advanced.Edge) (advanced.VoronoiEdge, bool)
}

func main() {
	kingpin.Parse()

	log := newLogger(os.Stderr, *verbose, !*noColor)
	defer log.Sync()

	polylines, err := readPolylines(os.Stdin)
	if err != nil {
		log.Fatal("could not read input", zap.Error(err))
	}
	fmt.Printf("Read %d polylines\n", len(polylines))

	e, err := build(*variant, polylines, *closed, advanced.WithLogger(log))
	if err != nil {
		log.Fatal("triangulation failed", zap.Error(err))
	}
	report(os.Stdout, e, aurora.NewAurora(!*noColor))

	if *png != "" {
		out, err := os.Create(*png)
		if err != nil {
			log.Fatal("could not create drawing", zap.Error(err))
		}
		defer out.Close()
		if err := e.Draw(out, advanced.DrawOptions{Scale: 50, Dual: *dual && e.dualOf != nil}); err != nil {
			log.Error("could not draw", zap.Error(err))
		}
	}
}

// newLogger logs warnings, or everything when verbose. Without color the
// output carries no escape codes or timestamps.
func newLogger(w io.Writer, verbose, color bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if color {
		return logger.New(w, level)
	}
	return logger.Plain(w, level)
}

func build(name string, polylines [][]kernel.WeightedPoint, closed bool, opts ...advanced.Option) (e engine, err error) {
	defer func() {
		recoveredErr := advanced.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
		}
	}()

	switch name {
	case "plain":
		e.Triangulation = advanced.NewTriangulation(opts...)
	case "delaunay":
		d := advanced.NewDelaunay(opts...)
		e.Triangulation, e.dualOf = d.Triangulation, d.Dual
	case "constrained":
		e.constrained = advanced.NewConstrained(opts...)
		e.Triangulation = e.constrained.Triangulation
	case "cdt":
		e.constrained = &advanced.NewConstrainedDelaunay(opts...).Constrained
		e.Triangulation = e.constrained.Triangulation
	case "regular":
		e.regular = advanced.NewRegular(opts...)
		e.Triangulation, e.dualOf = e.regular.Triangulation, e.regular.Dual
	default:
		return e, fmt.Errorf("unknown variant %q", name)
	}

	for _, line := range polylines {
		switch {
		case e.regular != nil:
			e.regular.InsertWeighted(line...)
		case e.constrained != nil && len(line) > 1:
			points := bare(line)
			if closed {
				e.constrained.InsertPolygon(points...)
			} else {
				e.constrained.InsertConstraints(points...)
			}
		default:
			e.Insert(bare(line)...)
		}
	}
	return e, nil
}

func report(w io.Writer, e engine, au aurora.Aurora) {
	valid := au.Green("valid")
	if !e.IsValid() {
		valid = au.Red("INVALID")
	}
	fmt.Fprintf(w, "%s triangulation of dimension %d: %d vertices, %d faces, %s\n",
		au.Bold(*variant), e.Dimension(), e.NumberOfVertices(), e.NumberOfFaces(), valid)
	if e.constrained != nil {
		fmt.Fprintf(w, "%d constrained edges\n", au.Cyan(e.NumberOfConstrainedEdges()))
		interior := 0
		for range e.constrained.InteriorFaces() {
			interior++
		}
		fmt.Fprintf(w, "%d faces inside the constraints\n", au.Cyan(interior))
	}
	if e.regular != nil {
		fmt.Fprintf(w, "%d hidden vertices\n", au.Yellow(e.regular.NumberOfHiddenVertices()))
	}

	if *faces {
		for f := range e.FiniteFaces() {
			fmt.Fprintf(w, "  %v %v %v\n", f.Vertex(0).Point(), f.Vertex(1).Point(), f.Vertex(2).Point())
		}
	}
	if *dual && e.dualOf != nil {
		for edge := range e.FiniteEdges() {
			if d, ok := e.dualOf(edge); ok {
				fmt.Fprintf(w, "  %v -> %v %v\n", edge, au.Magenta(d.Kind), d)
			}
		}
	}
}

func bare(line []kernel.WeightedPoint) []kernel.Point {
	points := make([]kernel.Point, len(line))
	for i, p := range line {
		points[i] = p.Point
	}
	return points
}

func readPolylines(in io.Reader) ([][]kernel.WeightedPoint, error) {
	var polylines [][]kernel.WeightedPoint
	// Scan lines
	scanner := bufio.NewScanner(in)
	var points []kernel.WeightedPoint
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// If it's empty, and we collected any points, this is the end of the polyline
		if line == "" {
			if len(points) > 0 {
				polylines = append(polylines, points)
				points = nil
			}
			continue
		}

		point, err := parsePoint(line)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	// Handle trailing polyline if any
	if len(points) > 0 {
		polylines = append(polylines, points)
	}
	return polylines, scanner.Err()
}

func parsePoint(line string) (kernel.WeightedPoint, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 || len(parts) > 3 {
		return kernel.WeightedPoint{}, fmt.Errorf("expected \"x y [w]\", got %q", line)
	}
	var values [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return kernel.WeightedPoint{}, fmt.Errorf("bad coordinate %q: %w", part, err)
		}
		values[i] = v
	}
	return kernel.Weighted(values[0], values[1], values[2]), nil
}
