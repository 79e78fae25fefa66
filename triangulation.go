// A robust incremental 2D triangulation package for Go.
//
// This package builds Delaunay, constrained Delaunay and regular (weighted)
// triangulations of points in the plane. The functions here are the short
// path: hand them points and get back a finished triangulation, or an error if
// the engine hit an internal inconsistency. The advanced package exposes the
// engine itself, with plain and constrained variants, incremental insertion,
// point location, walks and dual queries.
package triangulation

import (
	"github.com/osuushi/triangulation/advanced"
	"github.com/osuushi/triangulation/kernel"
)

type Point = kernel.Point
type WeightedPoint = kernel.WeightedPoint
type Delaunay = advanced.Delaunay
type ConstrainedDelaunay = advanced.ConstrainedDelaunay
type Regular = advanced.Regular
type Option = advanced.Option

var (
	WithLogger     = advanced.WithLogger
	WithWalkBudget = advanced.WithWalkBudget
)

// Triangulate builds the Delaunay triangulation of points, inserted in order.
func Triangulate(points []Point, opts ...Option) (result *Delaunay, err error) {
	defer func() {
		recoveredErr := advanced.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	result = advanced.NewDelaunay(opts...)
	result.Insert(points...)
	return result, nil
}

// TriangulatePolygons builds a constrained Delaunay triangulation in which the
// boundary of every polygon is a chain of constrained edges. Polygons are
// closed implicitly and may be given in either winding.
func TriangulatePolygons(polygons [][]Point, opts ...Option) (result *ConstrainedDelaunay, err error) {
	defer func() {
		recoveredErr := advanced.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	result = advanced.NewConstrainedDelaunay(opts...)
	for _, polygon := range polygons {
		result.InsertPolygon(polygon...)
	}
	return result, nil
}

// TriangulateWeighted builds the regular triangulation of weighted points.
// Points dominated by others end up hidden.
func TriangulateWeighted(points []WeightedPoint, opts ...Option) (result *Regular, err error) {
	defer func() {
		recoveredErr := advanced.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	result = advanced.NewRegular(opts...)
	result.InsertWeighted(points...)
	return result, nil
}
