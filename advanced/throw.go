package advanced

import "github.com/pkg/errors"

// Mesh surgery runs deep inside flip loops and walks, and a broken invariant
// there is a bug, not something a caller can handle. Instead of threading
// errors through every step we panic, and the public constructors in the root
// package recover and convert to an error.

// TriangulationError is the panic value of a violated mesh invariant.
type TriangulationError struct {
	error
}

func (e TriangulationError) Unwrap() error { return e.error }

// Panic with a TriangulationError.
func fatalf(format string, args ...interface{}) {
	panic(TriangulationError{errors.Errorf(format, args...)})
}

// HandleTriangulatePanicRecover turns a recovered TriangulationError into an
// error. Any other panic is raised again.
func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulationError, ok := r.(TriangulationError); ok {
			return triangulationError
		}
		panic(r)
	}
	return nil
}
